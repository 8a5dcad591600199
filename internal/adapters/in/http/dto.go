package http

import (
	"time"

	"fulfilment/internal/core/application/usecases/queries"
)

// Request bodies.

type waypointRequest struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

type orderItemRequest struct {
	ProductID     string `json:"productId"`
	UnitPriceKobo int64  `json:"unitPriceKobo"`
	Quantity      int    `json:"quantity"`
}

type createOrderRequest struct {
	BusinessID    string             `json:"businessId"`
	BusinessName  string             `json:"businessName"`
	CustomerID    string             `json:"customerId"`
	CustomerPhone string             `json:"customerPhone"`
	Items         []orderItemRequest `json:"items"`
	DiscountKobo  int64              `json:"discountKobo"`
	Pickup        waypointRequest    `json:"pickup"`
	Dropoff       waypointRequest    `json:"dropoff"`
}

type transitionOrderRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type assignRiderRequest struct {
	RiderID string `json:"riderId"`
}

type deliveryStatusRequest struct {
	Status string `json:"status"`
}

type paymentWebhookRequest struct {
	Provider string `json:"provider"`
	Token    string `json:"token"`
	OrderID  string `json:"orderId"`
	Outcome  string `json:"outcome"`
}

type deliveryWebhookRequest struct {
	Provider       string `json:"provider"`
	Token          string `json:"token"`
	TrackingNumber string `json:"trackingNumber"`
	Status         string `json:"status"`
}

// Response bodies.

type createOrderResponse struct {
	ID     string `json:"id"`
	Number string `json:"number"`
}

type orderItemResponse struct {
	ProductID     string `json:"productId"`
	UnitPriceKobo int64  `json:"unitPriceKobo"`
	Quantity      int    `json:"quantity"`
	SubtotalKobo  int64  `json:"subtotalKobo"`
}

type deliverySummaryResponse struct {
	ID             string  `json:"id"`
	Status         string  `json:"status"`
	TrackingNumber string  `json:"trackingNumber,omitempty"`
	RiderName      string  `json:"riderName,omitempty"`
	RiderPhone     string  `json:"riderPhone,omitempty"`
	DistanceKm     float64 `json:"distanceKm"`
	FeeKobo        int64   `json:"feeKobo"`
}

type orderResponse struct {
	ID                string                   `json:"id"`
	Number            string                   `json:"number"`
	BusinessID        string                   `json:"businessId"`
	BusinessName      string                   `json:"businessName"`
	CustomerID        string                   `json:"customerId"`
	CustomerPhone     string                   `json:"customerPhone"`
	Status            string                   `json:"status"`
	PaymentStatus     string                   `json:"paymentStatus"`
	Items             []orderItemResponse      `json:"items"`
	ItemsSubtotalKobo int64                    `json:"itemsSubtotalKobo"`
	DeliveryFeeKobo   int64                    `json:"deliveryFeeKobo"`
	DiscountKobo      int64                    `json:"discountKobo"`
	TotalKobo         int64                    `json:"totalKobo"`
	Delivery          *deliverySummaryResponse `json:"delivery,omitempty"`
	CreatedAt         time.Time                `json:"createdAt"`
	UpdatedAt         time.Time                `json:"updatedAt"`
}

type trackingResponse struct {
	TrackingNumber string    `json:"trackingNumber"`
	OrderNumber    string    `json:"orderNumber"`
	BusinessName   string    `json:"businessName"`
	OrderStatus    string    `json:"orderStatus"`
	DeliveryStatus string    `json:"deliveryStatus"`
	RiderName      string    `json:"riderName,omitempty"`
	RiderPhone     string    `json:"riderPhone,omitempty"`
	DropoffAddress string    `json:"dropoffAddress"`
	FeeKobo        int64     `json:"feeKobo"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type riderResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Lat       *float64  `json:"lat,omitempty"`
	Lng       *float64  `json:"lng,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toOrderResponse(resp queries.GetOrderQueryResponse) orderResponse {
	items := make([]orderItemResponse, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, orderItemResponse{
			ProductID:     item.ProductID.String(),
			UnitPriceKobo: item.UnitPrice.Kobo(),
			Quantity:      item.Quantity,
			SubtotalKobo:  item.Subtotal.Kobo(),
		})
	}

	var deliverySummary *deliverySummaryResponse
	if resp.Delivery != nil {
		deliverySummary = &deliverySummaryResponse{
			ID:             resp.Delivery.ID.String(),
			Status:         resp.Delivery.Status,
			TrackingNumber: resp.Delivery.TrackingNumber,
			RiderName:      resp.Delivery.RiderName,
			RiderPhone:     resp.Delivery.RiderPhone,
			DistanceKm:     resp.Delivery.DistanceKm,
			FeeKobo:        resp.Delivery.Fee.Kobo(),
		}
	}

	return orderResponse{
		ID:                resp.ID.String(),
		Number:            resp.Number,
		BusinessID:        resp.BusinessID.String(),
		BusinessName:      resp.BusinessName,
		CustomerID:        resp.CustomerID.String(),
		CustomerPhone:     resp.CustomerPhone,
		Status:            resp.Status,
		PaymentStatus:     resp.PaymentStatus,
		Items:             items,
		ItemsSubtotalKobo: resp.ItemsSubtotal.Kobo(),
		DeliveryFeeKobo:   resp.DeliveryFee.Kobo(),
		DiscountKobo:      resp.Discount.Kobo(),
		TotalKobo:         resp.Total.Kobo(),
		Delivery:          deliverySummary,
		CreatedAt:         resp.CreatedAt,
		UpdatedAt:         resp.UpdatedAt,
	}
}
