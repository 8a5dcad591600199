package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fulfilment/internal/core/application/usecases/queries"
	"fulfilment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type streamEvent struct {
	OrderID        string    `json:"orderId"`
	OrderStatus    string    `json:"orderStatus"`
	PaymentStatus  string    `json:"paymentStatus"`
	DeliveryStatus string    `json:"deliveryStatus,omitempty"`
	TrackingNumber string    `json:"trackingNumber,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// StreamOrder handles GET /api/v1/orders/:id/stream - a Server-Sent Events
// feed of the order's status changes. The first event is a snapshot of the
// current state so late subscribers start consistent; deltas follow until the
// client disconnects.
//
// Subscription happens before the snapshot read, so a change racing the
// snapshot is delivered as a delta rather than lost.
func (s *Server) StreamOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "order id must be a valid UUID")
	}

	changes, cancel := s.stream.Subscribe(orderID)
	defer cancel()

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	snapshot, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	resp := ctx.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set(echo.HeaderCacheControl, "no-cache")
	resp.Header().Set(echo.HeaderConnection, "keep-alive")
	resp.WriteHeader(http.StatusOK)

	first := streamEvent{
		OrderID:       snapshot.ID.String(),
		OrderStatus:   snapshot.Status,
		PaymentStatus: snapshot.PaymentStatus,
		OccurredAt:    snapshot.UpdatedAt,
	}
	if snapshot.Delivery != nil {
		first.DeliveryStatus = snapshot.Delivery.Status
		first.TrackingNumber = snapshot.Delivery.TrackingNumber
	}

	if err = writeSSE(resp, "snapshot", first); err != nil {
		return nil
	}

	done := ctx.Request().Context().Done()
	for {
		select {
		case <-done:
			return nil
		case change := <-changes:
			event := streamEvent{
				OrderID:        change.OrderID.String(),
				OrderStatus:    change.OrderStatus,
				PaymentStatus:  change.PaymentStatus,
				DeliveryStatus: change.DeliveryStatus,
				TrackingNumber: change.TrackingNumber,
				OccurredAt:     change.OccurredAt,
			}

			if err = writeSSE(resp, "status", event); err != nil {
				return nil
			}
		}
	}
}

func writeSSE(resp *echo.Response, name string, event streamEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if _, err = fmt.Fprintf(resp, "event: %s\ndata: %s\n\n", name, payload); err != nil {
		return err
	}

	resp.Flush()

	return nil
}
