package queries

import (
	"context"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/rider"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableRidersQueryHandler retrieves riders open for assignment.
type GetAvailableRidersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableRidersQueryHandler creates a handler for rider availability
// queries. Requires a GORM database connection for query execution.
func NewGetAvailableRidersQueryHandler(db *gorm.DB) GetAvailableRidersQueryHandler {
	return GetAvailableRidersQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by name for stable output.
func (h GetAvailableRidersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableRidersQuery,
) ([]GetAvailableRidersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			phone,
			lat,
			lng,
			updated_at
		FROM riders
		WHERE status = ?
		ORDER BY name
	`, rider.Available.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	riders := make([]GetAvailableRidersQueryResponse, 0)
	for rows.Next() {
		var (
			resp GetAvailableRidersQueryResponse
			id   uuid.UUID
		)

		err = rows.Scan(&id, &resp.Name, &resp.Phone, &resp.Lat, &resp.Lng, &resp.UpdatedAt)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		riders = append(riders, resp)
	}

	return riders, rows.Err()
}
