package queries

import (
	"context"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCurrentStageQueryHandler reads the tracking row of a visible order.
// Soft-deleted orders are reported as not found.
type GetCurrentStageQueryHandler struct {
	db *gorm.DB
}

func NewGetCurrentStageQueryHandler(db *gorm.DB) GetCurrentStageQueryHandler {
	return GetCurrentStageQueryHandler{db: db}
}

func (h GetCurrentStageQueryHandler) Handle(
	ctx context.Context,
	query GetCurrentStageQuery,
) (GetCurrentStageQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCurrentStageQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			t.order_id,`+stageColumnsSQL+`
		FROM order_trackings t
		JOIN orders o ON o.id = t.order_id
		WHERE t.code = ? AND o.is_deleted = FALSE
	`, query.Code().String()).Rows()
	if err != nil {
		return GetCurrentStageQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetCurrentStageQueryResponse{}, err
		}
		return GetCurrentStageQueryResponse{}, errs.NewObjectNotFoundError("tracking", query.Code().String())
	}

	var id uuid.UUID
	var stages stageRow
	if err = rows.Scan(append([]any{&id}, stages.dest()...)...); err != nil {
		return GetCurrentStageQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetCurrentStageQueryResponse{}, err
	}
	t, err := stages.toTracking(query.Code(), orderID)
	if err != nil {
		return GetCurrentStageQueryResponse{}, err
	}

	return GetCurrentStageQueryResponse{
		Code:  query.Code().String(),
		Stage: t.CurrentStageName(),
	}, nil
}
