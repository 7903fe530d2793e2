package queries

import (
	"context"
	"database/sql"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DescribeTrackingQueryHandler reads one tracking record with its order.
// Soft-deleted orders are reported as not found.
type DescribeTrackingQueryHandler struct {
	db *gorm.DB
}

func NewDescribeTrackingQueryHandler(db *gorm.DB) DescribeTrackingQueryHandler {
	return DescribeTrackingQueryHandler{db: db}
}

func (h DescribeTrackingQueryHandler) Handle(
	ctx context.Context,
	query DescribeTrackingQuery,
) (DescribeTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return DescribeTrackingQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.file_document_url,
			o.file_front_cover_url,
			o.file_back_cover_url,
			o.preferences,
			o.payment_method,
			o.payment_total_cost,
			o.payment_voucher,
			o.created_at,`+stageColumnsSQL+`
		FROM order_trackings t
		JOIN orders o ON o.id = t.order_id
		WHERE t.code = ? AND o.is_deleted = FALSE
	`, query.Code().String()).Rows()
	if err != nil {
		return DescribeTrackingQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return DescribeTrackingQueryResponse{}, err
		}
		return DescribeTrackingQueryResponse{}, errs.NewObjectNotFoundError("tracking", query.Code().String())
	}

	var (
		id                         uuid.UUID
		document, frontCover, back sql.NullString
		preferences                datatypes.JSONType[order.Preferences]
		method                     string
		totalCost                  decimal.Decimal
		voucher                    sql.NullString
		resp                       DescribeTrackingQueryResponse
		stages                     stageRow
	)
	dest := []any{&id, &document, &frontCover, &back, &preferences, &method, &totalCost, &voucher, &resp.CreatedAt}
	if err = rows.Scan(append(dest, stages.dest()...)...); err != nil {
		return DescribeTrackingQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return DescribeTrackingQueryResponse{}, err
	}
	t, err := stages.toTracking(query.Code(), orderID)
	if err != nil {
		return DescribeTrackingQueryResponse{}, err
	}

	resp.Code = query.Code().String()
	resp.CurrentStage = t.CurrentStageName()
	resp.Stages = stageViews(t)
	resp.Files = fileViews(document, frontCover, back)
	resp.Preferences = preferences.Data()
	resp.Payment = PaymentSummary{Method: method, TotalCost: totalCost, Voucher: voucher.String}
	resp.CreatedAt = resp.CreatedAt.UTC()

	return resp, nil
}

func fileViews(document, frontCover, back sql.NullString) []FileView {
	views := make([]FileView, 0, 3)
	for _, f := range []struct {
		role order.FileRole
		url  sql.NullString
	}{
		{order.Document, document},
		{order.FrontCover, frontCover},
		{order.BackCover, back},
	} {
		if f.url.Valid && f.url.String != "" {
			views = append(views, FileView{Role: f.role.String(), URL: f.url.String})
		}
	}
	return views
}
