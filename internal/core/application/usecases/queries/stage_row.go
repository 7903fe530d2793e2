package queries

import (
	"database/sql"
	"time"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/tracking"
)

// stageColumnsSQL selects the eight completed/completed_at pairs of
// order_trackings in canonical stage order.
const stageColumnsSQL = `
	t.order_placed_completed, t.order_placed_completed_at,
	t.payment_verified_completed, t.payment_verified_completed_at,
	t.printing_started_completed, t.printing_started_completed_at,
	t.printing_completed_completed, t.printing_completed_completed_at,
	t.ready_for_delivery_completed, t.ready_for_delivery_completed_at,
	t.reached_destination_city_completed, t.reached_destination_city_completed_at,
	t.out_for_delivery_completed, t.out_for_delivery_completed_at,
	t.delivered_completed, t.delivered_completed_at`

// stageRow receives the columns of stageColumnsSQL.
type stageRow struct {
	completed   [tracking.StageCount]bool
	completedAt [tracking.StageCount]sql.NullTime
}

func (r *stageRow) dest() []any {
	dest := make([]any, 0, 2*tracking.StageCount)
	for i := range tracking.StageCount {
		dest = append(dest, &r.completed[i], &r.completedAt[i])
	}
	return dest
}

// toTracking rebuilds the aggregate so derived values like the current stage
// come from the same rules the commands use.
func (r *stageRow) toTracking(code kernel.OrderCode, orderID kernel.UUID) (*tracking.Tracking, error) {
	records := make([]tracking.StageRecord, 0, tracking.StageCount)
	for i, stage := range tracking.Stages() {
		record := tracking.StageRecord{Stage: stage, Completed: r.completed[i]}
		if r.completedAt[i].Valid {
			at := r.completedAt[i].Time
			record.CompletedAt = &at
		}
		records = append(records, record)
	}
	return tracking.RestoreTracking(code, orderID, records, 0)
}

// StageView is one stage in its persisted shape.
type StageView struct {
	Name        string
	Completed   bool
	CompletedAt *time.Time
}

func stageViews(t *tracking.Tracking) []StageView {
	records := t.Records()
	views := make([]StageView, 0, len(records))
	for _, record := range records {
		views = append(views, StageView{
			Name:        record.Stage.String(),
			Completed:   record.Completed,
			CompletedAt: record.CompletedAt,
		})
	}
	return views
}
