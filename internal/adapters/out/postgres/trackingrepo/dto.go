// Package trackingrepo persists tracking records. Each stage is stored as a
// completed flag plus a completion timestamp, one column pair per stage.
package trackingrepo

import (
	"time"

	"printflow/internal/adapters/out/postgres/orderrepo"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// TrackingDTO represents one tracking record. Code is shared with the order
// and OrderID references it.
type TrackingDTO struct {
	Code    string              `gorm:"size:64;primaryKey"`
	OrderID uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex"`
	Order   *orderrepo.OrderDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:RESTRICT"`

	OrderPlaced            StageDTO `gorm:"embedded;embeddedPrefix:order_placed_"`
	PaymentVerified        StageDTO `gorm:"embedded;embeddedPrefix:payment_verified_"`
	PrintingStarted        StageDTO `gorm:"embedded;embeddedPrefix:printing_started_"`
	PrintingCompleted      StageDTO `gorm:"embedded;embeddedPrefix:printing_completed_"`
	ReadyForDelivery       StageDTO `gorm:"embedded;embeddedPrefix:ready_for_delivery_"`
	ReachedDestinationCity StageDTO `gorm:"embedded;embeddedPrefix:reached_destination_city_"`
	OutForDelivery         StageDTO `gorm:"embedded;embeddedPrefix:out_for_delivery_"`
	Delivered              StageDTO `gorm:"embedded;embeddedPrefix:delivered_"`

	// Version is bumped on every stage write.
	Version int `gorm:"not null;default:0"`
}

// TableName specifies the database table name for tracking records.
func (TrackingDTO) TableName() string {
	return "order_trackings"
}

// StageDTO is one stage's persisted pair.
type StageDTO struct {
	Completed   bool `gorm:"not null;default:false"`
	CompletedAt *time.Time
}

// stageColumn pairs a stage with its column prefix and DTO field.
type stageColumn struct {
	stage  tracking.Stage
	prefix string
	field  func(dto *TrackingDTO) *StageDTO
}

func stageColumns() []stageColumn {
	return []stageColumn{
		{tracking.OrderPlaced, "order_placed_", func(d *TrackingDTO) *StageDTO { return &d.OrderPlaced }},
		{tracking.PaymentVerified, "payment_verified_", func(d *TrackingDTO) *StageDTO { return &d.PaymentVerified }},
		{tracking.PrintingStarted, "printing_started_", func(d *TrackingDTO) *StageDTO { return &d.PrintingStarted }},
		{tracking.PrintingCompleted, "printing_completed_", func(d *TrackingDTO) *StageDTO { return &d.PrintingCompleted }},
		{tracking.ReadyForDelivery, "ready_for_delivery_", func(d *TrackingDTO) *StageDTO { return &d.ReadyForDelivery }},
		{tracking.ReachedDestinationCity, "reached_destination_city_", func(d *TrackingDTO) *StageDTO {
			return &d.ReachedDestinationCity
		}},
		{tracking.OutForDelivery, "out_for_delivery_", func(d *TrackingDTO) *StageDTO { return &d.OutForDelivery }},
		{tracking.Delivered, "delivered_", func(d *TrackingDTO) *StageDTO { return &d.Delivered }},
	}
}

// CompletedColumn returns the completed-flag column of stage.
func CompletedColumn(stage tracking.Stage) string {
	for _, c := range stageColumns() {
		if c.stage == stage {
			return c.prefix + "completed"
		}
	}
	return ""
}

// CompletedAtColumn returns the completion-time column of stage.
func CompletedAtColumn(stage tracking.Stage) string {
	for _, c := range stageColumns() {
		if c.stage == stage {
			return c.prefix + "completed_at"
		}
	}
	return ""
}

// fromDomain converts a tracking aggregate to its database representation.
func fromDomain(aggregate *tracking.Tracking) TrackingDTO {
	dto := TrackingDTO{
		Code:    aggregate.Code().String(),
		OrderID: aggregate.OrderID().Bytes(),
		Version: aggregate.Version(),
	}
	records := aggregate.Records()
	for i, c := range stageColumns() {
		*c.field(&dto) = StageDTO{
			Completed:   records[i].Completed,
			CompletedAt: records[i].CompletedAt,
		}
	}
	return dto
}

// stageUpdates lists the stage columns of dto for a conditional update.
func stageUpdates(dto TrackingDTO) map[string]any {
	updates := make(map[string]any, 2*tracking.StageCount)
	for _, c := range stageColumns() {
		stage := c.field(&dto)
		updates[c.prefix+"completed"] = stage.Completed
		updates[c.prefix+"completed_at"] = stage.CompletedAt
	}
	return updates
}

// toDomain converts a database DTO back to a tracking aggregate. Rows that
// break canonical order are reported instead of repaired.
func toDomain(dto TrackingDTO) (*tracking.Tracking, error) {
	code, err := kernel.NewOrderCode(dto.Code)
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	records := make([]tracking.StageRecord, 0, tracking.StageCount)
	for _, c := range stageColumns() {
		stage := c.field(&dto)
		records = append(records, tracking.StageRecord{
			Stage:       c.stage,
			Completed:   stage.Completed,
			CompletedAt: stage.CompletedAt,
		})
	}

	return tracking.RestoreTracking(code, orderID, records, dto.Version)
}
