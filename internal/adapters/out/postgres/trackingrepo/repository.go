package trackingrepo

import (
	"context"
	"errors"
	"fmt"

	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/tracking"
	"printflow/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTrackingRepository implements TrackingRepository using GORM.
type GormTrackingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTrackingRepository creates a new GORM tracking repository.
func NewGormTrackingRepository(db *gorm.DB, tracker aggregateTracker) *GormTrackingRepository {
	return &GormTrackingRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the initial record. A second record for the same code or the
// same order is reported as errs.ObjectAlreadyExistsError.
func (r *GormTrackingRepository) Add(ctx context.Context, aggregate *tracking.Tracking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("tracking", dto.Code, err)
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return errs.NewObjectNotFoundErrorWithCause("order", aggregate.OrderID().String(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.OrderID(), aggregate)
	return nil
}

// Update writes the stage columns only if the row still has the version the
// aggregate was loaded with, and bumps the version in the same statement.
func (r *GormTrackingRepository) Update(ctx context.Context, aggregate *tracking.Tracking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	updates := stageUpdates(dto)
	updates["version"] = gorm.Expr("version + 1")

	result := r.db.WithContext(ctx).
		Model(&TrackingDTO{}).
		Where("code = ? AND version = ?", dto.Code, dto.Version).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.missOrConflict(ctx, dto.Code, dto.Version)
	}

	r.tracker.TrackAggregate(aggregate.OrderID(), aggregate)
	return nil
}

func (r *GormTrackingRepository) missOrConflict(ctx context.Context, code string, version int) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&TrackingDTO{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("tracking", code)
	}
	return errs.NewVersionIsInvalidErrorWithCause(
		"tracking "+code,
		fmt.Errorf("record changed since version %d was loaded", version),
	)
}

// GetByCode retrieves the record of an order code.
func (r *GormTrackingRepository) GetByCode(ctx context.Context, code kernel.OrderCode) (*tracking.Tracking, error) {
	if err := code.Validate(); err != nil {
		return nil, err
	}

	var dto TrackingDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tracking", code.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindCandidates lists cleanup candidates, oldest order first. Fulfilled
// candidates must still hold files; abandoned candidates are selected with or
// without files.
func (r *GormTrackingRepository) FindCandidates(
	ctx context.Context,
	filter tracking.CandidateFilter,
) ([]*tracking.Tracking, error) {
	query := r.db.WithContext(ctx).
		Model(&TrackingDTO{}).
		Select("order_trackings.*").
		Joins("JOIN orders ON orders.id = order_trackings.order_id")

	switch filter.Kind() {
	case tracking.FulfilledCandidates:
		for _, stage := range tracking.Stages() {
			query = query.Where("order_trackings."+CompletedColumn(stage)+" = ?", true)
		}
		query = query.Where("orders.file_document_url IS NOT NULL")
	case tracking.AbandonedCandidates:
		query = query.Where("order_trackings."+CompletedColumn(tracking.OrderPlaced)+" = ?", true)
		for _, stage := range tracking.Stages()[1:] {
			query = query.Where("order_trackings."+CompletedColumn(stage)+" = ?", false)
		}
		query = query.Where("orders.created_at < ?", filter.CreatedBefore())
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"candidate filter",
			fmt.Errorf("kind %s is not supported", filter.Kind()),
		)
	}

	var dtos []TrackingDTO
	if err := query.Order("orders.created_at ASC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	candidates := make([]*tracking.Tracking, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, fmt.Errorf("tracking %s: %w", dto.Code, err)
		}
		candidates = append(candidates, t)
	}

	return candidates, nil
}

// Delete removes the record only while it still has the version the aggregate
// was loaded with.
func (r *GormTrackingRepository) Delete(ctx context.Context, aggregate *tracking.Tracking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	code := aggregate.Code().String()
	result := r.db.WithContext(ctx).
		Where("code = ? AND version = ?", code, aggregate.Version()).
		Delete(&TrackingDTO{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.missOrConflict(ctx, code, aggregate.Version())
	}

	return nil
}
