package orderrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
//
// Writes always cover every column (Select("*")) so cleared optional fields
// such as a released assignment or a dropped handoff code reach the database
// as NULL instead of being skipped as zero values.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order together with its timeline to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing order to the database. Timeline entries are
// append-only: rows already persisted keep their values, entries the
// aggregate gained since the last load are inserted.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("created_at", clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return r.appendTimeline(ctx, dto.TimelineEntries)
}

// UpdateClaimed persists a pilot assignment with a single conditional write.
// The row is updated only while it still has no assigned pilot, so exactly
// one of any number of concurrent claims can succeed. Returns false without
// an error when another claim already holds the order.
func (r *GormOrderRepository) UpdateClaimed(ctx context.Context, aggregate *order.Order) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND assigned_pilot_id IS NULL", dto.ID).
		Select("*").Omit("created_at", clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return false, result.Error
	}

	if result.RowsAffected == 0 {
		return false, nil
	}

	if err := r.appendTimeline(ctx, dto.TimelineEntries); err != nil {
		return false, err
	}

	return true, nil
}

// UpdateDelivered persists a delivery completion with a single conditional
// write. The row is updated only while the stored order is still dispatched,
// so a completion racing a cancellation cannot resurrect a cancelled order.
// Returns false without an error when the stored status moved on.
func (r *GormOrderRepository) UpdateDelivered(ctx context.Context, aggregate *order.Order) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, order.Dispatched.String()).
		Select("*").Omit("created_at", clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return false, result.Error
	}

	if result.RowsAffected == 0 {
		return false, nil
	}

	if err := r.appendTimeline(ctx, dto.TimelineEntries); err != nil {
		return false, err
	}

	return true, nil
}

// Get retrieves an order by ID, including its ordered timeline.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("TimelineEntries", sortTimeline).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllWithExpiredCode retrieves orders still carrying a handoff code whose
// expiry lies at or before asOf. Used by the sweep job to clear lapsed codes.
func (r *GormOrderRepository) GetAllWithExpiredCode(ctx context.Context, asOf time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("TimelineEntries", sortTimeline).
		Where("delivery_handoff_code IS NOT NULL AND delivery_handoff_code_expires_at <= ?", asOf).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// appendTimeline inserts timeline rows the database does not have yet.
// Entries are immutable once written, so ON CONFLICT DO NOTHING turns the
// already persisted prefix into a no-op.
func (r *GormOrderRepository) appendTimeline(ctx context.Context, entries []TimelineEntryDTO) error {
	if len(entries) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entries).Error
}

// sortTimeline orders preloaded timeline entries by their position.
func sortTimeline(db *gorm.DB) *gorm.DB {
	return db.Order("seq ASC")
}
