package pilotrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/pilot"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPilotRepository implements ports.PilotRepository using GORM.
//
// Updates cover every column so releasing an order writes current_order_id
// back to NULL instead of being skipped as a zero value.
type GormPilotRepository struct {
	db *gorm.DB
}

// NewGormPilotRepository creates a new GORM pilot repository.
func NewGormPilotRepository(db *gorm.DB) *GormPilotRepository {
	return &GormPilotRepository{db: db}
}

// Add saves a new pilot to the database.
func (r *GormPilotRepository) Add(ctx context.Context, aggregate *pilot.Pilot) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing pilot to the database.
func (r *GormPilotRepository) Update(ctx context.Context, aggregate *pilot.Pilot) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PilotDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("created_at", clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Get retrieves a pilot by ID.
func (r *GormPilotRepository) Get(ctx context.Context, id kernel.UUID) (*pilot.Pilot, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PilotDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pilot", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
