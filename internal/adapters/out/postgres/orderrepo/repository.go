package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order together with its items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	return nil
}

// Update writes the order header and replaces its items. Packing splits and renumbers items,
// so the stored rows are rewritten rather than matched.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	result := db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Select("*").Omit("Items", "CreatedAt").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	if err := db.Where("order_id = ?", dto.ID).Delete(&OrderItemDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Items) > 0 {
		if err := db.Create(&dto.Items).Error; err != nil {
			return err
		}
	}

	return nil
}

// Get retrieves an order with its items by ID and locks the order row until the
// transaction ends. Every handler that changes an order or its lots goes through here
// first, so the order row is the outermost lock.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate, Table: clause.Table{Name: clause.CurrentTable}}).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ClaimForPicker sets started_by when it is empty or already holds pickerID, in one
// conditional UPDATE. It reports false when another picker holds the order.
func (r *GormOrderRepository) ClaimForPicker(ctx context.Context, id kernel.UUID, pickerID kernel.UUID) (bool, error) {
	if err := errors.Join(id.Validate(), pickerID.Validate()); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND (started_by IS NULL OR started_by = ?)", id.Bytes(), pickerID.Bytes()).
		Update("started_by", pickerID.Bytes())
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// LastNumber returns the highest order number of the type, or "" for the first order.
// Concurrent callers are serialized by a transaction-scoped advisory lock until commit.
func (r *GormOrderRepository) LastNumber(ctx context.Context, t order.Type) (string, error) {
	db := r.db.WithContext(ctx)
	if err := db.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "order_number:"+string(t)).Error; err != nil {
		return "", err
	}

	var numbers []string
	err := db.Model(&OrderDTO{}).
		Where("type = ?", string(t)).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "order_number"}, Desc: true}).
		Limit(1).
		Pluck("order_number", &numbers).Error
	if err != nil {
		return "", err
	}
	if len(numbers) == 0 {
		return "", nil
	}
	return numbers[0], nil
}
