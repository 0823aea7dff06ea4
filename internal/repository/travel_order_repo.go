package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/corptravel/travel-order-service/internal/models"
)

// ListFilter narrows the owner-scoped listing. Filters combine with AND.
type ListFilter struct {
	Status      *models.TravelOrderStatus
	Destination string
	StartDate   *time.Time
	EndDate     *time.Time
}

type TravelOrderRepository interface {
	Create(ctx context.Context, order *models.TravelOrder) error
	FindByID(ctx context.Context, id uint) (*models.TravelOrder, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.TravelOrder, error)
	FindByUser(ctx context.Context, userID uint, filter ListFilter) ([]models.TravelOrder, error)
	Updates(ctx context.Context, tx *gorm.DB, id uint, fields map[string]any) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.TravelOrderStatus) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	OrderIDExists(ctx context.Context, orderID string, excludeID uint) (bool, error)
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type travelOrderRepository struct {
	db *gorm.DB
}

func NewTravelOrderRepository(db *gorm.DB) TravelOrderRepository {
	return &travelOrderRepository{db: db}
}

func (r *travelOrderRepository) Create(ctx context.Context, order *models.TravelOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *travelOrderRepository) FindByID(ctx context.Context, id uint) (*models.TravelOrder, error) {
	var order models.TravelOrder
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByIDForUpdate acquires a row-level lock on the order within the given transaction.
func (r *travelOrderRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.TravelOrder, error) {
	var order models.TravelOrder
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *travelOrderRepository) FindByUser(ctx context.Context, userID uint, filter ListFilter) ([]models.TravelOrder, error) {
	var orders []models.TravelOrder
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Destination != "" {
		q = q.Where("destination ILIKE ?", "%"+filter.Destination+"%")
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		q = q.Where("departure_date BETWEEN ? AND ?", *filter.StartDate, *filter.EndDate)
	}
	if err := q.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *travelOrderRepository) Updates(ctx context.Context, tx *gorm.DB, id uint, fields map[string]any) error {
	return tx.WithContext(ctx).
		Model(&models.TravelOrder{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *travelOrderRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.TravelOrderStatus) error {
	return tx.WithContext(ctx).
		Model(&models.TravelOrder{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *travelOrderRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).Delete(&models.TravelOrder{}, id).Error
}

// OrderIDExists reports whether another order already uses the caller-supplied
// order_id. excludeID skips the record being updated; pass 0 on create.
func (r *travelOrderRepository) OrderIDExists(ctx context.Context, orderID string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).
		Model(&models.TravelOrder{}).
		Where("order_id = ?", orderID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *travelOrderRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
