package repo

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/cyberacademy/internal/models"
	"gorm.io/gorm"
)

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	if !order.PaymentMethod.Allows(order.Status) {
		return fmt.Errorf("%w: %s order cannot start as %s", ErrInvalidTransition, order.PaymentMethod, order.Status)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Order{}).Where("payment_reference = ?", order.PaymentReference).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: payment reference %s", ErrConflict, order.PaymentReference)
		}
		return tx.Create(order).Error
	})
}

func (r *GormRepo) GetOrderByReference(ctx context.Context, ref string) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Where("payment_reference = ?", ref).First(&order).Error; err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	q := r.DB.WithContext(ctx).Order("id ASC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var items []models.Order
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) TransitionOrder(ctx context.Context, id uint, to models.OrderStatus, utr *string) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&order).Error; err != nil {
			return notFound(err)
		}
		from := order.Status
		if !order.PaymentMethod.CanTransition(from, to) {
			return fmt.Errorf("%w: %s order %s -> %s", ErrInvalidTransition, order.PaymentMethod, from, to)
		}

		updates := map[string]any{"status": to}
		if utr != nil {
			updates["utr_number"] = *utr
		}
		res := tx.Model(&models.Order{}).Where("id = ? AND status = ?", id, from).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: order %d changed concurrently", ErrInvalidTransition, id)
		}
		return tx.Where("id = ?", id).First(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
