package repo

import (
	"context"
	"time"

	"github.com/Skotchmaster/cyberacademy/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *GormRepo) AddCartItem(ctx context.Context, sessionID string, courseID uint) (*models.CartItem, bool, error) {
	item := models.CartItem{
		SessionID: sessionID,
		CourseID:  courseID,
		AddedAt:   time.Now().UTC(),
	}
	created := false

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).Create(&item)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			created = true
			return nil
		}

		item = models.CartItem{}
		return tx.Where("session_id = ? AND course_id = ?", sessionID, courseID).First(&item).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &item, created, nil
}

func (r *GormRepo) ListCart(ctx context.Context, sessionID string) ([]models.CartLine, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).Where("session_id = ?", sessionID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []models.CartLine{}, nil
	}

	ids := make([]uint, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.CourseID)
	}
	courses, err := r.GetCourses(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}

	lines := make([]models.CartLine, 0, len(items))
	for _, it := range items {
		c, ok := byID[it.CourseID]
		if !ok {
			continue
		}
		lines = append(lines, models.CartLine{CartItem: it, Course: c})
	}
	return lines, nil
}

func (r *GormRepo) RemoveCartItem(ctx context.Context, sessionID string, courseID uint) (bool, error) {
	res := r.DB.WithContext(ctx).
		Where("session_id = ? AND course_id = ?", sessionID, courseID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRepo) ClearCart(ctx context.Context, sessionID string) error {
	return r.DB.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&models.CartItem{}).Error
}
