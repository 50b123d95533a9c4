package repo

import (
	"context"
	"strings"

	"github.com/Skotchmaster/cyberacademy/internal/models"
	"gorm.io/gorm"
)

func (r *GormRepo) ListActiveCourses(ctx context.Context) ([]models.Course, error) {
	var items []models.Course
	if err := r.DB.WithContext(ctx).Where("is_active = ?", true).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ListCourses(ctx context.Context) ([]models.Course, error) {
	var items []models.Course
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetCourse(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&course).Error; err != nil {
		return nil, notFound(err)
	}
	return &course, nil
}

func (r *GormRepo) GetCourses(ctx context.Context, ids []uint) ([]models.Course, error) {
	if len(ids) == 0 {
		return []models.Course{}, nil
	}

	var found []models.Course
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Course, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}
	out := make([]models.Course, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *GormRepo) CreateCourse(ctx context.Context, course *models.Course) error {
	return r.DB.WithContext(ctx).Create(course).Error
}

func (r *GormRepo) UpdateCourse(ctx context.Context, id uint, patch models.CoursePatch) (*models.Course, error) {
	var course models.Course
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&course).Error; err != nil {
			return notFound(err)
		}
		patch.Apply(&course)
		return tx.Save(&course).Error
	})
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *GormRepo) DeleteCourse(ctx context.Context, id uint) (bool, error) {
	res := r.DB.WithContext(ctx).Delete(&models.Course{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRepo) CountActiveCourses(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.Course{}).Where("is_active = ?", true).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// SearchCourses filters in Go: tags live in a JSON text column, so matching
// them in SQL would also hit JSON syntax and escaped characters.
func (r *GormRepo) SearchCourses(ctx context.Context, q string) ([]models.Course, error) {
	active, err := r.ListActiveCourses(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(q))
	out := make([]models.Course, 0)
	for _, c := range active {
		if courseMatches(c, needle) {
			out = append(out, c)
		}
	}
	return out, nil
}
