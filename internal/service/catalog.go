package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Skotchmaster/cyberacademy/internal/events"
	"github.com/Skotchmaster/cyberacademy/internal/logging"
	"github.com/Skotchmaster/cyberacademy/internal/models"
	"github.com/Skotchmaster/cyberacademy/internal/money"
	"github.com/Skotchmaster/cyberacademy/internal/repo"
	"github.com/Skotchmaster/cyberacademy/internal/search"
	"github.com/Skotchmaster/cyberacademy/internal/transport"
)

type CatalogService struct {
	Repo   repo.CourseStore
	Index  search.Index
	Events events.Publisher
}

func (s *CatalogService) ListActive(ctx context.Context) ([]models.Course, error) {
	return s.Repo.ListActiveCourses(ctx)
}

func (s *CatalogService) ListAll(ctx context.Context) ([]models.Course, error) {
	return s.Repo.ListCourses(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id uint) (*models.Course, error) {
	course, err := s.Repo.GetCourse(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("%w: course %d", ErrNotFound, id)
	}
	return course, err
}

func validPrice(p string) error {
	d, err := money.Parse(p)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if d.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	return nil
}

func (s *CatalogService) Create(ctx context.Context, req transport.CreateCourseRequest) (*models.Course, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title required", ErrValidation)
	}
	if err := validPrice(req.Price); err != nil {
		return nil, err
	}

	course := &models.Course{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		Difficulty:  req.Difficulty,
		ImageURL:    req.ImageURL,
		Tags:        req.Tags,
		Features:    req.Features,
		IsActive:    true,
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}

	if err := s.Repo.CreateCourse(ctx, course); err != nil {
		return nil, err
	}

	s.reindex(ctx, *course)
	publish(ctx, s.Events, events.TopicCourses, courseKey(course.ID), map[string]any{
		"type":     "course_created",
		"courseId": course.ID,
		"title":    course.Title,
		"price":    course.Price,
	})
	return course, nil
}

func (s *CatalogService) Update(ctx context.Context, id uint, req transport.PatchCourseRequest) (*models.Course, error) {
	if req.Price != nil {
		if err := validPrice(*req.Price); err != nil {
			return nil, err
		}
	}

	patch := models.CoursePatch{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		Difficulty:  req.Difficulty,
		IsActive:    req.IsActive,
		Tags:        listPatch(req.Tags),
		Features:    listPatch(req.Features),
	}
	if req.ImageURL.Set {
		patch.ImageURL = req.ImageURL.Value
		patch.ClearImageURL = req.ImageURL.Value == nil
	}

	course, err := s.Repo.UpdateCourse(ctx, id, patch)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("%w: course %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	s.reindex(ctx, *course)
	publish(ctx, s.Events, events.TopicCourses, courseKey(course.ID), map[string]any{
		"type":     "course_updated",
		"courseId": course.ID,
		"title":    course.Title,
		"price":    course.Price,
		"isActive": course.IsActive,
	})
	return course, nil
}

// listPatch maps an absent list to nil (keep) and null to a nil list
// (clear).
func listPatch(n transport.Nullable[[]string]) *[]string {
	if !n.Set {
		return nil
	}
	var list []string
	if n.Value != nil {
		list = *n.Value
	}
	return &list
}

func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	deleted, err := s.Repo.DeleteCourse(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: course %d", ErrNotFound, id)
	}

	if s.Index != nil {
		if err := s.Index.RemoveCourse(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("search_remove_failed", "course_id", id, "error", err)
		}
	}
	publish(ctx, s.Events, events.TopicCourses, courseKey(id), map[string]any{
		"type":     "course_deleted",
		"courseId": id,
	})
	return nil
}

// Search prefers the search index and falls back to store matching when
// no index is configured or the index is unavailable.
func (s *CatalogService) Search(ctx context.Context, q string) ([]models.Course, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, fmt.Errorf("%w: query required", ErrValidation)
	}

	if s.Index != nil {
		ids, err := s.Index.Search(ctx, q, search.DefaultLimit)
		if err == nil {
			courses, err := s.Repo.GetCourses(ctx, ids)
			if err != nil {
				return nil, err
			}
			active := courses[:0]
			for _, c := range courses {
				if c.IsActive {
					active = append(active, c)
				}
			}
			return active, nil
		}
		logging.FromContext(ctx).Warn("search_index_failed", "reason", "falling back to store", "error", err)
	}

	return s.Repo.SearchCourses(ctx, q)
}

// Reindex pushes every stored course into the search index.
func (s *CatalogService) Reindex(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, nil
	}
	courses, err := s.Repo.ListCourses(ctx)
	if err != nil {
		return 0, err
	}
	for _, c := range courses {
		if err := s.Index.IndexCourse(ctx, c); err != nil {
			return 0, err
		}
	}
	return len(courses), nil
}

func (s *CatalogService) reindex(ctx context.Context, c models.Course) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexCourse(ctx, c); err != nil {
		logging.FromContext(ctx).Warn("search_index_failed", "course_id", c.ID, "error", err)
	}
}

func courseKey(id uint) string { return strconv.FormatUint(uint64(id), 10) }
