package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Skotchmaster/cyberacademy/internal/events"
	"github.com/Skotchmaster/cyberacademy/internal/models"
	"github.com/Skotchmaster/cyberacademy/internal/repo"
)

type CartService struct {
	Repo    repo.CartStore
	Courses repo.CourseStore
	Events  events.Publisher
}

func requireSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("%w: sessionId required", ErrValidation)
	}
	return nil
}

// Add puts a course into the session's cart. created is false when the
// course was already there and the existing item is returned unchanged.
func (s *CartService) Add(ctx context.Context, sessionID string, courseID uint) (item *models.CartItem, created bool, err error) {
	if err := requireSession(sessionID); err != nil {
		return nil, false, err
	}
	if courseID == 0 {
		return nil, false, fmt.Errorf("%w: courseId required", ErrValidation)
	}

	if _, err := s.Courses.GetCourse(ctx, courseID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, false, fmt.Errorf("%w: course %d", ErrNotFound, courseID)
		}
		return nil, false, err
	}

	item, created, err = s.Repo.AddCartItem(ctx, sessionID, courseID)
	if err != nil {
		return nil, false, err
	}

	if created {
		publish(ctx, s.Events, events.TopicCart, sessionID, map[string]any{
			"type":      "cart_item_added",
			"sessionId": sessionID,
			"courseId":  courseID,
		})
	}
	return item, created, nil
}

func (s *CartService) List(ctx context.Context, sessionID string) ([]models.CartLine, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	return s.Repo.ListCart(ctx, sessionID)
}

func (s *CartService) Remove(ctx context.Context, sessionID string, courseID uint) error {
	if err := requireSession(sessionID); err != nil {
		return err
	}

	removed, err := s.Repo.RemoveCartItem(ctx, sessionID, courseID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: course %d not in cart", ErrNotFound, courseID)
	}

	publish(ctx, s.Events, events.TopicCart, sessionID, map[string]any{
		"type":      "cart_item_removed",
		"sessionId": sessionID,
		"courseId":  courseID,
	})
	return nil
}

func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	if err := requireSession(sessionID); err != nil {
		return err
	}
	if err := s.Repo.ClearCart(ctx, sessionID); err != nil {
		return err
	}

	publish(ctx, s.Events, events.TopicCart, sessionID, map[string]any{
		"type":      "cart_cleared",
		"sessionId": sessionID,
	})
	return nil
}
