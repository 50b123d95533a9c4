package repo

import (
	"context"
	"errors"

	"github.com/Skotchmaster/cyberacademy/internal/models"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrConflict          = errors.New("record already exists")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type CourseStore interface {
	ListActiveCourses(ctx context.Context) ([]models.Course, error)
	ListCourses(ctx context.Context) ([]models.Course, error)
	GetCourse(ctx context.Context, id uint) (*models.Course, error)
	// GetCourses returns the courses that still exist, in the order of ids.
	GetCourses(ctx context.Context, ids []uint) ([]models.Course, error)
	CreateCourse(ctx context.Context, course *models.Course) error
	UpdateCourse(ctx context.Context, id uint, patch models.CoursePatch) (*models.Course, error)
	DeleteCourse(ctx context.Context, id uint) (bool, error)
	CountActiveCourses(ctx context.Context) (int64, error)
	// SearchCourses matches active courses by title, description or tag, case-insensitively.
	SearchCourses(ctx context.Context, q string) ([]models.Course, error)
}

type CartStore interface {
	// AddCartItem is idempotent per (sessionID, courseID); created is false when
	// the existing item is returned unchanged.
	AddCartItem(ctx context.Context, sessionID string, courseID uint) (item *models.CartItem, created bool, err error)
	ListCart(ctx context.Context, sessionID string) ([]models.CartLine, error)
	RemoveCartItem(ctx context.Context, sessionID string, courseID uint) (bool, error)
	ClearCart(ctx context.Context, sessionID string) error
}

type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByReference(ctx context.Context, ref string) (*models.Order, error)
	// ListOrders returns every order when status is empty.
	ListOrders(ctx context.Context, status models.OrderStatus) ([]models.Order, error)
	// TransitionOrder moves an order along its payment path's status graph.
	TransitionOrder(ctx context.Context, id uint, to models.OrderStatus, utr *string) (*models.Order, error)
}

type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
}

type Store interface {
	CourseStore
	CartStore
	OrderStore
	UserStore
}
