package repo

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Skotchmaster/cyberacademy/internal/models"
)

// MemoryRepo keeps every record in process memory. Ids start at 1 and
// listings follow insertion order.
type MemoryRepo struct {
	mu sync.RWMutex

	courses     map[uint]models.Course
	courseOrder []uint
	nextCourse  uint

	cartItems []models.CartItem
	nextCart  uint

	orders    []models.Order
	nextOrder uint

	users    map[string]models.User
	nextUser uint

	now func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		courses:    make(map[uint]models.Course),
		nextCourse: 1,
		nextCart:   1,
		nextOrder:  1,
		users:      make(map[string]models.User),
		nextUser:   1,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepo) ListActiveCourses(ctx context.Context) ([]models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Course, 0, len(r.courseOrder))
	for _, id := range r.courseOrder {
		if c := r.courses[id]; c.IsActive {
			out = append(out, c.Clone())
		}
	}
	return out, nil
}

func (r *MemoryRepo) ListCourses(ctx context.Context) ([]models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Course, 0, len(r.courseOrder))
	for _, id := range r.courseOrder {
		out = append(out, r.courses[id].Clone())
	}
	return out, nil
}

func (r *MemoryRepo) GetCourse(ctx context.Context, id uint) (*models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.courses[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := c.Clone()
	return &out, nil
}

func (r *MemoryRepo) GetCourses(ctx context.Context, ids []uint) ([]models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Course, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.courses[id]; ok {
			out = append(out, c.Clone())
		}
	}
	return out, nil
}

func (r *MemoryRepo) CreateCourse(ctx context.Context, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	course.ID = r.nextCourse
	r.nextCourse++
	r.courses[course.ID] = course.Clone()
	r.courseOrder = append(r.courseOrder, course.ID)
	return nil
}

func (r *MemoryRepo) UpdateCourse(ctx context.Context, id uint, patch models.CoursePatch) (*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.courses[id]
	if !ok {
		return nil, ErrNotFound
	}
	patch.Apply(&c)
	r.courses[id] = c
	out := c.Clone()
	return &out, nil
}

func (r *MemoryRepo) DeleteCourse(ctx context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.courses[id]; !ok {
		return false, nil
	}
	delete(r.courses, id)
	for i, v := range r.courseOrder {
		if v == id {
			r.courseOrder = append(r.courseOrder[:i], r.courseOrder[i+1:]...)
			break
		}
	}
	return true, nil
}

func (r *MemoryRepo) CountActiveCourses(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, c := range r.courses {
		if c.IsActive {
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepo) SearchCourses(ctx context.Context, q string) ([]models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(q))
	out := make([]models.Course, 0)
	for _, id := range r.courseOrder {
		c := r.courses[id]
		if c.IsActive && courseMatches(c, needle) {
			out = append(out, c.Clone())
		}
	}
	return out, nil
}

func courseMatches(c models.Course, needle string) bool {
	if strings.Contains(strings.ToLower(c.Title), needle) ||
		strings.Contains(strings.ToLower(c.Description), needle) {
		return true
	}
	for _, t := range c.Tags {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}

func (r *MemoryRepo) AddCartItem(ctx context.Context, sessionID string, courseID uint) (*models.CartItem, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, it := range r.cartItems {
		if it.SessionID == sessionID && it.CourseID == courseID {
			out := it
			return &out, false, nil
		}
	}

	item := models.CartItem{
		ID:        r.nextCart,
		SessionID: sessionID,
		CourseID:  courseID,
		AddedAt:   r.now(),
	}
	r.nextCart++
	r.cartItems = append(r.cartItems, item)
	return &item, true, nil
}

func (r *MemoryRepo) ListCart(ctx context.Context, sessionID string) ([]models.CartLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lines := make([]models.CartLine, 0)
	for _, it := range r.cartItems {
		if it.SessionID != sessionID {
			continue
		}
		c, ok := r.courses[it.CourseID]
		if !ok {
			continue
		}
		lines = append(lines, models.CartLine{CartItem: it, Course: c.Clone()})
	}
	return lines, nil
}

func (r *MemoryRepo) RemoveCartItem(ctx context.Context, sessionID string, courseID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.cartItems {
		if it.SessionID == sessionID && it.CourseID == courseID {
			r.cartItems = append(r.cartItems[:i], r.cartItems[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepo) ClearCart(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.cartItems[:0]
	for _, it := range r.cartItems {
		if it.SessionID != sessionID {
			kept = append(kept, it)
		}
	}
	r.cartItems = kept
	return nil
}

func (r *MemoryRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	if !order.PaymentMethod.Allows(order.Status) {
		return fmt.Errorf("%w: %s order cannot start as %s", ErrInvalidTransition, order.PaymentMethod, order.Status)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, o := range r.orders {
		if o.PaymentReference == order.PaymentReference {
			return fmt.Errorf("%w: payment reference %s", ErrConflict, order.PaymentReference)
		}
	}

	order.ID = r.nextOrder
	r.nextOrder++
	if order.CreatedAt.IsZero() {
		order.CreatedAt = r.now()
	}
	r.orders = append(r.orders, order.Clone())
	return nil
}

func (r *MemoryRepo) GetOrderByReference(ctx context.Context, ref string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.PaymentReference == ref {
			out := o.Clone()
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepo) ListOrders(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if status == "" || o.Status == status {
			out = append(out, o.Clone())
		}
	}
	return out, nil
}

func (r *MemoryRepo) TransitionOrder(ctx context.Context, id uint, to models.OrderStatus, utr *string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		o := &r.orders[i]
		if o.ID != id {
			continue
		}
		if !o.PaymentMethod.CanTransition(o.Status, to) {
			return nil, fmt.Errorf("%w: %s order %s -> %s", ErrInvalidTransition, o.PaymentMethod, o.Status, to)
		}
		o.Status = to
		if utr != nil {
			v := *utr
			o.UTRNumber = &v
		}
		out := o.Clone()
		return &out, nil
	}
	return nil, ErrNotFound
}

func (r *MemoryRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *MemoryRepo) CreateUser(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Username]; ok {
		return fmt.Errorf("%w: username %s", ErrConflict, user.Username)
	}
	user.ID = r.nextUser
	r.nextUser++
	r.users[user.Username] = *user
	return nil
}
