package repo

import (
	"context"
	"testing"

	"github.com/Skotchmaster/cyberacademy/internal/db"
	"github.com/Skotchmaster/cyberacademy/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storeFactory struct {
	name string
	open func(t *testing.T) Store
}

func factories() []storeFactory {
	return []storeFactory{
		{name: "memory", open: func(t *testing.T) Store { return NewMemoryRepo() }},
		{name: "sqlite", open: func(t *testing.T) Store {
			gdb, err := db.Open(context.Background(), "sqlite", ":memory:")
			require.NoError(t, err)
			t.Cleanup(func() { db.Close(gdb) })

			r := NewGormRepo(gdb)
			require.NoError(t, r.Migrate(context.Background()))
			return r
		}},
	}
}

// forEachStore runs fn against every backing so both honour one contract.
func forEachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	for _, f := range factories() {
		f := f
		t.Run(f.name, func(t *testing.T) {
			t.Parallel()
			fn(t, f.open(t))
		})
	}
}

func newCourse(title, price string, active bool) *models.Course {
	return &models.Course{
		Title:       title,
		Description: title + " description",
		Price:       price,
		Duration:    "4 weeks",
		Difficulty:  "BEGINNER",
		Tags:        []string{"tag-" + title},
		IsActive:    active,
	}
}

func TestCourseStore_ListActiveKeepsInsertionOrder(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		a := newCourse("a", "10.00", true)
		b := newCourse("b", "20.00", false)
		c := newCourse("c", "30.00", true)
		for _, course := range []*models.Course{a, b, c} {
			require.NoError(t, s.CreateCourse(ctx, course))
		}
		assert.EqualValues(t, 1, a.ID)
		assert.EqualValues(t, 3, c.ID)

		active, err := s.ListActiveCourses(ctx)
		require.NoError(t, err)
		require.Len(t, active, 2)
		assert.Equal(t, "a", active[0].Title)
		assert.Equal(t, "c", active[1].Title)
		for _, course := range active {
			assert.True(t, course.IsActive)
		}

		all, err := s.ListCourses(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		n, err := s.CountActiveCourses(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)
	})
}

func TestCourseStore_GetUpdateDelete(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		course := newCourse("web", "29999.00", true)
		require.NoError(t, s.CreateCourse(ctx, course))

		got, err := s.GetCourse(ctx, course.ID)
		require.NoError(t, err)
		assert.Equal(t, "web", got.Title)
		assert.Equal(t, []string{"tag-web"}, got.Tags)
		assert.Nil(t, got.Features)

		_, err = s.GetCourse(ctx, 999)
		assert.ErrorIs(t, err, ErrNotFound)

		price := "19999.00"
		inactive := false
		updated, err := s.UpdateCourse(ctx, course.ID, models.CoursePatch{Price: &price, IsActive: &inactive})
		require.NoError(t, err)
		assert.Equal(t, "19999.00", updated.Price)
		assert.Equal(t, "web", updated.Title)
		assert.False(t, updated.IsActive)

		_, err = s.UpdateCourse(ctx, 999, models.CoursePatch{Price: &price})
		assert.ErrorIs(t, err, ErrNotFound)

		deleted, err := s.DeleteCourse(ctx, course.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = s.DeleteCourse(ctx, course.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestCourseStore_UpdateClearsNullableFields(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		course := newCourse("a", "1.00", true)
		img := "https://img.example/a.png"
		course.ImageURL = &img
		course.Features = []string{"labs"}
		require.NoError(t, s.CreateCourse(ctx, course))

		var none []string
		_, err := s.UpdateCourse(ctx, course.ID, models.CoursePatch{ClearImageURL: true, Tags: &none})
		require.NoError(t, err)

		got, err := s.GetCourse(ctx, course.ID)
		require.NoError(t, err)
		assert.Nil(t, got.ImageURL)
		assert.Empty(t, got.Tags)
		assert.Equal(t, []string{"labs"}, got.Features)
	})
}

func TestCourseStore_GetCoursesSkipsMissing(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		a := newCourse("a", "1.00", true)
		b := newCourse("b", "2.00", true)
		require.NoError(t, s.CreateCourse(ctx, a))
		require.NoError(t, s.CreateCourse(ctx, b))

		got, err := s.GetCourses(ctx, []uint{b.ID, 42, a.ID})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, b.ID, got[0].ID)
		assert.Equal(t, a.ID, got[1].ID)
	})
}

func TestCourseStore_SearchCourses(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		web := newCourse("Web Hacking", "1.00", true)
		web.Tags = []string{"owasp"}
		hidden := newCourse("Web Secrets", "1.00", false)
		other := newCourse("Forensics", "1.00", true)
		for _, c := range []*models.Course{web, hidden, other} {
			require.NoError(t, s.CreateCourse(ctx, c))
		}

		got, err := s.SearchCourses(ctx, "WEB")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, web.ID, got[0].ID)

		got, err = s.SearchCourses(ctx, "owasp")
		require.NoError(t, err)
		require.Len(t, got, 1)

		got, err = s.SearchCourses(ctx, "100%")
		require.NoError(t, err)
		assert.Empty(t, got)

		ops := newCourse("Red Team Ops", "1.00", true)
		ops.Tags = []string{"red", "blue", "c&c"}
		require.NoError(t, s.CreateCourse(ctx, ops))

		got, err = s.SearchCourses(ctx, "C&C")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, ops.ID, got[0].ID)

		for _, q := range []string{`","`, `[`, `"`} {
			got, err = s.SearchCourses(ctx, q)
			require.NoError(t, err)
			assert.Empty(t, got, "query %s", q)
		}
	})
}

func TestCartStore_AddIsIdempotent(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		course := newCourse("a", "100.00", true)
		require.NoError(t, s.CreateCourse(ctx, course))

		first, created, err := s.AddCartItem(ctx, "s1", course.ID)
		require.NoError(t, err)
		assert.True(t, created)

		second, created, err := s.AddCartItem(ctx, "s1", course.ID)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.AddedAt.Unix(), second.AddedAt.Unix())

		lines, err := s.ListCart(ctx, "s1")
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, "100.00", lines[0].Course.Price)
	})
}

func TestCartStore_ListDropsDeletedCourses(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		keep := newCourse("keep", "1.00", true)
		gone := newCourse("gone", "2.00", true)
		require.NoError(t, s.CreateCourse(ctx, keep))
		require.NoError(t, s.CreateCourse(ctx, gone))

		_, _, err := s.AddCartItem(ctx, "s1", keep.ID)
		require.NoError(t, err)
		_, _, err = s.AddCartItem(ctx, "s1", gone.ID)
		require.NoError(t, err)

		_, err = s.DeleteCourse(ctx, gone.ID)
		require.NoError(t, err)

		lines, err := s.ListCart(ctx, "s1")
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, keep.ID, lines[0].CourseID)
	})
}

func TestCartStore_RemoveAndClear(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		a := newCourse("a", "1.00", true)
		b := newCourse("b", "2.00", true)
		require.NoError(t, s.CreateCourse(ctx, a))
		require.NoError(t, s.CreateCourse(ctx, b))

		_, _, err := s.AddCartItem(ctx, "s1", a.ID)
		require.NoError(t, err)
		_, _, err = s.AddCartItem(ctx, "s1", b.ID)
		require.NoError(t, err)
		_, _, err = s.AddCartItem(ctx, "s2", a.ID)
		require.NoError(t, err)

		removed, err := s.RemoveCartItem(ctx, "s1", 99)
		require.NoError(t, err)
		assert.False(t, removed)

		lines, err := s.ListCart(ctx, "s1")
		require.NoError(t, err)
		assert.Len(t, lines, 2)

		removed, err = s.RemoveCartItem(ctx, "s1", a.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		require.NoError(t, s.ClearCart(ctx, "s1"))
		require.NoError(t, s.ClearCart(ctx, "s1"))
		require.NoError(t, s.ClearCart(ctx, "never-used"))

		lines, err = s.ListCart(ctx, "s1")
		require.NoError(t, err)
		assert.Empty(t, lines)

		lines, err = s.ListCart(ctx, "s2")
		require.NoError(t, err)
		assert.Len(t, lines, 1)
	})
}

func TestOrderStore_Lifecycle(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		order := &models.Order{
			CourseIDs:        []uint{1, 2},
			TotalAmount:      "125.00",
			PaymentMethod:    models.PaymentManual,
			PaymentReference: "tok-1",
			Status:           models.StatusPendingPayment,
		}
		require.NoError(t, s.CreateOrder(ctx, order))
		assert.EqualValues(t, 1, order.ID)
		assert.False(t, order.CreatedAt.IsZero())

		dup := *order
		dup.ID = 0
		assert.ErrorIs(t, s.CreateOrder(ctx, &dup), ErrConflict)

		got, err := s.GetOrderByReference(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, []uint{1, 2}, got.CourseIDs)
		assert.Nil(t, got.UserID)

		_, err = s.GetOrderByReference(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)

		utr := "123456789012"
		moved, err := s.TransitionOrder(ctx, order.ID, models.StatusPendingVerification, &utr)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPendingVerification, moved.Status)
		require.NotNil(t, moved.UTRNumber)
		assert.Equal(t, utr, *moved.UTRNumber)
		assert.Equal(t, "125.00", moved.TotalAmount)

		_, err = s.TransitionOrder(ctx, order.ID, models.StatusCompleted, nil)
		assert.ErrorIs(t, err, ErrInvalidTransition)

		_, err = s.TransitionOrder(ctx, 999, models.StatusPendingVerification, nil)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestOrderStore_RejectsStatusOutsidePaymentPath(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		err := s.CreateOrder(ctx, &models.Order{
			TotalAmount:      "1.00",
			PaymentMethod:    models.PaymentManual,
			PaymentReference: "tok",
			Status:           models.StatusCompleted,
		})
		assert.ErrorIs(t, err, ErrInvalidTransition)

		err = s.CreateOrder(ctx, &models.Order{
			TotalAmount:      "1.00",
			PaymentMethod:    models.PaymentCard,
			PaymentReference: "pi_1",
			Status:           models.StatusPendingVerification,
		})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestOrderStore_ListByStatus(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		require.NoError(t, s.CreateOrder(ctx, &models.Order{
			CourseIDs: []uint{1}, TotalAmount: "1.00", PaymentMethod: models.PaymentCard,
			PaymentReference: "pi_1", Status: models.StatusCompleted,
		}))
		require.NoError(t, s.CreateOrder(ctx, &models.Order{
			CourseIDs: []uint{2}, TotalAmount: "2.00", PaymentMethod: models.PaymentManual,
			PaymentReference: "tok-2", Status: models.StatusPendingPayment,
		}))

		all, err := s.ListOrders(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 2)

		done, err := s.ListOrders(ctx, models.StatusCompleted)
		require.NoError(t, err)
		require.Len(t, done, 1)
		assert.Equal(t, "pi_1", done[0].PaymentReference)
	})
}

func TestUserStore(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		u := &models.User{Username: "admin", PasswordHash: "hash", IsAdmin: true}
		require.NoError(t, s.CreateUser(ctx, u))
		assert.EqualValues(t, 1, u.ID)

		assert.ErrorIs(t, s.CreateUser(ctx, &models.User{Username: "admin", PasswordHash: "x"}), ErrConflict)

		got, err := s.GetUserByUsername(ctx, "admin")
		require.NoError(t, err)
		assert.True(t, got.IsAdmin)
		assert.Equal(t, "hash", got.PasswordHash)

		_, err = s.GetUserByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSeed(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		res, err := Seed(ctx, s, &models.User{Username: "admin", PasswordHash: "h", IsAdmin: true})
		require.NoError(t, err)
		assert.Equal(t, 6, res.Courses)
		assert.True(t, res.AdminCreated)

		res, err = Seed(ctx, s, &models.User{Username: "admin", PasswordHash: "h", IsAdmin: true})
		require.NoError(t, err)
		assert.Zero(t, res.Courses)
		assert.False(t, res.AdminCreated)

		active, err := s.ListActiveCourses(ctx)
		require.NoError(t, err)
		require.Len(t, active, 6)
		assert.Equal(t, "Advanced Penetration Testing", active[0].Title)
		assert.Equal(t, "24999.00", active[0].Price)
	})
}
