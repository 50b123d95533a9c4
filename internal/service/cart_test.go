package service

import (
	"context"
	"testing"

	"github.com/Skotchmaster/cyberacademy/internal/models"
	"github.com/Skotchmaster/cyberacademy/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCart(t *testing.T, prices ...string) (*CartService, *repo.MemoryRepo, []models.Course, *recordingPublisher) {
	t.Helper()

	store := repo.NewMemoryRepo()
	courses := make([]models.Course, 0, len(prices))
	for i, p := range prices {
		c := models.Course{Title: "course " + string(rune('A'+i)), Price: p, IsActive: true}
		require.NoError(t, store.CreateCourse(context.Background(), &c))
		courses = append(courses, c)
	}
	pub := &recordingPublisher{}
	return &CartService{Repo: store, Courses: store, Events: pub}, store, courses, pub
}

func TestCartService_AddTwiceKeepsOneItem(t *testing.T) {
	t.Parallel()

	svc, _, courses, pub := newCart(t, "100.00")
	ctx := context.Background()

	first, created, err := svc.Add(ctx, "s1", courses[0].ID)
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := svc.Add(ctx, "s1", courses[0].ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first, second)

	lines, err := svc.List(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, lines, 1)
	assert.Equal(t, []string{"cart_item_added"}, pub.types())
}

func TestCartService_AddValidation(t *testing.T) {
	t.Parallel()

	svc, _, courses, _ := newCart(t, "1.00")
	ctx := context.Background()

	_, _, err := svc.Add(ctx, "", courses[0].ID)
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = svc.Add(ctx, "s1", 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = svc.Add(ctx, "s1", 77)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartService_RemoveMissingReportsNotFound(t *testing.T) {
	t.Parallel()

	svc, _, courses, _ := newCart(t, "1.00", "2.00")
	ctx := context.Background()

	_, _, err := svc.Add(ctx, "s1", courses[0].ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Remove(ctx, "s1", courses[1].ID), ErrNotFound)

	lines, err := svc.List(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, courses[0].ID, lines[0].CourseID)

	require.NoError(t, svc.Remove(ctx, "s1", courses[0].ID))
	lines, err = svc.List(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCartService_ClearIsIdempotent(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newCart(t)
	ctx := context.Background()

	require.NoError(t, svc.Clear(ctx, "never-used"))
	require.NoError(t, svc.Clear(ctx, "never-used"))

	lines, err := svc.List(ctx, "never-used")
	require.NoError(t, err)
	assert.Empty(t, lines)

	assert.ErrorIs(t, svc.Clear(ctx, ""), ErrValidation)
}

func TestCartService_DeletedCourseIsOmitted(t *testing.T) {
	t.Parallel()

	svc, store, courses, _ := newCart(t, "1.00", "2.00")
	ctx := context.Background()

	for _, c := range courses {
		_, _, err := svc.Add(ctx, "s1", c.ID)
		require.NoError(t, err)
	}
	_, err := store.DeleteCourse(ctx, courses[0].ID)
	require.NoError(t, err)

	lines, err := svc.List(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, courses[1].ID, lines[0].Course.ID)
}

func TestCartService_PublishFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	svc, _, courses, pub := newCart(t, "1.00")
	pub.err = errBoom

	_, created, err := svc.Add(context.Background(), "s1", courses[0].ID)
	require.NoError(t, err)
	assert.True(t, created)
}
