package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Skotchmaster/cyberacademy/internal/logging"
	"github.com/Skotchmaster/cyberacademy/internal/middleware/auth"
	"github.com/Skotchmaster/cyberacademy/internal/service"
	"github.com/Skotchmaster/cyberacademy/internal/transport"
	"github.com/labstack/echo/v4"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

// withAdmin tags catalog mutations with the admin who made them.
func withAdmin(c echo.Context, l *slog.Logger) *slog.Logger {
	if p := auth.PrincipalFrom(c); p != nil {
		return l.With("admin", p.Username)
	}
	return l
}

func (h *CatalogHTTP) ListCourses(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "course.list_courses")

	courses, err := h.Svc.ListActive(ctx)
	if err != nil {
		l.Error("list_courses_failed", "status", 500, "reason", "cannot read catalog", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching courses")
	}
	return c.JSON(http.StatusOK, courses)
}

func (h *CatalogHTTP) ListAllCourses(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "course.list_all_courses")

	courses, err := h.Svc.ListAll(ctx)
	if err != nil {
		l.Error("list_all_courses_failed", "status", 500, "reason", "cannot read catalog", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching courses")
	}
	return c.JSON(http.StatusOK, courses)
}

func (h *CatalogHTTP) GetCourse(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "course.get_course")

	id, err := uintParam(c, "id")
	if err != nil {
		l.Warn("get_course_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid course id")
	}

	course, err := h.Svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_course_failed", "status", 404, "reason", "course does not exist", "course_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Course not found")
		}
		l.Error("get_course_failed", "status", 500, "reason", "cannot read course", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching course")
	}
	return c.JSON(http.StatusOK, course)
}

func (h *CatalogHTTP) SearchCourses(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "course.search_courses")

	courses, err := h.Svc.Search(ctx, c.QueryParam("q"))
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("search_courses_failed", "status", 400, "reason", "empty query")
			return echo.NewHTTPError(http.StatusBadRequest, "Search query is required")
		}
		l.Error("search_courses_failed", "status", 500, "reason", "search failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error searching courses")
	}
	return c.JSON(http.StatusOK, courses)
}

func (h *CatalogHTTP) CreateCourse(c echo.Context) error {
	ctx := c.Request().Context()
	l := withAdmin(c, logging.FromContext(ctx).With("handler", "course.create_course"))

	var req transport.CreateCourseRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_course_failed", "status", 400, "reason", "invalid body", "error", err)
		return invalid("Invalid course data", err)
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("create_course_failed", "status", 400, "reason", "schema validation", "error", err)
		return invalid("Invalid course data", err)
	}

	course, err := h.Svc.Create(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_course_failed", "status", 400, "reason", "invalid field", "error", err)
			return invalid("Invalid course data", err)
		}
		l.Error("create_course_failed", "status", 500, "reason", "cannot store course", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error creating course")
	}

	l.Info("create_course_success", "course_id", course.ID)
	return c.JSON(http.StatusCreated, course)
}

func (h *CatalogHTTP) UpdateCourse(c echo.Context) error {
	ctx := c.Request().Context()
	l := withAdmin(c, logging.FromContext(ctx).With("handler", "course.update_course"))

	id, err := uintParam(c, "id")
	if err != nil {
		l.Warn("update_course_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid course id")
	}

	var req transport.PatchCourseRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_course_failed", "status", 400, "reason", "invalid body", "error", err)
		return invalid("Invalid course data", err)
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("update_course_failed", "status", 400, "reason", "schema validation", "error", err)
		return invalid("Invalid course data", err)
	}

	course, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("update_course_failed", "status", 404, "reason", "course does not exist", "course_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Course not found")
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_course_failed", "status", 400, "reason", "invalid field", "error", err)
			return invalid("Invalid course data", err)
		}
		l.Error("update_course_failed", "status", 500, "reason", "cannot store course", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error updating course")
	}

	l.Info("update_course_success", "course_id", course.ID)
	return c.JSON(http.StatusOK, course)
}

func (h *CatalogHTTP) DeleteCourse(c echo.Context) error {
	ctx := c.Request().Context()
	l := withAdmin(c, logging.FromContext(ctx).With("handler", "course.delete_course"))

	id, err := uintParam(c, "id")
	if err != nil {
		l.Warn("delete_course_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid course id")
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_course_failed", "status", 404, "reason", "course does not exist", "course_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Course not found")
		}
		l.Error("delete_course_failed", "status", 500, "reason", "cannot delete course", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error deleting course")
	}

	l.Info("delete_course_success", "course_id", id)
	return c.JSON(http.StatusOK, messageResponse{Message: "Course deleted successfully"})
}
