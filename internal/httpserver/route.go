package httpserver

import (
	"context"
	"net/http"

	"github.com/Skotchmaster/cyberacademy/internal/logging"
	"github.com/Skotchmaster/cyberacademy/internal/middleware/auth"
	"github.com/labstack/echo/v4"
)

type Deps struct {
	CatalogHandler  *CatalogHTTP
	CartHandler     *CartHTTP
	CheckoutHandler *CheckoutHTTP
	AdminHandler    *AdminHTTP
	AdminAuth       auth.Authenticator

	// Ready reports whether the backing store is reachable; nil means always ready.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready == nil {
			return c.NoContent(http.StatusOK)
		}
		ctx := c.Request().Context()
		if err := d.Ready(ctx); err != nil {
			logging.FromContext(ctx).Warn("readiness_failed", "error", err)
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	adminMW := auth.NewAdminMiddleware(d.AdminAuth)
	api := e.Group("/api")

	courses := api.Group("/courses")
	courses.GET("", d.CatalogHandler.ListCourses)
	courses.GET("/search", d.CatalogHandler.SearchCourses)
	courses.GET("/:id", d.CatalogHandler.GetCourse)

	adminCourses := courses.Group("", adminMW.RequireAdmin)
	adminCourses.POST("", d.CatalogHandler.CreateCourse)
	adminCourses.PUT("/:id", d.CatalogHandler.UpdateCourse)
	adminCourses.PATCH("/:id", d.CatalogHandler.UpdateCourse)
	adminCourses.DELETE("/:id", d.CatalogHandler.DeleteCourse)

	cart := api.Group("/cart")
	cart.POST("", d.CartHandler.AddToCart)
	cart.GET("/:sessionId", d.CartHandler.GetCart)
	cart.DELETE("/:sessionId", d.CartHandler.ClearCart)
	cart.DELETE("/:sessionId/:courseId", d.CartHandler.RemoveFromCart)

	api.POST("/create-payment-intent", d.CheckoutHandler.CreatePaymentIntent)
	api.POST("/complete-order", d.CheckoutHandler.CompleteOrder)
	api.POST("/generate-payment", d.CheckoutHandler.GeneratePayment)
	api.POST("/verify-payment", d.CheckoutHandler.VerifyPayment)
	api.GET("/orders/:token", d.CheckoutHandler.GetOrder)

	admin := api.Group("/admin")
	admin.POST("/login", d.AdminHandler.Login)

	guarded := admin.Group("", adminMW.RequireAdmin)
	guarded.GET("/stats", d.AdminHandler.Stats)
	guarded.GET("/courses", d.CatalogHandler.ListAllCourses)
	guarded.POST("/courses", d.CatalogHandler.CreateCourse)
	guarded.DELETE("/courses/:id", d.CatalogHandler.DeleteCourse)
	guarded.GET("/orders", d.AdminHandler.ListOrders)
}
