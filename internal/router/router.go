// Package router wires handlers and middleware onto the echo instance.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/palm-beach-resort/internal/handler"
	"github.com/iliyamo/palm-beach-resort/internal/middleware"
	"github.com/iliyamo/palm-beach-resort/internal/model"
)

// Handlers bundles every route handler.
type Handlers struct {
	Health   handler.HealthHandler
	Catalog  *handler.CatalogHandler
	Bookings *handler.BookingHandler
	Cart     *handler.CartHandler
	Auth     *handler.AuthHandler
	Admin    *handler.AdminHandler
}

// Middleware holds the per-deployment middleware. Nil entries are skipped.
type Middleware struct {
	Credentials echo.MiddlewareFunc
	RateLimit   echo.MiddlewareFunc
	Cache       echo.MiddlewareFunc
}

// RegisterRoutes mounts /healthz and everything under /v1.
func RegisterRoutes(e *echo.Echo, h Handlers, mw Middleware) {
	e.GET("/healthz", h.Health.Health)

	v1 := e.Group("/v1", compact(mw.Credentials, mw.RateLimit)...)
	RegisterPublic(v1, h.Catalog, mw.Cache)
	RegisterAuth(v1, h.Auth)
	RegisterGuest(v1, h.Bookings, h.Cart)
	RegisterAdmin(v1, h.Admin)
}

// RegisterPublic mounts the catalogue. These are the only cached routes.
func RegisterPublic(g *echo.Group, p *handler.CatalogHandler, cache echo.MiddlewareFunc) {
	mws := compact(cache)
	g.GET("/rooms", p.ListRooms, mws...)
	g.GET("/rooms/availability", p.Availability, mws...)
	g.GET("/rooms/:id", p.GetRoom, mws...)
	g.GET("/menu-items", p.ListMenuItems, mws...)
	g.GET("/menu-items/:id", p.GetMenuItem, mws...)
}

// RegisterAuth mounts login, signup, refresh and the profile.
func RegisterAuth(g *echo.Group, a *handler.AuthHandler) {
	g.POST("/auth/login", a.Login)
	g.POST("/auth/signup", a.Signup)
	g.POST("/auth/refresh", a.Refresh)

	g.GET("/me", a.Me, middleware.RequireAuth())
	g.PUT("/me", a.UpdateMe, middleware.RequireAuth())
}

// RegisterGuest mounts bookings, invoices, the cart and orders. Cart
// routes identify anonymous guests by X-Session-ID.
func RegisterGuest(g *echo.Group, b *handler.BookingHandler, ch *handler.CartHandler) {
	g.POST("/bookings", b.Create)
	g.GET("/bookings/:id", b.Get)
	g.GET("/bookings/:id/invoice", b.Invoice)

	cg := g.Group("/cart", middleware.Session())
	cg.GET("", ch.Get)
	cg.DELETE("", ch.Clear)
	cg.POST("/items", ch.AddItem)
	cg.PATCH("/items/:id", ch.UpdateItem)
	cg.DELETE("/items/:id", ch.RemoveItem)
	cg.POST("/checkout", ch.Checkout)

	g.GET("/orders", ch.ListOrders, middleware.RequireAuth())
}

// RegisterAdmin mounts the admin panel routes; all require role ADMIN.
func RegisterAdmin(g *echo.Group, a *handler.AdminHandler) {
	ag := g.Group("/admin", middleware.RequireRole(model.RoleAdmin))

	ag.GET("/bookings", a.ListBookings)
	ag.GET("/bookings/:id", a.GetBooking)
	ag.PUT("/bookings/:id", a.UpdateBooking)
	ag.PUT("/bookings/:id/status", a.UpdateBookingStatus)
	ag.DELETE("/bookings/:id", a.DeleteBooking)

	ag.GET("/rooms", a.ListRooms)
	ag.POST("/rooms", a.CreateRoom)
	ag.GET("/rooms/:id", a.GetRoom)
	ag.PUT("/rooms/:id", a.UpdateRoom)
	ag.DELETE("/rooms/:id", a.DeleteRoom)

	ag.POST("/menu-items", a.CreateMenuItem)
	ag.PUT("/menu-items/:id", a.UpdateMenuItem)
	ag.DELETE("/menu-items/:id", a.DeleteMenuItem)
}

func compact(mws ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
	out := make([]echo.MiddlewareFunc, 0, len(mws))
	for _, m := range mws {
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}
