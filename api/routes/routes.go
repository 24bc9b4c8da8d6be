package routes

import (
	"github.com/mihkuno/RESPOCU/api/handler"
	"github.com/mihkuno/RESPOCU/api/middleware"

	"github.com/labstack/echo/v4"
)

type Router struct {
	Echo     *echo.Echo
	Auth     *handler.AuthHandler
	Accounts *handler.AccountHandler
	Studies  *handler.StudyHandler
	Gate     middleware.SessionGate
}

func NewRouter(
	e *echo.Echo,
	authHandler *handler.AuthHandler,
	accountHandler *handler.AccountHandler,
	studyHandler *handler.StudyHandler,
	gate middleware.SessionGate,
) *Router {
	return &Router{
		Echo:     e,
		Auth:     authHandler,
		Accounts: accountHandler,
		Studies:  studyHandler,
		Gate:     gate,
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo

	// The gate runs on every request; it only attaches identity and never
	// rejects. RequireAuth/RequireRole do the rejecting per route.
	e.Use(r.Gate.Gate)

	e.POST("/auth/signup", r.Auth.Signup)
	e.GET("/auth/verify", r.Auth.Verify)
	e.POST("/auth/login", r.Auth.Login)
	e.POST("/auth/forgot", r.Auth.Forgot)
	e.POST("/auth/logout", r.Auth.Logout)
	e.GET("/auth/session", r.Auth.Session)

	e.GET("/studies", r.Studies.List, middleware.RequireAuth)
	e.GET("/studies/archived", r.Studies.ListArchived, middleware.RequireAuth)
	e.POST("/studies", r.Studies.Publish, middleware.RequireAuth)
	e.PUT("/studies/:id", r.Studies.Update, middleware.RequireAuth)
	e.GET("/studies/:id/file", r.Studies.Download, middleware.RequireAuth)
	e.POST("/studies/:id/bookmark", r.Studies.Bookmark, middleware.RequireAuth)
	e.DELETE("/studies/:id/bookmark", r.Studies.Unbookmark, middleware.RequireAuth)

	admin := []echo.MiddlewareFunc{middleware.RequireAuth, middleware.RequireRole("admin")}
	e.POST("/studies/:id/archive", r.Studies.Archive, admin...)
	e.POST("/studies/:id/restore", r.Studies.Restore, admin...)
	e.POST("/studies/:id/best", r.Studies.MarkBest, admin...)
	e.DELETE("/studies/:id/best", r.Studies.UnmarkBest, admin...)
	e.DELETE("/studies/:id", r.Studies.Delete, admin...)

	e.GET("/admin/accounts", r.Accounts.List, admin...)
	e.POST("/admin/accounts/:id/promote", r.Accounts.Promote, admin...)
	e.POST("/admin/accounts/:id/demote", r.Accounts.Demote, admin...)
	e.DELETE("/admin/accounts/:id", r.Accounts.Delete, admin...)
}
