// Package webserver hosts the echo HTTP server and the access gate: every
// /api route is preconditioned on a valid session cookie or bearer token.
package webserver

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/talkincode/pharmadmin/internal/app"
	"github.com/talkincode/pharmadmin/internal/domain"
	"github.com/talkincode/pharmadmin/pkg/metrics"
	"go.uber.org/zap"
)

const (
	ContextAppKey      = "pharmadmin_appctx"
	ContextOperatorKey = "pharmadmin_operator"

	SessionName     = "pharmadmin_session"
	SessionOprIdKey = "operator_id"
)

var server *WebServer

type WebServer struct {
	root   *echo.Echo
	api    *echo.Group
	appCtx app.AppContext
}

// Init builds the package level web server instance
func Init(appCtx app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}

	e.Use(middleware.Recover())
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(appCtx.Config().Web.Secret))))

	server = &WebServer{root: e, appCtx: appCtx}
	e.Use(server.contextMiddleware)

	server.api = e.Group("/api", server.authMiddleware)

	e.POST("/api/login", server.loginHandler)
	e.POST("/api/logout", server.logoutHandler)
	e.POST("/api/token", server.tokenHandler)

	return server
}

// Echo exposes the underlying echo instance (used in tests)
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

// Listen starts the blocking HTTP listener
func Listen() error {
	cfg := server.appCtx.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.L().Info("starting web server", zap.String("addr", addr))
	return server.root.Start(addr)
}

// Shutdown closes the HTTP listener
func Shutdown() error {
	return server.root.Close()
}

func (s *WebServer) contextMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(ContextAppKey, s.appCtx)
		metrics.IncrCounter("http_requests", 1)
		return next(c)
	}
}

// authMiddleware resolves the current operator from the session cookie or
// a bearer token. Requests without one are rejected with a plain text 401.
func (s *WebServer) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		operator, err := s.currentOperator(c)
		if err != nil {
			return c.String(http.StatusUnauthorized, "Unauthorized")
		}
		c.Set(ContextOperatorKey, operator)
		return next(c)
	}
}

// RequireAdmin gates a route on the ADMIN operator level
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		operator, ok := c.Get(ContextOperatorKey).(domain.SysOpr)
		if !ok || !operator.IsAdmin() {
			return c.String(http.StatusForbidden, "Forbidden")
		}
		return next(c)
	}
}

func ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.GET(path, h, m...)
}

func ApiPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.POST(path, h, m...)
}

func ApiPUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.PUT(path, h, m...)
}

func ApiPATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.PATCH(path, h, m...)
}

func ApiDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.api.DELETE(path, h, m...)
}
