// Package adminapi implements the JSON API consumed by the pharmacy
// dashboard. Success bodies are JSON; failure bodies are plain text
// strings (401/400/500), which is the contract the dashboard expects.
package adminapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/talkincode/pharmadmin/internal/app"
	"github.com/talkincode/pharmadmin/internal/domain"
	"github.com/talkincode/pharmadmin/internal/webserver"
	"github.com/talkincode/pharmadmin/pkg/common"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Init registers every admin API route on the web server
func Init() {
	registerOrderRoutes()
	registerProductRoutes()
	registerCategoryRoutes()
	registerClientRoutes()
	registerPrescriptionRoutes()
	registerDashboardRoutes()
	registerSystemRoutes()
}

// GetApp returns the application context bound to the request
func GetApp(c echo.Context) app.AppContext {
	appCtx, _ := c.Get(webserver.ContextAppKey).(app.AppContext)
	return appCtx
}

// GetDB returns the request scoped database handle
func GetDB(c echo.Context) *gorm.DB {
	return GetApp(c).DB()
}

// Operator returns the authenticated operator bound to the request
func Operator(c echo.Context) domain.SysOpr {
	operator, _ := c.Get(webserver.ContextOperatorKey).(domain.SysOpr)
	return operator
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

// fail writes a plain text error body
func fail(c echo.Context, status int, message string) error {
	return c.String(status, message)
}

// failInternal logs the originating operation and returns a plain 500
func failInternal(c echo.Context, op string, err error) error {
	zap.L().Error("admin api error",
		zap.String("operation", op),
		zap.String("path", c.Path()),
		zap.Error(err))
	return c.String(http.StatusInternalServerError, "Internal server error")
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "invalid id param")
	}
	return id, nil
}

// logOperation records a mutating action in the operator audit log
func logOperation(c echo.Context, action, desc string) {
	operator := Operator(c)
	GetDB(c).Create(&domain.SysOprLog{
		ID:        common.UUIDint64(),
		OprName:   operator.Username,
		OprIp:     c.RealIP(),
		OptAction: action,
		OptDesc:   desc,
		OptTime:   time.Now(),
	})
}
