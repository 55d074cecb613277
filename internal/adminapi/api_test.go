package adminapi

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/pharmadmin/config"
	"github.com/talkincode/pharmadmin/internal/app"
	"github.com/talkincode/pharmadmin/internal/domain"
	"github.com/talkincode/pharmadmin/internal/webserver"
	"github.com/talkincode/pharmadmin/pkg/common"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) *app.Application {
	t.Helper()
	cfg := &config.AppConfig{
		System: config.SysConfig{Appid: "pharmadmin-test", Location: "UTC", Workdir: t.TempDir()},
		Web:    config.WebConfig{Secret: "test-secret"},
	}
	testApp := app.NewApplication(cfg)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "pharmadmin.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	testApp.OverrideDB(db)
	require.NoError(t, testApp.MigrateDB(false))
	return testApp
}

func newTestOperator(t *testing.T, testApp *app.Application) domain.SysOpr {
	t.Helper()
	operator := domain.SysOpr{
		ID:        common.UUIDint64(),
		Realname:  "Test Operator",
		Email:     "operator@pharmacy.test",
		Username:  "tester",
		Password:  common.Sha256HashWithSalt("secret", common.GetSecretSalt()),
		Level:     domain.OperatorLevelAdmin,
		Status:    common.ENABLED,
		LastLogin: time.Now(),
	}
	require.NoError(t, testApp.DB().Create(&operator).Error)
	return operator
}

// newTestContext builds an echo context with the application and operator
// already bound, mirroring what the webserver middleware does.
func newTestContext(t *testing.T, testApp *app.Application, operator domain.SysOpr,
	method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(webserver.ContextAppKey, testApp)
	c.Set(webserver.ContextOperatorKey, operator)
	return c, rec
}
