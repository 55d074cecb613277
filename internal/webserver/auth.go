package webserver

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/talkincode/pharmadmin/internal/domain"
	"github.com/talkincode/pharmadmin/pkg/common"
	"go.uber.org/zap"
)

type loginPayload struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// checkCredentials verifies username/password against the operator table
func (s *WebServer) checkCredentials(username, password string) (domain.SysOpr, error) {
	var operator domain.SysOpr
	err := s.appCtx.DB().
		Where("username = ? and status = ?", username, common.ENABLED).
		First(&operator).Error
	if err != nil {
		return operator, errors.New("operator not found or disabled")
	}
	if operator.Password != common.Sha256HashWithSalt(password, common.GetSecretSalt()) {
		return operator, errors.New("password mismatch")
	}
	return operator, nil
}

func (s *WebServer) loginHandler(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return c.String(http.StatusBadRequest, "Invalid login request")
	}
	if payload.Username == "" || payload.Password == "" {
		return c.String(http.StatusBadRequest, "Username and password are required")
	}

	operator, err := s.checkCredentials(payload.Username, payload.Password)
	if err != nil {
		zap.L().Warn("login rejected",
			zap.String("username", payload.Username),
			zap.String("ip", c.RealIP()))
		return c.String(http.StatusUnauthorized, "Unauthorized")
	}

	sess, err := session.Get(SessionName, c)
	if err != nil {
		return c.String(http.StatusInternalServerError, "Internal server error")
	}
	sess.Options.MaxAge = 86400
	sess.Options.HttpOnly = true
	sess.Options.Path = "/"
	sess.Values[SessionOprIdKey] = strconv.FormatInt(operator.ID, 10)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return c.String(http.StatusInternalServerError, "Internal server error")
	}

	s.appCtx.DB().Model(&domain.SysOpr{}).Where("id = ?", operator.ID).
		Update("last_login", time.Now())
	s.appCtx.DB().Create(&domain.SysOprLog{
		ID:        common.UUIDint64(),
		OprName:   operator.Username,
		OprIp:     c.RealIP(),
		OptAction: "login",
		OptDesc:   "operator login",
		OptTime:   time.Now(),
	})

	return c.JSON(http.StatusOK, operator)
}

func (s *WebServer) logoutHandler(c echo.Context) error {
	sess, err := session.Get(SessionName, c)
	if err == nil {
		sess.Options.MaxAge = -1
		delete(sess.Values, SessionOprIdKey)
		_ = sess.Save(c.Request(), c.Response())
	}
	return c.NoContent(http.StatusNoContent)
}

// tokenHandler issues a signed bearer token for API clients
func (s *WebServer) tokenHandler(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return c.String(http.StatusBadRequest, "Invalid token request")
	}

	operator, err := s.checkCredentials(payload.Username, payload.Password)
	if err != nil {
		return c.String(http.StatusUnauthorized, "Unauthorized")
	}

	expire := s.appCtx.Config().Web.JwtExpire
	if expire <= 0 {
		expire = 24
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":      strconv.FormatInt(operator.ID, 10),
		"username": operator.Username,
		"level":    operator.Level,
		"exp":      time.Now().Add(time.Duration(expire) * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(s.appCtx.Config().Web.Secret))
	if err != nil {
		zap.L().Error("failed to sign token", zap.Error(err))
		return c.String(http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, map[string]string{"token": signed})
}

// currentOperator resolves the operator bound to the request, first from
// the session cookie, then from an Authorization bearer token.
func (s *WebServer) currentOperator(c echo.Context) (domain.SysOpr, error) {
	var operator domain.SysOpr

	uid, err := s.sessionOperatorID(c)
	if err != nil {
		uid, err = s.bearerOperatorID(c)
	}
	if err != nil {
		return operator, err
	}

	if err := s.appCtx.DB().
		Where("id = ? and status = ?", uid, common.ENABLED).
		First(&operator).Error; err != nil {
		return operator, errors.Wrap(err, "operator lookup")
	}
	return operator, nil
}

func (s *WebServer) sessionOperatorID(c echo.Context) (int64, error) {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return 0, err
	}
	raw, ok := sess.Values[SessionOprIdKey].(string)
	if !ok || raw == "" {
		return 0, errors.New("no session operator")
	}
	uid, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "invalid session operator id")
	}
	return uid, nil
}

func (s *WebServer) bearerOperatorID(c echo.Context) (int64, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return 0, errors.New("no bearer token")
	}
	tokenstr := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.Parse(tokenstr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.appCtx.Config().Web.Secret), nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid bearer token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}
	raw, _ := claims["uid"].(string)
	uid, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "invalid token uid")
	}
	return uid, nil
}
