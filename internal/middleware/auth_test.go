package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"course_admin_gateway/internal/config"
	"course_admin_gateway/internal/model"
	"course_admin_gateway/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, role model.UserRole, secret string) string {
	t.Helper()
	claims := util.Claims{
		UserID: 7,
		Role:   role,
		Email:  "staff@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newAuthRouter(roles ...model.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.JWT.Secret = testSecret

	router := gin.New()
	handlers := []gin.HandlerFunc{AuthMiddleware(cfg)}
	if len(roles) > 0 {
		handlers = append(handlers, RoleMiddleware(roles...))
	}
	group := router.Group("/", handlers...)
	group.GET("/ping", func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		c.JSON(http.StatusOK, gin.H{"email": user.Email})
	})
	return router
}

func get(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	router := newAuthRouter()

	w := get(router, signToken(t, model.Staff, testSecret))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "staff@example.com")
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	router := newAuthRouter()

	w := get(router, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsWrongSignature(t *testing.T) {
	router := newAuthRouter()

	w := get(router, signToken(t, model.Staff, "some-other-secret"))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	claims := util.Claims{
		UserID: 7,
		Role:   model.Staff,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	w := get(newAuthRouter(), token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleMiddlewareForbidsWrongRole(t *testing.T) {
	router := newAuthRouter(model.Admin)

	w := get(router, signToken(t, model.Staff, testSecret))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRoleMiddlewareAdminImpliesAll(t *testing.T) {
	router := newAuthRouter(model.Staff)

	w := get(router, signToken(t, model.Admin, testSecret))

	assert.Equal(t, http.StatusOK, w.Code)
}
