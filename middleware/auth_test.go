package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tisbroker/insurance-api/auth"
	"github.com/tisbroker/insurance-api/models"
	"github.com/tisbroker/insurance-api/testutil"
)

func newAuthRouter(db *gorm.DB, svc *auth.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", RequireAuth(db, svc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": CurrentUser(c).ID})
	})
	r.GET("/public", OptionalAuth(db, svc), func(c *gin.Context) {
		role := ""
		if user := CurrentUser(c); user != nil {
			role = string(user.Role)
		}
		c.JSON(http.StatusOK, gin.H{"role": role})
	})
	return r
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	db := testutil.NewDB(t)
	svc := auth.NewService("test-secret", time.Hour, 24*time.Hour)

	w := get(newAuthRouter(db, svc), "/private", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	db := testutil.NewDB(t)
	svc := auth.NewService("test-secret", time.Hour, 24*time.Hour)

	w := get(newAuthRouter(db, svc), "/private", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_RefreshTokenRejected(t *testing.T) {
	db := testutil.NewDB(t)
	svc := auth.NewService("test-secret", time.Hour, 24*time.Hour)
	user := testutil.CreateUser(t, db, "buyer", models.RoleCustomer)

	pair, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	w := get(newAuthRouter(db, svc), "/private", pair.Refresh)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_InactiveAccount(t *testing.T) {
	db := testutil.NewDB(t)
	svc := auth.NewService("test-secret", time.Hour, 24*time.Hour)
	user := testutil.CreateUser(t, db, "buyer", models.RoleCustomer)

	pair, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	// Token stays syntactically valid after deactivation; the gate must
	// re-check the row.
	require.NoError(t, db.Model(user).Update("is_active", false).Error)

	w := get(newAuthRouter(db, svc), "/private", pair.Access)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	db := testutil.NewDB(t)
	svc := auth.NewService("test-secret", time.Hour, 24*time.Hour)
	user := testutil.CreateUser(t, db, "buyer", models.RoleCustomer)

	pair, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	w := get(newAuthRouter(db, svc), "/private", pair.Access)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), fmt.Sprintf(`"user_id":%d`, user.ID))
}

func TestOptionalAuth_Anonymous(t *testing.T) {
	db := testutil.NewDB(t)
	svc := auth.NewService("test-secret", time.Hour, 24*time.Hour)

	w := get(newAuthRouter(db, svc), "/public", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":""`)
}

func TestOptionalAuth_BadTokenStaysAnonymous(t *testing.T) {
	db := testutil.NewDB(t)
	svc := auth.NewService("test-secret", time.Hour, 24*time.Hour)

	w := get(newAuthRouter(db, svc), "/public", "not-a-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":""`)
}

func TestOptionalAuth_AttachesRequester(t *testing.T) {
	db := testutil.NewDB(t)
	svc := auth.NewService("test-secret", time.Hour, 24*time.Hour)
	admin := testutil.CreateUser(t, db, "admin1", models.RoleAdmin)

	pair, err := svc.GenerateTokenPair(admin)
	require.NoError(t, err)

	// Public reads key sensitive-field projection on this attachment.
	w := get(newAuthRouter(db, svc), "/public", pair.Access)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}
