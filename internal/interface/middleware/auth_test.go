package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devtrails/bootcamp-api/internal/domain/entity"
	"github.com/devtrails/bootcamp-api/internal/listing"
	"github.com/devtrails/bootcamp-api/pkg/apperr"
	"github.com/devtrails/bootcamp-api/pkg/helpers"
)

type stubUsers struct {
	user *entity.User
}

func (s *stubUsers) List(context.Context, *listing.Query) ([]entity.User, int64, error) {
	return nil, 0, nil
}

func (s *stubUsers) GetByID(_ context.Context, id primitive.ObjectID) (*entity.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, apperr.ErrNotFound
}

func (s *stubUsers) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, apperr.ErrNotFound
}

func (s *stubUsers) GetByResetToken(context.Context, string) (*entity.User, error) {
	return nil, apperr.ErrNotFound
}

func (s *stubUsers) Create(context.Context, *entity.User) error { return nil }
func (s *stubUsers) Update(context.Context, *entity.User) error { return nil }
func (s *stubUsers) Delete(context.Context, primitive.ObjectID) error {
	return nil
}

func protectedRouter(users *stubUsers, jwt *helpers.JWTManager, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := []gin.HandlerFunc{Protect(users, jwt)}
	if len(roles) > 0 {
		chain = append(chain, Authorize(roles...))
	}
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentUser(c).ID.Hex()})
	})
	r.GET("/secret", chain...)
	return r
}

func TestProtectAcceptsBearerHeader(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	user := &entity.User{ID: primitive.NewObjectID(), Role: entity.RoleUser}
	token, _, err := jwt.GenerateToken(user.ID.Hex())
	require.NoError(t, err)

	r := protectedRouter(&stubUsers{user: user}, jwt)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/secret", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.ID.Hex())
}

func TestProtectAcceptsTokenCookie(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	user := &entity.User{ID: primitive.NewObjectID(), Role: entity.RoleUser}
	token, _, err := jwt.GenerateToken(user.ID.Hex())
	require.NoError(t, err)

	r := protectedRouter(&stubUsers{user: user}, jwt)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/secret", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectUniform401(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	user := &entity.User{ID: primitive.NewObjectID(), Role: entity.RoleUser}
	validToken, _, err := jwt.GenerateToken(user.ID.Hex())
	require.NoError(t, err)
	wrongKey, _, err := helpers.NewJWTManager("other", time.Hour).GenerateToken(user.ID.Hex())
	require.NoError(t, err)
	expired, _, err := helpers.NewJWTManager("secret", -time.Hour).GenerateToken(user.ID.Hex())
	require.NoError(t, err)
	unknownUser, _, err := jwt.GenerateToken(primitive.NewObjectID().Hex())
	require.NoError(t, err)

	cases := map[string]string{
		"no token":      "",
		"garbage":       "Bearer not.a.jwt",
		"wrong key":     "Bearer " + wrongKey,
		"expired":       "Bearer " + expired,
		"unknown user":  "Bearer " + unknownUser,
		"malformed sub": "", // set below
	}
	badSub, _, err := jwt.GenerateToken("not-an-object-id")
	require.NoError(t, err)
	cases["malformed sub"] = "Bearer " + badSub

	r := protectedRouter(&stubUsers{user: user}, jwt)
	for name, header := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/secret", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
		assert.JSONEq(t, `{"success":false,"error":"Not authorized to access this resource."}`, w.Body.String(), name)
	}

	// sanity: the valid token still works
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/secret", nil)
	req.Header.Set("Authorization", "Bearer "+validToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthorizeRejectsWrongRole(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	user := &entity.User{ID: primitive.NewObjectID(), Role: entity.RoleUser}
	token, _, err := jwt.GenerateToken(user.ID.Hex())
	require.NoError(t, err)

	r := protectedRouter(&stubUsers{user: user}, jwt, entity.RolePublisher, entity.RoleAdmin)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/secret", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "User role user is not authorized to access this resource.")
}

func TestAuthorizeAllowsAdmin(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	admin := &entity.User{ID: primitive.NewObjectID(), Role: entity.RoleAdmin}
	token, _, err := jwt.GenerateToken(admin.ID.Hex())
	require.NoError(t, err)

	r := protectedRouter(&stubUsers{user: admin}, jwt, entity.RolePublisher, entity.RoleAdmin)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/secret", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAllowPrivateIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	allow := AllowPrivateIP()

	for ip, want := range map[string]bool{
		"127.0.0.1":   true,
		"10.1.2.3":    true,
		"192.168.0.5": true,
		"8.8.8.8":     false,
		"":            false,
	} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)
		if ip != "" {
			c.Set("real_ip", ip)
		}
		assert.Equal(t, want, allow(c), "ip %q", ip)
	}
}

func TestKeyFuncs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/auth/forgot-password", nil)

	assert.Contains(t, KeyByIP()(c), "rl:ip:")
	assert.Contains(t, KeyByIPAndPath()(c), "rl:path:")

	anon := KeyByUserID()(c)
	assert.Contains(t, anon, "rl:user:anon")

	u := &entity.User{ID: primitive.NewObjectID()}
	c.Set(CtxUserKey, u)
	assert.Equal(t, "rl:user:"+u.ID.Hex(), KeyByUserID()(c))
}
