package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"loja-backend/internal/auth"
)

var secret = []byte("middleware-secret")

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append(mw, func(c *gin.Context) {
		id, _ := c.Get(UserIDKey)
		uid, _ := id.(primitive.ObjectID)
		c.JSON(http.StatusOK, gin.H{"userId": uid.Hex(), "role": c.GetString(RoleKey)})
	})
	r.GET("/x", handlers...)
	return r
}

func do(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticateMissingHeader(t *testing.T) {
	w := do(newRouter(Authenticate(secret)), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token não fornecido")
}

func TestAuthenticateBadToken(t *testing.T) {
	r := newRouter(Authenticate(secret))
	for _, h := range []string{"Bearer nope", "Basic abc", "Bearer "} {
		w := do(r, h)
		assert.Equal(t, http.StatusUnauthorized, w.Code, h)
		assert.Contains(t, w.Body.String(), "token inválido", h)
	}
}

func TestAuthenticateSetsIdentity(t *testing.T) {
	uid := primitive.NewObjectID()
	tok, err := auth.IssueToken(uid.Hex(), "user", secret, time.Now())
	require.NoError(t, err)

	w := do(newRouter(Authenticate(secret)), "Bearer "+tok)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":"`+uid.Hex()+`","role":"user"}`, w.Body.String())
}

func TestRequireRole(t *testing.T) {
	r := newRouter(Authenticate(secret), RequireRole("admin"))

	userTok, _ := auth.IssueToken(primitive.NewObjectID().Hex(), "user", secret, time.Now())
	w := do(r, "Bearer "+userTok)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminTok, _ := auth.IssueToken(primitive.NewObjectID().Hex(), "admin", secret, time.Now())
	w = do(r, "Bearer "+adminTok)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestLoggerEchoesRequestID(t *testing.T) {
	r := newRouter(RequestLogger())

	w := do(r, "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}
