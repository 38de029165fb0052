package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uwezo/shop-backend/internal/session"
)

const (
	testCookieName = "shop_session"
	testSecret     = "test-secret"
)

type fakeSessionStore struct {
	sessions map[string]session.Identity
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]session.Identity)}
}

func (s *fakeSessionStore) Create(_ context.Context, identity session.Identity) (*session.Session, error) {
	token := uuid.NewString()
	s.sessions[token] = identity
	return &session.Session{Token: token, Identity: identity}, nil
}

func (s *fakeSessionStore) Get(_ context.Context, token string) (*session.Session, error) {
	identity, ok := s.sessions[token]
	if !ok {
		return nil, session.ErrNotFound
	}
	return &session.Session{Token: token, Identity: identity}, nil
}

func (s *fakeSessionStore) Destroy(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

func newTestRouter(store session.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	authed := r.Group("", RequireSession(store, testCookieName), RequireCSRF(testSecret))
	authed.GET("/profile", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": GetIdentity(c).Email})
	})
	authed.POST("/cart", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"message": "added"})
	})

	admin := authed.Group("/admin", AdminOnly())
	admin.GET("/dashboard", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"users": 0})
	})

	return r
}

func loginAs(t *testing.T, store session.Store, isAdmin bool) *session.Session {
	t.Helper()
	sess, err := store.Create(context.Background(), session.Identity{
		UserID: uuid.New(), Email: "jane@example.com", IsAdmin: isAdmin,
	})
	require.NoError(t, err)
	return sess
}

func TestRequireSession_NoCookie(t *testing.T) {
	r := newTestRouter(newFakeSessionStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error": "please login first"}`, w.Body.String())
}

func TestRequireSession_UnknownToken(t *testing.T) {
	r := newTestRouter(newFakeSessionStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: uuid.NewString()})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireSession_ValidCookie(t *testing.T) {
	store := newFakeSessionStore()
	sess := loginAs(t, store, false)
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: sess.Token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"email": "jane@example.com"}`, w.Body.String())
}

func TestAdminOnly_NonAdmin(t *testing.T) {
	store := newFakeSessionStore()
	sess := loginAs(t, store, false)
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: sess.Token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error": "admins only"}`, w.Body.String())
}

func TestAdminOnly_Admin(t *testing.T) {
	store := newFakeSessionStore()
	sess := loginAs(t, store, true)
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: sess.Token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireCSRF_MissingHeader(t *testing.T) {
	store := newFakeSessionStore()
	sess := loginAs(t, store, false)
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: sess.Token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error": "invalid csrf token"}`, w.Body.String())
}

func TestRequireCSRF_WrongToken(t *testing.T) {
	store := newFakeSessionStore()
	sess := loginAs(t, store, false)
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: sess.Token})
	req.Header.Set("X-CSRF-Token", session.CSRFToken("other-secret", sess.Token))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireCSRF_ValidToken(t *testing.T) {
	store := newFakeSessionStore()
	sess := loginAs(t, store, false)
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: sess.Token})
	req.Header.Set("X-CSRF-Token", session.CSRFToken(testSecret, sess.Token))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRequireCSRF_SkipsReads(t *testing.T) {
	store := newFakeSessionStore()
	sess := loginAs(t, store, false)
	r := newTestRouter(store)

	// GET succeeds without a CSRF header.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: sess.Token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
