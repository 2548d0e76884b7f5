package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendoorexp/wildex-frontend/internal/models"
	"github.com/opendoorexp/wildex-frontend/internal/session"
	"github.com/opendoorexp/wildex-frontend/pkg/jwt"
)

// memoryRepository is an in-memory session.Repository
type memoryRepository struct {
	sessions map[uuid.UUID]*models.Session
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{sessions: make(map[uuid.UUID]*models.Session)}
}

func (r *memoryRepository) Create(userAgent, deviceType string) (*models.Session, error) {
	sess := &models.Session{ID: uuid.New(), Currency: "INR"}
	r.sessions[sess.ID] = sess
	return sess, nil
}

func (r *memoryRepository) GetByID(sessionID uuid.UUID) (*models.Session, error) {
	return r.sessions[sessionID], nil
}

func (r *memoryRepository) SaveAuth(sessionID uuid.UUID, customer models.Customer, token string) error {
	return nil
}

func (r *memoryRepository) ClearAuth(sessionID uuid.UUID) error               { return nil }
func (r *memoryRepository) SetCurrency(sessionID uuid.UUID, c string) error   { return nil }
func (r *memoryRepository) SetBookingIntent(id uuid.UUID, p, re string) error { return nil }
func (r *memoryRepository) ClearBookingIntent(sessionID uuid.UUID) error      { return nil }

func setupMiddlewareTest(t *testing.T) (*gin.Engine, *memoryRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	repo := newMemoryRepository()
	store := session.NewStore(repo, jwt.NewService("test-secret", time.Hour), logger)

	router := gin.New()
	router.Use(SessionMiddleware(store, SessionCookieOptions{Name: "wildex_session", MaxAge: 3600}, logger))
	router.GET("/whoami", func(c *gin.Context) {
		sess := CurrentSession(c)
		require.NotNil(t, sess)
		c.JSON(http.StatusOK, gin.H{"id": sess.ID})
	})
	return router, repo
}

func TestSessionMiddleware_EstablishesSessionAndCookie(t *testing.T) {
	router, repo := setupMiddlewareTest(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, repo.sessions, 1)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "wildex_session", cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestSessionMiddleware_ReusesExistingSession(t *testing.T) {
	router, repo := setupMiddlewareTest(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	router.ServeHTTP(w, req)
	require.Len(t, repo.sessions, 1)

	cookie := w.Result().Cookies()[0]

	w2 := httptest.NewRecorder()
	req2, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	req2.AddCookie(cookie)
	router.ServeHTTP(w2, req2)

	require.Equal(t, http.StatusOK, w2.Code)
	assert.Len(t, repo.sessions, 1)
	assert.Empty(t, w2.Result().Cookies())
}

func TestSessionMiddleware_InvalidCookieGetsFreshSession(t *testing.T) {
	router, repo := setupMiddlewareTest(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "wildex_session", Value: "not-a-token"})
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, repo.sessions, 1)
	require.Len(t, w.Result().Cookies(), 1)
}
