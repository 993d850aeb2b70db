package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ddanilova/organizer-sync/internal/logger"
	"github.com/ddanilova/organizer-sync/internal/service"
	"github.com/ddanilova/organizer-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Remaining service mocks
// ─────────────────────────────────────────────

type mockEntityService struct {
	accountsFn   func(ctx context.Context, userID int64) ([]*models.Account, error)
	categoriesFn func(ctx context.Context, userID int64) ([]*models.Category, error)
	remindersFn  func(ctx context.Context, userID int64) ([]*models.Reminder, error)
	eventsFn     func(ctx context.Context, userID int64) ([]*models.Event, error)
}

func (m *mockEntityService) ListAccounts(ctx context.Context, userID int64) ([]*models.Account, error) {
	return m.accountsFn(ctx, userID)
}

func (m *mockEntityService) ListCategories(ctx context.Context, userID int64) ([]*models.Category, error) {
	return m.categoriesFn(ctx, userID)
}

func (m *mockEntityService) ListReminders(ctx context.Context, userID int64) ([]*models.Reminder, error) {
	return m.remindersFn(ctx, userID)
}

func (m *mockEntityService) ListEvents(ctx context.Context, userID int64) ([]*models.Event, error) {
	return m.eventsFn(ctx, userID)
}

type mockHealthService struct {
	status models.HealthStatus
}

func (m *mockHealthService) Health(_ context.Context) models.HealthStatus {
	return m.status
}

// newRoutedHandler builds a Handler with a full mock service set and returns
// its initialized router.
func newRoutedHandler(t *testing.T) (*Handler, http.Handler) {
	t.Helper()

	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
			if tokenString != "valid-jwt" {
				return models.Token{}, service.ErrTokenIsExpired
			}
			return models.Token{UserID: 42}, nil
		},
	}
	entities := &mockEntityService{
		categoriesFn: func(_ context.Context, userID int64) ([]*models.Category, error) {
			return []*models.Category{
				{SyncMeta: models.SyncMeta{OwnerID: userID}, Name: "Work"},
			}, nil
		},
	}
	health := &mockHealthService{
		status: models.HealthStatus{Server: "organizer-sync", Status: "up"},
	}

	h := NewHandler(&service.Services{
		AuthService:   auth,
		EntityService: entities,
		HealthService: health,
	}, logger.Nop())

	return h, h.Init()
}

// ─────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────

func TestRoutes_HealthIsPublic(t *testing.T) {
	_, router := newRoutedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got models.HealthStatus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "up", got.Status)
}

func TestRoutes_SyncRequiresToken(t *testing.T) {
	_, router := newRoutedHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/sync/categories", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoutes_ListWithToken(t *testing.T) {
	_, router := newRoutedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	req.Header.Set("Authorization", "Bearer valid-jwt")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []*models.Category
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "Work", got[0].Name)
	assert.Equal(t, int64(42), got[0].OwnerID)
}

func TestRoutes_TraceIDIsEchoed(t *testing.T) {
	_, router := newRoutedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(traceIDHeader, "trace-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, "trace-123", rec.Header().Get(traceIDHeader))
}

func TestRoutes_TraceIDIsGenerated(t *testing.T) {
	_, router := newRoutedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestRoutes_UnsupportedMethodHidesRoute(t *testing.T) {
	_, router := newRoutedHandler(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/health", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
