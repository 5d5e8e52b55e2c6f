package contact

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nataa-app/landing-gateway/config/router"
	"github.com/nataa-app/landing-gateway/internal/log"
	"github.com/nataa-app/landing-gateway/pkg/ratelimit"
	"github.com/nataa-app/landing-gateway/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestRouter(t *testing.T, service ContactService, limit int) *router.RouterService {
	t.Helper()

	var buf bytes.Buffer
	rs := router.CreateRouterService(log.NewLogger(&buf), nil, &router.RouterConfig{
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
	})
	t.Cleanup(rs.Cleanup)

	limiter := ratelimit.NewInMemoryRateLimiter("submissions", limit, time.Minute)
	rs.MountController(NewContactController(service, limiter))
	return rs
}

func postContact(rs *router.RouterService, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "198.51.100.7:5000"

	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, req)
	return w
}

func TestContactController_Submit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockContactRepository(ctrl)
	service := NewContactService(log.NewLoggerWithJSONOutput(), mockRepo, nil, testInbox)
	rs := newTestRouter(t, service, 100)

	t.Run("success acknowledges", func(t *testing.T) {
		mockRepo.EXPECT().Configured().Return(true)
		mockRepo.EXPECT().CreateMessage(gomock.Any(), gomock.Any()).Return(nil)

		w := postContact(rs, `{"name":"Ada","email":"ada@example.com","message":"Hi"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	})

	t.Run("malformed body reports missing fields", func(t *testing.T) {
		w := postContact(rs, `{"name":`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Name, email, and message are required"}`, w.Body.String())
	})

	t.Run("mistyped field counts as missing", func(t *testing.T) {
		for _, body := range []string{
			`{"name":5,"email":"ada@example.com","message":"Hi"}`,
			`{"name":"Ada","email":"ada@example.com","message":{"text":"Hi"}}`,
			`[{"name":"Ada","email":"ada@example.com","message":"Hi"}]`,
		} {
			w := postContact(rs, body)
			require.Equal(t, http.StatusBadRequest, w.Code, body)
			assert.JSONEq(t, `{"error":"Name, email, and message are required"}`, w.Body.String(), body)
		}
	})

	t.Run("weak email is rejected", func(t *testing.T) {
		w := postContact(rs, `{"name":"Ada","email":"ada@","message":"Hi"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Valid email is required"}`, w.Body.String())
	})

	t.Run("missing store is a 500", func(t *testing.T) {
		mockRepo.EXPECT().Configured().Return(false)

		w := postContact(rs, `{"name":"Ada","email":"ada@example.com","message":"Hi"}`)
		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"`+store.MsgNotConfigured+`"}`, w.Body.String())
	})
}

func TestContactController_RateLimited(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockContactRepository(ctrl)
	service := NewContactService(log.NewLoggerWithJSONOutput(), mockRepo, nil, testInbox)
	rs := newTestRouter(t, service, 1)

	mockRepo.EXPECT().Configured().Return(true)
	mockRepo.EXPECT().CreateMessage(gomock.Any(), gomock.Any()).Return(nil)

	body := `{"name":"Ada","email":"ada@example.com","message":"Hi"}`
	require.Equal(t, http.StatusOK, postContact(rs, body).Code)

	w := postContact(rs, body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
