package notify

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"admit-planner-server/internal/config"
)

func newTestClient(endpoint, token string) *LineClient {
	return NewLineClient(config.NotifyConfig{
		LineToken:    token,
		LineEndpoint: endpoint,
		Timeout:      2 * time.Second,
	}, zap.NewNop())
}

func TestConfigured(t *testing.T) {
	assert.True(t, newTestClient("http://localhost", "tok").Configured())
	assert.False(t, newTestClient("http://localhost", "").Configured())
}

func TestSendSuccess(t *testing.T) {
	var gotAuth, gotMessage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotAuth = r.Header.Get("Authorization")
		gotMessage = r.PostForm.Get("message")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "secret-token")
	assert.True(t, c.Send("No rounds note today for:\n- Somsak P. (Hospital 1 / Ward A)"))
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Contains(t, gotMessage, "Somsak P.")
}

func TestSendRejectedIsFalseNotFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	assert.False(t, newTestClient(srv.URL, "bad-token").Send("msg"))
}

func TestSendSingleAttempt(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "tok")
	assert.False(t, c.Send("msg"))
	assert.Equal(t, 1, calls)
}

func TestSendNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	assert.False(t, newTestClient(srv.URL, "tok").Send("msg"))
}
