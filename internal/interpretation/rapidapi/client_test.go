package rapidapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/dreamer/internal/interpretation"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, string) {
	t.Helper()
	server := httptest.NewTLSServer(handler)
	t.Cleanup(server.Close)
	return server, strings.TrimPrefix(server.URL, "https://")
}

func TestNewClient(t *testing.T) {
	client := NewClient(Config{Key: "test-key"})
	assert.Equal(t, DefaultHost, client.config.Host)
	assert.Equal(t, DefaultTimeout, client.config.Timeout)
	assert.Nil(t, client.limiter)
	assert.Equal(t, "https://"+DefaultHost+"/dreamDictionary?noqueue=1", client.url())

	limited := NewClient(Config{Key: "test-key", RequestsPerSecond: 2})
	assert.NotNil(t, limited.limiter)
	assert.Equal(t, 1, limited.limiter.Burst())
}

func TestClient_Interpret(t *testing.T) {
	tests := []struct {
		name    string
		handler func(t *testing.T, host string) http.HandlerFunc
		want    string
		wantErr bool
	}{
		{
			name: "sends symbol and returns meaning",
			handler: func(t *testing.T, host string) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, http.MethodPost, r.Method)
					assert.Equal(t, "/dreamDictionary", r.URL.Path)
					assert.Equal(t, "1", r.URL.Query().Get("noqueue"))
					assert.Equal(t, "test-key", r.Header.Get("x-rapidapi-key"))
					assert.Equal(t, host, r.Header.Get("x-rapidapi-host"))
					assert.Contains(t, r.Header.Get("Content-Type"), "application/json")

					var body interpretRequest
					require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
					assert.Equal(t, interpretRequest{Symbol: "Water", Language: "en"}, body)

					w.Header().Set("Content-Type", "application/json")
					_, _ = w.Write([]byte(`{"interpretation":"Water stands for emotions."}`))
				}
			},
			want: "Water stands for emotions.",
		},
		{
			name: "created status is accepted",
			handler: func(t *testing.T, host string) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusCreated)
					_, _ = w.Write([]byte(`{"result":"created"}`))
				}
			},
			want: "created",
		},
		{
			name: "server error is no result",
			handler: func(t *testing.T, host string) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusInternalServerError)
				}
			},
			wantErr: true,
		},
		{
			name: "malformed payload is no result",
			handler: func(t *testing.T, host string) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					_, _ = w.Write([]byte(`not json`))
				}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var host string
			_, host = newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				tt.handler(t, host)(w, r)
			})

			client := NewClient(Config{Host: host, Key: "test-key", Timeout: time.Second, TLSVerify: false})
			got, err := client.Interpret(context.Background(), "Water")
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, interpretation.ErrNoResult))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_Interpret_TLSVerification(t *testing.T) {
	_, host := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"meaning":"ok"}`))
	})

	client := NewClient(Config{Host: host, Key: "test-key", Timeout: time.Second, TLSVerify: true})
	_, err := client.Interpret(context.Background(), "Water")
	require.Error(t, err)
	assert.True(t, errors.Is(err, interpretation.ErrNoResult))
}

func TestClient_Interpret_Timeout(t *testing.T) {
	_, host := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"meaning":"too late"}`))
	})

	client := NewClient(Config{Host: host, Key: "test-key", Timeout: 20 * time.Millisecond})
	_, err := client.Interpret(context.Background(), "Water")
	require.Error(t, err)
	assert.True(t, errors.Is(err, interpretation.ErrNoResult))
}

func TestClient_Interpret_RateLimited(t *testing.T) {
	var calls atomic.Int32
	_, host := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"meaning":"ok"}`))
	})

	client := NewClient(Config{Host: host, Key: "test-key", Timeout: time.Second, RequestsPerSecond: 0.001, Burst: 1})
	got, err := client.Interpret(context.Background(), "Water")
	require.NoError(t, err)
	assert.Equal(t, "ok", got)

	_, err = client.Interpret(context.Background(), "Water")
	require.Error(t, err)
	assert.True(t, errors.Is(err, interpretation.ErrNoResult))
	assert.Contains(t, err.Error(), "rate limit exceeded")
	assert.Equal(t, int32(1), calls.Load())
}
