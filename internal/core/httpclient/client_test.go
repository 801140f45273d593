package httpclient

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"container-tracker/internal/core/logger"
	"container-tracker/internal/core/proxy"

	"github.com/elazarl/goproxy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// TestLoggingRoundTripper verifies that requests are logged.
func TestLoggingRoundTripper(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	logger.Init("development", "debug")

	client := NewClient(1*time.Second, proxy.Settings{})
	resp, err := client.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestLoggingRoundTripper_Error verifies that failed requests are logged.
func TestLoggingRoundTripper_Error(t *testing.T) {
	logger.Init("development", "debug")

	client := NewClient(1*time.Second, proxy.Settings{})
	_, err := client.Get("http://invalid-url-that-does-not-exist.local")
	require.Error(t, err)
}

// TestLoggingRoundTripper_RedactsAPIKey verifies that API keys in the query never reach the logs.
func TestLoggingRoundTripper_RedactsAPIKey(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret-key", r.URL.Query().Get("api_key"))
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	core, logs := observer.New(zap.DebugLevel)
	logger.Set(zap.New(core))
	defer logger.Set(nil)

	client := NewClient(1*time.Second, proxy.Settings{})
	resp, err := client.Get(ts.URL + "?number=MSKU1234567&api_key=secret-key")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.NotZero(t, logs.Len())
	for _, entry := range logs.All() {
		logged := entry.ContextMap()["url"].(string)
		assert.NotContains(t, logged, "secret-key")
		assert.Contains(t, logged, "number=MSKU1234567")
	}
}

// TestNewClient_RoutesThroughProxy verifies that a configured proxy receives the outbound request.
func TestNewClient_RoutesThroughProxy(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer target.Close()

	var proxied atomic.Int32
	upstream := goproxy.NewProxyHttpServer()
	upstream.OnRequest().DoFunc(func(r *http.Request, ctx *goproxy.ProxyCtx) (*http.Request, *http.Response) {
		proxied.Add(1)
		return r, nil
	})
	proxyServer := httptest.NewServer(upstream)
	defer proxyServer.Close()

	proxyURL, err := url.Parse(proxyServer.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(proxyURL.Port())
	require.NoError(t, err)

	logger.Init("development", "error")
	client := NewClient(2*time.Second, proxy.Settings{
		Enabled:  true,
		Hostname: proxyURL.Hostname(),
		Port:     port,
	})

	resp, err := client.Get(target.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, int32(1), proxied.Load())
}

func TestRedactURL(t *testing.T) {
	u, err := url.Parse("https://tracking.test/api?number=ABC&api_key=xyz")
	require.NoError(t, err)

	redacted := redactURL(u)
	assert.NotContains(t, redacted, "xyz")
	assert.Contains(t, redacted, "api_key=REDACTED")

	plain, err := url.Parse("https://tracking.test/api?number=ABC")
	require.NoError(t, err)
	assert.Equal(t, plain.String(), redactURL(plain))
	assert.Empty(t, redactURL(nil))
}
