package mcpserver

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBlockedIP(t *testing.T) {
	blocked := []string{"127.0.0.1", "10.1.2.3", "172.20.0.9", "192.168.0.10", "169.254.169.254", "0.0.0.0", "::1", "::", "fe80::1", "fd12::1"}
	allowed := []string{"8.8.4.4", "1.0.0.1", "2606:4700:4700::1111"}

	for _, s := range blocked {
		ip := net.ParseIP(s)
		require.NotNil(t, ip, s)
		assert.True(t, isBlockedIP(ip), "%s should be blocked", s)
	}
	for _, s := range allowed {
		ip := net.ParseIP(s)
		require.NotNil(t, ip, s)
		assert.False(t, isBlockedIP(ip), "%s should be allowed", s)
	}
}

func TestLookupAllowed(t *testing.T) {
	for _, host := range []string{"127.0.0.1", "::1", "localhost", "169.254.169.254"} {
		t.Run(host, func(t *testing.T) {
			_, err := lookupAllowed(context.Background(), host)
			require.Error(t, err)
			if host != "localhost" {
				assert.Contains(t, err.Error(), "blocked request")
			}
		})
	}

	t.Run("canceled lookup", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := lookupAllowed(ctx, "example.invalid")
		assert.Error(t, err)
	})
}

func TestSafeHTTPClient_RefusesLoopbackServer(t *testing.T) {
	contacted := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		contacted = true
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	resp, err := newSafeHTTPClient().Get(srv.URL + "/lib.json")
	if resp != nil {
		_ = resp.Body.Close()
	}
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked request")
	assert.False(t, contacted)
}

func TestSafeHTTPClient_CheckRedirect(t *testing.T) {
	client := newSafeHTTPClient()
	require.NotNil(t, client.CheckRedirect)

	req := httptest.NewRequest(http.MethodGet, "http://127.0.0.1/internal.json", nil)
	err := client.CheckRedirect(req, []*http.Request{req})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked request")

	via := make([]*http.Request, 10)
	err = client.CheckRedirect(req, via)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "10 redirects")
}
