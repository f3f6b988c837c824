package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClientDefaults(t *testing.T) {
	c := NewHTTPClient(0)
	assert.Equal(t, defaultTimeout, c.Timeout)
	assert.NotNil(t, c.Jar)

	c = NewHTTPClient(5 * time.Second)
	assert.Equal(t, 5*time.Second, c.Timeout)
}

func TestClientKeepsCookies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/set" {
			http.SetCookie(w, &http.Cookie{Name: "wp", Value: "1", Path: "/"})
			return
		}
		if ck, err := r.Cookie("wp"); err == nil && ck.Value == "1" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewDefaultHTTPClient()
	resp, err := c.Get(srv.URL + "/set")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = c.Get(srv.URL + "/check")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
