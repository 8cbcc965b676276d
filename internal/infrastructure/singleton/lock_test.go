package singleton

import (
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAndLock_PortAvailable(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	listener.Close()

	result, err := CheckAndLock(addr)
	require.NoError(t, err)
	require.NotNil(t, result)
	defer result.Close()

	assert.Equal(t, addr, result.Addr().String())
}

func TestCheckAndLock_HealthyInstance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == HealthPath {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"ok","modules":26,"model":"gpt-4o-mini"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := CheckAndLock(strings.TrimPrefix(server.URL, "http://"))
	assert.ErrorIs(t, err, ErrAlreadyRunning)
	assert.Nil(t, result)
}

func TestCheckAndLock_PortInUse_UnhealthyInstance(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	result, err := CheckAndLock(listener.Addr().String())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrAlreadyRunning)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "in use")
}

func TestIsAddrInUse(t *testing.T) {
	l1, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l1.Close()

	_, err = net.Listen("tcp", l1.Addr().String())
	require.Error(t, err)
	assert.True(t, isAddrInUse(err))

	_, err = net.Listen("tcp", "invalid")
	require.Error(t, err)
	assert.False(t, isAddrInUse(err))

	assert.False(t, isAddrInUse(nil))
}

func TestIsInstanceRunning(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		}))
		defer server.Close()

		assert.True(t, isInstanceRunning(strings.TrimPrefix(server.URL, "http://")))
	})

	t.Run("non 200", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		assert.False(t, isInstanceRunning(strings.TrimPrefix(server.URL, "http://")))
	})

	t.Run("other service", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html></html>`))
		}))
		defer server.Close()

		assert.False(t, isInstanceRunning(strings.TrimPrefix(server.URL, "http://")))
	})

	t.Run("bad address", func(t *testing.T) {
		assert.False(t, isInstanceRunning("no-port"))
	})
}
