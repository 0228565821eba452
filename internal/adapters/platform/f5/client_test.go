package f5_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erjac77/f5-reconciler/internal/adapters/platform/f5"
	"github.com/erjac77/f5-reconciler/internal/core/ports"
	"github.com/erjac77/f5-reconciler/internal/errors"
	"github.com/erjac77/f5-reconciler/internal/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	testToken    = "TOKEN-1234"
	testPassword = "secret"
)

// fakeDevice is an in-memory iControl REST stand-in: token login plus a
// pool collection and a dns singleton under /mgmt/tm.
type fakeDevice struct {
	mu            sync.Mutex
	loginProvider string
	failLogins    int
	pools         map[string]map[string]any
	dns           map[string]any
	mutations     int
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		pools: make(map[string]map[string]any),
		dns:   map[string]any{"nameServers": []any{"10.0.0.53"}},
	}
}

func (d *fakeDevice) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/mgmt/shared/authn/login", d.handleLogin)
	mux.HandleFunc("/mgmt/tm/", d.handleTM)
	return mux
}

func (d *fakeDevice) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username          string `json:"username"`
		Password          string `json:"password"`
		LoginProviderName string `json:"loginProviderName"`
	}
	body, _ := io.ReadAll(r.Body)
	_ = json.Unmarshal(body, &creds)

	d.mu.Lock()
	d.loginProvider = creds.LoginProviderName
	shouldFail := d.failLogins > 0
	if shouldFail {
		d.failLogins--
	}
	d.mu.Unlock()

	if shouldFail || creds.Password != testPassword {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"code": 401, "message": "bad credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": map[string]any{"token": testToken}})
}

func (d *fakeDevice) handleTM(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("X-F5-Auth-Token") != testToken {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"code": 401, "message": "missing token"})
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case r.URL.Path == "/mgmt/tm/ltm/pool" && r.Method == http.MethodPost:
		obj := decodeBody(r)
		name, _ := obj["name"].(string)
		if name == "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"code": 400, "message": "name is required"})
			return
		}
		d.pools[itemKey(obj)] = obj
		d.mutations++
		writeJSON(w, http.StatusOK, obj)

	case strings.HasPrefix(r.URL.Path, "/mgmt/tm/ltm/pool/"):
		key := strings.TrimPrefix(r.URL.Path, "/mgmt/tm/ltm/pool/")
		obj, found := d.pools[key]
		switch r.Method {
		case http.MethodGet:
			if !found {
				writeJSON(w, http.StatusNotFound, map[string]any{"code": 404, "message": "object not found"})
				return
			}
			writeJSON(w, http.StatusOK, obj)
		case http.MethodPatch:
			if !found {
				writeJSON(w, http.StatusNotFound, map[string]any{"code": 404, "message": "object not found"})
				return
			}
			for k, v := range decodeBody(r) {
				obj[k] = v
			}
			d.mutations++
			writeJSON(w, http.StatusOK, obj)
		case http.MethodDelete:
			delete(d.pools, key)
			d.mutations++
			w.WriteHeader(http.StatusOK)
		}

	case r.URL.Path == "/mgmt/tm/sys/dns":
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, d.dns)
		case http.MethodPatch:
			for k, v := range decodeBody(r) {
				d.dns[k] = v
			}
			d.mutations++
			writeJSON(w, http.StatusOK, d.dns)
		}

	default:
		writeJSON(w, http.StatusNotFound, map[string]any{"code": 404, "message": "unknown endpoint"})
	}
}

func (d *fakeDevice) mutationCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mutations
}

func itemKey(obj map[string]any) string {
	partition, _ := obj["partition"].(string)
	name, _ := obj["name"].(string)
	if subPath, ok := obj["subPath"].(string); ok && subPath != "" {
		return "~" + partition + "~" + subPath + "~" + name
	}
	return "~" + partition + "~" + name
}

func decodeBody(r *http.Request) map[string]any {
	body, _ := io.ReadAll(r.Body)
	obj := map[string]any{}
	_ = json.Unmarshal(body, &obj)
	return obj
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	payload, _ := json.Marshal(v)
	_, _ = w.Write(payload)
}

func testLogger(t *testing.T) ports.Logger {
	t.Helper()
	logger, err := log.NewLoggerWithWriter(log.Config{Level: log.LevelError}, io.Discard)
	require.NoError(t, err)
	return logger
}

func deviceConfig(t *testing.T, server *httptest.Server) f5.Config {
	t.Helper()
	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	return f5.Config{
		Product:           f5.ProductBigIP,
		Hostname:          u.Hostname(),
		Port:              port,
		Username:          "admin",
		Password:          testPassword,
		ValidateCerts:     false,
		Retries:           1,
		RetryInterval:     time.Millisecond,
		RequestsPerSecond: 100,
	}
}

func startDevice(t *testing.T) (*fakeDevice, *f5.Client) {
	t.Helper()
	device := newFakeDevice()
	server := httptest.NewTLSServer(device.handler())
	t.Cleanup(server.Close)

	client, err := f5.Connect(context.Background(), deviceConfig(t, server), testLogger(t))
	require.NoError(t, err)
	return device, client
}

func TestConnect(t *testing.T) {
	ctx := context.Background()

	t.Run("authenticates with the product login provider", func(t *testing.T) {
		device, _ := startDevice(t)
		assert.Equal(t, "tmos", device.loginProvider)
	})

	t.Run("iworkflow uses the local login provider", func(t *testing.T) {
		device := newFakeDevice()
		server := httptest.NewTLSServer(device.handler())
		t.Cleanup(server.Close)

		cfg := deviceConfig(t, server)
		cfg.Product = f5.ProductIWorkflow
		_, err := f5.Connect(ctx, cfg, testLogger(t))
		require.NoError(t, err)
		assert.Equal(t, "local", device.loginProvider)
	})

	t.Run("retries until the device answers", func(t *testing.T) {
		device := newFakeDevice()
		device.failLogins = 2
		server := httptest.NewTLSServer(device.handler())
		t.Cleanup(server.Close)

		cfg := deviceConfig(t, server)
		cfg.Retries = 3
		_, err := f5.Connect(ctx, cfg, testLogger(t))
		require.NoError(t, err)
	})

	t.Run("reports a connection error after the attempt budget", func(t *testing.T) {
		device := newFakeDevice()
		device.failLogins = 10
		server := httptest.NewTLSServer(device.handler())
		t.Cleanup(server.Close)

		cfg := deviceConfig(t, server)
		cfg.Retries = 2
		_, err := f5.Connect(ctx, cfg, testLogger(t))
		require.Error(t, err)
		assert.Equal(t, errors.CodeConnection, errors.GetCode(err))
		assert.Contains(t, err.Error(), cfg.Hostname)
		assert.Contains(t, err.Error(), "2 attempts")
	})

	t.Run("rejects bad credentials", func(t *testing.T) {
		device := newFakeDevice()
		server := httptest.NewTLSServer(device.handler())
		t.Cleanup(server.Close)

		cfg := deviceConfig(t, server)
		cfg.Password = "wrong"
		_, err := f5.Connect(ctx, cfg, testLogger(t))
		require.Error(t, err)
		assert.Equal(t, errors.CodeConnection, errors.GetCode(err))
	})

	t.Run("rejects an unknown product", func(t *testing.T) {
		cfg := f5.Config{Product: "big-iron", Hostname: "h", Username: "u", Password: "p"}
		_, err := f5.Connect(ctx, cfg, testLogger(t))
		require.Error(t, err)
		assert.Equal(t, errors.CodeConfigValidation, errors.GetCode(err))
	})
}
