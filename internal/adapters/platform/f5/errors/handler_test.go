package errors_test

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	f5errors "github.com/erjac77/f5-reconciler/internal/adapters/platform/f5/errors"
	"github.com/erjac77/f5-reconciler/internal/errors"
)

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestFromResponse(t *testing.T) {
	t.Run("401 and 403 map to auth errors", func(t *testing.T) {
		for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
			err := f5errors.FromResponse(response(status, ""), "GET /mgmt/tm/ltm/pool")
			require.Error(t, err)
			assert.Equal(t, errors.CodeRemoteAuth, errors.GetCode(err))
		}
	})

	t.Run("404 maps to resource not found", func(t *testing.T) {
		err := f5errors.FromResponse(response(http.StatusNotFound, ""), "GET /mgmt/tm/ltm/pool/~Common~p1")
		require.Error(t, err)
		assert.Equal(t, errors.CodeResourceNotFound, errors.GetCode(err))
		assert.True(t, errors.IsHTTPClass(err))
	})

	t.Run("other statuses map to remote API errors", func(t *testing.T) {
		err := f5errors.FromResponse(response(http.StatusBadRequest, ""), "POST /mgmt/tm/ltm/pool")
		require.Error(t, err)
		assert.Equal(t, errors.CodeRemoteAPI, errors.GetCode(err))
		assert.True(t, errors.IsHTTPClass(err))
	})

	t.Run("includes the decoded API message", func(t *testing.T) {
		body := `{"code": 400, "message": "invalid load balancing mode"}`
		err := f5errors.FromResponse(response(http.StatusBadRequest, body), "POST /mgmt/tm/ltm/pool")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid load balancing mode")
		assert.Contains(t, err.Error(), "status 400")
	})

	t.Run("falls back to the raw body when not JSON", func(t *testing.T) {
		err := f5errors.FromResponse(response(http.StatusInternalServerError, "proxy meltdown"), "GET /mgmt/tm/sys/dns")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "proxy meltdown")
	})
}
