package errors

import (
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/erjac77/f5-reconciler/internal/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// apiError is the error envelope iControl REST returns on non-2xx responses.
type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// FromResponse maps a non-2xx management-API response onto an application
// error code. The response body is consumed but the caller still owns
// closing it.
func FromResponse(resp *http.Response, operation string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	detail := ""
	var envelope apiError
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		detail = envelope.Message
	} else if len(body) > 0 {
		detail = string(body)
	}

	msg := fmt.Sprintf("%s returned status %d", operation, resp.StatusCode)
	if detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, detail)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.New(errors.CodeRemoteAuth, msg)
	case http.StatusNotFound:
		return errors.New(errors.CodeResourceNotFound, msg)
	default:
		return errors.New(errors.CodeRemoteAPI, msg)
	}
}
