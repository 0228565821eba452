package f5

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	f5errors "github.com/erjac77/f5-reconciler/internal/adapters/platform/f5/errors"
	"github.com/erjac77/f5-reconciler/internal/adapters/platform/f5/limiter"
	"github.com/erjac77/f5-reconciler/internal/core/domain"
	"github.com/erjac77/f5-reconciler/internal/core/ports"
	"github.com/erjac77/f5-reconciler/internal/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	loginPath      = "/mgmt/shared/authn/login"
	authTokenHdr   = "X-F5-Auth-Token"
	requestTimeout = 60 * time.Second
)

type loginRequest struct {
	Username          string `json:"username"`
	Password          string `json:"password"`
	LoginProviderName string `json:"loginProviderName"`
}

type loginResponse struct {
	Token struct {
		Token string `json:"token"`
	} `json:"token"`
}

// Client is an authenticated iControl REST client for a single device. It is
// safe for concurrent use: the token is set once during Connect and only
// read afterwards.
type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
	token      string
	limiter    *limiter.Limiter
	logger     ports.Logger
}

// Connect dials the device and obtains an auth token, retrying on a fixed
// interval up to the configured attempt budget. All attempts failing is a
// connection error carrying the host, port and last underlying failure.
func Connect(ctx context.Context, cfg Config, logger ports.Logger) (*Client, error) {
	if logger == nil {
		return nil, errors.New(errors.CodeInternal, "logger cannot be nil")
	}
	if !cfg.Product.Valid() {
		return nil, errors.Newf(errors.CodeConfigValidation, "unknown product '%s'", cfg.Product)
	}
	cfg.ApplyDefaults()

	c := &Client{
		cfg:     cfg,
		baseURL: fmt.Sprintf("https://%s:%d", cfg.Hostname, cfg.Port),
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: !cfg.ValidateCerts},
			},
		},
		limiter: limiter.New(cfg.RequestsPerSecond, logger),
		logger:  logger,
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.Retries; attempt++ {
		token, err := c.login(ctx)
		if err == nil {
			c.token = token
			logger.Infof(ctx, "Connected to %s %s:%d", cfg.Product, cfg.Hostname, cfg.Port)
			return c, nil
		}
		lastErr = err
		logger.Warnf(ctx, "Connection attempt %d/%d to %s:%d failed: %v", attempt, cfg.Retries, cfg.Hostname, cfg.Port, err)

		if attempt == cfg.Retries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.Wrapf(ctx.Err(), errors.CodeConnection,
				"connection to %s:%d cancelled", cfg.Hostname, cfg.Port)
		case <-time.After(cfg.RetryInterval):
		}
	}

	// Build the error directly: Wrap would keep the last attempt's code, and
	// an exhausted budget must always surface as a connection error.
	return nil, &errors.AppError{
		Code:         errors.CodeConnection,
		Message:      fmt.Sprintf("unable to connect to %s:%d after %d attempts", cfg.Hostname, cfg.Port, cfg.Retries),
		WrappedError: lastErr,
	}
}

func (c *Client) login(ctx context.Context) (string, error) {
	payload, err := json.Marshal(loginRequest{
		Username:          c.cfg.Username,
		Password:          c.cfg.Password,
		LoginProviderName: c.cfg.Product.LoginProvider(),
	})
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "failed to encode login request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "failed to build login request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", f5errors.FromResponse(resp, "login")
	}

	var decoded loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", errors.Wrap(err, errors.CodeRemoteAPI, "failed to decode login response")
	}
	if decoded.Token.Token == "" {
		return "", errors.New(errors.CodeRemoteAuth, "login response carried no auth token")
	}
	return decoded.Token.Token, nil
}

// do issues a single authenticated request and decodes a JSON object body.
// A nil RemoteObject with a nil error means the call succeeded with an
// empty body (DELETE).
func (c *Client) do(ctx context.Context, method, path string, body map[string]any) (domain.RemoteObject, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CodeRemoteOperation, "rate limiter wait failed")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrapf(err, errors.CodeInternal, "failed to encode %s body", method)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeInternal, "failed to build %s request", method)
	}
	req.Header.Set(authTokenHdr, c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debugf(ctx, "%s %s", method, path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeRemoteOperation, "%s %s failed", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, f5errors.FromResponse(resp, fmt.Sprintf("%s %s", method, path))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeRemoteOperation, "failed to read %s %s response", method, path)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var obj domain.RemoteObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, errors.Wrapf(err, errors.CodeRemoteAPI, "failed to decode %s %s response", method, path)
	}
	return obj, nil
}

func (c *Client) Get(ctx context.Context, path string) (domain.RemoteObject, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body map[string]any) (domain.RemoteObject, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) Patch(ctx context.Context, path string, body map[string]any) (domain.RemoteObject, error) {
	return c.do(ctx, http.MethodPatch, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil)
	return err
}
