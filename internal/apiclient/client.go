package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cleaning-console/pkg/api"
	apperrors "cleaning-console/pkg/errors"
)

const (
	HeaderRequestID = "X-Request-ID"

	networkErrorMessage = "network error"
	sessionExpiredMsg   = "session expired, please log in again"
)

// TokenSource supplies the bearer credential. It is consulted on every request.
type TokenSource interface {
	GetToken(ctx context.Context) (string, bool)
}

// UnauthorizedHandler runs synchronously when the backend rejects the session.
type UnauthorizedHandler func(ctx context.Context)

// Client is the authenticated API client. It reads the session but never owns it.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *zap.Logger

	mu             sync.RWMutex
	onUnauthorized UnauthorizedHandler
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets a client-wide timeout. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.httpClient
			hc.Timeout = d
			c.httpClient = &hc
		}
	}
}

func WithUnauthorizedHandler(h UnauthorizedHandler) Option {
	return func(c *Client) { c.onUnauthorized = h }
}

func New(baseURL string, tokens TokenSource, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		tokens:     tokens,
		logger:     logger.Named("api_client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetUnauthorizedHandler replaces the 401 hook. The session lifecycle installs itself here.
func (c *Client) SetUnauthorizedHandler(h UnauthorizedHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = h
}

func (c *Client) BaseURL() string { return c.baseURL }

type rawResponse struct {
	status int
	body   []byte
}

func (c *Client) url(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// encodeBody turns body into a reader and the Content-Type to send. io.Reader bodies are forwarded
// unchanged and get no Content-Type.
func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case io.Reader:
		return b, "", nil
	case []byte:
		return bytes.NewReader(b), "", nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode request body: %w", err)
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string) (*rawResponse, error) {
	requestID := uuid.NewString()
	log := c.logger.With(
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path),
	)

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, apperrors.NewApiError(apperrors.KindTransport, 0, networkErrorMessage, fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	// The token is resolved now, not when the caller prepared the call.
	if c.tokens != nil {
		if token, ok := c.tokens.GetToken(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed", zap.Stringer("outcome", OutcomeFailedTransport), zap.Error(err))
		return nil, apperrors.NewApiError(apperrors.KindTransport, 0, networkErrorMessage, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("failed to read response body", zap.Stringer("outcome", OutcomeFailedTransport), zap.Error(err))
		return nil, apperrors.NewApiError(apperrors.KindTransport, resp.StatusCode, networkErrorMessage, err)
	}
	log.Debug("response received", zap.Int("status", resp.StatusCode), zap.Duration("took", time.Since(start)))

	return &rawResponse{status: resp.StatusCode, body: data}, nil
}

func (c *Client) handleUnauthorized(ctx context.Context, path string) {
	c.logger.Warn("backend rejected the session, clearing it", zap.String("path", path))

	c.mu.RLock()
	h := c.onUnauthorized
	c.mu.RUnlock()
	if h != nil {
		// Teardown must complete even if the caller's context is already cancelled.
		h(context.WithoutCancel(ctx))
	}
}

func authError(message string) *apperrors.ApiError {
	if message == "" {
		message = sessionExpiredMsg
	}
	return apperrors.NewApiError(apperrors.KindAuth, http.StatusUnauthorized, message, apperrors.ErrUnauthorized)
}

// decodeFailure parses an error envelope or synthesizes the generic one.
func decodeFailure(status int, body []byte) *apperrors.ApiError {
	env := api.UnexpectedError(status)
	var parsed api.Envelope[json.RawMessage]
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			env.Message = parsed.Message
		}
		if parsed.Code != 0 {
			env.Code = parsed.Code
		}
	}
	return apperrors.NewApiError(apperrors.KindHTTP, env.Code, env.Message, nil)
}

func isSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}

// Request performs one call and returns the envelope as sent by the backend. A nil error only means
// the transport succeeded: the caller still has to look at Success, or use Call instead.
func Request[T any](ctx context.Context, c *Client, method, path string, body any) (*api.Envelope[T], error) {
	reader, contentType, err := encodeBody(body)
	if err != nil {
		return nil, apperrors.NewApiError(apperrors.KindTransport, 0, networkErrorMessage, err)
	}
	return doRequest[T](ctx, c, method, path, reader, contentType)
}

// PostMultipart forwards a pre-built multipart payload unchanged. contentType must be the value
// returned by multipart.Writer.FormDataContentType so the boundary matches.
func PostMultipart[T any](ctx context.Context, c *Client, path string, body io.Reader, contentType string) (*api.Envelope[T], error) {
	return doRequest[T](ctx, c, http.MethodPost, path, body, contentType)
}

func doRequest[T any](ctx context.Context, c *Client, method, path string, body io.Reader, contentType string) (*api.Envelope[T], error) {
	raw, err := c.send(ctx, method, path, body, contentType)
	if err != nil {
		return nil, err
	}

	if raw.status == http.StatusUnauthorized {
		c.handleUnauthorized(ctx, path)
		var env api.Envelope[json.RawMessage]
		_ = json.Unmarshal(raw.body, &env)
		c.logger.Info("request failed", zap.String("path", path), zap.Int("status", raw.status),
			zap.Stringer("outcome", OutcomeFailedAuth))
		return nil, authError(env.Message)
	}

	if !isSuccessStatus(raw.status) {
		apiErr := decodeFailure(raw.status, raw.body)
		c.logger.Info("request failed", zap.String("path", path), zap.Int("status", raw.status),
			zap.Stringer("outcome", OutcomeFailedBusiness), zap.Stringer("kind", apiErr.Kind),
			zap.String("message", apiErr.Message))
		return nil, apiErr
	}

	var env api.Envelope[T]
	if err := json.Unmarshal(raw.body, &env); err != nil {
		c.logger.Warn("malformed success envelope", zap.String("path", path), zap.Error(err))
		return nil, apperrors.NewApiError(apperrors.KindHTTP, raw.status, api.UnexpectedErrorMessage, err)
	}

	// Some endpoints report an expired session inside a 200 envelope.
	if !env.Success && env.Code == http.StatusUnauthorized {
		c.handleUnauthorized(ctx, path)
		c.logger.Info("request failed", zap.String("path", path), zap.Int("status", raw.status),
			zap.Stringer("outcome", OutcomeFailedAuth))
		return nil, authError(env.Message)
	}

	outcome := OutcomeSucceeded
	if !env.Success {
		outcome = OutcomeFailedBusiness
	}
	c.logger.Debug("request finished", zap.String("path", path), zap.Stringer("outcome", outcome))
	return &env, nil
}

// Call performs a request and decodes the envelope at the boundary: it returns Data on success and
// a business ApiError when the backend answered success:false.
func Call[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var zero T
	env, err := Request[T](ctx, c, method, path, body)
	if err != nil {
		return zero, err
	}
	if !env.Success {
		message := env.Message
		if message == "" {
			message = api.UnexpectedErrorMessage
		}
		return zero, apperrors.NewApiError(apperrors.KindBusiness, env.Code, message, nil)
	}
	return env.Data, nil
}

func Get[T any](ctx context.Context, c *Client, path string) (T, error) {
	return Call[T](ctx, c, http.MethodGet, path, nil)
}

func Post[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return Call[T](ctx, c, http.MethodPost, path, body)
}

func Put[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return Call[T](ctx, c, http.MethodPut, path, body)
}

func Delete[T any](ctx context.Context, c *Client, path string) (T, error) {
	return Call[T](ctx, c, http.MethodDelete, path, nil)
}
