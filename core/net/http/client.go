package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"maps"
	"net/http"
	neturl "net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kochabx/vetclinic/log"
)

const (
	// Buffer pool constants
	defaultBufferSize = 4096
	maxBufferSize     = 1024 * 1024 // 1MB

	// error bodies larger than this are truncated before parsing
	maxErrorBody = 64 * 1024

	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
	HeaderUserAgent     = "User-Agent"
	HeaderRequestID     = "X-Request-ID"
)

// Client sends requests to a single API. Relative URLs are resolved against
// the base URL, so every component sharing a Client shares one base.
type Client struct {
	client         *http.Client
	baseURL        string
	userAgent      string
	logger         *log.Logger
	requestOptPool sync.Pool
	bufferPool     sync.Pool
}

var _ Clienter = (*Client)(nil)

// Option configures the HTTP client
type Option func(*Client)

// WithClient sets a custom HTTP client
func WithClient(client *http.Client) Option {
	return func(h *Client) {
		h.client = client
	}
}

// WithBaseURL sets the URL relative request paths are resolved against
func WithBaseURL(baseURL string) Option {
	return func(h *Client) {
		h.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout bounds every request, zero means no limit
func WithTimeout(timeout time.Duration) Option {
	return func(h *Client) {
		h.client.Timeout = timeout
	}
}

func WithUserAgent(ua string) Option {
	return func(h *Client) {
		h.userAgent = ua
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(l *log.Logger) Option {
	return func(h *Client) {
		h.logger = l
	}
}

// New creates a new HTTP client with object pooling
func New(opts ...Option) *Client {
	h := &Client{
		client: &http.Client{},
		logger: log.G,
		requestOptPool: sync.Pool{
			New: func() any {
				return &RequestOption{
					header: make(map[string]string, 8),
				}
			},
		},
		bufferPool: sync.Pool{
			New: func() any {
				return bytes.NewBuffer(make([]byte, 0, defaultBufferSize))
			},
		},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}

	return h
}

// BaseURL returns the configured base URL without a trailing slash
func (cli *Client) BaseURL() string {
	return cli.baseURL
}

// RequestOption holds options for individual HTTP requests
type RequestOption struct {
	ctx      context.Context
	header   map[string]string
	response any
}

// WithContext sets the context for the request
func WithContext(ctx context.Context) func(*RequestOption) {
	return func(opt *RequestOption) {
		opt.ctx = ctx
	}
}

// WithHeader sets multiple headers for the request
func WithHeader(header map[string]string) func(*RequestOption) {
	return func(opt *RequestOption) {
		maps.Copy(opt.header, header)
	}
}

// WithBearer sends "Authorization: Bearer <token>". An empty token leaves the
// header out entirely.
func WithBearer(token string) func(*RequestOption) {
	return func(opt *RequestOption) {
		if token == "" {
			delete(opt.header, HeaderAuthorization)
			return
		}
		opt.header[HeaderAuthorization] = "Bearer " + token
	}
}

// WithResponse sets the target a 2xx JSON body is decoded into
func WithResponse(response any) func(*RequestOption) {
	return func(opt *RequestOption) {
		opt.response = response
	}
}

// reset clears the RequestOption for reuse
func (opt *RequestOption) reset() {
	opt.ctx = nil
	clear(opt.header)
	opt.header[HeaderAccept] = ContentTypeJSON
	opt.response = nil
}

// Request sends an HTTP request with the specified method, URL and body.
//
// body may be nil, an io.Reader, url.Values (sent form-urlencoded) or any
// value encoded as JSON. A request that cannot be built returns *RequestError;
// a non-2xx response returns *StatusError; a 2xx body that cannot be decoded
// into the WithResponse target returns *DecodeError.
// The response body is always consumed and closed.
func (cli *Client) Request(method, url string, body any, opts ...func(*RequestOption)) (*http.Response, error) {
	opt := cli.getRequestOption()
	defer cli.putRequestOption(opt)

	for _, o := range opts {
		o(opt)
	}

	ctx := opt.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	target := cli.resolve(url)
	req, err := cli.createRequest(ctx, method, target, body)
	if err != nil {
		return nil, &RequestError{Method: method, URL: target, Err: err}
	}

	requestID := uuid.NewString()
	cli.setRequestHeaders(req, opt.header)
	req.Header.Set(HeaderRequestID, requestID)
	if cli.userAgent != "" {
		req.Header.Set(HeaderUserAgent, cli.userAgent)
	}

	start := time.Now()
	resp, err := cli.client.Do(req)
	if err != nil {
		cli.logger.Debug().
			Str("request_id", requestID).
			Str("method", method).
			Str("url", req.URL.String()).
			Err(err).
			Msg("request failed")
		return nil, err
	}

	cli.logger.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("request completed")

	return cli.processResponse(resp, opt.response)
}

// resolve joins relative paths onto the base URL
func (cli *Client) resolve(rawURL string) string {
	if cli.baseURL == "" || strings.Contains(rawURL, "://") {
		return rawURL
	}
	return cli.baseURL + "/" + strings.TrimLeft(rawURL, "/")
}

// getRequestOption retrieves a RequestOption from the pool
func (cli *Client) getRequestOption() *RequestOption {
	opt := cli.requestOptPool.Get().(*RequestOption)
	opt.reset()
	return opt
}

// putRequestOption returns a RequestOption to the pool
func (cli *Client) putRequestOption(opt *RequestOption) {
	cli.requestOptPool.Put(opt)
}

// createRequest creates an HTTP request with the appropriate body
func (cli *Client) createRequest(ctx context.Context, method, url string, body any) (*http.Request, error) {
	switch v := body.(type) {
	case nil:
		return http.NewRequestWithContext(ctx, method, url, nil)
	case io.Reader:
		return http.NewRequestWithContext(ctx, method, url, v)
	case neturl.Values:
		req, err := http.NewRequestWithContext(ctx, method, url, strings.NewReader(v.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set(HeaderContentType, ContentTypeForm)
		return req, nil
	default:
		return cli.createJSONRequest(ctx, method, url, v)
	}
}

// createJSONRequest creates an HTTP request with JSON body
func (cli *Client) createJSONRequest(ctx context.Context, method, url string, body any) (*http.Request, error) {
	buf := cli.getBuffer()
	defer cli.putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(body); err != nil {
		return nil, err
	}

	// the pooled buffer is reused once this returns
	data := bytes.Clone(buf.Bytes())
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set(HeaderContentType, ContentTypeJSON)
	return req, nil
}

// setRequestHeaders sets headers on the HTTP request
func (cli *Client) setRequestHeaders(req *http.Request, headers map[string]string) {
	for k, v := range headers {
		req.Header.Set(k, v)
	}
}

// getBuffer retrieves a buffer from the pool
func (cli *Client) getBuffer() *bytes.Buffer {
	buf := cli.bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// putBuffer returns a buffer to the pool, with size check to prevent memory leaks
func (cli *Client) putBuffer(buf *bytes.Buffer) {
	if buf.Cap() <= maxBufferSize {
		cli.bufferPool.Put(buf)
	}
}

// processResponse checks the status and decodes the body into dest
func (cli *Client) processResponse(resp *http.Response, dest any) (*http.Response, error) {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return resp, &StatusError{
			StatusCode: resp.StatusCode,
			URL:        resp.Request.URL.String(),
			Detail:     ParseDetail(data),
			Body:       data,
		}
	}

	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp, nil
	}

	buf := cli.getBuffer()
	defer cli.putBuffer(buf)

	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return resp, &DecodeError{StatusCode: resp.StatusCode, Err: err}
	}
	// 204 and other empty bodies leave dest untouched
	if len(bytes.TrimSpace(buf.Bytes())) == 0 {
		return resp, nil
	}
	if err := json.Unmarshal(buf.Bytes(), dest); err != nil {
		return resp, &DecodeError{StatusCode: resp.StatusCode, Err: err}
	}

	return resp, nil
}

// Convenience methods for common HTTP operations

// Get performs a GET request
func (cli *Client) Get(url string, opts ...func(*RequestOption)) (*http.Response, error) {
	return cli.Request(MethodGet, url, nil, opts...)
}

// Post performs a POST request
func (cli *Client) Post(url string, body any, opts ...func(*RequestOption)) (*http.Response, error) {
	return cli.Request(MethodPost, url, body, opts...)
}

// PostForm performs a form-urlencoded POST request
func (cli *Client) PostForm(url string, form neturl.Values, opts ...func(*RequestOption)) (*http.Response, error) {
	return cli.Request(MethodPost, url, form, opts...)
}

// Put performs a PUT request
func (cli *Client) Put(url string, body any, opts ...func(*RequestOption)) (*http.Response, error) {
	return cli.Request(MethodPut, url, body, opts...)
}

// Delete performs a DELETE request
func (cli *Client) Delete(url string, opts ...func(*RequestOption)) (*http.Response, error) {
	return cli.Request(MethodDelete, url, nil, opts...)
}

// Patch performs a PATCH request
func (cli *Client) Patch(url string, body any, opts ...func(*RequestOption)) (*http.Response, error) {
	return cli.Request(MethodPatch, url, body, opts...)
}
