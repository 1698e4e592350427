package rest

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/kbukum/restclient/errors"
	"github.com/kbukum/restclient/logger"
	"github.com/kbukum/restclient/observability"
	"github.com/kbukum/restclient/version"
)

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options is a rendered request, ready to be sent.
type Options struct {
	Method  string
	URL     string
	Headers map[string]string
	// Body is nil when the request has no body argument.
	Body []byte
}

// Request describes one HTTP call. It is configured with the With
// methods and sent once with Call or Decode.
type Request struct {
	resource string
	baseURL  string
	path     string
	method   string
	args     []Argument
	headers  map[string]string
	timeout  time.Duration

	doer        Doer
	log         *logger.Logger
	instruments *observability.Instruments

	called atomic.Bool
}

// NewRequest creates a request against baseURL without a Client. Leading
// slashes of path are removed.
func NewRequest(baseURL, method, path string, args ...Argument) *Request {
	return &Request{
		baseURL: baseURL,
		path:    strings.TrimLeft(path, "/"),
		method:  method,
		args:    slices.Clone(args),
		headers: make(map[string]string),
		timeout: DefaultTimeout(),
		doer:    http.DefaultClient,
		log:     logger.WithComponent("rest"),
	}
}

// Resource returns the service name of the client that created the
// request, or "" for requests built with NewRequest.
func (r *Request) Resource() string { return r.resource }

// URL returns the base URL joined with the leaf path, before arguments
// are applied.
func (r *Request) URL() string { return r.baseURL + r.path }

// Method returns the request method.
func (r *Request) Method() string { return r.method }

// Arguments returns a copy of the request arguments.
func (r *Request) Arguments() []Argument { return slices.Clone(r.args) }

// Headers returns a copy of the request headers. Keys are lowercase.
func (r *Request) Headers() map[string]string { return maps.Clone(r.headers) }

// HasHeader reports whether the header is set, ignoring case.
func (r *Request) HasHeader(name string) bool {
	_, ok := r.headers[strings.ToLower(name)]
	return ok
}

// Timeout returns the request timeout. Zero means no timeout.
func (r *Request) Timeout() time.Duration { return r.timeout }

// WithHeader sets a header. An empty value removes it.
func (r *Request) WithHeader(name, value string) *Request {
	setOrDelete(r.headers, name, value)
	return r
}

// WithAuthorization sets the Authorization header.
func (r *Request) WithAuthorization(auth string) *Request {
	return r.WithHeader("Authorization", auth)
}

// WithBearerToken sets a bearer Authorization header. An empty token
// removes the header.
func (r *Request) WithBearerToken(token string) *Request {
	if token == "" {
		return r.WithAuthorization("")
	}
	return r.WithAuthorization("Bearer " + token)
}

// WithContentType sets the Content-Type header.
func (r *Request) WithContentType(contentType string) *Request {
	return r.WithHeader("Content-Type", contentType)
}

// WithTimeout sets the request timeout. Zero disables it.
func (r *Request) WithTimeout(d time.Duration) *Request {
	r.timeout = d
	return r
}

// Render applies the arguments and returns the wire-level options.
// Path placeholders are replaced before the query string is appended.
func (r *Request) Render() (*Options, error) {
	opts := &Options{
		Method:  r.method,
		URL:     r.URL(),
		Headers: maps.Clone(r.headers),
	}

	var query []string
	for _, arg := range r.args {
		switch arg.Transport {
		case TransportPath:
			if isEmpty(arg.Value) {
				return nil, apperrors.InvalidArgument(arg.Name,
					fmt.Sprintf("path argument %s must not be empty", arg.Name))
			}
			opts.URL = strings.Replace(opts.URL, "{"+arg.Name+"}", stringify(arg.Value), 1)
		case TransportHeader:
			if !isEmpty(arg.Value) {
				setHeader(opts.Headers, arg.Name, stringify(arg.Value))
			}
		case TransportBody:
			if !hasHeader(opts.Headers, "content-type") {
				opts.Headers["content-type"] = "application/json"
			}
			body, err := jsonAPI.Marshal(arg.Value)
			if err != nil {
				return nil, apperrors.InvalidArgument(arg.Name,
					fmt.Sprintf("body argument %s cannot be encoded", arg.Name)).WithCause(err)
			}
			opts.Body = body
		case TransportQuery:
			if !isEmpty(arg.Value) {
				query = append(query, encodeURIComponent(arg.Name)+"="+encodeURIComponent(stringify(arg.Value)))
			}
		default:
			return nil, apperrors.InvalidArgument(arg.Name,
				fmt.Sprintf("unknown argument transport: %s", arg.Transport))
		}
	}

	if len(query) > 0 {
		opts.URL += "?" + strings.Join(query, "&")
	}
	return opts, nil
}

// Call sends the request and returns the response body: the parsed value
// for JSON responses, the raw text otherwise. A 404 response returns nil
// and no error. A request can be called only once.
func (r *Request) Call(ctx context.Context) (any, error) {
	res, err := r.do(ctx)
	if err != nil || res == nil {
		return nil, err
	}
	return res.value, nil
}

// Decode sends req and decodes the response body into a T. A 404
// response returns nil and no error. When T is string the raw body is
// returned.
func Decode[T any](ctx context.Context, req *Request) (*T, error) {
	res, err := req.do(ctx)
	if err != nil || res == nil {
		return nil, err
	}

	var out T
	if s, ok := any(&out).(*string); ok {
		*s = string(res.raw)
		return &out, nil
	}
	if len(bytes.TrimSpace(res.raw)) == 0 {
		return &out, nil
	}
	if err := jsonAPI.Unmarshal(res.raw, &out); err != nil {
		return nil, fmt.Errorf("rest: decode %s %s response: %w", req.method, req.URL(), err)
	}
	return &out, nil
}

// result is an interpreted non-404 response.
type result struct {
	status int
	raw    []byte
	value  any
}

func (r *Request) do(ctx context.Context) (*result, error) {
	if !r.called.CompareAndSwap(false, true) {
		return nil, ErrRequestConsumed
	}

	opts, err := r.Render()
	if err != nil {
		return nil, err
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	status := 0
	var span trace.Span
	if r.instruments != nil {
		ctx, span = r.instruments.StartCall(ctx, r.resource, opts.Method, opts.URL)
		defer span.End()
	}

	res, err := r.send(ctx, opts, &status)

	if r.instruments != nil {
		r.instruments.RecordCall(ctx, span, r.resource, opts.Method, status, err, time.Since(start))
	}
	if err != nil {
		r.log.Warn("REST call failed", logger.Fields(
			logger.FieldResource, r.resource,
			logger.FieldMethod, opts.Method,
			logger.FieldURL, opts.URL,
			logger.FieldStatus, status,
			logger.FieldError, err.Error(),
			logger.FieldDuration, time.Since(start).Milliseconds(),
		))
	}
	return res, err
}

func (r *Request) send(ctx context.Context, opts *Options, status *int) (*result, error) {
	var body io.Reader
	if opts.Body != nil {
		body = bytes.NewReader(opts.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, opts.Method, opts.URL, body)
	if err != nil {
		return nil, apperrors.InvalidArgument("url", fmt.Sprintf("invalid request %s %s", opts.Method, opts.URL)).WithCause(err)
	}
	for name, value := range opts.Headers {
		httpReq.Header.Set(name, value)
	}
	if httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", version.UserAgent())
	}
	if r.instruments != nil {
		r.instruments.Inject(ctx, httpReq.Header)
	}

	resp, err := r.doer.Do(httpReq)
	if err != nil {
		return nil, r.transportError(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, r.transportError(ctx, fmt.Errorf("read response body: %w", err))
	}
	*status = resp.StatusCode

	return r.interpret(resp, raw, opts.URL)
}

// interpret classifies the response. It returns nil and no error for 404.
func (r *Request) interpret(resp *http.Response, raw []byte, url string) (*result, error) {
	res := &result{status: resp.StatusCode, raw: raw, value: string(raw)}

	parsed := false
	if isJSONContentType(resp.Header.Get("Content-Type")) {
		var v any
		if err := jsonAPI.Unmarshal(raw, &v); err != nil {
			r.log.Debug("Failed to parse JSON response", logger.Fields(
				logger.FieldResource, r.resource,
				logger.FieldURL, url,
				logger.FieldError, err.Error(),
			))
		} else {
			res.value = v
			parsed = true
		}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode >= 400 && resp.StatusCode <= 599:
		return nil, &RequestError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw, parsed),
			Body:       res.value,
			RawBody:    string(raw),
			Response:   resp,
		}
	}
	return res, nil
}

// errorMessage returns the "error" field of a parsed JSON body.
func errorMessage(raw []byte, parsed bool) string {
	if parsed {
		if msg := gjson.GetBytes(raw, "error"); msg.Exists() && msg.Type != gjson.Null && msg.String() != "" {
			return msg.String()
		}
	}
	return unknownErrorMessage
}

// transportError maps a failed exchange to a Timeout error when the call
// context is done and to a ConnectionFailed error otherwise.
func (r *Request) transportError(ctx context.Context, err error) error {
	target := r.resource
	if target == "" {
		target = r.baseURL
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		if !stderrors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}
		return apperrors.Timeout(fmt.Sprintf("%s %s", r.method, target), err)
	}
	return apperrors.ConnectionFailed(target, err)
}

// setHeader sets name in headers, replacing any key that differs only in
// case.
func setHeader(headers map[string]string, name, value string) {
	for k := range headers {
		if strings.EqualFold(k, name) {
			delete(headers, k)
		}
	}
	headers[name] = value
}

func hasHeader(headers map[string]string, name string) bool {
	for k := range headers {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}
