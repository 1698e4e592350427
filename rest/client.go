package rest

import (
	"context"
	"maps"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/kbukum/restclient/discovery"
	apperrors "github.com/kbukum/restclient/errors"
	"github.com/kbukum/restclient/logger"
	"github.com/kbukum/restclient/observability"
)

// Hook is invoked on every request a Client creates, after the default
// and fixed headers are applied. An error fails Create.
type Hook func(req *Request) error

// Client creates requests for one service. Its address is resolved by a
// discovery.Provider, and requests cannot be created before that.
type Client struct {
	resource string

	initMu  sync.Mutex
	mu      sync.RWMutex
	ready   bool
	baseURL string
	headers map[string]string
	timeout *time.Duration

	readiness   *discovery.Ready
	autoInit    bool
	hooks       []Hook
	doer        Doer
	log         *logger.Logger
	instruments *observability.Instruments
}

// Option configures a Client.
type Option func(*Client)

// WithReadiness subscribes the client to r instead of the process-wide
// discovery.DefaultReady event.
func WithReadiness(r *discovery.Ready) Option {
	return func(c *Client) { c.readiness = r }
}

// WithoutAutoInit keeps the client from subscribing to a Ready event. It
// must then be initialized with Initialize or WithConfigProvider.
func WithoutAutoInit() Option {
	return func(c *Client) { c.autoInit = false }
}

// WithHTTPClient sets the transport used to send requests.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.doer = d }
}

// WithLogger sets the client logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l.WithComponent("rest")
		}
	}
}

// WithHook appends a hook run on every created request. Hooks run in the
// order they were added.
func WithHook(h Hook) Option {
	return func(c *Client) {
		if h != nil {
			c.hooks = append(c.hooks, h)
		}
	}
}

// WithInstruments sets the tracing and metric instruments.
func WithInstruments(i *observability.Instruments) Option {
	return func(c *Client) { c.instruments = i }
}

// WithConfig applies a Config: its timeout when non-zero, its headers as
// fixed headers, and the request ID hook when enabled.
func WithConfig(cfg Config) Option {
	return func(c *Client) {
		if cfg.Timeout > 0 {
			c.setTimeout(cfg.Timeout)
		}
		for name, value := range cfg.Headers {
			setOrDelete(c.headers, name, value)
		}
		if cfg.RequestID {
			c.hooks = append(c.hooks, RequestIDHook())
		}
	}
}

// New creates a client for the named service. Unless WithoutAutoInit is
// given, the client initializes itself when its Ready event fires; a
// failure to do so is logged.
func New(resourceName string, opts ...Option) *Client {
	c := &Client{
		resource: resourceName,
		baseURL:  "http://" + strings.ToLower(resourceName),
		headers:  make(map[string]string),
		autoInit: true,
		doer:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.WithComponent("rest")
	}
	if c.instruments == nil {
		inst, err := observability.NewInstruments(nil, nil)
		if err != nil {
			c.log.Warn("REST client instruments unavailable", logger.ErrorFields("new_instruments", err))
		}
		c.instruments = inst
	}

	if c.autoInit {
		if c.readiness == nil {
			c.readiness = discovery.DefaultReady()
		}
		// initFromEvent logs its own failure.
		_ = c.readiness.Subscribe(c.initFromEvent)
	}
	return c
}

func (c *Client) initFromEvent(ctx context.Context, p discovery.Provider) error {
	err := c.Initialize(ctx, p)
	if err != nil {
		c.log.Error("REST client initialization failed", c.errorFields(err))
	}
	return err
}

// Initialize resolves the service address through p. It fails with
// ServiceNotFound when p knows no address and with AlreadyInitialized
// when the client is already ready.
func (c *Client) Initialize(ctx context.Context, p discovery.Provider) error {
	c.initMu.Lock()
	defer c.initMu.Unlock()

	if c.Ready() {
		return apperrors.AlreadyInitialized(c.resource)
	}

	addr, err := p.ServiceAddress(ctx, c.resource, discovery.ServiceTypeREST)
	if err != nil {
		return apperrors.ServiceNotFound(c.resource, discovery.ServiceTypeREST).WithCause(err)
	}
	if addr == "" {
		return apperrors.ServiceNotFound(c.resource, discovery.ServiceTypeREST)
	}

	base := normalizeBaseURL(addr)
	c.mu.Lock()
	c.baseURL = base
	c.ready = true
	c.mu.Unlock()

	c.log.Info("REST client ready", logger.Fields(
		logger.FieldResource, c.resource,
		logger.FieldBaseURL, base,
	))
	return nil
}

// WithConfigProvider initializes the client through p and returns it.
func (c *Client) WithConfigProvider(ctx context.Context, p discovery.Provider) (*Client, error) {
	if err := c.Initialize(ctx, p); err != nil {
		return nil, err
	}
	return c, nil
}

// Resource returns the service name.
func (c *Client) Resource() string { return c.resource }

// Ready reports whether the service address has been resolved.
func (c *Client) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ready
}

// BaseURL returns the resolved base URL, ending in a slash. Before the
// client is ready it returns the provisional http://<resource name>.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// WithHeader sets a header sent with every request. An empty value
// removes it.
func (c *Client) WithHeader(name, value string) *Client {
	c.mu.Lock()
	setOrDelete(c.headers, name, value)
	c.mu.Unlock()
	return c
}

// WithAuthorization sets the Authorization header of every request.
func (c *Client) WithAuthorization(auth string) *Client {
	return c.WithHeader("Authorization", auth)
}

// WithBearerToken sets a bearer Authorization header on every request.
// An empty token removes the header.
func (c *Client) WithBearerToken(token string) *Client {
	if token == "" {
		return c.WithAuthorization("")
	}
	return c.WithAuthorization("Bearer " + token)
}

// WithContentType sets the Content-Type header of every request.
func (c *Client) WithContentType(contentType string) *Client {
	return c.WithHeader("Content-Type", contentType)
}

// WithTimeout sets the timeout of requests created from now on. Zero
// disables it.
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.mu.Lock()
	c.setTimeout(d)
	c.mu.Unlock()
	return c
}

func (c *Client) setTimeout(d time.Duration) {
	c.timeout = &d
}

// Create builds a request without sending it. It fails with NotReady
// before the service address is resolved.
func (c *Client) Create(method, path string, args ...Argument) (*Request, error) {
	c.mu.RLock()
	if !c.ready {
		c.mu.RUnlock()
		return nil, apperrors.NotReady(c.resource)
	}
	base := c.baseURL
	fixed := maps.Clone(c.headers)
	timeout := DefaultTimeout()
	if c.timeout != nil {
		timeout = *c.timeout
	}
	c.mu.RUnlock()

	req := NewRequest(base, method, path, args...)
	req.resource = c.resource
	req.timeout = timeout
	req.doer = c.doer
	req.log = c.log
	req.instruments = c.instruments

	for name, value := range DefaultHeaders() {
		req.WithHeader(name, value)
	}
	for name, value := range fixed {
		req.WithHeader(name, value)
	}
	for _, h := range c.hooks {
		if err := h(req); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// Execute creates a request and calls it.
func (c *Client) Execute(ctx context.Context, method, path string, args ...Argument) (any, error) {
	req, err := c.Create(method, path, args...)
	if err != nil {
		return nil, err
	}
	return req.Call(ctx)
}

func (c *Client) errorFields(err error) map[string]interface{} {
	return logger.Fields(
		logger.FieldResource, c.resource,
		logger.FieldServiceType, discovery.ServiceTypeREST,
		logger.FieldError, err.Error(),
	)
}

// normalizeBaseURL ensures addr ends with exactly one slash.
func normalizeBaseURL(addr string) string {
	return strings.TrimRight(addr, "/") + "/"
}
