package rest

import (
	"maps"
	"strings"
	"sync"
	"time"
)

// DefaultRequestTimeout is the initial process-wide request timeout.
const DefaultRequestTimeout = 30 * time.Second

var defaults = struct {
	mu      sync.RWMutex
	timeout time.Duration
	headers map[string]string
}{
	timeout: DefaultRequestTimeout,
	headers: map[string]string{},
}

// SetDefaultTimeout sets the timeout used by clients that do not set
// their own. Zero disables the timeout.
func SetDefaultTimeout(d time.Duration) {
	defaults.mu.Lock()
	defaults.timeout = d
	defaults.mu.Unlock()
}

// DefaultTimeout returns the process-wide request timeout.
func DefaultTimeout() time.Duration {
	defaults.mu.RLock()
	defer defaults.mu.RUnlock()
	return defaults.timeout
}

// SetDefaultHeader sets a header sent with every request created by any
// client. An empty value removes it.
func SetDefaultHeader(name, value string) {
	defaults.mu.Lock()
	defer defaults.mu.Unlock()
	setOrDelete(defaults.headers, name, value)
}

// DefaultHeaders returns a copy of the process-wide headers.
func DefaultHeaders() map[string]string {
	defaults.mu.RLock()
	defer defaults.mu.RUnlock()
	return maps.Clone(defaults.headers)
}

// setOrDelete stores value under the lowercased name, or removes the name
// when value is empty.
func setOrDelete(headers map[string]string, name, value string) {
	key := strings.ToLower(name)
	if value == "" {
		delete(headers, key)
		return
	}
	headers[key] = value
}
