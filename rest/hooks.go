package rest

import (
	"fmt"

	"github.com/google/uuid"
)

// HeaderRequestID carries a unique ID per request.
const HeaderRequestID = "X-Request-Id"

// RequestIDHook sets a random request ID header unless one is already set.
func RequestIDHook() Hook {
	return func(req *Request) error {
		if !req.HasHeader(HeaderRequestID) {
			req.WithHeader(HeaderRequestID, uuid.NewString())
		}
		return nil
	}
}

// TokenIssuer issues a bearer token for a target service.
// *jwt.Issuer satisfies it.
type TokenIssuer interface {
	Token(audience string) (string, error)
}

// ServiceTokenHook authorizes every request with a token whose audience
// is the client's service name.
func ServiceTokenHook(issuer TokenIssuer) Hook {
	return func(req *Request) error {
		token, err := issuer.Token(req.Resource())
		if err != nil {
			return fmt.Errorf("rest: issue token for %s: %w", req.Resource(), err)
		}
		req.WithBearerToken(token)
		return nil
	}
}

// ChainHooks combines hooks into one that runs them in order and stops
// at the first error.
func ChainHooks(hooks ...Hook) Hook {
	return func(req *Request) error {
		for _, h := range hooks {
			if h == nil {
				continue
			}
			if err := h(req); err != nil {
				return err
			}
		}
		return nil
	}
}
