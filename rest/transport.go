package rest

import (
	"fmt"
	"strings"
)

// Transport is the part of the HTTP request an Argument is placed in.
// The zero value is not a valid transport.
type Transport int

const (
	TransportPath Transport = iota + 1
	TransportHeader
	TransportBody
	TransportQuery
)

var transportNames = map[Transport]string{
	TransportPath:   "path",
	TransportHeader: "header",
	TransportBody:   "body",
	TransportQuery:  "query",
}

// ParseTransport parses a transport name case-insensitively.
func ParseTransport(s string) (Transport, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for t, n := range transportNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown argument transport: %s", s)
}

// String returns the lowercase transport name.
func (t Transport) String() string {
	if n, ok := transportNames[t]; ok {
		return n
	}
	return fmt.Sprintf("Transport(%d)", int(t))
}

// Valid reports whether t is one of the defined transports.
func (t Transport) Valid() bool {
	_, ok := transportNames[t]
	return ok
}

// MarshalText implements encoding.TextMarshaler.
func (t Transport) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown argument transport: %s", t)
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Transport) UnmarshalText(text []byte) error {
	parsed, err := ParseTransport(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
