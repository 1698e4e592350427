package rest

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// Argument is one named value of a request and where it is placed.
type Argument struct {
	Name      string    `json:"name"`
	Value     any       `json:"value"`
	Transport Transport `json:"transport"`
}

// NewArgument creates an argument from a transport name, parsed
// case-insensitively.
func NewArgument(name string, value any, transport string) (Argument, error) {
	t, err := ParseTransport(transport)
	if err != nil {
		return Argument{}, err
	}
	return Argument{Name: name, Value: value, Transport: t}, nil
}

// PathArg replaces the {name} placeholder of the request path.
func PathArg(name string, value any) Argument {
	return Argument{Name: name, Value: value, Transport: TransportPath}
}

// HeaderArg sets a request header when value is not empty.
func HeaderArg(name string, value any) Argument {
	return Argument{Name: name, Value: value, Transport: TransportHeader}
}

// BodyArg sends value as the JSON request body.
func BodyArg(value any) Argument {
	return Argument{Name: "body", Value: value, Transport: TransportBody}
}

// QueryArg appends a query parameter when value is not empty.
func QueryArg(name string, value any) Argument {
	return Argument{Name: name, Value: value, Transport: TransportQuery}
}

// isEmpty reports whether v carries no value: nil, a nil pointer, map,
// slice or interface, or the empty string.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// stringify renders an argument value for the URL or a header. Times are
// rendered as epoch milliseconds, matching the body encoding.
func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case time.Time:
		return strconv.FormatInt(val.UnixMilli(), 10)
	case *time.Time:
		return strconv.FormatInt(val.UnixMilli(), 10)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(v)
	}
}
