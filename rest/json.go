package rest

import (
	"reflect"
	"strings"
	"time"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"
)

// jsonAPI encodes request bodies and parses response bodies. Times are
// written as epoch milliseconds and read from either epoch milliseconds
// or RFC 3339 strings.
var jsonAPI = newJSONAPI()

func newJSONAPI() jsoniter.API {
	api := jsoniter.Config{
		EscapeHTML:             true,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
	}.Froze()
	api.RegisterExtension(&epochMillisExtension{})
	return api
}

var (
	timeType    = reflect.TypeOf(time.Time{})
	timePtrType = reflect.TypeOf((*time.Time)(nil))
)

type epochMillisExtension struct {
	jsoniter.DummyExtension
}

// The pointer type is matched explicitly since *time.Time would otherwise
// be encoded through its MarshalJSON method.
func (e *epochMillisExtension) CreateEncoder(typ reflect2.Type) jsoniter.ValEncoder {
	switch typ.Type1() {
	case timeType:
		return epochMillisCodec{}
	case timePtrType:
		return epochMillisPtrCodec{}
	}
	return nil
}

func (e *epochMillisExtension) CreateDecoder(typ reflect2.Type) jsoniter.ValDecoder {
	switch typ.Type1() {
	case timeType:
		return epochMillisCodec{}
	case timePtrType:
		return epochMillisPtrCodec{}
	}
	return nil
}

type epochMillisCodec struct{}

// IsEmpty is false so that omitempty keeps zero times, as encoding/json does.
func (epochMillisCodec) IsEmpty(unsafe.Pointer) bool {
	return false
}

func (epochMillisCodec) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	stream.WriteInt64((*time.Time)(ptr).UnixMilli())
}

func (epochMillisCodec) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	switch iter.WhatIsNext() {
	case jsoniter.NumberValue:
		*(*time.Time)(ptr) = time.UnixMilli(iter.ReadInt64())
	case jsoniter.StringValue:
		s := iter.ReadString()
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			iter.ReportError("decode time", err.Error())
			return
		}
		*(*time.Time)(ptr) = t
	case jsoniter.NilValue:
		iter.ReadNil()
		*(*time.Time)(ptr) = time.Time{}
	default:
		iter.Skip()
		iter.ReportError("decode time", "expected epoch milliseconds or RFC 3339 string")
	}
}

type epochMillisPtrCodec struct{}

func (epochMillisPtrCodec) IsEmpty(ptr unsafe.Pointer) bool {
	return *(**time.Time)(ptr) == nil
}

func (epochMillisPtrCodec) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	t := *(**time.Time)(ptr)
	if t == nil {
		stream.WriteNil()
		return
	}
	stream.WriteInt64(t.UnixMilli())
}

func (epochMillisPtrCodec) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	if iter.ReadNil() {
		*(**time.Time)(ptr) = nil
		return
	}
	t := new(time.Time)
	epochMillisCodec{}.Decode(unsafe.Pointer(t), iter)
	*(**time.Time)(ptr) = t
}

// isJSONContentType reports whether a Content-Type header value denotes JSON.
func isJSONContentType(ct string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(ct)), "application/json")
}

const upperhex = "0123456789ABCDEF"

// encodeURIComponent percent-encodes s as UTF-8, leaving only the
// unreserved marks A-Z a-z 0-9 - _ . ! ~ * ' ( ) unescaped. Spaces become
// %20, never '+'.
func encodeURIComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
