package rest

import (
	"testing"
	"time"
)

func TestEncodeURIComponent(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"a b", "a%20b"},
		{"plain", "plain"},
		{"a&b=c", "a%26b%3Dc"},
		{"x/y?z#w", "x%2Fy%3Fz%23w"},
		{"-_.!~*'()", "-_.!~*'()"},
		{"100%", "100%25"},
		{"a+b", "a%2Bb"},
		{"ü", "%C3%BC"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := encodeURIComponent(tc.in); got != tc.want {
				t.Errorf("encodeURIComponent(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestJSON_TimeAsEpochMillis(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ms := at.UnixMilli()

	type event struct {
		Name string     `json:"name"`
		At   time.Time  `json:"at"`
		Prev *time.Time `json:"prev,omitempty"`
	}

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"bare", at, "1709294400000"},
		{"struct", event{Name: "x", At: at, Prev: &at}, `{"name":"x","at":1709294400000,"prev":1709294400000}`},
		{"map", map[string]any{"at": at}, `{"at":1709294400000}`},
		{"slice", []any{at, "s"}, `[1709294400000,"s"]`},
		{"nil", nil, "null"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := jsonAPI.MarshalToString(tc.in)
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
	if ms != 1709294400000 {
		t.Fatalf("fixture mismatch: %d", ms)
	}
}

func TestJSON_DecodeTime(t *testing.T) {
	var out struct {
		A time.Time `json:"a"`
		B time.Time `json:"b"`
	}
	in := `{"a":1709294400000,"b":"2024-03-01T12:00:00Z"}`
	if err := jsonAPI.UnmarshalFromString(in, &out); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	want := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	if !out.A.Equal(want) || !out.B.Equal(want) {
		t.Errorf("expected %v, got %v and %v", want, out.A, out.B)
	}
}

func TestIsJSONContentType(t *testing.T) {
	tests := map[string]bool{
		"application/json":                true,
		"application/json; charset=utf-8": true,
		"Application/JSON":                true,
		"text/plain":                      false,
		"application/problem+json":        false,
		"":                                false,
	}
	for ct, want := range tests {
		if got := isJSONContentType(ct); got != want {
			t.Errorf("isJSONContentType(%q) = %v, want %v", ct, got, want)
		}
	}
}
