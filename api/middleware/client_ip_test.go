package middleware

import (
	"net/http/httptest"
	"testing"
)

func TestClientIPPrecedence(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{
			name: "real ip wins over everything",
			headers: map[string]string{
				"X-Real-IP":        "198.51.100.1",
				"CF-Connecting-IP": "198.51.100.2",
				"X-Forwarded-For":  "198.51.100.3, 10.0.0.1",
			},
			want: "198.51.100.1",
		},
		{
			name: "cdn header beats forwarded-for",
			headers: map[string]string{
				"CF-Connecting-IP": "198.51.100.2",
				"X-Forwarded-For":  "198.51.100.3",
			},
			want: "198.51.100.2",
		},
		{
			name:    "first forwarded-for entry",
			headers: map[string]string{"X-Forwarded-For": "198.51.100.3, 10.0.0.1, 10.0.0.2"},
			want:    "198.51.100.3",
		},
		{
			name:    "no headers falls back to sentinel",
			headers: map[string]string{},
			want:    UnknownIdentity,
		},
		{
			name:    "blank real ip is skipped",
			headers: map[string]string{"X-Real-IP": "  ", "X-Forwarded-For": "198.51.100.3"},
			want:    "198.51.100.3",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/contact", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			if got := ClientIP(req); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
