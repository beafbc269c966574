package websocket

import (
	"net/http/httptest"
	"testing"
)

func TestOriginChecker(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{"wildcard allows any origin", []string{"*"}, "https://evil.example", true},
		{"listed origin allowed", []string{"https://app.suraksha.org"}, "https://app.suraksha.org", true},
		{"unlisted origin rejected", []string{"https://app.suraksha.org"}, "https://evil.example", false},
		{"no origin header allowed", []string{"https://app.suraksha.org"}, "", true},
		{"empty list rejects browsers", nil, "https://app.suraksha.org", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := originChecker(tt.allowed)
			req := httptest.NewRequest("GET", "/ws", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if got := check(req); got != tt.want {
				t.Errorf("originChecker(%v) with origin %q = %v, want %v", tt.allowed, tt.origin, got, tt.want)
			}
		})
	}
}

func TestNewHandlerAppliesConfig(t *testing.T) {
	h := NewHandler(&Config{
		ReadBufferSize:  2048,
		WriteBufferSize: 4096,
		AllowedOrigins:  []string{"*"},
	})

	if h.upgrader.ReadBufferSize != 2048 {
		t.Errorf("ReadBufferSize = %d, want 2048", h.upgrader.ReadBufferSize)
	}
	if h.upgrader.WriteBufferSize != 4096 {
		t.Errorf("WriteBufferSize = %d, want 4096", h.upgrader.WriteBufferSize)
	}
	if h.GetHub() == nil {
		t.Fatal("expected a running hub")
	}
}
