package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BradenHooton/refusebot/internal/services"
)

// NewTestRequest creates an HTTP request with a JSON body for testing
func NewTestRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.10:54321"
	return req
}

// MockChatOrchestrator implements ChatOrchestrator for testing
type MockChatOrchestrator struct {
	HandleMessageFunc func(ctx context.Context, userID, message string) *services.ChatResult
}

func (m *MockChatOrchestrator) HandleMessage(ctx context.Context, userID, message string) *services.ChatResult {
	if m.HandleMessageFunc != nil {
		return m.HandleMessageFunc(ctx, userID, message)
	}
	return &services.ChatResult{Response: "nah", AttemptCount: 1}
}

// MockRateLimiter implements RateLimiter for testing
type MockRateLimiter struct {
	AllowFunc func(ctx context.Context, sourceKey string) bool
}

func (m *MockRateLimiter) Allow(ctx context.Context, sourceKey string) bool {
	if m.AllowFunc != nil {
		return m.AllowFunc(ctx, sourceKey)
	}
	return true
}

// MockStatusProvider implements StatusProvider for testing
type MockStatusProvider struct {
	SnapshotFunc func(ctx context.Context, userAddress string) (*services.Status, error)
}

func (m *MockStatusProvider) Snapshot(ctx context.Context, userAddress string) (*services.Status, error) {
	if m.SnapshotFunc != nil {
		return m.SnapshotFunc(ctx, userAddress)
	}
	return &services.Status{Amount: "10000", Currency: "USDC"}, nil
}
