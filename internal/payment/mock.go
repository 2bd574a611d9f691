package payment

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MockGateway is an in-memory Gateway for tests and local development.
// Sessions start unpaid; MarkPaid flips them.
type MockGateway struct {
	mu          sync.Mutex
	baseURL     string
	sessions    map[string]*Verification
	verifyCalls int
}

// NewMockGateway creates a MockGateway whose checkout URLs start with
// baseURL.
func NewMockGateway(baseURL string) *MockGateway {
	return &MockGateway{baseURL: baseURL, sessions: make(map[string]*Verification)}
}

func (m *MockGateway) CreateCheckout(_ context.Context, userID, _ string) (string, error) {
	id := "mock_" + uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = &Verification{SessionID: id, UserID: userID, Reference: "mockpay_" + id}
	return m.baseURL + "?session_id=" + id, nil
}

func (m *MockGateway) VerifyPaid(_ context.Context, token string) (Verification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verifyCalls++

	v, ok := m.sessions[token]
	if !ok {
		return Verification{}, ErrUnknownSession
	}
	return *v, nil
}

// MarkPaid completes a session. It reports false for an unknown token.
func (m *MockGateway) MarkPaid(token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.sessions[token]
	if ok {
		v.Paid = true
	}
	return ok
}

// Sessions returns the ids of every checkout created so far.
func (m *MockGateway) Sessions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids
}

// VerifyCalls returns how many times VerifyPaid ran.
func (m *MockGateway) VerifyCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.verifyCalls
}
