// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/creditdash/keyvault/internal/logger"
	"github.com/creditdash/keyvault/internal/service"
	"github.com/creditdash/keyvault/models"
)

// ─────────────────────────────────────────────
// Mock: service.CredentialService
// ─────────────────────────────────────────────

type mockCredentialService struct {
	createFn        func(ctx context.Context, accountID string, request models.CreateCredentialRequest) (models.Credential, error)
	listFn          func(ctx context.Context, accountID string) ([]models.Credential, error)
	listByProjectFn func(ctx context.Context, accountID string, projectID int64) ([]models.Credential, error)
	getMaskedFn     func(ctx context.Context, accountID string, id int64) (models.MaskedCredential, error)
	updateFn        func(ctx context.Context, accountID string, id int64, request models.UpdateCredentialRequest) (models.Credential, error)
	deleteFn        func(ctx context.Context, accountID string, id int64) error
	fetchForUseFn   func(ctx context.Context, request models.FetchCredentialRequest) (string, error)
}

func (m *mockCredentialService) Create(ctx context.Context, accountID string, request models.CreateCredentialRequest) (models.Credential, error) {
	if m.createFn != nil {
		return m.createFn(ctx, accountID, request)
	}
	return models.Credential{}, nil
}

func (m *mockCredentialService) List(ctx context.Context, accountID string) ([]models.Credential, error) {
	if m.listFn != nil {
		return m.listFn(ctx, accountID)
	}
	return nil, nil
}

func (m *mockCredentialService) ListByProject(ctx context.Context, accountID string, projectID int64) ([]models.Credential, error) {
	if m.listByProjectFn != nil {
		return m.listByProjectFn(ctx, accountID, projectID)
	}
	return nil, nil
}

func (m *mockCredentialService) GetMasked(ctx context.Context, accountID string, id int64) (models.MaskedCredential, error) {
	if m.getMaskedFn != nil {
		return m.getMaskedFn(ctx, accountID, id)
	}
	return models.MaskedCredential{}, nil
}

func (m *mockCredentialService) Update(ctx context.Context, accountID string, id int64, request models.UpdateCredentialRequest) (models.Credential, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, accountID, id, request)
	}
	return models.Credential{}, nil
}

func (m *mockCredentialService) Delete(ctx context.Context, accountID string, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, accountID, id)
	}
	return nil
}

func (m *mockCredentialService) FetchForUse(ctx context.Context, request models.FetchCredentialRequest) (string, error) {
	if m.fetchForUseFn != nil {
		return m.fetchForUseFn(ctx, request)
	}
	return "", nil
}

// ─────────────────────────────────────────────
// Mock: service.ProjectService
// ─────────────────────────────────────────────

type mockProjectService struct {
	createFn func(ctx context.Context, accountID string, request models.CreateProjectRequest) (models.Project, error)
	listFn   func(ctx context.Context, accountID string) ([]models.Project, error)
	deleteFn func(ctx context.Context, accountID string, id int64) error
}

func (m *mockProjectService) Create(ctx context.Context, accountID string, request models.CreateProjectRequest) (models.Project, error) {
	if m.createFn != nil {
		return m.createFn(ctx, accountID, request)
	}
	return models.Project{}, nil
}

func (m *mockProjectService) List(ctx context.Context, accountID string) ([]models.Project, error) {
	if m.listFn != nil {
		return m.listFn(ctx, accountID)
	}
	return nil, nil
}

func (m *mockProjectService) Delete(ctx context.Context, accountID string, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, accountID, id)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: service.GateService
// ─────────────────────────────────────────────

type mockGateService struct {
	resolveSessionFn     func(ctx context.Context, tokenString string) (string, error)
	verifyServerSecretFn func(provided string) error
	verifyCronKeyFn      func(provided string) error
}

func (m *mockGateService) ResolveSession(ctx context.Context, tokenString string) (string, error) {
	if m.resolveSessionFn != nil {
		return m.resolveSessionFn(ctx, tokenString)
	}
	return "", service.ErrUnauthenticated
}

func (m *mockGateService) VerifyServerSecret(provided string) error {
	if m.verifyServerSecretFn != nil {
		return m.verifyServerSecretFn(provided)
	}
	return service.ErrUnauthorized
}

func (m *mockGateService) VerifyCronKey(provided string) error {
	if m.verifyCronKeyFn != nil {
		return m.verifyCronKeyFn(provided)
	}
	return service.ErrUnauthorized
}

// ─────────────────────────────────────────────
// Mock: service.AgentService
// ─────────────────────────────────────────────

type mockAgentService struct {
	runAgentsFn  func(ctx context.Context, agentType string) (models.AgentRun, error)
	fetchUsageFn func(ctx context.Context) (models.AgentRun, error)
	listRecentFn func(ctx context.Context, limit int) ([]models.AgentRun, error)
}

func (m *mockAgentService) RunAgents(ctx context.Context, agentType string) (models.AgentRun, error) {
	if m.runAgentsFn != nil {
		return m.runAgentsFn(ctx, agentType)
	}
	return models.AgentRun{}, nil
}

func (m *mockAgentService) FetchUsage(ctx context.Context) (models.AgentRun, error) {
	if m.fetchUsageFn != nil {
		return m.fetchUsageFn(ctx)
	}
	return models.AgentRun{}, nil
}

func (m *mockAgentService) ListRecent(ctx context.Context, limit int) ([]models.AgentRun, error) {
	if m.listRecentFn != nil {
		return m.listRecentFn(ctx, limit)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Test harness
// ─────────────────────────────────────────────

// allowSessionGate resolves every session cookie to the given account.
func allowSessionGate(accountID string) *mockGateService {
	return &mockGateService{
		resolveSessionFn: func(ctx context.Context, tokenString string) (string, error) {
			return accountID, nil
		},
	}
}

func newTestRouter(services *service.Services) http.Handler {
	h := NewHandler(services, logger.NewLogger("test"))
	return h.Init()
}

func doRequest(t *testing.T, router http.Handler, method, target, body string, mutate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, target, reader)
	if mutate != nil {
		mutate(req)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func withSessionCookie(req *http.Request) {
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "some-signed-token"})
}
