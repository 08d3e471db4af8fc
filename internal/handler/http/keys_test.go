// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/creditdash/keyvault/internal/service"
	"github.com/creditdash/keyvault/internal/store"
	"github.com/creditdash/keyvault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateKey_Success(t *testing.T) {
	credentials := &mockCredentialService{
		createFn: func(ctx context.Context, accountID string, request models.CreateCredentialRequest) (models.Credential, error) {
			assert.Equal(t, "acc-1", accountID)
			assert.Equal(t, "openai", request.Provider)
			return models.Credential{
				ID:           5,
				AccountID:    accountID,
				Provider:     request.Provider,
				Name:         request.Name,
				EncryptedKey: "6162:6364",
			}, nil
		},
	}
	router := newTestRouter(&service.Services{
		CredentialService: credentials,
		GateService:       allowSessionGate("acc-1"),
	})

	rec := doRequest(t, router, http.MethodPost, "/api/keys",
		`{"provider":"openai","key":"sk-super-secret-value","name":"prod"}`, withSessionCookie)

	require.Equal(t, http.StatusCreated, rec.Code)

	// neither the plaintext nor the envelope may appear in the response
	body := rec.Body.String()
	assert.NotContains(t, body, "sk-super-secret-value")
	assert.NotContains(t, body, "6162:6364")

	var response models.CredentialResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, int64(5), response.Key.ID)
	assert.Equal(t, "openai", response.Key.Provider)
}

func TestCreateKey_NoCookie(t *testing.T) {
	created := false
	credentials := &mockCredentialService{
		createFn: func(ctx context.Context, accountID string, request models.CreateCredentialRequest) (models.Credential, error) {
			created = true
			return models.Credential{}, nil
		},
	}
	router := newTestRouter(&service.Services{
		CredentialService: credentials,
		GateService:       allowSessionGate("acc-1"),
	})

	rec := doRequest(t, router, http.MethodPost, "/api/keys",
		`{"provider":"openai","key":"sk-x"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, created, "handler must not run without a session")
}

func TestCreateKey_RejectedSession(t *testing.T) {
	router := newTestRouter(&service.Services{
		CredentialService: &mockCredentialService{},
		GateService:       &mockGateService{}, // rejects everything
	})

	rec := doRequest(t, router, http.MethodPost, "/api/keys",
		`{"provider":"openai","key":"sk-x"}`, withSessionCookie)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateKey_InvalidJSON(t *testing.T) {
	router := newTestRouter(&service.Services{
		CredentialService: &mockCredentialService{},
		GateService:       allowSessionGate("acc-1"),
	})

	rec := doRequest(t, router, http.MethodPost, "/api/keys", `{not json`, withSessionCookie)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateKey_ValidationError(t *testing.T) {
	credentials := &mockCredentialService{
		createFn: func(ctx context.Context, accountID string, request models.CreateCredentialRequest) (models.Credential, error) {
			return models.Credential{}, service.ErrValidationNoKey
		},
	}
	router := newTestRouter(&service.Services{
		CredentialService: credentials,
		GateService:       allowSessionGate("acc-1"),
	})

	rec := doRequest(t, router, http.MethodPost, "/api/keys",
		`{"provider":"openai"}`, withSessionCookie)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListKeys_EnvelopesNeverSerialized(t *testing.T) {
	credentials := &mockCredentialService{
		listFn: func(ctx context.Context, accountID string) ([]models.Credential, error) {
			return []models.Credential{
				{ID: 1, Provider: "openai", Name: "prod", EncryptedKey: "6162:6364"},
				{ID: 2, Provider: "anthropic", Name: "dev", EncryptedKey: "6566:6768"},
			}, nil
		},
	}
	router := newTestRouter(&service.Services{
		CredentialService: credentials,
		GateService:       allowSessionGate("acc-1"),
	})

	rec := doRequest(t, router, http.MethodGet, "/api/keys", "", withSessionCookie)

	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.NotContains(t, body, "6162:6364")
	assert.NotContains(t, body, "encrypted_key")

	var response models.CredentialListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Len(t, response.Keys, 2)
}

func TestGetMaskedKey_Success(t *testing.T) {
	credentials := &mockCredentialService{
		getMaskedFn: func(ctx context.Context, accountID string, id int64) (models.MaskedCredential, error) {
			assert.Equal(t, int64(7), id)
			return models.MaskedCredential{ID: id, Provider: "openai", MaskedKey: "sk-1**********cdef"}, nil
		},
	}
	router := newTestRouter(&service.Services{
		CredentialService: credentials,
		GateService:       allowSessionGate("acc-1"),
	})

	rec := doRequest(t, router, http.MethodGet, "/api/keys/7", "", withSessionCookie)

	require.Equal(t, http.StatusOK, rec.Code)

	var response models.MaskedCredentialResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "sk-1**********cdef", response.Key.MaskedKey)
}

func TestGetMaskedKey_NotFound(t *testing.T) {
	credentials := &mockCredentialService{
		getMaskedFn: func(ctx context.Context, accountID string, id int64) (models.MaskedCredential, error) {
			return models.MaskedCredential{}, store.ErrCredentialNotFound
		},
	}
	router := newTestRouter(&service.Services{
		CredentialService: credentials,
		GateService:       allowSessionGate("acc-1"),
	})

	rec := doRequest(t, router, http.MethodGet, "/api/keys/7", "", withSessionCookie)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMaskedKey_BadID(t *testing.T) {
	router := newTestRouter(&service.Services{
		CredentialService: &mockCredentialService{},
		GateService:       allowSessionGate("acc-1"),
	})

	rec := doRequest(t, router, http.MethodGet, "/api/keys/abc", "", withSessionCookie)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateKey_Rotation(t *testing.T) {
	var gotRequest models.UpdateCredentialRequest
	credentials := &mockCredentialService{
		updateFn: func(ctx context.Context, accountID string, id int64, request models.UpdateCredentialRequest) (models.Credential, error) {
			gotRequest = request
			return models.Credential{ID: id, Provider: "openai"}, nil
		},
	}
	router := newTestRouter(&service.Services{
		CredentialService: credentials,
		GateService:       allowSessionGate("acc-1"),
	})

	rec := doRequest(t, router, http.MethodPatch, "/api/keys/7",
		`{"key":"sk-rotated"}`, withSessionCookie)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotRequest.Key)
	assert.Equal(t, "sk-rotated", *gotRequest.Key)
	assert.Nil(t, gotRequest.Name)
}

func TestDeleteKey_Success(t *testing.T) {
	credentials := &mockCredentialService{
		deleteFn: func(ctx context.Context, accountID string, id int64) error {
			assert.Equal(t, "acc-1", accountID)
			assert.Equal(t, int64(7), id)
			return nil
		},
	}
	router := newTestRouter(&service.Services{
		CredentialService: credentials,
		GateService:       allowSessionGate("acc-1"),
	})

	rec := doRequest(t, router, http.MethodDelete, "/api/keys/7", "", withSessionCookie)

	require.Equal(t, http.StatusOK, rec.Code)

	var response models.OKResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.OK)
}

func TestDeleteKey_NotFound(t *testing.T) {
	credentials := &mockCredentialService{
		deleteFn: func(ctx context.Context, accountID string, id int64) error {
			return store.ErrCredentialNotFound
		},
	}
	router := newTestRouter(&service.Services{
		CredentialService: credentials,
		GateService:       allowSessionGate("acc-1"),
	})

	rec := doRequest(t, router, http.MethodDelete, "/api/keys/7", "", withSessionCookie)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateProjectKey_URLWinsOverBody(t *testing.T) {
	var gotRequest models.CreateCredentialRequest
	credentials := &mockCredentialService{
		createFn: func(ctx context.Context, accountID string, request models.CreateCredentialRequest) (models.Credential, error) {
			gotRequest = request
			return models.Credential{ID: 1}, nil
		},
	}
	router := newTestRouter(&service.Services{
		CredentialService: credentials,
		GateService:       allowSessionGate("acc-1"),
	})

	rec := doRequest(t, router, http.MethodPost, "/api/projects/3/keys",
		`{"provider":"openai","key":"sk-x","project_id":99}`, withSessionCookie)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, gotRequest.ProjectID)
	assert.Equal(t, int64(3), *gotRequest.ProjectID)
}

func TestListProjectKeys_ForeignProject(t *testing.T) {
	credentials := &mockCredentialService{
		listByProjectFn: func(ctx context.Context, accountID string, projectID int64) ([]models.Credential, error) {
			return nil, store.ErrProjectNotFound
		},
	}
	router := newTestRouter(&service.Services{
		CredentialService: credentials,
		GateService:       allowSessionGate("acc-1"),
	})

	rec := doRequest(t, router, http.MethodGet, "/api/projects/3/keys", "", withSessionCookie)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
