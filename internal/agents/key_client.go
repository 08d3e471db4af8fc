package agents

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/creditdash/keyvault/internal/config"
	"github.com/creditdash/keyvault/internal/logger"
	"github.com/creditdash/keyvault/internal/utils"
	"github.com/creditdash/keyvault/models"
	"github.com/go-resty/resty/v2"
)

const serverSecretHeader = "X-Server-Secret"

type httpKeyClient struct {
	client       *utils.HTTPClient
	serverSecret string
	logger       *logger.Logger
}

// NewKeyClient constructs an HTTP implementation of [KeyClient]. It
// normalises and validates the base URL from cfg.ServerBaseURL and
// configures the underlying HTTP client with it.
//
// Returns an error if cfg.ServerBaseURL is empty or cannot be parsed as a
// valid URL.
func NewKeyClient(cfg config.Workers, serverSecret string, logger *logger.Logger) (KeyClient, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server base url: %w", err)
	}

	client := utils.NewHTTPClient()
	client.SetBaseURL(baseURL)

	return &httpKeyClient{client: client, serverSecret: serverSecret, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// FetchKey implements [KeyClient]. It POSTs the scope to
// POST /api/keys/fetch with the shared server secret header and returns the
// decrypted credential from the response. The plaintext is never logged.
func (h *httpKeyClient) FetchKey(ctx context.Context, accountID, provider string, projectID *int64) (string, error) {
	var response models.FetchCredentialResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(serverSecretHeader, h.serverSecret).
		SetBody(models.FetchCredentialRequest{
			AccountID: accountID,
			Provider:  provider,
			ProjectID: projectID,
		}).
		SetResult(&response).
		Post("/api/keys/fetch")
	if err != nil {
		return "", fmt.Errorf("fetch key request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	h.logger.Debug().
		Str("account_id", accountID).
		Str("provider", provider).
		Msg("fetched key for agent use")

	return response.Secret, nil
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	switch resp.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrRejected, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrKeyNotFound, body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("%w: http %d: %s", ErrServer, resp.StatusCode(), body)
	}
}
