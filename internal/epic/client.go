// Package epic is a client for the Epic Games Ecom API (partner-gated) plus
// parsers for launcher-manifest and manual library input, which are the
// fallback import paths when developer credentials are unavailable.
package epic

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const defaultBaseURL = "https://api.epicgames.dev"

var (
	// ErrCredentialsMissing indicates no Epic client credentials are configured.
	ErrCredentialsMissing = errors.New("epic API credentials are not configured")
	// ErrAuthFailed indicates the OAuth token or entitlements call was rejected.
	ErrAuthFailed = errors.New("epic authentication failed")
	// ErrPartnerAccessDenied indicates the account lacks Ecom API partner access.
	ErrPartnerAccessDenied = errors.New("epic Ecom API access denied")
)

// Entitlement is one owned game from an Epic account.
type Entitlement struct {
	ID      string
	OfferID string
	Name    string
}

type Client struct {
	clientID     string
	clientSecret string
	deploymentID string
	baseURL      string
	httpClient   *http.Client
}

func New(clientID, clientSecret, deploymentID string) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		deploymentID: deploymentID,
		baseURL:      defaultBaseURL,
		httpClient:   &http.Client{},
	}
}

// SetBaseURL overrides the API base URL (used for testing).
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
}

// Configured reports whether API credentials are present; without them only
// the manifest and manual import paths work.
func (c *Client) Configured() bool {
	return c.clientID != "" && c.clientSecret != ""
}

// AccessToken fetches an OAuth token via the client-credentials grant.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	if !c.Configured() {
		return "", ErrCredentialsMissing
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("deployment_id", c.deploymentID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/epic/oauth/v2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}

	auth := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach Epic API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", ErrAuthFailed
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request failed with status %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", ErrAuthFailed
	}

	return payload.AccessToken, nil
}

// GetEntitlements fetches the account's owned games.
func (c *Client) GetEntitlements(ctx context.Context, accountID, accessToken string) ([]Entitlement, error) {
	entURL := fmt.Sprintf("%s/epic/ecom/v1/accounts/%s/entitlements?includeRedeemed=true",
		c.baseURL, url.PathEscape(accountID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, entURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create entitlements request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach Epic API: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, ErrAuthFailed
	case http.StatusForbidden:
		return nil, ErrPartnerAccessDenied
	default:
		return nil, fmt.Errorf("entitlements request failed with status %d", resp.StatusCode)
	}

	var payload struct {
		Items []struct {
			ID    string `json:"id"`
			Type  string `json:"type"`
			Offer struct {
				ID    string `json:"id"`
				Title string `json:"title"`
			} `json:"offer"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode entitlements response: %w", err)
	}

	entitlements := make([]Entitlement, 0, len(payload.Items))
	for _, item := range payload.Items {
		if item.Type != "ENTITLEMENT" {
			continue
		}
		name := item.Offer.Title
		if name == "" {
			name = "Unknown Game"
		}
		entitlements = append(entitlements, Entitlement{
			ID:      item.ID,
			OfferID: item.Offer.ID,
			Name:    name,
		})
	}

	return entitlements, nil
}
