// Package steam is a minimal client for the Steam Web API endpoints the
// library importer needs: vanity URL resolution and owned-game listing.
package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const defaultBaseURL = "http://api.steampowered.com"

// steamID64Length is the digit count of a valid SteamID64.
const steamID64Length = 17

var (
	// ErrAPIKeyMissing indicates no Steam API key is configured.
	ErrAPIKeyMissing = errors.New("steam API key is not configured")
	// ErrVanityNotFound indicates the vanity URL did not resolve to an account.
	ErrVanityNotFound = errors.New("vanity URL not found")
	// ErrPrivateProfile indicates the profile's game list is not public.
	ErrPrivateProfile = errors.New("steam profile is private")
)

// OwnedGame is one game from a user's Steam library.
type OwnedGame struct {
	AppID           int64  `json:"appid"`
	Name            string `json:"name"`
	PlaytimeForever int64  `json:"playtime_forever"`
	ImgIconURL      string `json:"img_icon_url"`
	ImgLogoURL      string `json:"img_logo_url"`
}

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func New(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
	}
}

// SetBaseURL overrides the API base URL (used for testing).
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
}

// ResolveSteamID turns user input (profile URL, vanity name, or SteamID64)
// into a SteamID64.
func (c *Client) ResolveSteamID(ctx context.Context, input string) (string, error) {
	if c.apiKey == "" {
		return "", ErrAPIKeyMissing
	}

	input = strings.TrimSpace(input)
	if i := strings.Index(input, "steamcommunity.com/profiles/"); i >= 0 {
		input = strings.SplitN(input[i+len("steamcommunity.com/profiles/"):], "/", 2)[0]
	} else if i := strings.Index(input, "steamcommunity.com/id/"); i >= 0 {
		input = strings.SplitN(input[i+len("steamcommunity.com/id/"):], "/", 2)[0]
	}

	if _, err := strconv.ParseUint(input, 10, 64); err == nil {
		if len(input) != steamID64Length {
			return "", fmt.Errorf("invalid Steam ID: expected %d digits, got %d", steamID64Length, len(input))
		}
		return input, nil
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("vanityurl", input)
	resolveURL := fmt.Sprintf("%s/ISteamUser/ResolveVanityURL/v0001/?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resolveURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create vanity resolution request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach Steam API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("vanity resolution failed with status %d", resp.StatusCode)
	}

	var payload struct {
		Response struct {
			Success int    `json:"success"`
			SteamID string `json:"steamid"`
			Message string `json:"message"`
		} `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode vanity resolution response: %w", err)
	}

	// Success codes per the Steam API: 1 = resolved, 42 = no match.
	switch payload.Response.Success {
	case 1:
		return payload.Response.SteamID, nil
	case 42:
		return "", fmt.Errorf("%w: %q", ErrVanityNotFound, input)
	default:
		return "", fmt.Errorf("vanity resolution failed: %s", payload.Response.Message)
	}
}

// GetOwnedGames fetches the user's owned games with app info and playtime.
// Free games that have been played are included.
func (c *Client) GetOwnedGames(ctx context.Context, steamID string) ([]OwnedGame, error) {
	if c.apiKey == "" {
		return nil, ErrAPIKeyMissing
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("steamid", steamID)
	params.Set("format", "json")
	params.Set("include_appinfo", "true")
	params.Set("include_played_free_games", "true")
	gamesURL := fmt.Sprintf("%s/IPlayerService/GetOwnedGames/v0001/?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, gamesURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create owned games request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach Steam API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return nil, ErrPrivateProfile
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("owned games request failed with status %d", resp.StatusCode)
	}

	var payload struct {
		Response struct {
			GameCount *int        `json:"game_count"`
			Games     []OwnedGame `json:"games"`
			Error     string      `json:"error"`
		} `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode owned games response: %w", err)
	}

	if payload.Response.Games == nil {
		if payload.Response.GameCount != nil && *payload.Response.GameCount == 0 {
			return []OwnedGame{}, nil
		}
		if payload.Response.Error != "" {
			return nil, fmt.Errorf("steam API error: %s", payload.Response.Error)
		}
		return []OwnedGame{}, nil
	}

	return payload.Response.Games, nil
}
