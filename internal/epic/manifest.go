package epic

import (
	"encoding/json"
	"regexp"
	"strings"
)

// ManifestGame is one game extracted from launcher-manifest data or a manual
// game list.
type ManifestGame struct {
	Name    string
	AppID   string
	OfferID string
}

// SlugAppID derives a stable, namespaced appid for a game that has no
// storefront id. The "epic-" prefix keeps Epic entries from ever colliding
// with Steam's numeric appids under the global UNIQUE(appid) constraint.
func SlugAppID(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, ":", "")
	slug = strings.ReplaceAll(slug, "/", "-")
	return "epic-" + slug
}

// CatalogAppID picks the appid for a manifest game: the storefront offer id
// when present, otherwise a namespaced slug of the name.
func (g ManifestGame) CatalogAppID() string {
	if g.OfferID != "" {
		return g.OfferID
	}
	if g.AppID != "" {
		return g.AppID
	}
	return SlugAppID(g.Name)
}

// ParseManifest extracts games from Epic launcher manifest data. The
// launcher has shipped several shapes over the years: a bare JSON array of
// game objects, an object wrapping such an array under various keys, and
// for anything unparseable a plaintext key/value fallback.
func ParseManifest(data string) []ManifestGame {
	trimmed := strings.TrimSpace(data)
	if trimmed == "" {
		return nil
	}

	var arr []map[string]any
	if err := json.Unmarshal([]byte(trimmed), &arr); err == nil {
		return gamesFromItems(arr)
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(trimmed), &obj); err == nil {
		for _, key := range []string{"games", "Items", "items", "library"} {
			if list, ok := obj[key].([]any); ok {
				return gamesFromAnyList(list)
			}
		}
		// No known key; scan every nested list for game-shaped objects.
		var games []ManifestGame
		for _, value := range obj {
			if list, ok := value.([]any); ok {
				games = append(games, gamesFromAnyList(list)...)
			}
		}
		return games
	}

	return gamesFromPlaintext(trimmed)
}

// ParseManualList parses one game per line in "Game Name|offer-id" or plain
// "Game Name" form.
func ParseManualList(data string) []ManifestGame {
	var games []ManifestGame
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, "|", 2)
		name := strings.TrimSpace(parts[0])
		if name == "" {
			continue
		}

		game := ManifestGame{Name: name}
		if len(parts) > 1 {
			game.OfferID = strings.TrimSpace(parts[1])
		}
		games = append(games, game)
	}
	return games
}

func gamesFromAnyList(list []any) []ManifestGame {
	items := make([]map[string]any, 0, len(list))
	for _, v := range list {
		if m, ok := v.(map[string]any); ok {
			items = append(items, m)
		}
	}
	return gamesFromItems(items)
}

func gamesFromItems(items []map[string]any) []ManifestGame {
	var games []ManifestGame
	for _, item := range items {
		name := firstString(item, "AppName", "DisplayName", "name", "title")
		if name == "" {
			continue
		}
		games = append(games, ManifestGame{
			Name:    name,
			AppID:   firstString(item, "AppId", "AppID", "appId", "id"),
			OfferID: firstString(item, "OfferId", "offerId"),
		})
	}
	return games
}

var plaintextPairRe = regexp.MustCompile(`"([^"]+)"\s*:\s*"([^"]+)"`)

func gamesFromPlaintext(data string) []ManifestGame {
	var games []ManifestGame
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		match := plaintextPairRe.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		key := strings.ToLower(match[1])
		if strings.Contains(key, "name") || strings.Contains(key, "title") || strings.Contains(key, "app") {
			games = append(games, ManifestGame{Name: match[2]})
		}
	}
	return games
}

func firstString(item map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := item[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
