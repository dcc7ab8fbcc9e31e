package epic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugAppID(t *testing.T) {
	require.Equal(t, "epic-rocket-league", SlugAppID("Rocket League"))
	require.Equal(t, "epic-control-ultimate-edition", SlugAppID("Control: Ultimate Edition"))
	require.Equal(t, "epic-divinity-original-sin", SlugAppID("Divinity/Original Sin"))
}

func TestCatalogAppID_Precedence(t *testing.T) {
	require.Equal(t, "offer-1", ManifestGame{Name: "X", AppID: "app-1", OfferID: "offer-1"}.CatalogAppID())
	require.Equal(t, "app-1", ManifestGame{Name: "X", AppID: "app-1"}.CatalogAppID())
	require.Equal(t, "epic-x", ManifestGame{Name: "X"}.CatalogAppID())
}

func TestParseManifest_JSONArray(t *testing.T) {
	games := ParseManifest(`[
		{"AppName":"Rocket League","AppId":"rl-1","OfferId":"offer-1"},
		{"DisplayName":"Hades"},
		{"irrelevant":"entry"}
	]`)

	require.Len(t, games, 2)
	require.Equal(t, "Rocket League", games[0].Name)
	require.Equal(t, "rl-1", games[0].AppID)
	require.Equal(t, "offer-1", games[0].OfferID)
	require.Equal(t, "Hades", games[1].Name)
}

func TestParseManifest_WrappedObject(t *testing.T) {
	for _, key := range []string{"games", "Items", "items", "library"} {
		games := ParseManifest(`{"` + key + `":[{"name":"Control"}]}`)
		require.Len(t, games, 1, "key %q", key)
		require.Equal(t, "Control", games[0].Name)
	}
}

func TestParseManifest_ObjectWithUnknownKey(t *testing.T) {
	games := ParseManifest(`{"whatever":[{"title":"Alan Wake"}]}`)

	require.Len(t, games, 1)
	require.Equal(t, "Alan Wake", games[0].Name)
}

func TestParseManifest_PlaintextFallback(t *testing.T) {
	games := ParseManifest(`
		# launcher dump
		"DisplayName": "Rocket League"
		"InstallLocation": "C:\\Games\\rl"
		"Title": "Hades"
	`)

	require.Len(t, games, 2)
	require.Equal(t, "Rocket League", games[0].Name)
	require.Equal(t, "Hades", games[1].Name)
}

func TestParseManifest_Empty(t *testing.T) {
	require.Nil(t, ParseManifest(""))
	require.Nil(t, ParseManifest("   \n  "))
}

func TestParseManualList(t *testing.T) {
	games := ParseManualList("Hades|offer-123\n\nControl\n  | \n")

	require.Len(t, games, 2)
	require.Equal(t, "Hades", games[0].Name)
	require.Equal(t, "offer-123", games[0].OfferID)
	require.Equal(t, "Control", games[1].Name)
	require.Empty(t, games[1].OfferID)
}
