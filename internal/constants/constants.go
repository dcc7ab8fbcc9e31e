package constants

// Session
const (
	SessionCookieName = "gameshelf_session"
	ContextKeyUserID  = "user_id"
)

// Auth
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Recommendations
const (
	MaxRecommendations = 50
	// FollowedUserBoost is added to a game's score when a followed user owns it.
	FollowedUserBoost = 5.0
)

// PopularTags is the fixed tag vocabulary users can pick preferences from
// and games can be tagged with.
var PopularTags = []string{
	"Action", "Adventure", "RPG", "Strategy", "Simulation", "Sports",
	"Racing", "Puzzle", "Indie", "Casual", "Multiplayer", "Singleplayer",
	"FPS", "Horror", "Sci-Fi", "Fantasy", "Open World", "Story Rich",
	"Co-op", "Competitive", "Sandbox", "Survival", "Crafting", "Building",
}

// IsKnownTag reports whether tag is part of the fixed vocabulary.
func IsKnownTag(tag string) bool {
	for _, t := range PopularTags {
		if t == tag {
			return true
		}
	}
	return false
}
