package repository

import (
	"time"

	"gameshelf/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// List retrieves users, optionally filtered by a username substring and
	// excluding one ID (the browsing user), ordered by username
	List(filter UserFilter) ([]models.User, int64, error)

	// Delete removes a user; dependent posts, library entries and follow
	// edges go with it
	Delete(id uint64) error
}

// UserFilter holds filtering options for listing users
type UserFilter struct {
	Search    string
	ExcludeID uint64
	Page      int
	PageSize  int
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	// Create creates a new post
	Create(post *models.Post) error

	// FindByID finds a post by ID with its author
	FindByID(id uint64) (*models.Post, error)

	// List retrieves posts newest first with pagination
	List(page, pageSize int) ([]models.Post, int64, error)
}

// GameRepository defines the interface for the shared game catalog
type GameRepository interface {
	// Upsert inserts a game or, when the appid already exists, updates the
	// mutable fields (name, playtime, icon/logo) in a single atomic
	// statement. The returned game carries the catalog ID.
	Upsert(game *models.Game) (*models.Game, error)

	// FindByID finds a game by catalog ID
	FindByID(id uint64) (*models.Game, error)
}

// LibrarySort enumerates the supported library orderings
type LibrarySort string

const (
	LibrarySortName     LibrarySort = "name"
	LibrarySortPlaytime LibrarySort = "playtime"
	LibrarySortImported LibrarySort = "imported"
)

// LibraryFilter holds listing options for a user's library
type LibraryFilter struct {
	UserID     uint64
	Sort       LibrarySort
	Descending bool
}

// GameImport is one storefront game to be imported into a user's library
type GameImport struct {
	AppID           string
	Name            string
	Platform        string
	PlaytimeForever int64
	ImgIconURL      string
	ImgLogoURL      string
}

// CommonGame is a game owned by both users in a comparison
type CommonGame struct {
	GameID        uint64 `json:"game_id"`
	AppID         string `json:"appid"`
	Name          string `json:"name"`
	ImgLogoURL    string `json:"img_logo_url"`
	MyPlaytime    int64  `json:"my_playtime"`
	TheirPlaytime int64  `json:"their_playtime"`
}

// LibraryRepository defines the interface for per-user library data access
type LibraryRepository interface {
	// Upsert inserts a library row or, when the (user, game) pair already
	// exists, updates playtime and refreshes imported_at atomically
	Upsert(entry *models.LibraryEntry) (*models.LibraryEntry, error)

	// ImportBatch upserts every game and library row of one storefront
	// import inside a single transaction; nothing is committed on failure
	ImportBatch(userID uint64, games []GameImport, importedAt time.Time) error

	// List retrieves a user's library entries with their games
	List(filter LibraryFilter) ([]models.LibraryEntry, error)

	// Remove deletes one entry from a user's library
	Remove(userID, gameID uint64) error

	// OwnedGameIDs returns the catalog IDs in a user's library
	OwnedGameIDs(userID uint64) ([]uint64, error)

	// CommonGames returns games present in both users' libraries with both
	// playtime snapshots
	CommonGames(userID, otherID uint64) ([]CommonGame, error)
}

// FollowRepository defines the interface for follow-edge data access
type FollowRepository interface {
	// Create inserts a directed follow edge
	Create(follow *models.Follow) error

	// Delete removes a directed follow edge; reports whether it existed
	Delete(followerID, followingID uint64) (bool, error)

	// Exists reports whether the directed edge exists
	Exists(followerID, followingID uint64) (bool, error)

	// ListFollowing lists edges going out from a user, newest first
	ListFollowing(userID uint64) ([]models.Follow, error)

	// ListFollowers lists edges coming in to a user, newest first
	ListFollowers(userID uint64) ([]models.Follow, error)

	// FollowingIDs returns the IDs a user follows
	FollowingIDs(userID uint64) ([]uint64, error)
}

// PreferenceRepository defines the interface for tag preferences and game tags
type PreferenceRepository interface {
	// ReplacePreferences atomically replaces a user's tag preferences
	ReplacePreferences(userID uint64, prefs []models.UserPreference) error

	// ListPreferences lists a user's tag preferences
	ListPreferences(userID uint64) ([]models.UserPreference, error)

	// ReplaceGameTags atomically replaces the tags attached to a game
	ReplaceGameTags(gameID uint64, tags []string) error

	// ListGameTags lists the tags attached to a game
	ListGameTags(gameID uint64) ([]string, error)

	// GamesByTag returns games carrying a tag, excluding the given catalog IDs
	GamesByTag(tag string, excludeGameIDs []uint64) ([]models.Game, error)

	// GamesOwnedByUsers returns games in any of the given users' libraries,
	// excluding the given catalog IDs
	GamesOwnedByUsers(userIDs []uint64, excludeGameIDs []uint64) ([]models.Game, error)
}
