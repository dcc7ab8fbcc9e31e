package services

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gorm.io/gorm"

	"gameshelf/internal/models"
	"gameshelf/internal/repository"
)

var (
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("not following this user")
)

// SocialService handles follow edges and user discovery
type SocialService struct {
	userRepo    repository.UserRepository
	followRepo  repository.FollowRepository
	libraryRepo repository.LibraryRepository
}

// NewSocialService creates a new SocialService
func NewSocialService(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	libraryRepo repository.LibraryRepository,
) *SocialService {
	return &SocialService{
		userRepo:    userRepo,
		followRepo:  followRepo,
		libraryRepo: libraryRepo,
	}
}

// FollowUser creates a directed follow edge from follower to following.
func (s *SocialService) FollowUser(followerID, followingID uint64) (*models.Follow, error) {
	if followerID == followingID {
		return nil, ErrSelfFollow
	}

	if _, err := s.userRepo.FindByID(followingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to verify user: %w", err)
	}

	exists, err := s.followRepo.Exists(followerID, followingID)
	if err != nil {
		return nil, fmt.Errorf("failed to check follow: %w", err)
	}
	if exists {
		return nil, ErrAlreadyFollowing
	}

	follow := &models.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
	}
	if err := s.followRepo.Create(follow); err != nil {
		// The unique index catches the race between Exists and Create.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyFollowing
		}
		return nil, fmt.Errorf("failed to create follow: %w", err)
	}

	return follow, nil
}

// UnfollowUser removes the directed follow edge.
func (s *SocialService) UnfollowUser(followerID, followingID uint64) error {
	existed, err := s.followRepo.Delete(followerID, followingID)
	if err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}
	if !existed {
		return ErrNotFollowing
	}
	return nil
}

// ListFollowing returns the users a user follows, newest edge first.
func (s *SocialService) ListFollowing(userID uint64) ([]models.User, error) {
	follows, err := s.followRepo.ListFollowing(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}

	users := make([]models.User, 0, len(follows))
	for _, f := range follows {
		users = append(users, f.Following)
	}
	return users, nil
}

// ListFollowers returns the users following a user, newest edge first.
func (s *SocialService) ListFollowers(userID uint64) ([]models.User, error) {
	follows, err := s.followRepo.ListFollowers(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}

	users := make([]models.User, 0, len(follows))
	for _, f := range follows {
		users = append(users, f.Follower)
	}
	return users, nil
}

// UserSummary is one row of the user browser
type UserSummary struct {
	User        models.User
	IsFollowing bool
}

// BrowseUsers lists other users for discovery, optionally filtered by a
// username substring, each annotated with the viewer's follow status.
func (s *SocialService) BrowseUsers(viewerID uint64, search string, page, pageSize int) ([]UserSummary, int64, error) {
	users, total, err := s.userRepo.List(repository.UserFilter{
		Search:    search,
		ExcludeID: viewerID,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	followingIDs, err := s.followRepo.FollowingIDs(viewerID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list following ids: %w", err)
	}
	following := make(map[uint64]bool, len(followingIDs))
	for _, id := range followingIDs {
		following[id] = true
	}

	summaries := make([]UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, UserSummary{
			User:        u,
			IsFollowing: following[u.ID],
		})
	}
	return summaries, total, nil
}

// ScoredCommonGame is a shared game with its relevance score
type ScoredCommonGame struct {
	repository.CommonGame
	Relevance float64 `json:"relevance"`
}

// CommonGamesSort enumerates the supported common-games orderings
type CommonGamesSort string

const (
	CommonGamesSortRelevance     CommonGamesSort = "relevance"
	CommonGamesSortName          CommonGamesSort = "name"
	CommonGamesSortPlaytime      CommonGamesSort = "playtime"
	CommonGamesSortMyPlaytime    CommonGamesSort = "my_playtime"
	CommonGamesSortTheirPlaytime CommonGamesSort = "their_playtime"
)

// ParseCommonGamesSort maps sort/order query values onto the whitelist.
// Unknown values fall back to relevance, which sorts descending unless asc
// is asked for explicitly.
func ParseCommonGamesSort(sortBy, order string) (CommonGamesSort, bool) {
	var parsed CommonGamesSort
	switch sortBy {
	case "name":
		parsed = CommonGamesSortName
	case "playtime":
		parsed = CommonGamesSortPlaytime
	case "my_playtime":
		parsed = CommonGamesSortMyPlaytime
	case "their_playtime":
		parsed = CommonGamesSortTheirPlaytime
	default:
		parsed = CommonGamesSortRelevance
	}
	return parsed, order != "asc"
}

// CommonGames returns the games two users both own, scored by the geometric
// mean of their playtimes weighted by total playtime.
func (s *SocialService) CommonGames(userID, otherID uint64, sortBy CommonGamesSort, descending bool) ([]ScoredCommonGame, error) {
	if _, err := s.userRepo.FindByID(otherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to verify user: %w", err)
	}

	common, err := s.libraryRepo.CommonGames(userID, otherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list common games: %w", err)
	}

	scored := make([]ScoredCommonGame, 0, len(common))
	for _, g := range common {
		scored = append(scored, ScoredCommonGame{
			CommonGame: g,
			Relevance:  commonGameRelevance(g.MyPlaytime, g.TheirPlaytime),
		})
	}

	var less func(i, j int) bool
	switch sortBy {
	case CommonGamesSortName:
		less = func(i, j int) bool { return scored[i].Name < scored[j].Name }
	case CommonGamesSortPlaytime:
		less = func(i, j int) bool {
			return scored[i].MyPlaytime+scored[i].TheirPlaytime <
				scored[j].MyPlaytime+scored[j].TheirPlaytime
		}
	case CommonGamesSortMyPlaytime:
		less = func(i, j int) bool { return scored[i].MyPlaytime < scored[j].MyPlaytime }
	case CommonGamesSortTheirPlaytime:
		less = func(i, j int) bool { return scored[i].TheirPlaytime < scored[j].TheirPlaytime }
	default:
		less = func(i, j int) bool { return scored[i].Relevance < scored[j].Relevance }
	}
	if descending {
		asc := less
		less = func(i, j int) bool { return asc(j, i) }
	}
	sort.SliceStable(scored, less)
	return scored, nil
}

func commonGameRelevance(mine, theirs int64) float64 {
	total := float64(mine + theirs)
	return math.Sqrt(float64(mine)*float64(theirs)) * math.Log(total+1)
}
