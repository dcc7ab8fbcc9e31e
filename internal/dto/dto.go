package dto

import (
	"time"

	"gameshelf/internal/models"
	"gameshelf/internal/services"
	"gameshelf/internal/utils"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// UserSummaryDTO represents a user in the browse listing, annotated with the
// viewer's follow status
type UserSummaryDTO struct {
	ID          uint64 `json:"id"`
	Username    string `json:"username"`
	IsFollowing bool   `json:"is_following"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users      []UserSummaryDTO         `json:"users"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// PostDTO represents a post in API responses
type PostDTO struct {
	ID       uint64    `json:"id"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	AuthorID uint64    `json:"author_id"`
	Created  time.Time `json:"created"`
	Author   *UserDTO  `json:"author,omitempty"`
}

// PostListResponse represents a paginated list of posts
type PostListResponse struct {
	Posts      []PostDTO                `json:"posts"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// GameDTO represents a catalog game in API responses
type GameDTO struct {
	ID         uint64 `json:"id"`
	AppID      string `json:"appid"`
	Name       string `json:"name"`
	Platform   string `json:"platform"`
	ImgIconURL string `json:"img_icon_url,omitempty"`
	ImgLogoURL string `json:"img_logo_url,omitempty"`
}

// LibraryEntryDTO represents one game in a user's library
type LibraryEntryDTO struct {
	Game            GameDTO   `json:"game"`
	PlaytimeForever int64     `json:"playtime_forever"`
	ImportedAt      time.Time `json:"imported_at"`
}

// LibraryResponse represents a user's full library
type LibraryResponse struct {
	Entries []LibraryEntryDTO `json:"entries"`
	Count   int               `json:"count"`
}

// RecommendationDTO represents one scored suggestion
type RecommendationDTO struct {
	Game  GameDTO `json:"game"`
	Score float64 `json:"score"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}

// ToUserListResponse converts browse results to UserListResponse
func ToUserListResponse(summaries []services.UserSummary, page, pageSize int, totalCount int64) UserListResponse {
	items := make([]UserSummaryDTO, len(summaries))
	for i, s := range summaries {
		items[i] = UserSummaryDTO{
			ID:          s.User.ID,
			Username:    s.User.Username,
			IsFollowing: s.IsFollowing,
		}
	}

	return UserListResponse{
		Users: items,
		Pagination: utils.PaginationResponse{
			Page:  page,
			Limit: pageSize,
			Total: totalCount,
		},
	}
}

// ToPostDTO converts a Post model to PostDTO
func ToPostDTO(post models.Post) PostDTO {
	dto := PostDTO{
		ID:       post.ID,
		Title:    post.Title,
		Body:     post.Body,
		AuthorID: post.AuthorID,
		Created:  post.Created,
	}

	// Include author if preloaded
	if post.Author.ID != 0 {
		author := ToUserDTO(post.Author)
		dto.Author = &author
	}

	return dto
}

// ToPostListResponse converts a slice of posts to PostListResponse
func ToPostListResponse(posts []models.Post, page, pageSize int, totalCount int64) PostListResponse {
	items := make([]PostDTO, len(posts))
	for i, post := range posts {
		items[i] = ToPostDTO(post)
	}

	return PostListResponse{
		Posts: items,
		Pagination: utils.PaginationResponse{
			Page:  page,
			Limit: pageSize,
			Total: totalCount,
		},
	}
}

// ToGameDTO converts a Game model to GameDTO
func ToGameDTO(game models.Game) GameDTO {
	return GameDTO{
		ID:         game.ID,
		AppID:      game.AppID,
		Name:       game.Name,
		Platform:   game.Platform,
		ImgIconURL: game.ImgIconURL,
		ImgLogoURL: game.ImgLogoURL,
	}
}

// ToLibraryEntryDTO converts a LibraryEntry with its game to LibraryEntryDTO
func ToLibraryEntryDTO(entry models.LibraryEntry) LibraryEntryDTO {
	return LibraryEntryDTO{
		Game:            ToGameDTO(entry.Game),
		PlaytimeForever: entry.PlaytimeForever,
		ImportedAt:      entry.ImportedAt,
	}
}

// ToLibraryResponse converts a slice of library entries to LibraryResponse
func ToLibraryResponse(entries []models.LibraryEntry) LibraryResponse {
	items := make([]LibraryEntryDTO, len(entries))
	for i, entry := range entries {
		items[i] = ToLibraryEntryDTO(entry)
	}

	return LibraryResponse{
		Entries: items,
		Count:   len(items),
	}
}

// ToRecommendationDTOs converts scored suggestions
func ToRecommendationDTOs(recs []services.Recommendation) []RecommendationDTO {
	dtos := make([]RecommendationDTO, len(recs))
	for i, rec := range recs {
		dtos[i] = RecommendationDTO{
			Game:  ToGameDTO(rec.Game),
			Score: rec.Score,
		}
	}
	return dtos
}
