package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"gameshelf/internal/models"
	"gameshelf/internal/repository"
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrBodyRequired  = errors.New("body is required")
	ErrUnknownAuthor = errors.New("author does not exist")
)

// PostService handles post business logic
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// CreatePostInput represents input for creating a post
type CreatePostInput struct {
	AuthorID uint64
	Title    string
	Body     string
}

// CreatePost validates the author and creates a post
func (s *PostService) CreatePost(input CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(input.Body) == "" {
		return nil, ErrBodyRequired
	}

	if _, err := s.userRepo.FindByID(input.AuthorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownAuthor
		}
		return nil, fmt.Errorf("failed to verify author: %w", err)
	}

	post := &models.Post{
		AuthorID: input.AuthorID,
		Title:    input.Title,
		Body:     input.Body,
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return s.postRepo.FindByID(post.ID)
}

// ListPosts returns posts newest first
func (s *PostService) ListPosts(page, pageSize int) ([]models.Post, int64, error) {
	posts, total, err := s.postRepo.List(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, total, nil
}
