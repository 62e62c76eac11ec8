package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"skill-swap/internal/repository"
)

const (
	searchDefaultLimit = 12
	searchMaxLimit     = 50
)

// SearchCache is the slice of the redis cache the search path needs.
type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	InvalidateUserSearch(ctx context.Context) error
}

type SearchUsersParams struct {
	Query    string
	Category string
	Location string
	Page     int
	Limit    int
}

type SearchUserItem struct {
	ID              uuid.UUID `json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	Location        string    `json:"location,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type SearchUsersResult struct {
	Users []SearchUserItem `json:"users"`
	Total int              `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

type SearchUsecase interface {
	SearchUsers(ctx context.Context, p SearchUsersParams) (SearchUsersResult, error)
}

type Search struct {
	repo  repository.UserSearchRepository
	cache SearchCache
}

func NewSearchUsecase(repo repository.UserSearchRepository, cache SearchCache) *Search {
	return &Search{repo: repo, cache: cache}
}

func (s *Search) SearchUsers(ctx context.Context, p SearchUsersParams) (SearchUsersResult, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = searchDefaultLimit
	}
	if p.Limit > searchMaxLimit {
		p.Limit = searchMaxLimit
	}

	key := searchCacheKey(p)
	if s.cache != nil {
		var cached SearchUsersResult
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	users, total, err := s.repo.SearchActiveUsers(ctx, repository.UserSearchFilter{
		Query:    p.Query,
		Category: p.Category,
		Location: p.Location,
		Limit:    p.Limit,
		Offset:   (p.Page - 1) * p.Limit,
	})
	if err != nil {
		return SearchUsersResult{}, ErrInternal
	}

	items := make([]SearchUserItem, 0, len(users))
	for _, u := range users {
		items = append(items, SearchUserItem{
			ID:              u.ID,
			FirstName:       u.FirstName,
			LastName:        u.LastName,
			ProfileImageURL: u.ProfileImageURL,
			Location:        u.Location,
			Bio:             u.Bio,
			CreatedAt:       u.CreatedAt,
		})
	}

	result := SearchUsersResult{Users: items, Total: total, Page: p.Page, Limit: p.Limit}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, result, 0)
	}

	return result, nil
}

func searchCacheKey(p SearchUsersParams) string {
	norm := func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
	return fmt.Sprintf("users:search:%s:%s:%s:%d:%d",
		norm(p.Query), norm(p.Category), norm(p.Location), p.Page, p.Limit)
}
