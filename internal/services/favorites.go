package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/desertthunder/cook/internal/models"
	"github.com/desertthunder/cook/internal/shared"
)

const (
	LikeEndpoint   = "recipes/like"
	LikedEndpoint  = "recipes/liked"
	UnlikeEndpoint = "recipes/unlike/"
)

// LikeResponse is the raw outcome of a like call. Classification happens in the favorites flow.
type LikeResponse struct {
	StatusCode int
	Message    string
}

// FavoriteService calls the backend's favorites endpoints.
type FavoriteService struct {
	gateway *Gateway
}

// NewFavoriteService creates a [FavoriteService] on gateway.
func NewFavoriteService(gateway *Gateway) *FavoriteService {
	return &FavoriteService{gateway: gateway}
}

// Like marks recipe liked. The body is {idMeal, strMeal, strMealThumb}.
func (s *FavoriteService) Like(ctx context.Context, recipe models.Recipe) (*LikeResponse, error) {
	if err := recipe.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.gateway.Post(ctx, LikeEndpoint, recipe, nil)
	if err != nil {
		return nil, err
	}
	return &LikeResponse{StatusCode: resp.StatusCode(), Message: messageOf(resp.Body())}, nil
}

// Liked lists the signed-in user's liked recipes.
func (s *FavoriteService) Liked(ctx context.Context) ([]models.Recipe, error) {
	resp, err := s.gateway.Get(ctx, LikedEndpoint, nil)
	if err != nil {
		return nil, err
	}

	recipes, err := decodeList[models.Recipe](resp.Body(), "recipes", "likedRecipes", "meals", "data")
	if err != nil {
		return nil, fmt.Errorf("failed to decode liked recipes: %w", err)
	}
	return recipes, nil
}

// Unlike removes a liked recipe by id.
func (s *FavoriteService) Unlike(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: recipe id is required", shared.ErrMissingArgument)
	}
	_, err := s.gateway.Delete(ctx, UnlikeEndpoint+url.PathEscape(id), nil)
	return err
}
