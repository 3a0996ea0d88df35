package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/cook/internal/models"
	"github.com/desertthunder/cook/internal/shared"
	"github.com/go-resty/resty/v2"
)

const (
	CategoriesEndpoint      = "recipes/categories?limit=5"
	RecipesByCategoryPrefix = "recipes/category/"
	CategoryLimit           = 5
	defaultLookupURL        = "https://www.themealdb.com/api/json/v1/1"
	lookupEndpoint          = "lookup.php"
)

// RecipeService reads categories and recipes from the backend and details from the meal database.
type RecipeService struct {
	gateway *Gateway
	lookup  *resty.Client
}

// NewRecipeService creates a [RecipeService]. Lookups go to lookupURL through httpClient.
func NewRecipeService(gateway *Gateway, lookupURL string, httpClient *http.Client) *RecipeService {
	if lookupURL == "" {
		lookupURL = defaultLookupURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &RecipeService{
		gateway: gateway,
		lookup: resty.NewWithClient(httpClient).
			SetBaseURL(lookupURL).
			SetLogger(gateway.logger).
			SetHeader("Accept", "application/json"),
	}
}

// Categories returns at most [CategoryLimit] categories, in backend order.
func (s *RecipeService) Categories(ctx context.Context) ([]models.Category, error) {
	resp, err := s.gateway.Get(ctx, CategoriesEndpoint, nil)
	if err != nil {
		return nil, err
	}

	categories, err := decodeList[models.Category](resp.Body(), "categories", "data")
	if err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	if len(categories) > CategoryLimit {
		categories = categories[:CategoryLimit]
	}
	return categories, nil
}

// ByCategory returns the recipes in the named category.
func (s *RecipeService) ByCategory(ctx context.Context, category string) ([]models.Recipe, error) {
	if category == "" {
		return nil, fmt.Errorf("%w: category is required", shared.ErrMissingArgument)
	}

	resp, err := s.gateway.Get(ctx, RecipesByCategoryPrefix+url.PathEscape(category), nil)
	if err != nil {
		return nil, err
	}

	recipes, err := decodeList[models.Recipe](resp.Body(), "meals", "recipes", "data")
	if err != nil {
		return nil, fmt.Errorf("failed to decode recipes: %w", err)
	}
	return recipes, nil
}

// Lookup fetches the full detail of a recipe by id.
func (s *RecipeService) Lookup(ctx context.Context, id string) (*models.RecipeDetail, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: recipe id is required", shared.ErrMissingArgument)
	}

	resp, err := s.lookup.R().
		SetContext(ctx).
		SetQueryParam("i", id).
		Get(lookupEndpoint)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: request failed: %w", id, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("lookup %s: %w", id, &shared.APIError{StatusCode: resp.StatusCode(), Message: messageOf(resp.Body())})
	}

	details, err := decodeList[models.RecipeDetail](resp.Body(), "meals")
	if err != nil {
		return nil, fmt.Errorf("failed to decode recipe %s: %w", id, err)
	}
	if len(details) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrRecipeNotFound, id)
	}
	return &details[0], nil
}
