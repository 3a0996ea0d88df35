// Package browse walks categories, the recipes in a category and recipe details.
package browse

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/cook/internal/models"
	"github.com/desertthunder/cook/internal/shared"
)

// Client reads the recipe catalogue.
type Client interface {
	Categories(ctx context.Context) ([]models.Category, error)
	ByCategory(ctx context.Context, category string) ([]models.Recipe, error)
	Lookup(ctx context.Context, id string) (*models.RecipeDetail, error)
}

// Browser tracks the selected category and the recipes last loaded for it.
// Every selection fetches again.
type Browser struct {
	client Client
	logger *log.Logger

	mu         sync.Mutex
	categories []models.Category
	selected   string
	recipes    []models.Recipe
}

func New(client Client, logger *log.Logger) *Browser {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Browser{client: client, logger: shared.WithLogger(logger, "component", "browse")}
}

// Categories loads the category list.
func (b *Browser) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := b.client.Categories(ctx)
	if err != nil {
		b.logger.Warn("failed to load categories", "error", err)
		return nil, err
	}

	b.mu.Lock()
	b.categories = categories
	b.mu.Unlock()
	return categories, nil
}

// Select loads the recipes of category and makes it the current selection.
// On failure the previous selection is kept.
func (b *Browser) Select(ctx context.Context, category string) ([]models.Recipe, error) {
	recipes, err := b.client.ByCategory(ctx, category)
	if err != nil {
		b.logger.Warn("failed to load recipes", "category", category, "error", err)
		return nil, err
	}

	b.mu.Lock()
	b.selected = category
	b.recipes = recipes
	b.mu.Unlock()

	b.logger.Debug("category selected", "category", category, "recipes", len(recipes))
	return recipes, nil
}

// Detail looks up the full recipe.
func (b *Browser) Detail(ctx context.Context, id string) (*models.RecipeDetail, error) {
	detail, err := b.client.Lookup(ctx, id)
	if err != nil {
		b.logger.Warn("failed to load recipe", "recipe", id, "error", err)
		return nil, err
	}
	return detail, nil
}

// Selected returns the current category and its recipes.
func (b *Browser) Selected() (string, []models.Recipe) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selected, append([]models.Recipe(nil), b.recipes...)
}

// Known returns the categories from the last successful load.
func (b *Browser) Known() []models.Category {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Category(nil), b.categories...)
}
