package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/cook/internal/models"
	"github.com/desertthunder/cook/internal/shared"
)

const favoritesTable = "favorites"

// FavoriteRepository stores the local mirror of the favorites set, one row per recipe id.
type FavoriteRepository struct {
	db *sql.DB
}

// NewFavoriteRepository creates a new FavoriteRepository with the given database connection
func NewFavoriteRepository(db *sql.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Save inserts recipe, or refreshes its name and thumbnail when already present.
// Existing rows keep their original position.
func (r *FavoriteRepository) Save(ctx context.Context, recipe models.Recipe) error {
	if err := recipe.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(ctx, r.db, favoritesTable)
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	if err := upsert(ctx, r.db, recipe, sequence, time.Now()); err != nil {
		return fmt.Errorf("failed to save favorite %s: %w", recipe.ID, err)
	}
	return nil
}

// Get retrieves a single favorite by recipe id.
func (r *FavoriteRepository) Get(ctx context.Context, id string) (*models.Recipe, error) {
	query := `SELECT recipe_id, name, thumbnail FROM favorites WHERE recipe_id = ?`

	var recipe models.Recipe
	err := r.db.QueryRowContext(ctx, query, id).Scan(&recipe.ID, &recipe.Name, &recipe.Thumbnail)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrRecipeNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get favorite: %w", err)
	}
	return &recipe, nil
}

// Delete removes a favorite. Deleting an absent id is not an error.
func (r *FavoriteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM favorites WHERE recipe_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	return nil
}

// ReplaceAll replaces the whole mirror with recipes, keeping their order.
// Recipes failing validation are skipped and the rest are still stored; the returned error then
// wraps [shared.ErrInvalidInput] and names the skipped ids.
func (r *FavoriteRepository) ReplaceAll(ctx context.Context, recipes []models.Recipe) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM favorites"); err != nil {
		return fmt.Errorf("failed to clear favorites: %w", err)
	}

	now := time.Now()
	var skipped []error
	for _, recipe := range recipes {
		if err := recipe.Validate(); err != nil {
			skipped = append(skipped, fmt.Errorf("favorite %q: %w", recipe.ID, err))
			continue
		}

		sequence, err := nextSequence(ctx, tx, favoritesTable)
		if err != nil {
			return err
		}

		if err := upsert(ctx, tx, recipe, sequence, now); err != nil {
			return fmt.Errorf("failed to save favorite %s: %w", recipe.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit favorites: %w", err)
	}
	if len(skipped) > 0 {
		return fmt.Errorf("skipped %d invalid favorites: %w", len(skipped), errors.Join(skipped...))
	}
	return nil
}

// List returns every favorite in insertion order.
func (r *FavoriteRepository) List(ctx context.Context) ([]models.Recipe, error) {
	query := `SELECT recipe_id, name, thumbnail FROM favorites ORDER BY sequence ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	recipes := []models.Recipe{}
	for rows.Next() {
		var recipe models.Recipe
		if err := rows.Scan(&recipe.ID, &recipe.Name, &recipe.Thumbnail); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		recipes = append(recipes, recipe)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favorites: %w", err)
	}

	return recipes, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsert(ctx context.Context, db execer, recipe models.Recipe, sequence int, now time.Time) error {
	query := `
		INSERT INTO favorites (recipe_id, sequence, name, thumbnail, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(recipe_id) DO UPDATE SET
			name = excluded.name,
			thumbnail = excluded.thumbnail,
			updated_at = excluded.updated_at
	`
	_, err := db.ExecContext(ctx, query, recipe.ID, sequence, recipe.Name, recipe.Thumbnail, now, now)
	return err
}
