package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/cook/internal/favorites"
	"github.com/desertthunder/cook/internal/formatter"
	"github.com/desertthunder/cook/internal/models"
	"github.com/desertthunder/cook/internal/shared"
	"github.com/desertthunder/cook/internal/tasks"
	"github.com/urfave/cli/v3"
)

// favoriteList fetches the liked recipes, or reads the local copy when offline.
func (r *Runner) favoriteList(ctx context.Context, offline bool) ([]models.Recipe, error) {
	if offline {
		return r.mirror.List(ctx)
	}

	recipes, err := r.favorites.List(ctx)
	if err != nil {
		r.writeNotification(favorites.NotificationFor(err))
		return nil, err
	}
	return recipes, nil
}

// FavoritesList prints the liked recipes.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(ctx); err != nil {
		return err
	}

	recipes, err := r.favoriteList(ctx, cmd.Bool("offline"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(recipes, true)
	}

	if len(recipes) == 0 {
		return r.writePlain("No favorites yet\n")
	}

	r.writePlainHeader("Favorites")
	for _, recipe := range recipes {
		r.writePlain("♥ %-8s %s\n", recipe.ID, recipe.Name)
	}
	return r.writePlainln("%d favorites", len(recipes))
}

// FavoritesAdd likes a recipe. Name and thumbnail are looked up when not given.
func (r *Runner) FavoritesAdd(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: recipe id", shared.ErrMissingArgument)
	}

	if err := r.init(ctx); err != nil {
		return err
	}

	recipe := models.Recipe{ID: id, Name: cmd.String("name"), Thumbnail: cmd.String("thumb")}
	if recipe.Name == "" || recipe.Thumbnail == "" {
		detail, err := r.recipes.Lookup(ctx, id)
		if err != nil {
			r.writeNotification(favorites.NotificationFor(err))
			return err
		}
		if recipe.Name == "" {
			recipe.Name = detail.Name
		}
		if recipe.Thumbnail == "" {
			recipe.Thumbnail = detail.Thumbnail
		}
	}

	result, err := r.favorites.Toggle(ctx, recipe)
	if err != nil {
		r.writeNotification(favorites.NotificationFor(err))
		return err
	}

	r.logger.Info("favorite saved", "id", id, "outcome", result.Outcome)
	return r.writeNotification(result.Notification())
}

// FavoritesRemove unlikes a recipe.
func (r *Runner) FavoritesRemove(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: recipe id", shared.ErrMissingArgument)
	}

	if err := r.init(ctx); err != nil {
		return err
	}

	if err := r.favorites.Unlike(ctx, id); err != nil {
		r.writeNotification(favorites.NotificationFor(err))
		return err
	}

	return r.writeNotification(favorites.Notification{Kind: favorites.KindSuccess, Message: favorites.MessageRemoved})
}

// FavoritesExport writes the liked recipes to a file.
func (r *Runner) FavoritesExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"), formatter.FormatCSV, formatter.FormatMarkdown, formatter.FormatText)
	if err != nil {
		return err
	}

	if err := r.init(ctx); err != nil {
		return err
	}

	recipes, err := r.favoriteList(ctx, cmd.Bool("offline"))
	if err != nil {
		return err
	}

	path, err := formatter.WriteFavoritesExport(recipes, format, cmd.String("output"))
	if err != nil {
		return err
	}

	r.logger.Info("exported favorites", "path", path, "count", len(recipes))
	return r.writePlain("✓ Exported %d favorites to %s\n", len(recipes), path)
}

// FavoritesCookbook writes a recipe card for each favorite into a directory.
func (r *Runner) FavoritesCookbook(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"), formatter.FormatMarkdown, formatter.FormatText, formatter.FormatJSON)
	if err != nil {
		return err
	}

	if err := r.init(ctx); err != nil {
		return err
	}

	recipes, err := r.favoriteList(ctx, cmd.Bool("offline"))
	if err != nil {
		return err
	}
	if len(recipes) == 0 {
		return r.writePlain("No favorites to export\n")
	}

	progress := make(chan tasks.ProgressUpdate, len(recipes)+2)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := r.exporter.Export(ctx, progress, recipes, tasks.ExportOpts{
		Format:     format,
		OutputDir:  cmd.String("output-dir"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
	})
	close(progress)
	<-done

	if err != nil {
		return err
	}

	r.logger.Info("cookbook written", "dir", result.OutputDirectory, "succeeded", result.Succeeded, "failed", result.Failed)
	r.writePlainln("✓ Wrote %d of %d recipe cards to %s", result.Succeeded, result.Total, result.OutputDirectory)
	if result.Failed > 0 {
		return r.writePlain("✗ %d recipes could not be exported (see %s)\n", result.Failed, result.ManifestPath)
	}
	return nil
}
