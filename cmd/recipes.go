package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/cook/internal/formatter"
	"github.com/desertthunder/cook/internal/shared"
	"github.com/urfave/cli/v3"
)

// RecipeCategories lists the recipe categories.
func (r *Runner) RecipeCategories(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(ctx); err != nil {
		return err
	}

	categories, err := r.browser.Categories(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch categories: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(categories, true)
	}

	if len(categories) == 0 {
		return r.writePlain("No categories found\n")
	}

	r.writePlainHeader("Categories")
	for i, c := range categories {
		r.writePlain("%d. %s\n", i+1, c.Name)
	}
	return nil
}

// RecipeList lists the recipes in a category.
func (r *Runner) RecipeList(ctx context.Context, cmd *cli.Command) error {
	category := cmd.StringArg("category")
	if category == "" {
		return fmt.Errorf("%w: category", shared.ErrMissingArgument)
	}

	if err := r.init(ctx); err != nil {
		return err
	}

	recipes, err := r.browser.Select(ctx, category)
	if err != nil {
		return fmt.Errorf("failed to fetch recipes: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(recipes, true)
	}

	if len(recipes) == 0 {
		return r.writePlain("No recipes found in %s\n", category)
	}

	r.writePlainHeader(category)
	for _, recipe := range recipes {
		marker := " "
		if r.favorites.Contains(recipe.ID) {
			marker = "♥"
		}
		r.writePlain("%s %-8s %s\n", marker, recipe.ID, recipe.Name)
	}
	return r.writePlainln("%d recipes", len(recipes))
}

// RecipeShow prints the detail of a recipe.
func (r *Runner) RecipeShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: recipe id", shared.ErrMissingArgument)
	}

	format, err := formatter.ParseFormat(cmd.String("format"), formatter.FormatText, formatter.FormatMarkdown, formatter.FormatJSON)
	if err != nil {
		return err
	}

	if err := r.init(ctx); err != nil {
		return err
	}

	detail, err := r.browser.Detail(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch recipe: %w", err)
	}

	var out []byte
	switch format {
	case formatter.FormatMarkdown:
		out = formatter.RecipeToMarkdown(detail)
	case formatter.FormatJSON:
		if out, err = formatter.RecipeToJSON(detail); err != nil {
			return err
		}
		out = append(out, '\n')
	default:
		out = formatter.RecipeToText(detail)
	}

	_, err = r.output.Write(out)
	return err
}

// RecipeOpen opens the first link attached to a recipe.
func (r *Runner) RecipeOpen(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: recipe id", shared.ErrMissingArgument)
	}

	if err := r.init(ctx); err != nil {
		return err
	}

	detail, err := r.browser.Detail(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch recipe: %w", err)
	}

	links := detail.Links()
	if len(links) == 0 {
		return r.writePlain("No links for %s\n", detail.Name)
	}

	r.logger.Info("opening recipe", "id", id, "url", links[0])
	if err := r.open(links[0]); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return r.writePlain("✓ Opened %s\n", links[0])
}
