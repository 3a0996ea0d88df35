// package formatter renders recipes and favorites as plain text, Markdown, JSON and CSV
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/cook/internal/models"
	"github.com/desertthunder/cook/internal/shared"
)

// Format names an output format.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
)

// ParseFormat accepts a format name and its common aliases, returning ErrInvalidFlag otherwise.
func ParseFormat(s string, allowed ...Format) (Format, error) {
	var f Format
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt", "plain":
		f = FormatText
	case "markdown", "md":
		f = FormatMarkdown
	case "json":
		f = FormatJSON
	case "csv":
		f = FormatCSV
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, s)
	}

	if len(allowed) == 0 {
		return f, nil
	}
	for _, a := range allowed {
		if a == f {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: format %q is not supported here", shared.ErrInvalidFlag, s)
}

// Extension returns the file extension used for f.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatJSON:
		return ".json"
	case FormatCSV:
		return ".csv"
	default:
		return ".txt"
	}
}

// RecipeToText renders a recipe detail for the terminal.
func RecipeToText(detail *models.RecipeDetail) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s\n", detail.Name))
	buf.WriteString(fmt.Sprintf("%s\n", strings.Repeat("=", len([]rune(detail.Name)))))
	if meta := metaLine(detail); meta != "" {
		buf.WriteString(meta + "\n")
	}
	if len(detail.Tags) > 0 {
		buf.WriteString(fmt.Sprintf("Tags: %s\n", strings.Join(detail.Tags, ", ")))
	}

	buf.WriteString("\nIngredients:\n")
	for _, slot := range detail.IngredientList() {
		buf.WriteString(fmt.Sprintf("  - %s\n", slot))
	}

	if detail.Instructions != "" {
		buf.WriteString("\nInstructions:\n")
		buf.WriteString(strings.TrimSpace(normalizeNewlines(detail.Instructions)) + "\n")
	}

	if links := detail.Links(); len(links) > 0 {
		buf.WriteString("\nLinks:\n")
		for _, l := range links {
			buf.WriteString(fmt.Sprintf("  %s\n", l))
		}
	}

	return buf.Bytes()
}

// RecipeToMarkdown renders a recipe detail as a Markdown document.
func RecipeToMarkdown(detail *models.RecipeDetail) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", detail.Name))

	if detail.Thumbnail != "" {
		buf.WriteString(fmt.Sprintf("![%s](%s)\n\n", detail.Name, detail.Thumbnail))
	}

	if detail.Category != "" {
		buf.WriteString(fmt.Sprintf("**Category**: %s\n", detail.Category))
	}
	if detail.Area != "" {
		buf.WriteString(fmt.Sprintf("**Area**: %s\n", detail.Area))
	}
	if len(detail.Tags) > 0 {
		buf.WriteString(fmt.Sprintf("**Tags**: %s\n", strings.Join(detail.Tags, ", ")))
	}

	buf.WriteString("\n## Ingredients\n\n")
	for _, slot := range detail.IngredientList() {
		buf.WriteString(fmt.Sprintf("- %s\n", slot))
	}

	if detail.Instructions != "" {
		buf.WriteString("\n## Instructions\n\n")
		buf.WriteString(strings.TrimSpace(normalizeNewlines(detail.Instructions)) + "\n")
	}

	if detail.Source != "" || detail.YouTube != "" {
		buf.WriteString("\n## Links\n\n")
		if detail.Source != "" {
			buf.WriteString(fmt.Sprintf("- [Source](%s)\n", detail.Source))
		}
		if detail.YouTube != "" {
			buf.WriteString(fmt.Sprintf("- [Video](%s)\n", detail.YouTube))
		}
	}

	return buf.Bytes()
}

type ingredientJSON struct {
	Ingredient string `json:"ingredient"`
	Measure    string `json:"measure,omitempty"`
}

type recipeJSON struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Thumbnail    string           `json:"thumbnail,omitempty"`
	Category     string           `json:"category,omitempty"`
	Area         string           `json:"area,omitempty"`
	Tags         []string         `json:"tags,omitempty"`
	Ingredients  []ingredientJSON `json:"ingredients"`
	Instructions string           `json:"instructions,omitempty"`
	YouTube      string           `json:"youtube,omitempty"`
	Source       string           `json:"source,omitempty"`
}

// RecipeToJSON renders a recipe detail as indented JSON with the ingredient slots folded into a list.
func RecipeToJSON(detail *models.RecipeDetail) ([]byte, error) {
	out := recipeJSON{
		ID:           detail.ID,
		Name:         detail.Name,
		Thumbnail:    detail.Thumbnail,
		Category:     detail.Category,
		Area:         detail.Area,
		Tags:         detail.Tags,
		Ingredients:  []ingredientJSON{},
		Instructions: detail.Instructions,
		YouTube:      detail.YouTube,
		Source:       detail.Source,
	}
	for _, slot := range detail.IngredientList() {
		out.Ingredients = append(out.Ingredients, ingredientJSON{Ingredient: slot.Ingredient, Measure: slot.Measure})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal recipe: %w", err)
	}
	return append(data, '\n'), nil
}

// FavoritesToCSV converts favorites to CSV with columns: ID, Name, Thumbnail
func FavoritesToCSV(recipes []models.Recipe) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"ID", "Name", "Thumbnail"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, r := range recipes {
		if err := writer.Write([]string{r.ID, r.Name, r.Thumbnail}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// FavoritesToMarkdown converts favorites to a Markdown list with thumbnails.
func FavoritesToMarkdown(recipes []models.Recipe) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Favorites\n\n")
	buf.WriteString(fmt.Sprintf("**Recipes**: %d\n\n", len(recipes)))

	for i, r := range recipes {
		buf.WriteString(fmt.Sprintf("%d. %s (`%s`)\n", i+1, r.Name, r.ID))
		if r.Thumbnail != "" {
			buf.WriteString(fmt.Sprintf("   ![%s](%s)\n", r.Name, r.Thumbnail))
		}
	}

	return buf.Bytes()
}

// FavoritesToText converts favorites to one line per recipe.
func FavoritesToText(recipes []models.Recipe) []byte {
	var buf bytes.Buffer
	for i, r := range recipes {
		buf.WriteString(fmt.Sprintf("%d. %s [%s]\n", i+1, r.Name, r.ID))
	}
	return buf.Bytes()
}

// WriteFavoritesExport writes favorites in format to path.
//
// Defaults to favorites{ext} as the filename.
func WriteFavoritesExport(recipes []models.Recipe, format Format, path string) (string, error) {
	if path == "" {
		path = "favorites" + format.Extension()
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatCSV:
		data, err = FavoritesToCSV(recipes)
	case FormatMarkdown:
		data = FavoritesToMarkdown(recipes)
	case FormatText:
		data = FavoritesToText(recipes)
	default:
		return "", fmt.Errorf("%w: cannot export favorites as %s", shared.ErrInvalidFlag, format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

func metaLine(detail *models.RecipeDetail) string {
	var parts []string
	if detail.Category != "" {
		parts = append(parts, "Category: "+detail.Category)
	}
	if detail.Area != "" {
		parts = append(parts, "Area: "+detail.Area)
	}
	return strings.Join(parts, " | ")
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
