package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/cook/internal/favorites"
	"github.com/desertthunder/cook/internal/models"
)

var (
	_ list.Item = categoryItem{}
	_ list.Item = recipeItem{}
)

const descriptionWidth = 60

// categoryItem wraps [models.Category] to implement [list.Item].
type categoryItem struct {
	category models.Category
}

func (i categoryItem) FilterValue() string { return i.category.Name }
func (i categoryItem) Title() string       { return i.category.Name }
func (i categoryItem) Description() string {
	desc := strings.Join(strings.Fields(i.category.Description), " ")
	if r := []rune(desc); len(r) > descriptionWidth {
		desc = string(r[:descriptionWidth-1]) + "…"
	}
	return desc
}

// recipeItem wraps [models.Recipe] to implement [list.Item].
//
// The favorite marker is read from the flow at render time so pending likes show immediately.
type recipeItem struct {
	recipe    models.Recipe
	favorites *favorites.Flow
}

func (i recipeItem) FilterValue() string { return i.recipe.Name }
func (i recipeItem) Title() string       { return i.recipe.Name }
func (i recipeItem) Description() string {
	desc := fmt.Sprintf("#%s", i.recipe.ID)
	if i.favorites == nil {
		return desc
	}
	switch i.favorites.Status(i.recipe.ID) {
	case favorites.StatusPending:
		desc = fmt.Sprintf("%s • saving…", desc)
	case favorites.StatusConfirmed:
		desc = fmt.Sprintf("%s • ★ favorite", desc)
	}
	return desc
}

func categoryItems(categories []models.Category) []list.Item {
	items := make([]list.Item, len(categories))
	for i, c := range categories {
		items[i] = categoryItem{category: c}
	}
	return items
}

func recipeItems(recipes []models.Recipe, flow *favorites.Flow) []list.Item {
	items := make([]list.Item, len(recipes))
	for i, r := range recipes {
		items[i] = recipeItem{recipe: r, favorites: flow}
	}
	return items
}
