package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/cook/internal/shared"
	validator "github.com/go-playground/validator/v10"
)

// MaxIngredients is the number of positional ingredient/measure pairs a recipe detail carries.
const MaxIngredients = 20

// Recipe is a recipe summary. Two recipes are the same recipe when their IDs match.
type Recipe struct {
	ID        string `json:"idMeal" validate:"required,notblank"`
	Name      string `json:"strMeal" validate:"required,notblank"`
	Thumbnail string `json:"strMealThumb"`
}

var validate = shared.NewValidator()

// Validate checks the fields required to send a recipe to the like endpoint.
// The returned error wraps [shared.ErrInvalidInput].
func (r Recipe) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fmt.Errorf("%w: recipe %s is required", shared.ErrInvalidInput, strings.ToLower(fieldErrs[0].Field()))
	}
	return err
}

// Category is a backend-defined recipe grouping.
type Category struct {
	ID          string `json:"idCategory"`
	Name        string `json:"strCategory"`
	Thumbnail   string `json:"strCategoryThumb"`
	Description string `json:"strCategoryDescription"`
}

// IngredientSlot is one positional (measure, ingredient) pair. An empty Ingredient means the slot is unused.
type IngredientSlot struct {
	Ingredient string
	Measure    string
}

// Present reports whether the slot names an ingredient.
func (s IngredientSlot) Present() bool {
	return s.Ingredient != ""
}

// String renders the slot as "measure ingredient", or just the ingredient when no measure is given.
func (s IngredientSlot) String() string {
	if s.Measure == "" {
		return s.Ingredient
	}
	return s.Measure + " " + s.Ingredient
}

// RecipeDetail is a [Recipe] with preparation details.
type RecipeDetail struct {
	Recipe
	Instructions string
	Category     string
	Area         string
	Tags         []string
	YouTube      string
	Source       string
	Ingredients  [MaxIngredients]IngredientSlot
}

// IngredientList returns the present slots in positional order.
func (d *RecipeDetail) IngredientList() []IngredientSlot {
	var out []IngredientSlot
	for _, slot := range d.Ingredients {
		if slot.Present() {
			out = append(out, slot)
		}
	}
	return out
}

// Links returns the external URLs attached to the recipe, most useful first.
func (d *RecipeDetail) Links() []string {
	var links []string
	for _, l := range []string{d.Source, d.YouTube, d.Thumbnail} {
		if l != "" {
			links = append(links, l)
		}
	}
	return links
}

// UnmarshalJSON decodes the flat meal-database shape, folding strIngredientN/strMeasureN into slots.
//
// Null, missing and whitespace-only values are treated as absent.
func (d *RecipeDetail) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	str := func(key string) string {
		switch v := raw[key].(type) {
		case string:
			return strings.TrimSpace(v)
		case float64:
			return fmt.Sprintf("%v", v)
		default:
			return ""
		}
	}

	*d = RecipeDetail{
		Recipe: Recipe{
			ID:        str("idMeal"),
			Name:      str("strMeal"),
			Thumbnail: str("strMealThumb"),
		},
		Instructions: str("strInstructions"),
		Category:     str("strCategory"),
		Area:         str("strArea"),
		YouTube:      str("strYoutube"),
		Source:       str("strSource"),
	}

	for _, tag := range strings.Split(str("strTags"), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			d.Tags = append(d.Tags, tag)
		}
	}

	for i := range d.Ingredients {
		d.Ingredients[i] = IngredientSlot{
			Ingredient: str(fmt.Sprintf("strIngredient%d", i+1)),
			Measure:    str(fmt.Sprintf("strMeasure%d", i+1)),
		}
	}

	return nil
}
