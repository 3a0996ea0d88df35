package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/desertthunder/cook/internal/shared"
)

const beefDetail = `{
	"idMeal": "52874",
	"strMeal": "Beef and Mustard Pie",
	"strMealThumb": "https://www.themealdb.com/images/media/meals/sytuqu1511553755.jpg",
	"strInstructions": "Preheat the oven.",
	"strCategory": "Beef",
	"strArea": "British",
	"strTags": "Meat, Pie",
	"strYoutube": "https://www.youtube.com/watch?v=nMyBC9staMU",
	"strSource": null,
	"strIngredient1": "Beef",
	"strMeasure1": "1kg",
	"strIngredient2": "Plain Flour",
	"strMeasure2": "2 tbs",
	"strIngredient3": "",
	"strMeasure3": " ",
	"strIngredient4": "Salt",
	"strMeasure4": null,
	"strIngredient20": null
}`

func TestRecipeDetail(t *testing.T) {
	t.Run("UnmarshalJSON", func(t *testing.T) {
		var d RecipeDetail
		if err := json.Unmarshal([]byte(beefDetail), &d); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if d.ID != "52874" || d.Name != "Beef and Mustard Pie" {
			t.Errorf("unexpected summary fields: %+v", d.Recipe)
		}
		if d.Source != "" {
			t.Errorf("expected null source to be empty, got %q", d.Source)
		}
		if len(d.Tags) != 2 || d.Tags[0] != "Meat" || d.Tags[1] != "Pie" {
			t.Errorf("unexpected tags %v", d.Tags)
		}

		if !d.Ingredients[0].Present() || d.Ingredients[0].String() != "1kg Beef" {
			t.Errorf("unexpected first slot %+v", d.Ingredients[0])
		}
		if d.Ingredients[2].Present() {
			t.Error("expected empty ingredient slot to be absent")
		}
		if d.Ingredients[19].Present() {
			t.Error("expected null ingredient slot to be absent")
		}
	})

	t.Run("IngredientList Skips Absent Slots", func(t *testing.T) {
		var d RecipeDetail
		if err := json.Unmarshal([]byte(beefDetail), &d); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		list := d.IngredientList()
		want := []string{"1kg Beef", "2 tbs Plain Flour", "Salt"}
		if len(list) != len(want) {
			t.Fatalf("expected %d ingredients, got %d: %v", len(want), len(list), list)
		}
		for i, slot := range list {
			if slot.String() != want[i] {
				t.Errorf("slot %d: expected %q, got %q", i, want[i], slot.String())
			}
		}
	})

	t.Run("Links", func(t *testing.T) {
		d := RecipeDetail{Recipe: Recipe{Thumbnail: "https://img"}, YouTube: "https://yt"}
		links := d.Links()
		if len(links) != 2 || links[0] != "https://yt" || links[1] != "https://img" {
			t.Errorf("unexpected links %v", links)
		}
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		var d RecipeDetail
		if err := json.Unmarshal([]byte(`[1,2]`), &d); err == nil {
			t.Error("expected error for non-object detail")
		}
	})
}

func TestRecipeValidate(t *testing.T) {
	tc := []struct {
		name    string
		recipe  Recipe
		wantErr string
	}{
		{name: "valid", recipe: Recipe{ID: "1", Name: "Soup"}},
		{name: "valid without thumbnail", recipe: Recipe{ID: "1", Name: "Soup", Thumbnail: ""}},
		{name: "missing id", recipe: Recipe{Name: "Soup"}, wantErr: "recipe id is required"},
		{name: "blank id", recipe: Recipe{ID: "\t", Name: "Soup"}, wantErr: "recipe id is required"},
		{name: "missing name", recipe: Recipe{ID: "1"}, wantErr: "recipe name is required"},
		{name: "blank name", recipe: Recipe{ID: "1", Name: "  "}, wantErr: "recipe name is required"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.recipe.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Fatalf("Validate() error = %v, want ErrInvalidInput", err)
			}
			if want := shared.ErrInvalidInput.Error() + ": " + tt.wantErr; err.Error() != want {
				t.Errorf("Validate() error = %q, want %q", err, want)
			}
		})
	}
}
