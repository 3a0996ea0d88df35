// Package models defines the recipe domain types shared by the API clients, the flows and the UI.
//
//   - [Recipe] : summary value (id, name, thumbnail) used in lists and the favorites set
//   - [Category] : backend-defined grouping used to filter the recipe list
//   - [RecipeDetail] : a recipe with instructions and [MaxIngredients] positional ingredient slots
//
// Wire names follow the meal database (idMeal, strMeal, strMealThumb, strIngredient1..20).
// The dynamically keyed ingredient fields are decoded into a fixed-size array of [IngredientSlot]
// so that "no such ingredient" is an explicit empty slot rather than a missing map key.
package models
