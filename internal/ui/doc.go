// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for finding and saving recipes:
//  1. [AuthView] : Log in or register (ctrl+r switches forms)
//  2. [CategoryView] : Browse the recipe categories
//  3. [RecipeListView] : Recipes in the selected category
//  4. [DetailView] : Ingredients, instructions and links for one recipe
//  5. [FavoritesView] : The signed-in user's liked recipes
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Every network call runs as a [tea.Cmd]; favorites show a pending marker until the backend answers and
// outcomes appear in a status line at the bottom of the screen.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, f, d, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
