package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/cook/internal/favorites"
	"github.com/desertthunder/cook/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgAuthenticated MsgKind = iota
	MsgLoggedOut
	MsgCategoriesFetched
	MsgRecipesFetched
	MsgDetailFetched
	MsgFavoriteToggled
	MsgFavoriteRemoved
	MsgFavoritesFetched
)

type categoriesPayload struct {
	categories []models.Category
	err        error
}

type recipesPayload struct {
	category string
	recipes  []models.Recipe
	err      error
}

type detailPayload struct {
	detail *models.RecipeDetail
	err    error
}

type togglePayload struct {
	recipe models.Recipe
	result favorites.Result
	err    error
}

type removePayload struct {
	id  string
	err error
}

// authenticatedMsg is the constructor for [MsgAuthenticated]
func authenticatedMsg(err error) Msg {
	return Msg{kind: MsgAuthenticated, data: err}
}

// loggedOutMsg is the constructor for [MsgLoggedOut]
func loggedOutMsg(err error) Msg {
	return Msg{kind: MsgLoggedOut, data: err}
}

// categoriesFetchedMsg is the constructor for [MsgCategoriesFetched]
func categoriesFetchedMsg(categories []models.Category, err error) Msg {
	return Msg{kind: MsgCategoriesFetched, data: categoriesPayload{categories, err}}
}

// recipesFetchedMsg is the constructor for [MsgRecipesFetched]
func recipesFetchedMsg(category string, recipes []models.Recipe, err error) Msg {
	return Msg{kind: MsgRecipesFetched, data: recipesPayload{category, recipes, err}}
}

// detailFetchedMsg is the constructor for [MsgDetailFetched]
func detailFetchedMsg(detail *models.RecipeDetail, err error) Msg {
	return Msg{kind: MsgDetailFetched, data: detailPayload{detail, err}}
}

// favoriteToggledMsg is the constructor for [MsgFavoriteToggled]
func favoriteToggledMsg(recipe models.Recipe, result favorites.Result, err error) Msg {
	return Msg{kind: MsgFavoriteToggled, data: togglePayload{recipe, result, err}}
}

// favoriteRemovedMsg is the constructor for [MsgFavoriteRemoved]
func favoriteRemovedMsg(id string, err error) Msg {
	return Msg{kind: MsgFavoriteRemoved, data: removePayload{id, err}}
}

// favoritesFetchedMsg is the constructor for [MsgFavoritesFetched]
func favoritesFetchedMsg(recipes []models.Recipe, err error) Msg {
	return Msg{kind: MsgFavoritesFetched, data: recipesPayload{recipes: recipes, err: err}}
}

func errOf(data any) error {
	err, _ := data.(error)
	return err
}
