package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/desertthunder/cook/internal/models"
	"github.com/desertthunder/cook/internal/session"
	"github.com/desertthunder/cook/internal/shared"
	tu "github.com/desertthunder/cook/internal/testing"
)

func TestAuthService(t *testing.T) {
	t.Run("Login", func(t *testing.T) {
		backend := tu.NewBackend(t)
		backend.JSON(http.MethodPost, "/auth/login", http.StatusOK, map[string]any{"token": "t1", "user": map[string]string{"email": "abc@gmail.com"}})

		svc := NewAuthService(newTestGateway(t, backend.URL, nil))
		resp, err := svc.Login(context.Background(), LoginRequest{Email: "abc@gmail.com", Password: "12345678"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if resp.Token != "t1" {
			t.Errorf("expected token t1, got %s", resp.Token)
		}

		var body LoginRequest
		if err := json.Unmarshal(backend.Last(t).Body, &body); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		if body.Email != "abc@gmail.com" || body.Password != "12345678" {
			t.Errorf("unexpected body %+v", body)
		}
	})

	t.Run("Login Without Token", func(t *testing.T) {
		backend := tu.NewBackend(t)
		backend.JSON(http.MethodPost, "/auth/login", http.StatusOK, map[string]any{"message": "ok"})

		svc := NewAuthService(newTestGateway(t, backend.URL, nil))
		_, err := svc.Login(context.Background(), LoginRequest{})
		if !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", err)
		}
	})

	t.Run("Login Rejected", func(t *testing.T) {
		backend := tu.NewBackend(t)
		backend.JSON(http.MethodPost, "/auth/login", http.StatusUnauthorized, map[string]any{"message": "bad credentials"})

		svc := NewAuthService(newTestGateway(t, backend.URL, nil))
		_, err := svc.Login(context.Background(), LoginRequest{})
		if !errors.Is(err, shared.ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("Register", func(t *testing.T) {
		backend := tu.NewBackend(t)
		backend.JSON(http.MethodPost, "/auth/register", http.StatusCreated, map[string]any{"token": "t2"})

		svc := NewAuthService(newTestGateway(t, backend.URL, nil))
		resp, err := svc.Register(context.Background(), RegisterRequest{Name: "Ada Lovelace", Email: "ada@example.com"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if resp.Token != "t2" {
			t.Errorf("expected token t2, got %s", resp.Token)
		}

		var body map[string]any
		json.Unmarshal(backend.Last(t).Body, &body)
		for _, key := range []string{"name", "email", "password", "phone", "address", "city", "state", "zip", "country", "age"} {
			if _, ok := body[key]; !ok {
				t.Errorf("expected register payload to include %q", key)
			}
		}
	})
}

func TestRecipeService(t *testing.T) {
	categories := []models.Category{}
	for _, name := range []string{"Beef", "Chicken", "Dessert", "Lamb", "Miscellaneous", "Pasta", "Pork"} {
		categories = append(categories, models.Category{ID: name, Name: name})
	}

	t.Run("Categories Keeps First Five", func(t *testing.T) {
		backend := tu.NewBackend(t)
		backend.JSON(http.MethodGet, "/recipes/categories", http.StatusOK, map[string]any{"categories": categories})

		svc := NewRecipeService(newTestGateway(t, backend.URL, nil), backend.URL, nil)
		got, err := svc.Categories(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != CategoryLimit {
			t.Fatalf("expected %d categories, got %d", CategoryLimit, len(got))
		}
		if got[0].Name != "Beef" || got[4].Name != "Miscellaneous" {
			t.Errorf("expected backend order to be kept, got %v", got)
		}
		if q := backend.Last(t).Query; q != "limit=5" {
			t.Errorf("expected limit=5 query, got %q", q)
		}
	})

	t.Run("ByCategory", func(t *testing.T) {
		backend := tu.NewBackend(t)
		backend.JSON(http.MethodGet, "/recipes/category/Side Dish", http.StatusOK, []models.Recipe{
			{ID: "1", Name: "Fries", Thumbnail: "https://img/1"},
		})

		svc := NewRecipeService(newTestGateway(t, backend.URL, nil), backend.URL, nil)
		got, err := svc.ByCategory(context.Background(), "Side Dish")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != 1 || got[0].Name != "Fries" {
			t.Errorf("unexpected recipes %v", got)
		}
	})

	t.Run("ByCategory Requires Name", func(t *testing.T) {
		svc := NewRecipeService(newTestGateway(t, "http://example.com", nil), "", nil)
		if _, err := svc.ByCategory(context.Background(), ""); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("Lookup", func(t *testing.T) {
		backend := tu.NewBackend(t)
		backend.Handle(http.MethodGet, "/lookup.php", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("i") != "52772" {
				tu.WriteJSON(w, http.StatusOK, map[string]any{"meals": nil})
				return
			}
			tu.WriteJSON(w, http.StatusOK, map[string]any{"meals": []map[string]any{{
				"idMeal":          "52772",
				"strMeal":         "Teriyaki Chicken Casserole",
				"strInstructions": "Preheat oven to 350.",
				"strIngredient1":  "soy sauce",
				"strMeasure1":     "3/4 cup",
			}}})
		})

		svc := NewRecipeService(newTestGateway(t, "http://unused.invalid", nil), backend.URL, nil)
		detail, err := svc.Lookup(context.Background(), "52772")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if detail.Name != "Teriyaki Chicken Casserole" {
			t.Errorf("unexpected detail %+v", detail.Recipe)
		}
		if list := detail.IngredientList(); len(list) != 1 || list[0].String() != "3/4 cup soy sauce" {
			t.Errorf("unexpected ingredients %v", list)
		}

		_, err = svc.Lookup(context.Background(), "0")
		if !errors.Is(err, shared.ErrRecipeNotFound) {
			t.Errorf("expected ErrRecipeNotFound, got %v", err)
		}
	})

	t.Run("Lookup Sends No Session Token", func(t *testing.T) {
		backend := tu.NewBackend(t)
		backend.JSON(http.MethodGet, "/lookup.php", http.StatusOK, map[string]any{"meals": []map[string]any{{"idMeal": "1"}}})

		svc := NewRecipeService(newTestGateway(t, "http://unused.invalid", session.NewMemoryStore("secret")), backend.URL, nil)
		if _, err := svc.Lookup(context.Background(), "1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := backend.Last(t).Header.Get("Authorization"); got != "" {
			t.Errorf("the meal database must not receive the backend token, got %q", got)
		}
	})
}

func TestFavoriteService(t *testing.T) {
	recipe := models.Recipe{ID: "52772", Name: "Teriyaki Chicken Casserole", Thumbnail: "https://img/52772.jpg"}

	t.Run("Like Sends Recipe Body", func(t *testing.T) {
		backend := tu.NewBackend(t)
		backend.JSON(http.MethodPost, "/recipes/like", http.StatusCreated, map[string]string{"message": "Recipe liked successfully"})

		svc := NewFavoriteService(newTestGateway(t, backend.URL, session.NewMemoryStore("t1")))
		resp, err := svc.Like(context.Background(), recipe)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if resp.StatusCode != http.StatusCreated || resp.Message != "Recipe liked successfully" {
			t.Errorf("unexpected response %+v", resp)
		}

		var body map[string]string
		json.Unmarshal(backend.Last(t).Body, &body)
		if body["idMeal"] != "52772" || body["strMeal"] != recipe.Name || body["strMealThumb"] != recipe.Thumbnail {
			t.Errorf("unexpected like body %v", body)
		}
	})

	t.Run("Like Rejects Incomplete Recipe Locally", func(t *testing.T) {
		backend := tu.NewBackend(t)
		svc := NewFavoriteService(newTestGateway(t, backend.URL, nil))

		if _, err := svc.Like(context.Background(), models.Recipe{ID: "1"}); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if len(backend.Requests()) != 0 {
			t.Error("expected no request for an invalid recipe")
		}
	})

	t.Run("Liked", func(t *testing.T) {
		backend := tu.NewBackend(t)
		backend.JSON(http.MethodGet, "/recipes/liked", http.StatusOK, map[string]any{"recipes": []models.Recipe{recipe}})

		svc := NewFavoriteService(newTestGateway(t, backend.URL, nil))
		got, err := svc.Liked(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != 1 || got[0] != recipe {
			t.Errorf("unexpected liked recipes %v", got)
		}
	})

	t.Run("Unlike", func(t *testing.T) {
		backend := tu.NewBackend(t)
		backend.JSON(http.MethodDelete, "/recipes/unlike/52772", http.StatusOK, map[string]string{"message": "removed"})

		svc := NewFavoriteService(newTestGateway(t, backend.URL, nil))
		if err := svc.Unlike(context.Background(), "52772"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if backend.Count(http.MethodDelete, "/recipes/unlike/52772") != 1 {
			t.Error("expected one DELETE to the unlike endpoint")
		}

		if err := svc.Unlike(context.Background(), ""); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}
