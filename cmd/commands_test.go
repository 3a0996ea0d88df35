package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/cook/internal/models"
	"github.com/desertthunder/cook/internal/shared"
	tu "github.com/desertthunder/cook/internal/testing"
	"github.com/golang-jwt/jwt/v4"
)

var teriyaki = models.Recipe{ID: "52772", Name: "Teriyaki Chicken Casserole", Thumbnail: "https://example.com/teriyaki.jpg"}

func TestAuthCommands(t *testing.T) {
	t.Run("login stores the token", func(t *testing.T) {
		backend := tu.NewBackend(t)
		backend.JSON(http.MethodPost, "/auth/login", http.StatusOK, map[string]any{"token": "t1"})
		runner, output := newTestRunner(t, backend)

		if err := run(t, runner, "auth", "login", "--email", "abc@gmail.com", "--password", "12345678"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		token, ok, err := runner.session.Get(context.Background())
		if err != nil || !ok || token != "t1" {
			t.Errorf("expected stored token t1, got %q (ok=%v, err=%v)", token, ok, err)
		}
		if !strings.Contains(output.String(), "✓ Logged in") {
			t.Errorf("expected success message, got %q", output.String())
		}
	})

	t.Run("login prints field errors without calling the API", func(t *testing.T) {
		backend := tu.NewBackend(t)
		runner, output := newTestRunner(t, backend)

		err := run(t, runner, "auth", "login", "--email", "not-an-email", "--password", "short")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		if len(backend.Requests()) != 0 {
			t.Errorf("expected no requests, got %d", len(backend.Requests()))
		}
		if !strings.Contains(output.String(), "✗ email: Invalid email address") {
			t.Errorf("expected email error, got %q", output.String())
		}
		if !strings.Contains(output.String(), "✗ password: Password must be at least 8 characters") {
			t.Errorf("expected password error, got %q", output.String())
		}
	})

	t.Run("login rejected prints the generic failure", func(t *testing.T) {
		backend := tu.NewBackend(t)
		backend.JSON(http.MethodPost, "/auth/login", http.StatusUnauthorized, map[string]string{"message": "bad credentials"})
		runner, output := newTestRunner(t, backend)

		err := run(t, runner, "auth", "login", "--email", "abc@gmail.com", "--password", "12345678")
		if !errors.Is(err, shared.ErrAuthFailed) {
			t.Fatalf("expected ErrAuthFailed, got %v", err)
		}
		if !strings.Contains(output.String(), "Authentication failed. Please check your credentials.") {
			t.Errorf("expected generic failure, got %q", output.String())
		}
		if _, ok, _ := runner.session.Get(context.Background()); ok {
			t.Error("expected no token to be stored")
		}
	})

	t.Run("register sends the combined name", func(t *testing.T) {
		backend := tu.NewBackend(t)
		backend.JSON(http.MethodPost, "/auth/register", http.StatusCreated, map[string]any{"token": "t2"})
		runner, output := newTestRunner(t, backend)

		err := run(t, runner, "auth", "register",
			"--first-name", "Ada", "--last-name", "Lovelace",
			"--email", "ada@example.com", "--phone", "+1 555-123-4567",
			"--password", "12345678", "--confirm-password", "12345678",
			"--city", "London", "--age", "36",
		)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var body map[string]any
		if err := json.Unmarshal(backend.Last(t).Body, &body); err != nil {
			t.Fatal(err)
		}
		if body["name"] != "Ada Lovelace" {
			t.Errorf("expected name 'Ada Lovelace', got %v", body["name"])
		}
		if body["city"] != "London" || body["age"] != float64(36) {
			t.Errorf("expected optional fields to be sent, got %v", body)
		}
		if !strings.Contains(output.String(), "✓ Account created") {
			t.Errorf("expected success message, got %q", output.String())
		}
	})

	t.Run("register with mismatched passwords", func(t *testing.T) {
		backend := tu.NewBackend(t)
		runner, output := newTestRunner(t, backend)

		err := run(t, runner, "auth", "register",
			"--first-name", "Ada", "--last-name", "Lovelace",
			"--email", "ada@example.com", "--phone", "5551234567",
			"--password", "12345678", "--confirm-password", "87654321",
		)
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		if !strings.Contains(output.String(), "✗ confirmPassword: Passwords don't match") {
			t.Errorf("expected mismatch error, got %q", output.String())
		}
		if len(backend.Requests()) != 0 {
			t.Error("expected no request")
		}
	})

	t.Run("logout clears the token", func(t *testing.T) {
		runner, output := newTestRunner(t, tu.NewBackend(t))
		if err := runner.init(context.Background()); err != nil {
			t.Fatal(err)
		}
		runner.session.Set(context.Background(), "t1")

		if err := run(t, runner, "auth", "logout"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, ok, _ := runner.session.Get(context.Background()); ok {
			t.Error("expected token to be cleared")
		}
		if !strings.Contains(output.String(), "✓ Logged out") {
			t.Errorf("expected logout message, got %q", output.String())
		}
	})

	t.Run("status", func(t *testing.T) {
		t.Run("not logged in", func(t *testing.T) {
			runner, output := newTestRunner(t, tu.NewBackend(t))

			if err := run(t, runner, "auth", "status"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), "Not logged in") {
				t.Errorf("expected not logged in, got %q", output.String())
			}
		})

		t.Run("describes a JWT", func(t *testing.T) {
			runner, output := newTestRunner(t, tu.NewBackend(t))
			if err := runner.init(context.Background()); err != nil {
				t.Fatal(err)
			}

			token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
				"sub":   "user-1",
				"email": "abc@gmail.com",
				"exp":   time.Now().Add(time.Hour).Unix(),
			}).SignedString([]byte("secret"))
			if err != nil {
				t.Fatal(err)
			}
			runner.session.Set(context.Background(), token)

			if err := run(t, runner, "auth", "status", "--json"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			var status authStatus
			if err := json.Unmarshal(output.Bytes(), &status); err != nil {
				t.Fatalf("expected JSON output, got %q", output.String())
			}
			if !status.Authenticated || !status.JWT || status.Email != "abc@gmail.com" || status.Subject != "user-1" {
				t.Errorf("unexpected status %+v", status)
			}
			if status.Expired {
				t.Error("expected token not to be expired")
			}
		})
	})
}

func TestRecipeCommands(t *testing.T) {
	t.Run("categories", func(t *testing.T) {
		backend := tu.NewBackend(t)
		backend.JSON(http.MethodGet, "/recipes/categories", http.StatusOK, map[string]any{
			"categories": []models.Category{{ID: "1", Name: "Beef"}, {ID: "2", Name: "Chicken"}},
		})
		runner, output := newTestRunner(t, backend)

		if err := run(t, runner, "recipes", "categories"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "1. Beef") || !strings.Contains(output.String(), "2. Chicken") {
			t.Errorf("expected numbered categories, got %q", output.String())
		}
	})

	t.Run("list marks favorites", func(t *testing.T) {
		backend := tu.NewBackend(t)
		backend.JSON(http.MethodGet, "/recipes/category/Chicken", http.StatusOK, []models.Recipe{teriyaki})
		runner, output := newTestRunner(t, backend)

		if err := run(t, runner, "recipes", "list", "--json", "Chicken"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var recipes []models.Recipe
		if err := json.Unmarshal(output.Bytes(), &recipes); err != nil {
			t.Fatalf("expected JSON output, got %q", output.String())
		}
		if len(recipes) != 1 || recipes[0] != teriyaki {
			t.Errorf("expected teriyaki, got %v", recipes)
		}
	})

	t.Run("list requires a category", func(t *testing.T) {
		runner, _ := newTestRunner(t, tu.NewBackend(t))

		if err := run(t, runner, "recipes", "list"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("show as markdown", func(t *testing.T) {
		backend := tu.NewBackend(t)
		backend.JSON(http.MethodGet, "/lookup.php", http.StatusOK, map[string]any{"meals": []map[string]any{{
			"idMeal":          "52772",
			"strMeal":         "Teriyaki Chicken Casserole",
			"strInstructions": "Preheat oven.",
			"strIngredient1":  "soy sauce",
			"strMeasure1":     "3/4 cup",
		}}})
		runner, output := newTestRunner(t, backend)

		if err := run(t, runner, "recipes", "show", "--format", "md", "52772"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "# Teriyaki Chicken Casserole") {
			t.Errorf("expected markdown title, got %q", output.String())
		}
		if !strings.Contains(output.String(), "3/4 cup soy sauce") {
			t.Errorf("expected ingredient line, got %q", output.String())
		}
	})

	t.Run("show rejects csv", func(t *testing.T) {
		runner, _ := newTestRunner(t, tu.NewBackend(t))

		if err := run(t, runner, "recipes", "show", "--format", "csv", "52772"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("open uses the first link", func(t *testing.T) {
		backend := tu.NewBackend(t)
		backend.JSON(http.MethodGet, "/lookup.php", http.StatusOK, map[string]any{"meals": []map[string]any{{
			"idMeal":     "52772",
			"strMeal":    "Teriyaki Chicken Casserole",
			"strYoutube": "https://www.youtube.com/watch?v=4aZr5hZXP_s",
		}}})
		runner, _ := newTestRunner(t, backend)

		var opened string
		runner.open = func(url string) error {
			opened = url
			return nil
		}

		if err := run(t, runner, "recipes", "open", "52772"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if opened != "https://www.youtube.com/watch?v=4aZr5hZXP_s" {
			t.Errorf("expected YouTube link to be opened, got %q", opened)
		}
	})
}

func TestFavoriteCommands(t *testing.T) {
	t.Run("add likes and mirrors the recipe", func(t *testing.T) {
		backend := tu.NewBackend(t)
		backend.JSON(http.MethodPost, "/recipes/like", http.StatusCreated, map[string]string{"message": "Recipe liked successfully"})
		runner, output := newTestRunner(t, backend)

		err := run(t, runner, "favorites", "add", "--name", teriyaki.Name, "--thumb", teriyaki.Thumbnail, teriyaki.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if backend.Count(http.MethodGet, "/lookup.php") != 0 {
			t.Error("expected no lookup when name and thumbnail are given")
		}
		if !strings.Contains(output.String(), "✓ Recipe added to favorites") {
			t.Errorf("expected liked notification, got %q", output.String())
		}

		saved, err := runner.mirror.Get(context.Background(), teriyaki.ID)
		if err != nil {
			t.Fatalf("expected mirrored recipe, got %v", err)
		}
		if *saved != teriyaki {
			t.Errorf("expected %v, got %v", teriyaki, *saved)
		}
	})

	t.Run("add looks up missing fields", func(t *testing.T) {
		backend := tu.NewBackend(t)
		backend.JSON(http.MethodGet, "/lookup.php", http.StatusOK, map[string]any{"meals": []map[string]any{{
			"idMeal": teriyaki.ID, "strMeal": teriyaki.Name, "strMealThumb": teriyaki.Thumbnail,
		}}})
		backend.JSON(http.MethodPost, "/recipes/like", http.StatusCreated, map[string]string{"message": "Recipe liked successfully"})
		runner, _ := newTestRunner(t, backend)

		if err := run(t, runner, "favorites", "add", teriyaki.ID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var body models.Recipe
		if err := json.Unmarshal(backend.Last(t).Body, &body); err != nil {
			t.Fatal(err)
		}
		if body != teriyaki {
			t.Errorf("expected like body %v, got %v", teriyaki, body)
		}
	})

	t.Run("add while logged out", func(t *testing.T) {
		backend := tu.NewBackend(t)
		backend.JSON(http.MethodPost, "/recipes/like", http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
		runner, output := newTestRunner(t, backend)

		err := run(t, runner, "favorites", "add", "--name", teriyaki.Name, "--thumb", teriyaki.Thumbnail, teriyaki.ID)
		if !errors.Is(err, shared.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
		if !strings.Contains(output.String(), "✗ Please log in") {
			t.Errorf("expected login notification, got %q", output.String())
		}
		if _, err := runner.mirror.Get(context.Background(), teriyaki.ID); !errors.Is(err, shared.ErrRecipeNotFound) {
			t.Errorf("expected nothing mirrored, got %v", err)
		}
	})

	t.Run("list replaces the local copy", func(t *testing.T) {
		backend := tu.NewBackend(t)
		backend.JSON(http.MethodGet, "/recipes/liked", http.StatusOK, map[string]any{"recipes": []models.Recipe{teriyaki}})
		runner, output := newTestRunner(t, backend)

		if err := run(t, runner, "favorites", "list"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), teriyaki.Name) {
			t.Errorf("expected favorite in output, got %q", output.String())
		}

		offline, err := runner.mirror.List(context.Background())
		if err != nil || len(offline) != 1 {
			t.Fatalf("expected one mirrored favorite, got %v (%v)", offline, err)
		}

		output.Reset()
		if err := run(t, runner, "favorites", "list", "--offline", "--json"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if backend.Count(http.MethodGet, "/recipes/liked") != 1 {
			t.Error("expected offline list not to call the API")
		}
		if !strings.Contains(output.String(), `"idMeal": "52772"`) {
			t.Errorf("expected offline JSON, got %q", output.String())
		}
	})

	t.Run("logout forgets the account's favorites", func(t *testing.T) {
		backend := tu.NewBackend(t)
		backend.JSON(http.MethodGet, "/recipes/liked", http.StatusOK, []models.Recipe{teriyaki})
		runner, output := newTestRunner(t, backend)

		if err := run(t, runner, "favorites", "list"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !runner.favorites.Contains(teriyaki.ID) {
			t.Fatal("expected favorite to be loaded")
		}

		if err := run(t, runner, "auth", "logout"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if runner.favorites.Contains(teriyaki.ID) {
			t.Error("expected in-memory favorites to be cleared")
		}
		if offline, _ := runner.mirror.List(context.Background()); len(offline) != 0 {
			t.Errorf("expected empty mirror, got %v", offline)
		}

		output.Reset()
		if err := run(t, runner, "favorites", "list", "--offline", "--json"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if strings.Contains(output.String(), teriyaki.ID) {
			t.Errorf("expected no offline favorites after logout, got %q", output.String())
		}
	})

	t.Run("remove", func(t *testing.T) {
		backend := tu.NewBackend(t)
		backend.JSON(http.MethodDelete, "/recipes/unlike/52772", http.StatusOK, map[string]string{"message": "removed"})
		runner, output := newTestRunner(t, backend)

		if err := run(t, runner, "favorites", "remove", "52772"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "✓ Recipe removed from favorites") {
			t.Errorf("expected removal notification, got %q", output.String())
		}
	})

	t.Run("export csv", func(t *testing.T) {
		backend := tu.NewBackend(t)
		backend.JSON(http.MethodGet, "/recipes/liked", http.StatusOK, []models.Recipe{teriyaki})
		runner, output := newTestRunner(t, backend)
		path := filepath.Join(t.TempDir(), "likes.csv")

		if err := run(t, runner, "favorites", "export", "--output", path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		tu.AssertFileExists(t, path)
		content := tu.MustReadFile(t, path)
		if !strings.HasPrefix(content, "ID,Name,Thumbnail\n") {
			t.Errorf("expected CSV header, got %q", content)
		}
		if !strings.Contains(content, "52772,Teriyaki Chicken Casserole") {
			t.Errorf("expected recipe row, got %q", content)
		}
		if !strings.Contains(output.String(), "✓ Exported 1 favorites") {
			t.Errorf("expected export message, got %q", output.String())
		}
	})

	t.Run("cookbook writes a card per favorite", func(t *testing.T) {
		backend := tu.NewBackend(t)
		backend.JSON(http.MethodGet, "/recipes/liked", http.StatusOK, []models.Recipe{teriyaki})
		backend.JSON(http.MethodGet, "/lookup.php", http.StatusOK, map[string]any{"meals": []map[string]any{{
			"idMeal": teriyaki.ID, "strMeal": teriyaki.Name, "strInstructions": "Preheat oven.",
		}}})
		runner, output := newTestRunner(t, backend)
		dir := filepath.Join(t.TempDir(), "book")

		if err := run(t, runner, "favorites", "cookbook", "--output-dir", dir, "--rate", "100"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		tu.AssertFileExists(t, filepath.Join(dir, "52772-teriyaki-chicken-casserole.md"))
		tu.AssertFileExists(t, filepath.Join(dir, "manifest.json"))
		if !strings.Contains(output.String(), "✓ Wrote 1 of 1 recipe cards") {
			t.Errorf("expected summary, got %q", output.String())
		}
	})

	t.Run("export rejects json", func(t *testing.T) {
		runner, _ := newTestRunner(t, tu.NewBackend(t))

		if err := run(t, runner, "favorites", "export", "--format", "json"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}

func TestSetup(t *testing.T) {
	t.Run("creates config and database", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("COOK_DB_PATH", filepath.Join(".", "setup.db"))

		runner, output := newTestRunner(t, tu.NewBackend(t))
		if err := run(t, runner, "setup", "--config", "cook.toml"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		tu.AssertFileExists(t, "cook.toml")
		tu.AssertFileExists(t, "setup.db")
		if !strings.Contains(output.String(), "✓ Setup complete") {
			t.Errorf("expected setup message, got %q", output.String())
		}
	})

	t.Run("keeps an existing config", func(t *testing.T) {
		t.Chdir(t.TempDir())
		existing := "[api]\nbase_url = \"http://example.test/api\"\n\n[database]\npath = \"./existing.db\"\n"
		if err := os.WriteFile("cook.toml", []byte(existing), 0644); err != nil {
			t.Fatal(err)
		}

		runner, output := newTestRunner(t, tu.NewBackend(t))
		if err := run(t, runner, "setup", "--config", "cook.toml"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if got := tu.MustReadFile(t, "cook.toml"); got != existing {
			t.Errorf("expected config to be left alone, got %q", got)
		}
		if !strings.Contains(output.String(), "API: http://example.test/api") {
			t.Errorf("expected configured API, got %q", output.String())
		}
	})
}
