package favorites

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/cook/internal/models"
	"github.com/desertthunder/cook/internal/services"
	"github.com/desertthunder/cook/internal/shared"
)

// Outcome classifies a successful like.
type Outcome int

const (
	OutcomeLiked Outcome = iota
	OutcomeAlreadyLiked
	OutcomeGeneric
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLiked:
		return "liked"
	case OutcomeAlreadyLiked:
		return "already_liked"
	default:
		return "generic"
	}
}

// Result is the classified response to a like.
type Result struct {
	Outcome Outcome
	Message string // server message, may be empty
}

// Notification returns the message shown for r.
func (r Result) Notification() Notification {
	switch r.Outcome {
	case OutcomeLiked:
		return Notification{Kind: KindSuccess, Message: MessageLiked}
	case OutcomeAlreadyLiked:
		return Notification{Kind: KindInfo, Message: MessageAlreadyLiked}
	}
	if r.Message != "" {
		return Notification{Kind: KindSuccess, Message: r.Message}
	}
	return Notification{Kind: KindSuccess, Message: MessageUpdated}
}

// Classify maps a like response to its [Result].
func Classify(status int, message string) Result {
	lower := strings.ToLower(message)
	switch {
	case status == http.StatusCreated || strings.Contains(lower, "liked successfully"):
		return Result{Outcome: OutcomeLiked, Message: message}
	case status == http.StatusConflict || strings.Contains(lower, "already"):
		return Result{Outcome: OutcomeAlreadyLiked, Message: message}
	default:
		return Result{Outcome: OutcomeGeneric, Message: message}
	}
}

// Status is the local state of one recipe.
type Status int

const (
	StatusNone Status = iota
	StatusPending
	StatusConfirmed
)

// Client is the backend side of favorites.
type Client interface {
	Like(ctx context.Context, recipe models.Recipe) (*services.LikeResponse, error)
	Liked(ctx context.Context) ([]models.Recipe, error)
	Unlike(ctx context.Context, id string) error
}

// Mirror receives confirmed changes. Mirror failures are logged and never fail the operation.
type Mirror interface {
	Save(ctx context.Context, recipe models.Recipe) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, recipes []models.Recipe) error
}

type entry struct {
	recipe models.Recipe
	status Status
	order  int
}

// Flow is the favorites set. It is safe for concurrent use; for concurrent calls on the same
// recipe the last response to arrive wins.
type Flow struct {
	client Client
	mirror Mirror
	logger *log.Logger

	mu      sync.Mutex
	entries map[string]entry
	next    int
}

// NewFlow creates an empty [Flow]. mirror may be nil.
func NewFlow(client Client, mirror Mirror, logger *log.Logger) *Flow {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Flow{
		client:  client,
		mirror:  mirror,
		logger:  shared.WithLogger(logger, "component", "favorites"),
		entries: map[string]entry{},
	}
}

// Toggle likes recipe. The recipe shows as pending until the backend answers. When the backend
// reports it as already liked, or the call fails, the set is restored to its prior state; failures
// are returned for [NotificationFor].
func (f *Flow) Toggle(ctx context.Context, recipe models.Recipe) (Result, error) {
	f.mu.Lock()
	prev, existed := f.entries[recipe.ID]
	pending := prev
	if !existed {
		pending = entry{recipe: recipe, order: f.next}
		f.next++
	}
	pending.status = StatusPending
	f.entries[recipe.ID] = pending
	f.mu.Unlock()

	var result Result
	resp, err := f.client.Like(ctx, recipe)
	switch {
	case err == nil:
		result = Classify(resp.StatusCode, resp.Message)
	case isConflict(err):
		msg, _ := shared.ServerMessage(err)
		result = Result{Outcome: OutcomeAlreadyLiked, Message: msg}
	default:
		f.mu.Lock()
		if existed {
			f.entries[recipe.ID] = prev
		} else {
			delete(f.entries, recipe.ID)
		}
		f.mu.Unlock()

		f.logger.Warn("like failed", "recipe", recipe.ID, "error", err)
		return Result{}, err
	}

	if result.Outcome == OutcomeAlreadyLiked {
		f.mu.Lock()
		if existed {
			f.entries[recipe.ID] = prev
		} else {
			delete(f.entries, recipe.ID)
		}
		f.mu.Unlock()

		f.logger.Debug("like already recorded", "recipe", recipe.ID)
		return result, nil
	}

	f.mu.Lock()
	confirmed, ok := f.entries[recipe.ID]
	if !ok {
		confirmed = entry{recipe: recipe, order: f.next}
		f.next++
	}
	confirmed.status = StatusConfirmed
	f.entries[recipe.ID] = confirmed
	f.mu.Unlock()

	f.logger.Debug("like confirmed", "recipe", recipe.ID, "outcome", result.Outcome)
	if f.mirror != nil {
		if err := f.mirror.Save(ctx, confirmed.recipe); err != nil {
			f.logger.Warn("failed to mirror favorite", "recipe", recipe.ID, "error", err)
		}
	}
	return result, nil
}

// Unlike removes id on the backend, then locally whether or not it was present.
func (f *Flow) Unlike(ctx context.Context, id string) error {
	if err := f.client.Unlike(ctx, id); err != nil {
		f.logger.Warn("unlike failed", "recipe", id, "error", err)
		return err
	}

	f.mu.Lock()
	delete(f.entries, id)
	f.mu.Unlock()

	if f.mirror != nil {
		if err := f.mirror.Delete(ctx, id); err != nil {
			f.logger.Warn("failed to remove mirrored favorite", "recipe", id, "error", err)
		}
	}
	return nil
}

// List fetches the liked recipes and replaces the local set with them.
func (f *Flow) List(ctx context.Context) ([]models.Recipe, error) {
	recipes, err := f.client.Liked(ctx)
	if err != nil {
		f.logger.Warn("failed to list favorites", "error", err)
		return nil, err
	}

	entries := make(map[string]entry, len(recipes))
	unique := make([]models.Recipe, 0, len(recipes))
	for i, r := range recipes {
		if _, dup := entries[r.ID]; dup {
			continue
		}
		entries[r.ID] = entry{recipe: r, status: StatusConfirmed, order: i}
		unique = append(unique, r)
	}

	f.mu.Lock()
	f.entries = entries
	f.next = len(recipes)
	f.mu.Unlock()

	if f.mirror != nil {
		if err := f.mirror.ReplaceAll(ctx, unique); err != nil {
			f.logger.Warn("failed to mirror favorites", "error", err)
		}
	}
	return unique, nil
}

// Reset empties the set and the mirror. Called on logout since favorites belong to one account.
func (f *Flow) Reset(ctx context.Context) error {
	f.mu.Lock()
	f.entries = map[string]entry{}
	f.next = 0
	f.mu.Unlock()

	if f.mirror != nil {
		if err := f.mirror.ReplaceAll(ctx, nil); err != nil {
			return fmt.Errorf("failed to clear mirrored favorites: %w", err)
		}
	}
	return nil
}

// Contains reports whether id is in the set, pending or confirmed.
func (f *Flow) Contains(id string) bool {
	return f.Status(id) != StatusNone
}

func (f *Flow) Status(id string) Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries[id].status
}

// Recipes returns a snapshot of the set in the order recipes were added.
func (f *Flow) Recipes() []models.Recipe {
	f.mu.Lock()
	entries := make([]entry, 0, len(f.entries))
	for _, e := range f.entries {
		entries = append(entries, e)
	}
	f.mu.Unlock()

	slices.SortFunc(entries, func(a, b entry) int { return a.order - b.order })

	recipes := make([]models.Recipe, len(entries))
	for i, e := range entries {
		recipes[i] = e.recipe
	}
	return recipes
}

func isConflict(err error) bool {
	var apiErr *shared.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict
}
