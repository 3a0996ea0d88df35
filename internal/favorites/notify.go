package favorites

import (
	"errors"

	"github.com/desertthunder/cook/internal/shared"
)

// Kind is the severity of a [Notification].
type Kind int

const (
	KindSuccess Kind = iota
	KindInfo
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindInfo:
		return "info"
	default:
		return "error"
	}
}

// Notification is a short user-facing message.
type Notification struct {
	Kind    Kind
	Message string
}

const (
	MessageLiked        = "Recipe added to favorites"
	MessageAlreadyLiked = "Recipe is already in your favorites"
	MessageUpdated      = "Favorites updated"
	MessageRemoved      = "Recipe removed from favorites"
	MessageLoginNeeded  = "Please log in to manage your favorites"
	MessageNotFound     = "Recipe not found"
	MessageRateLimited  = "Too many requests, please try again later"
	MessageFailed       = "Something went wrong, please try again"
)

// NotificationFor converts a failed favorites call into a notification.
func NotificationFor(err error) Notification {
	switch {
	case err == nil:
		return Notification{Kind: KindInfo, Message: MessageUpdated}
	case errors.Is(err, shared.ErrUnauthorized):
		return Notification{Kind: KindError, Message: MessageLoginNeeded}
	case errors.Is(err, shared.ErrNotFound), errors.Is(err, shared.ErrRecipeNotFound):
		return Notification{Kind: KindError, Message: MessageNotFound}
	case errors.Is(err, shared.ErrRateLimited):
		return Notification{Kind: KindError, Message: MessageRateLimited}
	}

	if msg, ok := shared.ServerMessage(err); ok {
		return Notification{Kind: KindError, Message: msg}
	}
	return Notification{Kind: KindError, Message: MessageFailed}
}
