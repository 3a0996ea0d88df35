package tasks

import (
	"fmt"

	"github.com/desertthunder/cook/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchDetails Phase = iota
	WriteCards
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case FetchDetails:
		return "fetch_details"
	case WriteCards:
		return "write_cards"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

// sendProgress sends update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func fetchingDetailsUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchDetails,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Fetching details for %d recipes...", total),
	}
}

func cardWrittenUpdate(step, total int, recipe models.Recipe, file string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteCards,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, recipe.Name),
		Data:    file,
	}
}

func cardFailedUpdate(step, total int, recipe models.Recipe, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteCards,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, recipe.Name, err),
	}
}

func manifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing manifest %s...", path),
	}
}
