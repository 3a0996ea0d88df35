// Package favorites keeps the local view of the user's liked recipes in step with the backend.
//
// Liking is two-phase: the recipe is marked pending immediately, then confirmed or reverted
// once the backend answers. A failed call leaves the set exactly as it was before the call.
// Every outcome and failure maps to a user-facing [Notification].
package favorites
