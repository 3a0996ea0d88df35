// Package auth drives the login and registration forms.
//
// Forms are validated locally before any request is made. A [*ValidationError] carries per-field
// messages; a rejected or failed exchange wraps [shared.ErrAuthFailed] and leaves a generic
// message on the form's last password field. In both cases the user stays on the form.
//
// On success the token is written to the injected [session.Store] and the flow's
// OnAuthenticated callback fires, which is where the caller switches views.
package auth
