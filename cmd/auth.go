package main

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/desertthunder/cook/internal/auth"
	"github.com/desertthunder/cook/internal/session"
	"github.com/desertthunder/cook/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin validates the credentials and stores the returned session token.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(ctx); err != nil {
		return err
	}

	r.auth.OnAuthenticated(func() { r.writePlain("✓ Logged in\n") })

	r.logger.Info("logging in", "email", cmd.String("email"))
	err := r.auth.SubmitLogin(ctx, cmd.String("email"), cmd.String("password"))
	return r.authResult(err)
}

// AuthRegister creates an account and stores the returned session token.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(ctx); err != nil {
		return err
	}

	r.auth.OnAuthenticated(func() { r.writePlain("✓ Account created, logged in\n") })

	form := auth.RegisterForm{
		FirstName:       cmd.String("first-name"),
		LastName:        cmd.String("last-name"),
		Email:           cmd.String("email"),
		Phone:           cmd.String("phone"),
		Password:        cmd.String("password"),
		ConfirmPassword: cmd.String("confirm-password"),
		Address:         cmd.String("address"),
		City:            cmd.String("city"),
		State:           cmd.String("state"),
		Zip:             cmd.String("zip"),
		Country:         cmd.String("country"),
		Age:             int(cmd.Int("age")),
	}

	r.logger.Info("registering", "email", form.Email)
	err := r.auth.SubmitRegistration(ctx, form)
	return r.authResult(err)
}

// authResult prints the per-field messages left by a failed submission.
func (r *Runner) authResult(err error) error {
	if err == nil {
		return nil
	}

	var verr *auth.ValidationError
	if errors.As(err, &verr) {
		fields := make([]string, 0, len(verr.Fields))
		for field := range verr.Fields {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			r.writePlain("✗ %s: %s\n", field, verr.Fields[field])
		}
		return err
	}

	if errors.Is(err, shared.ErrAuthFailed) {
		r.writePlain("✗ %s\n", auth.GenericFailure)
	}
	return err
}

// AuthLogout forgets the stored session token and the favorites of that account.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(ctx); err != nil {
		return err
	}

	if err := r.auth.Logout(ctx); err != nil {
		return err
	}
	if err := r.favorites.Reset(ctx); err != nil {
		return err
	}

	r.logger.Info("session cleared")
	return r.writePlain("✓ Logged out\n")
}

type authStatus struct {
	Authenticated bool      `json:"authenticated"`
	JWT           bool      `json:"jwt"`
	Subject       string    `json:"subject,omitempty"`
	Email         string    `json:"email,omitempty"`
	ExpiresAt     time.Time `json:"expires_at,omitzero"`
	Expired       bool      `json:"expired"`
}

// AuthStatus reports whether a session token is stored and what it claims about itself.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(ctx); err != nil {
		return err
	}

	token, ok, err := r.session.Get(ctx)
	if err != nil {
		return err
	}

	status := authStatus{Authenticated: ok}
	if ok {
		info := session.Describe(token)
		status.JWT = info.JWT
		status.Subject = info.Subject
		status.Email = info.Email
		status.ExpiresAt = info.ExpiresAt
		status.Expired = info.Expired(time.Now())
	}

	if cmd.Bool("json") {
		return r.writeJSON(status, true)
	}

	if !status.Authenticated {
		return r.writePlain("✗ Not logged in\n")
	}

	r.writePlain("✓ Logged in\n")
	if status.Email != "" {
		r.writePlain("Email: %s\n", status.Email)
	}
	if status.Subject != "" {
		r.writePlain("Subject: %s\n", status.Subject)
	}
	if !status.ExpiresAt.IsZero() {
		if status.Expired {
			r.writePlain("Expired: %s\n", status.ExpiresAt.Format(time.RFC3339))
		} else {
			r.writePlain("Expires: %s\n", status.ExpiresAt.Format(time.RFC3339))
		}
	}
	return nil
}
