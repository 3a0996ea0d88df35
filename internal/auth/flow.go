package auth

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/cook/internal/services"
	"github.com/desertthunder/cook/internal/session"
	"github.com/desertthunder/cook/internal/shared"
)

// GenericFailure is shown when the backend rejects or cannot process a submission.
const GenericFailure = "Authentication failed. Please check your credentials."

// Mode selects which form is shown.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

func (m Mode) String() string {
	if m == ModeRegister {
		return "register"
	}
	return "login"
}

// Client exchanges credentials for a session token.
type Client interface {
	Login(ctx context.Context, req services.LoginRequest) (*services.AuthResponse, error)
	Register(ctx context.Context, req services.RegisterRequest) (*services.AuthResponse, error)
}

// Flow holds the state of the auth forms. It is safe for concurrent use.
type Flow struct {
	client  Client
	session session.Store
	logger  *log.Logger

	mu              sync.Mutex
	mode            Mode
	errors          map[string]string
	authenticated   bool
	onAuthenticated func()
}

// NewFlow creates a [Flow] in login mode.
func NewFlow(client Client, store session.Store, logger *log.Logger) *Flow {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Flow{
		client:  client,
		session: store,
		logger:  shared.WithLogger(logger, "component", "auth"),
		errors:  map[string]string{},
	}
}

// OnAuthenticated sets fn to run after a successful login or registration.
func (f *Flow) OnAuthenticated(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onAuthenticated = fn
}

func (f *Flow) Mode() Mode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

// SetMode switches between the login and register forms and clears field errors.
func (f *Flow) SetMode(m Mode) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mode = m
	f.errors = map[string]string{}
}

func (f *Flow) Authenticated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authenticated
}

// Errors returns a copy of the current field errors.
func (f *Flow) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.errors)
}

// ClearError drops the error for field, as happens when the user edits it.
func (f *Flow) ClearError(field string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.errors, field)
}

// SubmitLogin validates the login form and exchanges it for a token.
func (f *Flow) SubmitLogin(ctx context.Context, email, password string) error {
	form := LoginForm{Email: email, Password: password}
	if err := f.check(form); err != nil {
		return err
	}

	resp, err := f.client.Login(ctx, services.LoginRequest{Email: form.Email, Password: form.Password})
	return f.complete(ctx, FieldPassword, resp, err)
}

// SubmitRegistration validates the registration form and creates the account.
func (f *Flow) SubmitRegistration(ctx context.Context, form RegisterForm) error {
	if err := f.check(form); err != nil {
		return err
	}

	req := services.RegisterRequest{
		Name:     strings.TrimSpace(form.FirstName + " " + form.LastName),
		Email:    form.Email,
		Password: form.Password,
		Phone:    form.Phone,
		Address:  form.Address,
		City:     form.City,
		State:    form.State,
		Zip:      form.Zip,
		Country:  form.Country,
		Age:      form.Age,
	}
	resp, err := f.client.Register(ctx, req)
	return f.complete(ctx, FieldConfirmPassword, resp, err)
}

// Logout clears the stored token and returns to the login form.
func (f *Flow) Logout(ctx context.Context) error {
	if err := f.session.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.authenticated = false
	f.mode = ModeLogin
	f.errors = map[string]string{}
	return nil
}

// Restore marks the flow authenticated when a token is already stored.
func (f *Flow) Restore(ctx context.Context) (bool, error) {
	_, ok, err := f.session.Get(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read session: %w", err)
	}

	f.mu.Lock()
	f.authenticated = ok
	f.mu.Unlock()
	return ok, nil
}

func (f *Flow) check(form any) error {
	err := Validate(form)

	var verr *ValidationError
	if errors.As(err, &verr) {
		f.mu.Lock()
		f.errors = maps.Clone(verr.Fields)
		f.mu.Unlock()
		return err
	}
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.errors = map[string]string{}
	f.mu.Unlock()
	return nil
}

// complete records the result of an exchange. field receives the generic failure message.
func (f *Flow) complete(ctx context.Context, field string, resp *services.AuthResponse, err error) error {
	if err == nil {
		err = f.session.Set(ctx, resp.Token)
	}
	if err != nil {
		f.logger.Warn("authentication failed", "error", err)

		f.mu.Lock()
		f.authenticated = false
		f.errors = map[string]string{field: GenericFailure}
		f.mu.Unlock()

		if errors.Is(err, shared.ErrAuthFailed) {
			return err
		}
		return fmt.Errorf("%w: %w", shared.ErrAuthFailed, err)
	}

	f.mu.Lock()
	f.authenticated = true
	f.errors = map[string]string{}
	callback := f.onAuthenticated
	f.mu.Unlock()

	f.logger.Info("authenticated")
	if callback != nil {
		callback()
	}
	return nil
}
