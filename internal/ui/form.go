package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/cook/internal/auth"
)

var fieldLabels = map[string]string{
	auth.FieldFirstName:       "First name",
	auth.FieldLastName:        "Last name",
	auth.FieldEmail:           "Email",
	auth.FieldPhone:           "Phone number",
	auth.FieldPassword:        "Password",
	auth.FieldConfirmPassword: "Confirm password",
	fieldCity:                 "City (optional)",
	fieldCountry:              "Country (optional)",
	fieldAge:                  "Age (optional)",
}

const (
	fieldCity    = "city"
	fieldCountry = "country"
	fieldAge     = "age"
)

// authForm is the set of text inputs for the current auth mode.
type authForm struct {
	mode   auth.Mode
	fields []string
	inputs []textinput.Model
	focus  int
}

func newAuthForm(mode auth.Mode) authForm {
	fields := []string{auth.FieldEmail, auth.FieldPassword}
	if mode == auth.ModeRegister {
		fields = []string{
			auth.FieldFirstName, auth.FieldLastName, auth.FieldEmail, auth.FieldPhone,
			auth.FieldPassword, auth.FieldConfirmPassword, fieldCity, fieldCountry, fieldAge,
		}
	}

	f := authForm{mode: mode, fields: fields, inputs: make([]textinput.Model, len(fields))}
	for i, field := range fields {
		in := textinput.New()
		in.Prompt = "› "
		in.Placeholder = fieldLabels[field]
		in.CharLimit = 128
		if field == auth.FieldPassword || field == auth.FieldConfirmPassword {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		f.inputs[i] = in
	}
	f.inputs[0].Focus()
	return f
}

func (f *authForm) value(field string) string {
	for i, name := range f.fields {
		if name == field {
			return f.inputs[i].Value()
		}
	}
	return ""
}

func (f *authForm) focused() string {
	return f.fields[f.focus]
}

// move shifts focus by delta, wrapping around.
func (f *authForm) move(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

// update forwards msg to the focused input and reports whether its value changed.
func (f *authForm) update(msg tea.Msg) (bool, tea.Cmd) {
	before := f.inputs[f.focus].Value()

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f.inputs[f.focus].Value() != before, cmd
}

func (f *authForm) login() (string, string) {
	return f.value(auth.FieldEmail), f.value(auth.FieldPassword)
}

func (f *authForm) registration() auth.RegisterForm {
	age, _ := strconv.Atoi(strings.TrimSpace(f.value(fieldAge)))
	return auth.RegisterForm{
		FirstName:       f.value(auth.FieldFirstName),
		LastName:        f.value(auth.FieldLastName),
		Email:           f.value(auth.FieldEmail),
		Phone:           f.value(auth.FieldPhone),
		Password:        f.value(auth.FieldPassword),
		ConfirmPassword: f.value(auth.FieldConfirmPassword),
		City:            f.value(fieldCity),
		Country:         f.value(fieldCountry),
		Age:             age,
	}
}

func (f *authForm) view(errs map[string]string) string {
	var b strings.Builder
	for i, field := range f.fields {
		label := styles.label.Render(fieldLabels[field])
		if i == f.focus {
			label = styles.focus.Render(fieldLabels[field])
		}
		b.WriteString(fmt.Sprintf("%s\n%s\n", label, f.inputs[i].View()))
		if msg := errs[field]; msg != "" {
			b.WriteString(styles.err.Render("  "+msg) + "\n")
		}
	}
	return b.String()
}
