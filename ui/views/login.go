package views

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rentscout/api"
	"rentscout/session"
	"rentscout/ui/styles"
)

type authResultMsg struct {
	err error
}

// Login is the gate view shown while no user is signed in. It handles both
// sign-in and account creation against the same two fields.
type Login struct {
	session  *session.Store
	email    textinput.Model
	password textinput.Model
	spin     spinner.Model
	focus    int
	register bool
	busy     bool
	errLine  string
	width    int
	height   int
}

func NewLogin(sess *session.Store) Login {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128
	password.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.PrimaryColor)

	return Login{session: sess, email: email, password: password, spin: sp}
}

func (l Login) Init() tea.Cmd {
	return textinput.Blink
}

func (l Login) SetSize(w, h int) Login {
	l.width = w
	l.height = h
	return l
}

// Capturing reports whether keystrokes belong to the form.
func (l Login) Capturing() bool {
	return true
}

func (l Login) Update(msg tea.Msg) (Login, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		l.busy = false
		if msg.err != nil {
			l.errLine = l.authErrorLine(msg.err)
			return l, nil
		}
		user := l.session.CurrentUser()
		if user == nil {
			l.errLine = "signed in, but no account details came back"
			return l, nil
		}
		u := *user
		return l, func() tea.Msg { return LoggedInMsg{User: u} }

	case spinner.TickMsg:
		if l.busy {
			var cmd tea.Cmd
			l.spin, cmd = l.spin.Update(msg)
			return l, cmd
		}
		return l, nil

	case tea.KeyMsg:
		if l.busy {
			return l, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			l.focus = 1 - l.focus
			if l.focus == 0 {
				l.password.Blur()
				return l, l.email.Focus()
			}
			l.email.Blur()
			return l, l.password.Focus()
		case "ctrl+r":
			l.register = !l.register
			l.errLine = ""
			return l, nil
		case "enter":
			email := strings.TrimSpace(l.email.Value())
			password := l.password.Value()
			if email == "" || password == "" {
				l.errLine = "email and password are both required"
				return l, nil
			}
			l.busy = true
			l.errLine = ""
			return l, tea.Batch(l.spin.Tick, l.submit(email, password))
		}
	}

	var cmd tea.Cmd
	if l.focus == 0 {
		l.email, cmd = l.email.Update(msg)
	} else {
		l.password, cmd = l.password.Update(msg)
	}
	return l, cmd
}

func (l Login) submit(email, password string) tea.Cmd {
	register := l.register
	sess := l.session
	return func() tea.Msg {
		var err error
		if register {
			err = sess.Register(context.Background(), email, password)
		} else {
			err = sess.Login(context.Background(), email, password)
		}
		return authResultMsg{err: err}
	}
}

func (l Login) authErrorLine(err error) string {
	switch {
	case api.IsUnauthorized(err):
		return "invalid email or password"
	case api.IsValidation(err):
		var httpErr *api.HTTPError
		if errors.As(err, &httpErr) {
			return httpErr.Message
		}
		return "the server rejected those details"
	case api.IsNetwork(err):
		return "cannot reach the rentals api"
	default:
		return err.Error()
	}
}

func (l Login) View() string {
	mode := "Sign in"
	hint := "ctrl+r create an account instead"
	if l.register {
		mode = "Create account"
		hint = "ctrl+r sign in instead"
	}

	emailLabel := styles.InputLabel.Render("Email")
	passwordLabel := styles.InputLabel.Render("Password")
	if l.focus == 0 {
		emailLabel = styles.InputLabelFocused.Render("Email")
	} else {
		passwordLabel = styles.InputLabelFocused.Render("Password")
	}

	var status string
	switch {
	case l.busy:
		status = l.spin.View() + " contacting the api"
	case l.errLine != "":
		status = styles.StatusError.Render(l.errLine)
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render("rentscout"),
		styles.StatValue.Render(mode),
		"",
		emailLabel+l.email.View(),
		passwordLabel+l.password.View(),
		"",
		status,
		"",
		styles.Muted.Render("enter submit   tab switch field   "+hint),
	)

	box := styles.CardBorder.Render(form)
	if l.width > 0 && l.height > 0 {
		return lipgloss.Place(l.width, l.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
