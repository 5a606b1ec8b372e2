package ui

import (
	"context"
	"log"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rentscout/api"
	"rentscout/config"
	"rentscout/locations"
	"rentscout/session"
	"rentscout/toast"
	"rentscout/ui/styles"
	"rentscout/ui/views"
)

type phase int

const (
	phaseRestoring phase = iota
	phaseLogin
	phaseMain
)

type tab int

const (
	tabSearch tab = iota
	tabFeed
	tabViewings
	tabProfile
	tabCount
)

var tabNames = [tabCount]string{"Search", "For you", "Viewings", "Profile"}

// Deps is everything the TUI needs, wired up by the caller.
type Deps struct {
	API       *api.Client
	Session   *session.Store
	Locations *locations.Manager
	Config    *config.Config
}

type restoredMsg struct {
	authenticated bool
}

// App is the root model: it gates on the session, owns the tab set and the
// toast queue, and routes messages to the views.
type App struct {
	deps   Deps
	phase  phase
	active tab
	spin   spinner.Model
	toasts *toast.Queue
	width  int
	height int

	login    views.Login
	search   views.Search
	feed     views.Feed
	viewings views.Viewings
	profile  views.Profile
	detail   *views.Detail
}

func NewApp(deps Deps) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.PrimaryColor)

	return App{
		deps:     deps,
		phase:    phaseRestoring,
		spin:     sp,
		toasts:   toast.NewQueue(),
		login:    views.NewLogin(deps.Session),
		search:   views.NewSearch(deps.API),
		feed:     views.NewFeed(deps.API),
		viewings: views.NewViewings(deps.API, deps.Config.DataDir),
		profile:  views.NewProfile(deps.API, deps.Session, deps.Locations),
	}
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(deps Deps) error {
	p := tea.NewProgram(NewApp(deps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.restoreCmd(), a.spin.Tick)
}

// restoreCmd replays the persisted session before anything renders. A failed
// restore is not an error here: it just lands on the login view.
func (a App) restoreCmd() tea.Cmd {
	sess := a.deps.Session
	return func() tea.Msg {
		if err := sess.Restore(context.Background()); err != nil {
			log.Printf("Session restore failed: %v", err)
		}
		return restoredMsg{authenticated: sess.IsAuthenticated()}
	}
}

func (a App) enterMain() (App, tea.Cmd) {
	a.phase = phaseMain
	a.active = tabSearch
	return a, tea.Batch(
		a.search.Init(),
		a.feed.Init(),
		a.viewings.Init(),
		a.profile.Init(),
	)
}

func (a App) resetToLogin() (App, tea.Cmd) {
	a.phase = phaseLogin
	a.detail = nil
	a.login = views.NewLogin(a.deps.Session)
	a.search = views.NewSearch(a.deps.API)
	a.feed = views.NewFeed(a.deps.API)
	a.viewings = views.NewViewings(a.deps.API, a.deps.Config.DataDir)
	a.profile = views.NewProfile(a.deps.API, a.deps.Session, a.deps.Locations)
	a = a.propagateSize()
	return a, a.login.Init()
}

func (a App) propagateSize() App {
	w, h := a.width, a.height-4
	a.login = a.login.SetSize(w, h)
	a.search = a.search.SetSize(w, h)
	a.feed = a.feed.SetSize(w, h)
	a.viewings = a.viewings.SetSize(w, h)
	a.profile = a.profile.SetSize(w, h)
	if a.detail != nil {
		d := a.detail.SetSize(w, h)
		a.detail = &d
	}
	return a
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case restoredMsg:
		if msg.authenticated {
			return a.enterMain()
		}
		a.phase = phaseLogin
		return a, a.login.Init()

	case views.LoggedInMsg:
		next, cmd := a.enterMain()
		return next, tea.Batch(cmd, next.toasts.Push("signed in as "+msg.User.Email, toast.SeveritySuccess))

	case views.LoggedOutMsg:
		next, cmd := a.resetToLogin()
		return next, tea.Batch(cmd, next.toasts.Push("signed out", toast.SeverityInfo))

	case views.OpenDetailMsg:
		d := views.NewDetail(a.deps.API, a.deps.Locations, msg.PropertyID)
		d = d.SetSize(a.width, a.height-4)
		a.detail = &d
		return a, d.Init()

	case views.CloseDetailMsg:
		a.detail = nil
		return a, nil

	case toast.ShowMsg:
		return a, a.toasts.Push(msg.Message, msg.Severity)

	case toast.ExpiredMsg:
		a.toasts.Dismiss(msg.ID)
		return a, nil

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a = a.propagateSize()
		return a, nil

	case spinner.TickMsg:
		if a.phase == phaseRestoring {
			var cmd tea.Cmd
			a.spin, cmd = a.spin.Update(msg)
			return a, cmd
		}

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.routeKey(msg)
	}

	return a.broadcast(msg)
}

// routeKey sends keystrokes to exactly one view: the detail overlay when
// open, otherwise the active tab. Global keys apply only while no form is
// capturing input.
func (a App) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.phase {
	case phaseRestoring:
		return a, nil

	case phaseLogin:
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd
	}

	if a.detail != nil {
		if msg.String() == "esc" && !a.detail.Capturing() {
			a.detail = nil
			return a, nil
		}
		d, cmd := a.detail.Update(msg)
		a.detail = &d
		return a, cmd
	}

	if !a.activeCapturing() {
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "tab":
			a.active = (a.active + 1) % tabCount
			return a, nil
		case "shift+tab":
			a.active = (a.active + tabCount - 1) % tabCount
			return a, nil
		}
	}

	var cmd tea.Cmd
	switch a.active {
	case tabSearch:
		a.search, cmd = a.search.Update(msg)
	case tabFeed:
		a.feed, cmd = a.feed.Update(msg)
	case tabViewings:
		a.viewings, cmd = a.viewings.Update(msg)
	case tabProfile:
		a.profile, cmd = a.profile.Update(msg)
	}
	return a, cmd
}

func (a App) activeCapturing() bool {
	switch a.active {
	case tabSearch:
		return a.search.Capturing()
	case tabFeed:
		return a.feed.Capturing()
	case tabViewings:
		return a.viewings.Capturing()
	case tabProfile:
		return a.profile.Capturing()
	}
	return false
}

// broadcast delivers data messages to every view; each one picks out what it
// recognizes.
func (a App) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	a.login, cmd = a.login.Update(msg)
	cmds = append(cmds, cmd)
	a.search, cmd = a.search.Update(msg)
	cmds = append(cmds, cmd)
	a.feed, cmd = a.feed.Update(msg)
	cmds = append(cmds, cmd)
	a.viewings, cmd = a.viewings.Update(msg)
	cmds = append(cmds, cmd)
	a.profile, cmd = a.profile.Update(msg)
	cmds = append(cmds, cmd)
	if a.detail != nil {
		d, cmd := a.detail.Update(msg)
		a.detail = &d
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a App) View() string {
	switch a.phase {
	case phaseRestoring:
		box := a.spin.View() + " restoring session"
		if a.width > 0 && a.height > 0 {
			return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, box)
		}
		return box

	case phaseLogin:
		return lipgloss.JoinVertical(lipgloss.Left, a.login.View(), a.renderToasts())
	}

	content := ""
	if a.detail != nil {
		content = a.detail.View()
	} else {
		switch a.active {
		case tabSearch:
			content = a.search.View()
		case tabFeed:
			content = a.feed.View()
		case tabViewings:
			content = a.viewings.View()
		case tabProfile:
			content = a.profile.View()
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderTabs(),
		content,
		a.renderToasts(),
		a.renderStatusBar(),
	)
}

func (a App) renderTabs() string {
	var rendered []string
	for i, name := range tabNames {
		if tab(i) == a.active && a.detail == nil {
			rendered = append(rendered, styles.TabActive.Render(name))
		} else {
			rendered = append(rendered, styles.TabInactive.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...) + "\n"
}

func (a App) renderToasts() string {
	visible := a.toasts.Visible()
	if len(visible) == 0 {
		return ""
	}

	var lines []string
	for _, t := range visible {
		var style lipgloss.Style
		switch t.Severity {
		case toast.SeveritySuccess:
			style = styles.ToastSuccess
		case toast.SeverityWarn:
			style = styles.ToastWarn
		case toast.SeverityError:
			style = styles.ToastError
		default:
			style = styles.ToastInfo
		}
		lines = append(lines, style.Render("• "+t.Message))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (a App) renderStatusBar() string {
	left := "tab switch view  q quit"
	if a.detail != nil {
		left = "esc back  tab hidden while viewing a listing"
	}

	right := ""
	if user := a.deps.Session.CurrentUser(); user != nil {
		right = styles.Muted.Render(user.Email)
	}

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 0 {
		gap = 0
	}

	return styles.StatusBar.Render(left) + lipgloss.NewStyle().Width(gap).Render("") + right
}
