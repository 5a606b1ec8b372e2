package views

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"rentscout/api"
	"rentscout/locations"
	"rentscout/models"
	"rentscout/session"
	"rentscout/toast"
	"rentscout/ui/styles"
)

const (
	profileFieldBio = iota
	profileFieldDream
	profileFieldPriceMin
	profileFieldPriceMax
	profileFieldBedsMin
	profileFieldTypes
	profileFieldAreas
	profileFieldCount
)

var profileLabels = [profileFieldCount]string{
	"Bio", "Dream home", "Min price", "Max price", "Min beds", "Types", "Areas",
}

type profileMsg struct {
	profile  *models.Profile
	settings *models.NotificationSettings
	err      error
}

type profileSavedMsg struct {
	profile *models.Profile
	err     error
}

type settingsSavedMsg struct {
	prev models.NotificationSettings
	err  error
}

type keyLocationsMsg struct {
	locs []models.KeyLocation
	err  error
}

type locationAddedMsg struct {
	loc *models.KeyLocation
	err error
}

type locationRemovedMsg struct {
	id  uuid.UUID
	err error
}

type logoutDoneMsg struct{}

// Profile shows the account: search preferences, notification settings, and
// the key locations used for travel times.
type Profile struct {
	api     *api.Client
	session *session.Store
	locs    *locations.Manager

	profile  *models.Profile
	settings *models.NotificationSettings
	keyLocs  []models.KeyLocation
	selected int

	editing   bool
	formFocus int
	inputs    []textinput.Model

	addingLoc bool
	locFocus  int
	locInputs []textinput.Model

	width  int
	height int
}

func NewProfile(client *api.Client, sess *session.Store, locs *locations.Manager) Profile {
	inputs := make([]textinput.Model, profileFieldCount)
	for i := range inputs {
		in := textinput.New()
		in.CharLimit = 500
		in.Width = 48
		inputs[i] = in
	}
	inputs[profileFieldTypes].Placeholder = "Flat, Terraced"
	inputs[profileFieldAreas].Placeholder = "E8, N16"

	locInputs := make([]textinput.Model, 2)
	for i := range locInputs {
		in := textinput.New()
		in.CharLimit = 200
		in.Width = 40
		locInputs[i] = in
	}
	locInputs[0].Placeholder = "Work"
	locInputs[1].Placeholder = "1 Canada Square, London"

	return Profile{
		api:       client,
		session:   sess,
		locs:      locs,
		inputs:    inputs,
		locInputs: locInputs,
	}
}

func (p Profile) Init() tea.Cmd {
	return tea.Batch(p.loadProfile(), p.loadLocations())
}

func (p Profile) SetSize(w, h int) Profile {
	p.width = w
	p.height = h
	return p
}

func (p Profile) Capturing() bool {
	return p.editing || p.addingLoc
}

func (p Profile) loadProfile() tea.Cmd {
	client := p.api
	return func() tea.Msg {
		profile, err := client.Profile(context.Background())
		if err != nil {
			return profileMsg{err: err}
		}
		settings, err := client.NotificationSettings(context.Background())
		return profileMsg{profile: profile, settings: settings, err: err}
	}
}

func (p Profile) loadLocations() tea.Cmd {
	locs := p.locs
	return func() tea.Msg {
		saved, err := locs.List(context.Background())
		return keyLocationsMsg{locs: saved, err: err}
	}
}

func (p Profile) Update(msg tea.Msg) (Profile, tea.Cmd) {
	switch msg := msg.(type) {
	case profileMsg:
		if msg.err != nil {
			return p, toast.Error("profile failed: " + shortError(msg.err))
		}
		p.profile = msg.profile
		p.settings = msg.settings
		return p, nil

	case profileSavedMsg:
		if msg.err != nil {
			return p, toast.Error("save failed: " + shortError(msg.err))
		}
		p.editing = false
		p.profile = msg.profile
		return p, toast.Success("profile saved")

	case settingsSavedMsg:
		if msg.err != nil {
			prev := msg.prev
			p.settings = &prev
			return p, toast.Error("settings failed: " + shortError(msg.err))
		}
		return p, nil

	case keyLocationsMsg:
		if msg.err != nil {
			return p, toast.Error("locations failed: " + shortError(msg.err))
		}
		p.keyLocs = msg.locs
		if p.selected >= len(p.keyLocs) {
			p.selected = 0
		}
		return p, nil

	case locationAddedMsg:
		p.addingLoc = false
		p.locInputs[0].SetValue("")
		p.locInputs[1].SetValue("")
		if msg.err != nil {
			if api.IsValidation(msg.err) || api.IsNotFound(msg.err) {
				return p, toast.Warn("address did not resolve, nothing saved")
			}
			return p, toast.Error("add location failed: " + shortError(msg.err))
		}
		p.keyLocs = append(p.keyLocs, *msg.loc)
		return p, toast.Success("added " + msg.loc.Label)

	case locationRemovedMsg:
		if msg.err != nil {
			return p, toast.Error("remove failed: " + shortError(msg.err))
		}
		return p, p.loadLocations()

	case logoutDoneMsg:
		return p, func() tea.Msg { return LoggedOutMsg{} }

	case tea.KeyMsg:
		switch {
		case p.editing:
			return p.updateProfileForm(msg)
		case p.addingLoc:
			return p.updateLocationForm(msg)
		default:
			return p.updateBrowsing(msg)
		}
	}
	return p, nil
}

func (p Profile) updateBrowsing(msg tea.KeyMsg) (Profile, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if p.selected > 0 {
			p.selected--
		}
	case "down", "j":
		if len(p.keyLocs) > 0 && p.selected < len(p.keyLocs)-1 {
			p.selected++
		}
	case "e":
		if p.profile != nil {
			p.startEditing()
			return p, p.focusProfile(0)
		}
	case "a":
		p.addingLoc = true
		p.locFocus = 0
		p.locInputs[1].Blur()
		return p, p.locInputs[0].Focus()
	case "x":
		if p.selected < len(p.keyLocs) {
			id := p.keyLocs[p.selected].ID
			locs := p.locs
			return p, func() tea.Msg {
				err := locs.Remove(context.Background(), id)
				return locationRemovedMsg{id: id, err: err}
			}
		}
	case "1", "2", "3", "4":
		return p.toggleSetting(msg.String())
	case "r":
		return p, tea.Batch(p.loadProfile(), p.loadLocations())
	case "L":
		sess := p.session
		return p, func() tea.Msg {
			sess.Logout(context.Background())
			return logoutDoneMsg{}
		}
	}
	return p, nil
}

// toggleSetting flips a notification switch locally, then persists the whole
// settings payload; a failed save restores the previous values.
func (p Profile) toggleSetting(key string) (Profile, tea.Cmd) {
	if p.settings == nil {
		return p, nil
	}
	prev := *p.settings
	next := prev
	switch key {
	case "1":
		next.EmailEnabled = !next.EmailEnabled
	case "2":
		next.InAppEnabled = !next.InAppEnabled
	case "3":
		next.FeedChangesEnabled = !next.FeedChangesEnabled
	case "4":
		next.ViewingReminderDays = nextReminderDays(next.ViewingReminderDays)
	}
	p.settings = &next

	client := p.api
	return p, func() tea.Msg {
		_, err := client.UpdateNotificationSettings(context.Background(), next)
		return settingsSavedMsg{prev: prev, err: err}
	}
}

// nextReminderDays cycles 1 -> 2 -> 3 -> 7 -> 1.
func nextReminderDays(days int) int {
	switch days {
	case 1:
		return 2
	case 2:
		return 3
	case 3:
		return 7
	default:
		return 1
	}
}

func (p *Profile) startEditing() {
	p.editing = true
	p.formFocus = 0

	set := func(idx int, v string) { p.inputs[idx].SetValue(v) }
	set(profileFieldBio, p.profile.Bio)
	set(profileFieldDream, p.profile.DreamPropertyDescription)
	if p.profile.PreferredPriceMin != nil {
		set(profileFieldPriceMin, strconv.FormatFloat(*p.profile.PreferredPriceMin, 'f', -1, 64))
	}
	if p.profile.PreferredPriceMax != nil {
		set(profileFieldPriceMax, strconv.FormatFloat(*p.profile.PreferredPriceMax, 'f', -1, 64))
	}
	if p.profile.PreferredBedroomsMin != nil {
		set(profileFieldBedsMin, strconv.Itoa(*p.profile.PreferredBedroomsMin))
	}
	set(profileFieldTypes, strings.Join(p.profile.PreferredPropertyTypes, ", "))
	set(profileFieldAreas, strings.Join(p.profile.PreferredLocations, ", "))
}

func (p Profile) updateProfileForm(msg tea.KeyMsg) (Profile, tea.Cmd) {
	switch msg.String() {
	case "esc":
		p.editing = false
		return p, nil
	case "tab", "down":
		p.formFocus = (p.formFocus + 1) % profileFieldCount
		return p, p.focusProfile(p.formFocus)
	case "shift+tab", "up":
		p.formFocus = (p.formFocus + profileFieldCount - 1) % profileFieldCount
		return p, p.focusProfile(p.formFocus)
	case "enter":
		update, err := p.parseProfileForm()
		if err != nil {
			return p, toast.Warn(err.Error())
		}
		client := p.api
		return p, func() tea.Msg {
			saved, err := client.UpdateProfile(context.Background(), update)
			return profileSavedMsg{profile: saved, err: err}
		}
	}

	var cmd tea.Cmd
	p.inputs[p.formFocus], cmd = p.inputs[p.formFocus].Update(msg)
	return p, cmd
}

func (p Profile) focusProfile(idx int) tea.Cmd {
	for i := range p.inputs {
		if i == idx {
			continue
		}
		p.inputs[i].Blur()
	}
	return p.inputs[idx].Focus()
}

func (p Profile) parseProfileForm() (models.ProfileUpdate, error) {
	var update models.ProfileUpdate

	bio := strings.TrimSpace(p.inputs[profileFieldBio].Value())
	update.Bio = &bio
	dream := strings.TrimSpace(p.inputs[profileFieldDream].Value())
	update.DreamPropertyDescription = &dream

	if raw := strings.TrimSpace(p.inputs[profileFieldPriceMin].Value()); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return update, fmt.Errorf("min price must be a non-negative number")
		}
		update.PreferredPriceMin = &v
	}
	if raw := strings.TrimSpace(p.inputs[profileFieldPriceMax].Value()); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return update, fmt.Errorf("max price must be a non-negative number")
		}
		update.PreferredPriceMax = &v
	}
	if raw := strings.TrimSpace(p.inputs[profileFieldBedsMin].Value()); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return update, fmt.Errorf("min beds must be a non-negative whole number")
		}
		update.PreferredBedroomsMin = &v
	}
	if update.PreferredPriceMin != nil && update.PreferredPriceMax != nil &&
		*update.PreferredPriceMin > *update.PreferredPriceMax {
		return update, fmt.Errorf("min price is above max price")
	}

	update.PreferredPropertyTypes = splitList(p.inputs[profileFieldTypes].Value())
	update.PreferredLocations = splitList(p.inputs[profileFieldAreas].Value())
	return update, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (p Profile) updateLocationForm(msg tea.KeyMsg) (Profile, tea.Cmd) {
	switch msg.String() {
	case "esc":
		p.addingLoc = false
		return p, nil
	case "tab", "down", "shift+tab", "up":
		p.locFocus = 1 - p.locFocus
		p.locInputs[1-p.locFocus].Blur()
		return p, p.locInputs[p.locFocus].Focus()
	case "enter":
		label := strings.TrimSpace(p.locInputs[0].Value())
		address := strings.TrimSpace(p.locInputs[1].Value())
		if label == "" || address == "" {
			return p, toast.Warn("label and address are both required")
		}
		locs := p.locs
		return p, func() tea.Msg {
			loc, err := locs.Add(context.Background(), label, address)
			return locationAddedMsg{loc: loc, err: err}
		}
	}

	var cmd tea.Cmd
	p.locInputs[p.locFocus], cmd = p.locInputs[p.locFocus].Update(msg)
	return p, cmd
}

func (p Profile) View() string {
	user := p.session.CurrentUser()
	email := ""
	if user != nil {
		email = user.Email
	}
	header := styles.Title.Render("Profile") + styles.StatLabel.Render("  "+email)

	if p.editing {
		return lipgloss.JoinVertical(lipgloss.Left, header, p.renderProfileForm())
	}

	prefs := p.renderPreferences()
	settings := p.renderSettings()
	locs := p.renderLocations()
	footer := styles.Muted.Render("  e edit preferences  a add location  x remove  1-4 toggles  L log out")

	return lipgloss.JoinVertical(lipgloss.Left, header, prefs, settings, locs, footer)
}

func (p Profile) renderProfileForm() string {
	var lines []string
	for i := range p.inputs {
		label := styles.InputLabel.Render(profileLabels[i])
		if i == p.formFocus {
			label = styles.InputLabelFocused.Render(profileLabels[i])
		}
		lines = append(lines, label+p.inputs[i].View())
	}
	lines = append(lines, "", styles.Muted.Render("enter save   esc cancel   tab next field"))
	return styles.CardBorder.Render(strings.Join(lines, "\n"))
}

func (p Profile) renderPreferences() string {
	if p.profile == nil {
		return styles.Muted.Render("Loading profile...")
	}

	budget := "any"
	switch {
	case p.profile.PreferredPriceMin != nil && p.profile.PreferredPriceMax != nil:
		budget = fmt.Sprintf("£%.0f to £%.0f", *p.profile.PreferredPriceMin, *p.profile.PreferredPriceMax)
	case p.profile.PreferredPriceMax != nil:
		budget = fmt.Sprintf("up to £%.0f", *p.profile.PreferredPriceMax)
	case p.profile.PreferredPriceMin != nil:
		budget = fmt.Sprintf("from £%.0f", *p.profile.PreferredPriceMin)
	}

	beds := "any"
	if p.profile.PreferredBedroomsMin != nil {
		beds = fmt.Sprintf("%d+", *p.profile.PreferredBedroomsMin)
	}

	lines := []string{
		styles.StatLabel.Render("Budget: ") + budget,
		styles.StatLabel.Render("Bedrooms: ") + beds,
		styles.StatLabel.Render("Types: ") + orAny(strings.Join(p.profile.PreferredPropertyTypes, ", ")),
		styles.StatLabel.Render("Areas: ") + orAny(strings.Join(p.profile.PreferredLocations, ", ")),
	}
	if p.profile.Bio != "" {
		lines = append(lines, styles.StatLabel.Render("Bio: ")+truncate(p.profile.Bio, 70))
	}
	if p.profile.DreamPropertyDescription != "" {
		lines = append(lines, styles.StatLabel.Render("Dream home: ")+truncate(p.profile.DreamPropertyDescription, 70))
	}

	return styles.CardBorder.Render(
		styles.Title.Render("Preferences") + "\n" + strings.Join(lines, "\n"))
}

func orAny(s string) string {
	if s == "" {
		return "any"
	}
	return s
}

func (p Profile) renderSettings() string {
	if p.settings == nil {
		return styles.Muted.Render("Loading notification settings...")
	}

	onOff := func(b bool) string {
		if b {
			return styles.StatusSuccess.Render("on")
		}
		return styles.Muted.Render("off")
	}

	lines := []string{
		fmt.Sprintf("1 Email notifications: %s", onOff(p.settings.EmailEnabled)),
		fmt.Sprintf("2 In-app notifications: %s", onOff(p.settings.InAppEnabled)),
		fmt.Sprintf("3 Feed change alerts: %s", onOff(p.settings.FeedChangesEnabled)),
		fmt.Sprintf("4 Viewing reminder: %d days before", p.settings.ViewingReminderDays),
	}
	return styles.CardBorder.Render(
		styles.Title.Render("Notifications") + "\n" + strings.Join(lines, "\n"))
}

func (p Profile) renderLocations() string {
	title := styles.Title.Render("Key locations")

	if p.addingLoc {
		labels := [2]string{"Label", "Address"}
		var lines []string
		for i := range p.locInputs {
			label := styles.InputLabel.Render(labels[i])
			if i == p.locFocus {
				label = styles.InputLabelFocused.Render(labels[i])
			}
			lines = append(lines, label+p.locInputs[i].View())
		}
		lines = append(lines, "", styles.Muted.Render("enter save   esc cancel"))
		return styles.CardBorder.Render(title + "\n" + strings.Join(lines, "\n"))
	}

	if len(p.keyLocs) == 0 {
		return styles.CardBorder.Render(title + "\n" +
			styles.Muted.Render("None saved. Press a to add one; travel times need them."))
	}

	var lines []string
	for i, loc := range p.keyLocs {
		row := fmt.Sprintf("%-16s %s", truncate(loc.Label, 16), truncate(loc.Address, 50))
		if i == p.selected {
			row = styles.TableSelected.Render(row)
		}
		lines = append(lines, row)
	}
	return styles.CardBorder.Render(title + "\n" + strings.Join(lines, "\n"))
}
