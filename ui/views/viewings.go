package views

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rentscout/api"
	"rentscout/models"
	"rentscout/toast"
	"rentscout/ui/styles"
)

const (
	viewingFieldProperty = iota
	viewingFieldDate
	viewingFieldTime
	viewingFieldContact
	viewingFieldNotes
	viewingFieldCount
)

var viewingLabels = [viewingFieldCount]string{
	"Property ID", "Date", "Time", "Agent", "Notes",
}

type viewingsMsg struct {
	items []models.Viewing
	err   error
}

type viewingSavedMsg struct {
	viewing *models.Viewing
	err     error
}

type viewingDeletedMsg struct {
	id  int
	err error
}

type icalSavedMsg struct {
	path string
	err  error
}

// Viewings lists scheduled property viewings and books new ones. Exports
// write .ics files into the data directory for the user's calendar.
type Viewings struct {
	api          *api.Client
	dataDir      string
	items        []models.Viewing
	upcomingOnly bool
	selectedRow  int
	loading      bool

	adding    bool
	formFocus int
	inputs    []textinput.Model

	width  int
	height int
}

func NewViewings(client *api.Client, dataDir string) Viewings {
	inputs := make([]textinput.Model, viewingFieldCount)
	for i := range inputs {
		in := textinput.New()
		in.CharLimit = 200
		in.Width = 32
		inputs[i] = in
	}
	inputs[viewingFieldProperty].CharLimit = 12
	inputs[viewingFieldDate].Placeholder = "2026-09-01"
	inputs[viewingFieldTime].Placeholder = "14:30"

	return Viewings{api: client, dataDir: dataDir, upcomingOnly: true, inputs: inputs}
}

func (v Viewings) Init() tea.Cmd {
	return v.refresh()
}

func (v Viewings) SetSize(w, h int) Viewings {
	v.width = w
	v.height = h
	return v
}

func (v Viewings) Capturing() bool {
	return v.adding
}

func (v Viewings) refresh() tea.Cmd {
	client := v.api
	upcoming := v.upcomingOnly
	return func() tea.Msg {
		items, err := client.Viewings(context.Background(), upcoming, "", "")
		return viewingsMsg{items: items, err: err}
	}
}

func (v Viewings) Update(msg tea.Msg) (Viewings, tea.Cmd) {
	switch msg := msg.(type) {
	case viewingsMsg:
		v.loading = false
		if msg.err != nil {
			return v, toast.Error("viewings failed: " + shortError(msg.err))
		}
		v.items = msg.items
		if v.selectedRow >= len(v.items) {
			v.selectedRow = 0
		}
		return v, nil

	case viewingSavedMsg:
		if msg.err != nil {
			return v, toast.Error("booking failed: " + shortError(msg.err))
		}
		v.adding = false
		for i := range v.inputs {
			v.inputs[i].SetValue("")
			v.inputs[i].Blur()
		}
		return v, tea.Batch(toast.Success("viewing booked"), v.refresh())

	case viewingDeletedMsg:
		if msg.err != nil {
			return v, toast.Error("cancel failed: " + shortError(msg.err))
		}
		return v, tea.Batch(toast.Info("viewing cancelled"), v.refresh())

	case icalSavedMsg:
		if msg.err != nil {
			return v, toast.Error("export failed: " + shortError(msg.err))
		}
		return v, toast.Success("calendar saved to " + msg.path)

	case tea.KeyMsg:
		if v.adding {
			return v.updateForm(msg)
		}
		return v.updateBrowsing(msg)
	}
	return v, nil
}

func (v Viewings) updateBrowsing(msg tea.KeyMsg) (Viewings, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selectedRow > 0 {
			v.selectedRow--
		}
	case "down", "j":
		if len(v.items) > 0 && v.selectedRow < len(v.items)-1 {
			v.selectedRow++
		}
	case "u":
		v.upcomingOnly = !v.upcomingOnly
		v.selectedRow = 0
		v.loading = true
		return v, v.refresh()
	case "r":
		v.loading = true
		return v, v.refresh()
	case "a":
		v.adding = true
		v.formFocus = 0
		return v, v.focusForm(0)
	case "x":
		if v.selectedRow < len(v.items) {
			id := v.items[v.selectedRow].ID
			client := v.api
			return v, func() tea.Msg {
				err := client.DeleteViewing(context.Background(), id)
				return viewingDeletedMsg{id: id, err: err}
			}
		}
	case "e":
		if v.selectedRow < len(v.items) {
			return v, v.export(v.items[v.selectedRow].ID)
		}
	case "E":
		return v, v.exportAll()
	case "enter":
		if v.selectedRow < len(v.items) {
			id := v.items[v.selectedRow].PropertyID
			return v, func() tea.Msg { return OpenDetailMsg{PropertyID: id} }
		}
	}
	return v, nil
}

func (v Viewings) updateForm(msg tea.KeyMsg) (Viewings, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.adding = false
		return v, nil
	case "tab", "down":
		v.formFocus = (v.formFocus + 1) % viewingFieldCount
		return v, v.focusForm(v.formFocus)
	case "shift+tab", "up":
		v.formFocus = (v.formFocus + viewingFieldCount - 1) % viewingFieldCount
		return v, v.focusForm(v.formFocus)
	case "enter":
		req, err := v.parseForm()
		if err != nil {
			return v, toast.Warn(err.Error())
		}
		client := v.api
		return v, func() tea.Msg {
			saved, err := client.CreateViewing(context.Background(), req)
			return viewingSavedMsg{viewing: saved, err: err}
		}
	}

	var cmd tea.Cmd
	v.inputs[v.formFocus], cmd = v.inputs[v.formFocus].Update(msg)
	return v, cmd
}

func (v Viewings) focusForm(idx int) tea.Cmd {
	for i := range v.inputs {
		if i == idx {
			continue
		}
		v.inputs[i].Blur()
	}
	return v.inputs[idx].Focus()
}

func (v Viewings) parseForm() (models.ViewingRequest, error) {
	var req models.ViewingRequest

	propertyID, err := strconv.Atoi(strings.TrimSpace(v.inputs[viewingFieldProperty].Value()))
	if err != nil || propertyID <= 0 {
		return req, fmt.Errorf("property id must be a positive number")
	}

	date := strings.TrimSpace(v.inputs[viewingFieldDate].Value())
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return req, fmt.Errorf("date must look like 2026-09-01")
	}

	clock := strings.TrimSpace(v.inputs[viewingFieldTime].Value())
	if clock != "" {
		if _, err := time.Parse("15:04", clock); err != nil {
			return req, fmt.Errorf("time must look like 14:30")
		}
	}

	req.PropertyID = propertyID
	req.ViewingDate = date
	req.ViewingTime = clock
	req.AgentContact = strings.TrimSpace(v.inputs[viewingFieldContact].Value())
	req.Notes = strings.TrimSpace(v.inputs[viewingFieldNotes].Value())
	return req, nil
}

func (v Viewings) export(id int) tea.Cmd {
	client := v.api
	dataDir := v.dataDir
	return func() tea.Msg {
		exp, err := client.ViewingICal(context.Background(), id)
		if err != nil {
			return icalSavedMsg{err: err}
		}
		path, err := writeICal(dataDir, exp)
		return icalSavedMsg{path: path, err: err}
	}
}

func (v Viewings) exportAll() tea.Cmd {
	client := v.api
	dataDir := v.dataDir
	return func() tea.Msg {
		exp, err := client.AllViewingsICal(context.Background())
		if err != nil {
			return icalSavedMsg{err: err}
		}
		path, err := writeICal(dataDir, exp)
		return icalSavedMsg{path: path, err: err}
	}
}

func writeICal(dataDir string, exp *api.ICalExport) (string, error) {
	name := exp.Filename
	if name == "" {
		name = "viewings.ics"
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dataDir, name)
	if err := os.WriteFile(path, []byte(exp.Content), 0644); err != nil {
		return "", err
	}
	return path, nil
}

func (v Viewings) View() string {
	scope := "upcoming"
	if !v.upcomingOnly {
		scope = "all"
	}
	header := styles.Title.Render("Viewings") +
		styles.StatLabel.Render(fmt.Sprintf("  %d %s", len(v.items), scope))

	if v.adding {
		return lipgloss.JoinVertical(lipgloss.Left, header, v.renderForm())
	}

	var body string
	switch {
	case v.loading:
		body = styles.Muted.Render("Loading viewings...")
	case len(v.items) == 0:
		body = styles.Muted.Render("No viewings booked. Press a to add one.")
	default:
		body = v.renderTable()
	}

	footer := styles.Muted.Render("  a add  x cancel  e export  E export all  u upcoming/all  enter property")
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (v Viewings) renderForm() string {
	var lines []string
	for i := range v.inputs {
		label := styles.InputLabel.Render(viewingLabels[i])
		if i == v.formFocus {
			label = styles.InputLabelFocused.Render(viewingLabels[i])
		}
		lines = append(lines, label+v.inputs[i].View())
	}
	lines = append(lines, "", styles.Muted.Render("enter book   esc cancel   tab next field"))
	return styles.CardBorder.Render(strings.Join(lines, "\n"))
}

func (v Viewings) renderTable() string {
	header := fmt.Sprintf("%-12s %-6s %10s %-24s %-30s %s",
		"Date", "Time", "Property", "Agent", "Notes", "Reminder")
	rows := styles.TableHeader.Render(header) + "\n"

	for i, item := range v.items {
		clock := item.ViewingTime
		if clock == "" {
			clock = "—"
		}
		reminder := ""
		if item.ReminderSent {
			reminder = styles.StatusSuccess.Render("sent")
		}

		row := fmt.Sprintf("%-12s %-6s %10d %-24s %-30s %s",
			item.ViewingDate,
			clock,
			item.PropertyID,
			truncate(item.AgentContact, 24),
			truncate(item.Notes, 30),
			reminder,
		)
		if i == v.selectedRow {
			rows += styles.TableSelected.Render(row) + "\n"
		} else {
			rows += row + "\n"
		}
	}
	return rows
}
