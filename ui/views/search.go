package views

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rentscout/api"
	"rentscout/listing"
	"rentscout/models"
	"rentscout/toast"
	"rentscout/ui/styles"
)

const (
	filterQuery = iota
	filterMinPrice
	filterMaxPrice
	filterMinBeds
	filterMaxBeds
	filterType
	filterFurnishing
	filterOutcode
	filterFieldCount
)

var filterLabels = [filterFieldCount]string{
	"Search", "Min price", "Max price", "Min beds", "Max beds",
	"Type", "Furnishing", "Outcode",
}

type searchDataMsg struct {
	res listing.Result
}

type starredSetMsg struct {
	ids []int
	err error
}

// filterEnumsMsg carries the enumeration hints for the filter form. Both
// lookups are best effort; the form works fine without them.
type filterEnumsMsg struct {
	types    []string
	outcodes []string
}

type hydratedMsg struct {
	propertyID int
	vote       models.VoteType
	status     models.PropertyStatus
}

type starResultMsg struct {
	propertyID int
	prev       bool
	err        error
}

type voteResultMsg struct {
	propertyID int
	prev       models.VoteType
	err        error
}

type statusResultMsg struct {
	propertyID int
	prev       models.PropertyStatus
	err        error
}

// interaction is the signed-in user's relationship with one listing. Entries
// hydrate lazily the first time a listing is selected.
type interaction struct {
	vote     models.VoteType
	status   models.PropertyStatus
	hydrated bool
}

// Search is the main listings tab: filter form, result table, pager, and the
// per-listing actions.
type Search struct {
	api            *api.Client
	ctrl           *listing.Controller
	spin           spinner.Model
	inputs         []textinput.Model
	filterOpen     bool
	filterFocus    int
	selectedRow    int
	starred        map[int]bool
	inter          map[int]*interaction
	typeOptions    []string
	outcodeOptions []string
	enumsLoaded    bool
	width          int
	height         int
}

func NewSearch(client *api.Client) Search {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.PrimaryColor)

	inputs := make([]textinput.Model, filterFieldCount)
	for i := range inputs {
		in := textinput.New()
		in.CharLimit = 64
		in.Width = 24
		inputs[i] = in
	}
	inputs[filterQuery].Placeholder = "garden, balcony, period..."
	inputs[filterOutcode].Placeholder = "E8"
	inputs[filterType].Placeholder = "Flat"

	return Search{
		api:     client,
		ctrl:    listing.NewController(),
		spin:    sp,
		inputs:  inputs,
		starred: make(map[int]bool),
		inter:   make(map[int]*interaction),
	}
}

// Init fires the one initial unfiltered load.
func (s Search) Init() tea.Cmd {
	return tea.Batch(s.fetch(s.ctrl.ApplyFilters(models.Filter{})), s.spin.Tick)
}

func (s Search) SetSize(w, h int) Search {
	s.width = w
	s.height = h
	return s
}

// Capturing reports whether the filter form owns keystrokes.
func (s Search) Capturing() bool {
	return s.filterOpen
}

// Selected returns the highlighted listing, or nil on an empty page.
func (s Search) Selected() *models.Property {
	page := s.ctrl.Page()
	if page == nil || s.selectedRow >= len(page.Properties) {
		return nil
	}
	return &page.Properties[s.selectedRow]
}

func (s Search) fetch(req listing.Request) tea.Cmd {
	client := s.api
	return func() tea.Msg {
		page, err := client.ListProperties(context.Background(), req.Filter, req.Limit, req.Offset)
		return searchDataMsg{res: listing.Result{Gen: req.Gen, Page: page, Err: err}}
	}
}

func (s Search) loadStarred() tea.Cmd {
	client := s.api
	return func() tea.Msg {
		ids, err := client.Starred(context.Background())
		return starredSetMsg{ids: ids, err: err}
	}
}

func (s Search) loadFilterEnums() tea.Cmd {
	client := s.api
	return func() tea.Msg {
		var msg filterEnumsMsg
		if types, err := client.PropertyTypes(context.Background()); err == nil {
			msg.types = types
		}
		if outcodes, err := client.Outcodes(context.Background()); err == nil {
			msg.outcodes = outcodes
		}
		return msg
	}
}

func (s Search) hydrateSelection() tea.Cmd {
	p := s.Selected()
	if p == nil {
		return nil
	}
	if entry, ok := s.inter[p.ID]; ok && entry.hydrated {
		return nil
	}
	client := s.api
	id := p.ID
	return func() tea.Msg {
		msg := hydratedMsg{propertyID: id}
		if mine, err := client.MyRating(context.Background(), id); err == nil && mine != nil {
			msg.vote = mine.VoteType
		}
		if rec, err := client.GetStatus(context.Background(), id); err == nil && rec != nil {
			msg.status = rec.Status
		}
		return msg
	}
}

func (s Search) entry(id int) *interaction {
	if e, ok := s.inter[id]; ok {
		return e
	}
	e := &interaction{}
	s.inter[id] = e
	return e
}

func (s Search) Update(msg tea.Msg) (Search, tea.Cmd) {
	switch msg := msg.(type) {
	case searchDataMsg:
		if !s.ctrl.Apply(msg.res) {
			return s, nil
		}
		if errLine := s.ctrl.ErrMsg(); errLine != "" {
			return s, toast.Error("search failed: " + errLine)
		}
		if page := s.ctrl.Page(); page != nil && s.selectedRow >= len(page.Properties) {
			s.selectedRow = 0
		}
		return s, tea.Batch(s.loadStarred(), s.hydrateSelection())

	case starredSetMsg:
		if msg.err != nil {
			return s, nil
		}
		set := make(map[int]bool, len(msg.ids))
		for _, id := range msg.ids {
			set[id] = true
		}
		s.starred = set
		return s, nil

	case hydratedMsg:
		e := s.entry(msg.propertyID)
		if e.hydrated {
			return s, nil
		}
		e.vote = msg.vote
		e.status = msg.status
		e.hydrated = true
		return s, nil

	case filterEnumsMsg:
		s.typeOptions = msg.types
		s.outcodeOptions = msg.outcodes
		s.enumsLoaded = true
		return s, nil

	case starResultMsg:
		if msg.err != nil {
			s.starred[msg.propertyID] = msg.prev
			return s, toast.Error("star failed: " + shortError(msg.err))
		}
		return s, nil

	case voteResultMsg:
		if msg.err != nil {
			s.entry(msg.propertyID).vote = msg.prev
			return s, toast.Error("vote failed: " + shortError(msg.err))
		}
		return s, nil

	case statusResultMsg:
		if msg.err != nil {
			s.entry(msg.propertyID).status = msg.prev
			return s, toast.Error("status change failed: " + shortError(msg.err))
		}
		return s, nil

	case spinner.TickMsg:
		if s.ctrl.Loading() {
			var cmd tea.Cmd
			s.spin, cmd = s.spin.Update(msg)
			return s, cmd
		}
		return s, nil

	case tea.KeyMsg:
		if s.filterOpen {
			return s.updateFilterForm(msg)
		}
		return s.updateBrowsing(msg)
	}

	return s, nil
}

func (s Search) updateBrowsing(msg tea.KeyMsg) (Search, tea.Cmd) {
	page := s.ctrl.Page()
	rows := 0
	if page != nil {
		rows = len(page.Properties)
	}

	switch msg.String() {
	case "up", "k":
		if s.selectedRow > 0 {
			s.selectedRow--
			return s, s.hydrateSelection()
		}
	case "down", "j":
		if rows > 0 && s.selectedRow < rows-1 {
			s.selectedRow++
			return s, s.hydrateSelection()
		}
	case "f":
		s.filterOpen = true
		s.filterFocus = 0
		if !s.enumsLoaded {
			return s, tea.Batch(s.focusFilter(0), s.loadFilterEnums())
		}
		return s, s.focusFilter(0)
	case "r":
		return s, tea.Batch(s.fetch(s.ctrl.SetPage(s.ctrl.CurrentPage())), s.spin.Tick)
	case "[":
		if !s.ctrl.Loading() && s.ctrl.CurrentPage() > 0 {
			s.selectedRow = 0
			return s, tea.Batch(s.fetch(s.ctrl.SetPage(s.ctrl.CurrentPage()-1)), s.spin.Tick)
		}
	case "]":
		if !s.ctrl.Loading() && s.ctrl.CurrentPage() < s.ctrl.TotalPages()-1 {
			s.selectedRow = 0
			return s, tea.Batch(s.fetch(s.ctrl.SetPage(s.ctrl.CurrentPage()+1)), s.spin.Tick)
		}
	case "1", "2", "3", "4", "5", "6", "7", "8", "9", "0":
		if s.ctrl.Loading() {
			return s, nil
		}
		pageNum := int(msg.String()[0] - '0')
		if pageNum == 0 {
			pageNum = 10
		}
		if pageNum <= s.ctrl.TotalPages() {
			s.selectedRow = 0
			return s, tea.Batch(s.fetch(s.ctrl.SetPage(pageNum-1)), s.spin.Tick)
		}
	case "s":
		return s.toggleStar()
	case "u":
		return s.vote(models.VoteUp)
	case "d":
		return s.vote(models.VoteDown)
	case "t":
		return s.cycleStatus()
	case "enter":
		if p := s.Selected(); p != nil {
			id := p.ID
			return s, func() tea.Msg { return OpenDetailMsg{PropertyID: id} }
		}
	}
	return s, nil
}

// toggleStar flips the star locally first and reverts if the API disagrees.
func (s Search) toggleStar() (Search, tea.Cmd) {
	p := s.Selected()
	if p == nil {
		return s, nil
	}
	id := p.ID
	prev := s.starred[id]
	s.starred[id] = !prev

	client := s.api
	return s, func() tea.Msg {
		var err error
		if prev {
			err = client.Unstar(context.Background(), id)
		} else {
			err = client.Star(context.Background(), id)
		}
		return starResultMsg{propertyID: id, prev: prev, err: err}
	}
}

func (s Search) vote(v models.VoteType) (Search, tea.Cmd) {
	p := s.Selected()
	if p == nil {
		return s, nil
	}
	id := p.ID
	e := s.entry(id)
	prev := e.vote
	if prev == v {
		return s, nil
	}
	e.vote = v

	client := s.api
	return s, func() tea.Msg {
		_, err := client.CreateRating(context.Background(), id, v)
		return voteResultMsg{propertyID: id, prev: prev, err: err}
	}
}

var statusCycle = []models.PropertyStatus{
	"", models.StatusInterested, models.StatusViewing, models.StatusOffer, models.StatusAccepted,
}

func (s Search) cycleStatus() (Search, tea.Cmd) {
	p := s.Selected()
	if p == nil {
		return s, nil
	}
	id := p.ID
	e := s.entry(id)
	prev := e.status

	next := statusCycle[1]
	for i, st := range statusCycle {
		if st == prev && i < len(statusCycle)-1 {
			next = statusCycle[i+1]
			break
		}
	}
	e.status = next

	client := s.api
	return s, func() tea.Msg {
		_, err := client.SetStatus(context.Background(), id, next, "")
		return statusResultMsg{propertyID: id, prev: prev, err: err}
	}
}

func (s Search) updateFilterForm(msg tea.KeyMsg) (Search, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.filterOpen = false
		return s, nil
	case "tab", "down":
		s.filterFocus = (s.filterFocus + 1) % filterFieldCount
		return s, s.focusFilter(s.filterFocus)
	case "shift+tab", "up":
		s.filterFocus = (s.filterFocus + filterFieldCount - 1) % filterFieldCount
		return s, s.focusFilter(s.filterFocus)
	case "enter":
		f, err := s.parseFilter()
		if err != nil {
			return s, toast.Warn(err.Error())
		}
		s.filterOpen = false
		s.selectedRow = 0
		s.inter = make(map[int]*interaction)
		return s, tea.Batch(s.fetch(s.ctrl.ApplyFilters(f)), s.spin.Tick)
	}

	var cmd tea.Cmd
	s.inputs[s.filterFocus], cmd = s.inputs[s.filterFocus].Update(msg)
	return s, cmd
}

func (s Search) focusFilter(idx int) tea.Cmd {
	for i := range s.inputs {
		if i == idx {
			continue
		}
		s.inputs[i].Blur()
	}
	return s.inputs[idx].Focus()
}

func (s Search) parseFilter() (models.Filter, error) {
	f := models.Filter{
		Query:          strings.TrimSpace(s.inputs[filterQuery].Value()),
		PropertyType:   strings.TrimSpace(s.inputs[filterType].Value()),
		FurnishingType: strings.TrimSpace(s.inputs[filterFurnishing].Value()),
		Outcode:        strings.ToUpper(strings.TrimSpace(s.inputs[filterOutcode].Value())),
	}

	price := func(idx int, name string) (*float64, error) {
		raw := strings.TrimSpace(s.inputs[idx].Value())
		if raw == "" {
			return nil, nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("%s must be a non-negative number", name)
		}
		return &v, nil
	}
	count := func(idx int, name string) (*int, error) {
		raw := strings.TrimSpace(s.inputs[idx].Value())
		if raw == "" {
			return nil, nil
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("%s must be a non-negative whole number", name)
		}
		return &v, nil
	}

	var err error
	if f.MinPrice, err = price(filterMinPrice, "min price"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = price(filterMaxPrice, "max price"); err != nil {
		return f, err
	}
	if f.MinBedrooms, err = count(filterMinBeds, "min beds"); err != nil {
		return f, err
	}
	if f.MaxBedrooms, err = count(filterMaxBeds, "max beds"); err != nil {
		return f, err
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return f, fmt.Errorf("min price is above max price")
	}
	return f, nil
}

func (s Search) View() string {
	header := s.renderHeader()
	var body string
	if s.filterOpen {
		body = s.renderFilterForm()
	} else {
		body = s.renderTable()
	}
	pager := s.renderPager()

	return lipgloss.JoinVertical(lipgloss.Left, header, body, pager)
}

func (s Search) renderHeader() string {
	total := 0
	if page := s.ctrl.Page(); page != nil {
		total = page.TotalCount
	}

	status := ""
	if s.ctrl.Loading() {
		status = s.spin.View() + " loading"
	} else if errLine := s.ctrl.ErrMsg(); errLine != "" {
		status = styles.StatusError.Render(truncate(errLine, 60))
	}

	return styles.Title.Render("Search") +
		styles.StatValue.Render(fmt.Sprintf("  %d listings", total)) +
		"  " + styles.Muted.Render(s.ctrl.Filters().Summary()) +
		"  " + status
}

func (s Search) renderFilterForm() string {
	var lines []string
	for i := range s.inputs {
		label := styles.InputLabel.Render(filterLabels[i])
		if i == s.filterFocus {
			label = styles.InputLabelFocused.Render(filterLabels[i])
		}
		lines = append(lines, label+s.inputs[i].View())
	}
	if len(s.typeOptions) > 0 {
		lines = append(lines, styles.Muted.Render(truncate("Types: "+strings.Join(s.typeOptions, ", "), 76)))
	}
	if len(s.outcodeOptions) > 0 {
		lines = append(lines, styles.Muted.Render(truncate("Outcodes: "+strings.Join(s.outcodeOptions, ", "), 76)))
	}
	lines = append(lines, "", styles.Muted.Render("enter apply   esc cancel   tab next field"))
	return styles.CardBorder.Render(strings.Join(lines, "\n"))
}

func (s Search) renderTable() string {
	page := s.ctrl.Page()
	if page == nil {
		return styles.Muted.Render("Loading listings...")
	}
	if len(page.Properties) == 0 {
		return styles.Muted.Render("No listings match the current filters. Press f to adjust them.")
	}

	header := fmt.Sprintf("  %-36s %-7s %-12s %3s %4s %-10s %5s %-10s",
		"Address", "Area", "Price", "Bed", "Bath", "Type", "Score", "Status")
	rows := styles.TableHeader.Render(header) + "\n"

	for i, p := range page.Properties {
		star := " "
		if s.starred[p.ID] {
			star = styles.Starred.Render("★")
		}

		vote := " "
		status := ""
		if e, ok := s.inter[p.ID]; ok {
			switch e.vote {
			case models.VoteUp:
				vote = styles.StatusSuccess.Render("▲")
			case models.VoteDown:
				vote = styles.StatusError.Render("▼")
			}
			status = string(e.status)
		}

		row := fmt.Sprintf("%s %-36s %-7s %-12s %3s %4s %-10s %4.1f%s %-10s",
			star,
			truncate(p.FullAddress, 36),
			truncate(p.Outcode, 7),
			formatPrice(p.Price),
			formatCount(p.Bedrooms),
			formatCount(p.Bathrooms),
			truncate(p.PropertyType, 10),
			p.Score,
			vote,
			status,
		)

		if i == s.selectedRow {
			rows += styles.TableSelected.Render(row) + "\n"
		} else {
			rows += row + "\n"
		}
	}
	return rows
}

func (s Search) renderPager() string {
	totalPages := s.ctrl.TotalPages()
	if totalPages <= 1 {
		return styles.Muted.Render("  f filter  s star  u/d vote  t status  enter details")
	}

	var parts []string
	for _, p := range listing.Window(s.ctrl.CurrentPage(), totalPages) {
		if p == listing.EllipsisMarker {
			parts = append(parts, styles.Muted.Render("…"))
			continue
		}
		label := fmt.Sprintf("%d", p+1)
		if p == s.ctrl.CurrentPage() {
			parts = append(parts, styles.PagerCurrent.Render("["+label+"]"))
		} else {
			parts = append(parts, label)
		}
	}

	pager := "  Page " + strings.Join(parts, " ")
	hints := styles.Muted.Render("   [ ] prev/next  1-0 jump  f filter  s star  u/d vote  t status  enter details")
	return pager + hints
}

func shortError(err error) string {
	if err == nil {
		return ""
	}
	if api.IsNetwork(err) {
		return "cannot reach the rentals api"
	}
	return truncate(err.Error(), 80)
}
