package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rentscout/api"
	"rentscout/listing"
	"rentscout/models"
	"rentscout/toast"
	"rentscout/ui/styles"
)

type feedDataMsg struct {
	gen  uint64
	page *models.FeedPage
	err  error
}

// Feed shows the personalized feed: listings ranked against the profile
// preferences, newest matches first. It pages like search but takes no
// filters; the server decides what is relevant.
type Feed struct {
	api         *api.Client
	spin        spinner.Model
	page        *models.FeedPage
	gen         uint64
	currentPage int
	pendingPage int
	loading     bool
	selectedRow int
	width       int
	height      int
}

func NewFeed(client *api.Client) Feed {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.SecondaryColor)
	return Feed{api: client, spin: sp}
}

type feedStartMsg struct{}

// Init defers the first fetch to Update via a self-message so the generation
// bump lands on the retained model, not a discarded copy.
func (f Feed) Init() tea.Cmd {
	return func() tea.Msg { return feedStartMsg{} }
}

func (f Feed) SetSize(w, h int) Feed {
	f.width = w
	f.height = h
	return f
}

func (f Feed) Capturing() bool {
	return false
}

func (f Feed) totalPages() int {
	if f.page == nil || f.page.TotalCount <= 0 {
		return 0
	}
	return (f.page.TotalCount + listing.PageSize - 1) / listing.PageSize
}

func (f Feed) load(pageIndex int) (Feed, tea.Cmd) {
	f.gen++
	f.loading = true
	f.pendingPage = pageIndex
	gen := f.gen
	client := f.api
	return f, func() tea.Msg {
		page, err := client.PersonalizedFeed(context.Background(), listing.PageSize, pageIndex*listing.PageSize)
		return feedDataMsg{gen: gen, page: page, err: err}
	}
}

func (f Feed) Update(msg tea.Msg) (Feed, tea.Cmd) {
	switch msg := msg.(type) {
	case feedStartMsg:
		ff, cmd := f.load(0)
		return ff, tea.Batch(cmd, ff.spin.Tick)

	case feedDataMsg:
		if msg.gen != f.gen {
			return f, nil
		}
		f.loading = false
		if msg.err != nil {
			return f, toast.Error("feed failed: " + shortError(msg.err))
		}
		f.page = msg.page
		f.currentPage = f.pendingPage
		if f.selectedRow >= len(msg.page.Properties) {
			f.selectedRow = 0
		}
		return f, nil

	case spinner.TickMsg:
		if f.loading {
			var cmd tea.Cmd
			f.spin, cmd = f.spin.Update(msg)
			return f, cmd
		}
		return f, nil

	case tea.KeyMsg:
		rows := 0
		if f.page != nil {
			rows = len(f.page.Properties)
		}
		switch msg.String() {
		case "up", "k":
			if f.selectedRow > 0 {
				f.selectedRow--
			}
		case "down", "j":
			if rows > 0 && f.selectedRow < rows-1 {
				f.selectedRow++
			}
		case "r":
			ff, cmd := f.load(f.currentPage)
			return ff, tea.Batch(cmd, ff.spin.Tick)
		case "[":
			if !f.loading && f.currentPage > 0 {
				f.selectedRow = 0
				ff, cmd := f.load(f.currentPage - 1)
				return ff, tea.Batch(cmd, ff.spin.Tick)
			}
		case "]":
			if !f.loading && f.currentPage < f.totalPages()-1 {
				f.selectedRow = 0
				ff, cmd := f.load(f.currentPage + 1)
				return ff, tea.Batch(cmd, ff.spin.Tick)
			}
		case "enter":
			if f.page != nil && f.selectedRow < rows {
				id := f.page.Properties[f.selectedRow].ID
				return f, func() tea.Msg { return OpenDetailMsg{PropertyID: id} }
			}
		}
	}
	return f, nil
}

func (f Feed) View() string {
	status := ""
	if f.loading {
		status = f.spin.View() + " loading"
	}

	total := 0
	if f.page != nil {
		total = f.page.TotalCount
	}

	header := styles.Title.Render("For you") +
		styles.StatValue.Render(fmt.Sprintf("  %d matches", total)) +
		"  " + status

	if f.page == nil {
		return lipgloss.JoinVertical(lipgloss.Left, header, styles.Muted.Render("Loading your feed..."))
	}
	if len(f.page.Properties) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header,
			styles.Muted.Render("Nothing yet. Fill in your preferences on the Profile tab to get matches."))
	}

	tableHeader := fmt.Sprintf("%-40s %-7s %-12s %3s %-10s %5s",
		"Address", "Area", "Price", "Bed", "Type", "Score")
	rows := styles.TableHeader.Render(tableHeader) + "\n"
	for i, p := range f.page.Properties {
		row := fmt.Sprintf("%-40s %-7s %-12s %3s %-10s %5.1f",
			truncate(p.FullAddress, 40),
			truncate(p.Outcode, 7),
			formatPrice(p.Price),
			formatCount(p.Bedrooms),
			truncate(p.PropertyType, 10),
			p.Score,
		)
		if i == f.selectedRow {
			rows += styles.TableSelected.Render(row) + "\n"
		} else {
			rows += row + "\n"
		}
	}

	pager := ""
	if tp := f.totalPages(); tp > 1 {
		var parts []string
		for _, p := range listing.Window(f.currentPage, tp) {
			if p == listing.EllipsisMarker {
				parts = append(parts, styles.Muted.Render("…"))
				continue
			}
			label := fmt.Sprintf("%d", p+1)
			if p == f.currentPage {
				parts = append(parts, styles.PagerCurrent.Render("["+label+"]"))
			} else {
				parts = append(parts, label)
			}
		}
		pager = "  Page " + strings.Join(parts, " ") + styles.Muted.Render("   [ ] prev/next")
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, rows, pager)
}
