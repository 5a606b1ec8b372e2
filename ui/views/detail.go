package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rentscout/api"
	"rentscout/locations"
	"rentscout/models"
	"rentscout/toast"
	"rentscout/ui/styles"
)

type detailPropertyMsg struct {
	property *models.Property
	desc     string
	err      error
}

type detailCommentsMsg struct {
	comments []models.Comment
	err      error
}

type detailTravelMsg struct {
	times   []models.TravelTime
	hint    string
	err     error
}

type detailMetaMsg struct {
	starred bool
	vote    models.VoteType
	status  models.PropertyStatus
}

type commentAddedMsg struct {
	comment *models.Comment
	err     error
}

// Detail is the full-screen overlay for one listing: description, agent,
// ratings, comments, and travel times to the saved key locations.
type Detail struct {
	api        *api.Client
	locs       *locations.Manager
	propertyID int

	spin     spinner.Model
	property *models.Property
	desc     string
	comments []models.Comment
	times    []models.TravelTime
	travel   string
	starred  bool
	vote     models.VoteType
	status   models.PropertyStatus
	errLine  string

	commenting bool
	comment    textinput.Model
	scroll     int
	width      int
	height     int
}

func NewDetail(client *api.Client, locs *locations.Manager, propertyID int) Detail {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.SecondaryColor)

	in := textinput.New()
	in.Placeholder = "say something about this listing"
	in.CharLimit = 500
	in.Width = 60

	return Detail{api: client, locs: locs, propertyID: propertyID, spin: sp, comment: in}
}

func (d Detail) Init() tea.Cmd {
	return tea.Batch(d.loadProperty(), d.loadComments(), d.loadMeta(), d.spin.Tick)
}

func (d Detail) SetSize(w, h int) Detail {
	d.width = w
	d.height = h
	return d
}

func (d Detail) Capturing() bool {
	return d.commenting
}

func (d Detail) loadProperty() tea.Cmd {
	client := d.api
	id := d.propertyID
	return func() tea.Msg {
		p, err := client.GetProperty(context.Background(), id)
		if err != nil {
			return detailPropertyMsg{err: err}
		}
		desc := p.TextDescription
		if p.FormattedHTMLDescription != "" {
			if flat := api.DescriptionText(p.FormattedHTMLDescription); flat != "" {
				desc = flat
			}
		}
		return detailPropertyMsg{property: p, desc: desc}
	}
}

func (d Detail) loadComments() tea.Cmd {
	client := d.api
	id := d.propertyID
	return func() tea.Msg {
		comments, err := client.Comments(context.Background(), id)
		return detailCommentsMsg{comments: comments, err: err}
	}
}

func (d Detail) loadMeta() tea.Cmd {
	client := d.api
	id := d.propertyID
	return func() tea.Msg {
		msg := detailMetaMsg{}
		if ids, err := client.Starred(context.Background()); err == nil {
			for _, starredID := range ids {
				if starredID == id {
					msg.starred = true
					break
				}
			}
		}
		if mine, err := client.MyRating(context.Background(), id); err == nil && mine != nil {
			msg.vote = mine.VoteType
		}
		if rec, err := client.GetStatus(context.Background(), id); err == nil && rec != nil {
			msg.status = rec.Status
		}
		return msg
	}
}

// loadTravelTimes waits for the property because it needs its coordinates.
func (d Detail) loadTravelTimes(p *models.Property) tea.Cmd {
	locs := d.locs
	id := d.propertyID
	return func() tea.Msg {
		if p.Latitude == nil || p.Longitude == nil {
			return detailTravelMsg{hint: "no coordinates for this listing"}
		}
		times, err := locs.TravelTimes(context.Background(), id)
		if err != nil {
			return detailTravelMsg{err: err}
		}
		if times == nil {
			return detailTravelMsg{hint: "no key locations saved, add them in the Profile tab"}
		}
		return detailTravelMsg{times: times}
	}
}

func (d Detail) Update(msg tea.Msg) (Detail, tea.Cmd) {
	switch msg := msg.(type) {
	case detailPropertyMsg:
		if msg.err != nil {
			d.errLine = shortError(msg.err)
			return d, nil
		}
		d.property = msg.property
		d.desc = msg.desc
		return d, d.loadTravelTimes(msg.property)

	case detailCommentsMsg:
		if msg.err == nil {
			d.comments = msg.comments
		}
		return d, nil

	case detailTravelMsg:
		switch {
		case msg.err != nil:
			d.travel = shortError(msg.err)
		case msg.hint != "":
			d.travel = msg.hint
		default:
			d.times = msg.times
			d.travel = ""
		}
		return d, nil

	case detailMetaMsg:
		d.starred = msg.starred
		d.vote = msg.vote
		d.status = msg.status
		return d, nil

	case commentAddedMsg:
		d.commenting = false
		d.comment.Blur()
		d.comment.SetValue("")
		if msg.err != nil {
			return d, toast.Error("comment failed: " + shortError(msg.err))
		}
		if msg.comment != nil {
			d.comments = append([]models.Comment{*msg.comment}, d.comments...)
		}
		return d, toast.Success("comment added")

	case starResultMsg:
		if msg.err != nil && msg.propertyID == d.propertyID {
			d.starred = msg.prev
			return d, toast.Error("star failed: " + shortError(msg.err))
		}
		return d, nil

	case spinner.TickMsg:
		if d.property == nil && d.errLine == "" {
			var cmd tea.Cmd
			d.spin, cmd = d.spin.Update(msg)
			return d, cmd
		}
		return d, nil

	case tea.KeyMsg:
		if d.commenting {
			switch msg.String() {
			case "esc":
				d.commenting = false
				d.comment.Blur()
				return d, nil
			case "enter":
				text := strings.TrimSpace(d.comment.Value())
				if text == "" {
					return d, nil
				}
				client := d.api
				id := d.propertyID
				return d, func() tea.Msg {
					c, err := client.AddComment(context.Background(), id, text)
					return commentAddedMsg{comment: c, err: err}
				}
			}
			var cmd tea.Cmd
			d.comment, cmd = d.comment.Update(msg)
			return d, cmd
		}

		switch msg.String() {
		case "c":
			d.commenting = true
			return d, d.comment.Focus()
		case "s":
			prev := d.starred
			d.starred = !prev
			client := d.api
			id := d.propertyID
			return d, func() tea.Msg {
				var err error
				if prev {
					err = client.Unstar(context.Background(), id)
				} else {
					err = client.Star(context.Background(), id)
				}
				return starResultMsg{propertyID: id, prev: prev, err: err}
			}
		case "up", "k":
			if d.scroll > 0 {
				d.scroll--
			}
		case "down", "j":
			d.scroll++
		}
	}

	return d, nil
}

func (d Detail) View() string {
	if d.errLine != "" {
		return styles.StatusError.Render("Could not load listing: "+d.errLine) + "\n" +
			styles.Muted.Render("esc back")
	}
	if d.property == nil {
		return d.spin.View() + " loading listing"
	}

	lines := d.contentLines()

	visible := d.height - 4
	if visible < 10 {
		visible = 10
	}
	maxScroll := len(lines) - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	scroll := d.scroll
	if scroll > maxScroll {
		scroll = maxScroll
	}
	end := scroll + visible
	if end > len(lines) {
		end = len(lines)
	}

	body := strings.Join(lines[scroll:end], "\n")
	footer := styles.Muted.Render("esc back   s star   c comment   j/k scroll")
	return lipgloss.JoinVertical(lipgloss.Left, body, "", footer)
}

func (d Detail) contentLines() []string {
	p := d.property
	textWidth := d.width - 8
	if textWidth <= 0 {
		textWidth = 72
	}

	star := ""
	if d.starred {
		star = "  " + styles.Starred.Render("★ starred")
	}

	var lines []string
	lines = append(lines,
		styles.Title.Render(truncate(p.ListingTitle, textWidth))+star,
		styles.StatLabel.Render(truncate(p.FullAddress, textWidth)),
		"",
		styles.StatValue.Render(formatPrice(p.Price))+
			styles.Muted.Render(fmt.Sprintf("   %s bed  %s bath  %s  %s",
				formatCount(p.Bedrooms), formatCount(p.Bathrooms),
				p.PropertyType, p.FurnishingType)),
	)

	meta := fmt.Sprintf("score %.1f (%d votes, %d up / %d down)", p.Score, p.TotalVotes, p.Upvotes, p.Downvotes)
	switch d.vote {
	case models.VoteUp:
		meta += "  " + styles.StatusSuccess.Render("you voted up")
	case models.VoteDown:
		meta += "  " + styles.StatusError.Render("you voted down")
	}
	if d.status != "" {
		meta += "  " + styles.StatusPending.Render("status: "+string(d.status))
	}
	lines = append(lines, styles.Muted.Render(meta), "")

	if d.desc != "" {
		for _, para := range strings.Split(d.desc, "\n") {
			lines = append(lines, wrapText(para, textWidth)...)
		}
		lines = append(lines, "")
	}

	lines = append(lines, styles.Title.Render("Travel times"))
	if d.travel != "" {
		lines = append(lines, styles.Muted.Render(d.travel))
	} else if len(d.times) == 0 {
		lines = append(lines, d.spin.View()+" calculating")
	} else {
		for _, t := range d.times {
			lines = append(lines, formatTravelTime(t))
		}
	}
	lines = append(lines, "")

	if p.AgentName != "" {
		agent := p.AgentName
		if p.AgentPhone != "" {
			agent += "  " + p.AgentPhone
		}
		lines = append(lines, styles.Title.Render("Agent"), agent, "")
	}

	lines = append(lines, styles.Title.Render(fmt.Sprintf("Comments (%d)", len(d.comments))))
	if d.commenting {
		lines = append(lines, d.comment.View(), styles.Muted.Render("enter post   esc cancel"))
	}
	if len(d.comments) == 0 && !d.commenting {
		lines = append(lines, styles.Muted.Render("none yet, press c to add one"))
	}
	for _, c := range d.comments {
		stamp := styles.Muted.Render(formatDate(c.CreatedAt))
		lines = append(lines, stamp)
		lines = append(lines, wrapText(c.Comment, textWidth)...)
	}

	lines = append(lines, "", styles.Muted.Render(truncate(p.ListingURL, textWidth)))
	return lines
}
