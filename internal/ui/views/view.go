package views

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"ticketlist/internal/controller"
	"ticketlist/internal/domain"
	perr "ticketlist/internal/errors"
	"ticketlist/internal/listing"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width       int
	Height      int
	Snapshot    controller.Snapshot
	Searchable  bool
	Sortable    bool
	Searching   bool
	SearchInput string // Rendered active text input while Searching
	Spinner     string
	Notice      string
	HelpModel   help.Model
	Keys        help.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Styles exposes the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

var surfaceTitles = map[domain.Surface]string{
	domain.SurfaceCatalog:   "Explore events",
	domain.SurfaceBookings:  "My bookings",
	domain.SurfaceOrganizer: "My events",
}

var categoryLabels = map[domain.Category]string{
	domain.CategoryAll:        "All",
	domain.CategoryForYou:     "For You",
	domain.CategoryConcert:    "Concerts",
	domain.CategoryWorkshop:   "Workshops",
	domain.CategoryConference: "Conferences",
	domain.CategoryTheater:    "Theater",
	domain.CategoryOther:      "Other",
}

var sortLabels = map[domain.SortField]string{
	domain.SortByDate:   "Date",
	domain.SortByStatus: "Status",
	domain.SortBySold:   "Sold",
	domain.SortByPrice:  "Price",
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	snap := state.Snapshot
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(state))
	content.WriteString("\n")

	if state.Searchable {
		content.WriteString(r.renderTabs(snap.Filter.Category))
		content.WriteString("\n")
		content.WriteString(r.renderSearchLine(state))
		content.WriteString("\n\n")
	}
	if state.Sortable {
		content.WriteString(r.renderSortHeader(snap.Sort))
		content.WriteString("\n")
	}

	content.WriteString(r.renderRows(snap))
	content.WriteString(r.renderFooter(snap))

	if state.Notice != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Notice.Render(state.Notice))
	}

	if state.Keys != nil {
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(state.HelpModel.View(state.Keys)))
	}

	return r.styles.Main.Render(content.String())
}

func (r *Renderer) renderTitle(state ViewState) string {
	logo := r.styles.Title.Render("ticketlist · " + surfaceTitles[state.Snapshot.Surface])

	indicator := ""
	switch state.Snapshot.Status {
	case domain.StatusLoading:
		indicator = r.styles.StatusLoading.Render(state.Spinner + " Loading")
	case domain.StatusError:
		indicator = r.styles.StatusError.Render("✗ " + errorText(state.Snapshot.Err))
	}
	if indicator == "" || state.Width == 0 {
		if indicator == "" {
			return logo
		}
		return logo + "  " + indicator
	}

	padding := state.Width - lipgloss.Width(logo) - lipgloss.Width(indicator) - 4
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + indicator
}

func (r *Renderer) renderTabs(active domain.Category) string {
	tabs := make([]string, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		label := categoryLabels[c]
		if c == active {
			tabs = append(tabs, r.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, r.styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (r *Renderer) renderSearchLine(state ViewState) string {
	snap := state.Snapshot
	var b strings.Builder

	if state.Searching {
		b.WriteString(state.SearchInput)
	} else if snap.Search.Raw != "" {
		b.WriteString(fmt.Sprintf("Search: %s", snap.Search.Raw))
		if snap.Search.Raw != snap.Search.Settled {
			b.WriteString(r.styles.Dim.Render(" …"))
		}
	} else {
		b.WriteString(r.styles.Dim.Render("Press / to search"))
	}

	if label := dateLabel(snap); label != "" {
		b.WriteString("  ")
		b.WriteString(r.styles.Filter.Render(fmt.Sprintf("[Dates: %s]", label)))
	}
	return b.String()
}

func dateLabel(snap controller.Snapshot) string {
	if snap.FilterLabel != "" && snap.FilterLabel != "Custom" {
		return snap.FilterLabel
	}
	f := snap.Filter
	if f.DateStart == nil && f.DateEnd == nil {
		return ""
	}
	from, to := "…", "…"
	if f.DateStart != nil {
		from = f.DateStart.Format("Jan 2")
	}
	if f.DateEnd != nil {
		to = f.DateEnd.Format("Jan 2")
	}
	return from + " – " + to
}

func (r *Renderer) renderSortHeader(sort domain.SortDescriptor) string {
	cols := make([]string, 0, len(domain.SortFields))
	for _, f := range domain.SortFields {
		label := sortLabels[f]
		if f == sort.Field {
			arrow := "▲"
			if sort.Descending {
				arrow = "▼"
			}
			cols = append(cols, r.styles.SortActive.Render(label+" "+arrow))
		} else {
			cols = append(cols, r.styles.Header.Render(label))
		}
	}
	return "Sort: " + strings.Join(cols, "  ")
}

func (r *Renderer) renderRows(snap controller.Snapshot) string {
	var b strings.Builder
	items := snap.Result.Items

	if len(items) == 0 {
		switch snap.Status {
		case domain.StatusIdle, domain.StatusLoading:
			b.WriteString(r.styles.Dim.Render("Loading…"))
		case domain.StatusSuccess:
			b.WriteString(r.styles.Dim.Render(emptyText(snap)))
		case domain.StatusError:
			b.WriteString(r.styles.StatusError.Render("Nothing to show."))
		}
		b.WriteString("\n")
		return b.String()
	}

	for _, rec := range items {
		title := rec.Title
		if title == "" {
			title = "(untitled)"
		}
		line := fmt.Sprintf("#%-5d %s", rec.ID, r.styles.Row.Render(title))
		if rec.Status != "" {
			status := lipgloss.NewStyle().Foreground(lipgloss.Color(StatusColor(rec.Status))).Render(rec.Status)
			line += "  " + status
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func emptyText(snap controller.Snapshot) string {
	switch {
	case snap.Surface == domain.SurfaceCatalog && snap.Filter.Category == domain.CategoryForYou:
		return "No recommendations yet."
	case snap.Surface == domain.SurfaceBookings:
		return "You have no bookings."
	case snap.Surface == domain.SurfaceOrganizer:
		return "You have not created any events."
	default:
		return "No events found."
	}
}

func (r *Renderer) renderFooter(snap controller.Snapshot) string {
	parts := []string{fmt.Sprintf("Page %d", snap.Page.Number)}
	if snap.Page.Number > 1 {
		parts = append(parts, "← prev")
	}
	if snap.HasMore {
		parts = append(parts, "next →")
	}
	parts = append(parts, r.styles.StatusStyle(snap.Status).Render(snap.Status.String()))
	return r.styles.Status.Render(strings.Join(parts, " · "))
}

func errorText(err error) string {
	if err == nil {
		return "Failed"
	}
	switch perr.KindOf(err) {
	case perr.KindSessionInvalid:
		return "Session expired, sign in again"
	case perr.KindTransient:
		var se *listing.StatusError
		if errors.As(err, &se) {
			return fmt.Sprintf("Could not load (HTTP %d), press r to retry", se.Code)
		}
		return "Could not load, press r to retry"
	}
	return err.Error()
}
