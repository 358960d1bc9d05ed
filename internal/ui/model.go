package ui

import (
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"ticketlist/internal/controller"
	"ticketlist/internal/domain"
	perr "ticketlist/internal/errors"
	"ticketlist/internal/logger"
	"ticketlist/internal/ui/views"
)

// Controller is what the model drives; *controller.Controller satisfies it
type Controller interface {
	Spec() controller.SurfaceSpec
	Start()
	TypeSearch(raw string) error
	SearchNow() error
	SetCategory(c domain.Category) error
	ApplyDatePreset(p domain.DatePreset) error
	SetCustomRange(from, to *time.Time) error
	ClearDates() error
	SelectSort(f domain.SortField) error
	CycleSort() error
	NextPage() bool
	PreviousPage() bool
	Refresh()
	Snapshot() controller.Snapshot
}

// Model represents the UI state
type Model struct {
	ctl  Controller
	spec controller.SurfaceSpec
	snap controller.Snapshot
	log  *logger.Logger

	width  int
	height int

	keys     keyMap
	help     help.Model
	search   textinput.Model
	dates    textinput.Model
	spinner  spinner.Model
	renderer *views.Renderer
	helpText *HelpRenderer

	searching bool
	ranging   bool
	loc       *time.Location
	notice    string
	readyMark bool // Print a marker once rendered, for the pty test driver

	// Program reference for terminal management
	program *tea.Program
	helpOps *HelpOps
}

// NewModel creates a new UI model
func NewModel(ctl Controller) *Model {
	spec := ctl.Spec()

	ti := textinput.New()
	ti.Prompt = "Search: "
	ti.Placeholder = "title, venue…"
	ti.CharLimit = 120

	di := textinput.New()
	di.Prompt = "Dates: "
	di.Placeholder = "2026-10-20..2026-10-25"
	di.CharLimit = 32

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	keys := newKeyMap(spec.Searchable, spec.Sortable)

	return &Model{
		ctl:       ctl,
		spec:      spec,
		snap:      ctl.Snapshot(),
		log:       logger.Named("ui"),
		keys:      keys,
		help:      help.New(),
		search:    ti,
		dates:     di,
		loc:       time.Local,
		spinner:   sp,
		renderer:  views.NewRenderer(),
		helpText:  NewHelpRenderer(keys),
		readyMark: os.Getenv("TICKETLIST_E2E_TEST") == "1",
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Init starts the first fetch and the spinner
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			m.ctl.Start()
			return startedMsg{}
		},
		m.spinner.Tick,
	)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case startedMsg, EventMsg:
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case helpPagerMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("help pager failed")
			m.notice = "Could not open help: " + msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		if m.ranging {
			return m.updateRange(msg)
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.searching = false
		m.search.Blur()
		m.report(m.ctl.SearchNow())
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		m.searching = false
		m.search.Blur()
		return m, nil

	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.report(m.ctl.TypeSearch(m.search.Value()))
	return m, cmd
}

func (m *Model) updateRange(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		from, to, err := parseDateRange(m.dates.Value(), m.loc)
		if err == nil {
			err = m.ctl.SetCustomRange(from, to)
		}
		if err != nil {
			// stay in the prompt so the input can be corrected
			m.report(err)
			return m, nil
		}
		m.ranging = false
		m.notice = ""
		m.dates.Blur()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		m.ranging = false
		m.notice = ""
		m.dates.Blur()
		return m, nil

	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.dates, cmd = m.dates.Update(msg)
	return m, cmd
}

func (m *Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		if m.helpOps == nil {
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		return m, showHelpCmd(m.helpOps, m.helpText.RenderHelpContentPlain())

	case key.Matches(msg, m.keys.NextPage):
		m.ctl.NextPage()

	case key.Matches(msg, m.keys.PrevPage):
		m.ctl.PreviousPage()

	case key.Matches(msg, m.keys.Refresh):
		m.ctl.Refresh()

	case m.spec.Searchable && key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(m.snap.Search.Raw)
		m.search.CursorEnd()
		return m, m.search.Focus()

	case m.spec.Searchable && key.Matches(msg, m.keys.NextTab):
		m.report(m.ctl.SetCategory(stepCategory(m.snap.Filter.Category, 1)))

	case m.spec.Searchable && key.Matches(msg, m.keys.PrevTab):
		m.report(m.ctl.SetCategory(stepCategory(m.snap.Filter.Category, -1)))

	case m.spec.Searchable && key.Matches(msg, m.keys.Today):
		m.report(m.ctl.ApplyDatePreset(domain.PresetToday))

	case m.spec.Searchable && key.Matches(msg, m.keys.Tomorrow):
		m.report(m.ctl.ApplyDatePreset(domain.PresetTomorrow))

	case m.spec.Searchable && key.Matches(msg, m.keys.Weekend):
		m.report(m.ctl.ApplyDatePreset(domain.PresetWeekend))

	case m.spec.Searchable && key.Matches(msg, m.keys.DateRange):
		m.ranging = true
		m.dates.SetValue("")
		return m, m.dates.Focus()

	case m.spec.Searchable && key.Matches(msg, m.keys.ClearDate):
		m.report(m.ctl.ClearDates())

	case m.spec.Sortable && key.Matches(msg, m.keys.CycleSort):
		m.report(m.ctl.CycleSort())

	case m.spec.Sortable && key.Matches(msg, m.keys.FlipSort):
		m.report(m.ctl.SelectSort(m.snap.Sort.Field))

	default:
		return m, nil
	}

	m.refresh()
	return m, nil
}

// report shows rejected input as a notice
func (m *Model) report(err error) {
	if err == nil {
		return
	}
	if perr.KindOf(err) != perr.KindInvalidFilterInput {
		m.log.Error().Err(err).Msg("unexpected controller error")
	}
	if e, ok := perr.As(err); ok {
		m.notice = e.Message()
		return
	}
	m.notice = err.Error()
}

func (m *Model) refresh() {
	m.snap = m.ctl.Snapshot()
}

// View renders the UI
func (m *Model) View() string {
	input := m.search.View()
	if m.ranging {
		input = m.dates.View()
	}
	out := m.renderer.Render(views.ViewState{
		Width:       m.width,
		Height:      m.height,
		Snapshot:    m.snap,
		Searchable:  m.spec.Searchable,
		Sortable:    m.spec.Sortable,
		Searching:   m.searching || m.ranging,
		SearchInput: input,
		Spinner:     m.spinner.View(),
		Notice:      m.notice,
		HelpModel:   m.help,
		Keys:        m.keys,
	})
	if m.readyMark {
		out += "\n__READY__"
	}
	return out
}

func stepCategory(current domain.Category, step int) domain.Category {
	n := len(domain.Categories)
	idx := 0
	for i, c := range domain.Categories {
		if c == current {
			idx = i
			break
		}
	}
	return domain.Categories[((idx+step)%n+n)%n]
}
