// Package tui is the interactive item picker.
package tui

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/semmy-space/lnch/internal/store"
	"github.com/semmy-space/lnch/internal/target"
)

// Lister provides the items to pick from
type Lister interface {
	List() ([]store.Item, error)
}

// Dispatcher opens the picked item
type Dispatcher interface {
	Dispatch(ctx context.Context, t target.Target) error
}

// Options configure the picker
type Options struct {
	Items      Lister
	Dispatcher Dispatcher
	Logger     *log.Logger

	// ItemsPath is watched for changes when set
	ItemsPath string

	// StayOpen keeps the picker running after a successful dispatch
	StayOpen bool
}

type itemsLoadedMsg struct {
	items []store.Item
	err   error
}

type dispatchedMsg struct {
	label string
	err   error
}

// Model is the bubbletea model of the picker.
type Model struct {
	opts    Options
	ctx     context.Context
	input   textinput.Model
	changes <-chan struct{}

	items   []store.Item
	matches []int // indexes into items
	cursor  int

	status    string
	statusErr bool
	height    int
	quitting  bool

	// Opened is the label of the last item dispatched successfully
	Opened string
}

// New builds a picker model. The item list is loaded by Init.
func New(ctx context.Context, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}

	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Prompt = "› "
	ti.Focus()

	return Model{
		opts:   opts,
		ctx:    ctx,
		input:  ti,
		height: 20,
	}
}

// Init loads the items and starts listening for changes
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.load(), waitForChange(m.changes))
}

func (m Model) load() tea.Cmd {
	lister := m.opts.Items
	return func() tea.Msg {
		items, err := lister.List()
		return itemsLoadedMsg{items: items, err: err}
	}
}

func (m Model) dispatch(it store.Item) tea.Cmd {
	ctx, d := m.ctx, m.opts.Dispatcher
	return func() tea.Msg {
		return dispatchedMsg{label: it.Label(), err: d.Dispatch(ctx, it.Target())}
	}
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		return m, nil

	case itemsLoadedMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("failed to load items: %v", msg.err), true)
			return m, nil
		}
		m.items = msg.items
		m.refilter()
		return m, nil

	case itemsChangedMsg:
		m.opts.Logger.Printf("tui: item list changed, reloading")
		return m, tea.Batch(m.load(), waitForChange(m.changes))

	case dispatchedMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("%s: %v", msg.label, msg.err), true)
			return m, nil
		}
		m.Opened = msg.label
		m.setStatus("opened "+msg.label, false)
		if !m.opts.StayOpen {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "ctrl+p", "ctrl+k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n", "ctrl+j":
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			it, ok := m.Selected()
			if !ok {
				return m, nil
			}
			m.setStatus("opening "+it.Label()+"…", false)
			return m, m.dispatch(it)
		}
	}

	var cmd tea.Cmd
	prev := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != prev {
		m.refilter()
	}
	return m, cmd
}

// Selected returns the highlighted item
func (m Model) Selected() (store.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.matches) {
		return store.Item{}, false
	}
	return m.items[m.matches[m.cursor]], true
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m *Model) refilter() {
	m.matches = Filter(m.items, m.input.Value())
	if m.cursor >= len(m.matches) {
		m.cursor = len(m.matches) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Filter returns the indexes of items matching every whitespace separated
// term of query, case-insensitively, against name, path and type.
func Filter(items []store.Item, query string) []int {
	terms := strings.Fields(strings.ToLower(query))

	matches := make([]int, 0, len(items))
	for i, it := range items {
		hay := strings.ToLower(it.Name + " " + it.Path + " " + it.Type.String())
		ok := true
		for _, term := range terms {
			if !strings.Contains(hay, term) {
				ok = false
				break
			}
		}
		if ok {
			matches = append(matches, i)
		}
	}
	return matches
}

// Run shows the picker until an item is opened or the user quits. It
// returns the label of the opened item, or "" when nothing was opened.
func Run(ctx context.Context, opts Options) (string, error) {
	m := New(ctx, opts)

	if opts.ItemsPath != "" {
		changes, stop, err := watchFile(opts.ItemsPath, m.opts.Logger)
		if err != nil {
			m.opts.Logger.Printf("tui: not watching %s: %v", opts.ItemsPath, err)
		} else {
			defer stop()
			m.changes = changes
		}
	}

	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return "", err
	}
	return final.(Model).Opened, nil
}
