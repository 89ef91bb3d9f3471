package internal

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// boardTop is the row the board starts on, below the title and a blank line.
const (
	boardTop  = 2
	boardLeft = 1
)

type appKeyMap struct {
	Quit       key.Binding
	AddColumn  key.Binding
	DropColumn key.Binding
	Reload     key.Binding
	Help       key.Binding
}

func (k appKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AddColumn, k.DropColumn, k.Reload, k.Help, k.Quit}
}

func (k appKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.AddColumn, k.DropColumn},
		{k.Reload, k.Help, k.Quit},
	}
}

var appKeys = appKeyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	AddColumn:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "add column")),
	DropColumn: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "remove column")),
	Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	statusStyle = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// App hosts a Board backed by a Store. Every committed drag is saved.
type App struct {
	board  *Board
	store  *Store
	logger *log.Logger
	help   help.Model

	cards    []StoredCard // last state read from or written to disk
	minCols  int
	status   string
	err      error
	quitting bool
}

// NewApp builds the board from cfg and the cards in store.
func NewApp(cfg *Config, store *Store, logger *log.Logger) (*App, error) {
	board := NewBoard()
	board.SetLogger(logger)
	if err := board.SetSpacing(cfg.Board.Spacing); err != nil {
		return nil, err
	}
	if err := board.SetCornerRadius(cfg.Board.CornerRadius); err != nil {
		return nil, err
	}
	if err := board.SetColumnCount(cfg.Board.Columns); err != nil {
		return nil, err
	}
	board.SetOrigin(Point{X: boardLeft, Y: boardTop})

	a := &App{
		board:   board,
		store:   store,
		logger:  logger,
		help:    help.New(),
		minCols: cfg.Board.Columns,
	}
	board.SetChangeObserver(ObserverFunc(a.arrangementChanged))
	if err := a.reload(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) Board() *Board {
	return a.board
}

func (a *App) reload() error {
	cards, err := a.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load board: %w", err)
	}
	arrangement, _ := BuildArrangement(cards, max(a.minCols, a.board.ColumnCount()))
	if err := a.board.SetArrangement(arrangement); err != nil {
		return err
	}
	a.cards = cards
	a.logger.Info("board loaded", "file", a.store.Path(), "cards", len(cards), "columns", len(arrangement))
	return nil
}

func (a *App) arrangementChanged(arrangement Arrangement) {
	if err := a.save(arrangement); err != nil {
		a.err = err
		a.logger.Error("save board", "err", err)
		return
	}
	a.err = nil
	a.status = "saved " + describeArrangement(arrangement)
}

// save writes the board over the file contents, keeping cards that other
// processes added since the last load.
func (a *App) save(arrangement Arrangement) error {
	Touch(a.cards, arrangement, timeNow())
	var saved []StoredCard
	err := a.store.Update(func(disk []StoredCard) ([]StoredCard, error) {
		saved = MergeCards(disk, arrangement)
		return saved, nil
	})
	if err != nil {
		return fmt.Errorf("failed to save board: %w", err)
	}
	a.cards = saved
	return nil
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.help.Width = msg.Width
		a.board.SetSize(msg.Width-2*boardLeft, msg.Height-boardTop-3)
		return a, nil

	case tea.MouseMsg:
		return a, a.board.Update(msg)

	case tea.KeyMsg:
		if a.board.Dragging() {
			return a, nil
		}
		switch {
		case key.Matches(msg, appKeys.Quit):
			a.quitting = true
			return a, tea.Quit

		case key.Matches(msg, appKeys.AddColumn):
			a.resize(a.board.ColumnCount() + 1)

		case key.Matches(msg, appKeys.DropColumn):
			if a.board.ColumnCount() > 1 {
				a.resize(a.board.ColumnCount() - 1)
			}

		case key.Matches(msg, appKeys.Reload):
			if err := a.reload(); err != nil {
				a.err = err
			} else {
				a.err = nil
				a.status = "reloaded"
			}

		case key.Matches(msg, appKeys.Help):
			a.help.ShowAll = !a.help.ShowAll
		}
	}
	return a, nil
}

// resize changes the column count and persists the result; cards from a
// removed column end up in the new last column.
func (a *App) resize(count int) {
	if err := a.board.SetColumnCount(count); err != nil {
		a.err = err
		return
	}
	a.minCols = count
	if err := a.save(a.board.Arrangement()); err != nil {
		a.err = err
		return
	}
	a.err = nil
	a.status = fmt.Sprintf("%d columns", count)
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	var s strings.Builder
	s.WriteString(titleStyle.Render(" reorgboard") + statusStyle.Render(" · drag cards between columns"))
	s.WriteString("\n\n")

	pad := strings.Repeat(" ", boardLeft)
	for _, line := range strings.Split(a.board.View(), "\n") {
		s.WriteString(pad + line + "\n")
	}

	s.WriteString("\n")
	switch {
	case a.err != nil:
		s.WriteString(errorStyle.Render(" " + a.err.Error()))
	case a.status != "":
		s.WriteString(statusStyle.Render(" " + a.status))
	}
	s.WriteString("\n " + a.help.View(appKeys))
	return s.String()
}

// describeArrangement renders per-column card counts, e.g. "[2 0 3]".
func describeArrangement(a Arrangement) string {
	counts := make([]string, len(a))
	for i, col := range a {
		counts[i] = fmt.Sprint(len(col))
	}
	return "[" + strings.Join(counts, " ") + "]"
}

// RunApp runs the board UI with mouse tracking until the user quits or ctx
// is cancelled.
func RunApp(ctx context.Context, app *App) error {
	p := tea.NewProgram(app, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
