package internal

import (
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, titles ...[]string) (*App, *Store) {
	t.Helper()
	store := newTestStore(t)
	a := NewArrangement(3)
	for col, list := range titles {
		for _, title := range list {
			a[col] = append(a[col], NewCard(title))
		}
	}
	require.NoError(t, store.Save(a))

	app, err := NewApp(DefaultConfig(), store, log.New(io.Discard))
	require.NoError(t, err)
	// 30 board cells wide, the same geometry the board tests use
	app.Update(tea.WindowSizeMsg{Width: 32, Height: 20})
	return app, store
}

func titlesByColumn(t *testing.T, store *Store) [][]string {
	t.Helper()
	cards, err := store.Load()
	require.NoError(t, err)
	a, _ := BuildArrangement(cards, 0)
	out := make([][]string, len(a))
	for i, col := range a {
		out[i] = []string{}
		for _, e := range col {
			out[i] = append(out[i], e.(*Card).Title)
		}
	}
	return out
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestAppMouseDragIsSaved(t *testing.T) {
	fixed := time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)
	orig := timeNow
	timeNow = func() time.Time { return fixed }
	t.Cleanup(func() { timeNow = orig })

	app, store := newTestApp(t, []string{"alpha", "beta"}, []string{"gamma"})

	// alpha sits at board (2,2); the board starts at screen (1,2)
	app.Update(tea.MouseMsg{X: 4, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.True(t, app.Board().Dragging())
	app.Update(tea.MouseMsg{X: 24, Y: 5, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	app.Update(tea.MouseMsg{X: 24, Y: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	require.False(t, app.Board().Dragging())
	require.Equal(t, [][]string{{"beta"}, {"gamma"}, {"alpha"}}, titlesByColumn(t, store))
	require.Contains(t, app.View(), "saved [1 1 1]")

	cards, err := store.Load()
	require.NoError(t, err)
	for _, c := range cards {
		if c.Title == "alpha" {
			require.Equal(t, fixed, c.Updated.UTC())
		} else {
			require.NotEqual(t, fixed, c.Updated.UTC())
		}
	}
}

func TestAppSaveKeepsCardsAddedElsewhere(t *testing.T) {
	app, store := newTestApp(t, []string{"alpha"})

	require.NoError(t, store.Update(func(cards []StoredCard) ([]StoredCard, error) {
		return append(cards, StoredCard{Card: *NewCard("added by cli"), Column: 0, Position: 1}), nil
	}))

	app.Update(tea.MouseMsg{X: 4, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	app.Update(tea.MouseMsg{X: 24, Y: 5, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	app.Update(tea.MouseMsg{X: 24, Y: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	require.Equal(t, [][]string{{"added by cli"}, {}, {"alpha"}}, titlesByColumn(t, store))

	// the next reload shows it on the board too
	app.Update(keyPress('r'))
	require.Equal(t, 2, app.Board().Arrangement().Len())
}

func TestAppKeysIgnoredWhileDragging(t *testing.T) {
	app, _ := newTestApp(t, []string{"alpha"})

	app.Update(tea.MouseMsg{X: 4, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	_, cmd := app.Update(keyPress('q'))
	require.Nil(t, cmd)
	app.Update(keyPress('+'))
	require.Equal(t, 3, app.Board().ColumnCount())
}

func TestAppColumnKeys(t *testing.T) {
	app, store := newTestApp(t, []string{"alpha"}, []string{"beta"}, []string{"gamma"})

	app.Update(keyPress('+'))
	require.Equal(t, 4, app.Board().ColumnCount())

	app.Update(keyPress('-'))
	app.Update(keyPress('-'))
	require.Equal(t, 2, app.Board().ColumnCount())
	require.Equal(t, [][]string{{"alpha"}, {"beta", "gamma"}}, titlesByColumn(t, store))

	app.Update(keyPress('-'))
	app.Update(keyPress('-'))
	require.Equal(t, 1, app.Board().ColumnCount())
}

func TestAppReload(t *testing.T) {
	app, store := newTestApp(t, []string{"alpha"})

	require.NoError(t, store.Update(func(cards []StoredCard) ([]StoredCard, error) {
		added := StoredCard{Card: *NewCard("from elsewhere"), Column: 4}
		return append(cards, added), nil
	}))

	app.Update(keyPress('r'))
	require.Equal(t, 5, app.Board().ColumnCount())
	require.Equal(t, 2, app.Board().Arrangement().Len())
	require.Contains(t, app.View(), "reloaded")
}

func TestAppQuit(t *testing.T) {
	app, _ := newTestApp(t)
	_, cmd := app.Update(keyPress('q'))
	require.NotNil(t, cmd)
	require.Equal(t, tea.Quit(), cmd())
	require.Empty(t, app.View())
}

func TestDescribeArrangement(t *testing.T) {
	require.Equal(t, "[2 0 1]", describeArrangement(Arrangement{{newBlock("A"), newBlock("B")}, {}, {newBlock("C")}}))
}
