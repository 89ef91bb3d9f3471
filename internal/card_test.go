package internal

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

func TestCardViewSize(t *testing.T) {
	card := NewCard("  plan the sprint  ")
	require.Equal(t, "plan the sprint", card.Title)

	view := card.View(20)
	require.Equal(t, 20, lipgloss.Width(view))
	require.Equal(t, 3, lipgloss.Height(view))
	require.Contains(t, view, "plan the sprint")
}

func TestCardViewWithDue(t *testing.T) {
	card := NewCard("release")
	due := time.Date(2025, 7, 4, 23, 59, 59, 0, time.UTC)
	card.Due = &due

	view := card.View(24)
	require.Equal(t, 4, lipgloss.Height(view))
	require.Contains(t, view, "2025-07-04")
}

func TestCardViewTruncatesLongTitles(t *testing.T) {
	card := NewCard(strings.Repeat("long ", 10))
	view := card.View(12)
	require.Equal(t, 12, lipgloss.Width(view))
	require.Contains(t, view, "…")
}

func TestTruncateTitle(t *testing.T) {
	require.Equal(t, "short", truncateTitle("short", 10))
	require.Equal(t, "two words", truncateTitle("two\nwords", 10))
	require.Equal(t, "日本…", truncateTitle("日本語のタイトル", 5))
}

func TestCardAccentColorIsStable(t *testing.T) {
	a := &Card{ID: "4f1c2a9e-0000-4000-8000-000000000000"}
	b := &Card{ID: a.ID}
	require.Equal(t, a.AccentColor(), b.AccentColor())
	require.Contains(t, cardPalette, string(a.AccentColor()))
}

func TestCardShortID(t *testing.T) {
	require.Equal(t, "4f1c2a9e", (&Card{ID: "4f1c2a9e-0000"}).ShortID())
	require.Equal(t, "abc", (&Card{ID: "abc"}).ShortID())
}
