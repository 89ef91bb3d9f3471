package internal

import (
	"hash/fnv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"
)

// Card is the element the command line tools put on the board: a bordered,
// centered label.
type Card struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	Note    string     `json:"note,omitempty"`
	Due     *time.Time `json:"due,omitempty"`
	Created time.Time  `json:"created"`
	Updated time.Time  `json:"updated"`
}

func NewCard(title string) *Card {
	now := time.Now()
	return &Card{
		ID:      uuid.New().String(),
		Title:   strings.TrimSpace(title),
		Created: now,
		Updated: now,
	}
}

// cardPalette follows the 256-color accents used for project tags.
var cardPalette = []string{"33", "208", "162", "34", "141", "214", "39", "202", "165", "46", "135", "220"}

// AccentColor is stable for a given card ID.
func (c *Card) AccentColor() lipgloss.Color {
	h := fnv.New32a()
	h.Write([]byte(c.ID))
	return lipgloss.Color(cardPalette[h.Sum32()%uint32(len(cardPalette))])
}

func (c *Card) ShortID() string {
	if len(c.ID) > 8 {
		return c.ID[:8]
	}
	return c.ID
}

// View renders the card as a three line box, or four lines when it has a due
// date.
func (c *Card) View(width int) string {
	inner := max(1, width-2)
	lines := []string{truncateTitle(c.Title, inner)}
	if c.Due != nil {
		due := lipgloss.NewStyle().Faint(true).Render(truncateTitle("due "+c.Due.Format("2006-01-02"), inner))
		lines = append(lines, due)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c.AccentColor()).
		Width(inner).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

func (c *Card) String() string {
	return c.Title
}

// truncateTitle shortens s to width display cells, ending in an ellipsis when
// text was dropped.
func truncateTitle(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
