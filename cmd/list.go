package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"reorgboard/internal"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list", "l"},
		Short:   "Print the board column by column",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFromContext(cmd.Context())
			cards, err := e.store.Load()
			if err != nil {
				return fmt.Errorf("failed to load board: %w", err)
			}
			a, _ := internal.BuildArrangement(cards, e.cfg.Board.Columns)
			printBoard(e.stdout, a, time.Now())
			return nil
		},
	}
}

func printBoard(w io.Writer, a internal.Arrangement, now time.Time) {
	if a.Len() == 0 {
		fmt.Fprintln(w, "No cards found.")
		return
	}
	for i, col := range a {
		fmt.Fprintf(w, "Column %d (%d)\n", i, len(col))
		for _, e := range col {
			card, ok := e.(*internal.Card)
			if !ok {
				continue
			}
			fmt.Fprintf(w, "  %s  %s%s\n", card.ShortID(), card.Title, dueSuffix(card, now))
			if line := firstLine(card.Note); line != "" {
				fmt.Fprintf(w, "            └─ %s\n", line)
			}
		}
	}
}

func dueSuffix(card *internal.Card, now time.Time) string {
	if card.Due == nil {
		return ""
	}
	dueIn := card.Due.Sub(now)
	switch {
	case dueIn < 0:
		return " (overdue)"
	case dueIn < 24*time.Hour:
		return " (due today)"
	case dueIn < 48*time.Hour:
		return " (due tomorrow)"
	default:
		return fmt.Sprintf(" (due %s)", card.Due.Format("2006-01-02"))
	}
}

func firstLine(text string) string {
	for i, r := range text {
		if r == '\n' {
			return text[:i]
		}
	}
	return text
}
