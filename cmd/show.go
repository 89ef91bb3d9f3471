package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"reorgboard/internal"
)

func newShowCmd() *cobra.Command {
	var width int
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one card with its note rendered as markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFromContext(cmd.Context())
			cards, err := e.store.Load()
			if err != nil {
				return fmt.Errorf("failed to load board: %w", err)
			}
			a, all := internal.BuildArrangement(cards, e.cfg.Board.Columns)
			card, err := internal.FindCard(all, args[0])
			if err != nil {
				return err
			}
			column, _, _ := a.Locate(card)
			return showCard(e.stdout, card, column, width)
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", 80, "wrap the note at this width")
	return cmd
}

func showCard(w io.Writer, card *internal.Card, column, width int) error {
	fmt.Fprintf(w, "%s\n", card.Title)
	fmt.Fprintf(w, "id:      %s\n", card.ID)
	fmt.Fprintf(w, "column:  %d\n", column)
	if card.Due != nil {
		fmt.Fprintf(w, "due:     %s\n", card.Due.Format("2006-01-02"))
	}
	fmt.Fprintf(w, "created: %s\n", card.Created.Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "updated: %s\n", card.Updated.Format("2006-01-02 15:04"))

	if strings.TrimSpace(card.Note) == "" {
		return nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return err
	}
	note, err := renderer.Render(card.Note)
	if err != nil {
		return fmt.Errorf("failed to render note: %w", err)
	}
	fmt.Fprintf(w, "\n%s\n", strings.TrimSpace(note))
	return nil
}
