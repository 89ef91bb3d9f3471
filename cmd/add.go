package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"reorgboard/internal"
)

func newAddCmd() *cobra.Command {
	var (
		column int
		due    string
		note   string
	)
	cmd := &cobra.Command{
		Use:     "add <title>",
		Aliases: []string{"a"},
		Short:   "Add a card to the bottom of a column",
		Long:    `Add a card. A "due:<date>" word in the title sets the due date, e.g. "due:tomorrow" or "due:2025-07-01".`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFromContext(cmd.Context())
			now := time.Now()

			card, err := newCardFromArgs(strings.Join(args, " "), due, now)
			if err != nil {
				return err
			}
			card.Note = note
			if column < 0 {
				return fmt.Errorf("column %d: %w", column, internal.ErrColumnOutOfRange)
			}

			err = e.store.Update(func(cards []internal.StoredCard) ([]internal.StoredCard, error) {
				pos := 0
				for _, c := range cards {
					if c.Column == column {
						pos = max(pos, c.Position+1)
					}
				}
				return append(cards, internal.StoredCard{Card: *card, Column: column, Position: pos}), nil
			})
			if err != nil {
				return fmt.Errorf("failed to add card: %w", err)
			}

			loggerFromContext(cmd.Context()).Debug("added card", "id", card.ID, "column", column)
			fmt.Fprintf(e.stdout, "Added %s to column %d: %s\n", card.ShortID(), column, card.Title)
			return nil
		},
	}
	cmd.Flags().IntVarP(&column, "column", "c", 0, "column to add the card to")
	cmd.Flags().StringVarP(&due, "due", "d", "", `due date ("tomorrow", "next friday", "2025-07-01")`)
	cmd.Flags().StringVarP(&note, "note", "n", "", "markdown note")
	return cmd
}

// newCardFromArgs builds a card from the title, honoring a due: tag in it.
// An explicit --due wins over the tag.
func newCardFromArgs(title, due string, now time.Time) (*internal.Card, error) {
	title, dueDate, err := internal.ExtractDueFromTitle(title, now)
	if err != nil {
		return nil, err
	}
	if due != "" {
		dueDate, err = internal.ParseDueDate(due, now)
		if err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("card title is empty")
	}
	card := internal.NewCard(title)
	card.Due = dueDate
	return card, nil
}
