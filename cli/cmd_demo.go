package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomyedwab/jamajira/database"
	"github.com/tomyedwab/jamajira/state"
)

const (
	demoItemID  int64 = 20006
	demoFieldID int64 = 161
)

func newDemoCommand(rt *runtime) *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the retrieve/update demo against the demo item and field",
		Long: `demo reads item 20006 and its fields, sets the item's linked ID to 1002,
sets field 161's Jama name to FancyIssue, and prints the rows after each step.

With --seed the tables are created and the demo rows inserted first when they
are missing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if seed {
				if err := seedDemo(ctx, rt); err != nil {
					return err
				}
			}
			return runDemo(ctx, rt)
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "create tables and insert the demo rows if missing")
	return cmd
}

func seedDemo(ctx context.Context, rt *runtime) error {
	if err := state.InitSchema(ctx, rt.ops); err != nil {
		return err
	}

	items, err := rt.store.Items.RetrieveByItemID(ctx, demoItemID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		err := rt.store.Items.Insert(ctx, state.Item{
			ID:       demoItemID,
			Title:    "ticketx",
			Type:     "ticket",
			Service:  "Jama",
			LinkedID: "NULL",
		})
		if err != nil {
			return err
		}
		rt.logger.Info("Seeded demo item", "id", demoItemID)
	}

	fields, err := rt.store.Fields.RetrieveByFieldID(ctx, demoFieldID)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		err := rt.store.Fields.Insert(ctx, state.Field{
			FieldID:     demoFieldID,
			ItemID:      demoItemID,
			LastUpdated: state.FormatTimestamp(time.Now()),
			JiraName:    "Issue",
			JamaName:    "Ticket",
		})
		if err != nil {
			return err
		}
		rt.logger.Info("Seeded demo field", "id", demoFieldID)
	}
	return nil
}

func runDemo(ctx context.Context, rt *runtime) error {
	items := rt.store.Items
	fields := rt.store.Fields

	itemRows, err := items.RetrieveByItemID(ctx, demoItemID)
	if err != nil {
		return err
	}
	rt.printer.Rows("Retrieved from items table", state.ItemsSchema.ColumnNames(), rowsOf(itemRows))

	fieldRows, err := fields.RetrieveByItemID(ctx, demoItemID)
	if err != nil {
		return err
	}
	rt.printer.Rows("Retrieved from fields table", state.FieldsSchema.ColumnNames(), rowsOf(fieldRows))

	if err := items.UpdateLinkedID(ctx, demoItemID, "1002"); err != nil {
		return err
	}
	itemRows, err = items.RetrieveByItemID(ctx, demoItemID)
	if err != nil {
		return err
	}
	rt.printer.Rows("Updated items row", state.ItemsSchema.ColumnNames(), rowsOf(itemRows))

	if err := fields.UpdateJamaName(ctx, demoFieldID, "FancyIssue"); err != nil {
		return err
	}
	fieldRows, err = fields.RetrieveByFieldID(ctx, demoFieldID)
	if err != nil {
		return err
	}
	rt.printer.Rows("Updated fields row", state.FieldsSchema.ColumnNames(), rowsOf(fieldRows))
	return nil
}

func rowsOf[T interface{ Row() database.Row }](values []T) []database.Row {
	rows := make([]database.Row, len(values))
	for i, v := range values {
		rows[i] = v.Row()
	}
	return rows
}
