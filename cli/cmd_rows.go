package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomyedwab/jamajira/database"
)

func newInsertCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "insert TABLE COLUMN=VALUE [COLUMN=VALUE ...]",
		Short: "Insert one row",
		Long: `Insert one row. Values are passed as text and converted by the column's
type affinity, so ID=20006 is stored as an integer in an INT column.`,
		Example: "  jamajira insert Items ID=20006 Title=ticketx Type=ticket Service=Jama LinkedID=NULL",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}
			if err := rt.ops.Insert(cmd.Context(), args[0], values); err != nil {
				return err
			}
			rt.printer.Success("Inserted 1 row into %s", args[0])
			return nil
		},
	}
}

func parseAssignments(args []string) (database.Values, error) {
	values := make(database.Values, len(args))
	for _, arg := range args {
		column, value, ok := strings.Cut(arg, "=")
		if !ok || column == "" {
			return nil, fmt.Errorf("invalid assignment %q: expected COLUMN=VALUE", arg)
		}
		if _, dup := values[column]; dup {
			return nil, fmt.Errorf("column %s assigned more than once", column)
		}
		values[column] = value
	}
	return values, nil
}

func newGetCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "get TABLE COLUMN VALUE",
		Short:   "Print every row whose COLUMN equals VALUE",
		Example: "  jamajira get Fields FieldID 161",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, column, value := args[0], args[1], args[2]
			rows, err := rt.ops.RetrieveByColumnValue(cmd.Context(), table, column, value)
			if err != nil {
				return err
			}
			headers, err := columnNames(cmd.Context(), rt.ops, table)
			if err != nil {
				return err
			}
			rt.printer.Rows(fmt.Sprintf("%s where %s = %s", table, column, value), headers, rows)
			return nil
		},
	}
}

func newUpdateCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "update TABLE SEARCH_COLUMN SEARCH_VALUE UPDATE_COLUMN NEW_VALUE",
		Short:   "Set one column on every row matching SEARCH_COLUMN = SEARCH_VALUE",
		Example: "  jamajira update Items ID 20006 LinkedID 1002",
		Args:    cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := rt.ops.Update(cmd.Context(), args[0], args[1], args[3], args[2], args[4])
			if err != nil {
				return err
			}
			if n == 0 {
				rt.printer.Info("No rows in %s where %s = %s", args[0], args[1], args[2])
				return nil
			}
			rt.printer.Success("Updated %d row(s) in %s", n, args[0])
			return nil
		},
	}
}

func columnNames(ctx context.Context, ops *database.Operations, table string) ([]string, error) {
	columns, err := ops.DescribeTable(ctx, table)
	if err != nil {
		return nil, err
	}
	return database.Table{Name: table, Columns: columns}.ColumnNames(), nil
}
