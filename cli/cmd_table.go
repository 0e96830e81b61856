package cli

import (
	"github.com/spf13/cobra"
)

func newCreateTableCommand(rt *runtime) *cobra.Command {
	var (
		columns []string
		types   []string
	)

	cmd := &cobra.Command{
		Use:   "create-table NAME --column NAME --type TYPE [--column NAME --type TYPE ...]",
		Short: "Create a table from paired column names and types",
		Example: `  jamajira create-table SyncInformation \
    --column SyncID --type "INT PRIMARY KEY NOT NULL" \
    --column StartTime --type "TEXT DEFAULT(STRFTIME('%Y-%m-%d %H:%M:%f', 'NOW'))" \
    --column EndTime --type "TEXT DEFAULT(NULL)" \
    --column CompletedSuccessfully --type INT`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.ops.CreateTable(cmd.Context(), args[0], columns, types); err != nil {
				return err
			}
			rt.printer.Success("Created table %s", args[0])
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&columns, "column", nil, "column name (repeatable, paired with --type by position)")
	cmd.Flags().StringArrayVar(&types, "type", nil, "column type (repeatable)")
	return cmd
}

func newRenameColumnCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "rename-column TABLE OLD NEW",
		Short: "Rename a column",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.ops.RenameColumn(cmd.Context(), args[0], args[1], args[2]); err != nil {
				return err
			}
			rt.printer.Success("Renamed %s.%s to %s", args[0], args[1], args[2])
			return nil
		},
	}
}
