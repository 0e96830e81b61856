package cli

import (
	"github.com/spf13/cobra"

	"github.com/tomyedwab/jamajira/state"
)

func newInitCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create any missing sync tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := state.InitSchema(cmd.Context(), rt.ops); err != nil {
				return err
			}
			names, err := rt.ops.TableNames(cmd.Context())
			if err != nil {
				return err
			}
			rt.printer.Success("Database %s has tables %v", rt.ops.Path(), names)
			return nil
		},
	}
}
