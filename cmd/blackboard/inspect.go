package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/blackboard/blackboard"
	"github.com/oshokin/blackboard/blackboard/params"
	"github.com/oshokin/blackboard/blackboard/store"
)

// inspectCmd shows the entries a preset publishes.
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the blackboard contents after applying a preset",
	Long: `Apply a preset (or only the render defaults) to a fresh blackboard and
print every entry, grouped by kind and sorted by key.

Example:
  blackboard inspect -p preset.yaml
  blackboard inspect -p preset.yaml --kind vec3`,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringP("preset", "p", "", "path to a preset file")
	inspectCmd.Flags().String("kind", "", "only print one kind: int, float or vec3")
}

func runInspect(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	kinds := store.Kinds[:]

	if kindName, _ := cmd.Flags().GetString("kind"); kindName != "" {
		kind, err := store.ParseKind(kindName)
		if err != nil {
			return err
		}

		kinds = []store.Kind{kind}
	}

	if err := applyPresetFlag(cmd, logger); err != nil {
		return err
	}

	bb := blackboard.Default()
	out := cmd.OutOrStdout()

	for _, kind := range kinds {
		entries, err := bb.Entries(kind)
		if err != nil {
			return err
		}

		printEntries(out, kind, entries)
	}

	frame := params.ReadFrame(bb)
	if n := len(frame.ActiveLights()); n != int(frame.NumLights) {
		warning(out, "numLights=%d is outside [0, %d]; the renderer uses %d", frame.NumLights, params.MaxLights, n)
	}

	fmt.Fprintln(out)
	success(out, "%d active lights", len(frame.ActiveLights()))

	return nil
}
