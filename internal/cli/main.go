package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "momento",
		Short:        "Cut laughter highlight clips from uploaded videos",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd)
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	// Visible flags; env vars take over when flags are left at defaults.
	root.Flags().Int("port", 0, "HTTP port (overrides MOMENTO_PORT)")
	root.Flags().String("data-dir", "", "Transient storage directory (overrides MOMENTO_DATA_DIR)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
