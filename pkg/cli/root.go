// pkg/cli/root.go
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "CSV record migration between record stores",
	Long: `migrate repairs exported CSV record files against a value mapping
table, resolves cross-file lookups, and runs the count, delete, and
fetch phases against the configured source and target stores.

Connection settings come from the environment (or a .env file in the
working directory); the object list comes from the job definition file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("base-dir", "", "Working directory for CSV files (overrides MIGRATE_BASE_DIR)")
	rootCmd.PersistentFlags().String("job-file", "", "Job definition file (overrides MIGRATE_JOB_FILE)")
	rootCmd.PersistentFlags().Bool("auto-continue", false, "Never prompt; report issues and continue")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format, json or console (overrides LOG_FORMAT)")
}
