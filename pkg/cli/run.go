// pkg/cli/run.go
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/David-Botos/record-migrate/pkg/job"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full migration pipeline",
	Long: `Run executes the whole pipeline in order: load the value mapping,
merge related exports, archive the working files, validate and repair
every object, then count, delete old target records, and fetch fresh
source records.

When issues are found the run stops at a single abort/continue prompt;
continuing writes the issue report and carries on.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := buildApp(ctx, cmd, true)
		if err != nil {
			return err
		}
		defer a.close()

		runner, err := job.NewRunner(a.cfg, a.jobFile, a.job, a.logger)
		if err != nil {
			return err
		}

		if err := runner.Run(ctx); err != nil {
			if errors.Is(err, job.ErrAborted) {
				a.logger.Warn("Run aborted at the operator's request",
					zap.String("jobID", a.job.ID))
				return fmt.Errorf("aborted: %w", err)
			}
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
