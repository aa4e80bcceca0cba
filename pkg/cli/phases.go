// pkg/cli/phases.go
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/David-Botos/record-migrate/pkg/job"
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Count current records in the target store per object",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := buildApp(ctx, cmd, true)
		if err != nil {
			return err
		}
		defer a.close()

		return job.NewPhaseRunner(a.job, a.logger).CountAll(ctx)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete previously migrated records from the target store",
	Long: `Delete removes the rows an earlier migration wrote to the target
store, for every object in the job definition. Rows without a legacy
identifier are never touched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := buildApp(ctx, cmd, true)
		if err != nil {
			return err
		}
		defer a.close()

		deleted, err := job.NewPhaseRunner(a.job, a.logger).DeleteOldRecords(ctx)
		if err != nil {
			return err
		}
		if !deleted {
			a.logger.Info("Nothing to delete", zap.String("jobID", a.job.ID))
		}
		return nil
	},
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Fetch fresh records from the source store into the working files",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := buildApp(ctx, cmd, true)
		if err != nil {
			return err
		}
		defer a.close()

		return job.NewPhaseRunner(a.job, a.logger).QueryAll(ctx)
	},
}

func init() {
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(queryCmd)
}
