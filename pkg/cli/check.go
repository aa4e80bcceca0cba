// pkg/cli/check.go
package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/David-Botos/record-migrate/pkg/job"
	"github.com/David-Botos/record-migrate/pkg/model"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate and repair the CSV files without touching any store",
	Long: `Check runs only the offline part of the pipeline: the value mapping
load and the two-pass validate/repair protocol. The working files are
rewritten in place when repairs change them; no store connection is
made and no records are counted, deleted, or fetched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cmd, false)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.job.Values.Load(filepath.Join(a.cfg.BaseDir, model.ValueMappingFile)); err != nil {
			return err
		}

		gate := job.NewPromptGate(a.cfg.AutoContinue, a.logger)
		reporter := job.NewReporter(a.cfg.BaseDir, a.logger)
		coordinator, err := job.NewCoordinator(a.job, gate, reporter, a.logger)
		if err != nil {
			return err
		}

		if err := coordinator.Run(); err != nil {
			return err
		}

		a.logger.Info("Check complete",
			zap.String("jobID", a.job.ID),
			zap.Int("issues", len(a.job.Issues)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
