// pkg/cli/setup.go
package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/David-Botos/record-migrate/pkg/config"
	"github.com/David-Botos/record-migrate/pkg/connector"
	"github.com/David-Botos/record-migrate/pkg/job"
	"github.com/David-Botos/record-migrate/pkg/logging"
	"github.com/David-Botos/record-migrate/pkg/mapping"
	"github.com/David-Botos/record-migrate/pkg/task"
)

// app bundles everything a command needs for one invocation
type app struct {
	cfg     *config.Config
	jobFile *config.JobFile
	logger  *zap.Logger
	job     *job.Job
	source  *connector.SnowflakeConnector
	target  *connector.PostgresConnector
}

// close releases the app's connectors and flushes the logger
func (a *app) close() {
	if a.source != nil {
		if err := a.source.Close(); err != nil {
			a.logger.Warn("Failed to close source connector", zap.Error(err))
		}
	}
	if a.target != nil {
		if err := a.target.Close(); err != nil {
			a.logger.Warn("Failed to close target connector", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

// applyFlagOverrides lets command line flags win over environment
// settings
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("base-dir") {
		v, err := flags.GetString("base-dir")
		if err != nil {
			return err
		}
		cfg.BaseDir = v
	}
	if flags.Changed("job-file") {
		v, err := flags.GetString("job-file")
		if err != nil {
			return err
		}
		cfg.JobFile = v
	}
	if flags.Changed("auto-continue") {
		v, err := flags.GetBool("auto-continue")
		if err != nil {
			return err
		}
		cfg.AutoContinue = v
	}
	if flags.Changed("log-level") {
		v, err := flags.GetString("log-level")
		if err != nil {
			return err
		}
		cfg.LogLevel = v
	}
	if flags.Changed("log-format") {
		v, err := flags.GetString("log-format")
		if err != nil {
			return err
		}
		cfg.LogFormat = v
	}
	return nil
}

// buildApp loads configuration and the job definition, constructs one
// task per object, and opens connectors when connect is set. Offline
// commands skip the connectors; their tasks can still validate and
// repair files.
func buildApp(ctx context.Context, cmd *cobra.Command, connect bool) (*app, error) {
	// A .env in the working directory is optional
	_ = godotenv.Load()

	var cfg *config.Config
	var err error
	if connect {
		cfg, err = config.LoadConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
	} else {
		cfg = config.LoadBaseConfig()
	}

	if err := applyFlagOverrides(cmd, cfg); err != nil {
		return nil, err
	}

	logger, err := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	jf, err := config.LoadJobFile(filepath.Join(cfg.BaseDir, cfg.JobFile))
	if err != nil {
		logger.Error("Failed to load job definition", zap.Error(err))
		return nil, err
	}

	a := &app{cfg: cfg, jobFile: jf, logger: logger}

	if connect {
		factory := connector.NewConnectorFactory(cfg, logger)
		a.source, a.target, err = factory.CreateAllConnectors(ctx)
		if err != nil {
			_ = logger.Sync()
			return nil, fmt.Errorf("failed to connect: %w", err)
		}
	}

	values := mapping.New()
	tasks := make([]task.Task, 0, len(jf.Objects))
	for _, spec := range jf.Objects {
		t, err := task.NewObjectTask(spec, cfg.BaseDir, values, a.source, a.target, logger)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("failed to build task for %s: %w", spec.Name, err)
		}
		tasks = append(tasks, t)
	}

	a.job = job.NewJob(cfg.BaseDir, tasks, values, logger.Named("job"))

	logger.Info("Job prepared",
		zap.String("jobID", a.job.ID),
		zap.String("baseDir", cfg.BaseDir),
		zap.Int("objects", len(tasks)))
	return a, nil
}
