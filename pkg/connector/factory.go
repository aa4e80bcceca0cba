// pkg/connector/factory.go
package connector

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/David-Botos/record-migrate/pkg/config"
)

// ConnectorFactory creates record store connectors
type ConnectorFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewConnectorFactory creates a new connector factory
func NewConnectorFactory(cfg *config.Config, logger *zap.Logger) *ConnectorFactory {
	return &ConnectorFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateSourceConnector creates the Snowflake source store connector
func (f *ConnectorFactory) CreateSourceConnector(ctx context.Context) (*SnowflakeConnector, error) {
	f.logger.Info("Creating Snowflake connector")

	connector, err := NewSnowflakeConnector(ctx, f.cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to create Snowflake connector: %w", err)
	}

	return connector, nil
}

// CreateTargetConnector creates the PostgreSQL target store connector
func (f *ConnectorFactory) CreateTargetConnector(ctx context.Context) (*PostgresConnector, error) {
	f.logger.Info("Creating PostgreSQL connector")

	connector, err := NewPostgresConnector(ctx, f.cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("failed to create PostgreSQL connector: %w", err)
	}

	return connector, nil
}

// CreateAllConnectors creates both the source and target connectors
func (f *ConnectorFactory) CreateAllConnectors(ctx context.Context) (*SnowflakeConnector, *PostgresConnector, error) {
	source, err := f.CreateSourceConnector(ctx)
	if err != nil {
		return nil, nil, err
	}

	target, err := f.CreateTargetConnector(ctx)
	if err != nil {
		source.Close() // Clean up the source connection if the target fails
		return nil, nil, err
	}

	return source, target, nil
}
