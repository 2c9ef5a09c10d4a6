package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/spins/internal/shared"
	"github.com/desertthunder/spins/internal/ui"
	"github.com/urfave/cli/v3"
)

// Setup writes the embedded example configuration to the --config path.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	r.logger.Info("creating config file", "path", configPath)
	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	if err := r.writePlain("✓ Config written to %s\n", configPath); err != nil {
		return err
	}
	return r.writePlain("%s\n", ui.Hint("Set catalog.backend = \"sqlite\" to use the SQLite catalog."))
}
