package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/sdnfabric/sdnctl/internal/config/wizard"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	runWizard   = wizard.RunWizard
	writeConfig = wizard.WriteConfig
)

// Init runs the interactive wizard and writes the resulting configuration.
// An aborted wizard is not an error: nothing is written and the command
// exits cleanly.
func Init(ctx context.Context, outputPath string) error {
	result, err := runWizard(ctx)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(stdout, "Aborted, no file written.")
			return nil
		}
		return err
	}

	cfg := wizard.BuildConfig(result)
	if err := writeConfig(cfg, outputPath); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Configuration written to %s\n", outputPath)
	fmt.Fprintln(stdout, "Add controller, mux and gateway nodes, then run 'sdnctl deploy'.")
	return nil
}
