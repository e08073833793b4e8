package commands

import (
	"github.com/spf13/cobra"

	"github.com/sdnfabric/sdnctl/cmd/sdnctl/handlers"
)

// Deploy returns the command for deploying the SDN control plane.
//
// Optional flags:
//
//	--config, -c: Path to deployment configuration YAML file (default: auto-detect sdnctl.yaml)
func Deploy() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the SDN control plane",
		Long: `Deploy the SDN control plane described by the configuration file.

The run prepares every hypervisor host, creates the controller, MUX and
gateway VMs, bootstraps the network controller cluster, registers all fabric
members, and verifies the controller reports a healthy configuration.

The pipeline is fail-fast: the first error stops the run. Completed steps are
idempotent, so fixing the cause and rerunning converges on the same result.

If no config file is specified, sdnctl looks for sdnctl.yaml in the current
directory. Use 'sdnctl init' to create one.

Examples:
  # Deploy using sdnctl.yaml in the current directory
  sdnctl deploy

  # Deploy using a specific config file
  sdnctl deploy -c production.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: sdnctl.yaml)")

	return cmd
}
