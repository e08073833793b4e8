package commands

import (
	"github.com/spf13/cobra"

	"github.com/sdnfabric/sdnctl/cmd/sdnctl/handlers"
)

// Init returns the command for interactively creating a deployment
// configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "sdnctl.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a deployment configuration",
		Long: `Interactively create a deployment configuration file.

This command guides you through configuring the deployment step by step.
It will ask about:

  - The controller's REST name and the virtual switch
  - The golden VM image source
  - Management and provider-address networks
  - Load balancer VIP prefixes
  - Hypervisor hosts
  - Credential usernames

Node sections (controllers, muxes, gateways) are left empty in the
generated file; add them by hand before deploying. Passwords are never
written to the file: seal them with 'sdnctl secrets seal'.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "sdnctl.yaml", "Output file path")

	return cmd
}
