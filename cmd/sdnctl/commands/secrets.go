package commands

import (
	"github.com/spf13/cobra"

	"github.com/sdnfabric/sdnctl/cmd/sdnctl/handlers"
)

// Secrets returns the parent command for credential sealing.
func Secrets() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secrets",
		Short: "Manage sealed credential passwords",
	}

	cmd.AddCommand(secretsSeal())

	return cmd
}

// secretsSeal returns the command that seals a password for the config file.
func secretsSeal() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "seal",
		Short: "Seal a credential password for the configuration file",
		Long: `Seal a credential password into a blob safe to store in the
configuration file.

Sealing is scoped to the current user and machine: the blob only opens on
the machine that produced it, for the user that produced it. On any other
machine the deploy run falls back to an interactive prompt.

Examples:
  # Seal the domain join password
  sdnctl secrets seal --role domain_join

  # Seal the controller service account password
  sdnctl secrets seal --role nc_service`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.SecretsSeal(cmd.Context(), role)
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Credential role: domain_join, nc_service or local_admin")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}
