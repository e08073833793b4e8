// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/sdnfabric/sdnctl/internal/config"
	"github.com/sdnfabric/sdnctl/internal/config/wizard"
	"github.com/sdnfabric/sdnctl/internal/credentials"
	"github.com/sdnfabric/sdnctl/internal/platform/certstore"
	"github.com/sdnfabric/sdnctl/internal/platform/hyperv"
	"github.com/sdnfabric/sdnctl/internal/platform/netcontroller"
	"github.com/sdnfabric/sdnctl/internal/platform/remote"
	"github.com/sdnfabric/sdnctl/internal/platform/s3"
	"github.com/sdnfabric/sdnctl/internal/provisioning"
	"github.com/sdnfabric/sdnctl/internal/provisioning/compute"
	"github.com/sdnfabric/sdnctl/internal/provisioning/controller"
	"github.com/sdnfabric/sdnctl/internal/provisioning/health"
	"github.com/sdnfabric/sdnctl/internal/provisioning/hostprep"
	"github.com/sdnfabric/sdnctl/internal/provisioning/registrar"
	"github.com/sdnfabric/sdnctl/internal/ui"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads config from file.
	loadConfigFile = config.Load

	// findConfigFile locates the default config file.
	findConfigFile = config.FindConfigFile

	// newRunner creates the remote operation runner.
	newRunner = func() remote.Runner {
		return remote.NewSSHRunner()
	}

	// newCreator creates the VM creator.
	newCreator = func(runner remote.Runner, runCred credentials.Credential) hyperv.Creator {
		return hyperv.NewAgentCreator(runner, runCred)
	}

	// newManagerFactory builds controller management clients.
	newManagerFactory = func() provisioning.ManagerFactory {
		return func(restName string, cred credentials.Credential, cert *x509.Certificate) netcontroller.Manager {
			return netcontroller.NewClient(restName, cred, cert)
		}
	}

	// newImageStore creates the object store client for s3:// image sources.
	newImageStore = func(c *config.ImageStoreConfig) (provisioning.ImagePresigner, error) {
		return s3.NewClient(c.Endpoint, c.Region, c.AccessKey, c.SecretKey)
	}

	// newVaultOpener opens the sealed-password vault.
	newVaultOpener = func() (credentials.Opener, error) {
		v, err := credentials.NewVault()
		if err != nil {
			return nil, err
		}
		return v, nil
	}

	// newPrompter creates the interactive credential prompter.
	newPrompter = func() credentials.Prompter {
		return credentials.NewTerminalPrompter()
	}

	// runPipeline executes the deployment phases.
	runPipeline = provisioning.RunPhases

	// stdout is the handler output stream.
	stdout io.Writer = os.Stdout
)

// Deploy runs the full control-plane deployment described by the config file.
//
// The workflow:
//  1. Loads and validates the configuration (the schema version is checked
//     before anything else, so a mismatch causes zero side effects)
//  2. Resolves the three credential roles (explicit, sealed, prompt)
//  3. Runs the phase pipeline: hostprep, compute, controller, registrar,
//     health. The first phase error aborts the run.
//
// Credential resolution happens before any remote call; a cancelled prompt
// means nothing has touched the hosts yet.
func Deploy(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(ctx, configPath)
	if err != nil {
		return err
	}
	if cfg == nil {
		fmt.Fprintln(stdout, "Aborted.")
		return nil
	}

	creds, err := resolveCredentials(ctx, cfg)
	if err != nil {
		return err
	}

	ui.RenderPlan(stdout, cfg)

	runner := newRunner()
	pctx := provisioning.NewContext(
		ctx,
		cfg,
		creds,
		runner,
		newCreator(runner, creds.DomainJoin),
		certstore.NewDirStore(trustedRootDir(cfg)),
		newManagerFactory(),
	)

	if cfg.ImageStore != nil {
		store, err := newImageStore(cfg.ImageStore)
		if err != nil {
			return fmt.Errorf("configuring object store: %w", err)
		}
		pctx.ImageStore = store
	}

	runErr := runPipeline(pctx, []provisioning.Phase{
		hostprep.NewProvisioner(),
		compute.NewProvisioner(),
		controller.NewProvisioner(),
		registrar.NewProvisioner(),
		health.NewProvisioner(),
	})

	ui.RenderSummary(stdout, cfg, runErr)
	return runErr
}

// loadConfig loads the configuration from the given path, falling back to
// the default file in the working directory and then to the interactive
// wizard. A nil config with nil error means the wizard was cancelled; the
// run stops cleanly without touching anything.
func loadConfig(ctx context.Context, configPath string) (*config.Config, error) {
	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath == "" {
		fmt.Fprintf(stdout, "No %s found, starting interactive setup.\n", config.DefaultConfigFile)
		result, err := runWizard(ctx)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil, nil
			}
			return nil, err
		}
		cfg := wizard.BuildConfig(result)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return loadConfigFile(configPath)
}

// resolveCredentials resolves the three credential roles in a fixed order.
// A missing or unreadable vault is not fatal; sealed passwords then resolve
// through the prompt like on any foreign machine.
func resolveCredentials(ctx context.Context, cfg *config.Config) (credentials.Set, error) {
	vault, err := newVaultOpener()
	if err != nil {
		vault = nil
	}
	prompter := newPrompter()

	var set credentials.Set
	roles := []struct {
		name string
		spec config.CredentialSpec
		dst  *credentials.Credential
	}{
		{"domain join", cfg.Credentials.DomainJoin, &set.DomainJoin},
		{"network controller service", cfg.Credentials.NCService, &set.NCService},
		{"local administrator", cfg.Credentials.LocalAdmin, &set.LocalAdmin},
	}
	for _, role := range roles {
		cred, err := credentials.Resolve(ctx, role.name, credentials.Source{
			Username:       role.spec.Username,
			SealedPassword: role.spec.SealedPassword,
		}, vault, prompter)
		if err != nil {
			return credentials.Set{}, err
		}
		*role.dst = cred
	}
	return set, nil
}

func trustedRootDir(cfg *config.Config) string {
	if cfg.TrustedRootDir != "" {
		return cfg.TrustedRootDir
	}
	return config.DefaultTrustedRootDir
}
