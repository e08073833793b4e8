// Package hostprep prepares every hypervisor host for fabric workloads.
//
// Preparation is idempotent: the host agent treats an already-running
// service, an already-enabled extension and an already-enabled feature as
// success, so rerunning a deployment converges instead of failing.
package hostprep

import (
	"github.com/sdnfabric/sdnctl/internal/config"
	"github.com/sdnfabric/sdnctl/internal/platform/remote"
	"github.com/sdnfabric/sdnctl/internal/provisioning"
)

// Provisioner prepares hypervisor hosts (agent service, switch extension,
// network virtualization feature).
type Provisioner struct{}

// NewProvisioner creates a new host preparation provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "hostprep"
}

// Provision implements the provisioning.Phase interface. Hosts are prepared
// in configuration order and the first failing host aborts the phase.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	for _, host := range ctx.Config.Hosts {
		if err := p.prepareHost(ctx, host.Name); err != nil {
			return err
		}
	}
	return nil
}

// prepareHost runs the three preparation steps on one host.
func (p *Provisioner) prepareHost(ctx *provisioning.Context, host string) error {
	obs := ctx.Observer.WithFields(map[string]string{"host": host})
	obs.Printf("Preparing host %s...", host)

	if _, err := ctx.RunOp(host, remote.OpEnsureService, map[string]string{
		"service": config.HostAgentService,
	}); err != nil {
		return err
	}

	if _, err := ctx.RunOp(host, remote.OpEnableSwitchExtension, map[string]string{
		"switch":    ctx.Config.SwitchName,
		"extension": config.SwitchExtension,
	}); err != nil {
		return err
	}

	if _, err := ctx.RunOp(host, remote.OpEnableFeature, map[string]string{
		"feature": config.NetworkVirtualizationFeature,
	}); err != nil {
		return err
	}

	provisioning.LogResourceCreated(obs, "hostprep", "host", host, host)
	return nil
}
