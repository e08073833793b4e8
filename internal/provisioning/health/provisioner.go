// Package health verifies the controller reports a healthy configuration
// after all registrations have been applied.
package health

import (
	"context"
	"fmt"

	"github.com/sdnfabric/sdnctl/internal/provisioning"
	"github.com/sdnfabric/sdnctl/internal/util/retry"
)

// Provisioner runs the final configuration health check.
type Provisioner struct{}

// NewProvisioner creates a new health check provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "health"
}

// Provision implements the provisioning.Phase interface. The controller may
// still be converging right after registration, so an unhealthy answer is
// retried a few times before the run is failed.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	err := retry.WithExponentialBackoff(ctx, func() error {
		restCtx, cancel := context.WithTimeout(ctx, ctx.Timeouts.RestCall)
		defer cancel()
		return ctx.State.Controller.ConfigurationState(restCtx)
	},
		retry.WithMaxRetries(4),
		retry.WithInitialDelay(ctx.Timeouts.ReadinessPoll),
	)
	if err != nil {
		return fmt.Errorf("controller configuration unhealthy: %w", err)
	}

	ctx.Observer.Printf("Controller %s reports healthy configuration", ctx.Config.RestName)
	return nil
}
