// Package provisioning provides shared types and interfaces for fabric deployment.
//
// The deployment domain is organized into focused subpackages:
//   - hostprep/ — hypervisor host preparation (agent service, extension, virtualization feature)
//   - compute/ — controller, mux and gateway VM creation
//   - controller/ — network controller cluster bootstrap and fabric object configuration
//   - registrar/ — host, mux and gateway registration with the controller
//   - health/ — post-deployment controller health verification
//
// This root package contains the shared context, pipeline runner, readiness
// gate and observability types used across subpackages.
package provisioning

import (
	"fmt"
	"time"
)

// Phase defines the interface for a deployment phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the deployment logic for this phase.
	Provision(ctx *Context) error
}

// RunPhases executes all deployment phases sequentially. The first phase
// error aborts the run; later phases are not attempted.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Observer.Printf("Starting deployment with %d phases...", len(phases))

	for i, phase := range phases {
		phaseStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", phase.Name(), i+1, len(phases))

		ctx.Observer.Printf("[%s] starting", name)

		if err := phase.Provision(ctx); err != nil {
			ctx.Observer.Printf("[%s] failed: %v", name, err)
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		ctx.Observer.Printf("[%s] completed in %v", name, time.Since(phaseStart).Round(time.Millisecond))
	}

	ctx.Observer.Printf("Deployment completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
