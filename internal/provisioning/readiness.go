package provisioning

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/sdnfabric/sdnctl/internal/config"
	"github.com/sdnfabric/sdnctl/internal/platform/remote"
	"github.com/sdnfabric/sdnctl/internal/util/retry"
)

// ErrReadinessTimeout indicates a role's VMs did not start answering
// management probes within the configured bound.
var ErrReadinessTimeout = errors.New("timed out waiting for VM readiness")

// NodeAddress returns the address used to reach a node's management plane:
// the management IP when one is configured, otherwise the VM name.
func NodeAddress(n config.NodeSpec) string {
	if n.IPAddress != "" {
		if ip, _, err := net.ParseCIDR(n.IPAddress); err == nil {
			return ip.String()
		}
		return n.IPAddress
	}
	return n.VMName
}

// WaitReady blocks until every target answers a management probe, polling
// with backoff up to the configured readiness bound. A target that has
// answered once is not probed again.
func WaitReady(ctx *Context, role string, targets []string) error {
	if len(targets) == 0 {
		return nil
	}

	ctx.Observer.Printf("Waiting for %d %s VM(s) to answer management probes...", len(targets), role)

	waitCtx, cancel := context.WithTimeout(ctx, ctx.Timeouts.Readiness)
	defer cancel()

	pending := make(map[string]bool, len(targets))
	for _, t := range targets {
		pending[t] = true
	}

	start := time.Now()
	err := retry.WithExponentialBackoff(waitCtx, func() error {
		for target := range pending {
			if err := remote.Probe(waitCtx, ctx.Runner, target, ctx.Creds.DomainJoin); err != nil {
				return fmt.Errorf("%s not ready: %w", target, err)
			}
			delete(pending, target)
		}
		return nil
	},
		retry.WithMaxRetries(ctx.Timeouts.RetryMaxPolls),
		retry.WithInitialDelay(ctx.Timeouts.ReadinessPoll),
		retry.WithMaxDelay(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("%w: %s VMs after %v: %v", ErrReadinessTimeout, role, time.Since(start).Round(time.Second), err)
	}

	ctx.Observer.Printf("All %s VM(s) ready after %v", role, time.Since(start).Round(time.Second))
	return nil
}
