// Package registrar registers hypervisor hosts, MUXes and gateways with the
// network controller. It runs after the controller phase, so a management
// client is always present in state.
package registrar

import (
	"context"
	"fmt"

	"github.com/sdnfabric/sdnctl/internal/config"
	"github.com/sdnfabric/sdnctl/internal/platform/certstore"
	"github.com/sdnfabric/sdnctl/internal/platform/netcontroller"
	"github.com/sdnfabric/sdnctl/internal/provisioning"
)

// Provisioner registers fabric members with the controller.
type Provisioner struct{}

// NewProvisioner creates a new registration provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "registrar"
}

// Provision implements the provisioning.Phase interface. Hosts are always
// registered. MUX and gateway registration only happens for configured
// nodes, each gated on the role's VMs answering management probes first.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if err := p.registerHosts(ctx); err != nil {
		return err
	}
	if err := p.registerMuxes(ctx); err != nil {
		return err
	}
	return p.registerGateways(ctx)
}

func (p *Provisioner) registerHosts(ctx *provisioning.Context) error {
	for _, host := range ctx.Config.Hosts {
		thumbprint, err := p.memberThumbprint(ctx, host.Name, host.Name)
		if err != nil {
			return err
		}

		if err := p.withRestTimeout(ctx, func(restCtx context.Context) error {
			return ctx.State.Controller.RegisterHost(restCtx, netcontroller.HostParams{
				Name:           host.Name,
				PASubnetPrefix: ctx.Config.PASubnet.Prefix,
				SwitchName:     ctx.Config.SwitchName,
				CertThumbprint: thumbprint,
			})
		}); err != nil {
			return fmt.Errorf("registering host %s: %w", host.Name, err)
		}
		provisioning.LogResourceCreated(ctx.Observer, "registrar", "host registration", host.Name, thumbprint)
	}
	return nil
}

func (p *Provisioner) registerMuxes(ctx *provisioning.Context) error {
	if len(ctx.Config.Muxes) == 0 {
		return nil
	}

	if err := provisioning.WaitReady(ctx, "mux", ctx.State.MuxVMs); err != nil {
		return err
	}

	for _, mux := range ctx.Config.Muxes {
		thumbprint, err := p.memberThumbprint(ctx, provisioning.NodeAddress(mux.NodeSpec), mux.VMName)
		if err != nil {
			return err
		}

		routers := make([]netcontroller.RouterPeer, 0, len(mux.Routers))
		for _, r := range mux.Routers {
			routers = append(routers, netcontroller.RouterPeer{RouterIP: r.RouterIP, ASN: r.ASN})
		}

		if err := p.withRestTimeout(ctx, func(restCtx context.Context) error {
			return ctx.State.Controller.RegisterMux(restCtx, netcontroller.MuxParams{
				Name:           mux.VMName,
				PAIPAddress:    mux.PAIPAddress,
				ASN:            mux.ASN,
				Routers:        routers,
				CertThumbprint: thumbprint,
			})
		}); err != nil {
			return fmt.Errorf("registering mux %s: %w", mux.VMName, err)
		}
		provisioning.LogResourceCreated(ctx.Observer, "registrar", "mux registration", mux.VMName, thumbprint)
	}
	return nil
}

func (p *Provisioner) registerGateways(ctx *provisioning.Context) error {
	if len(ctx.Config.Gateways) == 0 {
		return nil
	}

	pool := ctx.Config.GatewayPool
	redundant := pool.RedundantCount
	if redundant == 0 {
		redundant = config.DefaultRedundantCount
	}
	if err := p.withRestTimeout(ctx, func(restCtx context.Context) error {
		return ctx.State.Controller.CreateGatewayPool(restCtx, netcontroller.GatewayPoolParams{
			Name:           pool.Name,
			Capacity:       pool.Capacity,
			GRESubnet:      pool.GRESubnet,
			RedundantCount: redundant,
		})
	}); err != nil {
		return fmt.Errorf("creating gateway pool %s: %w", pool.Name, err)
	}

	if err := provisioning.WaitReady(ctx, "gateway", ctx.State.GatewayVMs); err != nil {
		return err
	}

	for _, gw := range ctx.Config.Gateways {
		thumbprint, err := p.memberThumbprint(ctx, provisioning.NodeAddress(gw.NodeSpec), gw.VMName)
		if err != nil {
			return err
		}

		if err := p.withRestTimeout(ctx, func(restCtx context.Context) error {
			return ctx.State.Controller.RegisterGateway(restCtx, netcontroller.GatewayParams{
				Name:           gw.VMName,
				PoolName:       pool.Name,
				FrontEndIP:     gw.FrontEnd.IPAddress,
				FrontEndMAC:    gw.FrontEnd.MACAddress,
				BackEndMAC:     gw.BackEnd.MACAddress,
				CertThumbprint: thumbprint,
			})
		}); err != nil {
			return fmt.Errorf("registering gateway %s: %w", gw.VMName, err)
		}
		provisioning.LogResourceCreated(ctx.Observer, "registrar", "gateway registration", gw.VMName, thumbprint)
	}
	return nil
}

// memberThumbprint reads the certificate thumbprint a fabric member
// authenticates to the controller with.
func (p *Provisioner) memberThumbprint(ctx *provisioning.Context, address, subjectCN string) (string, error) {
	opCtx, cancel := context.WithTimeout(ctx, ctx.Timeouts.RemoteOp)
	defer cancel()

	thumbprint, err := certstore.RemoteThumbprint(opCtx, ctx.Runner, address, ctx.Creds.DomainJoin, subjectCN)
	if err != nil {
		return "", fmt.Errorf("reading certificate thumbprint from %s: %w", address, err)
	}
	return thumbprint, nil
}

// withRestTimeout bounds one controller REST call.
func (p *Provisioner) withRestTimeout(ctx *provisioning.Context, fn func(context.Context) error) error {
	restCtx, cancel := context.WithTimeout(ctx, ctx.Timeouts.RestCall)
	defer cancel()
	return fn(restCtx)
}
