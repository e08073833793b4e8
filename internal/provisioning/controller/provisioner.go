// Package controller bootstraps the network controller cluster and configures
// its fabric-level objects (network manager, load balancer manager, the
// provider-address logical subnet).
package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/sdnfabric/sdnctl/internal/platform/certstore"
	"github.com/sdnfabric/sdnctl/internal/platform/netcontroller"
	"github.com/sdnfabric/sdnctl/internal/platform/remote"
	"github.com/sdnfabric/sdnctl/internal/provisioning"
)

// Provisioner bootstraps the controller cluster and builds the management
// client later phases use.
type Provisioner struct{}

// NewProvisioner creates a new controller provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "controller"
}

// Provision implements the provisioning.Phase interface.
//
// With controller nodes configured it waits for them, creates the cluster
// from the first node, resolves the REST certificate, and configures the
// fabric objects. With none configured the deployment attaches to an
// existing controller: the REST certificate must already sit in the local
// trusted-root store under the REST name, and cluster creation and fabric
// configuration are skipped.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if len(ctx.Config.Controllers) == 0 {
		return p.attachExisting(ctx)
	}
	return p.bootstrap(ctx)
}

// attachExisting builds the management client for an already-deployed
// controller from the locally trusted REST certificate.
func (p *Provisioner) attachExisting(ctx *provisioning.Context) error {
	ctx.Observer.Printf("No controller nodes configured, attaching to existing controller %s", ctx.Config.RestName)

	cert, err := ctx.CertStore.BySubjectCN(ctx.Config.RestName)
	if err != nil {
		return fmt.Errorf("resolving REST certificate for %s from trusted roots: %w", ctx.Config.RestName, err)
	}

	ctx.State.RESTCert = cert
	ctx.State.RESTThumbprint = certstore.Thumbprint(cert)
	ctx.State.Controller = ctx.NewManager(ctx.Config.RestName, ctx.Creds.NCService, cert)
	return nil
}

// bootstrap creates the controller cluster and configures its fabric objects.
func (p *Provisioner) bootstrap(ctx *provisioning.Context) error {
	if err := provisioning.WaitReady(ctx, "controller", ctx.State.ControllerVMs); err != nil {
		return err
	}

	firstNode := ctx.State.ControllerVMs[0]
	if err := p.installCluster(ctx, firstNode); err != nil {
		return err
	}

	thumbprint, err := p.resolveRESTCert(ctx, firstNode)
	if err != nil {
		return err
	}

	manager := ctx.State.Controller
	if err := p.configureFabric(ctx, manager, thumbprint); err != nil {
		return err
	}

	provisioning.LogResourceCreated(ctx.Observer, "controller", "controller cluster", ctx.Config.RestName, thumbprint)
	return nil
}

// installCluster creates the cluster from the first controller node. The
// node's installer joins the remaining nodes itself.
func (p *Provisioner) installCluster(ctx *provisioning.Context, firstNode string) error {
	args := map[string]string{
		"rest_name": ctx.Config.RestName,
		"nodes":     strings.Join(ctx.State.ControllerVMs, ","),
	}
	if ctx.Config.RestIPAddress != "" {
		args["rest_ip"] = ctx.Config.RestIPAddress
	}
	if len(ctx.Config.SecurityGroups) > 0 {
		args["security_groups"] = strings.Join(ctx.Config.SecurityGroups, ",")
	}

	ctx.Observer.Printf("Creating controller cluster %s from %s...", ctx.Config.RestName, firstNode)
	if _, err := ctx.RunOp(firstNode, remote.OpInstallController, args); err != nil {
		return err
	}
	return nil
}

// resolveRESTCert retrieves the REST certificate minted during cluster
// creation: its thumbprint from the first node's machine store, its body
// from the local trusted-root store. Builds and stores the management client.
func (p *Provisioner) resolveRESTCert(ctx *provisioning.Context, firstNode string) (string, error) {
	opCtx, cancel := context.WithTimeout(ctx, ctx.Timeouts.RemoteOp)
	defer cancel()

	thumbprint, err := certstore.RemoteThumbprint(opCtx, ctx.Runner, firstNode, ctx.Creds.DomainJoin, ctx.Config.RestName)
	if err != nil {
		return "", fmt.Errorf("reading REST certificate thumbprint from %s: %w", firstNode, err)
	}

	cert, err := ctx.CertStore.ByThumbprint(thumbprint)
	if err != nil {
		return "", fmt.Errorf("REST certificate %s not in trusted roots: %w", thumbprint, err)
	}

	ctx.State.RESTCert = cert
	ctx.State.RESTThumbprint = thumbprint
	ctx.State.Controller = ctx.NewManager(ctx.Config.RestName, ctx.Creds.NCService, cert)
	return thumbprint, nil
}

// configureFabric pushes the three fabric-level objects a fresh cluster
// needs before any host or role registration.
func (p *Provisioner) configureFabric(ctx *provisioning.Context, manager netcontroller.Manager, thumbprint string) error {
	restCtx, cancel := context.WithTimeout(ctx, ctx.Timeouts.RestCall)
	defer cancel()

	if err := manager.ConfigureNetworkManager(restCtx, netcontroller.NetworkManagerParams{
		MACPoolStart:   ctx.Config.Management.MACPoolStart,
		MACPoolEnd:     ctx.Config.Management.MACPoolEnd,
		CertThumbprint: thumbprint,
	}); err != nil {
		return fmt.Errorf("configuring network manager: %w", err)
	}

	if err := manager.ConfigureLoadBalancerManager(restCtx, netcontroller.LoadBalancerManagerParams{
		PrivateVIPPrefix: ctx.Config.PrivateVIPPrefix,
		PublicVIPPrefix:  ctx.Config.PublicVIPPrefix,
	}); err != nil {
		return fmt.Errorf("configuring load balancer manager: %w", err)
	}

	if err := manager.RegisterSubnet(restCtx, netcontroller.SubnetParams{
		Prefix:    ctx.Config.PASubnet.Prefix,
		VLANID:    ctx.Config.PASubnet.VLANID,
		Gateway:   ctx.Config.PASubnet.Gateway,
		PoolStart: ctx.Config.PASubnet.PoolStart,
		PoolEnd:   ctx.Config.PASubnet.PoolEnd,
	}); err != nil {
		return fmt.Errorf("registering provider subnet: %w", err)
	}

	return nil
}
