// Package compute creates the fabric VMs (controllers, MUXes, gateways) on
// their placement hosts.
package compute

import (
	"fmt"

	"github.com/sdnfabric/sdnctl/internal/platform/hyperv"
	"github.com/sdnfabric/sdnctl/internal/platform/s3"
	"github.com/sdnfabric/sdnctl/internal/provisioning"
)

// Provisioner creates fabric VMs from the node specifications.
type Provisioner struct{}

// NewProvisioner creates a new compute provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "compute"
}

// Provision implements the provisioning.Phase interface. The image source is
// resolved once for the whole run, then VMs are created role by role in
// configuration order. The first creation failure aborts the phase.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	image, err := resolveImage(ctx)
	if err != nil {
		return err
	}
	ctx.State.ImageSource = image

	for _, node := range ctx.Config.Controllers {
		req := controllerRequest(ctx.Config, image, ctx.Creds, node)
		if err := p.create(ctx, req); err != nil {
			return err
		}
		ctx.State.ControllerVMs = append(ctx.State.ControllerVMs, provisioning.NodeAddress(node))
	}

	for _, mux := range ctx.Config.Muxes {
		req := muxRequest(ctx.Config, image, ctx.Creds, mux)
		if err := p.create(ctx, req); err != nil {
			return err
		}
		ctx.State.MuxVMs = append(ctx.State.MuxVMs, provisioning.NodeAddress(mux.NodeSpec))
	}

	for _, gw := range ctx.Config.Gateways {
		req := gatewayRequest(ctx.Config, image, ctx.Creds, gw)
		if err := p.create(ctx, req); err != nil {
			return err
		}
		ctx.State.GatewayVMs = append(ctx.State.GatewayVMs, provisioning.NodeAddress(gw.NodeSpec))
	}

	return nil
}

// create requests one VM and reports it.
func (p *Provisioner) create(ctx *provisioning.Context, req hyperv.VMRequest) error {
	provisioning.LogResourceCreating(ctx.Observer, "compute", req.Role+" VM", req.Name)
	if err := ctx.Creator.CreateVM(ctx, req); err != nil {
		return err
	}
	provisioning.LogResourceCreated(ctx.Observer, "compute", req.Role+" VM", req.Name, req.Host)
	return nil
}

// resolveImage returns the image source VMs are created from. Object store
// sources are verified and presigned exactly once per run so every host
// fetches the same URL.
func resolveImage(ctx *provisioning.Context) (string, error) {
	src := ctx.Config.ImageSource
	if !s3.IsImageURL(src) {
		return src, nil
	}
	if ctx.ImageStore == nil {
		return "", fmt.Errorf("image source %s is an object store URL but no image_store is configured", src)
	}

	exists, err := ctx.ImageStore.ImageExists(ctx, src)
	if err != nil {
		return "", fmt.Errorf("checking image %s: %w", src, err)
	}
	if !exists {
		return "", fmt.Errorf("image %s not found in object store", src)
	}

	url, err := ctx.ImageStore.PresignImage(ctx, src, ctx.Timeouts.PresignTTL)
	if err != nil {
		return "", fmt.Errorf("presigning image %s: %w", src, err)
	}
	ctx.Observer.Printf("Image %s verified, presigned for %v", src, ctx.Timeouts.PresignTTL)
	return url, nil
}
