package compute

import (
	"github.com/sdnfabric/sdnctl/internal/config"
	"github.com/sdnfabric/sdnctl/internal/credentials"
	"github.com/sdnfabric/sdnctl/internal/platform/hyperv"
)

// Role names stamped into VM creation requests.
const (
	RoleController = "controller"
	RoleMux        = "mux"
	RoleGateway    = "gateway"
)

// newRequest assembles the parts every role shares. Each call returns a
// fresh value; requests are never reused or mutated between nodes.
func newRequest(cfg *config.Config, image string, creds credentials.Set, node config.NodeSpec, role string, nics []hyperv.NIC) hyperv.VMRequest {
	return hyperv.VMRequest{
		Host:           node.Host,
		Name:           node.VMName,
		Role:           role,
		ImageSource:    image,
		ProcessorCount: processorCount(cfg),
		MemoryBytes:    memoryBytes(cfg),
		SwitchName:     cfg.SwitchName,
		NICs:           nics,
		DomainJoin:     creds.DomainJoin,
		LocalAdmin:     creds.LocalAdmin,
	}
}

// controllerRequest builds the creation request for a controller node:
// a single management interface.
func controllerRequest(cfg *config.Config, image string, creds credentials.Set, node config.NodeSpec) hyperv.VMRequest {
	return newRequest(cfg, image, creds, node, RoleController, []hyperv.NIC{
		managementNIC(cfg, node),
	})
}

// muxRequest builds the creation request for a MUX node: a management
// interface plus a provider-address interface.
func muxRequest(cfg *config.Config, image string, creds credentials.Set, mux config.MuxSpec) hyperv.VMRequest {
	return newRequest(cfg, image, creds, mux.NodeSpec, RoleMux, []hyperv.NIC{
		managementNIC(cfg, mux.NodeSpec),
		{
			Name:       "pa",
			MACAddress: mux.PAMACAddress,
			IPAddress:  mux.PAIPAddress,
			VLANID:     cfg.PASubnet.VLANID,
			IsPA:       true,
		},
	})
}

// gatewayRequest builds the creation request for a gateway node: management,
// front-end and back-end interfaces. The back-end interface carries no
// address; the controller plumbs it into tenant networks after registration.
func gatewayRequest(cfg *config.Config, image string, creds credentials.Set, gw config.GatewaySpec) hyperv.VMRequest {
	return newRequest(cfg, image, creds, gw.NodeSpec, RoleGateway, []hyperv.NIC{
		managementNIC(cfg, gw.NodeSpec),
		{
			Name:       "frontend",
			MACAddress: gw.FrontEnd.MACAddress,
			IPAddress:  gw.FrontEnd.IPAddress,
			VLANID:     cfg.Management.VLANID,
		},
		{
			Name:       "backend",
			MACAddress: gw.BackEnd.MACAddress,
		},
	})
}

func managementNIC(cfg *config.Config, node config.NodeSpec) hyperv.NIC {
	return hyperv.NIC{
		Name:       "management",
		MACAddress: node.MACAddress,
		IPAddress:  node.IPAddress,
		VLANID:     cfg.Management.VLANID,
	}
}

func processorCount(cfg *config.Config) int {
	if cfg.VMProcessorCount > 0 {
		return cfg.VMProcessorCount
	}
	return config.DefaultProcessorCount
}

func memoryBytes(cfg *config.Config) int64 {
	if cfg.VMMemoryBytes > 0 {
		return cfg.VMMemoryBytes
	}
	return config.DefaultMemoryBytes
}
