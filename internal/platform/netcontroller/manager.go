// Package netcontroller talks to the network controller's northbound
// management API.
//
// Every call is a request/response against the controller's REST endpoint,
// keyed by the REST name and authenticated with the network controller
// service credential. The Manager interface keeps the provisioning pipeline
// testable without a live controller.
package netcontroller

import "context"

// NetworkManagerParams configures the virtual network manager: the MAC pool
// handed out to tenant workloads and the certificate securing southbound
// communication.
type NetworkManagerParams struct {
	MACPoolStart   string
	MACPoolEnd     string
	CertThumbprint string
}

// LoadBalancerManagerParams configures the software load balancer manager's
// virtual IP pools.
type LoadBalancerManagerParams struct {
	PrivateVIPPrefix string
	PublicVIPPrefix  string
}

// SubnetParams registers the provider-address logical subnet.
type SubnetParams struct {
	Prefix    string
	VLANID    int
	Gateway   string
	PoolStart string
	PoolEnd   string
}

// HostParams registers one hypervisor host as a controller-managed server.
type HostParams struct {
	Name           string
	PASubnetPrefix string
	SwitchName     string
	CertThumbprint string
}

// MuxParams registers one software load balancer MUX with its BGP peering.
type MuxParams struct {
	Name           string
	PAIPAddress    string
	ASN            uint32
	Routers        []RouterPeer
	CertThumbprint string
}

// RouterPeer is one upstream BGP peer of a MUX.
type RouterPeer struct {
	RouterIP string
	ASN      uint32
}

// GatewayPoolParams creates the pool gateways join.
type GatewayPoolParams struct {
	Name           string
	Capacity       uint64
	GRESubnet      string
	RedundantCount int
}

// GatewayParams registers one gateway VM.
type GatewayParams struct {
	Name           string
	PoolName       string
	FrontEndIP     string
	FrontEndMAC    string
	BackEndMAC     string
	CertThumbprint string
}

// Manager is the controller management surface the pipeline drives.
type Manager interface {
	ConfigureNetworkManager(ctx context.Context, params NetworkManagerParams) error
	ConfigureLoadBalancerManager(ctx context.Context, params LoadBalancerManagerParams) error
	RegisterSubnet(ctx context.Context, params SubnetParams) error
	RegisterHost(ctx context.Context, params HostParams) error
	RegisterMux(ctx context.Context, params MuxParams) error
	CreateGatewayPool(ctx context.Context, params GatewayPoolParams) error
	RegisterGateway(ctx context.Context, params GatewayParams) error

	// ConfigurationState reports whether the controller considers its
	// configuration healthy. Used as the run's final health signal.
	ConfigurationState(ctx context.Context) error
}
