// Package config defines the deployment configuration and methods for loading
// and validating it.
package config

// Config describes a full SDN control-plane deployment: the hypervisor hosts,
// the controller/MUX/gateway nodes to create on them, network topology, and
// the credential material the run needs.
type Config struct {
	// Version must match SupportedVersion or the run aborts before any
	// side effect.
	Version string `yaml:"version"`

	// RestName is the DNS name of the network controller's management
	// endpoint and the subject its REST certificate is bound to.
	RestName string `yaml:"rest_name"`

	// RestIPAddress optionally pins the REST endpoint to a dedicated IP
	// instead of relying on dynamic DNS registration.
	RestIPAddress string `yaml:"rest_ip_address,omitempty"`

	// SwitchName is the virtual switch on every hypervisor host.
	SwitchName string `yaml:"switch_name"`

	// ImageSource is the golden VM image: a path reachable from the hosts,
	// an HTTPS URL, or an s3:// URL staged through ImageStore.
	ImageSource string `yaml:"image_source"`

	// ImageStore holds object-storage access for s3:// image sources.
	ImageStore *ImageStoreConfig `yaml:"image_store,omitempty"`

	Management ManagementNetwork `yaml:"management"`
	PASubnet   PANetwork         `yaml:"pa_subnet"`

	// PrivateVIPPrefix and PublicVIPPrefix configure the software load
	// balancer manager's virtual IP pools.
	PrivateVIPPrefix string `yaml:"private_vip_prefix"`
	PublicVIPPrefix  string `yaml:"public_vip_prefix"`

	// SecurityGroups optionally restrict management access to the
	// controller cluster.
	SecurityGroups []string `yaml:"security_groups,omitempty"`

	Hosts       []HostSpec    `yaml:"hosts"`
	Controllers []NodeSpec    `yaml:"controllers,omitempty"`
	Muxes       []MuxSpec     `yaml:"muxes,omitempty"`
	Gateways    []GatewaySpec `yaml:"gateways,omitempty"`

	GatewayPool GatewayPoolConfig `yaml:"gateway_pool,omitempty"`

	Credentials CredentialsConfig `yaml:"credentials"`

	// VMProcessorCount and VMMemoryBytes size every created VM.
	// Zero means the deployment defaults (8 processors, 8 GiB).
	VMProcessorCount int   `yaml:"vm_processor_count,omitempty"`
	VMMemoryBytes    int64 `yaml:"vm_memory_bytes,omitempty"`

	// TrustedRootDir is the local trusted-root certificate store, a
	// directory of PEM files. Empty means the built-in default.
	TrustedRootDir string `yaml:"trusted_root_dir,omitempty"`
}

// ManagementNetwork describes the management subnet VMs attach to.
type ManagementNetwork struct {
	Subnet       string   `yaml:"subnet"`
	Gateway      string   `yaml:"gateway"`
	VLANID       int      `yaml:"vlan_id"`
	DNS          []string `yaml:"dns,omitempty"`
	MACPoolStart string   `yaml:"mac_pool_start"`
	MACPoolEnd   string   `yaml:"mac_pool_end"`
}

// PANetwork describes the provider-address subnet carrying virtualized traffic.
type PANetwork struct {
	Prefix    string `yaml:"prefix"`
	VLANID    int    `yaml:"vlan_id"`
	Gateway   string `yaml:"gateway"`
	PoolStart string `yaml:"pool_start"`
	PoolEnd   string `yaml:"pool_end"`
}

// ImageStoreConfig holds S3-compatible object storage access for image staging.
type ImageStoreConfig struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// HostSpec identifies one pre-existing hypervisor host.
type HostSpec struct {
	Name string `yaml:"name"`
}

// NodeSpec places one VM on a host. IPAddress is CIDR notation
// (e.g. 10.127.132.35/25) on the management network.
type NodeSpec struct {
	Host       string `yaml:"host"`
	VMName     string `yaml:"vm_name"`
	MACAddress string `yaml:"mac_address"`
	IPAddress  string `yaml:"ip_address"`
}

// MuxSpec describes a software load balancer MUX node: a management-attached
// VM with an additional provider-address interface and BGP peering.
type MuxSpec struct {
	NodeSpec     `yaml:",inline"`
	PAIPAddress  string      `yaml:"pa_ip_address"`
	PAMACAddress string      `yaml:"pa_mac_address"`
	ASN          uint32      `yaml:"asn"`
	Routers      []BGPRouter `yaml:"routers,omitempty"`
}

// BGPRouter is an upstream router a MUX peers with.
type BGPRouter struct {
	RouterIP string `yaml:"router_ip"`
	ASN      uint32 `yaml:"asn"`
}

// GatewaySpec describes a gateway VM with front-end and back-end interfaces
// in addition to its management interface.
type GatewaySpec struct {
	NodeSpec `yaml:",inline"`
	FrontEnd NICSpec `yaml:"front_end"`
	BackEnd  NICSpec `yaml:"back_end"`
}

// NICSpec is one additional network interface on a node.
type NICSpec struct {
	MACAddress string `yaml:"mac_address"`
	IPAddress  string `yaml:"ip_address,omitempty"`
}

// GatewayPoolConfig configures the pool created before gateway registration.
type GatewayPoolConfig struct {
	Name      string `yaml:"name"`
	Capacity  uint64 `yaml:"capacity_kbps,omitempty"`
	GRESubnet string `yaml:"gre_subnet,omitempty"`

	// RedundantCount is the number of standby gateways kept in the pool.
	// Zero means the default of 1.
	RedundantCount int `yaml:"redundant_count,omitempty"`
}

// CredentialsConfig holds the three credential roles a run resolves.
type CredentialsConfig struct {
	DomainJoin CredentialSpec `yaml:"domain_join"`
	NCService  CredentialSpec `yaml:"nc_service"`
	LocalAdmin CredentialSpec `yaml:"local_admin"`
}

// CredentialSpec is stored credential material: a username plus an optional
// vault-sealed password. An empty sealed password means the run prompts.
type CredentialSpec struct {
	Username       string `yaml:"username"`
	SealedPassword string `yaml:"sealed_password,omitempty"`
}
