package config

// SupportedVersion is the configuration schema version this build deploys.
// Configurations carrying any other version are rejected before the run
// performs a single remote call.
const SupportedVersion = "2.1"

const (
	// DefaultConfigFile is the configuration file auto-detected in the
	// working directory when no path is given.
	DefaultConfigFile = "sdnctl.yaml"

	// DefaultProcessorCount is the VM processor count when unset.
	DefaultProcessorCount = 8

	// DefaultMemoryBytes is the VM memory when unset (8 GiB).
	DefaultMemoryBytes = int64(8) << 30

	// DefaultRedundantCount is the gateway pool standby count when unset.
	DefaultRedundantCount = 1

	// DefaultTrustedRootDir is the local trusted-root certificate store.
	DefaultTrustedRootDir = "/etc/sdnctl/trusted-roots"

	// HostAgentService is the SDN host agent service ensured on every
	// hypervisor host.
	HostAgentService = "nchostagent"

	// SwitchExtension is the packet-filtering forwarding extension enabled
	// on the virtual switch of every host.
	SwitchExtension = "sdn-packet-filter"

	// NetworkVirtualizationFeature is the host role feature enabled on
	// every hypervisor host.
	NetworkVirtualizationFeature = "network-virtualization"
)
