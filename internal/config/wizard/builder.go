package wizard

import (
	"strings"

	"github.com/sdnfabric/sdnctl/internal/config"
)

// BuildConfig creates a Config struct from the wizard result. Node sections
// are left empty; the generated file documents how to add them.
func BuildConfig(result *Result) *config.Config {
	cfg := &config.Config{
		Version:       config.SupportedVersion,
		RestName:      result.RestName,
		RestIPAddress: strings.TrimSpace(result.RestIPAddress),
		SwitchName:    result.SwitchName,
		ImageSource:   result.ImageSource,
		Management: config.ManagementNetwork{
			Subnet:       result.ManagementSubnet,
			Gateway:      result.ManagementGateway,
			VLANID:       result.ManagementVLAN,
			DNS:          result.ManagementDNS,
			MACPoolStart: result.MACPoolStart,
			MACPoolEnd:   result.MACPoolEnd,
		},
		PASubnet: config.PANetwork{
			Prefix:    result.PAPrefix,
			VLANID:    result.PAVLAN,
			Gateway:   result.PAGateway,
			PoolStart: result.PAPoolStart,
			PoolEnd:   result.PAPoolEnd,
		},
		PrivateVIPPrefix: result.PrivateVIPPrefix,
		PublicVIPPrefix:  result.PublicVIPPrefix,
		Credentials: config.CredentialsConfig{
			DomainJoin: config.CredentialSpec{Username: result.DomainJoinUser},
			NCService:  config.CredentialSpec{Username: result.NCServiceUser},
			LocalAdmin: config.CredentialSpec{Username: result.LocalAdminUser},
		},
	}

	for _, host := range result.Hosts {
		cfg.Hosts = append(cfg.Hosts, config.HostSpec{Name: host})
	}

	if result.GatewayPoolName != "" {
		cfg.GatewayPool = config.GatewayPoolConfig{Name: result.GatewayPoolName}
	}

	if strings.HasPrefix(result.ImageSource, "s3://") {
		cfg.ImageStore = &config.ImageStoreConfig{
			Endpoint:  result.S3Endpoint,
			Region:    result.S3Region,
			AccessKey: result.S3AccessKey,
			SecretKey: result.S3SecretKey,
		}
	}

	return cfg
}
