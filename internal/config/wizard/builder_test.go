package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdnfabric/sdnctl/internal/config"
)

func sampleResult() *Result {
	return &Result{
		RestName:          "contoso-rest",
		SwitchName:        "sdnSwitch",
		ImageSource:       "/srv/images/sdn-base.vhdx",
		ManagementSubnet:  "10.127.132.0/25",
		ManagementGateway: "10.127.132.1",
		ManagementVLAN:    7,
		ManagementDNS:     []string{"10.127.130.7"},
		MACPoolStart:      "00-1D-D8-B7-1C-00",
		MACPoolEnd:        "00-1D-D8-F4-1F-FF",
		PAPrefix:          "10.10.56.0/23",
		PAVLAN:            11,
		PAGateway:         "10.10.56.1",
		PAPoolStart:       "10.10.56.100",
		PAPoolEnd:         "10.10.56.200",
		PrivateVIPPrefix:  "10.20.24.0/24",
		PublicVIPPrefix:   "41.40.40.0/27",
		Hosts:             []string{"host1.contoso.local", "host2.contoso.local"},
		DomainJoinUser:    "contoso\\deploy",
		NCServiceUser:     "contoso\\ncsvc",
		LocalAdminUser:    "Administrator",
	}
}

func TestBuildConfig(t *testing.T) {
	cfg := BuildConfig(sampleResult())

	assert.Equal(t, config.SupportedVersion, cfg.Version)
	assert.Equal(t, "contoso-rest", cfg.RestName)
	assert.Equal(t, "sdnSwitch", cfg.SwitchName)
	require.Len(t, cfg.Hosts, 2)
	assert.Equal(t, "host1.contoso.local", cfg.Hosts[0].Name)
	assert.Equal(t, 7, cfg.Management.VLANID)
	assert.Equal(t, "10.10.56.0/23", cfg.PASubnet.Prefix)
	assert.Equal(t, "contoso\\ncsvc", cfg.Credentials.NCService.Username)
	assert.Nil(t, cfg.ImageStore)
	assert.Empty(t, cfg.Controllers, "node sections are left for the operator")
}

func TestBuildConfig_ObjectStoreImage(t *testing.T) {
	result := sampleResult()
	result.ImageSource = "s3://images/sdn-base.vhdx"
	result.S3Endpoint = "https://s3.contoso.local"
	result.S3Region = "us-east-1"
	result.S3AccessKey = "AKID"
	result.S3SecretKey = "sk"

	cfg := BuildConfig(result)

	require.NotNil(t, cfg.ImageStore)
	assert.Equal(t, "https://s3.contoso.local", cfg.ImageStore.Endpoint)
	assert.Equal(t, "AKID", cfg.ImageStore.AccessKey)
}

func TestBuildConfig_GatewayPool(t *testing.T) {
	result := sampleResult()
	result.GatewayPoolName = "default-gw-pool"

	cfg := BuildConfig(result)

	assert.Equal(t, "default-gw-pool", cfg.GatewayPool.Name)
}

func TestBuildConfig_PassesValidation(t *testing.T) {
	cfg := BuildConfig(sampleResult())
	assert.NoError(t, cfg.Validate())
}
