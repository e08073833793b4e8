// Package testing provides shared fixtures for unit tests.
package testing

import "github.com/sdnfabric/sdnctl/internal/config"

// ValidConfig returns a complete deployment configuration with three
// controller nodes, two MUXes, and one gateway spread over two hosts.
// Tests mutate the copy to build their scenarios.
func ValidConfig() *config.Config {
	return &config.Config{
		Version:     config.SupportedVersion,
		RestName:    "contoso-rest",
		SwitchName:  "sdnSwitch",
		ImageSource: "/srv/images/sdn-base.vhdx",
		Management: config.ManagementNetwork{
			Subnet:       "10.127.132.0/25",
			Gateway:      "10.127.132.1",
			VLANID:       7,
			DNS:          []string{"10.127.130.7"},
			MACPoolStart: "00-1D-D8-B7-1C-00",
			MACPoolEnd:   "00-1D-D8-F4-1F-FF",
		},
		PASubnet: config.PANetwork{
			Prefix:    "10.10.56.0/23",
			VLANID:    11,
			Gateway:   "10.10.56.1",
			PoolStart: "10.10.56.100",
			PoolEnd:   "10.10.56.200",
		},
		PrivateVIPPrefix: "10.20.24.0/24",
		PublicVIPPrefix:  "41.40.40.0/27",
		Hosts: []config.HostSpec{
			{Name: "host1.contoso.local"},
			{Name: "host2.contoso.local"},
		},
		Controllers: []config.NodeSpec{
			{Host: "host1.contoso.local", VMName: "nc-01", MACAddress: "00-1D-D8-B7-1C-01", IPAddress: "10.127.132.31/25"},
			{Host: "host2.contoso.local", VMName: "nc-02", MACAddress: "00-1D-D8-B7-1C-02", IPAddress: "10.127.132.32/25"},
			{Host: "host1.contoso.local", VMName: "nc-03", MACAddress: "00-1D-D8-B7-1C-03", IPAddress: "10.127.132.33/25"},
		},
		Muxes: []config.MuxSpec{
			{
				NodeSpec:     config.NodeSpec{Host: "host1.contoso.local", VMName: "mux-01", MACAddress: "00-1D-D8-B7-1C-11", IPAddress: "10.127.132.41/25"},
				PAIPAddress:  "10.10.56.2/23",
				PAMACAddress: "00-1D-D8-B7-1C-12",
				ASN:          64628,
				Routers:      []config.BGPRouter{{RouterIP: "10.10.56.1", ASN: 64623}},
			},
			{
				NodeSpec:     config.NodeSpec{Host: "host2.contoso.local", VMName: "mux-02", MACAddress: "00-1D-D8-B7-1C-13", IPAddress: "10.127.132.42/25"},
				PAIPAddress:  "10.10.56.3/23",
				PAMACAddress: "00-1D-D8-B7-1C-14",
				ASN:          64628,
				Routers:      []config.BGPRouter{{RouterIP: "10.10.56.1", ASN: 64623}},
			},
		},
		Gateways: []config.GatewaySpec{
			{
				NodeSpec: config.NodeSpec{Host: "host2.contoso.local", VMName: "gw-01", MACAddress: "00-1D-D8-B7-1C-21", IPAddress: "10.127.132.51/25"},
				FrontEnd: config.NICSpec{MACAddress: "00-1D-D8-B7-1C-22", IPAddress: "10.127.132.52/25"},
				BackEnd:  config.NICSpec{MACAddress: "00-1D-D8-B7-1C-23"},
			},
		},
		GatewayPool: config.GatewayPoolConfig{
			Name:      "default-gw-pool",
			Capacity:  10_000_000,
			GRESubnet: "10.30.16.0/24",
		},
		Credentials: config.CredentialsConfig{
			DomainJoin: config.CredentialSpec{Username: "contoso\\deploy"},
			NCService:  config.CredentialSpec{Username: "contoso\\ncsvc"},
			LocalAdmin: config.CredentialSpec{Username: "Administrator"},
		},
	}
}
