package wizard

import (
	"context"
	"fmt"
)

// Result holds all the answers from the interactive wizard.
type Result struct {
	// Deployment identity
	RestName      string
	RestIPAddress string
	SwitchName    string

	// Image
	ImageSource string
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string

	// Management network
	ManagementSubnet  string
	ManagementGateway string
	ManagementVLAN    int
	ManagementDNS     []string
	MACPoolStart      string
	MACPoolEnd        string

	// Provider-address network
	PAPrefix    string
	PAVLAN      int
	PAGateway   string
	PAPoolStart string
	PAPoolEnd   string

	// Load balancer VIP prefixes
	PrivateVIPPrefix string
	PublicVIPPrefix  string

	// Topology
	Hosts           []string
	GatewayPoolName string

	// Credential usernames. Passwords are sealed separately via
	// `sdnctl secrets`, never captured here.
	DomainJoinUser string
	NCServiceUser  string
	LocalAdminUser string
}

// RunWizard runs the interactive configuration wizard. The context is used
// for cancellation support (e.g., Ctrl+C); an aborted form surfaces
// huh.ErrUserAborted to the caller.
func RunWizard(ctx context.Context) (*Result, error) {
	result := &Result{}

	if err := runIdentityGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("deployment identity: %w", err)
	}

	if err := runImageGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("image: %w", err)
	}

	if err := runManagementNetworkGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("management network: %w", err)
	}

	if err := runProviderNetworkGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("provider network: %w", err)
	}

	if err := runVIPGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("load balancer: %w", err)
	}

	if err := runTopologyGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("topology: %w", err)
	}

	if err := runCredentialsGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("credentials: %w", err)
	}

	return result, nil
}
