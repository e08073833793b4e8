package wizard

import (
	"context"
	"net"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

// restNameRegex validates DNS names: lowercase alphanumeric labels with
// hyphens, separated by dots.
var restNameRegex = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]*[a-z0-9])?(?:\.[a-z0-9](?:[a-z0-9-]*[a-z0-9])?)*$`)

// macRegex validates dash-separated MAC addresses.
var macRegex = regexp.MustCompile(`^(?:[0-9A-Fa-f]{2}-){5}[0-9A-Fa-f]{2}$`)

// runIdentityGroup prompts for the controller REST identity and switch name.
func runIdentityGroup(ctx context.Context, result *Result) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("REST Name").
				Description("DNS name of the network controller's management endpoint").
				Placeholder("nc.contoso.local").
				Value(&result.RestName).
				Validate(validateRestName),
			huh.NewInput().
				Title("REST IP Address (Optional)").
				Description("Pins the REST endpoint to a dedicated IP. Leave empty for dynamic DNS registration.").
				Value(&result.RestIPAddress).
				Validate(optional(validateIP)),
			huh.NewInput().
				Title("Virtual Switch Name").
				Description("The virtual switch present on every hypervisor host").
				Placeholder("sdnSwitch").
				Value(&result.SwitchName).
				Validate(validateSwitchName),
		).Title("Deployment Identity"),
	).RunWithContext(ctx)
}

// runImageGroup prompts for the golden image source, and object store access
// when the source is an s3:// URL.
func runImageGroup(ctx context.Context, result *Result) error {
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Image Source").
				Description("Golden VM image: a host-reachable path, HTTPS URL, or s3:// URL").
				Placeholder("\\\\fileserver\\images\\sdn-base.vhdx").
				Value(&result.ImageSource).
				Validate(validateImageSource),
		).Title("Image"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	if !strings.HasPrefix(result.ImageSource, "s3://") {
		return nil
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Object Store Endpoint").
				Placeholder("https://s3.contoso.local").
				Value(&result.S3Endpoint),
			huh.NewInput().
				Title("Region").
				Placeholder("us-east-1").
				Value(&result.S3Region),
			huh.NewInput().
				Title("Access Key").
				Value(&result.S3AccessKey),
			huh.NewInput().
				Title("Secret Key").
				EchoMode(huh.EchoModePassword).
				Value(&result.S3SecretKey),
		).Title("Object Store"),
	).RunWithContext(ctx)
}

// runManagementNetworkGroup prompts for the management subnet VMs attach to.
func runManagementNetworkGroup(ctx context.Context, result *Result) error {
	var vlanInput, dnsInput string

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Management Subnet").
				Placeholder("10.127.132.0/25").
				Value(&result.ManagementSubnet).
				Validate(validateCIDR),
			huh.NewInput().
				Title("Gateway").
				Value(&result.ManagementGateway).
				Validate(validateIP),
			huh.NewInput().
				Title("VLAN ID").
				Placeholder("0").
				Value(&vlanInput).
				Validate(validateVLAN),
			huh.NewInput().
				Title("DNS Servers (Optional)").
				Description("Comma-separated").
				Value(&dnsInput),
			huh.NewInput().
				Title("MAC Pool Start").
				Placeholder("00-1D-D8-B7-1C-00").
				Value(&result.MACPoolStart).
				Validate(validateMAC),
			huh.NewInput().
				Title("MAC Pool End").
				Placeholder("00-1D-D8-F4-1F-FF").
				Value(&result.MACPoolEnd).
				Validate(validateMAC),
		).Title("Management Network"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	result.ManagementVLAN, _ = strconv.Atoi(strings.TrimSpace(vlanInput))
	result.ManagementDNS = splitList(dnsInput)
	return nil
}

// runProviderNetworkGroup prompts for the provider-address subnet.
func runProviderNetworkGroup(ctx context.Context, result *Result) error {
	var vlanInput string

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Provider Address Prefix").
				Placeholder("10.10.56.0/23").
				Value(&result.PAPrefix).
				Validate(validateCIDR),
			huh.NewInput().
				Title("VLAN ID").
				Value(&vlanInput).
				Validate(validateVLAN),
			huh.NewInput().
				Title("Gateway").
				Value(&result.PAGateway).
				Validate(validateIP),
			huh.NewInput().
				Title("Pool Start").
				Value(&result.PAPoolStart).
				Validate(validateIP),
			huh.NewInput().
				Title("Pool End").
				Value(&result.PAPoolEnd).
				Validate(validateIP),
		).Title("Provider Network"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	result.PAVLAN, _ = strconv.Atoi(strings.TrimSpace(vlanInput))
	return nil
}

// runVIPGroup prompts for the software load balancer VIP prefixes.
func runVIPGroup(ctx context.Context, result *Result) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Private VIP Prefix").
				Placeholder("10.20.24.0/24").
				Value(&result.PrivateVIPPrefix).
				Validate(validateCIDR),
			huh.NewInput().
				Title("Public VIP Prefix").
				Placeholder("41.40.40.0/27").
				Value(&result.PublicVIPPrefix).
				Validate(validateCIDR),
		).Title("Load Balancer VIPs"),
	).RunWithContext(ctx)
}

// runTopologyGroup prompts for the hypervisor hosts and gateway pool name.
func runTopologyGroup(ctx context.Context, result *Result) error {
	var hostsInput string

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Hypervisor Hosts").
				Description("Comma-separated FQDNs of the pre-existing hosts").
				Placeholder("host1.contoso.local, host2.contoso.local").
				Value(&hostsInput).
				Validate(validateHosts),
			huh.NewInput().
				Title("Gateway Pool Name (Optional)").
				Description("Required only when gateway nodes will be added to the config").
				Placeholder("default-gw-pool").
				Value(&result.GatewayPoolName),
		).Title("Topology"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	result.Hosts = splitList(hostsInput)
	return nil
}

// runCredentialsGroup prompts for the credential usernames. Passwords are
// never captured by the wizard; they are sealed with `sdnctl secrets` or
// prompted at deploy time.
func runCredentialsGroup(ctx context.Context, result *Result) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Domain Join Username").
				Placeholder("contoso\\deploy").
				Value(&result.DomainJoinUser).
				Validate(required(errUsernameRequired)),
			huh.NewInput().
				Title("Controller Service Username").
				Placeholder("contoso\\ncsvc").
				Value(&result.NCServiceUser).
				Validate(required(errUsernameRequired)),
			huh.NewInput().
				Title("Local Administrator Username").
				Placeholder("Administrator").
				Value(&result.LocalAdminUser).
				Validate(required(errUsernameRequired)),
		).Title("Credentials"),
	).RunWithContext(ctx)
}

// Validation helpers

func validateRestName(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errRestNameRequired
	}
	if !restNameRegex.MatchString(s) {
		return errRestNameInvalid
	}
	return nil
}

func validateSwitchName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errSwitchNameRequired
	}
	return nil
}

func validateImageSource(s string) error {
	if strings.TrimSpace(s) == "" {
		return errImageRequired
	}
	return nil
}

func validateCIDR(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errCIDRRequired
	}
	if _, _, err := net.ParseCIDR(s); err != nil {
		return errCIDRInvalid
	}
	return nil
}

func validateIP(s string) error {
	if net.ParseIP(strings.TrimSpace(s)) == nil {
		return errIPInvalid
	}
	return nil
}

func validateMAC(s string) error {
	if !macRegex.MatchString(strings.TrimSpace(s)) {
		return errMACInvalid
	}
	return nil
}

func validateVLAN(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 4094 {
		return errVLANInvalid
	}
	return nil
}

func validateHosts(s string) error {
	if len(splitList(s)) == 0 {
		return errHostsRequired
	}
	return nil
}

// optional wraps a validator so the empty string passes.
func optional(validate func(string) error) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		return validate(s)
	}
}

// required returns a validator failing empty input with the given error.
func required(err error) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return err
		}
		return nil
	}
}

// splitList splits comma-separated input, trimming whitespace and dropping
// empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
