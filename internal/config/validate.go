package config

import (
	"fmt"
	"net"
)

// Validate checks the configuration for common errors. Version is checked
// first: an incompatible configuration fails before any other diagnostics.
func (c *Config) Validate() error {
	if err := c.CheckVersion(); err != nil {
		return err
	}

	if c.RestName == "" {
		return fmt.Errorf("rest_name is required")
	}
	if c.SwitchName == "" {
		return fmt.Errorf("switch_name is required")
	}
	if len(c.Hosts) == 0 {
		return fmt.Errorf("at least one hypervisor host is required")
	}
	for i, h := range c.Hosts {
		if h.Name == "" {
			return fmt.Errorf("hosts[%d]: name is required", i)
		}
	}

	if err := c.validateNetworks(); err != nil {
		return fmt.Errorf("network validation failed: %w", err)
	}
	if err := c.validateNodes(); err != nil {
		return fmt.Errorf("node validation failed: %w", err)
	}

	if len(c.Controllers) > 0 || len(c.Muxes) > 0 || len(c.Gateways) > 0 {
		if c.ImageSource == "" {
			return fmt.Errorf("image_source is required when nodes are declared")
		}
	}
	if len(c.Gateways) > 0 && c.GatewayPool.Name == "" {
		return fmt.Errorf("gateway_pool.name is required when gateways are declared")
	}

	return nil
}

func (c *Config) validateNetworks() error {
	if err := validateCIDR("management.subnet", c.Management.Subnet); err != nil {
		return err
	}
	if err := validateCIDR("pa_subnet.prefix", c.PASubnet.Prefix); err != nil {
		return err
	}
	for _, field := range []struct{ name, value string }{
		{"private_vip_prefix", c.PrivateVIPPrefix},
		{"public_vip_prefix", c.PublicVIPPrefix},
	} {
		if field.value == "" {
			continue
		}
		if err := validateCIDR(field.name, field.value); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateNodes() error {
	hosts := make(map[string]bool, len(c.Hosts))
	for _, h := range c.Hosts {
		hosts[h.Name] = true
	}
	names := make(map[string]bool)

	check := func(role string, i int, n NodeSpec) error {
		if n.VMName == "" {
			return fmt.Errorf("%s[%d]: vm_name is required", role, i)
		}
		if names[n.VMName] {
			return fmt.Errorf("%s[%d]: duplicate vm_name %q", role, i, n.VMName)
		}
		names[n.VMName] = true
		if !hosts[n.Host] {
			return fmt.Errorf("%s[%d]: host %q is not in the hosts list", role, i, n.Host)
		}
		if n.IPAddress != "" {
			if err := validateCIDR(fmt.Sprintf("%s[%d].ip_address", role, i), n.IPAddress); err != nil {
				return err
			}
		}
		return nil
	}

	for i, n := range c.Controllers {
		if err := check("controllers", i, n); err != nil {
			return err
		}
	}
	for i, m := range c.Muxes {
		if err := check("muxes", i, m.NodeSpec); err != nil {
			return err
		}
		if m.PAIPAddress == "" {
			return fmt.Errorf("muxes[%d]: pa_ip_address is required", i)
		}
	}
	for i, g := range c.Gateways {
		if err := check("gateways", i, g.NodeSpec); err != nil {
			return err
		}
	}
	return nil
}

// validateCIDR checks a value is x.x.x.x/nn notation.
func validateCIDR(field, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required", field)
	}
	if _, _, err := net.ParseCIDR(value); err != nil {
		return fmt.Errorf("%s: invalid CIDR %q", field, value)
	}
	return nil
}
