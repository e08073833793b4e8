package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errRestNameRequired   = errors.New("REST name is required")
	errRestNameInvalid    = errors.New("REST name must be a DNS name (lowercase alphanumeric labels separated by dots or hyphens)")
	errSwitchNameRequired = errors.New("switch name is required")
	errImageRequired      = errors.New("image source is required")
	errHostsRequired      = errors.New("at least one hypervisor host is required")
	errCIDRRequired       = errors.New("CIDR is required")
	errCIDRInvalid        = errors.New("invalid CIDR format (expected: x.x.x.x/xx)")
	errIPInvalid          = errors.New("invalid IP address")
	errMACInvalid         = errors.New("invalid MAC address (expected: XX-XX-XX-XX-XX-XX)")
	errVLANInvalid        = errors.New("VLAN ID must be between 0 and 4094")
	errUsernameRequired   = errors.New("username is required")
)
