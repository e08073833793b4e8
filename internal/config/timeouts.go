package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	Readiness     time.Duration // Total bound for a role's VMs to answer management probes
	ReadinessPoll time.Duration // Initial delay between readiness probes
	RemoteOp      time.Duration // Timeout for a single remote host-agent call
	RestCall      time.Duration // Timeout for a single controller REST call
	PresignTTL    time.Duration // Lifetime of presigned image URLs
	RetryMaxPolls int           // Upper bound on readiness probe attempts
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - SDNCTL_TIMEOUT_READINESS (default: 20m)
//   - SDNCTL_READINESS_POLL (default: 5s)
//   - SDNCTL_TIMEOUT_REMOTE_OP (default: 5m)
//   - SDNCTL_TIMEOUT_REST_CALL (default: 2m)
//   - SDNCTL_PRESIGN_TTL (default: 1h)
//   - SDNCTL_READINESS_MAX_POLLS (default: 240)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		Readiness:     parseDuration("SDNCTL_TIMEOUT_READINESS", 20*time.Minute),
		ReadinessPoll: parseDuration("SDNCTL_READINESS_POLL", 5*time.Second),
		RemoteOp:      parseDuration("SDNCTL_TIMEOUT_REMOTE_OP", 5*time.Minute),
		RestCall:      parseDuration("SDNCTL_TIMEOUT_REST_CALL", 2*time.Minute),
		PresignTTL:    parseDuration("SDNCTL_PRESIGN_TTL", time.Hour),
		RetryMaxPolls: parseInt("SDNCTL_READINESS_MAX_POLLS", 240),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
