// Package hyperv requests virtual machine creation on hypervisor hosts
// through their host agents.
package hyperv

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sdnfabric/sdnctl/internal/credentials"
	"github.com/sdnfabric/sdnctl/internal/platform/remote"
)

// NIC is one network interface on a VM to create.
type NIC struct {
	Name       string `json:"name"`
	MACAddress string `json:"macAddress"`
	IPAddress  string `json:"ipAddress,omitempty"` // CIDR notation, empty for DHCP-less interfaces
	VLANID     int    `json:"vlanId"`
	IsPA       bool   `json:"isProviderAddress,omitempty"`
}

// VMRequest fully describes one VM to create. Values are built fresh per
// node and never mutated after construction, so nothing can leak between
// creation calls.
type VMRequest struct {
	Host           string `json:"-"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	ImageSource    string `json:"imageSource"`
	ProcessorCount int    `json:"processorCount"`
	MemoryBytes    int64  `json:"memoryBytes"`
	SwitchName     string `json:"switchName"`
	NICs           []NIC  `json:"nics"`

	DomainJoin credentials.Credential `json:"-"`
	LocalAdmin credentials.Credential `json:"-"`
}

// Creator requests VM creation. It does not wait for the VM to become
// manageable; readiness gating happens separately.
type Creator interface {
	CreateVM(ctx context.Context, req VMRequest) error
}

// AgentCreator drives VM creation through the placement host's agent.
type AgentCreator struct {
	Runner remote.Runner

	// RunCred authenticates against the host agent.
	RunCred credentials.Credential
}

var _ Creator = (*AgentCreator)(nil)

// NewAgentCreator creates a Creator backed by host agent calls.
func NewAgentCreator(runner remote.Runner, runCred credentials.Credential) *AgentCreator {
	return &AgentCreator{Runner: runner, RunCred: runCred}
}

// CreateVM implements Creator. The image is staged first so a slow image
// copy fails distinctly from the creation call itself.
func (c *AgentCreator) CreateVM(ctx context.Context, req VMRequest) error {
	if _, err := c.Runner.Run(ctx, req.Host, c.RunCred, remote.OpStageImage, map[string]string{
		"source": req.ImageSource,
	}); err != nil {
		return fmt.Errorf("staging image for %s: %w", req.Name, err)
	}

	spec, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encoding VM spec for %s: %w", req.Name, err)
	}

	args := map[string]string{
		"spec":           string(spec),
		"join_user":      req.DomainJoin.Username,
		"join_password":  req.DomainJoin.Password,
		"admin_user":     req.LocalAdmin.Username,
		"admin_password": req.LocalAdmin.Password,
	}
	if _, err := c.Runner.Run(ctx, req.Host, c.RunCred, remote.OpCreateVM, args); err != nil {
		return fmt.Errorf("creating VM %s on %s: %w", req.Name, req.Host, err)
	}
	return nil
}

// MockCreator is a mock implementation of Creator for tests.
type MockCreator struct {
	CreateVMFunc func(ctx context.Context, req VMRequest) error

	Requests []VMRequest
}

var _ Creator = (*MockCreator)(nil)

// CreateVM implements Creator.
func (m *MockCreator) CreateVM(ctx context.Context, req VMRequest) error {
	m.Requests = append(m.Requests, req)
	if m.CreateVMFunc != nil {
		return m.CreateVMFunc(ctx, req)
	}
	return nil
}
