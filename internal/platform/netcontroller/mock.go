package netcontroller

import (
	"context"
	"sync"
)

// MockManager is a mock implementation of Manager for tests. Calls are
// recorded in order; the Func fields, when set, control responses.
type MockManager struct {
	ConfigureNetworkManagerFunc      func(ctx context.Context, params NetworkManagerParams) error
	ConfigureLoadBalancerManagerFunc func(ctx context.Context, params LoadBalancerManagerParams) error
	RegisterSubnetFunc               func(ctx context.Context, params SubnetParams) error
	RegisterHostFunc                 func(ctx context.Context, params HostParams) error
	RegisterMuxFunc                  func(ctx context.Context, params MuxParams) error
	CreateGatewayPoolFunc            func(ctx context.Context, params GatewayPoolParams) error
	RegisterGatewayFunc              func(ctx context.Context, params GatewayParams) error
	ConfigurationStateFunc           func(ctx context.Context) error

	mu    sync.Mutex
	order []string

	NetworkManagerCalls      []NetworkManagerParams
	LoadBalancerManagerCalls []LoadBalancerManagerParams
	SubnetCalls              []SubnetParams
	HostCalls                []HostParams
	MuxCalls                 []MuxParams
	GatewayPoolCalls         []GatewayPoolParams
	GatewayCalls             []GatewayParams
	StateCalls               int
}

var _ Manager = (*MockManager)(nil)

func (m *MockManager) record(name string) {
	m.order = append(m.order, name)
}

// Order returns the method names invoked, in order.
func (m *MockManager) Order() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// ConfigureNetworkManager implements Manager.
func (m *MockManager) ConfigureNetworkManager(ctx context.Context, params NetworkManagerParams) error {
	m.mu.Lock()
	m.record("ConfigureNetworkManager")
	m.NetworkManagerCalls = append(m.NetworkManagerCalls, params)
	m.mu.Unlock()
	if m.ConfigureNetworkManagerFunc != nil {
		return m.ConfigureNetworkManagerFunc(ctx, params)
	}
	return nil
}

// ConfigureLoadBalancerManager implements Manager.
func (m *MockManager) ConfigureLoadBalancerManager(ctx context.Context, params LoadBalancerManagerParams) error {
	m.mu.Lock()
	m.record("ConfigureLoadBalancerManager")
	m.LoadBalancerManagerCalls = append(m.LoadBalancerManagerCalls, params)
	m.mu.Unlock()
	if m.ConfigureLoadBalancerManagerFunc != nil {
		return m.ConfigureLoadBalancerManagerFunc(ctx, params)
	}
	return nil
}

// RegisterSubnet implements Manager.
func (m *MockManager) RegisterSubnet(ctx context.Context, params SubnetParams) error {
	m.mu.Lock()
	m.record("RegisterSubnet")
	m.SubnetCalls = append(m.SubnetCalls, params)
	m.mu.Unlock()
	if m.RegisterSubnetFunc != nil {
		return m.RegisterSubnetFunc(ctx, params)
	}
	return nil
}

// RegisterHost implements Manager.
func (m *MockManager) RegisterHost(ctx context.Context, params HostParams) error {
	m.mu.Lock()
	m.record("RegisterHost")
	m.HostCalls = append(m.HostCalls, params)
	m.mu.Unlock()
	if m.RegisterHostFunc != nil {
		return m.RegisterHostFunc(ctx, params)
	}
	return nil
}

// RegisterMux implements Manager.
func (m *MockManager) RegisterMux(ctx context.Context, params MuxParams) error {
	m.mu.Lock()
	m.record("RegisterMux")
	m.MuxCalls = append(m.MuxCalls, params)
	m.mu.Unlock()
	if m.RegisterMuxFunc != nil {
		return m.RegisterMuxFunc(ctx, params)
	}
	return nil
}

// CreateGatewayPool implements Manager.
func (m *MockManager) CreateGatewayPool(ctx context.Context, params GatewayPoolParams) error {
	m.mu.Lock()
	m.record("CreateGatewayPool")
	m.GatewayPoolCalls = append(m.GatewayPoolCalls, params)
	m.mu.Unlock()
	if m.CreateGatewayPoolFunc != nil {
		return m.CreateGatewayPoolFunc(ctx, params)
	}
	return nil
}

// RegisterGateway implements Manager.
func (m *MockManager) RegisterGateway(ctx context.Context, params GatewayParams) error {
	m.mu.Lock()
	m.record("RegisterGateway")
	m.GatewayCalls = append(m.GatewayCalls, params)
	m.mu.Unlock()
	if m.RegisterGatewayFunc != nil {
		return m.RegisterGatewayFunc(ctx, params)
	}
	return nil
}

// ConfigurationState implements Manager.
func (m *MockManager) ConfigurationState(ctx context.Context) error {
	m.mu.Lock()
	m.record("ConfigurationState")
	m.StateCalls++
	m.mu.Unlock()
	if m.ConfigurationStateFunc != nil {
		return m.ConfigurationStateFunc(ctx)
	}
	return nil
}
