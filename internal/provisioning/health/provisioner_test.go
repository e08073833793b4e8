package health

import (
	"context"
	"crypto/x509"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdnfabric/sdnctl/internal/config"
	"github.com/sdnfabric/sdnctl/internal/credentials"
	"github.com/sdnfabric/sdnctl/internal/platform/certstore"
	"github.com/sdnfabric/sdnctl/internal/platform/hyperv"
	"github.com/sdnfabric/sdnctl/internal/platform/netcontroller"
	"github.com/sdnfabric/sdnctl/internal/platform/remote"
	"github.com/sdnfabric/sdnctl/internal/provisioning"
	testfix "github.com/sdnfabric/sdnctl/internal/testing"
)

func newTestContext(t *testing.T) (*provisioning.Context, *netcontroller.MockManager) {
	t.Helper()

	manager := &netcontroller.MockManager{}
	ctx := provisioning.NewContext(
		context.Background(),
		testfix.ValidConfig(),
		credentials.Set{},
		&remote.MockRunner{},
		&hyperv.MockCreator{},
		certstore.NewDirStore(t.TempDir()),
		func(string, credentials.Credential, *x509.Certificate) netcontroller.Manager {
			return manager
		},
	)
	ctx.Timeouts = &config.Timeouts{
		Readiness:     200 * time.Millisecond,
		ReadinessPoll: time.Millisecond,
		RemoteOp:      time.Second,
		RestCall:      time.Second,
		PresignTTL:    time.Hour,
		RetryMaxPolls: 20,
	}
	ctx.State.Controller = manager
	return ctx, manager
}

func TestProvision_Healthy(t *testing.T) {
	ctx, manager := newTestContext(t)

	require.NoError(t, NewProvisioner().Provision(ctx))
	assert.Equal(t, 1, manager.StateCalls)
}

func TestProvision_ConvergesAfterRetries(t *testing.T) {
	ctx, manager := newTestContext(t)

	remaining := 2
	manager.ConfigurationStateFunc = func(context.Context) error {
		if remaining > 0 {
			remaining--
			return errors.New("status Degraded")
		}
		return nil
	}

	require.NoError(t, NewProvisioner().Provision(ctx))
	assert.Equal(t, 3, manager.StateCalls)
}

func TestProvision_PersistentlyUnhealthy(t *testing.T) {
	ctx, manager := newTestContext(t)

	manager.ConfigurationStateFunc = func(context.Context) error {
		return errors.New("status Degraded")
	}

	err := NewProvisioner().Provision(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration unhealthy")
	assert.Equal(t, 5, manager.StateCalls, "bounded retries, then fail")
}
