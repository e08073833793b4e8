package hostprep

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

func newTestContext(t *testing.T) (*provisioning.Context, *remote.MockRunner) {
	t.Helper()

	runner := &remote.MockRunner{}
	ctx := provisioning.NewContext(
		context.Background(),
		testfix.ValidConfig(),
		credentials.Set{
			DomainJoin: credentials.Credential{Username: "contoso\\deploy", Password: "secret"},
		},
		runner,
		&hyperv.MockCreator{},
		certstore.NewDirStore(t.TempDir()),
		func(string, credentials.Credential, *x509.Certificate) netcontroller.Manager {
			return &netcontroller.MockManager{}
		},
	)
	ctx.Timeouts.RemoteOp = time.Second
	return ctx, runner
}

func TestProvision_RunsStepsInOrderPerHost(t *testing.T) {
	ctx, runner := newTestContext(t)

	require.NoError(t, NewProvisioner().Provision(ctx))

	calls := runner.Calls()
	require.Len(t, calls, 6, "three steps for each of two hosts")

	wantOps := []remote.Operation{
		remote.OpEnsureService,
		remote.OpEnableSwitchExtension,
		remote.OpEnableFeature,
	}
	for i, host := range []string{"host1.contoso.local", "host2.contoso.local"} {
		for j, op := range wantOps {
			call := calls[i*3+j]
			assert.Equal(t, host, call.Host)
			assert.Equal(t, op, call.Op)
		}
	}
}

func TestProvision_StepArguments(t *testing.T) {
	ctx, runner := newTestContext(t)

	require.NoError(t, NewProvisioner().Provision(ctx))

	svc := runner.CallsFor(remote.OpEnsureService)[0]
	assert.Equal(t, config.HostAgentService, svc.Args["service"])

	ext := runner.CallsFor(remote.OpEnableSwitchExtension)[0]
	assert.Equal(t, "sdnSwitch", ext.Args["switch"])
	assert.Equal(t, config.SwitchExtension, ext.Args["extension"])

	feat := runner.CallsFor(remote.OpEnableFeature)[0]
	assert.Equal(t, config.NetworkVirtualizationFeature, feat.Args["feature"])
}

func TestProvision_FirstHostFailureAbortsPhase(t *testing.T) {
	ctx, runner := newTestContext(t)

	boom := errors.New("access denied")
	runner.RunFunc = func(_ context.Context, host string, _ credentials.Credential, op remote.Operation, _ map[string]string) (string, error) {
		if host == "host1.contoso.local" && op == remote.OpEnableSwitchExtension {
			return "", boom
		}
		return "", nil
	}

	err := NewProvisioner().Provision(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	for _, call := range runner.Calls() {
		assert.NotEqual(t, "host2.contoso.local", call.Host, "second host must not be touched")
	}
}

func TestProvision_NoHosts(t *testing.T) {
	ctx, runner := newTestContext(t)
	ctx.Config.Hosts = nil

	require.NoError(t, NewProvisioner().Provision(ctx))
	assert.Empty(t, runner.Calls())
}
