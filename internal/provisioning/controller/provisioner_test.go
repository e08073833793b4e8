package controller

import (
	"context"
	"crypto/x509"
	"errors"
	"strings"
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

type fixture struct {
	ctx     *provisioning.Context
	runner  *remote.MockRunner
	manager *netcontroller.MockManager

	restCert   *x509.Certificate
	thumbprint string

	// factory call record
	factoryCalls int
	factoryCred  credentials.Credential
	factoryCert  *x509.Certificate
}

// newFixture builds a context whose trusted-root dir already holds the REST
// certificate and whose runner answers thumbprint queries with it.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		runner:  &remote.MockRunner{},
		manager: &netcontroller.MockManager{},
	}

	rootDir := t.TempDir()
	f.restCert = testfix.GenerateCert(t, "contoso-rest")
	f.thumbprint = certstore.Thumbprint(f.restCert)
	testfix.WriteCertPEM(t, rootDir, "contoso-rest.pem", f.restCert)

	f.runner.RunFunc = func(_ context.Context, _ string, _ credentials.Credential, op remote.Operation, _ map[string]string) (string, error) {
		switch op {
		case remote.OpProbe:
			return "ok", nil
		case remote.OpCertThumbprint:
			return f.thumbprint, nil
		}
		return "", nil
	}

	f.ctx = provisioning.NewContext(
		context.Background(),
		testfix.ValidConfig(),
		credentials.Set{
			DomainJoin: credentials.Credential{Username: "contoso\\deploy", Password: "dj"},
			NCService:  credentials.Credential{Username: "contoso\\ncsvc", Password: "nc"},
		},
		f.runner,
		&hyperv.MockCreator{},
		certstore.NewDirStore(rootDir),
		func(restName string, cred credentials.Credential, cert *x509.Certificate) netcontroller.Manager {
			f.factoryCalls++
			f.factoryCred = cred
			f.factoryCert = cert
			return f.manager
		},
	)
	f.ctx.Timeouts = &config.Timeouts{
		Readiness:     200 * time.Millisecond,
		ReadinessPoll: time.Millisecond,
		RemoteOp:      time.Second,
		RestCall:      time.Second,
		PresignTTL:    time.Hour,
		RetryMaxPolls: 20,
	}
	f.ctx.State.ControllerVMs = []string{"10.127.132.31", "10.127.132.32", "10.127.132.33"}
	return f
}

func TestProvision_BootstrapInstallsFromFirstNode(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, NewProvisioner().Provision(f.ctx))

	installs := f.runner.CallsFor(remote.OpInstallController)
	require.Len(t, installs, 1, "the cluster is created exactly once")
	install := installs[0]
	assert.Equal(t, "10.127.132.31", install.Host)
	assert.Equal(t, "contoso-rest", install.Args["rest_name"])
	assert.Equal(t, "10.127.132.31,10.127.132.32,10.127.132.33", install.Args["nodes"])
	_, hasRestIP := install.Args["rest_ip"]
	assert.False(t, hasRestIP, "rest_ip omitted unless pinned")
}

func TestProvision_BootstrapWaitsBeforeInstalling(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, NewProvisioner().Provision(f.ctx))

	calls := f.runner.Calls()
	firstInstall := -1
	lastProbeBefore := false
	for i, c := range calls {
		if c.Op == remote.OpInstallController {
			firstInstall = i
			break
		}
		if c.Op == remote.OpProbe {
			lastProbeBefore = true
		}
	}
	require.GreaterOrEqual(t, firstInstall, 0)
	assert.True(t, lastProbeBefore, "readiness probes must precede cluster creation")
}

func TestProvision_BootstrapConfiguresFabricObjects(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, NewProvisioner().Provision(f.ctx))

	assert.Equal(t, []string{
		"ConfigureNetworkManager",
		"ConfigureLoadBalancerManager",
		"RegisterSubnet",
	}, f.manager.Order())

	nm := f.manager.NetworkManagerCalls[0]
	assert.Equal(t, "00-1D-D8-B7-1C-00", nm.MACPoolStart)
	assert.Equal(t, f.thumbprint, nm.CertThumbprint)

	lb := f.manager.LoadBalancerManagerCalls[0]
	assert.Equal(t, "10.20.24.0/24", lb.PrivateVIPPrefix)
	assert.Equal(t, "41.40.40.0/27", lb.PublicVIPPrefix)

	subnet := f.manager.SubnetCalls[0]
	assert.Equal(t, "10.10.56.0/23", subnet.Prefix)
	assert.Equal(t, 11, subnet.VLANID)
}

func TestProvision_BootstrapStoresClientAndCert(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, NewProvisioner().Provision(f.ctx))

	assert.Equal(t, 1, f.factoryCalls)
	assert.Equal(t, f.ctx.Creds.NCService, f.factoryCred, "client authenticates with the service credential")
	assert.Equal(t, f.restCert, f.factoryCert)
	assert.Equal(t, f.thumbprint, f.ctx.State.RESTThumbprint)
	assert.Same(t, f.manager, f.ctx.State.Controller.(*netcontroller.MockManager))
}

func TestProvision_BootstrapPassesRestIPAndSecurityGroups(t *testing.T) {
	f := newFixture(t)
	f.ctx.Config.RestIPAddress = "10.127.132.30"
	f.ctx.Config.SecurityGroups = []string{"sdn-admins", "fabric-ops"}

	require.NoError(t, NewProvisioner().Provision(f.ctx))

	install := f.runner.CallsFor(remote.OpInstallController)[0]
	assert.Equal(t, "10.127.132.30", install.Args["rest_ip"])
	assert.Equal(t, "sdn-admins,fabric-ops", install.Args["security_groups"])
}

func TestProvision_ReadinessFailureAbortsBeforeInstall(t *testing.T) {
	f := newFixture(t)
	f.runner.RunFunc = func(_ context.Context, _ string, _ credentials.Credential, op remote.Operation, _ map[string]string) (string, error) {
		if op == remote.OpProbe {
			return "", errors.New("agent not listening")
		}
		return "", nil
	}

	err := NewProvisioner().Provision(f.ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, provisioning.ErrReadinessTimeout)
	assert.Empty(t, f.runner.CallsFor(remote.OpInstallController))
	assert.Empty(t, f.manager.Order())
}

func TestProvision_UnknownThumbprintFails(t *testing.T) {
	f := newFixture(t)
	f.runner.RunFunc = func(_ context.Context, _ string, _ credentials.Credential, op remote.Operation, _ map[string]string) (string, error) {
		switch op {
		case remote.OpProbe:
			return "ok", nil
		case remote.OpCertThumbprint:
			return strings.Repeat("AB", 20), nil
		}
		return "", nil
	}

	err := NewProvisioner().Provision(f.ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, certstore.ErrNotFound)
	assert.Empty(t, f.manager.Order(), "no fabric configuration without a trusted certificate")
}

func TestProvision_AttachExisting(t *testing.T) {
	f := newFixture(t)
	f.ctx.Config.Controllers = nil
	f.ctx.State.ControllerVMs = nil

	require.NoError(t, NewProvisioner().Provision(f.ctx))

	assert.Empty(t, f.runner.Calls(), "no remote calls when attaching to an existing controller")
	assert.Empty(t, f.manager.Order(), "fabric objects are not reconfigured")
	assert.Equal(t, 1, f.factoryCalls)
	assert.Equal(t, f.restCert, f.ctx.State.RESTCert)
	assert.Equal(t, f.thumbprint, f.ctx.State.RESTThumbprint)
}

func TestProvision_AttachExistingRequiresTrustedRoot(t *testing.T) {
	f := newFixture(t)
	f.ctx.Config.Controllers = nil
	f.ctx.State.ControllerVMs = nil
	f.ctx.CertStore = certstore.NewDirStore(t.TempDir())

	err := NewProvisioner().Provision(f.ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, certstore.ErrNotFound)
}

func TestProvision_AttachExistingRejectsAmbiguousRoots(t *testing.T) {
	f := newFixture(t)
	f.ctx.Config.Controllers = nil
	f.ctx.State.ControllerVMs = nil

	dir := t.TempDir()
	testfix.WriteCertPEM(t, dir, "one.pem", testfix.GenerateCert(t, "contoso-rest"))
	testfix.WriteCertPEM(t, dir, "two.pem", testfix.GenerateCert(t, "contoso-rest"))
	f.ctx.CertStore = certstore.NewDirStore(dir)

	err := NewProvisioner().Provision(f.ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, certstore.ErrDuplicate)
}
