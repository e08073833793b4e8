package provisioning

import (
	"context"
	"crypto/x509"
	"testing"
	"time"

	"github.com/sdnfabric/sdnctl/internal/config"
	"github.com/sdnfabric/sdnctl/internal/credentials"
	"github.com/sdnfabric/sdnctl/internal/platform/certstore"
	"github.com/sdnfabric/sdnctl/internal/platform/hyperv"
	"github.com/sdnfabric/sdnctl/internal/platform/netcontroller"
	"github.com/sdnfabric/sdnctl/internal/platform/remote"
	testfix "github.com/sdnfabric/sdnctl/internal/testing"
)

// newTestContext builds a deployment context wired to mocks, with short
// timeouts so failure paths finish quickly.
func newTestContext(t *testing.T) (*Context, *remote.MockRunner, *hyperv.MockCreator, *netcontroller.MockManager) {
	t.Helper()

	runner := &remote.MockRunner{}
	creator := &hyperv.MockCreator{}
	manager := &netcontroller.MockManager{}

	creds := credentials.Set{
		DomainJoin: credentials.Credential{Username: "contoso\\deploy", Password: "dj-secret"},
		NCService:  credentials.Credential{Username: "contoso\\ncsvc", Password: "nc-secret"},
		LocalAdmin: credentials.Credential{Username: "Administrator", Password: "la-secret"},
	}

	ctx := NewContext(
		context.Background(),
		testfix.ValidConfig(),
		creds,
		runner,
		creator,
		certstore.NewDirStore(t.TempDir()),
		func(restName string, cred credentials.Credential, cert *x509.Certificate) netcontroller.Manager {
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
	return ctx, runner, creator, manager
}
