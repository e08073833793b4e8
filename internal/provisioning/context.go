package provisioning

import (
	"context"
	"crypto/x509"
	"time"

	"github.com/sdnfabric/sdnctl/internal/config"
	"github.com/sdnfabric/sdnctl/internal/credentials"
	"github.com/sdnfabric/sdnctl/internal/platform/certstore"
	"github.com/sdnfabric/sdnctl/internal/platform/hyperv"
	"github.com/sdnfabric/sdnctl/internal/platform/netcontroller"
	"github.com/sdnfabric/sdnctl/internal/platform/remote"
)

// State holds the shared results of deployment phases.
// It is progressively populated as each phase completes and is read by
// subsequent phases that need earlier results.
type State struct {
	// Compute results (populated by the compute phase)
	ControllerVMs []string // management addresses of created controller VMs
	MuxVMs        []string
	GatewayVMs    []string

	// Resolved image source: the configured path, or a presigned URL when
	// the image lives in the object store.
	ImageSource string

	// Controller bootstrap results
	RESTCert       *x509.Certificate
	RESTThumbprint string
	Controller     netcontroller.Manager
}

// NewState creates an empty deployment state.
func NewState() *State {
	return &State{}
}

// ManagerFactory builds a controller management client once the REST
// certificate is known. Phases call it instead of constructing clients so
// tests can substitute a mock.
type ManagerFactory func(restName string, cred credentials.Credential, cert *x509.Certificate) netcontroller.Manager

// ImagePresigner resolves s3:// image sources to fetchable URLs.
// Implemented by the object store client; nil when the image is a plain path.
type ImagePresigner interface {
	ImageExists(ctx context.Context, rawURL string) (bool, error)
	PresignImage(ctx context.Context, rawURL string, ttl time.Duration) (string, error)
}

// Context wraps all dependencies and state needed for a deployment phase.
type Context struct {
	context.Context
	Config     *config.Config
	Creds      credentials.Set
	State      *State
	Runner     remote.Runner
	Creator    hyperv.Creator
	CertStore  certstore.Store
	NewManager ManagerFactory
	ImageStore ImagePresigner
	Observer   Observer
	Timeouts   *config.Timeouts
}

// RunOp executes one host-agent operation under the per-operation timeout,
// authenticating with the deployment credential.
func (c *Context) RunOp(host string, op remote.Operation, args map[string]string) (string, error) {
	opCtx, cancel := context.WithTimeout(c, c.Timeouts.RemoteOp)
	defer cancel()
	return c.Runner.Run(opCtx, host, c.Creds.DomainJoin, op, args)
}

// NewContext creates a new deployment context.
func NewContext(
	ctx context.Context,
	cfg *config.Config,
	creds credentials.Set,
	runner remote.Runner,
	creator hyperv.Creator,
	store certstore.Store,
	newManager ManagerFactory,
) *Context {
	return &Context{
		Context:    ctx,
		Config:     cfg,
		Creds:      creds,
		State:      NewState(),
		Runner:     runner,
		Creator:    creator,
		CertStore:  store,
		NewManager: newManager,
		Observer:   NewConsoleObserver(),
		Timeouts:   config.LoadTimeouts(),
	}
}
