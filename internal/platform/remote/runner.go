// Package remote executes management operations against named hosts.
//
// Every host runs an SDN host agent that exposes administrative operations
// through its command-line surface. Runner models one request/response call
// so the provisioning pipeline stays testable against a mock agent.
package remote

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sdnfabric/sdnctl/internal/credentials"
)

// Operation names one administrative call on a host agent.
type Operation string

const (
	// OpEnableFeature enables a host role feature (args: "feature").
	OpEnableFeature Operation = "feature.enable"

	// OpEnableSwitchExtension enables a forwarding extension on a virtual
	// switch (args: "switch", "extension").
	OpEnableSwitchExtension Operation = "switch-extension.enable"

	// OpEnsureService sets a service to automatic start and starts it
	// (args: "service").
	OpEnsureService Operation = "service.ensure"

	// OpStageImage makes a golden image available on the host
	// (args: "source").
	OpStageImage Operation = "image.stage"

	// OpCreateVM creates a virtual machine (args: "spec", JSON-encoded).
	OpCreateVM Operation = "vm.create"

	// OpInstallController creates the network controller cluster from the
	// first controller node (args: "rest_name", "nodes", optionally
	// "rest_ip", "security_groups").
	OpInstallController Operation = "controller.install"

	// OpCertThumbprint returns the SHA-1 thumbprint of the certificate
	// bound to a subject in the host's machine store (args: "subject").
	OpCertThumbprint Operation = "cert.thumbprint"

	// OpProbe answers "ok" when the host's management plane responds.
	OpProbe Operation = "probe"
)

// Runner executes one operation on one host and returns its output.
type Runner interface {
	Run(ctx context.Context, host string, cred credentials.Credential, op Operation, args map[string]string) (string, error)
}

// OperationError wraps any failure from a host agent call, preserving the
// host and operation for the operator.
type OperationError struct {
	Host string
	Op   Operation
	Err  error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("remote operation %s on %s failed: %v", e.Op, e.Host, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// Probe checks whether a host answers management operations.
func Probe(ctx context.Context, r Runner, host string, cred credentials.Credential) error {
	out, err := r.Run(ctx, host, cred, OpProbe, nil)
	if err != nil {
		return err
	}
	if strings.TrimSpace(out) != "ok" {
		return &OperationError{Host: host, Op: OpProbe, Err: fmt.Errorf("unexpected probe response %q", out)}
	}
	return nil
}

// commandLine renders an operation as the host agent CLI invocation.
// Arguments are sorted so the rendering is deterministic.
func commandLine(op Operation, args map[string]string) string {
	var sb strings.Builder
	sb.WriteString("sdn-hostagentctl ")
	sb.WriteString(string(op))

	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, " --%s=%s", k, shellQuote(args[k]))
	}
	return sb.String()
}

// shellQuote single-quotes a value for the remote shell.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
