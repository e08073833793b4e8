package remote

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/sdnfabric/sdnctl/internal/credentials"
)

const (
	defaultPort        = 22
	defaultDialTimeout = 10 * time.Second
)

// SSHRunner executes host agent operations over SSH with password
// authentication using the run credential.
//
// Security: host key verification is disabled by default because deployment
// targets are freshly provisioned and have no recorded host keys yet.
// Configure HostKeyCallback for environments with persistent known hosts.
type SSHRunner struct {
	// Port is the SSH port on every host. Zero means 22.
	Port int

	// DialTimeout bounds TCP connection establishment.
	DialTimeout time.Duration

	// HostKeyCallback handles host key verification.
	// If nil, ssh.InsecureIgnoreHostKey() is used.
	HostKeyCallback ssh.HostKeyCallback
}

// NewSSHRunner creates a runner with default connection settings.
func NewSSHRunner() *SSHRunner {
	return &SSHRunner{}
}

// Run implements Runner. Each call dials a fresh connection; the pipeline is
// sequential and hosts are contacted a handful of times per run, so
// connection reuse buys nothing here.
func (r *SSHRunner) Run(ctx context.Context, host string, cred credentials.Credential, op Operation, args map[string]string) (string, error) {
	client, err := r.connect(ctx, host, cred)
	if err != nil {
		return "", &OperationError{Host: host, Op: op, Err: err}
	}
	defer func() { _ = client.Close() }()

	out, err := runCommand(client, commandLine(op, args))
	if err != nil {
		return out, &OperationError{Host: host, Op: op, Err: err}
	}
	return out, nil
}

func (r *SSHRunner) connect(ctx context.Context, host string, cred credentials.Credential) (*ssh.Client, error) {
	port := r.Port
	if port == 0 {
		port = defaultPort
	}
	dialTimeout := r.DialTimeout
	if dialTimeout == 0 {
		dialTimeout = defaultDialTimeout
	}
	hostKeyCallback := r.HostKeyCallback
	if hostKeyCallback == nil {
		hostKeyCallback = ssh.InsecureIgnoreHostKey() //nolint:gosec // Freshly provisioned targets have no recorded host keys
	}

	config := &ssh.ClientConfig{
		User: cred.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(cred.Password),
		},
		HostKeyCallback: hostKeyCallback,
		Timeout:         dialTimeout,
	}

	addr := fmt.Sprintf("%s:%d", host, port)

	type dialResult struct {
		client *ssh.Client
		err    error
	}
	done := make(chan dialResult, 1)
	go func() {
		client, err := ssh.Dial("tcp", addr, config)
		done <- dialResult{client, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("failed to establish SSH connection to %s: %w", addr, res.err)
		}
		return res.client, nil
	}
}

// runCommand executes a command on an established SSH connection.
func runCommand(client *ssh.Client, command string) (string, error) {
	session, err := client.NewSession()
	if err != nil {
		return "", fmt.Errorf("failed to create SSH session: %w", err)
	}
	defer func() { _ = session.Close() }()

	output, err := session.CombinedOutput(command)
	if err != nil {
		return string(output), fmt.Errorf("command failed: %w\nCommand: %s\nOutput: %s",
			err, command, string(output))
	}

	return string(output), nil
}
