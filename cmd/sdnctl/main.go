// Package main is the entry point for the sdnctl CLI.
//
// sdnctl deploys a software-defined networking control plane onto a set of
// prepared hypervisor hosts: the network controller cluster, software load
// balancer MUX nodes and gateway VMs, driven by a single declarative
// configuration file.
//
// Commands: init, deploy, secrets, version.
//
// For detailed usage information, run:
//
//	sdnctl --help
package main

import (
	"fmt"
	"os"

	"github.com/sdnfabric/sdnctl/cmd/sdnctl/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
