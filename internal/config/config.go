// Package config parses process-level configuration from flags, the way
// the teacher's cmd/server wires its address and port directly into
// net.New — generalized here into one small struct so cmd/server/server.go
// stays a thin wrapper.
package config

import "flag"

type Config struct {
	ListenAddr    string
	DomainName    string
	DomainVersion string
}

// Parse reads flags from args (pass os.Args[1:] in production, a fixed
// slice in tests) and returns the resolved Config.
func Parse(args []string) (Config, error) {
	fs := flag.NewFlagSet("clob", flag.ContinueOnError)

	listenAddr := fs.String("listen", ":4321", "HTTP listen address")
	domainName := fs.String("domain-name", "DDX take-home", "EIP-712 domain name")
	domainVersion := fs.String("domain-version", "0.1.0", "EIP-712 domain version")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return Config{
		ListenAddr:    *listenAddr,
		DomainName:    *domainName,
		DomainVersion: *domainVersion,
	}, nil
}
