// Package probe provides reachability probing and priority-based candidate
// selection for upswitch.
//
// A Candidate is a statically configured upstream path with a fixed priority
// rank (lower number = more preferred). The Prober answers a single question
// about an address: is it reachable right now. The Selector combines both to
// find the best reachable candidate.
package probe

import (
	"net"
	"strconv"
	"strings"
)

// Candidate is an alternate upstream target with a fixed priority rank.
// Priority is assigned from configuration order at load time (1 = most
// preferred) and is never serialized.
type Candidate struct {
	Name     string `yaml:"name" toml:"name"`
	Address  string `yaml:"address" toml:"address"`
	Priority int    `yaml:"-" toml:"-"`
}

// DialAddress returns the host:port string to dial for this candidate.
// If the configured address already carries a port it is used as-is;
// otherwise defaultPort is appended. Bare IPv6 literals are bracketed.
func (c Candidate) DialAddress(defaultPort int) string {
	return DialAddress(c.Address, defaultPort)
}

// DialAddress normalizes an address into dialable host:port form.
func DialAddress(address string, defaultPort int) string {
	host, port := HostPort(address)
	if port == "" {
		port = strconv.Itoa(defaultPort)
	}
	return net.JoinHostPort(host, port)
}

// HostPort splits an address into host and optional port. Brackets are
// stripped from IPv6 hosts; a bare IPv6 literal is a host with no port.
func HostPort(address string) (host, port string) {
	if h, p, err := net.SplitHostPort(address); err == nil && p != "" {
		return h, p
	}
	return strings.Trim(address, "[]"), ""
}

// Result is the outcome of probing one candidate. Results are produced fresh
// on every run and never persisted.
type Result struct {
	Candidate Candidate
	Reachable bool
}
