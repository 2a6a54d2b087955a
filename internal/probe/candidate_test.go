package probe_test

import (
	"testing"

	"github.com/omarluq/upswitch/internal/probe"
)

func TestDialAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		address string
		port    int
		want    string
	}{
		{"ipv4 without port", "10.0.0.5", 80, "10.0.0.5:80"},
		{"ipv4 with port", "10.0.0.5:8443", 80, "10.0.0.5:8443"},
		{"hostname without port", "nas.local", 443, "nas.local:443"},
		{"bare ipv6", "fd00::5", 80, "[fd00::5]:80"},
		{"bracketed ipv6 without port", "[fd00::5]", 80, "[fd00::5]:80"},
		{"bracketed ipv6 with port", "[fd00::5]:8080", 80, "[fd00::5]:8080"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := probe.DialAddress(tt.address, tt.port); got != tt.want {
				t.Errorf("DialAddress(%q, %d) = %q, want %q", tt.address, tt.port, got, tt.want)
			}
		})
	}
}

func TestHostPort(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		address  string
		wantHost string
		wantPort string
	}{
		{"ipv4 without port", "10.0.0.5", "10.0.0.5", ""},
		{"ipv4 with port", "10.0.0.5:9000", "10.0.0.5", "9000"},
		{"bare ipv6", "fd00::5", "fd00::5", ""},
		{"bracketed ipv6 with port", "[fd00::5]:8080", "fd00::5", "8080"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			host, port := probe.HostPort(tt.address)
			if host != tt.wantHost || port != tt.wantPort {
				t.Errorf("HostPort(%q) = (%q, %q), want (%q, %q)",
					tt.address, host, port, tt.wantHost, tt.wantPort)
			}
		})
	}
}

func TestCandidateDialAddressUsesDefaultPort(t *testing.T) {
	t.Parallel()

	c := probe.Candidate{Name: "nas", Address: "10.0.0.5", Priority: 1}
	if got := c.DialAddress(8080); got != "10.0.0.5:8080" {
		t.Errorf("DialAddress(8080) = %q, want %q", got, "10.0.0.5:8080")
	}
}
