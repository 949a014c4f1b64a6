package panelctl

import (
	"fmt"
	"net"
)

// Default panel credentials, seeded by the panel itself on first login.
// This tool only ever prints them; it never generates or stores a secret.
const (
	// DefaultAdminUser is the panel's initial login name
	DefaultAdminUser = "admin"

	// DefaultAdminPassword is the panel's initial password
	DefaultAdminPassword = "admin123"
)

// Report summarizes an install for display
type Report struct {
	// URL is the panel access URL
	URL string

	// Active is the result of the single post-start status poll
	Active bool

	// Advisories aggregates non-fatal failures encountered along the way.
	// Advisories.Err() is nil when every advisory step succeeded.
	Advisories MultiError
}

// CredentialNotice returns the operator-facing default credential warning
func CredentialNotice() string {
	return fmt.Sprintf("default credentials: %s / %s (change them after first login)",
		DefaultAdminUser, DefaultAdminPassword)
}

// AccessURL builds the panel URL from the host's primary address and the
// configured port. The port appears exactly as configured.
func (c *Config) AccessURL() string {
	host := primaryIP()
	if host == "" {
		host = "127.0.0.1"
	}
	return fmt.Sprintf("http://%s:%s", host, c.Port)
}

// primaryIP returns the first global unicast IPv4 address, or "" when the
// host has none
func primaryIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ""
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		ip := ipNet.IP
		if ip.IsLoopback() || ip.IsLinkLocalUnicast() {
			continue
		}
		if v4 := ip.To4(); v4 != nil {
			return v4.String()
		}
	}
	return ""
}
