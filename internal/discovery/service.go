package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Service represents a customer API found on the network
type Service struct {
	// Instance is the advertised mDNS instance name (e.g., "custdesk-dev")
	Instance string

	// Hostname is the mDNS hostname (e.g., "build-box.local.")
	Hostname string

	// IP is the preferred address, IPv4 when available
	IP string

	// Port is the HTTP port
	Port int

	// Path is the collection path from the TXT record (e.g., "/customerapi")
	Path string

	// Metadata contains all TXT record key/value pairs
	Metadata map[string]string

	// DiscoveredAt is when the service was seen
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the service
func (s *Service) String() string {
	return fmt.Sprintf("%s (%s) at %s", s.Instance, s.Hostname, s.BaseURL())
}

// BaseURL returns the collection URL the client should use
func (s *Service) BaseURL() string {
	return "http://" + net.JoinHostPort(s.IP, strconv.Itoa(s.Port)) + s.Path
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (s *Service) GetMetadata(key string) string {
	if s.Metadata == nil {
		return ""
	}
	return s.Metadata[key]
}
