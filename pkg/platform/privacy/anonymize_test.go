package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnonymizeIP(t *testing.T) {
	tests := []struct {
		name, input, expected string
	}{
		{"ipv4", "192.168.1.47", "192.168.1.0"},
		{"ipv4 localhost", "127.0.0.1", "127.0.0.0"},
		{"ipv4-mapped ipv6", "::ffff:10.2.3.4", "10.2.3.0"},
		{"ipv6 full", "2001:db8:85a3:0000:0000:8a2e:0370:7334", "2001:db8:85a3::"},
		{"ipv6 compressed", "2001:db8:85a3::8a2e:370:7334", "2001:db8:85a3::"},
		{"ipv6 loopback", "::1", "::"},
		{"empty", "", "unknown"},
		{"unknown", "unknown", "unknown"},
		{"garbage", "not-an-ip", "invalid"},
		{"with port", "192.168.1.1:8080", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AnonymizeIP(tt.input))
		})
	}
}

func TestAnonymizeIP_GroupsByNetwork(t *testing.T) {
	for _, ip := range []string{"192.168.1.1", "192.168.1.255"} {
		assert.Equal(t, "192.168.1.0", AnonymizeIP(ip))
	}
	assert.NotEqual(t, AnonymizeIP("192.168.1.47"), AnonymizeIP("192.168.2.47"))
}
