package model

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// GenerateMAC derives a deterministic MAC address from the given seed.
// The locally administered bit is set and the multicast bit cleared, so the
// result never collides with vendor-assigned hardware addresses.
func GenerateMAC(seed string) string {
	sum := md5.Sum([]byte(seed))
	b := sum[:6]
	b[0] &= 0xFE
	b[0] |= 0x02
	parts := make([]string, 6)
	for i, octet := range b {
		parts[i] = fmt.Sprintf("%02X", octet)
	}
	return strings.Join(parts, ":")
}
