// Package wgkey derives WireGuard public keys from configured private keys.
// Key generation itself is left to the operator; derivation is pure and keeps
// rendered peer stanzas consistent with the configured key material.
package wgkey

import (
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/curve25519"
)

const KeyLen = 32

// PublicKey returns the base64-encoded curve25519 public key for a
// base64-encoded private key, as printed by `wg genkey`.
func PublicKey(privateKey string) (string, error) {
	priv, err := base64.StdEncoding.DecodeString(privateKey)
	if err != nil {
		return "", fmt.Errorf("invalid wireguard private key: %w", err)
	}
	if len(priv) != KeyLen {
		return "", fmt.Errorf("invalid wireguard private key length %d", len(priv))
	}
	pub, err := curve25519.X25519(priv, curve25519.Basepoint)
	if err != nil {
		return "", fmt.Errorf("derive wireguard public key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(pub), nil
}
