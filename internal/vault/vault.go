// Package vault signs ledger transactions with per-network keys
package vault

import (
	"crypto/hmac"   // Keyed signatures
	"crypto/rand"   // Random seed when none is configured
	"crypto/sha512" // Signature and derivation hash
	"encoding/hex"  // Wire format of signatures
	"io"            // Reading derived keys
	"strings"       // Payload assembly
	"time"          // Timestamp formatting

	"quantum_financial_system/internal/domain" // Transaction model

	"github.com/pkg/errors"       // For error wrapping
	"golang.org/x/crypto/blake2b" // Key fingerprints
	"golang.org/x/crypto/hkdf"    // Per-network key derivation
)

// Algorithm names the signature scheme
const Algorithm = "HMAC-SHA512"

const keySize = sha512.Size

// Signature is a detached signature over a transaction
type Signature struct {
	TransactionID string         `json:"transactionId"`
	Network       domain.Network `json:"network"`
	Algorithm     string         `json:"algorithm"`
	KeyID         string         `json:"keyId"`     // Fingerprint of the network key, never the key
	Signature     string         `json:"signature"` // Hex encoded
}

// Vault holds one signing key per network
type Vault struct {
	keys map[domain.Network][]byte
}

// New derives a key for every network from seed
func New(seed []byte) (*Vault, error) {
	if len(seed) == 0 {
		return nil, errors.New("vault seed is empty")
	}
	v := &Vault{keys: make(map[domain.Network][]byte, len(domain.Networks))}
	for _, n := range domain.Networks {
		key := make([]byte, keySize)
		r := hkdf.New(sha512.New, seed, nil, []byte("qfs-vault:"+string(n)))
		if _, err := io.ReadFull(r, key); err != nil {
			return nil, errors.Wrapf(err, "derive key for %s", n)
		}
		v.keys[n] = key
	}
	return v, nil
}

// NewRandom creates a vault whose keys live only as long as the process
func NewRandom() (*Vault, error) {
	seed := make([]byte, keySize)
	if _, err := rand.Read(seed); err != nil {
		return nil, errors.Wrap(err, "read vault seed")
	}
	return New(seed)
}

// KeyID returns the fingerprint of a network key
func (v *Vault) KeyID(n domain.Network) (string, bool) {
	key, ok := v.keys[n]
	if !ok {
		return "", false
	}
	sum := blake2b.Sum256(key)
	return "qfs-" + strings.ToLower(string(n)) + "-" + hex.EncodeToString(sum[:8]), true
}

// Sign signs the immutable fields of tx with its network key
func (v *Vault) Sign(tx domain.Transaction) (Signature, error) {
	key, ok := v.keys[tx.Network]
	if !ok {
		return Signature{}, errors.Errorf("no key for network %q", tx.Network)
	}
	keyID, _ := v.KeyID(tx.Network)
	return Signature{
		TransactionID: tx.ID,
		Network:       tx.Network,
		Algorithm:     Algorithm,
		KeyID:         keyID,
		Signature:     hex.EncodeToString(mac(key, tx)),
	}, nil
}

// Verify reports whether signature is the hex signature of tx
func (v *Vault) Verify(tx domain.Transaction, signature string) bool {
	key, ok := v.keys[tx.Network]
	if !ok {
		return false
	}
	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(got, mac(key, tx))
}

// mac covers only fields that never change after submission, so a
// signature stays valid while the status moves on.
func mac(key []byte, tx domain.Transaction) []byte {
	h := hmac.New(sha512.New, key)
	h.Write([]byte(payload(tx)))
	return h.Sum(nil)
}

func payload(tx domain.Transaction) string {
	return strings.Join([]string{
		tx.ID,
		string(tx.Network),
		tx.Amount.String(),
		tx.Recipient,
		tx.Timestamp.UTC().Format(time.RFC3339Nano),
	}, "|")
}
