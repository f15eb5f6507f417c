package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Domain prefixes for content-addressed identity.
const (
	DomainSnapshot = "brutalist/snapshot/v1"
	DomainTrial    = "brutalist/trial/v1"
)

func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint returns the hex SHA-256 fingerprint of data.
func Fingerprint(data map[string]string) (string, error) {
	canonical, err := Marshal(data)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	return hashWithDomain(DomainSnapshot, canonical), nil
}

// TrialID computes a stable ID for a trial from the run, its position and
// the operators applied. The same inputs always produce the same ID.
func TrialID(runID string, seq int64, operators []string) string {
	var b strings.Builder
	b.WriteString(runID)
	b.WriteByte(0)
	b.WriteString(strconv.FormatInt(seq, 10))
	for _, op := range operators {
		b.WriteByte(0)
		b.WriteString(op)
	}
	return hashWithDomain(DomainTrial, []byte(b.String()))
}

// Equal reports whether a and b have the same canonical form.
func Equal(a, b map[string]string) bool {
	fa, errA := Fingerprint(a)
	fb, errB := Fingerprint(b)
	return errA == nil && errB == nil && fa == fb
}
