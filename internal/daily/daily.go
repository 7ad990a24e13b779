// Package daily derives the shared "board of the day".
//
// Every player asking for the same UTC date and salt gets the same seed, so
// the deal (and therefore the board) is identical for everyone that day.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns a deterministic shuffle seed for a date using HMAC(salt, YYYY-MM-DD).
func Seed(date time.Time, salt string) uint64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes of the MAC
	return binary.BigEndian.Uint64(sum[:8])
}
