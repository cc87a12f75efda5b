package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashString creates a SHA-256 hash of the input string
func HashString(input string) string {
	h := sha256.New()
	h.Write([]byte(input))
	return hex.EncodeToString(h.Sum(nil))
}

// HashContact hashes an email address or phone number after normalising it,
// so the same visitor always maps to the same key and raw contact details
// stay out of logs
func HashContact(contact string) string {
	contact = strings.ToLower(strings.TrimSpace(contact))
	if !strings.Contains(contact, "@") {
		contact = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(contact)
	}
	return HashString(contact)
}
