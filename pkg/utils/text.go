package utils

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"unicode/utf8"
)

// HashIdentifier returns the md5 hex digest of the parts joined with "|".
func HashIdentifier(parts ...string) string {
	sum := md5.Sum([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

// CleanToValidUTF8 replaces invalid byte sequences so the text can be stored.
func CleanToValidUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, "�")
}

// ContainsString reports whether target is in list, ignoring case.
func ContainsString(list []string, target string) bool {
	for _, s := range list {
		if strings.EqualFold(s, target) {
			return true
		}
	}
	return false
}
