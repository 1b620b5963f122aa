// Package shared holds small helpers used across server layers.
package shared

import (
	"crypto/md5"
	"encoding/hex"
)

// MD5Hex returns the lowercase hex md5 digest of s. This matches the scheme
// the stored password digests were created with; the credential store itself
// is an external concern.
func MD5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
