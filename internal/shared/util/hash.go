package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// OwnerDir maps an owner id ("google:<sub>" or "guest:<uuid>") to the
// directory its stored files live under. Raw ids never appear in storage keys.
func OwnerDir(ownerID string) string {
	sum := sha256.Sum256([]byte(ownerID))
	return hex.EncodeToString(sum[:])
}
