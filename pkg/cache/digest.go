package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Digest returns the hex SHA-256 of data. The runner keys artifacts by the
// digest of the serialized layout they were drawn from.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// digestKey returns "kind:<digest>" over the JSON encoding of parts.
// Struct fields encode in declaration order, so equal options give equal keys.
func digestKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return kind + ":" + Digest(data)
}
