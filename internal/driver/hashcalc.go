package driver

import (
	"crypto/sha256"
)

// Digest is the signature cache key.
type Digest [32]byte

// cacheKey: H(content || engine || async-flag).
// The same file is cached separately per engine and per IncludeAsync.
func cacheKey(content [32]byte, engine string, includeAsync bool) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(engine))
	if includeAsync {
		_, _ = h.Write([]byte{1})
	} else {
		_, _ = h.Write([]byte{0})
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
