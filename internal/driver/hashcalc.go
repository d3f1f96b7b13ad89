package driver

import (
	"crypto/sha256"

	"dry/internal/source"
)

// Digest is a cache key.
type Digest [32]byte

// combineDigest: H(content || part1 || part2 ...). Parts are length-prefixed
// so ("ab","c") and ("a","bc") differ.
func combineDigest(content [32]byte, parts ...string) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, p := range parts {
		n := len(p)
		_, _ = h.Write([]byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)})
		_, _ = h.Write([]byte(p))
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// cacheKey identifies the rendered output of file under opts. ok is false when
// caching is off.
func cacheKey(file *source.File, entry Entry, opts Options) (Digest, bool) {
	if opts.Cache == nil || file == nil {
		return Digest{}, false
	}
	return combineDigest(file.Hash, opts.Fingerprint, entry.String(), string(opts.Format)), true
}
