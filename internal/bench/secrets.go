package bench

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"strconv"
)

// SecretIndex returns a deterministic index for game number n using
// HMAC(seed, n) % listLen, so a seed always replays the same secrets.
func SecretIndex(seed string, n, listLen int) int {
	if listLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(seed))
	h.Write([]byte(strconv.Itoa(n)))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(listLen))
}

// Secrets lists the secret of every game in a run. rounds <= 0 plays every
// word exactly once, in list order.
func Secrets(list []string, rounds int, seed string) []string {
	if rounds <= 0 {
		return append([]string(nil), list...)
	}
	out := make([]string, rounds)
	for i := range out {
		out[i] = list[SecretIndex(seed, i, len(list))]
	}
	return out
}
