// SPDX-License-Identifier: MIT
package permute

import (
	"encoding/binary"
	"math/rand/v2"
)

// streamTag separates replicate streams from any other use of the same seed.
const streamTag = 0x7363616e73746174 // "scanstat"

// Stream returns the generator of replicate i for seed.
// The ChaCha8 key is (seed, i, streamTag), so distinct indices give
// independent streams and the mapping never depends on scheduling.
func Stream(seed uint64, replicate int) *rand.Rand {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[0:8], seed)
	binary.LittleEndian.PutUint64(key[8:16], uint64(replicate))
	binary.LittleEndian.PutUint64(key[16:24], streamTag)

	return rand.New(rand.NewChaCha8(key))
}

// RandomSeed draws a fresh seed from the runtime's auto-seeded source, for
// callers that did not supply one.
func RandomSeed() uint64 {
	return rand.Uint64()
}
