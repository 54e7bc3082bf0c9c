package prg

import (
	"crypto/aes"
	"crypto/cipher"
)

const (
	// KeyLen is the AES-128 key size in bytes.
	KeyLen = 16
	// IVLen is the CTR initialization vector size in bytes.
	IVLen = 16
	// SeedLen is the normalized seed size: key followed by IV.
	SeedLen = KeyLen + IVLen
)

// Prg is a deterministic pseudo-random byte stream built on AES-128 in CTR
// mode. The normalized 32-byte seed is split in two halves: the first is the
// AES key, the second the initial counter block. Two generators built from
// the same seed yield byte-identical streams, which is what makes whole
// simulation runs reproducible.
type Prg struct {
	seed    []byte
	stream  cipher.Stream
	counter uint64
}

// New creates a generator from seed. A nil or empty seed stands for the
// all-zero seed. Seeds longer than SeedLen are cropped, shorter ones are
// padded with zeros.
func New(seed []byte) *Prg {
	normalized := make([]byte, SeedLen)
	copy(normalized, seed)

	p := &Prg{seed: normalized}
	p.init()

	return p
}

func (p *Prg) init() {
	block, err := aes.NewCipher(p.seed[:KeyLen])
	if err != nil {
		// unreachable: the key is always 16 bytes
		panic(err)
	}

	p.stream = cipher.NewCTR(block, p.seed[KeyLen:])
	p.counter = 0
}

// Reset rewinds the generator to its seed-fresh state. The stream after a
// reset equals the stream of a new generator with the same seed.
func (p *Prg) Reset() {
	p.init()
}

// Counter returns the number of keystream bytes drawn since the last reset.
func (p *Prg) Counter() uint64 {
	return p.counter
}

// Next returns the next n bytes of the stream.
func (p *Prg) Next(n int) []byte {
	out := make([]byte, n)
	p.stream.XORKeyStream(out, out)
	p.counter += uint64(n)

	return out
}

// Read implements io.Reader over the stream. It fills b entirely and never
// fails, so the generator can stand in wherever a randomness source is
// expected.
func (p *Prg) Read(b []byte) (int, error) {
	for i := range b {
		b[i] = 0
	}
	p.stream.XORKeyStream(b, b)
	p.counter += uint64(len(b))

	return len(b), nil
}
