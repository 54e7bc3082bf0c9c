package prg

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// no seed means the all-zero seed
func Test_Prg_Default_Seed(t *testing.T) {
	prg := New(nil)
	prg2 := New(make([]byte, SeedLen))

	require.Equal(t, prg2.Next(2), prg.Next(2))
}

// short seeds are padded with zeros
func Test_Prg_Seed_Padding(t *testing.T) {
	seed := bytes.Repeat([]byte{0x24}, 30)
	realSeed := append(bytes.Repeat([]byte{0x24}, 30), 0, 0)

	require.Equal(t, New(realSeed).Next(2), New(seed).Next(2))
}

// long seeds are cropped to SeedLen
func Test_Prg_Seed_Cropping(t *testing.T) {
	long := bytes.Repeat([]byte{0x11}, 40)

	require.Equal(t, New(long[:SeedLen]).Next(16), New(long).Next(16))
}

func Test_Prg_Deterministic(t *testing.T) {
	a := New([]byte("some seed"))
	b := New([]byte("some seed"))

	require.Equal(t, a.Next(64), b.Next(64))
}

func Test_Prg_Seeds_Differ(t *testing.T) {
	a := New([]byte("seed one"))
	b := New([]byte("seed two"))

	require.NotEqual(t, a.Next(32), b.Next(32))
}

// the stream does not restart between calls
func Test_Prg_Stream_Continuous(t *testing.T) {
	a := New([]byte("continuity"))
	b := New([]byte("continuity"))

	combined := append(a.Next(8), a.Next(8)...)
	require.Equal(t, b.Next(16), combined)
}

func Test_Prg_Reset(t *testing.T) {
	prg := New([]byte{0x4a, 0x4b})

	first := prg.Next(24)
	require.Equal(t, uint64(24), prg.Counter())

	prg.Reset()
	require.Equal(t, uint64(0), prg.Counter())
	require.Equal(t, first, prg.Next(24))
}

func Test_Prg_Read(t *testing.T) {
	prg := New([]byte("read seed"))
	expected := New([]byte("read seed")).Next(16)

	// a dirty buffer must not leak into the stream
	buf := bytes.Repeat([]byte{0xff}, 16)

	n, err := prg.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 16, n)
	require.Equal(t, expected, buf)
}
