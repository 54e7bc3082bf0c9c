package field

import (
	"encoding/binary"
	"io"
	"math/bits"
	"strconv"

	"golang.org/x/xerrors"
)

const (
	// Mersenne61Power is the exponent of the modulus.
	Mersenne61Power = 61

	// Mersenne61Order is the modulus 2^61 - 1, a Mersenne prime.
	Mersenne61Order uint64 = 1<<Mersenne61Power - 1
)

// Mersenne61 is an element of the prime field of order 2^61 - 1. The value
// is kept reduced at all times, so the uint64 representative is canonical
// and elements compare with ==.
type Mersenne61 struct {
	value uint64
}

// NewMersenne61 returns the element for value. Values outside the field are
// reduced with a true modulo, so any uint64 is accepted.
func NewMersenne61(value uint64) Mersenne61 {
	if value >= Mersenne61Order {
		value %= Mersenne61Order
	}

	return Mersenne61{value: value}
}

// New implements Element.
func (e Mersenne61) New(value uint64) Mersenne61 {
	return NewMersenne61(value)
}

// Add returns the field sum. Both representatives are below twice the
// modulus, so one conditional subtraction completes the reduction.
func (e Mersenne61) Add(other Mersenne61) Mersenne61 {
	sum := e.value + other.value
	if sum >= Mersenne61Order {
		sum -= Mersenne61Order
	}

	return Mersenne61{value: sum}
}

// Negate returns the additive inverse. Zero negates to zero.
func (e Mersenne61) Negate() Mersenne61 {
	if e.value == 0 {
		return e
	}

	return Mersenne61{value: Mersenne61Order - e.value}
}

// Subtract returns e minus other.
func (e Mersenne61) Subtract(other Mersenne61) Mersenne61 {
	return e.Add(other.Negate())
}

// Multiply returns the field product. The 122-bit intermediate splits as
// high*2^61 + low, which the Mersenne identity 2^61 = 1 (mod 2^61 - 1)
// collapses to high + low.
func (e Mersenne61) Multiply(other Mersenne61) Mersenne61 {
	hi, lo := bits.Mul64(e.value, other.value)

	high := hi<<(64-Mersenne61Power) | lo>>Mersenne61Power
	low := lo & Mersenne61Order

	return Mersenne61{value: high}.Add(Mersenne61{value: low})
}

// Inverse returns the multiplicative inverse, computed with the extended
// Euclidean algorithm. The 61-bit modulus keeps every intermediate within
// int64 range.
func (e Mersenne61) Inverse() (Mersenne61, error) {
	if e.value == 0 {
		return Mersenne61{}, ErrZeroInverse
	}

	k, newK := int64(0), int64(1)
	r, newR := int64(Mersenne61Order), int64(e.value)

	for newR != 0 {
		quotient := r / newR
		k, newK = newK, k-quotient*newK
		r, newR = newR, r-quotient*newR
	}

	if k < 0 {
		k += int64(Mersenne61Order)
	}

	return Mersenne61{value: uint64(k)}, nil
}

// Random draws an element from rng: eight bytes read as a little-endian
// integer and reduced into the field.
func (e Mersenne61) Random(rng io.Reader) (Mersenne61, error) {
	var buf [8]byte

	_, err := io.ReadFull(rng, buf[:])
	if err != nil {
		return Mersenne61{}, xerrors.Errorf("failed to read randomness: %v", err)
	}

	return NewMersenne61(binary.LittleEndian.Uint64(buf[:])), nil
}

// Value returns the canonical representative in [0, Mersenne61Order).
func (e Mersenne61) Value() uint64 {
	return e.value
}

func (e Mersenne61) String() string {
	return strconv.FormatUint(e.value, 10)
}
