package alphabet

import "github.com/grailbio/base/log"

// Alphabet maps between raw bytes and a dense code space [0, Size()),
// suitable for use as a packed-matrix column value.
type Alphabet interface {
	// Map returns c's dense code. It panics if c was never mapped
	// (spec §7: unmapped alphabet character is a precondition violation).
	Map(c byte) uint64
	// Unmap reverses Map. It panics if code is out of range.
	Unmap(code uint64) byte
	// Width returns ceil(log2(Size())), with a minimum of 1, the bit width
	// of a mapped character column.
	Width() int
	// Size returns σ, the number of distinct symbols.
	Size() int
}

func bitWidth(sigma int) int {
	if sigma <= 1 {
		return 1
	}
	w := 0
	for c := sigma - 1; c > 0; c >>= 1 {
		w++
	}
	return w
}

// Dynamic is a byte<->code bijection built from the distinct bytes observed
// in a corpus, assigning codes in first-seen order.
type Dynamic struct {
	toCode map[byte]uint64
	toByte []byte
	width  int
}

// NewDynamic builds a Dynamic alphabet covering every distinct byte in data,
// assigning dense codes in the order each byte is first seen.
func NewDynamic(data []byte) *Dynamic {
	a := &Dynamic{toCode: make(map[byte]uint64)}
	for _, c := range data {
		if _, ok := a.toCode[c]; !ok {
			a.toCode[c] = uint64(len(a.toByte))
			a.toByte = append(a.toByte, c)
		}
	}
	if len(a.toByte) == 0 {
		log.Panicf("alphabet.NewDynamic: empty input has no symbols")
	}
	a.width = bitWidth(len(a.toByte))
	return a
}

// Map implements Alphabet.
func (a *Dynamic) Map(c byte) uint64 {
	v, ok := a.toCode[c]
	if !ok {
		log.Panicf("alphabet.Dynamic.Map: byte %q (0x%02x) is not in the alphabet", c, c)
	}
	return v
}

// Unmap implements Alphabet.
func (a *Dynamic) Unmap(code uint64) byte {
	if code >= uint64(len(a.toByte)) {
		log.Panicf("alphabet.Dynamic.Unmap: code %d out of range [0, %d)", code, len(a.toByte))
	}
	return a.toByte[code]
}

// Width implements Alphabet.
func (a *Dynamic) Width() int { return a.width }

// Size implements Alphabet.
func (a *Dynamic) Size() int { return len(a.toByte) }
