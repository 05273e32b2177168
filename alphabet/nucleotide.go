package alphabet

import "github.com/grailbio/base/log"

// nucleotideSymbols lists every non-reserved Nucleotide byte, in the order
// codes are assigned once TerminatorCode and SeparatorCode are removed from
// [0, 7).
var nucleotideSymbols = [...]byte{'A', 'C', 'G', 'T', 'N'}

// Nucleotide is the fixed 7-symbol alphabet {TERM, SEP, A, C, G, T, N} used
// by RLBWT construction over DNA text (spec §3). Spec §9 left open whether
// TERM/SEP occupy codes {0,1} or {1,2}; Nucleotide resolves this by letting
// the caller pick either assignment explicitly via NewNucleotide, rather
// than hard-coding one reading over the other.
type Nucleotide struct {
	termByte, sepByte byte
	termCode, sepCode uint64
	toByte            [7]byte
	toCode            map[byte]uint64
}

// NewNucleotide builds a Nucleotide alphabet with the given terminator and
// separator bytes, placed at termCode and sepCode. The remaining five
// symbols (A, C, G, T, N) receive the unused codes in [0, 7) in ascending
// order. It panics if termCode == sepCode or either is out of [0, 7).
func NewNucleotide(termByte, sepByte byte, termCode, sepCode uint64) *Nucleotide {
	if termCode == sepCode {
		log.Panicf("alphabet.NewNucleotide: termCode and sepCode both %d", termCode)
	}
	if termCode >= 7 || sepCode >= 7 {
		log.Panicf("alphabet.NewNucleotide: codes must be in [0,7), got term=%d sep=%d", termCode, sepCode)
	}
	a := &Nucleotide{
		termByte: termByte, sepByte: sepByte,
		termCode: termCode, sepCode: sepCode,
		toCode: make(map[byte]uint64, 7),
	}
	a.toByte[termCode] = termByte
	a.toByte[sepCode] = sepByte
	a.toCode[termByte] = termCode
	a.toCode[sepByte] = sepCode

	next := uint64(0)
	nextFree := func() uint64 {
		for next == termCode || next == sepCode {
			next++
		}
		c := next
		next++
		return c
	}
	for _, c := range nucleotideSymbols {
		code := nextFree()
		a.toByte[code] = c
		a.toCode[c] = code
	}
	return a
}

// DefaultNucleotide builds the conventional Nucleotide alphabet with
// TERM at code 0 and SEP at code 1, matching spec §9's first reading.
func DefaultNucleotide(termByte, sepByte byte) *Nucleotide {
	return NewNucleotide(termByte, sepByte, 0, 1)
}

// Map implements Alphabet.
func (a *Nucleotide) Map(c byte) uint64 {
	v, ok := a.toCode[c]
	if !ok {
		log.Panicf("alphabet.Nucleotide.Map: byte %q (0x%02x) is not in {TERM,SEP,A,C,G,T,N}", c, c)
	}
	return v
}

// Unmap implements Alphabet.
func (a *Nucleotide) Unmap(code uint64) byte {
	if code >= 7 {
		log.Panicf("alphabet.Nucleotide.Unmap: code %d out of range [0,7)", code)
	}
	return a.toByte[code]
}

// Width implements Alphabet. Nucleotide always needs 3 bits (ceil(log2(7))).
func (a *Nucleotide) Width() int { return 3 }

// Size implements Alphabet.
func (a *Nucleotide) Size() int { return 7 }

// TerminatorCode returns the dense code assigned to the terminator byte.
func (a *Nucleotide) TerminatorCode() uint64 { return a.termCode }

// SeparatorCode returns the dense code assigned to the separator byte.
func (a *Nucleotide) SeparatorCode() uint64 { return a.sepCode }
