package alphabet

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Kind discriminates which concrete Alphabet a serialized stream holds, so
// Load can dispatch to the right constructor.
type Kind byte

const (
	// KindDynamic tags a serialized Dynamic alphabet.
	KindDynamic Kind = iota
	// KindNucleotide tags a serialized Nucleotide alphabet.
	KindNucleotide
)

// Serialize writes a's alphabet map data per spec §6 point 4: a u64 size
// and that many bytes of a byte->code table, then a u64 reverse size and
// that many bytes of a code->byte table. For Dynamic the two tables carry
// the same σ-byte code->byte array (toByte), since that array alone
// round-trips the bijection; a fixed-alphabet implementation instead
// writes both sizes as zero, per spec.
func (a *Dynamic) Serialize(w io.Writer) error {
	if err := writeKind(w, KindDynamic); err != nil {
		return err
	}
	if err := writeByteTable(w, a.toByte); err != nil {
		return err
	}
	return writeByteTable(w, a.toByte)
}

// Serialize writes Nucleotide's alphabet map data: per spec §9, the fixed
// alphabet writes zero bytes for the table portion. The terminator/
// separator configuration (spec §9's Open Question resolution) is not a
// "table" in the spec's sense, so it is written as a small fixed header
// ahead of the two zero-length blocks rather than folded into them.
func (a *Nucleotide) Serialize(w io.Writer) error {
	if err := writeKind(w, KindNucleotide); err != nil {
		return err
	}
	cfg := [4]byte{a.termByte, a.sepByte, byte(a.termCode), byte(a.sepCode)}
	if _, err := w.Write(cfg[:]); err != nil {
		return errors.Wrap(err, "alphabet: writing nucleotide configuration")
	}
	if err := writeByteTable(w, nil); err != nil {
		return err
	}
	return writeByteTable(w, nil)
}

// Serialize writes alph's alphabet map data, dispatching on its concrete
// type. It returns an error if alph is neither *Dynamic nor *Nucleotide,
// since no other concrete alphabet exists in this library.
func Serialize(w io.Writer, alph Alphabet) error {
	switch a := alph.(type) {
	case *Dynamic:
		return a.Serialize(w)
	case *Nucleotide:
		return a.Serialize(w)
	default:
		return errors.Errorf("alphabet.Serialize: unsupported alphabet type %T", alph)
	}
}

// Load reverses Serialize for either concrete alphabet, dispatching on the
// leading Kind byte.
func Load(r io.Reader) (Alphabet, error) {
	kind, err := readKind(r)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindDynamic:
		toByte, err := readByteTable(r)
		if err != nil {
			return nil, errors.Wrap(err, "alphabet: reading dynamic table")
		}
		if _, err := readByteTable(r); err != nil {
			return nil, errors.Wrap(err, "alphabet: reading dynamic reverse table")
		}
		a := &Dynamic{toCode: make(map[byte]uint64, len(toByte)), toByte: toByte}
		for i, b := range toByte {
			a.toCode[b] = uint64(i)
		}
		a.width = bitWidth(len(toByte))
		return a, nil
	case KindNucleotide:
		var cfg [4]byte
		if _, err := io.ReadFull(r, cfg[:]); err != nil {
			return nil, errors.Wrap(err, "alphabet: reading nucleotide configuration")
		}
		if _, err := readByteTable(r); err != nil {
			return nil, errors.Wrap(err, "alphabet: reading nucleotide table")
		}
		if _, err := readByteTable(r); err != nil {
			return nil, errors.Wrap(err, "alphabet: reading nucleotide reverse table")
		}
		return NewNucleotide(cfg[0], cfg[1], uint64(cfg[2]), uint64(cfg[3])), nil
	default:
		return nil, errors.Errorf("alphabet: unknown kind byte %d", kind)
	}
}

func writeKind(w io.Writer, k Kind) error {
	_, err := w.Write([]byte{byte(k)})
	return errors.Wrap(err, "alphabet: writing kind")
}

func readKind(r io.Reader) (Kind, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, errors.Wrap(err, "alphabet: reading kind")
	}
	return Kind(b[0]), nil
}

func writeByteTable(w io.Writer, data []byte) error {
	var lenBuf [8]byte
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(data)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return errors.Wrap(err, "alphabet: writing table size")
	}
	if len(data) == 0 {
		return nil
	}
	_, err := w.Write(data)
	return errors.Wrap(err, "alphabet: writing table bytes")
}

func readByteTable(r io.Reader) ([]byte, error) {
	var lenBuf [8]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, errors.Wrap(err, "alphabet: reading table size")
	}
	n := binary.LittleEndian.Uint64(lenBuf[:])
	if n == 0 {
		return nil, nil
	}
	data := make([]byte, n)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, errors.Wrap(err, "alphabet: reading table bytes")
	}
	return data, nil
}
