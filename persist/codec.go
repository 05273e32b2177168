package persist

import (
	"bytes"
	"io/ioutil"

	"github.com/golang/snappy"
	"github.com/grailbio/base/log"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// Codec selects the compression transformer applied to a persisted
// payload, independent of the integrity checksums wrapped around it.
type Codec byte

const (
	// NoCompression stores the payload as-is.
	NoCompression Codec = iota
	// Snappy is the fast codec (spec SUPPLEMENTED FEATURES: mirrors the
	// teacher's github.com/golang/snappy usage).
	Snappy
	// Gzip trades speed for a higher compression ratio, mirroring the
	// teacher's interval package use of klauspost/compress/gzip.
	Gzip
)

func (c Codec) compress(raw []byte) ([]byte, error) {
	switch c {
	case NoCompression:
		return raw, nil
	case Snappy:
		return snappy.Encode(nil, raw), nil
	case Gzip:
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(raw); err != nil {
			return nil, errors.Wrap(err, "persist: gzip compress")
		}
		if err := w.Close(); err != nil {
			return nil, errors.Wrap(err, "persist: gzip compress")
		}
		return buf.Bytes(), nil
	default:
		log.Panicf("persist: unknown codec %d", c)
		return nil, nil
	}
}

func (c Codec) decompress(compressed []byte) ([]byte, error) {
	switch c {
	case NoCompression:
		return compressed, nil
	case Snappy:
		raw, err := snappy.Decode(nil, compressed)
		if err != nil {
			return nil, errors.Wrap(err, "persist: snappy decompress")
		}
		return raw, nil
	case Gzip:
		r, err := gzip.NewReader(bytes.NewReader(compressed))
		if err != nil {
			return nil, errors.Wrap(err, "persist: gzip decompress")
		}
		defer r.Close()
		raw, err := ioutil.ReadAll(r)
		if err != nil {
			return nil, errors.Wrap(err, "persist: gzip decompress")
		}
		return raw, nil
	default:
		log.Panicf("persist: unknown codec %d", c)
		return nil, nil
	}
}
