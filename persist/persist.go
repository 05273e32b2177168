package persist

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"io/ioutil"

	"blainsmith.com/go/seahash"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/minio/highwayhash"
	"github.com/pkg/errors"
)

// highwayhashKey is fixed rather than random: persisted files must be
// checkable by any process that links this package, not just the one that
// wrote them (mirrors fusion/postprocess.go's zeroSeed use of highwayhash).
var highwayhashKey [highwayhash.Size]byte

// serializable is implemented by move.MoveStructure and runperm.RunPerm.
type serializable interface {
	Serialize(w io.Writer) error
}

// wrap assembles the on-disk payload: [codec byte][compress(inner)], where
// inner = [u64 len(raw)][raw][u64 seahash.Sum64(raw)], followed by a
// highwayhash digest of everything written so far.
func wrap(v serializable, codec Codec) ([]byte, error) {
	var raw bytes.Buffer
	if err := v.Serialize(&raw); err != nil {
		return nil, errors.Wrap(err, "persist: serialize")
	}
	rawBytes := raw.Bytes()
	checksum := seahash.Sum64(rawBytes)

	var inner bytes.Buffer
	var lenBuf [8]byte
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(rawBytes)))
	inner.Write(lenBuf[:])
	inner.Write(rawBytes)
	var sumBuf [8]byte
	binary.LittleEndian.PutUint64(sumBuf[:], checksum)
	inner.Write(sumBuf[:])

	compressed, err := codec.compress(inner.Bytes())
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	body.WriteByte(byte(codec))
	body.Write(compressed)

	digest, err := highwayhash.New(highwayhashKey[:])
	if err != nil {
		log.Panicf("persist: highwayhash.New: %v", err)
	}
	if _, err := digest.Write(body.Bytes()); err != nil {
		log.Panicf("persist: highwayhash digest write: %v", err)
	}

	var out bytes.Buffer
	out.Write(body.Bytes())
	out.Write(digest.Sum(nil))
	return out.Bytes(), nil
}

// unwrap reverses wrap, verifying the highwayhash digest and the seahash
// checksum before handing the raw bytes to load.
func unwrap(data []byte, load func(io.Reader) (interface{}, error)) (interface{}, error) {
	if len(data) < 1+highwayhash.Size {
		return nil, errors.Errorf("persist: truncated file (%d bytes)", len(data))
	}
	split := len(data) - highwayhash.Size
	body, wantDigest := data[:split], data[split:]

	digest, err := highwayhash.New(highwayhashKey[:])
	if err != nil {
		log.Panicf("persist: highwayhash.New: %v", err)
	}
	if _, err := digest.Write(body); err != nil {
		log.Panicf("persist: highwayhash digest write: %v", err)
	}
	if !bytes.Equal(digest.Sum(nil), wantDigest) {
		return nil, errors.New("persist: highwayhash digest mismatch, file is corrupt or truncated")
	}

	codec := Codec(body[0])
	inner, err := codec.decompress(body[1:])
	if err != nil {
		return nil, err
	}
	if len(inner) < 16 {
		return nil, errors.Errorf("persist: truncated inner payload (%d bytes)", len(inner))
	}
	rawLen := binary.LittleEndian.Uint64(inner[0:8])
	if uint64(len(inner)) != 8+rawLen+8 {
		return nil, errors.Errorf("persist: inner payload length mismatch: header says %d, have %d", rawLen, len(inner)-16)
	}
	rawBytes := inner[8 : 8+rawLen]
	wantSum := binary.LittleEndian.Uint64(inner[8+rawLen:])
	if seahash.Sum64(rawBytes) != wantSum {
		return nil, errors.New("persist: seahash checksum mismatch, payload is corrupt")
	}

	return load(bytes.NewReader(rawBytes))
}

func writeFile(ctx context.Context, path string, data []byte) error {
	f, err := file.Create(ctx, path)
	if err != nil {
		return errors.Wrapf(err, "persist: create %s", path)
	}
	if _, err := f.Writer(ctx).Write(data); err != nil {
		f.Close(ctx) // nolint: errcheck
		return errors.Wrapf(err, "persist: write %s", path)
	}
	return errors.Wrapf(f.Close(ctx), "persist: close %s", path)
}

func readFile(ctx context.Context, path string) ([]byte, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "persist: open %s", path)
	}
	defer f.Close(ctx) // nolint: errcheck
	data, err := ioutil.ReadAll(f.Reader(ctx))
	if err != nil {
		return nil, errors.Wrapf(err, "persist: read %s", path)
	}
	return data, nil
}
