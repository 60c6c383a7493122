package cache

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const entryExt = ".zst"

// DiskStore persists transforms as zstd-compressed content-addressed
// files, one per key, with an in-memory layer in front. Entry layout
// after decompression: u16 format length, format, payload.
//
// The store is advisory: any disk error degrades to a cache miss (or a
// dropped write) rather than failing the transform.
type DiskStore struct {
	dir string
	mem *MemoryStore
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	return &DiskStore{dir: dir, mem: NewMemoryStore(), enc: enc, dec: dec}, nil
}

func (s *DiskStore) path(key Key) string {
	return filepath.Join(s.dir, key.String()+entryExt)
}

func (s *DiskStore) Get(key Key) (Result, bool) {
	if res, ok := s.mem.Get(key); ok {
		return res, true
	}

	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		return Result{}, false
	}
	plain, err := s.dec.DecodeAll(raw, nil)
	if err != nil || len(plain) < 2 {
		return Result{}, false
	}
	n := int(binary.BigEndian.Uint16(plain))
	if len(plain) < 2+n {
		return Result{}, false
	}
	res := Result{Format: string(plain[2 : 2+n]), Data: plain[2+n:]}
	s.mem.Put(key, res)
	return res, true
}

func (s *DiskStore) Put(key Key, res Result) {
	s.mem.Put(key, res)

	plain := make([]byte, 2, 2+len(res.Format)+len(res.Data))
	binary.BigEndian.PutUint16(plain, uint16(len(res.Format)))
	plain = append(plain, res.Format...)
	plain = append(plain, res.Data...)

	tmp, err := os.CreateTemp(s.dir, "entry-*.tmp")
	if err != nil {
		return
	}
	defer os.Remove(tmp.Name())

	_, werr := tmp.Write(s.enc.EncodeAll(plain, nil))
	cerr := tmp.Close()
	if werr != nil || cerr != nil {
		return
	}
	_ = os.Rename(tmp.Name(), s.path(key))
}

// Clear removes every persisted entry.
func (s *DiskStore) Clear() error {
	names, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}
	for _, e := range names {
		if e.IsDir() || !strings.HasSuffix(e.Name(), entryExt) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Stats reports the persisted entry count and total compressed size.
func (s *DiskStore) Stats() (entries int, bytes int64, err error) {
	names, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, 0, err
	}
	for _, e := range names {
		if e.IsDir() || !strings.HasSuffix(e.Name(), entryExt) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return 0, 0, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		entries++
		bytes += info.Size()
	}
	return entries, bytes, nil
}
