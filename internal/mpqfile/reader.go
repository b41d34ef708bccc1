package mpqfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"
)

// Archive is an MPQ archive opened for reading.
//
// Archive does not own the underlying reader; Close only invalidates the
// handle.
type Archive struct {
	mu     sync.Mutex
	r      io.ReadSeeker
	layout *archiveLayout
	hashes []hashEntry
	blocks []blockEntry
	closed bool
}

// Open parses the archive header and tables from r.
func Open(r io.ReadSeeker) (*Archive, error) {
	layout, err := locateHeader(r)
	if err != nil {
		return nil, err
	}
	if layout.size, err = r.Seek(0, io.SeekEnd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	hashBuf, err := readTable(r, layout.hashTablePos, layout.hashCount, hashTableKey, layout.size)
	if err != nil {
		return nil, fmt.Errorf("hash table: %w", err)
	}
	blockBuf, err := readTable(r, layout.blockTablePos, layout.blockCount, blockTableKey, layout.size)
	if err != nil {
		return nil, fmt.Errorf("block table: %w", err)
	}

	return &Archive{
		r:      r,
		layout: layout,
		hashes: decodeHashTable(hashBuf),
		blocks: decodeBlockTable(blockBuf),
	}, nil
}

// Files returns the names recorded in the archive's listfile. The second
// result is false when the archive has no readable listfile.
func (a *Archive) Files() ([]string, bool) {
	data, err := a.ReadFile(ListfileName)
	if err != nil {
		return nil, false
	}
	return parseListfile(data), true
}

// ReadFile returns the decoded contents of name.
func (a *Archive) ReadFile(name string) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil, ErrClosed
	}

	block, ok := a.lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	data, err := a.readBlock(name, block)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return data, nil
}

// Close invalidates the archive. Every later call fails with ErrClosed.
func (a *Archive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}
	a.closed = true
	a.hashes = nil
	a.blocks = nil
	return nil
}

func (a *Archive) lookup(name string) (blockEntry, bool) {
	n := uint32(len(a.hashes))
	if n == 0 {
		return blockEntry{}, false
	}

	start := HashString(name, HashTableOffset) % n
	nameA := HashString(name, HashNameA)
	nameB := HashString(name, HashNameB)

	for i := uint32(0); i < n; i++ {
		e := a.hashes[(start+i)%n]
		if e.BlockIndex == hashEntryEmpty {
			break
		}
		if e.BlockIndex == hashEntryDeleted || e.NameA != nameA || e.NameB != nameB {
			continue
		}
		if e.BlockIndex >= uint32(len(a.blocks)) {
			continue
		}
		b := a.blocks[e.BlockIndex]
		if b.Flags&flagExists == 0 {
			continue
		}
		return b, true
	}
	return blockEntry{}, false
}

func (a *Archive) readBlock(name string, b blockEntry) ([]byte, error) {
	if b.FileSize == 0 {
		return []byte{}, nil
	}
	if b.Flags&flagImplode != 0 {
		return nil, fmt.Errorf("%w: PKWare implode", ErrUnsupportedCompression)
	}

	pos := a.layout.offset + int64(b.FilePos)
	if pos+int64(b.CompressedSize) > a.layout.size {
		return nil, fmt.Errorf("%w: %d bytes at %d past end of archive", ErrCorrupt, b.CompressedSize, pos)
	}

	raw := make([]byte, b.CompressedSize)
	if _, err := a.r.Seek(pos, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if _, err := io.ReadFull(a.r, raw); err != nil {
		return nil, fmt.Errorf("%w: truncated file data", ErrCorrupt)
	}

	var key uint32
	encrypted := b.Flags&flagEncrypted != 0
	if encrypted {
		key = fileKey(name, b.FilePos, b.FileSize, b.Flags)
	}

	if b.Flags&flagSingleUnit != 0 {
		if encrypted {
			decryptBlock(raw, key)
		}
		if b.Flags&flagCompress != 0 && b.CompressedSize < b.FileSize {
			return decompressSector(raw, b.FileSize)
		}
		if uint32(len(raw)) < b.FileSize {
			return nil, fmt.Errorf("%w: stored size %d below file size %d", ErrCorrupt, len(raw), b.FileSize)
		}
		return raw[:b.FileSize], nil
	}

	sectorSize := a.layout.sectorSize
	sectors := (b.FileSize + sectorSize - 1) / sectorSize

	if b.Flags&flagCompress == 0 {
		if uint32(len(raw)) < b.FileSize {
			return nil, fmt.Errorf("%w: stored size %d below file size %d", ErrCorrupt, len(raw), b.FileSize)
		}
		out := raw[:b.FileSize]
		if encrypted {
			for i := uint32(0); i < sectors; i++ {
				start := i * sectorSize
				end := min(start+sectorSize, b.FileSize)
				decryptBlock(out[start:end], key+i)
			}
		}
		return out, nil
	}

	entries := sectors + 1
	if b.Flags&flagSectorCRC != 0 {
		entries++
	}
	if uint32(len(raw)) < entries*4 {
		return nil, fmt.Errorf("%w: truncated sector offset table", ErrCorrupt)
	}
	table := make([]byte, entries*4)
	copy(table, raw)
	if encrypted {
		decryptBlock(table, key-1)
	}

	out := make([]byte, 0, b.FileSize)
	remaining := b.FileSize
	for i := uint32(0); i < sectors; i++ {
		lo := binary.LittleEndian.Uint32(table[i*4:])
		hi := binary.LittleEndian.Uint32(table[(i+1)*4:])
		if lo > hi || hi > uint32(len(raw)) {
			return nil, fmt.Errorf("%w: sector %d spans %d..%d", ErrCorrupt, i, lo, hi)
		}

		sector := raw[lo:hi]
		if encrypted {
			decryptBlock(sector, key+i)
		}

		expected := min(sectorSize, remaining)
		if uint32(len(sector)) < expected {
			decoded, err := decompressSector(sector, expected)
			if err != nil {
				return nil, fmt.Errorf("sector %d: %w", i, err)
			}
			sector = decoded
		} else {
			sector = sector[:expected]
		}

		out = append(out, sector...)
		remaining -= expected
	}

	return out, nil
}
