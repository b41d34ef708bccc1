package mpqfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"
)

// maxArchiveSize is the largest archive whose offsets fit the v1 tables.
var maxArchiveSize int64 = math.MaxUint32

// FileOptions selects how an entry is stored.
type FileOptions struct {
	// Encrypt encrypts the entry with a key derived from its name.
	Encrypt bool
	// Compress stores sectors zlib-compressed when that makes them smaller.
	Compress bool
	// AdjustKey mixes the entry's position and size into its key.
	// It has no effect unless Encrypt is set.
	AdjustKey bool
}

// CreatorOption configures a Creator.
type CreatorOption func(*Creator)

// WithSectorSizeShift sets the sector size to 512 << shift bytes.
func WithSectorSizeShift(shift uint16) CreatorOption {
	return func(c *Creator) {
		c.sectorShift = shift
	}
}

// WithListfile controls whether a "(listfile)" entry is generated.
func WithListfile(enabled bool) CreatorOption {
	return func(c *Creator) {
		c.listfile = enabled
	}
}

type pendingFile struct {
	name string
	data []byte
	opts FileOptions
}

// Creator accumulates entries in memory and writes them as one archive.
// A Creator is single use: after Write every method fails with ErrFinalized.
type Creator struct {
	files       []pendingFile
	index       map[string]int
	sectorShift uint16
	listfile    bool
	finalized   bool
}

// NewCreator returns an empty Creator.
func NewCreator(opts ...CreatorOption) *Creator {
	c := &Creator{
		index:       make(map[string]int),
		sectorShift: DefaultSectorSizeShift,
		listfile:    true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddFile queues an entry. '/' in name is stored as '\'. Adding a name that
// is already queued (ignoring case) replaces the earlier entry.
func (c *Creator) AddFile(name string, data []byte, opts FileOptions) error {
	if c.finalized {
		return ErrFinalized
	}
	name = strings.ReplaceAll(name, "/", `\`)
	if strings.Trim(name, `\`) == "" {
		return fmt.Errorf("invalid entry name %q", name)
	}

	f := pendingFile{name: name, data: data, opts: opts}
	key := NameKey(name)
	if i, ok := c.index[key]; ok {
		c.files[i] = f
		return nil
	}
	c.index[key] = len(c.files)
	c.files = append(c.files, f)
	return nil
}

// Write serializes every queued entry to w and finalizes the Creator.
func (c *Creator) Write(w io.Writer) error {
	if c.finalized {
		return ErrFinalized
	}
	c.finalized = true

	if c.sectorShift > 15 {
		return fmt.Errorf("sector size shift %d out of range", c.sectorShift)
	}

	files := c.files
	if c.listfile {
		if _, user := c.index[NameKey(ListfileName)]; !user {
			names := make([]string, 0, len(files))
			for _, f := range files {
				names = append(names, f.name)
			}
			files = append(files[:len(files):len(files)], pendingFile{
				name: ListfileName,
				data: buildListfile(names),
				opts: FileOptions{Compress: true},
			})
		}
	}

	var body bytes.Buffer
	body.Write(make([]byte, headerSizeV1))

	sectorSize := uint32(512) << c.sectorShift
	blocks := make([]blockEntry, 0, len(files))
	for _, f := range files {
		pos := uint32(body.Len())
		stored, b := encodeFile(f, pos, sectorSize)
		body.Write(stored)
		blocks = append(blocks, b)
	}

	hashes := buildHashTable(files)

	hashPos := uint32(body.Len())
	body.Write(encodeTable(hashes, hashTableKey))
	blockPos := uint32(body.Len())
	body.Write(encodeTable(blocks, blockTableKey))

	if int64(body.Len()) > maxArchiveSize {
		return fmt.Errorf("%w: %d bytes", ErrTooLarge, body.Len())
	}

	h := header{
		Magic:           magicArchive,
		HeaderSize:      headerSizeV1,
		ArchiveSize:     uint32(body.Len()),
		FormatVersion:   0,
		SectorSizeShift: c.sectorShift,
		HashTablePos:    hashPos,
		BlockTablePos:   blockPos,
		HashTableSize:   uint32(len(hashes)),
		BlockTableSize:  uint32(len(blocks)),
	}
	var hdr bytes.Buffer
	_ = binary.Write(&hdr, binary.LittleEndian, h)

	out := body.Bytes()
	copy(out, hdr.Bytes())

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	return nil
}

// encodeFile produces the stored bytes and block entry of one file placed
// at pos.
func encodeFile(f pendingFile, pos, sectorSize uint32) ([]byte, blockEntry) {
	size := uint32(len(f.data))
	b := blockEntry{FilePos: pos, FileSize: size, Flags: flagExists}
	if size == 0 {
		return nil, b
	}

	var key uint32
	if f.opts.Encrypt {
		b.Flags |= flagEncrypted
		if f.opts.AdjustKey {
			b.Flags |= flagFixKey
		}
		key = fileKey(f.name, pos, size, b.Flags)
	}

	sectors := (size + sectorSize - 1) / sectorSize

	if !f.opts.Compress {
		out := make([]byte, size)
		copy(out, f.data)
		if f.opts.Encrypt {
			for i := uint32(0); i < sectors; i++ {
				start := i * sectorSize
				end := min(start+sectorSize, size)
				encryptBlock(out[start:end], key+i)
			}
		}
		b.CompressedSize = size
		return out, b
	}

	b.Flags |= flagCompress
	tableSize := (sectors + 1) * 4
	table := make([]byte, tableSize)
	var payload bytes.Buffer

	for i := uint32(0); i < sectors; i++ {
		start := i * sectorSize
		end := min(start+sectorSize, size)
		chunk := f.data[start:end]

		sector, ok := compressSector(chunk)
		if !ok {
			sector = append([]byte(nil), chunk...)
		}
		if f.opts.Encrypt {
			encryptBlock(sector, key+i)
		}

		binary.LittleEndian.PutUint32(table[i*4:], tableSize+uint32(payload.Len()))
		payload.Write(sector)
	}
	binary.LittleEndian.PutUint32(table[sectors*4:], tableSize+uint32(payload.Len()))

	if f.opts.Encrypt {
		encryptBlock(table, key-1)
	}

	out := append(table, payload.Bytes()...)
	b.CompressedSize = uint32(len(out))
	return out, b
}

// buildHashTable places every file by linear probing in a power-of-two
// table that always keeps at least one empty slot.
func buildHashTable(files []pendingFile) []hashEntry {
	n := uint32(16)
	for n < uint32(len(files))*4/3+1 {
		n <<= 1
	}

	table := make([]hashEntry, n)
	for i := range table {
		table[i] = hashEntry{
			NameA:      hashEntryEmpty,
			NameB:      hashEntryEmpty,
			Locale:     0xFFFF,
			Platform:   0xFFFF,
			BlockIndex: hashEntryEmpty,
		}
	}

	for idx, f := range files {
		slot := HashString(f.name, HashTableOffset) & (n - 1)
		for table[slot].BlockIndex != hashEntryEmpty {
			slot = (slot + 1) & (n - 1)
		}
		table[slot] = hashEntry{
			NameA:      HashString(f.name, HashNameA),
			NameB:      HashString(f.name, HashNameB),
			BlockIndex: uint32(idx),
		}
	}

	return table
}
