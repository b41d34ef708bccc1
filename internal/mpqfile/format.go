package mpqfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	headerSizeV1 = 32
	headerSizeV2 = 44

	headerAlignment = 512

	// DefaultSectorSizeShift gives 4096-byte sectors.
	DefaultSectorSizeShift = 3

	// maxSectorSizeShift keeps 512 << shift within a uint32.
	maxSectorSizeShift = 22

	hashEntrySize  = 16
	blockEntrySize = 16

	hashEntryEmpty   = 0xFFFFFFFF
	hashEntryDeleted = 0xFFFFFFFE
)

// Block flags.
const (
	flagImplode    = 0x00000100
	flagCompress   = 0x00000200
	flagEncrypted  = 0x00010000
	flagFixKey     = 0x00020000
	flagSingleUnit = 0x01000000
	flagSectorCRC  = 0x04000000
	flagExists     = 0x80000000
)

// Sector compression masks.
const (
	compressionZlib  = 0x02
	compressionBzip2 = 0x10
)

var (
	magicArchive  = [4]byte{'M', 'P', 'Q', 0x1A}
	magicUserData = [4]byte{'M', 'P', 'Q', 0x1B}

	hashTableKey  = HashString("(hash table)", HashFileKey)
	blockTableKey = HashString("(block table)", HashFileKey)
)

type header struct {
	Magic           [4]byte
	HeaderSize      uint32
	ArchiveSize     uint32
	FormatVersion   uint16
	SectorSizeShift uint16
	HashTablePos    uint32
	BlockTablePos   uint32
	HashTableSize   uint32
	BlockTableSize  uint32
}

type headerExt struct {
	HiBlockTablePos uint64
	HashTablePosHi  uint16
	BlockTablePosHi uint16
}

type userDataHeader struct {
	Magic          [4]byte
	UserDataSize   uint32
	HeaderOffset   uint32
	UserHeaderSize uint32
}

type hashEntry struct {
	NameA      uint32
	NameB      uint32
	Locale     uint16
	Platform   uint16
	BlockIndex uint32
}

type blockEntry struct {
	FilePos        uint32
	CompressedSize uint32
	FileSize       uint32
	Flags          uint32
}

// archiveLayout is the parsed header with absolute table offsets.
type archiveLayout struct {
	offset        int64
	size          int64
	sectorSize    uint32
	hashTablePos  int64
	blockTablePos int64
	hashCount     uint32
	blockCount    uint32
}

// locateHeader scans r at 512-byte boundaries for an archive header,
// following a user data header when one is found first.
func locateHeader(r io.ReadSeeker) (*archiveLayout, error) {
	for offset := int64(0); ; offset += headerAlignment {
		var magic [4]byte
		if _, err := r.Seek(offset, io.SeekStart); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotMPQ, err)
		}
		if _, err := io.ReadFull(r, magic[:]); err != nil {
			return nil, ErrNotMPQ
		}

		switch magic {
		case magicArchive:
			return readHeader(r, offset)
		case magicUserData:
			var ud userDataHeader
			if _, err := r.Seek(offset, io.SeekStart); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrNotMPQ, err)
			}
			if err := binary.Read(r, binary.LittleEndian, &ud); err != nil {
				return nil, fmt.Errorf("%w: truncated user data header", ErrCorrupt)
			}
			return readHeader(r, offset+int64(ud.HeaderOffset))
		}
	}
}

func readHeader(r io.ReadSeeker, offset int64) (*archiveLayout, error) {
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("%w: truncated header", ErrCorrupt)
	}
	if h.Magic != magicArchive {
		return nil, fmt.Errorf("%w: bad header magic at offset %d", ErrNotMPQ, offset)
	}
	if h.HeaderSize < headerSizeV1 {
		return nil, fmt.Errorf("%w: header size %d", ErrCorrupt, h.HeaderSize)
	}
	if h.SectorSizeShift > maxSectorSizeShift {
		return nil, fmt.Errorf("%w: sector size shift %d", ErrCorrupt, h.SectorSizeShift)
	}

	layout := &archiveLayout{
		offset:        offset,
		sectorSize:    512 << h.SectorSizeShift,
		hashTablePos:  offset + int64(h.HashTablePos),
		blockTablePos: offset + int64(h.BlockTablePos),
		hashCount:     h.HashTableSize,
		blockCount:    h.BlockTableSize,
	}

	if h.FormatVersion >= 1 && h.HeaderSize >= headerSizeV2 {
		var ext headerExt
		if err := binary.Read(r, binary.LittleEndian, &ext); err != nil {
			return nil, fmt.Errorf("%w: truncated extended header", ErrCorrupt)
		}
		layout.hashTablePos += int64(ext.HashTablePosHi) << 32
		layout.blockTablePos += int64(ext.BlockTablePosHi) << 32
	}

	return layout, nil
}

// readTable reads and decrypts count 16-byte entries.
func readTable(r io.ReadSeeker, pos int64, count uint32, key uint32, size int64) ([]byte, error) {
	if count > 1<<24 || pos < 0 || pos+int64(count)*hashEntrySize > size {
		return nil, fmt.Errorf("%w: table of %d entries at %d", ErrCorrupt, count, pos)
	}
	buf := make([]byte, int(count)*hashEntrySize)
	if _, err := r.Seek(pos, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("%w: truncated table at %d", ErrCorrupt, pos)
	}
	decryptBlock(buf, key)
	return buf, nil
}

func decodeHashTable(buf []byte) []hashEntry {
	entries := make([]hashEntry, len(buf)/hashEntrySize)
	_ = binary.Read(bytes.NewReader(buf), binary.LittleEndian, entries)
	return entries
}

func decodeBlockTable(buf []byte) []blockEntry {
	entries := make([]blockEntry, len(buf)/blockEntrySize)
	_ = binary.Read(bytes.NewReader(buf), binary.LittleEndian, entries)
	return entries
}

func encodeTable(entries any, key uint32) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, entries)
	out := buf.Bytes()
	encryptBlock(out, key)
	return out
}
