package mpqfile

import (
	"encoding/binary"
	"strings"
)

// Hash types accepted by HashString.
const (
	HashTableOffset = 0
	HashNameA       = 1
	HashNameB       = 2
	HashFileKey     = 3
)

var cryptTable = buildCryptTable()

func buildCryptTable() [0x500]uint32 {
	var table [0x500]uint32
	seed := uint32(0x00100001)

	for i := 0; i < 0x100; i++ {
		idx := i
		for j := 0; j < 5; j++ {
			seed = (seed*125 + 3) % 0x2AAAAB
			hi := (seed & 0xFFFF) << 0x10
			seed = (seed*125 + 3) % 0x2AAAAB
			lo := seed & 0xFFFF
			table[idx] = hi | lo
			idx += 0x100
		}
	}

	return table
}

// HashString hashes an archive name. Names are upper-cased and '/' is
// treated as '\'.
func HashString(name string, hashType uint32) uint32 {
	seed1 := uint32(0x7FED7FED)
	seed2 := uint32(0xEEEEEEEE)

	for i := 0; i < len(name); i++ {
		ch := name[i]
		switch {
		case ch >= 'a' && ch <= 'z':
			ch -= 'a' - 'A'
		case ch == '/':
			ch = '\\'
		}
		seed1 = cryptTable[hashType*0x100+uint32(ch)] ^ (seed1 + seed2)
		seed2 = uint32(ch) + seed1 + seed2 + (seed2 << 5) + 3
	}

	return seed1
}

// encryptBlock encrypts data in place. Trailing bytes beyond the last whole
// 32-bit word are left untouched.
func encryptBlock(data []byte, key uint32) {
	seed := uint32(0xEEEEEEEE)
	for i := 0; i+4 <= len(data); i += 4 {
		seed += cryptTable[0x400+(key&0xFF)]
		plain := binary.LittleEndian.Uint32(data[i:])
		binary.LittleEndian.PutUint32(data[i:], plain^(key+seed))
		key = ((^key << 0x15) + 0x11111111) | (key >> 0x0B)
		seed = plain + seed + (seed << 5) + 3
	}
}

// decryptBlock decrypts data in place.
func decryptBlock(data []byte, key uint32) {
	seed := uint32(0xEEEEEEEE)
	for i := 0; i+4 <= len(data); i += 4 {
		seed += cryptTable[0x400+(key&0xFF)]
		plain := binary.LittleEndian.Uint32(data[i:]) ^ (key + seed)
		binary.LittleEndian.PutUint32(data[i:], plain)
		key = ((^key << 0x15) + 0x11111111) | (key >> 0x0B)
		seed = plain + seed + (seed << 5) + 3
	}
}

// fileKey derives the encryption key of an entry from the final component
// of its name.
func fileKey(name string, filePos, fileSize uint32, flags uint32) uint32 {
	base := name
	if i := strings.LastIndexAny(base, `\/`); i >= 0 {
		base = base[i+1:]
	}
	key := HashString(base, HashFileKey)
	if flags&flagFixKey != 0 {
		key = (key + filePos) ^ fileSize
	}
	return key
}

// NameKey folds a name the same way HashString does.
func NameKey(name string) string {
	b := []byte(name)
	for i, ch := range b {
		switch {
		case ch >= 'a' && ch <= 'z':
			b[i] = ch - ('a' - 'A')
		case ch == '/':
			b[i] = '\\'
		}
	}
	return string(b)
}
