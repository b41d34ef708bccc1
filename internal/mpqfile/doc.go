// Package mpqfile reads and writes MPQ archives.
//
// Supported: format version 1 headers (with the version 2 high position
// words), user data headers, encrypted hash and block tables, single-unit
// and sectored files, zlib and bzip2 sector compression, per-file encryption
// with optional key adjustment, and name listings stored in "(listfile)".
//
// PKWare implode, ADPCM, sparse and LZMA codecs are not supported; entries
// using them fail with ErrUnsupportedCompression.
//
// Names are case insensitive and use '\' as the separator. '/' is accepted
// and treated as '\' when hashing.
package mpqfile
