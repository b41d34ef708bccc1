package mpqfile

import "strings"

// ListfileName is the entry holding the archive's name listing.
const ListfileName = "(listfile)"

// parseListfile splits a listing on CR, LF and ';', dropping blanks and
// case-insensitive duplicates.
func parseListfile(data []byte) []string {
	fields := strings.FieldsFunc(string(data), func(r rune) bool {
		return r == '\r' || r == '\n' || r == ';'
	})

	seen := make(map[string]struct{}, len(fields))
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		k := NameKey(f)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		names = append(names, f)
	}
	return names
}

func buildListfile(names []string) []byte {
	var sb strings.Builder
	for _, n := range names {
		sb.WriteString(n)
		sb.WriteString("\r\n")
	}
	return []byte(sb.String())
}
