package handler

import "strings"

const upperhex = "0123456789ABCDEF"

// encodeFilename percent-encodes name byte-wise, leaving only RFC 3986
// unreserved characters as-is. The result is safe in both the quoted
// filename parameter and the RFC 5987 filename* parameter.
func encodeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name) * 3)
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if isUnreserved(ch) {
			b.WriteByte(ch)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[ch>>4])
		b.WriteByte(upperhex[ch&0x0f])
	}
	return b.String()
}

func isUnreserved(ch byte) bool {
	switch {
	case 'a' <= ch && ch <= 'z', 'A' <= ch && ch <= 'Z', '0' <= ch && ch <= '9':
		return true
	case ch == '-', ch == '.', ch == '_', ch == '~':
		return true
	}
	return false
}

// contentDisposition builds the header value for a download.
func contentDisposition(filename string, inline bool) string {
	kind := "attachment"
	if inline {
		kind = "inline"
	}
	enc := encodeFilename(filename)
	return kind + `; filename="` + enc + `"; filename*=UTF-8''` + enc
}
