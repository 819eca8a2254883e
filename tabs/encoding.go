package tabs

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// LookupEncoding resolves a user-facing encoding name ("UTF-8",
// "ISO-8859-1", ...) to a text encoding. Settings validation and file I/O
// share this so they cannot disagree about what names are legal.
func LookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	return enc, nil
}

// resolveEncoding is LookupEncoding with a UTF-8 fallback for internal
// paths that must not fail on a bad setting.
func resolveEncoding(name string) encoding.Encoding {
	enc, err := LookupEncoding(name)
	if err != nil {
		return unicode.UTF8
	}
	return enc
}

// encodeChunk converts a UTF-8 chunk to the target encoding, substituting
// unsupported runes rather than failing; the digest path needs a total
// function.
func encodeChunk(enc encoding.Encoding, chunk string) []byte {
	encoder := encoding.ReplaceUnsupported(enc.NewEncoder())
	out, err := encoder.Bytes([]byte(chunk))
	if err != nil {
		return []byte(chunk)
	}
	return out
}
