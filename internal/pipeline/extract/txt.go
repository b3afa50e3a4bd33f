package extract

import (
	"bytes"
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// textEncodings are tried in order until one decodes without error. Latin-1
// accepts any byte sequence, so UTF-16 input must be caught by its BOM
// before we get here.
var textEncodings = []struct {
	name string
	enc  encoding.Encoding
}{
	{"latin-1", charmap.ISO8859_1},
	{"cp1252", charmap.Windows1252},
}

var utf16BOMDecoder = unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder

func decodeText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty text file")
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	if bytes.HasPrefix(data, []byte{0xff, 0xfe}) || bytes.HasPrefix(data, []byte{0xfe, 0xff}) {
		if decoded, err := utf16BOMDecoder().Bytes(data); err == nil && utf8.Valid(decoded) {
			return string(decoded), nil
		}
	}
	for _, candidate := range textEncodings {
		decoded, err := candidate.enc.NewDecoder().Bytes(data)
		if err != nil {
			continue
		}
		if utf8.Valid(decoded) {
			return string(decoded), nil
		}
	}
	return "", errors.New("could not decode text file with any supported encoding")
}
