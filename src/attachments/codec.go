package attachments

import (
	"errors"
	"strings"
)

// ErrEmptyInput is returned by DecodeDataURL for an empty string.
var ErrEmptyInput = errors.New("data URL cannot be empty")

const base64Marker = "base64,"

// DecodeDataURL returns the base64 payload of a data URL
// ("data:<mime>;base64,<payload>") or of a bare base64 string.
//
// The payload is whatever follows the first "base64,"; failing that, whatever
// follows the last comma; failing that, the input itself. The alphabet is not
// checked here.
func DecodeDataURL(dataURL string) (string, error) {
	if dataURL == "" {
		return "", ErrEmptyInput
	}
	if _, payload, ok := strings.Cut(dataURL, base64Marker); ok {
		return payload, nil
	}
	if i := strings.LastIndexByte(dataURL, ','); i >= 0 {
		return dataURL[i+1:], nil
	}
	return dataURL, nil
}
