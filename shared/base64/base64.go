package base64

import (
	b64 "encoding/base64"
	"errors"
	"strings"
)

var ErrInvalidDataURI = errors.New("invalid base64 data URI")

// GetContentType extracts the MIME type from a "data:<type>;base64,..." URI.
// Returns an empty string when the input is not a data URI.
func GetContentType(file string) string {
	start := len("data:")
	end := strings.Index(file, ";base64,")

	if end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

// Decode strips the data-URI prefix, if any, and decodes the payload.
func Decode(file string) ([]byte, error) {
	payload := file

	if idx := strings.Index(file, ";base64,"); idx != -1 {
		payload = file[idx+len(";base64,"):]
	}

	data, err := b64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidDataURI
	}

	return data, nil
}
