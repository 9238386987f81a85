package attachments

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

// DefaultMaxEncodedLength bounds the base64 text of a single attachment.
// 25 MiB of base64 is roughly 18.75 MiB of decoded binary.
const DefaultMaxEncodedLength = 25 * 1024 * 1024

var defaultAllowedMIMETypes = []string{
	"text/plain",
	"text/markdown",
	"text/x-markdown",
	"application/pdf",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// Attachment is a normalized file payload. EncodedData never carries a
// data-URL prefix and is always within the configured ceiling.
type Attachment struct {
	EncodedData string `json:"base64_data"`
	FileName    string `json:"filename"`
	MIMEType    string `json:"mime_type"`
}

// EncodedLength reports the length of the payload in characters.
func (a Attachment) EncodedLength() int {
	return utf8.RuneCountInString(a.EncodedData)
}

// Upload is an attachment as received on the structured channel. Pointer
// fields keep an absent key apart from an empty one.
type Upload struct {
	EncodedData *string `json:"base64_data"`
	FileName    *string `json:"filename"`
	MIMEType    *string `json:"mime_type"`
}

// NewUpload builds an Upload with all three fields present.
func NewUpload(encodedData, fileName, mimeType string) Upload {
	return Upload{EncodedData: &encodedData, FileName: &fileName, MIMEType: &mimeType}
}

// Attachment copies the upload into an Attachment. Missing fields become
// empty strings; call it only on uploads that passed validation.
func (u Upload) Attachment() Attachment {
	return Attachment{
		EncodedData: deref(u.EncodedData),
		FileName:    deref(u.FileName),
		MIMEType:    deref(u.MIMEType),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Config holds the limits applied to every attachment.
type Config struct {
	MaxEncodedLength int
	AllowedMIMETypes []string
	// LegacyGrammar lets the data URL field span any character but newline.
	LegacyGrammar bool
}

// DefaultConfig returns the stock ceiling and MIME allow-list.
func DefaultConfig() Config {
	return Config{
		MaxEncodedLength: DefaultMaxEncodedLength,
		AllowedMIMETypes: append([]string(nil), defaultAllowedMIMETypes...),
	}
}

func (c Config) withDefaults() Config {
	if c.MaxEncodedLength <= 0 {
		c.MaxEncodedLength = DefaultMaxEncodedLength
	}
	if c.AllowedMIMETypes == nil {
		c.AllowedMIMETypes = append([]string(nil), defaultAllowedMIMETypes...)
	}
	return c
}

// IsAllowedMIME reports whether mimeType is on the allow-list. Matching is
// exact apart from surrounding whitespace and case.
func (c Config) IsAllowedMIME(mimeType string) bool {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	for _, allowed := range c.AllowedMIMETypes {
		if mt == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

func (c Config) exceedsCeiling(encoded string) bool {
	// Cheap reject before counting runes: a rune is at least one byte.
	if len(encoded) <= c.MaxEncodedLength {
		return false
	}
	return utf8.RuneCountInString(encoded) > c.MaxEncodedLength
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
