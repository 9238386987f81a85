package attachments

import (
	"bytes"
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestValidatorRules(t *testing.T) {
	v := NewValidator(Config{MaxEncodedLength: 8})

	cases := []struct {
		name   string
		upload Upload
		valid  bool
	}{
		{"complete", NewUpload("QUJD", "a.txt", "text/plain"), true},
		{"unknown mime still valid", NewUpload("QUJD", "a.bin", "application/x-unknown"), true},
		{"empty mime", NewUpload("QUJD", "a.bin", ""), true},
		{"empty filename", NewUpload("QUJD", "", "text/plain"), true},
		{"at ceiling", NewUpload(strings.Repeat("A", 8), "a.txt", "text/plain"), true},
		{"over ceiling", NewUpload(strings.Repeat("A", 9), "a.txt", "text/plain"), false},
		{"empty data", NewUpload("", "a.txt", "text/plain"), false},
		{"missing data", Upload{FileName: strPtr("a.txt"), MIMEType: strPtr("text/plain")}, false},
		{"missing filename", Upload{EncodedData: strPtr("QUJD"), MIMEType: strPtr("text/plain")}, false},
		{"missing mime", Upload{EncodedData: strPtr("QUJD"), FileName: strPtr("a.txt")}, false},
		{"zero value", Upload{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, v.IsValid(tc.upload))
			assert.Equal(t, tc.valid, v.Validate(tc.upload) == nil)
		})
	}
}

func TestValidatorErrorNamesField(t *testing.T) {
	v := NewValidator(DefaultConfig())

	err := v.Validate(Upload{EncodedData: strPtr("QUJD"), MIMEType: strPtr("text/plain")})

	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "filename")
	assert.NotContains(t, errs, "base64_data")
}

func TestValidatorWarnsOnUnsupportedMIME(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.WarnLevel)

	v := NewValidator(DefaultConfig()).WithLogger(logger)

	require.True(t, v.IsValid(NewUpload("QUJD", "a.bin", "application/x-unknown")))
	assert.Contains(t, buf.String(), "unsupported MIME type accepted")
	assert.Contains(t, buf.String(), "application/x-unknown")

	buf.Reset()
	require.True(t, v.IsValid(NewUpload("QUJD", "a.pdf", "application/pdf")))
	assert.Empty(t, buf.String())
}

func TestConfigDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 25*1024*1024, cfg.MaxEncodedLength)
	for _, mt := range []string{
		"text/plain",
		"text/markdown",
		"text/x-markdown",
		"application/pdf",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	} {
		assert.True(t, cfg.IsAllowedMIME(mt), mt)
	}
	assert.True(t, cfg.IsAllowedMIME(" Text/Plain "))
	assert.False(t, cfg.IsAllowedMIME("image/png"))

	zero := Config{}.withDefaults()
	assert.Equal(t, DefaultMaxEncodedLength, zero.MaxEncodedLength)
	assert.Len(t, zero.AllowedMIMETypes, 5)
}
