package attach

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Protocol-Lattice/go-attach/src/attachments"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRequestDistinguishesMissingFields(t *testing.T) {
	req, err := DecodeRequest(strings.NewReader(`{
		"query": "hi",
		"files": [
			{"base64_data": "QQ==", "filename": "a.txt", "mime_type": "text/plain", "extra": 1},
			{"base64_data": "QQ==", "mime_type": "text/plain"}
		]
	}`))
	require.NoError(t, err)
	require.Len(t, req.Files, 2)
	require.NotNil(t, req.Files[0].FileName)
	assert.Equal(t, "a.txt", *req.Files[0].FileName)
	assert.Nil(t, req.Files[1].FileName)

	res := attachments.Normalize(req.Files, req.Query)
	require.Len(t, res.Attachments, 1)
}

func TestDecodeRequestInvalidJSON(t *testing.T) {
	_, err := DecodeRequest(strings.NewReader(`{"query":`))
	require.Error(t, err)
}

func TestSummarizeAndEncode(t *testing.T) {
	res := attachments.Result{
		Text:   "t",
		Source: attachments.SourceMarkers,
		Attachments: []attachments.Attachment{
			{EncodedData: "QUJD", FileName: "a.txt", MIMEType: "text/plain"},
			{EncodedData: "QQ==", FileName: "b.bin", MIMEType: "application/x-unknown"},
		},
	}
	s := Summarize(res, attachments.DefaultConfig())
	require.Len(t, s.Files, 2)
	assert.True(t, s.Files[0].SupportedMIME)
	assert.False(t, s.Files[1].SupportedMIME)
	assert.Equal(t, 4, s.Files[0].EncodedLength)

	var buf bytes.Buffer
	require.NoError(t, EncodeSummary(&buf, s))
	assert.Contains(t, buf.String(), `"source": "markers"`)
	assert.Contains(t, buf.String(), `"supported_mime": false`)
	assert.NotContains(t, buf.String(), "QUJD")
}
