package attach

import (
	"fmt"
	"io"

	"github.com/Protocol-Lattice/go-attach/src/attachments"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Request is one incoming turn: free-form query text plus an optional
// structured file list. Markers inside Query are only honoured when Files
// is empty.
type Request struct {
	Query string               `json:"query"`
	Files []attachments.Upload `json:"files,omitempty"`
}

// DecodeRequest reads a JSON Request from r.
func DecodeRequest(r io.Reader) (Request, error) {
	var req Request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return Request{}, fmt.Errorf("decode request: %w", err)
	}
	return req, nil
}

// FileSummary describes a normalized attachment without its payload.
type FileSummary struct {
	FileName      string `json:"filename"`
	MIMEType      string `json:"mime_type"`
	EncodedLength int    `json:"encoded_length"`
	SupportedMIME bool   `json:"supported_mime"`
}

// Summary is the payload-free view of a normalization result.
type Summary struct {
	Text   string             `json:"text"`
	Source attachments.Source `json:"source"`
	Files  []FileSummary      `json:"files"`
}

// Summarize renders res against the allow-list in cfg.
func Summarize(res attachments.Result, cfg attachments.Config) Summary {
	files := make([]FileSummary, 0, len(res.Attachments))
	for _, a := range res.Attachments {
		files = append(files, FileSummary{
			FileName:      a.FileName,
			MIMEType:      a.MIMEType,
			EncodedLength: a.EncodedLength(),
			SupportedMIME: cfg.IsAllowedMIME(a.MIMEType),
		})
	}
	return Summary{Text: res.Text, Source: res.Source, Files: files}
}

// EncodeSummary writes s to w as indented JSON.
func EncodeSummary(w io.Writer, s Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
