package attachments

import (
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	// markerPattern captures the data URL (greedy, may contain colons), the
	// file name (no colons) and the MIME type. No field may contain ']', so a
	// match never runs past the end of its own marker. There is no escaping.
	markerPattern = regexp.MustCompile(`\[FILE_UPLOAD:([^\]\n]+):([^:\]]+):([^\]]+)\]`)

	// legacyMarkerPattern lets the data URL span any character but newline.
	// Two markers in one text collapse into a single match under it.
	legacyMarkerPattern = regexp.MustCompile(`\[FILE_UPLOAD:(.+):([^:]+):([^\]]+)\]`)
)

// SkipReason says why a matched marker produced no attachment.
type SkipReason int

const (
	SkipNone SkipReason = iota
	SkipDecodeError
	SkipEmptyPayload
	SkipOversized
)

func (r SkipReason) String() string {
	switch r {
	case SkipNone:
		return "none"
	case SkipDecodeError:
		return "decode_error"
	case SkipEmptyPayload:
		return "empty_payload"
	case SkipOversized:
		return "oversized"
	default:
		return "unknown"
	}
}

// MarkerResult is the outcome for one matched marker, kept or skipped.
type MarkerResult struct {
	// Marker is the full literal marker text as it appeared in the input.
	Marker     string
	DataURL    string
	Attachment Attachment
	Skip       SkipReason
	Err        error
}

// Kept reports whether the marker produced an attachment.
func (r MarkerResult) Kept() bool { return r.Skip == SkipNone }

// Placeholder is the text that replaces a kept marker.
func Placeholder(fileName string) string {
	return "[Uploaded file: " + fileName + "]"
}

// ScanMarkers matches every marker in text, in order of appearance, and
// decides for each one whether it yields an attachment.
func ScanMarkers(text string, cfg Config) []MarkerResult {
	cfg = cfg.withDefaults()
	pattern := markerPattern
	if cfg.LegacyGrammar {
		pattern = legacyMarkerPattern
	}
	matches := pattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	results := make([]MarkerResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, scanMarker(m, cfg))
	}
	return results
}

func scanMarker(m []string, cfg Config) MarkerResult {
	res := MarkerResult{
		Marker:  m[0],
		DataURL: m[1],
		Attachment: Attachment{
			FileName: m[2],
			MIMEType: m[3],
		},
	}
	payload, err := DecodeDataURL(m[1])
	switch {
	case err != nil:
		res.Skip, res.Err = SkipDecodeError, err
	case payload == "":
		res.Skip = SkipEmptyPayload
	case cfg.exceedsCeiling(payload):
		res.Skip = SkipOversized
	default:
		res.Attachment.EncodedData = payload
	}
	if !res.Kept() {
		res.Attachment = Attachment{}
	}
	return res
}

// ExtractMarkers pulls attachments out of text and returns the text with
// every kept marker replaced by its placeholder. Skipped markers are left in
// the text as-is.
func ExtractMarkers(text string, cfg Config) (string, []Attachment) {
	return extractMarkers(text, cfg, discardLogger())
}

func extractMarkers(text string, cfg Config, logger logrus.FieldLogger) (string, []Attachment) {
	results := ScanMarkers(text, cfg)
	if len(results) == 0 {
		return text, nil
	}
	cleaned := text
	var kept []Attachment
	for i, res := range results {
		if !res.Kept() {
			logger.WithFields(logrus.Fields{
				"marker_index": i,
				"reason":       res.Skip.String(),
			}).Debug("skipping file upload marker")
			continue
		}
		kept = append(kept, res.Attachment)
		// Keyed on the exact literal so near-identical markers elsewhere
		// are left alone.
		cleaned = strings.ReplaceAll(cleaned, res.Marker, Placeholder(res.Attachment.FileName))
	}
	return cleaned, kept
}
