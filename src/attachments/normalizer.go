package attachments

import "github.com/sirupsen/logrus"

// Source names the channel the attachments in a Result came from.
type Source string

const (
	SourceStructured Source = "structured"
	SourceMarkers    Source = "markers"
)

// Result is the normalized (text, attachments) pair.
type Result struct {
	Text        string
	Attachments []Attachment
	Source      Source
}

// Normalizer reconciles structured uploads and inline markers. It holds no
// mutable state and is safe for concurrent use.
type Normalizer struct {
	validator *Validator
	logger    logrus.FieldLogger
}

// NewNormalizer returns a Normalizer applying cfg.
func NewNormalizer(cfg Config) *Normalizer {
	return &Normalizer{validator: NewValidator(cfg), logger: discardLogger()}
}

// WithLogger sets the logger for the normalizer and its validator.
func (n *Normalizer) WithLogger(logger logrus.FieldLogger) *Normalizer {
	if logger != nil {
		n.logger = logger
		n.validator.WithLogger(logger)
	}
	return n
}

// Validator exposes the gate applied to structured uploads.
func (n *Normalizer) Validator() *Validator { return n.validator }

// Normalize prefers uploads when non-empty: invalid entries are dropped and
// text is returned untouched, markers included. With no uploads the markers
// in text are extracted instead.
func (n *Normalizer) Normalize(uploads []Upload, text string) Result {
	if len(uploads) > 0 {
		out := make([]Attachment, 0, len(uploads))
		for i, u := range uploads {
			if err := n.validator.check(u); err != nil {
				n.logger.WithFields(logrus.Fields{
					"upload_index": i,
					"error":        err.Error(),
				}).Debug("dropping invalid upload")
				continue
			}
			out = append(out, u.Attachment())
		}
		return Result{Text: text, Attachments: out, Source: SourceStructured}
	}

	cleaned, extracted := extractMarkers(text, n.validator.cfg, n.logger)
	return Result{Text: cleaned, Attachments: extracted, Source: SourceMarkers}
}

// Normalize runs a Normalizer with DefaultConfig.
func Normalize(uploads []Upload, text string) Result {
	return NewNormalizer(DefaultConfig()).Normalize(uploads, text)
}
