package attachments

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/sirupsen/logrus"
)

// Validator gates structured uploads. The MIME allow-list is advisory: an
// unsupported type is logged, never rejected.
type Validator struct {
	cfg    Config
	logger logrus.FieldLogger
}

// NewValidator returns a Validator for cfg. Zero-valued limits fall back to
// the defaults.
func NewValidator(cfg Config) *Validator {
	return &Validator{cfg: cfg.withDefaults(), logger: discardLogger()}
}

// WithLogger sets the logger used for advisory warnings.
func (v *Validator) WithLogger(logger logrus.FieldLogger) *Validator {
	if logger != nil {
		v.logger = logger
	}
	return v
}

// Config returns the limits the validator enforces.
func (v *Validator) Config() Config { return v.cfg }

// Validate checks that all three fields are present, that the payload is
// non-empty and that it fits under the ceiling.
func (v *Validator) Validate(u Upload) error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.EncodedData,
			validation.NotNil,
			validation.Required,
			validation.RuneLength(1, v.cfg.MaxEncodedLength),
		),
		validation.Field(&u.FileName, validation.NotNil),
		validation.Field(&u.MIMEType, validation.NotNil),
	)
}

// IsValid reports whether u may appear in the normalized output.
func (v *Validator) IsValid(u Upload) bool {
	return v.check(u) == nil
}

func (v *Validator) check(u Upload) error {
	if err := v.Validate(u); err != nil {
		return err
	}
	if mt := deref(u.MIMEType); mt != "" && !v.cfg.IsAllowedMIME(mt) {
		v.logger.WithFields(logrus.Fields{
			"filename":  deref(u.FileName),
			"mime_type": mt,
		}).Warn("unsupported MIME type accepted")
	}
	return nil
}
