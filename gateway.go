// Package attach accepts a query with attached files in either of the two
// supported shapes, normalizes them and hands the result to a model.
package attach

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Protocol-Lattice/go-attach/src/attachments"
	"github.com/Protocol-Lattice/go-attach/src/cache"
	"github.com/Protocol-Lattice/go-attach/src/logging"
	"github.com/Protocol-Lattice/go-attach/src/models"
	"github.com/sirupsen/logrus"
)

var (
	// ErrEmptyRequest is returned when neither text nor files survive normalization.
	ErrEmptyRequest = errors.New("request has no query and no attachments")
	// ErrNoModel is returned by Respond on a gateway built without a model.
	ErrNoModel = errors.New("gateway has no language model")
)

const (
	defaultDecodeWorkers = 4
	decodeCacheTTL       = 15 * time.Minute
)

// Gateway is the ingestion boundary in front of a model.
type Gateway struct {
	model      models.Agent
	normalizer *attachments.Normalizer
	config     attachments.Config
	workers    int
	payloads   *cache.LRU[[]byte]
	logger     logrus.FieldLogger
}

// Options configure a new Gateway. Model may be nil when only Prepare is used.
// DecodeCacheSize > 0 keeps that many decoded payloads between requests.
type Options struct {
	Model           models.Agent
	Attachments     attachments.Config
	DecodeWorkers   int
	DecodeCacheSize int
	Logger          logrus.FieldLogger
}

// New creates a Gateway with the provided options.
func New(opts Options) *Gateway {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewLogger("ERROR")
	}
	workers := opts.DecodeWorkers
	if workers <= 0 {
		workers = defaultDecodeWorkers
	}
	normalizer := attachments.NewNormalizer(opts.Attachments).WithLogger(logger)
	g := &Gateway{
		model:      opts.Model,
		normalizer: normalizer,
		config:     normalizer.Validator().Config(),
		workers:    workers,
		logger:     logger,
	}
	if opts.DecodeCacheSize > 0 {
		g.payloads = cache.New[[]byte](opts.DecodeCacheSize, decodeCacheTTL)
	}
	return g
}

// Config returns the attachment limits in effect.
func (g *Gateway) Config() attachments.Config { return g.config }

// Normalize runs only the attachment normalization step.
func (g *Gateway) Normalize(req Request) attachments.Result {
	return g.normalizer.Normalize(req.Files, req.Query)
}

// Prepared is a normalized request ready for a model call.
type Prepared struct {
	Result attachments.Result
	Files  []models.File
	Prompt string
}

// Prepare normalizes req, decodes the surviving attachments and builds the
// prompt that lists them.
func (g *Gateway) Prepare(ctx context.Context, req Request) (Prepared, error) {
	res := g.Normalize(req)
	if strings.TrimSpace(res.Text) == "" && len(res.Attachments) == 0 {
		return Prepared{}, ErrEmptyRequest
	}

	files, err := models.DecodeAttachmentsCached(ctx, res.Attachments, g.workers, g.payloads)
	if err != nil {
		return Prepared{}, fmt.Errorf("decode attachments: %w", err)
	}

	g.logger.WithFields(logrus.Fields{
		"source":      string(res.Source),
		"attachments": len(files),
	}).Debug("request normalized")

	return Prepared{
		Result: res,
		Files:  files,
		Prompt: res.Text + buildAttachmentPrompt("Files provided for this turn", files),
	}, nil
}

// Respond prepares req and sends it, with its files, to the model.
func (g *Gateway) Respond(ctx context.Context, req Request) (string, error) {
	if g.model == nil {
		return "", ErrNoModel
	}
	p, err := g.Prepare(ctx, req)
	if err != nil {
		return "", err
	}
	completion, err := g.model.GenerateWithFiles(ctx, p.Prompt, p.Files)
	if err != nil {
		return "", err
	}
	return fmt.Sprint(completion), nil
}
