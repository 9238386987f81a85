package models

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/Protocol-Lattice/go-attach/src/attachments"
	"github.com/Protocol-Lattice/go-attach/src/cache"
	"github.com/Protocol-Lattice/go-attach/src/concurrent"
)

// ErrInvalidPayload is returned when an attachment's data is not base64.
var ErrInvalidPayload = errors.New("attachment payload is not valid base64")

var payloadEncodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// DecodeAttachments turns normalized attachments into Files, decoding up to
// workers payloads at once. Order is preserved.
func DecodeAttachments(ctx context.Context, atts []attachments.Attachment, workers int) ([]File, error) {
	return DecodeAttachmentsCached(ctx, atts, workers, nil)
}

// DecodeAttachmentsCached is DecodeAttachments backed by a payload cache.
// A nil cache decodes every attachment.
func DecodeAttachmentsCached(ctx context.Context, atts []attachments.Attachment, workers int, payloads *cache.LRU[[]byte]) ([]File, error) {
	return concurrent.ParallelMap(ctx, atts, func(_ context.Context, _ int, a attachments.Attachment) (File, error) {
		if payloads == nil {
			return DecodeAttachment(a)
		}
		key := cache.Key(a.EncodedData)
		if data, ok := payloads.Get(key); ok {
			return newFile(a, bytes.Clone(data)), nil
		}
		f, err := DecodeAttachment(a)
		if err != nil {
			return File{}, err
		}
		payloads.Set(key, bytes.Clone(f.Data))
		return f, nil
	}, workers)
}

// DecodeAttachment decodes a single attachment's base64 payload.
func DecodeAttachment(a attachments.Attachment) (File, error) {
	data, err := decodePayload(a.EncodedData)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", a.FileName, err)
	}
	return newFile(a, data), nil
}

func newFile(a attachments.Attachment, data []byte) File {
	return File{
		Name: a.FileName,
		MIME: NormalizeMIME(a.FileName, a.MIMEType),
		Data: data,
	}
}

func decodePayload(encoded string) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, encoded)
	for _, enc := range payloadEncodings {
		if data, err := enc.DecodeString(cleaned); err == nil {
			return data, nil
		}
	}
	return nil, ErrInvalidPayload
}
