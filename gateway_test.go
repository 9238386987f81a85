package attach

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Protocol-Lattice/go-attach/src/attachments"
	"github.com/Protocol-Lattice/go-attach/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingModel struct {
	prompt string
	files  []models.File
	err    error
}

func (m *recordingModel) Generate(_ context.Context, prompt string) (any, error) {
	m.prompt = prompt
	return "plain", m.err
}

func (m *recordingModel) GenerateWithFiles(_ context.Context, prompt string, files []models.File) (any, error) {
	m.prompt = prompt
	m.files = files
	return "with files", m.err
}

func TestGatewayRespondWithMarkers(t *testing.T) {
	model := &recordingModel{}
	g := New(Options{Model: model})

	out, err := g.Respond(context.Background(), Request{
		Query: "summarize [FILE_UPLOAD:data:text/plain;base64,aGk=:a.txt:text/plain] please",
	})

	require.NoError(t, err)
	assert.Equal(t, "with files", out)
	require.Len(t, model.files, 1)
	assert.Equal(t, models.File{Name: "a.txt", MIME: "text/plain", Data: []byte("hi")}, model.files[0])
	assert.True(t, strings.HasPrefix(model.prompt, "summarize [Uploaded file: a.txt] please"))
	assert.Contains(t, model.prompt, "Files provided for this turn:")
	assert.Contains(t, model.prompt, "- a.txt (text/plain, 2 B)")
}

func TestGatewayStructuredKeepsQuery(t *testing.T) {
	model := &recordingModel{}
	g := New(Options{Model: model})
	query := "look [FILE_UPLOAD:QQ==:ignored.txt:text/plain]"

	_, err := g.Respond(context.Background(), Request{
		Query: query,
		Files: []attachments.Upload{attachments.NewUpload("JVBERi0=", "doc.pdf", "application/pdf")},
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(model.prompt, query))
	require.Len(t, model.files, 1)
	assert.Equal(t, "doc.pdf", model.files[0].Name)
	assert.Equal(t, []byte("%PDF-"), model.files[0].Data)
}

func TestGatewayEmptyRequest(t *testing.T) {
	g := New(Options{Model: &recordingModel{}})

	_, err := g.Respond(context.Background(), Request{Query: "   "})
	require.ErrorIs(t, err, ErrEmptyRequest)

	_, err = g.Respond(context.Background(), Request{
		Files: []attachments.Upload{attachments.NewUpload("", "a.txt", "text/plain")},
	})
	require.ErrorIs(t, err, ErrEmptyRequest)
}

func TestGatewayAttachmentOnlyRequest(t *testing.T) {
	g := New(Options{})
	p, err := g.Prepare(context.Background(), Request{
		Files: []attachments.Upload{attachments.NewUpload("aGk=", "a.txt", "text/plain")},
	})
	require.NoError(t, err)
	assert.Len(t, p.Files, 1)
}

func TestGatewayWithoutModel(t *testing.T) {
	g := New(Options{})
	_, err := g.Respond(context.Background(), Request{Query: "hi"})
	require.ErrorIs(t, err, ErrNoModel)
}

func TestGatewayPropagatesModelError(t *testing.T) {
	boom := errors.New("boom")
	g := New(Options{Model: &recordingModel{err: boom}})
	_, err := g.Respond(context.Background(), Request{Query: "hi"})
	require.ErrorIs(t, err, boom)
}

func TestGatewayRejectsUndecodablePayload(t *testing.T) {
	g := New(Options{Model: &recordingModel{}})
	_, err := g.Respond(context.Background(), Request{
		Files: []attachments.Upload{attachments.NewUpload("%%%", "bad.txt", "text/plain")},
	})
	require.ErrorIs(t, err, models.ErrInvalidPayload)
}

func TestGatewayHonoursConfiguredCeiling(t *testing.T) {
	g := New(Options{Attachments: attachments.Config{MaxEncodedLength: 2}})
	res := g.Normalize(Request{Query: "x [FILE_UPLOAD:aGk=:a.txt:text/plain]"})
	assert.Empty(t, res.Attachments)
	assert.Equal(t, 2, g.Config().MaxEncodedLength)
}

func TestGatewayWithDummyModel(t *testing.T) {
	g := New(Options{Model: models.NewDummyLLM("PFX")})
	out, err := g.Respond(context.Background(), Request{
		Query: "read [FILE_UPLOAD:data:text/markdown;base64,IyBUaXRsZQ==:notes.md:text/markdown]",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "<<<FILE notes.md [text/markdown]>>>:\n# Title")
}

func TestGatewayDecodeCacheReusesPayloads(t *testing.T) {
	g := New(Options{DecodeCacheSize: 4})
	req := Request{Files: []attachments.Upload{attachments.NewUpload("aGk=", "a.txt", "text/plain")}}

	first, err := g.Prepare(context.Background(), req)
	require.NoError(t, err)
	second, err := g.Prepare(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Files, second.Files)
	assert.Equal(t, 1, g.payloads.Len())
}
