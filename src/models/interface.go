package models

import "context"

// File is a decoded attachment ready to hand to a model.
// Name is used for display; MIME is best-effort (e.g., "text/markdown").
type File struct {
	Name string
	MIME string
	Data []byte
}

type Agent interface {
	Generate(context.Context, string) (any, error)
	GenerateWithFiles(context.Context, string, []File) (any, error)
}
