package models

import (
	"mime"
	"path/filepath"
	"strings"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	mimeExtMap = map[string]string{
		".jpg":      "image/jpeg",
		".jpeg":     "image/jpeg",
		".png":      "image/png",
		".gif":      "image/gif",
		".webp":     "image/webp",
		".txt":      "text/plain",
		".log":      "text/plain",
		".md":       "text/markdown",
		".markdown": "text/markdown",
		".json":     "application/json",
		".yaml":     "application/x-yaml",
		".yml":      "application/x-yaml",
		".pdf":      mimePDF,
		".docx":     mimeDOCX,
	}

	mimeAliasMap = map[string]string{
		"image/jpg":         "image/jpeg",
		"image/pjpeg":       "image/jpeg",
		"image/x-png":       "image/png",
		"application/x-pdf": mimePDF,
	}
)

// NormalizeMIME lowercases m, drops parameters, resolves aliases and falls
// back to the file extension of name when m is empty or malformed.
func NormalizeMIME(name, m string) string {
	raw := strings.ToLower(strings.TrimSpace(m))
	if i := strings.IndexByte(raw, ';'); i >= 0 {
		raw = strings.TrimSpace(raw[:i])
	}
	for strings.HasPrefix(raw, "image/image/") {
		raw = strings.TrimPrefix(raw, "image/")
	}
	if alias, ok := mimeAliasMap[raw]; ok {
		return alias
	}
	raw = strings.TrimSuffix(raw, "/")
	if raw != "" && strings.Contains(raw, "/") {
		return raw
	}
	if fromExt := mimeFromExt(name); fromExt != "" {
		return fromExt
	}
	return raw
}

func mimeFromExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}
	if mt, ok := mimeExtMap[ext]; ok {
		return mt
	}
	if mt := mime.TypeByExtension(ext); mt != "" {
		if i := strings.IndexByte(mt, ';'); i >= 0 {
			mt = mt[:i]
		}
		return strings.TrimSpace(mt)
	}
	return ""
}

// IsTextMIME reports whether files of type m can be inlined into a prompt.
func IsTextMIME(m string) bool {
	m = strings.ToLower(strings.TrimSpace(m))
	if m == "" {
		return false
	}
	if strings.HasPrefix(m, "text/") {
		return true
	}
	switch m {
	case "application/json", "application/xml", "application/x-yaml", "application/yaml":
		return true
	default:
		return false
	}
}

func isImageMIME(m string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(m)), "image/")
}

func isPDFMIME(m string) bool {
	return strings.ToLower(strings.TrimSpace(m)) == mimePDF
}
