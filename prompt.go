package attach

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Protocol-Lattice/go-attach/src/models"
)

const maxPreview = 1024

// buildAttachmentPrompt renders a compact list of files. It never inlines
// non-text bytes; text files get a short preview.
func buildAttachmentPrompt(title string, files []models.File) string {
	if len(files) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\n\n")
	sb.WriteString(title)
	sb.WriteString(":\n")
	for i, f := range files {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			name = fmt.Sprintf("attachment_%d", i+1)
		}
		mime := strings.TrimSpace(f.MIME)
		if mime == "" {
			mime = "application/octet-stream"
		}
		fmt.Fprintf(&sb, "- %s (%s, %s)", name, mime, humanSize(len(f.Data)))
		if models.IsTextMIME(mime) && len(f.Data) > 0 && utf8.Valid(f.Data) {
			sb.WriteString("\n  preview:\n  ")
			sb.WriteString(strings.ReplaceAll(truncate(string(f.Data), maxPreview), "`", "'"))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func humanSize(n int) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
	)
	switch {
	case n >= GB:
		return fmt.Sprintf("%.2f GB", float64(n)/float64(GB))
	case n >= MB:
		return fmt.Sprintf("%.2f MB", float64(n)/float64(MB))
	case n >= KB:
		return fmt.Sprintf("%.2f KB", float64(n)/float64(KB))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
