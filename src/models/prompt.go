package models

import (
	"fmt"
	"strings"
)

// CombinePromptWithFiles appends an attachments section to base. Text files
// are inlined; every other file is only named.
func CombinePromptWithFiles(base string, files []File) string {
	if len(files) == 0 {
		return base
	}

	size := len(base) + 128
	for _, f := range files {
		size += len(f.Name) + 64
		if IsTextMIME(NormalizeMIME(f.Name, f.MIME)) {
			size += len(f.Data)
		}
	}

	var b strings.Builder
	b.Grow(size)
	b.WriteString(base)
	b.WriteString("\n\n---\nATTACHMENTS CONTEXT (inline for text files) - BEGIN\n")

	for i, f := range files {
		title := fileTitle(f, i)
		mt := NormalizeMIME(f.Name, f.MIME)

		if IsTextMIME(mt) && len(f.Data) > 0 {
			b.WriteString("\n<<<FILE ")
			b.WriteString(title)
			if mt != "" {
				b.WriteString(" [" + mt + "]")
			}
			b.WriteString(">>>:\n")
			b.Write(f.Data)
			b.WriteString("\n<<<END FILE ")
			b.WriteString(title)
			b.WriteString(">>>\n")
			continue
		}
		b.WriteString("\n[Non-text attachment] ")
		b.WriteString(title)
		if mt != "" {
			b.WriteString(" (" + mt + ")")
		}
	}

	b.WriteString("\nATTACHMENTS CONTEXT - END\n---\n")
	return b.String()
}

func fileTitle(f File, i int) string {
	if title := strings.TrimSpace(f.Name); title != "" {
		return title
	}
	return fmt.Sprintf("file_%d", i+1)
}

// splitFiles separates files a provider can take natively from the ones that
// must be inlined or referenced in the prompt.
func splitFiles(files []File, native func(mime string) bool) (nativeFiles, promptFiles []File) {
	for _, f := range files {
		mt := NormalizeMIME(f.Name, f.MIME)
		if native(mt) {
			nativeFiles = append(nativeFiles, File{Name: f.Name, MIME: mt, Data: f.Data})
			continue
		}
		promptFiles = append(promptFiles, f)
	}
	return nativeFiles, promptFiles
}

func withPrefix(prefix, prompt string) string {
	if strings.TrimSpace(prefix) == "" {
		return prompt
	}
	return prefix + "\n\n" + prompt
}
