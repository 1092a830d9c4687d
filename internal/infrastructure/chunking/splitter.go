package chunking

import "strings"

const paragraphSep = "\n\n"

type Splitter struct {
	MaxChunkSize int
}

func NewSplitter(maxChunkSize int) *Splitter {
	if maxChunkSize <= 0 {
		maxChunkSize = 8000
	}
	return &Splitter{MaxChunkSize: maxChunkSize}
}

// Split cuts normalized text into chunks of at most MaxChunkSize bytes,
// accumulating whole paragraphs (double-newline separated) and flushing
// before a paragraph would overflow the buffer. A single paragraph larger
// than MaxChunkSize is hard-split at fixed byte offsets; only in that case
// is paragraph integrity lost. Joining chunks on the paragraph separator
// (concatenating hard-split pieces directly) reconstructs the input.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	paragraphs := strings.Split(text, paragraphSep)
	out := make([]string, 0, len(text)/s.MaxChunkSize+1)
	var buf strings.Builder

	flush := func() {
		if buf.Len() > 0 {
			out = append(out, buf.String())
			buf.Reset()
		}
	}

	for _, para := range paragraphs {
		if len(para) > s.MaxChunkSize {
			flush()
			for start := 0; start < len(para); start += s.MaxChunkSize {
				end := start + s.MaxChunkSize
				if end > len(para) {
					end = len(para)
				}
				out = append(out, para[start:end])
			}
			continue
		}

		if buf.Len() > 0 && buf.Len()+len(paragraphSep)+len(para) > s.MaxChunkSize {
			flush()
		}
		if buf.Len() > 0 {
			buf.WriteString(paragraphSep)
		}
		buf.WriteString(para)
	}
	flush()
	return out
}
