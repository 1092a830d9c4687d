package ocrimage

import (
	"strconv"
	"strings"
)

// meanWordConfidence parses tesseract TSV output. Column 11 (conf) holds
// per-word confidence 0..100, with -1 for non-word rows.
func meanWordConfidence(tsv string) float64 {
	var sum float64
	var n int
	for i, line := range strings.Split(tsv, "\n") {
		if i == 0 {
			continue // header
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 11 {
			continue
		}
		conf, err := strconv.ParseFloat(strings.TrimSpace(cols[10]), 64)
		if err != nil || conf < 0 {
			continue
		}
		sum += conf
		n++
	}
	if n == 0 {
		return 0
	}
	mean := sum / float64(n) / 100.0
	if mean > 1 {
		mean = 1
	}
	return mean
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
