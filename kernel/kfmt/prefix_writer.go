package kfmt

import (
	"bytes"
	"io"
)

// PrefixWriter is an io.Writer that wraps another io.Writer and injects a
// prefix at the beginning of each line.
type PrefixWriter struct {
	// A writer where all writes get sent to.
	Sink io.Writer

	// The prefix injected at the beginning of each line.
	Prefix []byte

	midLine bool
}

// Write forwards p to the sink, emitting the prefix before the first byte of
// every line. The prefix is not included in the returned byte count.
func (w *PrefixWriter) Write(p []byte) (int, error) {
	var written int

	for len(p) > 0 {
		if !w.midLine {
			if _, err := w.Sink.Write(w.Prefix); err != nil {
				return written, err
			}
			w.midLine = true
		}

		end := len(p)
		if nl := bytes.IndexByte(p, '\n'); nl >= 0 {
			end = nl + 1
		}

		n, err := w.Sink.Write(p[:end])
		written += n
		if err != nil {
			return written, err
		}

		if p[end-1] == '\n' {
			w.midLine = false
		}
		p = p[end:]
	}

	return written, nil
}
