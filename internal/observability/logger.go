package observability

import (
	"io"
	"log"
)

// NewLogger returns a logger that writes to w when verbose is set and
// discards everything otherwise.
func NewLogger(verbose bool, w io.Writer) *log.Logger {
	if !verbose || w == nil {
		return log.New(io.Discard, "", 0)
	}
	return log.New(w, "canva: ", log.Ltime)
}
