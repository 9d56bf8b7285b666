package inspect

import (
	"fmt"
	"io"
	"strings"
)

// printer remembers the first write error so dumps can print freely.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(depth int, format string, args ...any) {
	if p.err != nil {
		return
	}

	_, p.err = fmt.Fprintf(p.w, strings.Repeat("  ", depth)+format+"\n", args...)
}
