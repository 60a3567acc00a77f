package report

import (
	"errors"
	"fmt"
	"os"
)

// Sink receives finished report blocks.
type Sink interface {
	Append(text string) error
}

// FileSink appends reports to a file, creating it on first use. The file is opened per
// append so that external truncation or rotation is picked up.
type FileSink struct {
	Path string
}

// Append writes text at the end of the file.
func (f FileSink) Append(text string) error {
	fh, err := os.OpenFile(f.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", f.Path, err)
	}
	_, werr := fh.WriteString(text)
	if werr != nil {
		werr = fmt.Errorf("appending to %s: %w", f.Path, werr)
	}
	return errors.Join(werr, fh.Close())
}
