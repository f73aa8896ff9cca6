package console

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
)

// progressThrottle limits redraws of the progress line.
const progressThrottle = 65 * time.Millisecond

// Progress is an io.Writer counting downloaded bytes on a single updating line.
type Progress struct {
	bar     *progressbar.ProgressBar
	console *Console
	known   bool
}

// NewProgress starts a progress line for a download of total bytes.
// A non-positive total means the size is unknown and a byte counter is shown instead of a percentage.
func (c *Console) NewProgress(filename string, total int64) *Progress {
	known := total > 0
	if !known {
		total = -1
	}

	bar := progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription(fmt.Sprintf("Downloading '%s'", filename)),
		progressbar.OptionShowBytes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(progressThrottle),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetVisibility(c.interactive),
	)

	return &Progress{
		bar:     bar,
		console: c,
		known:   known,
	}
}

// Write advances the progress line. Rendering problems never fail the download.
func (p *Progress) Write(b []byte) (int, error) {
	_ = p.bar.Add(len(b))

	return len(b), nil
}

// Done ends the progress line.
func (p *Progress) Done() {
	if p.known {
		_ = p.bar.Finish()
	}

	if p.console.interactive {
		_, _ = fmt.Fprintln(p.console.out)
	}
}
