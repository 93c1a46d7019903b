package tui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/vvka-141/csvload/pkg/csvload"
)

const defaultBarWidth = 30

// ProgressObserver draws one progress bar per file, redrawn in place after
// every committed batch. Finished files leave a summary line behind.
//
// With several workers the bars of concurrent files share the current line;
// summary lines stay intact.
type ProgressObserver struct {
	mu    sync.Mutex
	out   io.Writer
	bar   progress.Model
	width int
	color bool
	live  bool // a bar is drawn on the current line
}

var _ csvload.Observer = (*ProgressObserver)(nil)

// ProgressOption configures a ProgressObserver.
type ProgressOption func(*ProgressObserver)

// WithBarWidth sets the bar width in cells.
func WithBarWidth(width int) ProgressOption {
	return func(p *ProgressObserver) { p.width = width }
}

// WithColor toggles colored output.
func WithColor(color bool) ProgressOption {
	return func(p *ProgressObserver) { p.color = color }
}

// NewProgressObserver creates an observer writing to out.
func NewProgressObserver(out io.Writer, opts ...ProgressOption) *ProgressObserver {
	if out == nil {
		panic("out cannot be nil")
	}
	p := &ProgressObserver{out: out, width: defaultBarWidth, color: true}
	for _, opt := range opts {
		opt(p)
	}

	fill := progress.WithDefaultGradient()
	if !p.color {
		fill = progress.WithSolidFill(string(ColorSecondary))
	}
	p.bar = progress.New(fill, progress.WithoutPercentage(), progress.WithWidth(p.width))
	return p
}

func (p *ProgressObserver) FileStarted(file csvload.SourceFile, rows int) {
	p.draw(file, 0, rows)
}

func (p *ProgressObserver) TableProvisioned(csvload.SourceFile, []csvload.ColumnDescriptor) {}

func (p *ProgressObserver) BatchCommitted(file csvload.SourceFile, _ int, rowsCommitted, rowsTotal int) {
	p.draw(file, rowsCommitted, rowsTotal)
}

func (p *ProgressObserver) FileFinished(outcome csvload.FileOutcome) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.clearLine()
	line := fmt.Sprintf("%s %s -> %s: %d/%d rows",
		RenderStatus(outcome.Status, p.color), outcome.File.Name, outcome.Table,
		outcome.RowsCommitted, outcome.RowsAttempted)
	if outcome.Err != nil {
		line += fmt.Sprintf(" (%v)", outcome.Err)
	}
	fmt.Fprintln(p.out, line)
}

func (p *ProgressObserver) draw(file csvload.SourceFile, done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.clearLine()
	fmt.Fprintf(p.out, "%s %s %d/%d", file.Name, p.bar.ViewAs(Fraction(done, total)), done, total)
	p.live = true
}

func (p *ProgressObserver) clearLine() {
	if p.live {
		fmt.Fprint(p.out, "\r\033[K")
		p.live = false
	}
}

// Fraction returns done/total clamped to [0, 1]. An empty file counts as complete.
func Fraction(done, total int) float64 {
	if total <= 0 {
		return 1
	}
	f := float64(done) / float64(total)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
