package volume

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Reporter prints the progress of one cubic volume as the share of finished
// depth slices and the voxel throughput, redrawing a single terminal line.
// Its Observe method is a worker.ProgressFunc.
type Reporter struct {
	start  time.Time
	now    func() time.Time
	out    io.Writer
	name   string
	edge   int
	slices int
	failed int
	mu     sync.Mutex
}

// NewReporter returns a Reporter for a volume of the given edge length. A nil
// out suppresses the progress line; Summary still works.
func NewReporter(out io.Writer, name string, edge int) *Reporter {
	return &Reporter{
		out:   out,
		name:  name,
		edge:  edge,
		now:   time.Now,
		start: time.Now(),
	}
}

// Observe records that completed of total slices have finished.
func (r *Reporter) Observe(completed, total, failed int) {
	r.mu.Lock()
	r.slices, r.failed = completed, failed
	line := r.line()
	r.mu.Unlock()

	if r.out != nil {
		fmt.Fprintf(r.out, "\r%s", line)
	}
}

// Finish terminates the progress line.
func (r *Reporter) Finish() {
	if r.out != nil {
		fmt.Fprintln(r.out)
	}
}

// Summary describes the work recorded so far.
func (r *Reporter) Summary() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	elapsed := r.now().Sub(r.start)
	voxels := r.slices * r.edge * r.edge
	return fmt.Sprintf("%s %d^3: %d voxels in %s (%s voxels/s)",
		r.name, r.edge, voxels, elapsed.Round(time.Millisecond), formatRate(voxels, elapsed))
}

func (r *Reporter) line() string {
	var percent float64
	if r.edge > 0 {
		percent = 100 * float64(r.slices) / float64(r.edge)
	}

	line := fmt.Sprintf("%s %d^3 %5.1f %% %s voxels/s",
		r.name, r.edge, percent, formatRate(r.slices*r.edge*r.edge, r.now().Sub(r.start)))
	if r.failed > 0 {
		line += fmt.Sprintf(", %d slices failed", r.failed)
	}
	return line
}

// formatRate renders n per elapsed with a k/M/G suffix.
func formatRate(n int, elapsed time.Duration) string {
	if elapsed <= 0 {
		return "-"
	}
	rate := float64(n) / elapsed.Seconds()
	switch {
	case rate >= 1e9:
		return fmt.Sprintf("%.1fG", rate/1e9)
	case rate >= 1e6:
		return fmt.Sprintf("%.1fM", rate/1e6)
	case rate >= 1e3:
		return fmt.Sprintf("%.1fk", rate/1e3)
	default:
		return fmt.Sprintf("%.0f", rate)
	}
}
