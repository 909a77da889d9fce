package volume

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/MeKo-Tech/cloudnoise/internal/voxel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock returns a Reporter clock that is always elapsed after start.
func fixedClock(r *Reporter, elapsed time.Duration) {
	r.now = func() time.Time { return r.start.Add(elapsed) }
}

func TestReporter_Line(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, "base", 128)
	fixedClock(r, 2*time.Second)

	r.Observe(32, 128, 0)

	// 32 slices of 128*128 voxels in 2s.
	assert.Equal(t, "\rbase 128^3  25.0 % 262.1k voxels/s", buf.String())
}

func TestReporter_Failures(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, "erosion", 32)
	fixedClock(r, time.Second)

	r.Observe(32, 32, 2)

	out := buf.String()
	assert.Contains(t, out, "erosion 32^3 100.0 %")
	assert.True(t, strings.HasSuffix(out, ", 2 slices failed"), out)
}

func TestReporter_Summary(t *testing.T) {
	r := NewReporter(nil, "erosion", 32)
	fixedClock(r, 1500*time.Millisecond)

	r.Observe(32, 32, 0)

	assert.Equal(t, "erosion 32^3: 32768 voxels in 1.5s (21.8k voxels/s)", r.Summary())
}

func TestReporter_NilWriterIsSilent(t *testing.T) {
	r := NewReporter(nil, "base", 4)
	r.Observe(1, 4, 0)
	r.Finish()
}

func TestReporter_Finish(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, "base", 2)
	r.Finish()
	assert.Equal(t, "\n", buf.String())
}

func TestReporter_TracksGenerate(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, "erosion", 3)

	_, err := Generate(context.Background(), voxel.Sampler{Mode: voxel.Erosion}, 3, Options{
		Workers:    2,
		OnProgress: r.Observe,
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimPrefix(buf.String(), "\r"), "\r")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], " 33.3 %")
	assert.Contains(t, lines[2], "100.0 %")
	assert.Contains(t, r.Summary(), "erosion 3^3: 27 voxels")
}

func TestFormatRate(t *testing.T) {
	tests := []struct {
		want    string
		n       int
		elapsed time.Duration
	}{
		{want: "-", n: 10, elapsed: 0},
		{want: "500", n: 500, elapsed: time.Second},
		{want: "1.5k", n: 3000, elapsed: 2 * time.Second},
		{want: "2.1M", n: 2097152, elapsed: time.Second},
		{want: "4.0G", n: 4000000000, elapsed: time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatRate(tt.n, tt.elapsed))
		})
	}
}
