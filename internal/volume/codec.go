package volume

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// FileExtension is the conventional extension of encoded volumes.
const FileExtension = ".cft3"

// MaxVoxels bounds the voxel count Decode accepts: a 512^3 volume, 512 MiB
// once decoded.
const MaxVoxels = 512 * 512 * 512

// ErrTooLarge is returned by Decode for headers describing more than
// MaxVoxels voxels.
var ErrTooLarge = errors.New("volume too large")

// ErrExists is returned by WriteFile when the destination exists and
// overwriting was not requested.
var ErrExists = errors.New("volume file already exists")

// Encode writes v as text: a "width height depth" header line, then every
// voxel as a decimal integer followed by a space, one row of width voxels per
// line.
func Encode(w io.Writer, v *Volume) error {
	if len(v.Voxels) != v.Len() {
		return fmt.Errorf("volume has %d voxels, header %s needs %d", len(v.Voxels), v.Header, v.Len())
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n", v.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	buf := make([]byte, 0, 11)
	for i, voxel := range v.Voxels {
		buf = strconv.AppendUint(buf[:0], uint64(voxel), 10)
		buf = append(buf, ' ')
		if (i+1)%v.Width == 0 {
			buf = append(buf, '\n')
		}
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("failed to write voxel %d: %w", i, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush volume: %w", err)
	}
	return nil
}

// Decode reads a volume written by Encode. Any whitespace may separate
// values.
func Decode(r io.Reader) (*Volume, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	var dims [3]int
	for i := range dims {
		if !sc.Scan() {
			return nil, fmt.Errorf("truncated header: %w", scanErr(sc))
		}
		n, err := strconv.Atoi(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("invalid header value %q: %w", sc.Text(), err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("invalid header value %d: dimensions must be positive", n)
		}
		dims[i] = n
	}

	h := Header{Width: dims[0], Height: dims[1], Depth: dims[2]}
	if err := checkSize(h); err != nil {
		return nil, err
	}

	v := New(h)
	for i := range v.Voxels {
		if !sc.Scan() {
			return nil, fmt.Errorf("expected %d voxels, got %d: %w", len(v.Voxels), i, scanErr(sc))
		}
		n, err := strconv.ParseUint(sc.Text(), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid voxel %d: %w", i, err)
		}
		v.Voxels[i] = uint32(n)
	}

	if sc.Scan() {
		return nil, fmt.Errorf("unexpected data after %d voxels: %q", len(v.Voxels), sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read volume: %w", err)
	}
	return v, nil
}

// checkSize rejects headers whose voxel count exceeds MaxVoxels. Dimensions
// are multiplied one at a time so the product cannot overflow.
func checkSize(h Header) error {
	n := 1
	for _, d := range [3]int{h.Width, h.Height, h.Depth} {
		if d > MaxVoxels/n {
			return fmt.Errorf("%w: header %s exceeds %d voxels", ErrTooLarge, h, MaxVoxels)
		}
		n *= d
	}
	return nil
}

func scanErr(sc *bufio.Scanner) error {
	if err := sc.Err(); err != nil {
		return err
	}
	return io.ErrUnexpectedEOF
}

// WriteFile encodes v to path, creating parent directories as needed. An
// existing file is only replaced when overwrite is set.
func WriteFile(path string, v *Volume, overwrite bool) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	file, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
		return fmt.Errorf("failed to create volume %s: %w", path, err)
	}

	if err := Encode(file, v); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode volume %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close volume %s: %w", path, err)
	}
	return nil
}

// ReadFile decodes the volume stored at path.
func ReadFile(path string) (*Volume, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open volume %s: %w", path, err)
	}
	defer file.Close()

	v, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode volume %s: %w", path, err)
	}
	return v, nil
}
