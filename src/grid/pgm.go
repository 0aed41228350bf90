package grid

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/afero"
)

// occupiedBelow is the gray threshold under which a pixel counts as an
// obstacle: map images draw obstacles dark on a light background.
const occupiedBelow = 128

// LoadPGM reads an occupancy grid from a PGM image (binary P5 or ASCII
// P2, 8-bit). The top image row becomes the top grid row (highest cy), so
// the map reads the same way it is drawn.
func LoadPGM(fs afero.Fs, path string, resolution float64) (*Grid, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open map %q: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)

	magic, err := pgmToken(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read magic of %q: %w", path, err)
	}
	if magic != "P5" && magic != "P2" {
		return nil, fmt.Errorf("unsupported PGM magic %q in %q", magic, path)
	}

	width, err := pgmInt(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read width of %q: %w", path, err)
	}
	height, err := pgmInt(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read height of %q: %w", path, err)
	}
	maxVal, err := pgmInt(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read maxval of %q: %w", path, err)
	}

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("bad PGM size %dx%d in %q", width, height, path)
	}
	if maxVal <= 0 || maxVal > 255 {
		return nil, fmt.Errorf("unsupported PGM maxval %d in %q (8-bit only)", maxVal, path)
	}

	g := New(width, height, resolution)

	for row := 0; row < height; row++ {
		// Image rows run top-down; grid rows run bottom-up.
		cy := height - 1 - row

		for cx := 0; cx < width; cx++ {
			var v int
			if magic == "P5" {
				b, err := r.ReadByte()
				if err != nil {
					return nil, fmt.Errorf("truncated pixel data in %q: %w", path, err)
				}
				v = int(b)
			} else {
				v, err = pgmInt(r)
				if err != nil {
					return nil, fmt.Errorf("truncated pixel data in %q: %w", path, err)
				}
			}

			scaled := v * 255 / maxVal
			g.SetOccupied(cx, cy, scaled < occupiedBelow)
		}
	}

	return g, nil
}

// pgmToken reads the next whitespace-delimited token, skipping '#'
// comment lines.
func pgmToken(r *bufio.Reader) (string, error) {
	var tok []byte

	for {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				return string(tok), nil
			}
			return "", err
		}

		switch {
		case b == '#':
			if _, err := r.ReadString('\n'); err != nil && err != io.EOF {
				return "", err
			}
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, b)
		}
	}
}

func pgmInt(r *bufio.Reader) (int, error) {
	tok, err := pgmToken(r)
	if err != nil {
		return 0, err
	}

	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("bad PGM integer %q: %w", tok, err)
	}

	return v, nil
}
