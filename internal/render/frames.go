package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"ising-mc/internal/core"
)

// Image converts cells into an RGBA image, each cell drawn as a scale×scale block.
func Image(cells []uint8, size core.Size, scale int, p SpinPalette) (*image.RGBA, error) {
	if len(cells) != size.W*size.H {
		return nil, fmt.Errorf("render: %d cells for a %dx%d grid", len(cells), size.W, size.H)
	}
	if scale <= 0 {
		scale = 1
	}
	base := image.NewRGBA(image.Rect(0, 0, size.W, size.H))
	fillSpinRGBA(base.Pix, cells, p)
	if scale == 1 {
		return base, nil
	}
	img := image.NewRGBA(image.Rect(0, 0, size.W*scale, size.H*scale))
	for y := 0; y < size.H*scale; y++ {
		src := base.Pix[(y/scale)*base.Stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < size.W*scale; x++ {
			copy(dst[x*4:x*4+4], src[(x/scale)*4:(x/scale)*4+4])
		}
	}
	return img, nil
}

// EncodePNG writes cells to w as a PNG image.
func EncodePNG(w io.Writer, cells []uint8, size core.Size, scale int, p SpinPalette) error {
	img, err := Image(cells, size, scale, p)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// FrameRecorder captures numbered PNG frames into a directory.
type FrameRecorder struct {
	Dir     string
	Every   int
	Scale   int
	Palette SpinPalette

	written int
}

// NewFrameRecorder prepares dir and returns a recorder capturing every n steps.
func NewFrameRecorder(dir string, every, scale int) (*FrameRecorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create frame dir: %w", err)
	}
	if every <= 0 {
		every = 1
	}
	return &FrameRecorder{Dir: dir, Every: every, Scale: scale, Palette: DefaultPalette()}, nil
}

// Due reports whether step should be captured.
func (r *FrameRecorder) Due(step int) bool {
	return r != nil && step%r.Every == 0
}

// Capture writes frame_<step>.png.
func (r *FrameRecorder) Capture(step int, cells []uint8, size core.Size) error {
	path := filepath.Join(r.Dir, fmt.Sprintf("frame_%06d.png", step))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame: %w", err)
	}
	if err := EncodePNG(f, cells, size, r.Scale, r.Palette); err != nil {
		f.Close()
		return fmt.Errorf("encode frame %d: %w", step, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	r.written++
	return nil
}

// Written reports how many frames have been captured.
func (r *FrameRecorder) Written() int { return r.written }
