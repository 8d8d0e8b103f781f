package render

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"ising-mc/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillSpinRGBA(t *testing.T) {
	buf := make([]byte, 8)
	p := SpinPalette{Up: color.RGBA{R: 255, A: 255}, Down: color.RGBA{B: 255, A: 255}}
	fillSpinRGBA(buf, []uint8{1, 0}, p)
	assert.Equal(t, []byte{255, 0, 0, 255, 0, 0, 255, 255}, buf)
}

func TestEncodePNGScalesCells(t *testing.T) {
	cells := []uint8{1, 0, 0, 1, 1, 1}
	size := core.Size{W: 3, H: 2}
	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, cells, size, 4, DefaultPalette()))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 12, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())

	up := color.RGBAModel.Convert(color.White)
	down := color.RGBAModel.Convert(DefaultPalette().Down)
	assert.Equal(t, up, color.RGBAModel.Convert(img.At(3, 3)))
	assert.Equal(t, down, color.RGBAModel.Convert(img.At(4, 0)))
	assert.Equal(t, up, color.RGBAModel.Convert(img.At(11, 7)))
}

func TestImageRejectsMismatchedCells(t *testing.T) {
	_, err := Image([]uint8{1, 0}, core.Size{W: 3, H: 3}, 1, DefaultPalette())
	assert.Error(t, err)
}

func TestFrameRecorder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	rec, err := NewFrameRecorder(dir, 5, 1)
	require.NoError(t, err)

	size := core.Size{W: 2, H: 2}
	cells := []uint8{1, 0, 0, 1}
	for step := 1; step <= 12; step++ {
		if rec.Due(step) {
			require.NoError(t, rec.Capture(step, cells, size))
		}
	}
	assert.Equal(t, 2, rec.Written())
	_, err = os.Stat(filepath.Join(dir, "frame_000005.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "frame_000010.png"))
	assert.NoError(t, err)

	var nilRec *FrameRecorder
	assert.False(t, nilRec.Due(5))
}
