package render

import "image/color"

// SpinPalette holds the colours for up (1) and down (0) cells.
type SpinPalette struct {
	Up   color.Color
	Down color.Color
}

// DefaultPalette draws up spins white and down spins dark blue.
func DefaultPalette() SpinPalette {
	return SpinPalette{
		Up:   color.White,
		Down: color.RGBA{R: 20, G: 30, B: 90, A: 255},
	}
}

// fillSpinRGBA converts binary cell data (0/1) into RGBA pixels in buf.
func fillSpinRGBA(buf []byte, cells []uint8, p SpinPalette) {
	rOn, gOn, bOn, aOn := p.Up.RGBA()
	rOff, gOff, bOff, aOff := p.Down.RGBA()
	for i, c := range cells {
		base := i * 4
		if c != 0 {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
}
