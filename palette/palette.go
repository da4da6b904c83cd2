// SPDX-License-Identifier: GPL-2.0-or-later
package palette

import (
	"fmt"
)

// Table is the 8-bit palette expanded to RGBA. Entry 255 is transparent.
var Table [256 * 4]uint8

func init() {
	// grayscale ramp until a real palette is loaded
	for i := 0; i < 256; i++ {
		Table[i*4] = uint8(i)
		Table[i*4+1] = uint8(i)
		Table[i*4+2] = uint8(i)
		Table[i*4+3] = 255
	}
	Table[255*4+3] = 0
}

// Load expands 256 RGB triples into the RGBA table.
func Load(rgb []byte) error {
	if 4*len(rgb) != 3*len(Table) {
		return fmt.Errorf("palette has wrong size: %v", len(rgb))
	}
	bi := 0
	pi := 0
	for i := 0; i < 256; i++ {
		Table[pi] = rgb[bi]
		Table[pi+1] = rgb[bi+1]
		Table[pi+2] = rgb[bi+2]
		Table[pi+3] = 255
		pi += 4
		bi += 3
	}
	// index 255 is the transparent color
	Table[255*4+3] = 0
	return nil
}

// Color returns the RGB bytes for a palette index.
func Color(idx uint8) (r, g, b uint8) {
	return Table[int(idx)*4], Table[int(idx)*4+1], Table[int(idx)*4+2]
}
