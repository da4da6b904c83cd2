// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

// Quake II content bitmask. Lower bits are visible contents.
const (
	CONTENTS_SOLID  = 1
	CONTENTS_WINDOW = 2
	CONTENTS_AUX    = 4
	CONTENTS_LAVA   = 8
	CONTENTS_SLIME  = 16
	CONTENTS_WATER  = 32
	CONTENTS_MIST   = 64
)

const MASK_WATER = CONTENTS_WATER | CONTENTS_LAVA | CONTENTS_SLIME

// Texinfo surface flags from the map compiler.
const (
	SURF_LIGHT   = 0x1
	SURF_SLICK   = 0x2
	SURF_SKY     = 0x4
	SURF_WARP    = 0x8
	SURF_TRANS33 = 0x10
	SURF_TRANS66 = 0x20
	SURF_FLOWING = 0x40
	SURF_NODRAW  = 0x80
)

// Runtime surface flags.
const (
	SURF_PLANEBACK      = 2
	SURF_DRAWSKY        = 4
	SURF_DRAWTURB       = 0x10
	SURF_DRAWBACKGROUND = 0x40
	SURF_UNDERWATER     = 0x80
)

// Axial plane types; anything >= PlaneAnyX needs the full dot product.
const (
	PlaneX = iota
	PlaneY
	PlaneZ
	PlaneAnyX
	PlaneAnyY
	PlaneAnyZ
)

const MaxMapLeafs = 65536
