// SPDX-License-Identifier: GPL-2.0-or-later
package texture

type TexPref uint32

const (
	TexPrefMipMap TexPref = 1 << iota
	TexPrefLinear
	TexPrefNearest
	TexPrefAlpha
	TexPrefPersist
	TexPrefNoPicMip
	TexPrefNone TexPref = 0
)

// Type classifies what an image is used for; it decides mipmapping,
// clamping and whether the eviction sweep may free it.
type Type int

const (
	TypeSkin Type = iota
	TypeSprite
	TypeWall
	TypePic
	TypeSky
	TypeParticle
)

type Texture struct {
	// ID is the backend texture name.
	ID     uint32
	Width  int32 // mipmap rounding can make it differ from source width
	Height int32
	flags  TexPref
	name   string
	Typ    Type
	// Sequence is the registration sequence of the last lookup; stale
	// sequences are eligible for eviction.
	Sequence int
	HasAlpha bool
}

func NewTexture(id uint32, w, h int32, flags TexPref, name string, typ Type) *Texture {
	return &Texture{
		ID:     id,
		Width:  w,
		Height: h,
		flags:  flags,
		name:   name,
		Typ:    typ,
	}
}

func (t *Texture) Name() string {
	return t.name
}

func (t *Texture) Texels() int {
	if t.Flags(TexPrefMipMap) {
		return int(t.Width * t.Height * 4 / 3)
	}
	return int(t.Width * t.Height)
}

func (t *Texture) Flags(f TexPref) bool {
	return t.flags&f != 0
}

// Evictable reports whether the sweep may free this texture; pics and
// particle textures stay for the lifetime of the renderer.
func (t *Texture) Evictable() bool {
	if t.Flags(TexPrefPersist) {
		return false
	}
	switch t.Typ {
	case TypePic, TypeParticle:
		return false
	}
	return true
}
