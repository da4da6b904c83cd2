// SPDX-License-Identifier: GPL-2.0-or-later

package refgl

import (
	"goq2/bsp"
	"goq2/math/vec"
)

// Model is the closed set of drawable model variants. The draw method is
// unexported so no variant can exist outside this package; a bad model
// type is unrepresentable.
type Model interface {
	Name() string
	draw(r *Renderer, v *viewState, e *Entity)
}

// BrushModel is an inline world submodel (doors, platforms, func_ brushes).
type BrushModel struct {
	name     string
	Surfaces []*bsp.Surface
	Mins     vec.Vec3
	Maxs     vec.Vec3
}

func NewBrushModel(name string, surfaces []*bsp.Surface, mins, maxs vec.Vec3) *BrushModel {
	return &BrushModel{name: name, Surfaces: surfaces, Mins: mins, Maxs: maxs}
}

func (m *BrushModel) Name() string { return m.name }

func (m *BrushModel) draw(r *Renderer, v *viewState, e *Entity) {
	r.drawBrushModel(m, v, e)
}

// AliasFrame is one animation frame of vertex positions.
type AliasFrame struct {
	Verts []vec.Vec3
	Mins  vec.Vec3
	Maxs  vec.Vec3
}

// AliasModel is a vertex-animated triangle mesh (md2-style).
type AliasModel struct {
	name   string
	Frames []AliasFrame
	Tris   [][3]int
	// TexCoords matches Verts by index.
	TexCoords [][2]float32
	SkinID    uint32
}

func NewAliasModel(name string, frames []AliasFrame, tris [][3]int, texCoords [][2]float32, skin uint32) *AliasModel {
	return &AliasModel{name: name, Frames: frames, Tris: tris, TexCoords: texCoords, SkinID: skin}
}

func (m *AliasModel) Name() string { return m.name }

func (m *AliasModel) draw(r *Renderer, v *viewState, e *Entity) {
	r.drawAliasModel(m, v, e)
}

// SpriteModel is a camera-facing textured quad.
type SpriteModel struct {
	name          string
	Width, Height float32
	OriginX       float32
	OriginY       float32
	TexID         uint32
}

func NewSpriteModel(name string, w, h, ox, oy float32, tex uint32) *SpriteModel {
	return &SpriteModel{name: name, Width: w, Height: h, OriginX: ox, OriginY: oy, TexID: tex}
}

func (m *SpriteModel) Name() string { return m.name }

func (m *SpriteModel) draw(r *Renderer, v *viewState, e *Entity) {
	r.drawSpriteModel(m, v, e)
}
