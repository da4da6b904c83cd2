// SPDX-License-Identifier: GPL-2.0-or-later

package refgl

import (
	"goq2/math/vec"
)

// RefDef flags.
const (
	RdfUnderwater   = 1 << 0
	RdfNoWorldModel = 1 << 1 // menu/UI background render, no BSP
)

// Entity render flags.
const (
	RfMinLight    = 1 << 0
	RfViewerModel = 1 << 1
	RfWeaponModel = 1 << 2
	RfFullBright  = 1 << 3
	RfDepthHack   = 1 << 4
	RfTranslucent = 1 << 5
	RfBeam        = 1 << 7
	RfGlow        = 1 << 10
)

// ParticleType selects texture, billboard size and draw batch.
type ParticleType int

const (
	ParticleDefault ParticleType = iota
	ParticleFire
	ParticleSmoke
	ParticleBubble
	ParticleBlood
	particleTypeCount
)

type Particle struct {
	Origin vec.Vec3
	Color  uint8 // palette index
	Alpha  float32
	Type   ParticleType
}

type DynamicLight struct {
	Origin    vec.Vec3
	Color     vec.Vec3
	Intensity float32
}

type Entity struct {
	Model     Model // nil draws the null-model marker
	Origin    vec.Vec3
	OldOrigin vec.Vec3 // beam endpoint, lerp source
	Angles    vec.Vec3
	Frame     int
	OldFrame  int
	BackLerp  float32
	Skin      uint32 // backend texture id, 0 for model default
	Flags     uint32
	Alpha     float32
}

func (e *Entity) Translucent() bool {
	return e.Flags&RfTranslucent != 0
}

// RefDef is the per-frame scene description. It is read-only to the
// renderer; nothing in it is retained across frames.
type RefDef struct {
	X, Y          int32
	Width, Height int32
	FovX, FovY    float32
	ViewOrg       vec.Vec3
	ViewAngles    vec.Vec3
	Blend         [4]float32
	Time          float32
	RdFlags       uint32
	AreaBits      []byte // nil means all areas visible

	Entities  []Entity
	Particles []Particle
	DLights   []DynamicLight
}

func (rd *RefDef) NoWorldModel() bool {
	return rd.RdFlags&RdfNoWorldModel != 0
}

func (rd *RefDef) Underwater() bool {
	return rd.RdFlags&RdfUnderwater != 0
}
