// SPDX-License-Identifier: GPL-2.0-or-later

package cvars

import (
	"goq2/cvar"
)

var (
	BackgroundVolume    *cvar.Cvar
	ConsoleNotifyTime   *cvar.Cvar
	Developer           *cvar.Cvar
	GlClear             *cvar.Cvar
	GlCull              *cvar.Cvar
	GlDynamic           *cvar.Cvar
	GlFinish            *cvar.Cvar
	GlFlashBlend        *cvar.Cvar
	GlLockPvs           *cvar.Cvar
	GlModulate          *cvar.Cvar
	GlParticleAttA      *cvar.Cvar
	GlParticleAttB      *cvar.Cvar
	GlParticleAttC      *cvar.Cvar
	GlParticleMaxSize   *cvar.Cvar
	GlParticleMinSize   *cvar.Cvar
	GlParticleSize      *cvar.Cvar
	GlPicMip            *cvar.Cvar
	GlPolyBlend         *cvar.Cvar
	GlReflAlpha         *cvar.Cvar
	GlReflDebug         *cvar.Cvar
	GlRoundDown         *cvar.Cvar
	GlShadows           *cvar.Cvar
	GlShowTris          *cvar.Cvar
	GlTextureAnisotropy *cvar.Cvar
	GlTextureMode       *cvar.Cvar
	GlZTrick            *cvar.Cvar
	Intensity           *cvar.Cvar
	RDrawEntities       *cvar.Cvar
	RDrawWorld          *cvar.Cvar
	RFullBright         *cvar.Cvar
	RLerpModels         *cvar.Cvar
	RLightLevel         *cvar.Cvar
	RNoCull             *cvar.Cvar
	RNoRefresh          *cvar.Cvar
	RNoVis              *cvar.Cvar
	RSpeeds             *cvar.Cvar
	SoundVolume         *cvar.Cvar
	VideoFullscreen     *cvar.Cvar
	VideoGamma          *cvar.Cvar
	VideoHeight         *cvar.Cvar
	VideoWidth          *cvar.Cvar
)

func init() {
	BackgroundVolume = cvar.MustRegister("bgmvolume", "1", cvar.ARCHIVE)
	ConsoleNotifyTime = cvar.MustRegister("con_notifytime", "3", cvar.NONE)
	Developer = cvar.MustRegister("developer", "0", cvar.NONE)
	GlClear = cvar.MustRegister("gl_clear", "0", cvar.NONE)
	GlCull = cvar.MustRegister("gl_cull", "1", cvar.NONE)
	GlDynamic = cvar.MustRegister("gl_dynamic", "1", cvar.NONE)
	GlFinish = cvar.MustRegister("gl_finish", "0", cvar.ARCHIVE)
	GlFlashBlend = cvar.MustRegister("gl_flashblend", "0", cvar.NONE)
	GlLockPvs = cvar.MustRegister("gl_lockpvs", "0", cvar.NONE)
	GlModulate = cvar.MustRegister("gl_modulate", "1", cvar.ARCHIVE)
	GlParticleAttA = cvar.MustRegister("gl_particle_att_a", "0.01", cvar.ARCHIVE)
	GlParticleAttB = cvar.MustRegister("gl_particle_att_b", "0.0", cvar.ARCHIVE)
	GlParticleAttC = cvar.MustRegister("gl_particle_att_c", "0.01", cvar.ARCHIVE)
	GlParticleMaxSize = cvar.MustRegister("gl_particle_max_size", "40", cvar.ARCHIVE)
	GlParticleMinSize = cvar.MustRegister("gl_particle_min_size", "2", cvar.ARCHIVE)
	GlParticleSize = cvar.MustRegister("gl_particle_size", "40", cvar.ARCHIVE)
	GlPicMip = cvar.MustRegister("gl_picmip", "0", cvar.NONE)
	GlPolyBlend = cvar.MustRegister("gl_polyblend", "1", cvar.NONE)
	GlReflAlpha = cvar.MustRegister("gl_refl_alpha", "0.5", cvar.NONE)
	GlReflDebug = cvar.MustRegister("gl_refl_debug", "0", cvar.NONE)
	GlRoundDown = cvar.MustRegister("gl_round_down", "1", cvar.NONE)
	GlShadows = cvar.MustRegister("gl_shadows", "0", cvar.ARCHIVE)
	GlShowTris = cvar.MustRegister("gl_showtris", "0", cvar.NONE)
	GlTextureAnisotropy = cvar.MustRegister("gl_texture_anisotropy", "1", cvar.ARCHIVE)
	GlTextureMode = cvar.MustRegister("gl_texturemode", "GL_LINEAR_MIPMAP_NEAREST", cvar.ARCHIVE)
	GlZTrick = cvar.MustRegister("gl_ztrick", "0", cvar.NONE)
	Intensity = cvar.MustRegister("intensity", "2", cvar.NONE)
	RDrawEntities = cvar.MustRegister("r_drawentities", "1", cvar.NONE)
	RDrawWorld = cvar.MustRegister("r_drawworld", "1", cvar.NONE)
	RFullBright = cvar.MustRegister("r_fullbright", "0", cvar.NONE)
	RLerpModels = cvar.MustRegister("r_lerpmodels", "1", cvar.NONE)
	RLightLevel = cvar.MustRegister("r_lightlevel", "0", cvar.NONE)
	RNoCull = cvar.MustRegister("r_nocull", "0", cvar.NONE)
	RNoRefresh = cvar.MustRegister("r_norefresh", "0", cvar.NONE)
	RNoVis = cvar.MustRegister("r_novis", "0", cvar.NONE)
	RSpeeds = cvar.MustRegister("r_speeds", "0", cvar.NONE)
	SoundVolume = cvar.MustRegister("s_volume", "0.7", cvar.ARCHIVE)
	VideoFullscreen = cvar.MustRegister("vid_fullscreen", "0", cvar.ARCHIVE)
	VideoGamma = cvar.MustRegister("vid_gamma", "1", cvar.ARCHIVE)
	VideoHeight = cvar.MustRegister("vid_height", "480", cvar.ARCHIVE)
	VideoWidth = cvar.MustRegister("vid_width", "640", cvar.ARCHIVE)
}
