// SPDX-License-Identifier: GPL-2.0-or-later

package refgl

// Context wraps a Backend and filters out redundant state changes. All
// draw code goes through it; nothing touches the backend directly, so the
// cache can not go stale.
type Context struct {
	b Backend

	boundTexture uint32
	hasTexture   bool
	texEnv       TexEnvMode
	hasTexEnv    bool
	depthMask    bool
	caps         [capCount]capState
}

type capState int

const (
	capUnknown capState = iota
	capOn
	capOff
)

func NewContext(b Backend) *Context {
	return &Context{
		b:         b,
		depthMask: true,
	}
}

// Backend exposes the raw backend for calls with no cacheable state
// (immediate mode emission, matrix loads, clears).
func (c *Context) Backend() Backend {
	return c.b
}

// Bind binds a texture unless it is already bound.
func (c *Context) Bind(id uint32) {
	if c.hasTexture && c.boundTexture == id {
		return
	}
	c.b.BindTexture(id)
	c.boundTexture = id
	c.hasTexture = true
}

// ForgetTexture drops the bind cache, e.g. after a texture was deleted.
func (c *Context) ForgetTexture() {
	c.hasTexture = false
}

func (c *Context) TexEnv(m TexEnvMode) {
	if c.hasTexEnv && c.texEnv == m {
		return
	}
	c.b.TexEnv(m)
	c.texEnv = m
	c.hasTexEnv = true
}

func (c *Context) Enable(cp Cap) {
	if c.caps[cp] == capOn {
		return
	}
	c.b.Enable(cp)
	c.caps[cp] = capOn
}

func (c *Context) Disable(cp Cap) {
	if c.caps[cp] == capOff {
		return
	}
	c.b.Disable(cp)
	c.caps[cp] = capOff
}

func (c *Context) DepthMask(on bool) {
	if c.depthMask == on {
		return
	}
	c.b.DepthMask(on)
	c.depthMask = on
}
