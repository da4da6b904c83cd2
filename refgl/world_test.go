// SPDX-License-Identifier: GPL-2.0-or-later

package refgl

import (
	"testing"

	"goq2/cvars"
)

func TestMarkLeavesMarksParentChain(t *testing.T) {
	b := newRecordBackend()
	r := NewRenderer(b, 640, 480)
	world, _, _ := testWorld()
	r.SetWorld(world)

	r.viewCluster = 0
	r.viewCluster2 = 0
	r.markLeaves()

	if world.Node.VisFrame() != r.visFrameCount {
		t.Errorf("root node not marked: %d != %d", world.Node.VisFrame(), r.visFrameCount)
	}
	for i, leaf := range world.Leafs {
		if leaf.VisFrame() != r.visFrameCount {
			t.Errorf("leaf %d not marked", i)
		}
	}
}

func TestMarkLeavesEarlyOut(t *testing.T) {
	b := newRecordBackend()
	r := NewRenderer(b, 640, 480)
	world, _, _ := testWorld()
	r.SetWorld(world)

	r.viewCluster = 0
	r.viewCluster2 = 0
	r.markLeaves()
	first := r.visFrameCount

	// same clusters, nothing to do
	r.markLeaves()
	if r.visFrameCount != first {
		t.Errorf("markLeaves re-marked with unchanged clusters")
	}

	r.viewCluster = 1
	r.viewCluster2 = 1
	r.markLeaves()
	if r.visFrameCount == first {
		t.Errorf("markLeaves skipped a cluster change")
	}
}

func TestMarkLeavesLockPvs(t *testing.T) {
	cvars.GlLockPvs.SetValue(1)
	defer cvars.GlLockPvs.SetValue(0)

	b := newRecordBackend()
	r := NewRenderer(b, 640, 480)
	world, _, _ := testWorld()
	r.SetWorld(world)

	r.viewCluster = 0
	r.viewCluster2 = 0
	before := r.visFrameCount
	r.markLeaves()
	if r.visFrameCount != before {
		t.Errorf("gl_lockpvs did not freeze leaf marking")
	}
}

func TestWorldWalkSplitsOpaqueAndAlpha(t *testing.T) {
	b := newRecordBackend()
	r := NewRenderer(b, 640, 480)
	world, water, _ := testWorld()
	r.SetWorld(world)

	rd := downRefDef()
	v := &viewState{rd: rd}
	r.setupFrame(v)
	v.setFrustum()
	r.markLeaves()

	r.recursiveWorldNode(v, world.Node)

	if r.counters.brushPolys != 1 {
		t.Errorf("opaque polys drawn = %d, want 1", r.counters.brushPolys)
	}
	if len(r.alphaChain) != 1 {
		t.Fatalf("alpha chain length = %d, want 1", len(r.alphaChain))
	}
	if r.alphaChain[0] != water {
		t.Errorf("wrong surface on the alpha chain")
	}
	r.alphaChain = r.alphaChain[:0]
}

func TestWorldWalkBackSideDrawsNothing(t *testing.T) {
	b := newRecordBackend()
	r := NewRenderer(b, 640, 480)
	world, _, _ := testWorld()
	r.SetWorld(world)

	rd := downRefDef()
	rd.ViewOrg[2] = -50 // inside the water, below the surfaces
	rd.ViewAngles[0] = -90
	v := &viewState{rd: rd}
	r.setupFrame(v)
	v.setFrustum()
	r.markLeaves()

	r.recursiveWorldNode(v, world.Node)

	if r.counters.brushPolys != 0 {
		t.Errorf("back-facing surfaces drawn: %d", r.counters.brushPolys)
	}
	if len(r.alphaChain) != 0 {
		t.Errorf("back-facing surfaces deferred: %d", len(r.alphaChain))
	}
}

func TestAreaBitsPruneLeaf(t *testing.T) {
	b := newRecordBackend()
	r := NewRenderer(b, 640, 480)
	world, _, _ := testWorld()
	r.SetWorld(world)

	rd := downRefDef()
	rd.AreaBits = make([]byte, 32) // area 0 bit clear, everything hidden
	v := &viewState{rd: rd}
	r.setupFrame(v)
	v.setFrustum()
	r.markLeaves()

	// fresh surfaces, nothing marked this frame
	r.frameCount++
	r.recursiveWorldNode(v, world.Node)

	if r.counters.brushPolys != 0 || len(r.alphaChain) != 0 {
		t.Errorf("surfaces drawn in a closed area: %d polys, %d alpha",
			r.counters.brushPolys, len(r.alphaChain))
	}
}
