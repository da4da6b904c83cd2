// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"goq2/math/vec"
)

// Node is either an interior MNode or an MLeaf. Leafs report their content
// mask, interior nodes report -1.
type Node interface {
	Contents() int
	Parent() Node
	SetParent(Node)
	Bounds() (mins, maxs vec.Vec3)
	// VisFrame is owned by the renderer's leaf marking.
	VisFrame() int
	SetVisFrame(int)
}

type NodeBase struct {
	contents int
	visFrame int
	parent   Node
	Mins     vec.Vec3
	Maxs     vec.Vec3
}

func (n *NodeBase) Contents() int                { return n.contents }
func (n *NodeBase) Parent() Node                 { return n.parent }
func (n *NodeBase) SetParent(p Node)             { n.parent = p }
func (n *NodeBase) Bounds() (vec.Vec3, vec.Vec3) { return n.Mins, n.Maxs }
func (n *NodeBase) VisFrame() int                { return n.visFrame }
func (n *NodeBase) SetVisFrame(f int)            { n.visFrame = f }

type MNode struct {
	NodeBase
	Plane    *Plane
	Children [2]Node
	Surfaces []*Surface
}

// NewNode builds an interior node; interior nodes have contents -1.
func NewNode(plane *Plane, mins, maxs vec.Vec3, surfaces []*Surface) *MNode {
	return &MNode{
		NodeBase: NodeBase{contents: -1, Mins: mins, Maxs: maxs},
		Plane:    plane,
		Surfaces: surfaces,
	}
}

type MLeaf struct {
	NodeBase
	Cluster      int
	Area         int
	MarkSurfaces []*Surface
}

func NewLeaf(contents int, cluster, area int, mins, maxs vec.Vec3, surfaces []*Surface) *MLeaf {
	return &MLeaf{
		NodeBase:     NodeBase{contents: contents, Mins: mins, Maxs: maxs},
		Cluster:      cluster,
		Area:         area,
		MarkSurfaces: surfaces,
	}
}

// TexInfo carries the texture name and the compiler surface flags.
type TexInfo struct {
	Name  string
	Flags uint32
}

// Poly is one convex polygon of a surface. Verts are world-space,
// TexCoords matching by index.
type Poly struct {
	Verts     []vec.Vec3
	TexCoords [][2]float32
}

type Surface struct {
	Plane    *Plane
	Flags    uint32 // SURF_PLANEBACK etc.
	TexInfo  *TexInfo
	Polys    []Poly
	VisFrame int
	// DLightFrame/DLightBits mark surfaces touched by dynamic lights.
	DLightFrame int
	DLightBits  uint32
}

// Translucent reports whether the compiler flagged this surface as see-through.
func (s *Surface) Translucent() bool {
	return s.TexInfo != nil && s.TexInfo.Flags&(SURF_TRANS33|SURF_TRANS66) != 0
}

type Model struct {
	name        string
	Node        Node
	Leafs       []*MLeaf
	NumClusters int
	// compressed per-cluster vis rows
	visibility map[int][]byte
	Mins       vec.Vec3
	Maxs       vec.Vec3
}

func NewModel(name string, root Node, leafs []*MLeaf, numClusters int) *Model {
	m := &Model{
		name:        name,
		Node:        root,
		Leafs:       leafs,
		NumClusters: numClusters,
		visibility:  make(map[int][]byte),
	}
	if root != nil {
		setParents(root, nil)
	}
	return m
}

func setParents(n Node, parent Node) {
	n.SetParent(parent)
	if mn, ok := n.(*MNode); ok {
		setParents(mn.Children[0], n)
		setParents(mn.Children[1], n)
	}
}

func (m *Model) Name() string { return m.name }

// SetClusterVis stores the compressed vis row for a cluster.
func (m *Model) SetClusterVis(cluster int, compressed []byte) {
	m.visibility[cluster] = compressed
}

func (m *Model) PointInLeaf(p vec.Vec3) *MLeaf {
	if m == nil || m.Node == nil {
		return nil
	}
	node := m.Node
	for {
		if node.Contents() >= 0 {
			return node.(*MLeaf)
		}
		n := node.(*MNode)
		d := vec.Dot(p, n.Plane.Normal) - n.Plane.Dist
		if d > 0 {
			node = n.Children[0]
		} else {
			node = n.Children[1]
		}
	}
}

var (
	NoVis           []byte
	decompressedVis []byte
)

func init() {
	NoVis = make([]byte, MaxMapLeafs/8)
	for i := range NoVis {
		NoVis[i] = 0xff
	}
	decompressedVis = make([]byte, MaxMapLeafs/8)
}

// DecompressVis expands the run-length compressed vis row. Zero bytes are
// followed by a repeat count.
func (m *Model) DecompressVis(in []byte) []byte {
	row := (m.NumClusters + 7) / 8

	if len(in) == 0 {
		// no vis info, so make all visible
		for i := 0; i < row; i++ {
			decompressedVis[i] = 0xff
		}
		return decompressedVis[:row]
	}

	j := 0
	for i := 0; i < len(in) && j < row; i++ {
		if in[i] != 0 {
			decompressedVis[j] = in[i]
			j++
		} else {
			i++
			if i >= len(in) {
				break
			}
			for c := in[i]; c > 0 && j < row; c-- {
				decompressedVis[j] = 0
				j++
			}
		}
	}
	return decompressedVis[:row]
}

// ClusterPVS returns the decompressed visibility row for a cluster. Cluster
// -1 (outside the map) sees everything.
func (m *Model) ClusterPVS(cluster int) []byte {
	if cluster == -1 || m.NumClusters == 0 {
		return NoVis
	}
	return m.DecompressVis(m.visibility[cluster])
}
