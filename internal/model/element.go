package model

import "github.com/paulmach/orb"

// Property is a single raw name/value pair attached to an element.
// Names are free-form and the same logical field may appear under
// several spellings across exporters.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Geometry carries the optional structured geometry some exporters attach
// to an element. Every field may be absent; it is only consulted when the
// property list yields no usable bounding box.
type Geometry struct {
	// MeshVertices are raw mesh vertex positions
	MeshVertices []Point `json:"vertices,omitempty"`

	// Boundary is a closed or open 2D footprint ring (rooms/spaces),
	// combined with BaseElevation and Height to form a box
	Boundary      []orb.Point `json:"boundary,omitempty"`
	BaseElevation *float64    `json:"base_elevation,omitempty"`
	Height        *float64    `json:"height,omitempty"`

	// Location and Size describe a placed instance as center plus extents
	Location *Point `json:"location,omitempty"`
	Size     *Point `json:"size,omitempty"`
}

// Element is a read-only snapshot of one model element as delivered by
// the upstream elements API
type Element struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Category   string     `json:"category"`
	Properties []Property `json:"properties"`
	Geometry   *Geometry  `json:"geometry,omitempty"`
}
