package extract

import (
	"math"

	"github.com/paulmach/orb"

	"roomscan/internal/model"
)

// fromGeometry tries the structured geometry derivations in a fixed order:
// mesh vertex extents, then 2D boundary plus elevation/height, then a
// placed location with size extents. The first derivation that produces a
// valid box wins.
func fromGeometry(g *model.Geometry) (model.BoundingBox, bool) {
	if box, ok := fromMeshVertices(g.MeshVertices); ok {
		return box, true
	}
	if box, ok := fromBoundaryHeight(g); ok {
		return box, true
	}
	if box, ok := fromLocationSize(g); ok {
		return box, true
	}
	return model.BoundingBox{}, false
}

// fromMeshVertices computes the extent of the raw mesh vertices
func fromMeshVertices(verts []model.Point) (model.BoundingBox, bool) {
	if len(verts) == 0 {
		return model.BoundingBox{}, false
	}
	minX, minY, minZ := math.Inf(1), math.Inf(1), math.Inf(1)
	maxX, maxY, maxZ := math.Inf(-1), math.Inf(-1), math.Inf(-1)
	for _, v := range verts {
		minX = math.Min(minX, v.X)
		minY = math.Min(minY, v.Y)
		minZ = math.Min(minZ, v.Z)
		maxX = math.Max(maxX, v.X)
		maxY = math.Max(maxY, v.Y)
		maxZ = math.Max(maxZ, v.Z)
	}
	box := model.NewBoundingBox(minX, minY, minZ, maxX, maxY, maxZ)
	return box, box.IsValid()
}

// fromBoundaryHeight extrudes a 2D footprint ring between base elevation
// and base elevation plus height. Rooms and spaces usually arrive this way.
func fromBoundaryHeight(g *model.Geometry) (model.BoundingBox, bool) {
	if len(g.Boundary) < 3 || g.BaseElevation == nil || g.Height == nil {
		return model.BoundingBox{}, false
	}
	bound := orb.Ring(g.Boundary).Bound()
	minZ := *g.BaseElevation
	maxZ := minZ + *g.Height
	box := model.NewBoundingBox(bound.Min[0], bound.Min[1], minZ, bound.Max[0], bound.Max[1], maxZ)
	return box, box.IsValid()
}

// fromLocationSize centers the size extents on the placement point
func fromLocationSize(g *model.Geometry) (model.BoundingBox, bool) {
	if g.Location == nil || g.Size == nil {
		return model.BoundingBox{}, false
	}
	halfX := math.Abs(g.Size.X) / 2
	halfY := math.Abs(g.Size.Y) / 2
	halfZ := math.Abs(g.Size.Z) / 2
	box := model.NewBoundingBox(
		g.Location.X-halfX, g.Location.Y-halfY, g.Location.Z-halfZ,
		g.Location.X+halfX, g.Location.Y+halfY, g.Location.Z+halfZ,
	)
	return box, box.IsValid()
}
