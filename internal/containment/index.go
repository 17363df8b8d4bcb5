package containment

import (
	"sort"

	"github.com/dhconnelly/rtreego"

	"roomscan/internal/model"
)

// pointExtent is the tiny side length used to represent a center point as
// an R-tree rectangle, since rtreego rejects zero-sized rects
const pointExtent = 1e-9

// candidateItem wraps one candidate's center point for R-tree indexing,
// keeping its ordinal so query results can be restored to supplied order
type candidateItem struct {
	ord    int
	center model.Point
}

// Bounds implements the rtreego.Spatial interface
func (c *candidateItem) Bounds() rtreego.Rect {
	rect, _ := rtreego.NewRect(
		rtreego.Point{c.center.X, c.center.Y, c.center.Z},
		[]float64{pointExtent, pointExtent, pointExtent},
	)
	return rect
}

// centerIndex is a 3D R-tree over candidate center points. It only prunes
// candidates whose center cannot pass the center-point gate; every
// surviving candidate still goes through Classify unchanged.
type centerIndex struct {
	tree *rtreego.Rtree
}

// newCenterIndex builds the index over the full candidate set
func newCenterIndex(candidates []boxedElement) *centerIndex {
	tree := rtreego.NewTree(3, 25, 50)
	for i, c := range candidates {
		tree.Insert(&candidateItem{ord: i, center: c.box.Center()})
	}
	return &centerIndex{tree: tree}
}

// candidatesWithin returns the ordinals of candidates whose center may lie
// inside the container box relaxed by eps, sorted back into supplied order
func (ci *centerIndex) candidatesWithin(container model.BoundingBox, eps float64) []int {
	rect, err := rtreego.NewRect(
		rtreego.Point{container.MinX - eps, container.MinY - eps, container.MinZ - eps},
		[]float64{
			container.MaxX - container.MinX + 2*eps + pointExtent,
			container.MaxY - container.MinY + 2*eps + pointExtent,
			container.MaxZ - container.MinZ + 2*eps + pointExtent,
		},
	)
	if err != nil {
		return nil
	}

	matches := ci.tree.SearchIntersect(rect)
	ords := make([]int, 0, len(matches))
	for _, item := range matches {
		ords = append(ords, item.(*candidateItem).ord)
	}
	sort.Ints(ords)
	return ords
}
