// Package containment implements the AABB containment classification
// between container elements (rooms/spaces) and candidate elements.
package containment

import "roomscan/internal/model"

// Classify compares a candidate box against a container box.
//
// The candidate's center point is the sole gate: when it falls outside the
// container on any axis, ok is false and no verdict exists for the pair.
// When the center is inside, the verdict is FullyContained if the whole
// candidate box fits inside the container, CenterPointInside otherwise.
//
// All comparisons are inclusive: a value exactly on a container face counts
// as inside. This matters for elements mounted flush against a wall and
// must not be tightened. eps relaxes both tests symmetrically to absorb
// floating-point noise from upstream geometry export; zero means exact
// comparison.
//
// Both boxes must be valid; callers filter invalid boxes out beforehand.
func Classify(container, candidate model.BoundingBox, eps float64) (verdict model.ContainmentType, ok bool) {
	center := candidate.Center()
	if center.X < container.MinX-eps || center.X > container.MaxX+eps ||
		center.Y < container.MinY-eps || center.Y > container.MaxY+eps ||
		center.Z < container.MinZ-eps || center.Z > container.MaxZ+eps {
		return "", false
	}

	if candidate.MinX >= container.MinX-eps && candidate.MaxX <= container.MaxX+eps &&
		candidate.MinY >= container.MinY-eps && candidate.MaxY <= container.MaxY+eps &&
		candidate.MinZ >= container.MinZ-eps && candidate.MaxZ <= container.MaxZ+eps {
		return model.FullyContained, true
	}

	return model.CenterPointInside, true
}
