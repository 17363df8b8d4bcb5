package model

import "math"

// Point is a point in model coordinates
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// BoundingBox is a 3D axis-aligned bounding box in model coordinates.
// The zero value (all six bounds zero) means "no box" and is reported
// as invalid, the same as a box lacking geometry data.
type BoundingBox struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MinZ float64 `json:"min_z"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
	MaxZ float64 `json:"max_z"`
}

// NewBoundingBox creates a box from two corner points, swapping bounds
// per axis when they arrive in the wrong order
func NewBoundingBox(minX, minY, minZ, maxX, maxY, maxZ float64) BoundingBox {
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	if minZ > maxZ {
		minZ, maxZ = maxZ, minZ
	}
	return BoundingBox{
		MinX: minX, MinY: minY, MinZ: minZ,
		MaxX: maxX, MaxY: maxY, MaxZ: maxZ,
	}
}

// IsValid reports whether the box carries usable geometry.
// An all-zero box is indistinguishable from a missing one and counts as
// invalid, as does any box with a degenerate (zero or negative) extent.
func (b BoundingBox) IsValid() bool {
	if b.MinX == 0 && b.MinY == 0 && b.MinZ == 0 &&
		b.MaxX == 0 && b.MaxY == 0 && b.MaxZ == 0 {
		return false
	}
	return b.MaxX > b.MinX && b.MaxY > b.MinY && b.MaxZ > b.MinZ
}

// Center returns the componentwise midpoint of the box.
// It is defined even for invalid boxes; callers check IsValid first.
func (b BoundingBox) Center() Point {
	return Point{
		X: (b.MinX + b.MaxX) / 2,
		Y: (b.MinY + b.MaxY) / 2,
		Z: (b.MinZ + b.MaxZ) / 2,
	}
}

// Volume returns the volume of the box, zero for degenerate boxes
func (b BoundingBox) Volume() float64 {
	return math.Abs((b.MaxX - b.MinX) * (b.MaxY - b.MinY) * (b.MaxZ - b.MinZ))
}
