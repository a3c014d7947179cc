package trex

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned box in world space.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

func NewAABB(center, halfExtents mgl32.Vec3) AABB {
	return AABB{
		Min: center.Sub(halfExtents),
		Max: center.Add(halfExtents),
	}
}

func (a AABB) Center() mgl32.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

func (a AABB) Size() mgl32.Vec3 {
	return a.Max.Sub(a.Min)
}

// Overlaps reports whether the boxes intersect on all three axes. Touching
// faces count as overlapping.
func (a AABB) Overlaps(other AABB) bool {
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}

// SpatialHashGrid buckets box ids by the cells they touch.
type SpatialHashGrid struct {
	cellSize float32
	cells    map[uint64][]int
	// Boxes spanning more cells than this go to the oversized list instead.
	maxCells int
	oversize []int
}

func NewSpatialHashGrid(cellSize float32) *SpatialHashGrid {
	return &SpatialHashGrid{
		cellSize: cellSize,
		cells:    make(map[uint64][]int),
		maxCells: 512,
	}
}

func (grid *SpatialHashGrid) Clear() {
	clear(grid.cells)
	grid.oversize = grid.oversize[:0]
}

func (grid *SpatialHashGrid) Insert(id int, aabb AABB) {
	lo, hi, ok := grid.cellRange(aabb)
	if !ok {
		grid.oversize = append(grid.oversize, id)
		return
	}

	for x := lo[0]; x <= hi[0]; x++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for z := lo[2]; z <= hi[2]; z++ {
				key := grid.hashKey(x, y, z)
				grid.cells[key] = append(grid.cells[key], id)
			}
		}
	}
}

// QueryAABB returns every id sharing a cell with aabb, plus all oversized
// boxes. Results are broad-phase candidates, not confirmed overlaps.
func (grid *SpatialHashGrid) QueryAABB(aabb AABB) []int {
	lo, hi, ok := grid.cellRange(aabb)

	unique := make(map[int]struct{})
	var results []int
	add := func(id int) {
		if _, ok := unique[id]; !ok {
			unique[id] = struct{}{}
			results = append(results, id)
		}
	}

	for _, id := range grid.oversize {
		add(id)
	}

	if !ok {
		// A huge query would walk too many cells; hand back everything.
		for _, ids := range grid.cells {
			for _, id := range ids {
				add(id)
			}
		}
		return results
	}

	for x := lo[0]; x <= hi[0]; x++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for z := lo[2]; z <= hi[2]; z++ {
				for _, id := range grid.cells[grid.hashKey(x, y, z)] {
					add(id)
				}
			}
		}
	}
	return results
}

// maxCellCoord bounds cell coordinates so they convert to int exactly.
const maxCellCoord = 1 << 40

// cellRange returns the inclusive cell bounds of aabb. ok is false when the
// box covers more than maxCells cells or lies outside the addressable cell
// range; the count is taken in float64 so huge boxes cannot overflow it.
func (grid *SpatialHashGrid) cellRange(aabb AABB) (lo, hi [3]int, ok bool) {
	cells := 1.0
	var minCell, maxCell [3]float64
	for axis := 0; axis < 3; axis++ {
		minCell[axis] = grid.cellCoord(aabb.Min[axis])
		maxCell[axis] = grid.cellCoord(aabb.Max[axis])
		if !(math.Abs(minCell[axis]) <= maxCellCoord && math.Abs(maxCell[axis]) <= maxCellCoord) {
			return lo, hi, false
		}
		span := maxCell[axis] - minCell[axis] + 1
		if !(span >= 1 && span <= float64(grid.maxCells)) {
			return lo, hi, false
		}
		cells *= span
	}
	if cells > float64(grid.maxCells) {
		return lo, hi, false
	}
	for axis := 0; axis < 3; axis++ {
		lo[axis] = int(minCell[axis])
		hi[axis] = int(maxCell[axis])
	}
	return lo, hi, true
}

func (grid *SpatialHashGrid) cellCoord(pos float32) float64 {
	return math.Floor(float64(pos) / float64(grid.cellSize))
}

func (grid *SpatialHashGrid) hashKey(x, y, z int) uint64 {
	// large primes for mixing
	const p1 = 73856093
	const p2 = 19349663
	const p3 = 83492791
	return uint64(x*p1 ^ y*p2 ^ z*p3)
}
