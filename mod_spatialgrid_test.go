package trex

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestSpatialHashGrid_InsertionAndQuery(t *testing.T) {
	grid := NewSpatialHashGrid(2.0)

	box1 := AABB{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 1, 1}}
	box2 := AABB{Min: mgl32.Vec3{3, 3, 3}, Max: mgl32.Vec3{4, 4, 4}}

	grid.Insert(1, box1)
	grid.Insert(2, box2)

	assert.Equal(t, []int{1}, grid.QueryAABB(box1))
	assert.Equal(t, []int{2}, grid.QueryAABB(box2))

	// Cell size 2: box1 sits in cell 0, box2 spans cells 1 and 2, the query
	// spans cells 0 and 1.
	middle := AABB{Min: mgl32.Vec3{1, 1, 1}, Max: mgl32.Vec3{3, 3, 3}}
	assert.ElementsMatch(t, []int{1, 2}, grid.QueryAABB(middle))
}

func TestSpatialHashGrid_NegativeCoordinates(t *testing.T) {
	grid := NewSpatialHashGrid(4.0)
	grid.Insert(7, NewAABB(mgl32.Vec3{-10, -10, -10}, mgl32.Vec3{1, 1, 1}))

	assert.Equal(t, []int{7}, grid.QueryAABB(NewAABB(mgl32.Vec3{-9, -9, -9}, mgl32.Vec3{0.5, 0.5, 0.5})))
	assert.Empty(t, grid.QueryAABB(NewAABB(mgl32.Vec3{10, 10, 10}, mgl32.Vec3{0.5, 0.5, 0.5})))
}

func TestSpatialHashGrid_OversizedBoxesAlwaysReturned(t *testing.T) {
	grid := NewSpatialHashGrid(1.0)
	ground := NewAABB(mgl32.Vec3{0, -1, 0}, mgl32.Vec3{200, 1, 200})
	grid.Insert(0, ground)
	grid.Insert(1, NewAABB(mgl32.Vec3{50, 50, 50}, mgl32.Vec3{0.2, 0.2, 0.2}))

	far := NewAABB(mgl32.Vec3{-100, 100, -100}, mgl32.Vec3{0.2, 0.2, 0.2})
	assert.Equal(t, []int{0}, grid.QueryAABB(far))

	// An oversized query returns every id.
	assert.ElementsMatch(t, []int{0, 1}, grid.QueryAABB(ground))
}

func TestSpatialHashGrid_Clear(t *testing.T) {
	grid := NewSpatialHashGrid(1.0)
	grid.Insert(1, NewAABB(mgl32.Vec3{}, mgl32.Vec3{0.5, 0.5, 0.5}))
	grid.Insert(2, NewAABB(mgl32.Vec3{}, mgl32.Vec3{500, 500, 500}))

	grid.Clear()

	assert.Empty(t, grid.QueryAABB(NewAABB(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1})))
}

func TestAABB_Overlaps(t *testing.T) {
	a := NewAABB(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1})

	assert.True(t, a.Overlaps(NewAABB(mgl32.Vec3{1.5, 0, 0}, mgl32.Vec3{1, 1, 1})))
	assert.True(t, a.Overlaps(NewAABB(mgl32.Vec3{2, 0, 0}, mgl32.Vec3{1, 1, 1})), "touching faces overlap")
	assert.False(t, a.Overlaps(NewAABB(mgl32.Vec3{2.5, 0, 0}, mgl32.Vec3{1, 1, 1})))
	assert.False(t, a.Overlaps(NewAABB(mgl32.Vec3{0, 0, 3}, mgl32.Vec3{1, 1, 1})))

	assert.Equal(t, mgl32.Vec3{0, 0, 0}, a.Center())
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, a.Size())
}

func TestSpatialHashGrid_HugeBoxesGoToOversize(t *testing.T) {
	grid := NewSpatialHashGrid(4.0)

	// 5,000,001 cells per axis: the cube of that does not fit in an int.
	grid.Insert(0, NewAABB(mgl32.Vec3{}, mgl32.Vec3{1e7, 1e7, 1e7}))
	grid.Insert(1, NewAABB(mgl32.Vec3{}, mgl32.Vec3{5e8, 1, 5e8}))
	grid.Insert(2, NewAABB(mgl32.Vec3{1e30, 0, 0}, mgl32.Vec3{1, 1, 1}))
	grid.Insert(3, NewAABB(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}))

	assert.Equal(t, []int{0, 1, 2}, grid.oversize)
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, grid.QueryAABB(NewAABB(mgl32.Vec3{}, mgl32.Vec3{0.5, 0.5, 0.5})))
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, grid.QueryAABB(NewAABB(mgl32.Vec3{}, mgl32.Vec3{1e7, 1e7, 1e7})))
}

func TestCollisions_HugeLevelBox(t *testing.T) {
	c := NewCollisions(4, nil)
	c.AddCollider(&BoxCollider{Tag: "Huge", Box: NewAABB(mgl32.Vec3{0, -1e7, 0}, mgl32.Vec3{1e7, 1e7, 1e7})})
	player := newMarker("player", mgl32.Vec3{0, 0.5, 0})
	c.AddCollider(player)

	c.Update()

	assert.Equal(t, []string{"Huge"}, player.hits)
}
