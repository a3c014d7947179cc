package trex

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type markerCollider struct {
	name string
	box  AABB
	hits []string
}

func (p *markerCollider) Bounds() AABB { return p.box }

func (p *markerCollider) OnCollision(other Collider) {
	switch o := other.(type) {
	case *markerCollider:
		p.hits = append(p.hits, o.name)
	case *BoxCollider:
		p.hits = append(p.hits, o.Tag)
	}
}

func newMarker(name string, center mgl32.Vec3) *markerCollider {
	return &markerCollider{name: name, box: NewAABB(center, mgl32.Vec3{1, 1, 1})}
}

func TestCollisions_AddAndRemove(t *testing.T) {
	c := NewCollisions(4, nil)
	a := newMarker("a", mgl32.Vec3{})

	id := c.AddCollider(a)
	_, err := uuid.Parse(string(id))
	require.NoError(t, err)
	assert.Equal(t, id, c.AddCollider(a), "re-registering returns the same id")
	assert.Equal(t, 1, c.Len())

	assert.True(t, c.RemoveCollider(a))
	assert.False(t, c.RemoveCollider(a))
	assert.Equal(t, 0, c.Len())
	assert.False(t, c.Contains(a))
}

func TestCollisions_ReportsEachPairOnceToBoth(t *testing.T) {
	c := NewCollisions(4, nil)
	a := newMarker("a", mgl32.Vec3{0, 0, 0})
	b := newMarker("b", mgl32.Vec3{1, 0, 0})
	d := newMarker("d", mgl32.Vec3{1.5, 0.5, 0})
	far := newMarker("far", mgl32.Vec3{50, 0, 0})
	for _, p := range []*markerCollider{a, b, d, far} {
		c.AddCollider(p)
	}

	c.Update()

	assert.Equal(t, []string{"b", "d"}, a.hits)
	assert.Equal(t, []string{"a", "d"}, b.hits)
	assert.Equal(t, []string{"a", "b"}, d.hits)
	assert.Empty(t, far.hits)
	assert.Equal(t, 3, c.Contacts())
}

func TestCollisions_SkipsStaticPairs(t *testing.T) {
	c := NewCollisions(4, nil)
	ground := &BoxCollider{Tag: "Ground", Box: NewAABB(mgl32.Vec3{0, -1, 0}, mgl32.Vec3{200, 1, 200})}
	wall := &BoxCollider{Tag: "Wall", Box: NewAABB(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 2, 1})}
	player := newMarker("player", mgl32.Vec3{0, 0.5, 0})
	c.AddCollider(ground)
	c.AddCollider(wall)
	c.AddCollider(player)

	c.Update()

	assert.Equal(t, []string{"Ground", "Wall"}, player.hits)
	assert.Equal(t, 2, c.Contacts())
}

func TestCollisions_RemovedColliderIsNotNotified(t *testing.T) {
	c := NewCollisions(4, nil)
	a := newMarker("a", mgl32.Vec3{})
	b := newMarker("b", mgl32.Vec3{})
	c.AddCollider(a)
	c.AddCollider(b)
	c.RemoveCollider(b)

	c.Update()

	assert.Empty(t, a.hits)
	assert.Empty(t, b.hits)
}

func TestCollisions_Gizmos(t *testing.T) {
	c := NewCollisions(4, nil)
	c.AddCollider(newMarker("a", mgl32.Vec3{3, 0, 0}))

	color := [4]float32{0, 1, 0, 1}
	gizmos := c.Gizmos(color)

	require.Len(t, gizmos, 1)
	assert.Equal(t, NewGizmoCube(mgl32.Vec3{3, 0, 0}, mgl32.Vec3{2, 2, 2}, color), gizmos[0])
}

func TestCollisionModule_RunsEveryFrame(t *testing.T) {
	app := NewApp()
	app.UseModules(CollisionModule{})
	collisions, ok := Resource[Collisions](app)
	require.True(t, ok)

	a := newMarker("a", mgl32.Vec3{})
	b := newMarker("b", mgl32.Vec3{})
	collisions.AddCollider(a)
	collisions.AddCollider(b)

	app.Step()
	app.Step()

	assert.Equal(t, []string{"b", "b"}, a.hits)
}

func TestCollisionModule_LogsContactChanges(t *testing.T) {
	var out bytes.Buffer
	app := NewApp()
	app.Commands().AddResources(NewLoggerTo("", true, &out, &out))
	app.UseModules(CollisionModule{})
	collisions, _ := Resource[Collisions](app)

	a := newMarker("a", mgl32.Vec3{})
	collisions.AddCollider(a)
	collisions.AddCollider(newMarker("b", mgl32.Vec3{}))

	app.Step()
	app.Step()
	assert.Equal(t, 1, collisions.Contacts())
	assert.Equal(t, 1, bytes.Count(out.Bytes(), []byte("contacts 0 -> 1 across 2 colliders")), "only changes are logged")

	collisions.RemoveCollider(a)
	app.Step()
	assert.Contains(t, out.String(), "contacts 1 -> 0 across 1 colliders")
}
