package trex

import (
	"slices"

	"github.com/google/uuid"
)

type ColliderId string

// Collider is anything the collision pass can test and notify. Implementations
// must be comparable (use pointer receivers); registration is by identity.
type Collider interface {
	Bounds() AABB
	OnCollision(other Collider)
}

// StaticCollider is implemented by colliders that never move. Two static
// colliders are never tested against each other.
type StaticCollider interface {
	Static() bool
}

type colliderEntry struct {
	id       ColliderId
	collider Collider
}

// Collisions is the broad-phase collaborator: it keeps the registration list
// and, once per frame, notifies both members of every overlapping pair.
type Collisions struct {
	entries  []colliderEntry
	grid     *SpatialHashGrid
	bounds   []AABB
	contacts int
	logger   Logger
}

func NewCollisions(cellSize float32, logger Logger) *Collisions {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Collisions{
		grid:   NewSpatialHashGrid(cellSize),
		logger: logger,
	}
}

// AddCollider registers c. Registering the same collider twice returns the
// first id.
func (c *Collisions) AddCollider(col Collider) ColliderId {
	for _, e := range c.entries {
		if e.collider == col {
			return e.id
		}
	}
	id := ColliderId(uuid.NewString())
	c.entries = append(c.entries, colliderEntry{id: id, collider: col})
	c.logger.Debugf("collider %s registered (%d total)", id, len(c.entries))
	return id
}

// RemoveCollider drops c from the list immediately. It reports whether c was
// registered.
func (c *Collisions) RemoveCollider(col Collider) bool {
	for i, e := range c.entries {
		if e.collider == col {
			c.entries = slices.Delete(c.entries, i, i+1)
			c.logger.Debugf("collider %s removed (%d left)", e.id, len(c.entries))
			return true
		}
	}
	return false
}

func (c *Collisions) Contains(col Collider) bool {
	for _, e := range c.entries {
		if e.collider == col {
			return true
		}
	}
	return false
}

func (c *Collisions) Len() int {
	return len(c.entries)
}

// Contacts is the number of overlapping pairs found by the last Update.
func (c *Collisions) Contacts() int {
	return c.contacts
}

// Update runs the collision pass. Each overlapping pair is reported once, in
// registration order, to both colliders.
func (c *Collisions) Update() {
	entries := slices.Clone(c.entries)

	c.grid.Clear()
	c.bounds = c.bounds[:0]
	for i, e := range entries {
		b := e.collider.Bounds()
		c.bounds = append(c.bounds, b)
		c.grid.Insert(i, b)
	}

	c.contacts = 0
	for i, a := range entries {
		candidates := c.grid.QueryAABB(c.bounds[i])
		slices.Sort(candidates)
		for _, j := range candidates {
			if j <= i {
				continue
			}
			b := entries[j]
			if isStatic(a.collider) && isStatic(b.collider) {
				continue
			}
			if !c.bounds[i].Overlaps(c.bounds[j]) {
				continue
			}
			a.collider.OnCollision(b.collider)
			b.collider.OnCollision(a.collider)
			c.contacts++
		}
	}
}

// Gizmos returns one wireframe box per registered collider.
func (c *Collisions) Gizmos(color [4]float32) []Gizmo {
	gizmos := make([]Gizmo, 0, len(c.entries))
	for _, e := range c.entries {
		b := e.collider.Bounds()
		gizmos = append(gizmos, NewGizmoCube(b.Center(), b.Size(), color))
	}
	return gizmos
}

func isStatic(col Collider) bool {
	s, ok := col.(StaticCollider)
	return ok && s.Static()
}

// BoxCollider is a fixed level box.
type BoxCollider struct {
	Tag string
	Box AABB
}

func (b *BoxCollider) Bounds() AABB               { return b.Box }
func (b *BoxCollider) OnCollision(other Collider) {}
func (b *BoxCollider) Static() bool               { return true }

type CollisionModule struct {
	CellSize float32
}

func (m CollisionModule) Install(app *App, cmd *Commands) {
	cellSize := m.CellSize
	if cellSize <= 0 {
		cellSize = 4.0
	}
	cmd.AddResources(NewCollisions(cellSize, app.Logger()))

	app.UseSystem(
		System(collisionSystem).
			InStage(PostUpdate),
	)
}

// collisionSystem runs after every entity update so contacts are visible to
// the next frame's reads.
func collisionSystem(cmd *Commands, collisions *Collisions) {
	before := collisions.Contacts()
	collisions.Update()
	if after := collisions.Contacts(); after != before {
		cmd.Logger().Debugf("contacts %d -> %d across %d colliders", before, after, collisions.Len())
	}
}
