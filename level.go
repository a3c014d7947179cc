package trex

// LevelModule registers the static level boxes with the collision pass and
// removes them again on shutdown.
type LevelModule struct {
	Boxes []BoxDef
}

func (m LevelModule) Install(app *App, cmd *Commands) {
	collisions, ok := Resource[Collisions](app)
	if !ok {
		panic("LevelModule requires CollisionModule")
	}

	boxes := make([]*BoxCollider, 0, len(m.Boxes))
	for _, def := range m.Boxes {
		box := &BoxCollider{Tag: def.Tag, Box: NewAABB(def.Center, def.HalfExtents)}
		id := collisions.AddCollider(box)
		boxes = append(boxes, box)
		app.Logger().Debugf("level box %s at %v registered as %s", def.Tag, def.Center, id)
	}

	cmd.OnShutdown("level", func() {
		for _, box := range boxes {
			collisions.RemoveCollider(box)
		}
	})
	app.Logger().Infof("Level loaded: %d boxes", len(boxes))
}
