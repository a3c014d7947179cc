package trex

// SessionModule owns the session-level controls: cursor capture toggling and
// exit on window close.
type SessionModule struct {
	// ReleaseCursor starts the session with the pointer free.
	ReleaseCursor bool
}

func (m SessionModule) Install(app *App, cmd *Commands) {
	input, ok := Resource[Input](app)
	if !ok {
		panic("SessionModule requires an Input resource")
	}
	input.SetCursorLock(!m.ReleaseCursor)

	app.UseSystem(
		System(sessionSystem).
			InStage(PostRender),
	)
}

// sessionSystem runs after drawing so a toggle takes effect from the next
// frame's input on.
func sessionSystem(cmd *Commands, input *Input) {
	if input.ButtonPressed(MouseButtonMiddle) || input.KeyPressed(KeyEscape) {
		input.ToggleCursorLock()
		cmd.Logger().Debugf("cursor locked: %v", input.CursorLocked())
	}
	if input.Exit() {
		cmd.Logger().Infof("Window closed, exiting")
		cmd.Exit()
	}
}
