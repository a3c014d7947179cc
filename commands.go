package trex

type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

// OnShutdown registers fn to run when the App stops. Hooks run in reverse
// registration order, each isolated from panics in the others.
func (cmd *Commands) OnShutdown(name string, fn func()) *Commands {
	cmd.app.onShutdown(name, fn)
	return cmd
}

// Exit stops the App after the current frame.
func (cmd *Commands) Exit() {
	cmd.app.exit()
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}
