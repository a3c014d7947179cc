package trex

import (
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

// Module installs resources and systems into an App.
type Module interface {
	Install(app *App, cmd *Commands)
}

type App struct {
	stages    []Stage
	systems   map[string][]systemFn
	resources map[reflect.Type]any

	exiting  bool
	shutdown []shutdownHook
}

type shutdownHook struct {
	name string
	fn   func()
}

func NewApp() *App {
	app := &App{
		systems:   make(map[string][]systemFn),
		resources: make(map[reflect.Type]any),
	}
	for _, stage := range defaultStages {
		app.stages = append(app.stages, stage)
		app.initStage(stage)
	}
	return app
}

func (app *App) Commands() *Commands {
	return &Commands{
		app: app,
	}
}

// UseModules installs each module immediately, in order.
func (app *App) UseModules(modules ...Module) *App {
	cmd := app.Commands()
	for _, module := range modules {
		module.Install(app, cmd)
	}
	return app
}

// Run steps every stage once per frame until a system requests exit, then
// runs the shutdown hooks. Hooks also run if a system panics.
func (app *App) Run() {
	defer app.runShutdown()

	app.Logger().Infof("Running %d stages", len(app.stages))
	for !app.exiting {
		app.Step()
	}
}

// Step executes one frame: every system of every stage, in stage order.
func (app *App) Step() {
	for _, stage := range app.stages {
		for _, system := range app.systems[stage.Name] {
			app.callSystem(system)
		}
	}
}

func (app *App) Exiting() bool {
	return app.exiting
}

func (app *App) exit() {
	app.exiting = true
}

func (app *App) onShutdown(name string, fn func()) {
	app.shutdown = append(app.shutdown, shutdownHook{name: name, fn: fn})
}

// runShutdown calls hooks last-registered first. A panicking hook is logged
// and does not stop the remaining hooks.
func (app *App) runShutdown() {
	hooks := app.shutdown
	app.shutdown = nil
	for i := len(hooks) - 1; i >= 0; i-- {
		app.runHook(hooks[i])
	}
}

func (app *App) runHook(hook shutdownHook) {
	defer func() {
		if r := recover(); r != nil {
			app.Logger().Errorf("shutdown hook %s panicked: %v", hook.name, r)
		}
	}()
	app.Logger().Debugf("shutdown: %s", hook.name)
	hook.fn()
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// Resource returns the resource stored for T, if any.
func Resource[T any](app *App) (*T, bool) {
	res, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	typed, ok := res.(*T)
	return typed, ok
}

func (app *App) callSystem(system systemFn) {
	app.callSystemInternal(system)
}

var typeOfCommands = reflect.TypeOf(Commands{})

func (app *App) callSystemInternal(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, argIsResource := app.resources[underlyingType]; argIsResource {
			args[i] = reflect.ValueOf(resource)
		} else {
			msg := fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				fmt.Sprint(systemType),
				fmt.Sprint(argType),
			)
			app.Logger().Errorf("%s", msg)
			panic(msg)
		}
	}
	systemValue.Call(args)
}
