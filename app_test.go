package trex

import (
	"bytes"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

func NewMockResource1(name string) *MockResource1 {
	return &MockResource1{name: name}
}
func NewMockResource2(name string) *MockResource2 {
	return &MockResource2{name: name}
}

type MockModule struct {
	installed bool
}

func (m *MockModule) Install(app *App, commands *Commands) {
	m.installed = true
}

func TestApp_addResources(t *testing.T) {
	app := &App{
		resources: make(map[reflect.Type]any),
	}

	resource1 := NewMockResource1("Resource1")
	app.addResources(resource1)
	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem(), "Resource1 should be in resources map.")

	// Adding the same type again panics.
	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	resource2 := NewMockResource2("Resource2")
	app.addResources(resource2)
	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem(), "Resource2 should be in resources map.")
}

func TestResource(t *testing.T) {
	app := NewApp()
	_, ok := Resource[MockResource1](app)
	assert.False(t, ok)

	r := NewMockResource1("one")
	app.Commands().AddResources(r)

	got, ok := Resource[MockResource1](app)
	require.True(t, ok)
	assert.Same(t, r, got)
}

func TestApp_UseModules(t *testing.T) {
	m1, m2 := &MockModule{}, &MockModule{}
	NewApp().UseModules(m1, m2)

	assert.True(t, m1.installed)
	assert.True(t, m2.installed)
}

func TestApp_SystemsReceiveResources(t *testing.T) {
	app := NewApp()
	app.Commands().AddResources(NewMockResource1("a"), NewMockResource2("b"))

	var seen []string
	app.UseSystem(System(func(r1 *MockResource1, cmd *Commands, r2 *MockResource2) {
		seen = append(seen, r1.name+r2.name)
		require.NotNil(t, cmd)
	}))

	app.Step()
	app.Step()

	assert.Equal(t, []string{"ab", "ab"}, seen)
}

func TestApp_MissingDependencyPanics(t *testing.T) {
	app := NewApp()
	app.UseSystem(System(func(r *MockResource1) {}))

	assert.PanicsWithValue(t,
		"Unable to resolve System dependency.\nSystem: github.com/gekko3d/trex.TestApp_MissingDependencyPanics.func1\nSystem type: func(*trex.MockResource1)\nDependency: *trex.MockResource1",
		app.Step,
	)
}

func TestApp_StagesRunInOrder(t *testing.T) {
	app := NewApp()
	var order []string
	for _, stage := range []Stage{Finale, Render, PreUpdate, Prelude, PostRender, Update, PostUpdate, PreRender} {
		name := stage.Name
		app.UseSystem(System(func() { order = append(order, name) }).InStage(stage))
	}

	app.Step()

	assert.Equal(t, []string{"Prelude", "PreUpdate", "Update", "PostUpdate", "PreRender", "Render", "PostRender", "Finale"}, order)
}

func TestApp_UseSystemUnknownStage(t *testing.T) {
	assert.PanicsWithValue(t, "Stage nope doesn't exist", func() {
		NewApp().UseSystem(System(func() {}).InStage(Stage{Name: "nope"}))
	})
}

func TestApp_RunUntilExit(t *testing.T) {
	app := NewApp()
	frames := 0
	app.UseSystem(System(func(cmd *Commands) {
		frames++
		if frames == 3 {
			cmd.Exit()
		}
	}))
	closed := false
	app.Commands().OnShutdown("flag", func() { closed = true })

	app.Run()

	assert.Equal(t, 3, frames)
	assert.True(t, app.Exiting())
	assert.True(t, closed)
}

func TestApp_ShutdownHooksRunInReverseDespitePanics(t *testing.T) {
	var out bytes.Buffer
	app := NewApp()
	app.Commands().AddResources(NewLoggerTo("", false, &out, &out))

	var order []string
	cmd := app.Commands()
	cmd.OnShutdown("first", func() { order = append(order, "first") })
	cmd.OnShutdown("broken", func() { panic("boom") })
	cmd.OnShutdown("last", func() { order = append(order, "last") })

	app.runShutdown()
	app.runShutdown()

	assert.Equal(t, []string{"last", "first"}, order)
	assert.Contains(t, out.String(), "ERROR: shutdown hook broken panicked: boom")
}

func TestApp_RunShutsDownAfterSystemPanic(t *testing.T) {
	app := NewApp()
	app.UseSystem(System(func() { panic("frame failed") }))
	closed := false
	app.Commands().OnShutdown("flag", func() { closed = true })

	assert.PanicsWithValue(t, "frame failed", app.Run)
	assert.True(t, closed)
}
