package trex

import (
	"image"

	"github.com/gekko3d/trex/core"
	"github.com/go-gl/mathgl/mgl32"
)

// RenderSink receives everything this core hands to rendering. It is an
// opaque collaborator: shaders, textures and meshes are addressed by name.
type RenderSink interface {
	SetViewProjection(vp mgl32.Mat4)
	UseShader(name string)
	SetMatrix(name string, m mgl32.Mat4)
	SetMatrices(name string, ms []mgl32.Mat4)
	BindTexture(slot, texture string)
	DrawMesh(mesh string)
	DrawGizmo(g Gizmo)
	DrawOverlay(img *image.RGBA)
}

type RenderState struct {
	Sink       RenderSink
	Debug      bool
	GizmoColor [4]float32
}

type RenderModule struct {
	Sink  RenderSink
	Debug bool
}

func (m RenderModule) Install(app *App, cmd *Commands) {
	sink := m.Sink
	if sink == nil {
		sink = NewLogRenderSink(app.Logger())
	}
	cmd.AddResources(&RenderState{
		Sink:       sink,
		Debug:      m.Debug,
		GizmoColor: [4]float32{0, 1, 0, 1},
	})

	app.UseSystem(
		System(publishViewProjSystem).
			InStage(PreRender),
	)
	app.UseSystem(
		System(debugGizmoSystem).
			InStage(Render),
	)
}

// publishViewProjSystem hands the frame's single view-projection to the sink
// before any draw call.
func publishViewProjSystem(rs *RenderState, rig *core.CameraRig) {
	rs.Sink.SetViewProjection(rig.ViewProj())
}

func debugGizmoSystem(rs *RenderState, collisions *Collisions) {
	if !rs.Debug {
		return
	}
	for _, g := range collisions.Gizmos(rs.GizmoColor) {
		rs.Sink.DrawGizmo(g)
	}
}

// LogRenderSink stands in for a GPU backend: it counts calls and traces them
// to the debug log.
type LogRenderSink struct {
	logger    Logger
	DrawCalls int
	Gizmos    int
	Overlays  int
	viewProj  mgl32.Mat4
}

func NewLogRenderSink(logger Logger) *LogRenderSink {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &LogRenderSink{logger: logger, viewProj: mgl32.Ident4()}
}

func (s *LogRenderSink) SetViewProjection(vp mgl32.Mat4) {
	s.viewProj = vp
}

func (s *LogRenderSink) ViewProjection() mgl32.Mat4 {
	return s.viewProj
}

func (s *LogRenderSink) UseShader(name string) {
	s.logger.Debugf("render: shader %s", name)
}

func (s *LogRenderSink) SetMatrix(name string, m mgl32.Mat4) {
	s.logger.Debugf("render: %s = %v", name, m)
}

func (s *LogRenderSink) SetMatrices(name string, ms []mgl32.Mat4) {
	s.logger.Debugf("render: %s = %d matrices", name, len(ms))
}

func (s *LogRenderSink) BindTexture(slot, texture string) {
	s.logger.Debugf("render: %s <- %s", slot, texture)
}

func (s *LogRenderSink) DrawMesh(mesh string) {
	s.DrawCalls++
	s.logger.Debugf("render: draw %s", mesh)
}

func (s *LogRenderSink) DrawGizmo(g Gizmo) {
	s.Gizmos++
}

func (s *LogRenderSink) DrawOverlay(img *image.RGBA) {
	s.Overlays++
	s.logger.Debugf("render: overlay %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
}
