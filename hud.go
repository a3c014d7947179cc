package trex

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/gekko3d/trex/core"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	bannerSeconds = 2.0
	bannerPadding = 4
)

// RenderBanner rasterises a single line of text onto a padded background.
func RenderBanner(text string, fg, bg color.Color) *image.RGBA {
	face := basicfont.Face7x13
	metrics := face.Metrics()

	width := font.MeasureString(face, text).Ceil() + 2*bannerPadding
	height := (metrics.Ascent + metrics.Descent).Ceil() + 2*bannerPadding

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(bannerPadding, bannerPadding+metrics.Ascent.Ceil()),
	}
	d.DrawString(text)
	return img
}

// Hud shows a short banner whenever the camera mode changes.
type Hud struct {
	Banner *image.RGBA

	remaining float32
	mode      core.CameraMode
	observed  bool
}

// Observe compares mode with the last one seen and ages the current banner.
func (h *Hud) Observe(mode core.CameraMode, dt float32) {
	if !h.observed {
		h.observed = true
		h.mode = mode
		return
	}
	if mode != h.mode {
		h.mode = mode
		h.Banner = RenderBanner(mode.String(), color.White, color.RGBA{A: 160})
		h.remaining = bannerSeconds
		return
	}
	if h.remaining > 0 {
		h.remaining -= dt
		if h.remaining <= 0 {
			h.Banner = nil
		}
	}
}

func (h *Hud) Visible() bool {
	return h.Banner != nil
}

type HudModule struct{}

func (HudModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Hud{})
	app.UseSystem(
		System(hudSystem).
			InStage(PostUpdate),
	)
	app.UseSystem(
		System(hudDrawSystem).
			InStage(Render),
	)
}

func hudSystem(clock *Time, rig *core.CameraRig, hud *Hud) {
	hud.Observe(rig.Mode(), clock.Dt)
}

func hudDrawSystem(rs *RenderState, hud *Hud) {
	if hud.Visible() {
		rs.Sink.DrawOverlay(hud.Banner)
	}
}
