package game

import (
	"context"

	"github.com/leterax/go-roam/pkg/render"
)

// RunWindow opens a window on the calling thread, which must be the locked
// main thread, and runs the frame loop until the window closes or ctx is done.
func RunWindow(ctx context.Context, g *Game, scene *render.Scene) error {
	w := g.Config().Window
	renderer, err := render.NewRenderer(render.Options{
		Width:            w.Width,
		Height:           w.Height,
		Title:            w.Title,
		VSync:            w.VSync,
		FOV:              w.FOV,
		Near:             w.Near,
		Far:              w.Far,
		MouseSensitivity: w.MouseSensitivity,
	}, g.Camera(), scene)
	if err != nil {
		return err
	}
	defer renderer.Cleanup()

	g.log.Info("window opened",
		"gl_version", renderer.GLVersion(),
		"width", w.Width,
		"height", w.Height,
		"cubes", len(scene.Cubes))
	g.log.Info("click to look around, esc to release the pointer")

	return renderer.Run(ctx, g)
}
