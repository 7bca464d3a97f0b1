// Package panorama renders one 360° equirectangular image as a pannable
// cylindrical panorama on a 2D surface, on top of [Ebitengine].
//
// Every frame the visible field of view is split into angular slices. Each
// slice maps a column range of the source image to a vertical strip on the
// surface whose width and height follow the cosecant of its angle, which
// approximates the perspective of a cylinder seen from its axis.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	opts := panorama.DefaultOptions()
//	opts.Source = "mountains.jpeg"
//	err := panorama.Run(ctx, opts, panorama.RunConfig{
//		Title: "Panorama", Width: 1280, Height: 720,
//	})
//
// For full control, create a [Surface] and an input source yourself, build
// the instance with [New] and step its [Scheduler] once per frame:
//
//	surface := panorama.NewEbitenSurface(w, h)
//	input := panorama.NewEbitenInput()
//	opts.Surface, opts.Input = surface, input
//	p, err := panorama.New(opts)
//	// ...
//	err = p.Load(ctx)
//	_ = ebiten.RunGame(panorama.NewViewer(p, surface, input))
//
// # Render loop
//
// A [Panorama] is idle until something requests a tick: a drag, a key
// press, a resize, or the initial speed applied on load. Each tick advances
// the position by the velocity, draws all slices and, unless input is held,
// divides the velocity by the damping factor. The loop stops rescheduling
// once the velocity truncates to zero. Before the user's first interaction
// the initial speed is not damped, so the view pans continuously.
//
// # Quality
//
// With SilentDegradeQualityIfNeeded set, a [QualityAdaptor] estimates the
// frame rate on every frame. After more than ten frames reading below
// 10 fps it quarters the slice count, once, for the lifetime of the
// instance.
//
// # Headless use
//
// [Headless] renders into an [image.RGBA] through golang.org/x/image/draw
// and accepts injected input and JSON test scripts ([LoadTestScript]), for
// automated snapshots without a window.
//
// [Ebitengine]: https://ebitengine.org
package panorama
