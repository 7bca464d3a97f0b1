package panorama

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ShowDebug draws the fps and slice count overlay.
	ShowDebug bool
	// ScreenshotDir and ScreenshotFormat control scripted screenshots.
	ScreenshotDir    string
	ScreenshotFormat string
	// Script, when set, drives the viewer and ends the game loop once done.
	Script *TestRunner
}

// Run opens a resizable window, loads opts.Source and blocks in the ebiten
// game loop until the window is closed. opts.Surface and opts.Input are
// replaced with ebiten implementations.
func Run(ctx context.Context, opts Options, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	surface := NewEbitenSurface(cfg.Width, cfg.Height)
	input := NewEbitenInput()
	input.SetBounds(cfg.Width, cfg.Height)
	opts.Surface = surface
	opts.Input = input

	p, err := New(opts)
	if err != nil {
		return err
	}
	defer p.Close()
	if err := p.Load(ctx); err != nil {
		return err
	}

	v := NewViewer(p, surface, input)
	v.ShowDebug = cfg.ShowDebug
	v.SetScreenshotDir(cfg.ScreenshotDir, cfg.ScreenshotFormat)
	if cfg.Script != nil {
		v.SetTestRunner(cfg.Script)
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(v); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
