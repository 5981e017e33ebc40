package main

import (
	"sync"

	"github.com/octet-labs/chip8vm/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

/// Screen is the SDL window showing the CHIP-8 display. Draw may be called
/// from the interpreter goroutine; everything else must run on the main
/// thread.
///
type Screen struct {
	Window   *sdl.Window
	Renderer *sdl.Renderer

	// texture is the 64x32 render target for the bitmap.
	texture *sdl.Texture

	mu    sync.Mutex
	video [chip8.VideoSize]byte
	dirty bool
}

/// NewScreen opens a window with scale window pixels per CHIP-8 pixel.
///
func NewScreen(title string, scale int) (*Screen, error) {
	w, h := int32(chip8.Width*scale), int32(chip8.Height*scale)

	window, renderer, err := sdl.CreateWindowAndRenderer(w, h, uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		return nil, err
	}

	window.SetTitle(title)

	// create a render target for the display
	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGB888, sdl.TEXTUREACCESS_TARGET, chip8.Width, chip8.Height)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		return nil, err
	}

	return &Screen{
		Window:   window,
		Renderer: renderer,
		texture:  texture,
		dirty:    true,
	}, nil
}

/// Draw keeps a copy of the bitmap for the next refresh.
///
func (s *Screen) Draw(video []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copy(s.video[:], video)
	s.dirty = true
}

/// Refresh redraws the window. The texture is only rebuilt when the bitmap
/// changed.
///
func (s *Screen) Refresh() error {
	s.mu.Lock()
	video, dirty := s.video, s.dirty
	s.dirty = false
	s.mu.Unlock()

	if dirty {
		if err := s.render(&video); err != nil {
			return err
		}
	}

	// stretch the render target over the window
	s.Renderer.SetDrawColor(0, 0, 0, 255)
	s.Renderer.Clear()

	if err := s.Renderer.Copy(s.texture, nil, nil); err != nil {
		return err
	}

	s.Renderer.Present()

	return nil
}

/// render the bitmap into the texture.
///
func (s *Screen) render(video *[chip8.VideoSize]byte) error {
	if err := s.Renderer.SetRenderTarget(s.texture); err != nil {
		return err
	}

	// the background color for the screen
	s.Renderer.SetDrawColor(143, 145, 133, 255)
	s.Renderer.Clear()

	// set the pixel color
	s.Renderer.SetDrawColor(17, 29, 43, 255)

	// draw all the pixels
	for p := 0; p < chip8.Width*chip8.Height; p++ {
		if video[p>>3]&(0x80>>uint(p&7)) != 0 {
			x := int32(p % chip8.Width)
			y := int32(p / chip8.Width)

			s.Renderer.DrawPoint(x, y)
		}
	}

	// restore the render target
	return s.Renderer.SetRenderTarget(nil)
}

/// Close destroys the window.
///
func (s *Screen) Close() {
	s.texture.Destroy()
	s.Renderer.Destroy()
	s.Window.Destroy()
}
