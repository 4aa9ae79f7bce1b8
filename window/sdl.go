// Package window provides the SDL2 window the application presents to
package window

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/devblok/masterchart/core"
	"github.com/devblok/masterchart/device"
)

// Init starts the SDL video and event subsystems and loads the Vulkan
// library. It returns the loader entry point for core.InitLoader.
func Init() (unsafe.Pointer, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, errors.Wrap(err, "sdl.Init()")
	}

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		sdl.Quit()
		return nil, errors.Wrap(err, "sdl.VulkanLoadLibrary()")
	}

	return sdl.VulkanGetVkGetInstanceProcAddr(), nil
}

// Quit unloads the Vulkan library and shuts SDL down
func Quit() {
	sdl.VulkanUnloadLibrary()
	sdl.Quit()
}

// NewSDLWindow creates a fixed size window able to present through Vulkan
func NewSDLWindow(cfg core.WindowConfiguration) (*SDLWindow, error) {
	flags := uint32(sdl.WINDOW_VULKAN)
	if cfg.Hidden {
		flags |= sdl.WINDOW_HIDDEN
	}

	window, err := sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags)
	if err != nil {
		return nil, errors.Wrap(err, "sdl.CreateWindow()")
	}

	return &SDLWindow{window: window}, nil
}

// SDLWindow is an SDL2 window implementing core.Window
type SDLWindow struct {
	window      *sdl.Window
	shouldClose bool
}

var _ core.Window = (*SDLWindow)(nil)

// ShouldClose implements interface
func (w *SDLWindow) ShouldClose() bool {
	return w.shouldClose
}

// PollEvents implements interface
func (w *SDLWindow) PollEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch et := event.(type) {
		case *sdl.KeyboardEvent:
			if et.Keysym.Sym == sdl.K_ESCAPE {
				w.shouldClose = true
			}
		case *sdl.QuitEvent:
			w.shouldClose = true
		}
	}
}

// RequiredInstanceExtensions implements interface
func (w *SDLWindow) RequiredInstanceExtensions() []string {
	return w.window.VulkanGetInstanceExtensions()
}

// CreateSurface implements interface
func (w *SDLWindow) CreateSurface(instance interface{}) (unsafe.Pointer, error) {
	surface, err := w.window.VulkanCreateSurface(instance)
	if err != nil {
		return nil, errors.Wrap(err, "sdl.Window.VulkanCreateSurface()")
	}
	return surface, nil
}

// FramebufferSize implements interface
func (w *SDLWindow) FramebufferSize() device.Extent2D {
	width, height := w.window.VulkanGetDrawableSize()
	return device.Extent2D{Width: uint32(width), Height: uint32(height)}
}

// Destroy implements interface
func (w *SDLWindow) Destroy() {
	if w.window != nil {
		w.window.Destroy()
		w.window = nil
	}
}
