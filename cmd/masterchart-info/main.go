package main

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	vk "github.com/vulkan-go/vulkan"

	"github.com/devblok/masterchart/core"
	"github.com/devblok/masterchart/device"
	"github.com/devblok/masterchart/window"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		log.WithError(err).Fatal("Device report failed")
	}
}

func run() error {
	configuration := core.DefaultConfiguration()
	configuration.Window.Hidden = true
	configuration.Instance.Validation.Enabled = false

	procAddr, err := window.Init()
	if err != nil {
		return err
	}
	defer window.Quit()

	if err := core.InitLoader(procAddr); err != nil {
		return err
	}

	sdlWindow, err := window.NewSDLWindow(configuration.Window)
	if err != nil {
		return err
	}
	defer sdlWindow.Destroy()

	instance, err := core.NewInstance(configuration.Instance, sdlWindow.RequiredInstanceExtensions(), nil)
	if err != nil {
		return err
	}
	defer vk.DestroyInstance(instance, nil)

	pSurface, err := sdlWindow.CreateSurface(instance)
	if err != nil {
		return err
	}
	surface := vk.SurfaceFromPointer(uintptr(pSurface))
	defer vk.DestroySurface(instance, surface, nil)

	reports, err := device.Describe(core.NewQuerier(instance, surface), configuration.Device)
	if err != nil {
		return err
	}

	bytes, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal reports")
	}
	fmt.Printf("%s\n", bytes)
	return nil
}
