package main

import (
	"context"
	"runtime"

	log "github.com/sirupsen/logrus"

	"github.com/devblok/masterchart/core"
	"github.com/devblok/masterchart/window"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if err := run(); err != nil {
		log.WithError(err).Fatal("Application failed")
	}
}

func run() error {
	configuration := core.DefaultConfiguration()
	log.WithField("validation", configuration.Instance.Validation.Enabled).Info("Starting")

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

	session := core.NewSession(configuration, sdlWindow)
	if err := session.Initialise(); err != nil {
		return err
	}
	defer session.Destroy()

	log.WithField("device", session.Selection().Properties.Name).Info("Running")
	return session.Run(context.Background())
}
