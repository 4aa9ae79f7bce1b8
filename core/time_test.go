package core_test

import (
	"context"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/masterchart/core"
)

func TestPollInterval(t *testing.T) {
	c := qt.New(t)

	c.Assert(core.TimeConfiguration{EventPollsPerSecond: 60}.PollInterval(), qt.Equals, time.Second/60)
	c.Assert(core.TimeConfiguration{EventPollsPerSecond: 0}.PollInterval(), qt.Equals, time.Nanosecond)
}

func TestPacerWait(t *testing.T) {
	c := qt.New(t)

	pacer := core.NewPacer(core.TimeConfiguration{EventPollsPerSecond: 1000})
	defer pacer.Stop()
	c.Assert(pacer.Interval(), qt.Equals, time.Millisecond)
	c.Assert(pacer.Wait(context.Background()), qt.IsTrue)
}

func TestPacerWaitCancelled(t *testing.T) {
	c := qt.New(t)

	pacer := core.NewPacer(core.TimeConfiguration{EventPollsPerSecond: 1})
	defer pacer.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.Assert(pacer.Wait(ctx), qt.IsFalse)
}
