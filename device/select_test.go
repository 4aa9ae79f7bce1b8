// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/masterchart/device"
)

func TestFindQueueFamilies(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		name     string
		families []device.QueueFamily
		want     device.QueueFamilyIndices
	}{{
		name: "empty",
		want: device.NoQueueFamilies,
	}, {
		name: "one family does both",
		families: []device.QueueFamily{
			{QueueCount: 1, Flags: device.QueueGraphics, SupportsPresent: true},
		},
		want: device.QueueFamilyIndices{Graphics: 0, Present: 0},
	}, {
		name: "graphics and present apart",
		families: []device.QueueFamily{
			{QueueCount: 1, Flags: device.QueueGraphics},
			{QueueCount: 1, Flags: device.QueueCompute, SupportsPresent: true},
		},
		want: device.QueueFamilyIndices{Graphics: 0, Present: 1},
	}, {
		name: "first fit per slot",
		families: []device.QueueFamily{
			{QueueCount: 1, Flags: device.QueueCompute, SupportsPresent: true},
			{QueueCount: 1, Flags: device.QueueGraphics, SupportsPresent: true},
			{QueueCount: 1, Flags: device.QueueGraphics, SupportsPresent: true},
		},
		want: device.QueueFamilyIndices{Graphics: 1, Present: 0},
	}, {
		name: "zero queue families are skipped",
		families: []device.QueueFamily{
			{QueueCount: 0, Flags: device.QueueGraphics, SupportsPresent: true},
			{QueueCount: 2, Flags: device.QueueGraphics, SupportsPresent: true},
		},
		want: device.QueueFamilyIndices{Graphics: 1, Present: 1},
	}, {
		name: "no present support",
		families: []device.QueueFamily{
			{QueueCount: 4, Flags: device.QueueGraphics | device.QueueCompute},
		},
		want: device.QueueFamilyIndices{Graphics: 0, Present: -1},
	}}

	for _, test := range tests {
		c.Run(test.name, func(c *qt.C) {
			got := device.FindQueueFamilies(test.families, device.QueueGraphics)
			c.Assert(got, qt.Equals, test.want)
		})
	}
}

func TestQueueRequests(t *testing.T) {
	c := qt.New(t)

	shared := device.QueueRequests(device.QueueFamilyIndices{Graphics: 2, Present: 2})
	c.Assert(shared, qt.DeepEquals, []device.QueueRequest{
		{FamilyIndex: 2, Priorities: []float32{1.0}},
	})

	split := device.QueueRequests(device.QueueFamilyIndices{Graphics: 0, Present: 3})
	c.Assert(split, qt.DeepEquals, []device.QueueRequest{
		{FamilyIndex: 0, Priorities: []float32{1.0}},
		{FamilyIndex: 3, Priorities: []float32{1.0}},
	})
}

func TestFirstFit(t *testing.T) {
	c := qt.New(t)

	candidates := []device.Candidate{"a", "b", "c", "d"}
	var evaluated []device.Candidate
	chosen, err := device.FirstFit(candidates, func(cand device.Candidate) (bool, error) {
		evaluated = append(evaluated, cand)
		return cand == "b" || cand == "d", nil
	})
	c.Assert(err, qt.IsNil)
	c.Assert(chosen, qt.Equals, device.Candidate("b"))
	c.Assert(evaluated, qt.DeepEquals, []device.Candidate{"a", "b"})
}

func TestFirstFitErrors(t *testing.T) {
	c := qt.New(t)

	never := func(device.Candidate) (bool, error) { return false, nil }

	_, err := device.FirstFit(nil, never)
	c.Assert(err, qt.ErrorIs, device.ErrNoDevices)

	_, err = device.FirstFit([]device.Candidate{"a", "b"}, never)
	c.Assert(err, qt.ErrorIs, device.ErrNoSuitableDevice)

	_, err = device.FirstFit([]device.Candidate{"a"}, func(device.Candidate) (bool, error) {
		return false, errFake
	})
	c.Assert(err, qt.ErrorIs, errFake)
}

func TestSelect(t *testing.T) {
	c := qt.New(t)

	integrated := goodDevice("integrated")
	integrated.props.Type = device.IntegratedGPU
	first := goodDevice("first")
	second := goodDevice("second")

	q := newFakeQuerier(integrated, first, second)
	selection, err := device.Select(q, defaultRequirements)
	c.Assert(err, qt.IsNil)
	c.Assert(selection.Device, qt.Equals, device.Candidate(first))
	c.Assert(selection.Properties.Name, qt.Equals, "first")
	c.Assert(selection.Indices, qt.Equals, device.QueueFamilyIndices{Graphics: 0, Present: 0})
	c.Assert(q.calls["Properties"], qt.Equals, 2)
}

func TestSelectNoDevices(t *testing.T) {
	c := qt.New(t)

	_, err := device.Select(newFakeQuerier(), defaultRequirements)
	c.Assert(err, qt.ErrorIs, device.ErrNoDevices)
}

func TestSelectNoneSuitable(t *testing.T) {
	c := qt.New(t)

	noFormats := goodDevice("no formats")
	noFormats.formats = nil
	noPresent := goodDevice("no present")
	noPresent.families[0].SupportsPresent = false

	_, err := device.Select(newFakeQuerier(noFormats, noPresent), defaultRequirements)
	c.Assert(err, qt.ErrorIs, device.ErrNoSuitableDevice)
}

func TestSelectEnumerationFailure(t *testing.T) {
	c := qt.New(t)

	q := newFakeQuerier(goodDevice("a"))
	q.failOn = "Devices"
	_, err := device.Select(q, defaultRequirements)
	c.Assert(err, qt.ErrorIs, errFake)
}

func TestQueryIsRepeatable(t *testing.T) {
	c := qt.New(t)

	d := goodDevice("repeat")
	q := newFakeQuerier(d)

	first, err := device.Query(q, d)
	c.Assert(err, qt.IsNil)
	second, err := device.Query(q, d)
	c.Assert(err, qt.IsNil)
	c.Assert(second, qt.DeepEquals, first)
	c.Assert(q.calls["SurfaceCapabilities"], qt.Equals, 2)
}

func TestDescribe(t *testing.T) {
	c := qt.New(t)

	cpu := goodDevice("cpu")
	cpu.props.Type = device.CPU
	reports, err := device.Describe(newFakeQuerier(cpu, goodDevice("gpu")), defaultRequirements)
	c.Assert(err, qt.IsNil)
	c.Assert(reports, qt.HasLen, 2)
	c.Assert(reports[0].Suitable, qt.IsFalse)
	c.Assert(reports[0].Reason, qt.Equals, "device type is cpu, need discrete")
	c.Assert(reports[1].Suitable, qt.IsTrue)
	c.Assert(reports[1].Properties.Name, qt.Equals, "gpu")
	c.Assert(reports[1].PresentModes, qt.HasLen, 2)
}
