// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import (
	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
)

// Selection errors
var (
	ErrNoDevices        = errors.New("no devices support the graphics API")
	ErrNoSuitableDevice = errors.New("no suitable device found")
)

// QueueFamilyIndices holds the queue family indices used for graphics and
// presentation. A negative index means the family was not found.
type QueueFamilyIndices struct {
	Graphics int
	Present  int
}

// NoQueueFamilies is the starting point of a queue family search
var NoQueueFamilies = QueueFamilyIndices{Graphics: -1, Present: -1}

// IsComplete reports whether both families were found
func (q QueueFamilyIndices) IsComplete() bool {
	return q.Graphics >= 0 && q.Present >= 0
}

// Shared reports whether graphics and presentation use the same family
func (q QueueFamilyIndices) Shared() bool {
	return q.Graphics == q.Present
}

// Unique returns the distinct family indices, graphics first
func (q QueueFamilyIndices) Unique() []uint32 {
	if q.Shared() {
		return []uint32{uint32(q.Graphics)}
	}
	return []uint32{uint32(q.Graphics), uint32(q.Present)}
}

// FindQueueFamilies scans families in index order. The first family with
// queues and the required flags becomes the graphics family, the first
// family with queues and present support becomes the present family, and
// the scan stops once both are known. One family may fill both slots.
func FindQueueFamilies(families []QueueFamily, required QueueFlags) QueueFamilyIndices {
	indices := NoQueueFamilies
	for i, family := range families {
		if family.QueueCount > 0 {
			if indices.Present < 0 && family.SupportsPresent {
				indices.Present = i
			}
			if indices.Graphics < 0 && family.Flags.Has(required) {
				indices.Graphics = i
			}
		}

		if indices.IsComplete() {
			break
		}
	}
	return indices
}

// Predicate decides whether a candidate is usable
type Predicate func(Candidate) (bool, error)

// FirstFit returns the first candidate accepted by the predicate,
// evaluating candidates in order and stopping at the first match
func FirstFit(candidates []Candidate, suitable Predicate) (Candidate, error) {
	if len(candidates) == 0 {
		return nil, ErrNoDevices
	}

	for _, c := range candidates {
		ok, err := suitable(c)
		if err != nil {
			return nil, err
		}
		if ok {
			return c, nil
		}
	}
	return nil, ErrNoSuitableDevice
}

// Selection is the device picked for the session
type Selection struct {
	Device     Candidate
	Properties Properties
	Indices    QueueFamilyIndices
}

// Select enumerates devices and picks the first one satisfying reqs
func Select(q Querier, reqs Requirements) (Selection, error) {
	candidates, err := q.Devices()
	if err != nil {
		return Selection{}, errors.Wrap(err, "enumerate devices")
	}

	var chosen Verdict
	device, err := FirstFit(candidates, func(c Candidate) (bool, error) {
		verdict, err := reqs.Evaluate(q, c)
		if err != nil {
			return false, err
		}
		if !verdict.Suitable {
			log.WithFields(log.Fields{
				"device": verdict.Properties.Name,
				"reason": verdict.Reason,
			}).Info("Device rejected")
			return false, nil
		}
		chosen = verdict
		return true, nil
	})
	if err != nil {
		return Selection{}, err
	}

	log.WithFields(log.Fields{
		"device":   chosen.Properties.Name,
		"graphics": chosen.Indices.Graphics,
		"present":  chosen.Indices.Present,
	}).Info("Device selected")

	return Selection{
		Device:     device,
		Properties: chosen.Properties,
		Indices:    chosen.Indices,
	}, nil
}

// QueueRequest asks for queues from one family when creating a logical device
type QueueRequest struct {
	FamilyIndex uint32
	Priorities  []float32
}

// QueueRequests builds one request per distinct family, each asking for a
// single queue at full priority
func QueueRequests(indices QueueFamilyIndices) []QueueRequest {
	unique := indices.Unique()
	requests := make([]QueueRequest, 0, len(unique))
	for _, family := range unique {
		requests = append(requests, QueueRequest{
			FamilyIndex: family,
			Priorities:  []float32{1.0},
		})
	}
	return requests
}
