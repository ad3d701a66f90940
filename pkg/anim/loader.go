// pkg/anim/loader.go
// Copyright(c) 2025 arctrails contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package anim

import (
	"time"
)

// admission is one scheduled path group, carrying the time at which the
// group enters the registry. Start times within the group are assigned at
// scheduling time, not at admission.
type admission struct {
	due   time.Time
	paths []*Path
}

// Loader staggers the admission of path groups into the registry so that
// animations do not all begin simultaneously. Group i is admitted
// InterGroupDelay*i after the schedule start; within a group, each path
// begins exactly when the previous one finishes. Scheduled admissions are
// not cancellable; they are drained on the frame callback chain by the
// controller, so no locking is involved.
type Loader struct {
	InterGroupDelay time.Duration
	Rate            float32 // points per millisecond

	pending []admission
}

// Schedule assigns start times to every path in the given groups and
// queues the groups for admission. Empty groups are no-ops. Zero-length
// paths get a start time but reveal as already finished.
func (l *Loader) Schedule(groups [][]*Path, start time.Time) {
	for i, group := range groups {
		if len(group) == 0 {
			continue
		}

		due := start.Add(time.Duration(i) * l.InterGroupDelay)
		t := due
		for _, p := range group {
			p.Start = t
			if len(p.Coords) > 1 {
				durationMs := float32(len(p.Coords)-1) / l.Rate
				t = t.Add(time.Duration(durationMs * float32(time.Millisecond)))
			}
		}

		l.pending = append(l.pending, admission{due: due, paths: group})
	}
}

// Admit moves every group whose admission time has arrived into the
// registry and returns the number of paths admitted.
func (l *Loader) Admit(now time.Time, reg *Registry) int {
	n := 0
	for i := 0; i < len(l.pending); {
		if a := l.pending[i]; !now.Before(a.due) {
			reg.Add(a.paths)
			n += len(a.paths)
			l.pending = append(l.pending[:i], l.pending[i+1:]...)
		} else {
			i++
		}
	}
	return n
}

// Pending returns the number of path groups scheduled but not yet admitted.
func (l *Loader) Pending() int { return len(l.pending) }
