package transition

import (
	"slices"
	"time"
)

// Registry tracks live machines for introspection. It is owned by whoever
// composes the machines, typically a slideshow.
type Registry struct {
	machines []*Machine
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Register(machine *Machine) {
	if r == nil || machine == nil || slices.Contains(r.machines, machine) {
		return
	}
	r.machines = append(r.machines, machine)
}

// Remove reports whether machine was registered.
func (r *Registry) Remove(machine *Machine) bool {
	if r == nil {
		return false
	}
	i := slices.Index(r.machines, machine)
	if i < 0 {
		return false
	}
	r.machines = slices.Delete(r.machines, i, i+1)
	return true
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.machines)
}

// Machines returns the live machines in registration order.
func (r *Registry) Machines() []*Machine {
	if r == nil {
		return nil
	}
	return slices.Clone(r.machines)
}

type Snapshot struct {
	ID       string
	Property string
	State    State
	Busy     bool
	Value    string
	Start    time.Time
	End      time.Time
}

// Analyze captures the current state of every live machine.
func (r *Registry) Analyze() []Snapshot {
	if r == nil {
		return nil
	}
	snapshots := make([]Snapshot, 0, len(r.machines))
	for _, machine := range r.machines {
		snapshots = append(snapshots, Snapshot{
			ID:       machine.id,
			Property: machine.property,
			State:    machine.state,
			Busy:     machine.IsBusy(),
			Value:    machine.last,
			Start:    machine.start,
			End:      machine.end,
		})
	}
	return snapshots
}
