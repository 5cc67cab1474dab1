package ecs

// System is one stage of a game tick: input, movement, physics, damage and so
// on. Systems read and write components on the world they are given.
type System interface {
	Update(w *World)
}

// Scheduler runs a fixed pipeline of systems in registration order. It is a
// System itself, so a whole pipeline can be registered with a world at once
// and run after anything the world already holds.
type Scheduler struct {
	systems []System
}

// NewScheduler builds a pipeline, skipping nil systems so optional stages
// can be passed unconditionally.
func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{systems: make([]System, 0, len(systems))}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Len() int {
	return len(s.systems)
}

func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		system.Update(w)
	}
}
