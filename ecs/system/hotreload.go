package system

import (
	"github.com/Ali-Parandeh/tanks/ecs"
	"github.com/charmbracelet/log"
)

// ReloadFunc re-applies one changed prefab file to the live world.
type ReloadFunc func(w *ecs.World, name string) error

// HotReloadSystem polls for changed prefab files and re-applies them between
// ticks. It also logs anything the file watcher reported as failing. Neither
// source may block.
type HotReloadSystem struct {
	changes func() []string
	errs    func() []error
	reload  ReloadFunc
	log     *log.Logger
}

func NewHotReloadSystem(changes func() []string, errs func() []error, reload ReloadFunc) *HotReloadSystem {
	return &HotReloadSystem{changes: changes, errs: errs, reload: reload, log: log.WithPrefix("reload")}
}

func (s *HotReloadSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	if s.errs != nil {
		for _, err := range s.errs() {
			s.log.Error("watch prefabs", "err", err)
		}
	}
	if s.changes == nil || s.reload == nil {
		return
	}

	for _, name := range s.changes() {
		if err := s.reload(w, name); err != nil {
			s.log.Error("reload failed", "file", name, "err", err)
			continue
		}
		s.log.Info("reloaded", "file", name)
	}
}
