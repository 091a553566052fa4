package observability

import (
	"log/slog"

	"github.com/kanzure/modelo/pkg/model"
)

// LogHooks logs every event: rejected assignments at warn, the rest at debug.
func LogHooks(logger *slog.Logger) model.Hooks {
	return model.Hooks{
		OnAssign: func(e model.Event) {
			if e.Err != nil {
				logger.Warn("assignment rejected", "type", e.Type, "attr", e.Attr, "err", e.Err)
				return
			}
			logger.Debug("assigned", "type", e.Type, "attr", e.Attr)
		},
		OnMaterialize: func(e model.Event) {
			logger.Debug("default materialized", "type", e.Type, "attr", e.Attr)
		},
	}
}

// Chain combines hooks so that each event reaches all of them in order.
func Chain(hooks ...model.Hooks) model.Hooks {
	return model.Hooks{
		OnAssign: func(e model.Event) {
			for _, h := range hooks {
				if h.OnAssign != nil {
					h.OnAssign(e)
				}
			}
		},
		OnMaterialize: func(e model.Event) {
			for _, h := range hooks {
				if h.OnMaterialize != nil {
					h.OnMaterialize(e)
				}
			}
		},
	}
}
