package model

// Event describes a single attribute operation on an instance.
type Event struct {
	Type string
	Attr string
	Err  error // Set for rejected assignments
}

// Hooks are called synchronously as instances are used. Nil hooks are skipped.
type Hooks struct {
	// OnAssign runs after every Set, accepted or rejected.
	OnAssign func(Event)
	// OnMaterialize runs when a lazy default is computed on first read.
	OnMaterialize func(Event)
}

func (h *Hooks) assigned(typ, attr string, err error) {
	if h != nil && h.OnAssign != nil {
		h.OnAssign(Event{Type: typ, Attr: attr, Err: err})
	}
}

func (h *Hooks) materialized(typ, attr string) {
	if h != nil && h.OnMaterialize != nil {
		h.OnMaterialize(Event{Type: typ, Attr: attr})
	}
}
