package glome

// triggerPair identifies one (body, trigger) overlap. Comparable so the
// previous tick's overlap set can live in a plain map.
type triggerPair struct {
	body    Handle
	trigger TriggerRef
}

// triggerState is the persistent overlap set the enter/stay/exit transitions
// are derived from.
type triggerState struct {
	previous map[triggerPair]struct{}
}

// detectTriggers runs the trigger pass: a pure overlap scan with no
// position or velocity mutation, after collision response. A trigger senses
// a body through the trigger's own mask only; the body's mask is
// deliberately not consulted (see Filter.Senses).
//
// For every pair the event sequence is exactly one Enter, any number of
// Stays, one Exit: pairs present now but not last tick enter, pairs present
// in both stay, pairs only present last tick exit.
func (w *World) detectTriggers() {
	current := make(map[triggerPair]struct{}, len(w.triggers.previous))

	for handle, body := range w.registry.bodies() {
		if body.Trigger {
			continue
		}

		// static trigger volumes
		for idx := range w.registry.statics {
			static := &w.registry.statics[idx]
			if !static.Trigger || !static.Filter.Senses(body.Filter) {
				continue
			}

			contact, ok := Collide(body.Shape, body.Position, static.Shape, static.Position)
			if !ok {
				continue
			}

			w.recordTriggerOverlap(current, triggerPair{body: handle, trigger: staticTrigger(StaticIndex(idx))}, contact)
		}

		// trigger bodies
		for th, trigger := range w.registry.bodies() {
			if !trigger.Trigger || th == handle || !trigger.Filter.Senses(body.Filter) {
				continue
			}

			contact, ok := Collide(body.Shape, body.Position, trigger.Shape, trigger.Position)
			if !ok {
				continue
			}

			w.recordTriggerOverlap(current, triggerPair{body: handle, trigger: bodyTrigger(th)}, contact)
		}
	}

	// pairs that overlapped last tick but not anymore have separated; no
	// contact data is available for those
	for pair := range w.triggers.previous {
		if _, stillOverlapping := current[pair]; stillOverlapping {
			continue
		}

		w.events = append(w.events, Event{
			Kind:    EventTriggerExit,
			A:       pair.body,
			Trigger: pair.trigger,
		})
	}

	w.triggers.previous = current
}

func (w *World) recordTriggerOverlap(current map[triggerPair]struct{}, pair triggerPair, contact Contact) {
	current[pair] = struct{}{}

	kind := EventTriggerEnter
	if _, wasOverlapping := w.triggers.previous[pair]; wasOverlapping {
		kind = EventTriggerStay
	}

	w.events = append(w.events, Event{
		Kind:        kind,
		A:           pair.body,
		Trigger:     pair.trigger,
		Point:       contact.Point,
		Normal:      contact.Normal,
		Penetration: contact.Penetration,
	})
}
