package glome

import (
	"github.com/oliverbestmann/glome/gm"
)

// EventKind discriminates the collision and trigger events a tick can emit.
type EventKind uint8

const (
	// EventBodyVsBody is a resolved contact between two dynamic or
	// kinematic bodies.
	EventBodyVsBody EventKind = iota

	// EventBodyVsStatic is a resolved contact between a body and a static
	// collider.
	EventBodyVsStatic

	// EventTriggerEnter fires on the first tick a body overlaps a trigger.
	EventTriggerEnter

	// EventTriggerStay fires on every following tick the overlap holds.
	EventTriggerStay

	// EventTriggerExit fires on the first tick after the overlap ends. It
	// carries no contact data, the shapes have already separated.
	EventTriggerExit
)

func (k EventKind) String() string {
	switch k {
	case EventBodyVsBody:
		return "body-vs-body"
	case EventBodyVsStatic:
		return "body-vs-static"
	case EventTriggerEnter:
		return "trigger-enter"
	case EventTriggerStay:
		return "trigger-stay"
	case EventTriggerExit:
		return "trigger-exit"
	default:
		return "unknown"
	}
}

// TriggerRef identifies the trigger side of a trigger event. A trigger is
// either a static collider or a body flagged as Trigger.
type TriggerRef struct {
	// Body is set if the trigger is a body; otherwise it is NoHandle.
	Body Handle

	// Static is set if the trigger is a static collider; otherwise it is
	// negative.
	Static StaticIndex
}

func bodyTrigger(h Handle) TriggerRef {
	return TriggerRef{Body: h, Static: -1}
}

func staticTrigger(idx StaticIndex) TriggerRef {
	return TriggerRef{Static: idx}
}

// IsStatic reports whether the trigger is a static collider.
func (t TriggerRef) IsStatic() bool {
	return t.Static >= 0
}

// Event is one collision or trigger occurrence within a tick. Which fields
// carry data depends on Kind: contact events fill A/B or A/Static plus the
// contact fields, trigger events fill A and Trigger.
type Event struct {
	Kind EventKind

	// A is the (first) body involved.
	A Handle

	// B is the second body for EventBodyVsBody.
	B Handle

	// Static is the static collider for EventBodyVsStatic.
	Static StaticIndex

	// Trigger identifies the trigger volume for the trigger events.
	Trigger TriggerRef

	// Contact data, valid for everything except EventTriggerExit.
	Point       gm.Vec4
	Normal      gm.Vec4
	Penetration float32
}
