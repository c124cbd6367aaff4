package glome

import (
	"fmt"
	"iter"
)

// Handle references a body owned by the world. A handle is valid as long as
// the slot it points at still carries the same generation; removing a body
// bumps the slot's generation, so stale handles can never alias a later
// occupant of the same slot.
type Handle struct {
	index      uint32
	generation uint32
}

// NoHandle is the zero Handle. It never refers to a live body.
var NoHandle = Handle{}

func (h Handle) String() string {
	return fmt.Sprintf("body(%d:%d)", h.index, h.generation)
}

// StaticIndex references a static collider. Static colliders are add only,
// the index stays valid for the lifetime of the world.
type StaticIndex int

type bodySlot struct {
	body       Body
	generation uint32
	live       bool
}

// registry owns all bodies and static colliders. It is the only place where
// simulation state is created or destroyed.
type registry struct {
	slots    []bodySlot
	freeList []uint32
	liveBody int

	statics []StaticCollider
}

// add stores body and returns a fresh handle to it.
func (r *registry) add(body Body) Handle {
	r.liveBody++

	if n := len(r.freeList); n > 0 {
		idx := r.freeList[n-1]
		r.freeList = r.freeList[:n-1]

		slot := &r.slots[idx]
		slot.body = body
		slot.live = true
		return Handle{index: idx, generation: slot.generation}
	}

	// generation starts at 1 so the zero Handle is never valid
	r.slots = append(r.slots, bodySlot{body: body, generation: 1, live: true})
	return Handle{index: uint32(len(r.slots) - 1), generation: 1}
}

// remove invalidates the handle and returns the stored body. Removing a
// stale or out of range handle is a routine no-op.
func (r *registry) remove(h Handle) (Body, bool) {
	slot := r.slot(h)
	if slot == nil {
		return Body{}, false
	}

	body := slot.body
	slot.body = Body{}
	slot.live = false
	slot.generation++
	r.liveBody--
	r.freeList = append(r.freeList, h.index)
	return body, true
}

// get returns the body behind h, or nil if h is stale or out of range.
func (r *registry) get(h Handle) *Body {
	if slot := r.slot(h); slot != nil {
		return &slot.body
	}
	return nil
}

func (r *registry) slot(h Handle) *bodySlot {
	if int(h.index) >= len(r.slots) {
		return nil
	}
	slot := &r.slots[h.index]
	if !slot.live || slot.generation != h.generation {
		return nil
	}
	return slot
}

func (r *registry) addStatic(collider StaticCollider) StaticIndex {
	r.statics = append(r.statics, collider)
	return StaticIndex(len(r.statics) - 1)
}

func (r *registry) static(idx StaticIndex) *StaticCollider {
	if idx < 0 || int(idx) >= len(r.statics) {
		return nil
	}
	return &r.statics[idx]
}

// bodies iterates over all live bodies.
func (r *registry) bodies() iter.Seq2[Handle, *Body] {
	return func(yield func(Handle, *Body) bool) {
		for idx := range r.slots {
			slot := &r.slots[idx]
			if !slot.live {
				continue
			}
			h := Handle{index: uint32(idx), generation: slot.generation}
			if !yield(h, &slot.body) {
				return
			}
		}
	}
}
