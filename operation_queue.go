package silo

type operation struct {
	typ    operationType
	entity Entity
	apply  func()
	create func(*Editor)
}

type operationType int

const (
	opNoop operationType = iota - 1
	opCreate
	opDestroy
	opAddComponent
	opRemoveComponent
)

// opQueue collects structural changes requested while a system runs.
// Creates are applied first, then component changes in request order, then
// destroys.
type opQueue struct {
	createOps      []operation
	componentOps   []operation
	destroyOps     []operation
	pendingDestroy map[Entity]struct{}
	pendingMods    map[Entity][]int
}

func newOpQueue() opQueue {
	return opQueue{
		pendingDestroy: make(map[Entity]struct{}),
		pendingMods:    make(map[Entity][]int),
	}
}

func (q *opQueue) Len() int {
	return len(q.createOps) + len(q.componentOps) + len(q.destroyOps)
}

func (q *opQueue) enqueueCreate(fn func(*Editor)) {
	q.createOps = append(q.createOps, operation{typ: opCreate, create: fn})
}

func (q *opQueue) enqueueComponent(typ operationType, en Entity, apply func()) {
	// The entity is going away; its component changes would be lost anyway.
	if _, doomed := q.pendingDestroy[en]; doomed {
		return
	}
	q.pendingMods[en] = append(q.pendingMods[en], len(q.componentOps))
	q.componentOps = append(q.componentOps, operation{typ: typ, entity: en, apply: apply})
}

func (q *opQueue) enqueueDestroy(en Entity) {
	if _, exists := q.pendingDestroy[en]; exists {
		return
	}
	q.pendingDestroy[en] = struct{}{}
	for _, idx := range q.pendingMods[en] {
		q.componentOps[idx].typ = opNoop
	}
	delete(q.pendingMods, en)
	q.destroyOps = append(q.destroyOps, operation{typ: opDestroy, entity: en})
}

func (q *opQueue) reset() {
	q.createOps = q.createOps[:0]
	q.componentOps = q.componentOps[:0]
	q.destroyOps = q.destroyOps[:0]
	clear(q.pendingDestroy)
	clear(q.pendingMods)
}

// flush applies the queued operations to w. Operations on entities that died
// in the meantime are skipped.
func (w *World) flush() {
	q := &w.queue
	if q.Len() == 0 {
		return
	}
	creates, mods, destroys := len(q.createOps), len(q.componentOps), len(q.destroyOps)
	// Applying may enqueue again only while locked, and the world is unlocked
	// here, so the slices are stable for the whole pass.
	for _, op := range q.createOps {
		op.create(w.Create())
	}
	for _, op := range q.componentOps {
		if op.typ == opNoop || !w.IsAlive(op.entity) {
			continue
		}
		op.apply()
	}
	for _, op := range q.destroyOps {
		if !w.IsAlive(op.entity) {
			continue
		}
		w.Destroy(op.entity)
	}
	q.reset()
	w.logger.Debug().
		Int("creates", creates).
		Int("component_ops", mods).
		Int("destroys", destroys).
		Msg("operation queue flushed")
}
