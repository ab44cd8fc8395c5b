package widget

import "time"

// Retain records an outstanding reference to the node, typically an input
// event that has been queued but not yet delivered.
func (t *Tree) Retain(h Handle) bool {
	n := t.get(h)
	if n == nil {
		return false
	}
	n.refs++
	return true
}

// Release drops a reference taken with Retain.
func (t *Tree) Release(h Handle) {
	n := t.get(h)
	if n == nil || n.refs == 0 {
		return
	}
	n.refs--
}

// Refs returns the node's own outstanding reference count.
func (t *Tree) Refs(h Handle) int {
	if n := t.get(h); n != nil {
		return n.refs
	}
	return 0
}

// Destroy requests deferred destruction of the node and its subtree. Nothing
// is freed until Sweep or Collect finds the subtree unreferenced.
func (t *Tree) Destroy(h Handle) {
	n := t.get(h)
	if n == nil {
		return
	}
	n.deletePending = true
	for _, p := range t.pending {
		if p.handle == h {
			return
		}
	}
	t.pending = append(t.pending, destroyRequest{handle: h})
}

// SetDestroyDelay sets how long a destroy request waits before Sweep frees
// it. A request that is still referenced when its delay runs out waits a
// full delay again.
func (t *Tree) SetDestroyDelay(d time.Duration) {
	t.destroyDelay = max(d, 0)
}

// Pending returns the number of destroy requests still waiting.
func (t *Tree) Pending() int {
	return len(t.pending)
}

func (t *Tree) referenced(h Handle) bool {
	n := t.get(h)
	if n == nil {
		return false
	}
	if n.refs > 0 {
		return true
	}
	for _, c := range n.children {
		if t.referenced(c) {
			return true
		}
	}
	return false
}

// Collect frees every destroy request whose subtree holds no references and
// is not in use, whatever its age. Requests that are still referenced stay
// queued. It returns the number of subtrees freed.
func (t *Tree) Collect() int {
	return t.collect(func(*destroyRequest) bool { return true })
}

// Sweep ages every destroy request by elapsed and frees those that have
// waited the destroy delay and are no longer referenced. It returns the
// number of subtrees freed.
func (t *Tree) Sweep(elapsed time.Duration) int {
	return t.collect(func(r *destroyRequest) bool {
		r.age += elapsed
		return r.age >= t.destroyDelay
	})
}

func (t *Tree) collect(due func(*destroyRequest) bool) int {
	if len(t.pending) == 0 {
		return 0
	}
	freed := 0
	keep := t.pending[:0]
	for _, r := range t.pending {
		n := t.get(r.handle)
		if n == nil {
			continue
		}
		if !due(&r) {
			keep = append(keep, r)
			continue
		}
		if n.using || t.referenced(r.handle) {
			t.logger.Debug("widget: destroy deferred, object still referenced", "name", n.name, "refs", n.refs, "using", n.using)
			r.age = 0
			keep = append(keep, r)
			continue
		}
		t.Free(r.handle)
		freed++
	}
	clear(t.pending[len(keep):])
	t.pending = keep
	return freed
}

// Free releases the node and its subtree immediately, detaching it from its
// parent. Handles to freed nodes become invalid.
func (t *Tree) Free(h Handle) {
	n := t.get(h)
	if n == nil {
		return
	}
	if p := t.get(n.parent); p != nil {
		for i, c := range p.children {
			if c == h {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
	}
	t.freeSubtree(h)
}

func (t *Tree) freeSubtree(h Handle) {
	n := t.get(h)
	if n == nil {
		return
	}
	children := n.children
	n.children = nil
	for _, c := range children {
		t.freeSubtree(c)
	}
	gen := n.gen
	t.nodes[h.index] = node{gen: gen}
	t.free = append(t.free, h.index)
}
