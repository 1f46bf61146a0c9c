package arena

import "github.com/vovakirdan/brickfall/internal/breakout"

// contactKey is an ordered contact pair. Mover is the moving body (the
// ball), Other the body it touches.
type contactKey struct {
	Mover breakout.BodyID
	Other breakout.BodyID
}

// collisionTracker remembers which pairs are touching so a contact produces
// one begin event until the bodies separate. It is not safe for concurrent
// use; the world is stepped from one goroutine.
type collisionTracker struct {
	active map[contactKey]bool
}

func newCollisionTracker() *collisionTracker {
	return &collisionTracker{active: make(map[contactKey]bool)}
}

// Begin registers a contact and reports whether it is new.
func (ct *collisionTracker) Begin(key contactKey) bool {
	if ct.active[key] {
		return false
	}
	ct.active[key] = true
	return true
}

// End forgets a contact once the bodies no longer overlap.
func (ct *collisionTracker) End(key contactKey) {
	delete(ct.active, key)
}

// Forget drops every contact involving id.
func (ct *collisionTracker) Forget(id breakout.BodyID) {
	for key := range ct.active {
		if key.Mover == id || key.Other == id {
			delete(ct.active, key)
		}
	}
}
