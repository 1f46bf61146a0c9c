package breakout

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

type fakeBody struct {
	id       BodyID
	pos      mgl64.Vec3
	vel      mgl64.Vec3
	angular  mgl64.Vec3
	setCalls int
}

func (b *fakeBody) ID() BodyID                      { return b.id }
func (b *fakeBody) Position() mgl64.Vec3            { return b.pos }
func (b *fakeBody) SetPosition(p mgl64.Vec3)        { b.pos = p }
func (b *fakeBody) Velocity() mgl64.Vec3            { return b.vel }
func (b *fakeBody) SetAngularVelocity(v mgl64.Vec3) { b.angular = v }
func (b *fakeBody) AddForce(v mgl64.Vec3)           { b.vel = b.vel.Add(v) }
func (b *fakeBody) SetVelocity(v mgl64.Vec3)        { b.vel = v; b.setCalls++ }

type fakeBrickBody struct {
	id         BodyID
	pos        mgl64.Vec3
	appearance BrickType
	health     float64
	destroyed  int
}

func (b *fakeBrickBody) ID() BodyID               { return b.id }
func (b *fakeBrickBody) Position() mgl64.Vec3     { return b.pos }
func (b *fakeBrickBody) SetPosition(p mgl64.Vec3) { b.pos = p }
func (b *fakeBrickBody) Destroy()                 { b.destroyed++ }
func (b *fakeBrickBody) SetAppearance(t BrickType, health float64) {
	b.appearance = t
	b.health = health
}

// fakeWorld hands out bodies and records collision subscriptions without
// simulating anything.
type fakeWorld struct {
	nextID  BodyID
	ball    *fakeBody
	paddle  *fakeBody
	spawned []*fakeBrickBody
	subs    map[BodyID][]*func(CollisionEvent)
	failAt  int // spawn number that fails, 1-based; 0 never fails
}

func newFakeWorld() *fakeWorld {
	w := &fakeWorld{subs: make(map[BodyID][]*func(CollisionEvent))}
	w.paddle = &fakeBody{id: w.newID(), pos: mgl64.Vec3{0, 0, -5}}
	w.ball = &fakeBody{id: w.newID()}
	return w
}

func (w *fakeWorld) newID() BodyID {
	w.nextID++
	return w.nextID
}

func (w *fakeWorld) BallBody() RigidBody   { return w.ball }
func (w *fakeWorld) PaddleBody() Transform { return w.paddle }

func (w *fakeWorld) SpawnBrick(pos mgl64.Vec3) (BrickBody, error) {
	if w.failAt > 0 && len(w.spawned)+1 == w.failAt {
		w.failAt = 0
		return nil, errors.New("spawn failed")
	}
	b := &fakeBrickBody{id: w.newID(), pos: pos}
	w.spawned = append(w.spawned, b)
	return b, nil
}

func (w *fakeWorld) Subscribe(id BodyID, fn func(CollisionEvent)) func() {
	p := &fn
	w.subs[id] = append(w.subs[id], p)
	return func() {
		list := w.subs[id]
		for i, q := range list {
			if q == p {
				w.subs[id] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// collide delivers a collision-begin event to both bodies.
func (w *fakeWorld) collide(a BodyID, aCat Category, b BodyID, bCat Category) {
	w.deliver(CollisionEvent{Subject: a, Other: b, Category: bCat})
	w.deliver(CollisionEvent{Subject: b, Other: a, Category: aCat})
}

func (w *fakeWorld) deliver(ev CollisionEvent) {
	list := append([]*func(CollisionEvent){}, w.subs[ev.Subject]...)
	for _, fn := range list {
		(*fn)(ev)
	}
}

func (w *fakeWorld) subscribers(id BodyID) int {
	return len(w.subs[id])
}

func (w *fakeWorld) aliveBricks() []*fakeBrickBody {
	var out []*fakeBrickBody
	for _, b := range w.spawned {
		if b.destroyed == 0 {
			out = append(out, b)
		}
	}
	return out
}
