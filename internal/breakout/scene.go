package breakout

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickfall/internal/config"
)

// Scene is a fully wired game: entities bound to the bodies of a physics
// world and driven by one Session.
type Scene struct {
	Session *Session
	Paddle  *Paddle
	Ball    *Ball
	Level   *Level

	unsubs []func()
}

// NewScene builds the entities for world and subscribes them to its
// collision events. The caller drives Session as a Simulation.
func NewScene(cfg config.Config, world World, rng *rand.Rand, logger *log.Logger) *Scene {
	logger = orDiscard(logger)
	sc := &Scene{}

	var (
		ballBody   RigidBody
		paddleBody Transform
		spawner    BrickSpawner
		collisions CollisionSource
	)
	if world != nil {
		ballBody = world.BallBody()
		paddleBody = world.PaddleBody()
		spawner = world
		collisions = world
	} else {
		logger.Error("scene has no physics world")
	}

	sc.Paddle = NewPaddle(cfg.Paddle, paddleBody, logger.WithPrefix("paddle"))
	sc.Ball = NewBall(cfg.Ball, ballBody, logger.WithPrefix("ball"))
	sc.Level = NewLevel(cfg.Level, spawner, collisions, rng, logger.WithPrefix("level"))
	sc.Session = NewSession(cfg, Collaborators{
		Paddle: sc.Paddle,
		Ball:   sc.Ball,
		Level:  sc.Level,
	}, logger.WithPrefix("session"))

	if collisions != nil && ballBody != nil {
		sc.unsubs = append(sc.unsubs, collisions.Subscribe(ballBody.ID(), sc.Ball.HandleCollision))
	}
	return sc
}

// Close drops the scene's collision subscriptions.
func (sc *Scene) Close() {
	for _, unsub := range sc.unsubs {
		unsub()
	}
	sc.unsubs = nil
}
