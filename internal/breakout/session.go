package breakout

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickfall/internal/config"
)

// Collaborators are the entities a Session drives. Any of them may be nil;
// the session logs and skips whatever depends on a missing one.
type Collaborators struct {
	Paddle *Paddle
	Ball   *Ball
	Level  *Level
}

// Session is the game state controller. It owns score, lives and the state
// machine, and schedules the delayed launch and auto-restart.
type Session struct {
	cfg        config.Config
	paddle     *Paddle
	ball       *Ball
	level      *Level
	difficulty *config.DifficultyManager
	scheduler  *Scheduler
	logger     *log.Logger

	state     State
	score     int
	lives     int
	ready     bool
	timeScale float64

	StateChanged Event[State]
	ScoreChanged Event[int]
	LivesChanged Event[int]
}

var _ Simulation = (*Session)(nil)

// NewSession creates a session in the Menu state and subscribes it to ball
// loss and brick destruction.
func NewSession(cfg config.Config, c Collaborators, logger *log.Logger) *Session {
	s := &Session{
		cfg:        cfg,
		paddle:     c.Paddle,
		ball:       c.Ball,
		level:      c.Level,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		scheduler:  NewScheduler(),
		logger:     orDiscard(logger),
		state:      StateMenu,
		lives:      cfg.Session.StartingLives,
		timeScale:  1,
	}

	if s.paddle == nil {
		s.logger.Error("session has no paddle")
	}
	if s.ball == nil {
		s.logger.Error("session has no ball")
	} else {
		s.ball.Lost.Subscribe(func(*Ball) { s.OnBallLost() })
	}
	if s.level == nil {
		s.logger.Error("session has no level")
	} else {
		s.level.BrickDestroyed.Subscribe(s.HandleBrickDestroyed)
	}
	return s
}

func (s *Session) State() State            { return s.state }
func (s *Session) Score() int              { return s.score }
func (s *Session) Lives() int              { return s.lives }
func (s *Session) TimeScale() float64      { return s.timeScale }
func (s *Session) BallReadyToLaunch() bool { return s.ready }
func (s *Session) Level() *Level           { return s.level }
func (s *Session) Ball() *Ball             { return s.ball }
func (s *Session) Paddle() *Paddle         { return s.paddle }
func (s *Session) Config() config.Config   { return s.cfg }
func (s *Session) Elapsed() time.Duration  { return s.scheduler.Now() }
func (s *Session) launchPending() bool     { return s.scheduler.Pending(slotLaunch) }
func (s *Session) restartPending() bool    { return s.scheduler.Pending(slotRestart) }

// LaunchCountdown returns the time left before the delayed launch.
func (s *Session) LaunchCountdown() (time.Duration, bool) {
	return s.scheduler.Remaining(slotLaunch)
}

// RestartCountdown returns the time left before the automatic restart.
func (s *Session) RestartCountdown() (time.Duration, bool) {
	return s.scheduler.Remaining(slotRestart)
}

// OnActivate prepares the first board. It leaves the session in Menu
// without announcing a state change.
func (s *Session) OnActivate() {
	if s.paddle != nil {
		s.paddle.OnActivate()
	}
	s.resetPositions()
	if s.level != nil {
		s.level.GenerateRandomLevel()
	}
	s.resetGame()
	s.logger.Info("session activated", "state", s.state)
}

// OnFrameTick scales dt by the time scale and advances paddle input and
// pending timers.
func (s *Session) OnFrameTick(dt time.Duration) {
	scaled := time.Duration(float64(dt) * s.timeScale)
	if s.paddle != nil {
		s.paddle.OnFrameTick(scaled)
	}
	s.scheduler.Advance(scaled)
}

// OnPhysicsTick enforces the ball speed.
func (s *Session) OnPhysicsTick(dt time.Duration) {
	if s.ball != nil {
		s.ball.OnPhysicsTick(dt)
	}
}

// ChangeState switches to next and runs its entry action. Switching to the
// current state does nothing.
func (s *Session) ChangeState(next State) {
	if next == s.state {
		return
	}
	prev := s.state
	s.state = next
	s.logger.Info("state changed", "from", prev, "to", next)
	s.StateChanged.Emit(next)

	switch next {
	case StateMenu:
		s.timeScale = 1
		s.ready = false
		s.scheduler.Cancel(slotLaunch)
		s.scheduler.Cancel(slotRestart)
		s.resetGame()
		s.resetPositions()
	case StatePlaying:
		s.timeScale = 1
		s.armLaunch()
	case StatePaused:
		s.timeScale = 0
	case StateGameOver:
		s.ready = false
		s.scheduler.Cancel(slotLaunch)
		s.freezeBall()
		s.scheduler.After(slotRestart, s.cfg.Session.RestartDelay, s.autoRestart)
	case StateVictory:
		s.ready = false
		s.scheduler.Cancel(slotLaunch)
		s.freezeBall()
	}
}

// StartGame begins a new game on the current board, or on a fresh one if
// the current board is already cleared.
func (s *Session) StartGame() {
	s.scheduler.Cancel(slotRestart)
	s.scheduler.Cancel(slotLaunch)
	s.resetGame()
	if s.level != nil && s.level.IsLevelCleared() {
		s.level.GenerateRandomLevel()
	}
	s.resetPositions()
	s.enterPlaying()
}

// RestartGame begins a new game on a fresh board.
func (s *Session) RestartGame() {
	s.scheduler.Cancel(slotRestart)
	s.scheduler.Cancel(slotLaunch)
	if s.level != nil {
		s.level.GenerateRandomLevel()
	}
	s.resetGame()
	s.resetPositions()
	s.enterPlaying()
}

// PauseGame pauses a running game.
func (s *Session) PauseGame() {
	if s.state == StatePlaying {
		s.ChangeState(StatePaused)
	}
}

// ResumeGame resumes a paused game.
func (s *Session) ResumeGame() {
	if s.state == StatePaused {
		s.ChangeState(StatePlaying)
	}
}

// ManualLaunchBall launches the ball immediately instead of waiting for the
// delayed launch.
func (s *Session) ManualLaunchBall() {
	if s.state != StatePlaying || s.ball == nil || s.ball.IsLaunched() {
		return
	}
	s.scheduler.Cancel(slotLaunch)
	s.ready = false
	s.ball.LaunchForward()
}

// OnBallLost takes a life. The last life ends the game; otherwise the ball
// goes back to the paddle for another delayed launch.
func (s *Session) OnBallLost() {
	if s.state != StatePlaying {
		return
	}

	s.lives = max(s.lives-1, 0)
	s.ready = false
	s.logger.Info("ball lost", "lives", s.lives)
	s.LivesChanged.Emit(s.lives)

	if s.lives <= 0 {
		s.ChangeState(StateGameOver)
		return
	}

	s.resetPositions()
	s.scheduler.Cancel(slotLaunch)
	s.armLaunch()
}

// HandleBrickDestroyed scores the brick and checks for victory.
func (s *Session) HandleBrickDestroyed(b *Brick) {
	if b == nil {
		return
	}
	s.AddScore(b.ScoreValue())
	if s.state == StatePlaying && s.level != nil && s.level.IsLevelCleared() {
		s.logger.Info("level cleared", "score", s.score)
		s.ChangeState(StateVictory)
	}
}

// AddScore adds points and announces the new total.
func (s *Session) AddScore(points int) {
	if points <= 0 {
		return
	}
	s.score += points
	s.ScoreChanged.Emit(s.score)
	s.applyDifficulty()
}

func (s *Session) enterPlaying() {
	if s.state == StatePlaying {
		s.scheduler.Cancel(slotLaunch)
		s.armLaunch()
		return
	}
	s.ChangeState(StatePlaying)
}

// armLaunch schedules the delayed launch unless the ball is already moving
// or a launch is already waiting.
func (s *Session) armLaunch() {
	if s.ball == nil {
		s.logger.Error("cannot schedule launch without a ball")
		return
	}
	if s.ball.IsLaunched() || s.launchPending() {
		return
	}
	s.ready = true
	s.scheduler.After(slotLaunch, s.cfg.Session.LaunchDelay, s.delayedLaunch)
}

func (s *Session) delayedLaunch() {
	if s.state != StatePlaying || !s.ready || s.ball == nil || s.ball.IsLaunched() {
		return
	}
	s.ready = false
	s.ball.LaunchForward()
}

func (s *Session) autoRestart() {
	if s.state != StateGameOver {
		return
	}
	s.logger.Info("auto restart")
	s.RestartGame()
}

func (s *Session) resetGame() {
	if s.score != 0 {
		s.score = 0
		s.ScoreChanged.Emit(s.score)
	}
	if s.lives != s.cfg.Session.StartingLives {
		s.lives = s.cfg.Session.StartingLives
		s.LivesChanged.Emit(s.lives)
	}
	s.applyDifficulty()
}

func (s *Session) resetPositions() {
	if s.paddle != nil {
		s.paddle.ResetPosition()
	}
	if s.ball == nil {
		return
	}
	if s.paddle != nil {
		s.ball.ResetToPaddle(s.paddle)
	} else {
		s.ball.ResetBall()
	}
	s.applyDifficulty()
}

func (s *Session) freezeBall() {
	if s.ball != nil {
		s.ball.ResetBall()
	}
}

func (s *Session) applyDifficulty() {
	if s.ball == nil || !s.difficulty.IsEnabled() {
		return
	}
	s.ball.SetSpeed(s.difficulty.Speed(s.cfg.Ball.InitialSpeed, s.score))
}
