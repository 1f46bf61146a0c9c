package tui

import (
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickfall/internal/arena"
	"github.com/vovakirdan/brickfall/internal/breakout"
	"github.com/vovakirdan/brickfall/internal/config"
	"github.com/vovakirdan/brickfall/internal/core"
)

// bannerDuration is how long a notification stays in the HUD.
const bannerDuration = 1500 * time.Millisecond

// Options configure one hosted game.
type Options struct {
	Config    config.Config
	Seed      uint64 // 0 picks a random seed
	FPS       int    // frame ticks per second, 0 uses the config frame rate
	Autopilot bool
	Logger    *log.Logger
}

// BrickStat is the per-type breakdown of the current board.
type BrickStat struct {
	Type      breakout.BrickType
	Standing  int
	Destroyed int
	Points    int
}

// Game hosts one scene: the physics world, the session and the loop. It is
// driven by the Bubble Tea model but has no terminal dependency of its own.
type Game struct {
	cfg    config.Config
	seed   uint64
	fps    int
	logger *log.Logger

	world *arena.World
	scene *breakout.Scene
	loop  *arena.Loop
	pilot *arena.Autopilot

	autopilot bool
	banner    string
	bannerTTL time.Duration
	destroyed map[breakout.BrickType]int
	unsubs    []func()
}

// NewGame builds a game ready for its first frame.
func NewGame(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = opts.Config.Loop.FrameRate
	}
	if fps <= 0 {
		fps = 60
	}

	g := &Game{
		cfg:       opts.Config,
		seed:      seed,
		fps:       fps,
		logger:    logger,
		autopilot: opts.Autopilot,
		destroyed: make(map[breakout.BrickType]int),
	}

	g.world = arena.NewWorld(opts.Config.Arena, logger.WithPrefix("arena"))
	g.scene = breakout.NewScene(opts.Config, g.world, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), logger)
	g.loop = arena.NewLoop(g.scene.Session, g.world, opts.Config.Loop.PhysicsStep())
	g.pilot = arena.NewAutopilot(g.scene.Paddle, g.scene.Ball, opts.Config.Arena.PaddleWidth/2,
		rand.New(rand.NewPCG(seed+1, seed)))

	s := g.scene.Session
	g.unsubs = append(g.unsubs,
		s.StateChanged.Subscribe(g.onStateChanged),
		s.LivesChanged.Subscribe(g.onLivesChanged),
		g.scene.Level.BrickDestroyed.Subscribe(g.onBrickDestroyed),
	)

	g.loop.Activate()
	logger.Info("game ready", "seed", seed, "fps", fps)
	return g
}

// Close releases the game's subscriptions.
func (g *Game) Close() {
	for _, unsub := range g.unsubs {
		unsub()
	}
	g.unsubs = nil
	g.scene.Close()
}

func (g *Game) Session() *breakout.Session { return g.scene.Session }
func (g *Game) World() *arena.World        { return g.world }
func (g *Game) Seed() uint64               { return g.seed }
func (g *Game) FPS() int                   { return g.fps }
func (g *Game) Autopilot() bool            { return g.autopilot }
func (g *Game) Banner() string             { return g.banner }

// Dispatch applies a command key. Movement actions are not handled here;
// see SetMoveInput.
func (g *Game) Dispatch(a core.Action) {
	s := g.scene.Session
	switch a {
	case core.ActionLaunch:
		switch s.State() {
		case breakout.StatePlaying:
			s.ManualLaunchBall()
		case breakout.StatePaused:
			s.ResumeGame()
		case breakout.StateGameOver:
			s.RestartGame()
		default:
			s.StartGame()
		}
	case core.ActionStart:
		switch s.State() {
		case breakout.StateMenu, breakout.StateVictory:
			s.StartGame()
		case breakout.StateGameOver:
			s.RestartGame()
		case breakout.StatePaused:
			s.ResumeGame()
		}
	case core.ActionPause:
		switch s.State() {
		case breakout.StatePlaying:
			s.PauseGame()
		case breakout.StatePaused:
			s.ResumeGame()
		}
	case core.ActionRestart:
		if s.State() != breakout.StateMenu {
			s.RestartGame()
		}
	case core.ActionMenu:
		s.ChangeState(breakout.StateMenu)
	case core.ActionAutopilot:
		g.autopilot = !g.autopilot
		if !g.autopilot {
			g.scene.Paddle.SetMoveInput(0, 0)
		}
		g.setBanner(fmt.Sprintf("autopilot %s", onOff(g.autopilot)))
	}
}

// SetMoveInput forwards held movement to the paddle unless the autopilot
// is steering.
func (g *Game) SetMoveInput(x, z float64) {
	if g.autopilot {
		return
	}
	g.scene.Paddle.SetMoveInput(x, z)
}

// Advance runs one frame of real time.
func (g *Game) Advance(frame time.Duration) {
	if g.autopilot {
		g.pilot.Update()
	}
	g.loop.Advance(frame)

	if g.bannerTTL > 0 {
		g.bannerTTL -= frame
		if g.bannerTTL <= 0 {
			g.banner = ""
		}
	}
}

// BrickStats returns the per-type breakdown of the current board.
func (g *Game) BrickStats() []BrickStat {
	stats := []BrickStat{
		{Type: breakout.BrickStandard},
		{Type: breakout.BrickStrong},
		{Type: breakout.BrickIndestructible},
	}
	for _, b := range g.scene.Level.Bricks() {
		st := &stats[b.Type()]
		if b.IsDestroyed() {
			st.Destroyed++
			st.Points += b.ScoreValue()
		} else {
			st.Standing++
		}
	}
	return stats
}

// TotalDestroyed returns the bricks destroyed since the game was created.
func (g *Game) TotalDestroyed() int {
	n := 0
	for _, v := range g.destroyed {
		n += v
	}
	return n
}

func (g *Game) onStateChanged(s breakout.State) {
	switch s {
	case breakout.StateVictory:
		g.setBanner("level cleared")
	case breakout.StateGameOver:
		g.setBanner("game over")
	case breakout.StatePlaying:
		g.setBanner("")
	}
}

func (g *Game) onLivesChanged(lives int) {
	if g.scene.Session.State() == breakout.StatePlaying && lives > 0 {
		g.setBanner(fmt.Sprintf("ball lost, %d left", lives))
	}
}

func (g *Game) onBrickDestroyed(b *breakout.Brick) {
	g.destroyed[b.Type()]++
	if b.ScoreValue() > 0 {
		g.setBanner(fmt.Sprintf("+%d", b.ScoreValue()))
	}
}

func (g *Game) setBanner(text string) {
	g.banner = text
	g.bannerTTL = bannerDuration
}

// Render draws the HUD and the arena onto dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() < 20 || dst.Height() < 8 {
		dst.DrawText(0, 0, "terminal too small", core.ColorRed)
		return
	}

	g.renderHUD(dst)
	vp := g.viewport(dst)
	renderArena(dst, vp, g.world)
	g.renderOverlay(dst, vp)
}

func (g *Game) viewport(dst *core.Screen) core.Viewport {
	a := g.cfg.Arena
	w := a.HalfWidth + a.WallThickness
	d := a.HalfDepth + a.WallThickness
	return core.NewViewport(-w, w, -d, d, 0, 1, dst.Width(), dst.Height()-2)
}

func (g *Game) renderHUD(dst *core.Screen) {
	s := g.scene.Session
	dst.DrawText(1, 0, fmt.Sprintf("SCORE %d", s.Score()), core.ColorWhite)
	lives := fmt.Sprintf("LIVES %d", s.Lives())
	dst.DrawText((dst.Width()-len(lives))/2, 0, lives, core.ColorRed)
	state := s.State().String()
	if g.autopilot {
		state += " [auto]"
	}
	dst.DrawText(dst.Width()-len(state)-1, 0, state, core.ColorCyan)

	if g.banner != "" {
		dst.DrawTextCentered(dst.Height()-1, g.banner, core.ColorYellow)
	}
}

func (g *Game) renderOverlay(dst *core.Screen, vp core.Viewport) {
	s := g.scene.Session
	mid := vp.Top + vp.Height/2

	var lines []string
	switch s.State() {
	case breakout.StateMenu:
		lines = []string{"B R I C K F A L L", "", "space/enter to start"}
	case breakout.StatePlaying:
		if left, ok := s.LaunchCountdown(); ok {
			lines = []string{fmt.Sprintf("launch in %.1fs (space now)", left.Seconds())}
		}
	case breakout.StateGameOver:
		lines = []string{"GAME OVER", fmt.Sprintf("score %d", s.Score())}
		if left, ok := s.RestartCountdown(); ok {
			lines = append(lines, fmt.Sprintf("restarting in %.1fs", left.Seconds()))
		}
	case breakout.StateVictory:
		lines = []string{"LEVEL CLEARED", fmt.Sprintf("score %d", s.Score()), "enter for the next board"}
	}

	y := mid - len(lines)/2
	for i, line := range lines {
		if line != "" {
			dst.DrawTextCentered(y+i, line, core.ColorYellow)
		}
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
