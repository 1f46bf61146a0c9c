package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
)

// shutdownGrace bounds how long Serve waits for open games to end.
const shutdownGrace = 10 * time.Second

// gameKey stores a connection's game in its SSH context.
type gameKey struct{}

// ServerConfig configures the brickfall SSH server.
type ServerConfig struct {
	Address     string        // host:port to listen on
	HostKeyPath string        // generated on first use; "" means ~/.brickfall/host_key
	IdleTimeout time.Duration // disconnect after this long without input

	// Game is copied for every connection. A zero Game.Seed gives each
	// connection its own board.
	Game Options
}

// DefaultServerConfig listens on :23234 with a 30 minute idle timeout.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
	}
}

// Server hosts one independent game per SSH connection.
type Server struct {
	cfg    ServerConfig
	ssh    *ssh.Server
	logger *log.Logger
	games  atomic.Int64
}

// NewServer prepares the host key and the wish middleware chain. It does
// not listen until Serve is called.
func NewServer(cfg ServerConfig, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "brickfall-ssh",
		})
	}

	keyPath, err := resolveHostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(keyPath), 0o700); err != nil {
		return nil, fmt.Errorf("tui: host key directory: %w", err)
	}
	cfg.HostKeyPath = keyPath

	srv := &Server{cfg: cfg, logger: logger}
	srv.ssh, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.startGame),
			srv.trackGame,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: ssh server: %w", err)
	}
	return srv, nil
}

// resolveHostKeyPath expands a leading ~ and fills in the default location.
func resolveHostKeyPath(path string) (string, error) {
	if path != "" && path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("tui: home directory: %w", err)
	}
	if path == "" {
		return filepath.Join(home, ".brickfall", "host_key"), nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// startGame builds the game and model for a connection with a PTY.
func (s *Server) startGame(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		wish.Fatalln(sess, "brickfall needs a terminal: connect with ssh -t")
		return nil, nil
	}

	opts := s.cfg.Game
	opts.Logger = s.logger.With("user", sess.User())
	game := NewGame(opts)
	sess.Context().SetValue(gameKey{}, game)

	return NewModel(game, pty.Window.Width, max(pty.Window.Height-1, 1)),
		[]tea.ProgramOption{tea.WithAltScreen()}
}

// trackGame counts live games and closes a connection's game once its
// program has exited.
func (s *Server) trackGame(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		remote := sess.RemoteAddr().String()
		s.logger.Info("connected", "user", sess.User(), "remote", remote, "games", s.games.Add(1))

		next(sess)

		if game, ok := sess.Context().Value(gameKey{}).(*Game); ok {
			s.logger.Info("game ended", "user", sess.User(),
				"seed", game.Seed(), "score", game.Session().Score())
			game.Close()
		}
		s.logger.Info("disconnected", "user", sess.User(), "remote", remote, "games", s.games.Add(-1))
	}
}

// ActiveGames returns the number of connected players.
func (s *Server) ActiveGames() int64 {
	return s.games.Load()
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Address
}

// Serve listens until ctx is cancelled, then gives open games shutdownGrace
// to finish. A listener failure is returned immediately.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("listening", "address", s.cfg.Address, "host_key", s.cfg.HostKeyPath)

	errc := make(chan error, 1)
	go func() {
		errc <- s.ssh.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("tui: listen %s: %w", s.cfg.Address, err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "games", s.games.Load())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := s.ssh.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("tui: shutdown: %w", err)
	}
	return nil
}
