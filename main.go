package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/mo-shahab/go-pong-client/config"
	"github.com/mo-shahab/go-pong-client/engine"
	"github.com/mo-shahab/go-pong-client/game"
	"github.com/mo-shahab/go-pong-client/input"
	"github.com/mo-shahab/go-pong-client/logger"
	"github.com/mo-shahab/go-pong-client/protocol"
	"github.com/mo-shahab/go-pong-client/render"
	"github.com/mo-shahab/go-pong-client/tictactoe"
	"github.com/mo-shahab/go-pong-client/tui"
	"github.com/mo-shahab/go-pong-client/wsclient"
)

// frontend is one game bound to the loop.
type frontend struct {
	catalog *protocol.Catalog
	inbound []protocol.Kind
	help    string
	// all funcs below run on the loop
	register       func(*protocol.Dispatcher)
	start          func()
	frame          func(now time.Time) string
	status         func() string
	connectionLost func(error)
	actions        func(post func(func())) tui.Actions
}

func pongFrontend(cfg *config.Config, loop *engine.Loop, out game.Transport) *frontend {
	s := game.NewSession(cfg.GameOptions(), loop, out)
	grid := tui.NewGrid(cfg.GameOptions().Canvas, tui.DefaultCols, tui.DefaultRows)

	return &frontend{
		catalog:  protocol.Pong,
		inbound:  game.InboundKinds,
		help:     tui.PongHelp,
		register: s.Register,
		start: func() {
			s.Start()
			var err error
			switch {
			case cfg.Create:
				err = s.CreateRoom()
			case cfg.JoinCode != "":
				err = s.JoinRoom(cfg.JoinCode)
			}
			if err != nil {
				log.Errorf("Failed to enter a room: %v", err)
			}
		},
		frame: func(now time.Time) string {
			s.Frame(now)
			render.Draw(grid, s.Snapshot())
			return grid.String()
		},
		status: func() string {
			snap := s.Snapshot()
			return fmt.Sprintf("%v room=%q %s %d - %d %s rtt=%v",
				snap.Status, snap.Code, snap.Local.Name, snap.Local.Score,
				snap.Opponent.Score, snap.Opponent.Name, snap.RTT)
		},
		connectionLost: s.ConnectionLost,
		actions: func(post func(func())) tui.Actions {
			return tui.Actions{
				Key:     func(ev input.KeyEvent) { post(func() { s.Key(ev) }) },
				Dismiss: func() { post(s.DismissNotice) },
				Create: func() {
					post(func() {
						if err := s.CreateRoom(); err != nil {
							log.Errorf("Failed to create room: %v", err)
						}
					})
				},
				Resize: func(cols, rows int) { post(func() { grid.Resize(cols, rows) }) },
			}
		},
	}
}

func ticTacToeFrontend(cfg *config.Config, loop *engine.Loop, out tictactoe.Transport) *frontend {
	g := tictactoe.New(cfg.Username, loop, out)
	g.SetResultDelay(cfg.ResultDelay)

	return &frontend{
		catalog:  protocol.TicTacToe,
		inbound:  tictactoe.InboundKinds,
		help:     tui.TicTacToeHelp,
		register: g.Register,
		start: func() {
			var err error
			switch {
			case cfg.Create:
				err = g.Create()
			case cfg.JoinCode != "":
				err = g.Join(cfg.JoinCode)
			}
			if err != nil {
				log.Errorf("Failed to enter a game: %v", err)
			}
		},
		frame: func(time.Time) string {
			return tui.Board(g.Snapshot())
		},
		status: func() string {
			snap := g.Snapshot()
			return fmt.Sprintf("game=%q ties=%d result=%v", snap.Code, snap.Ties, snap.Result)
		},
		connectionLost: g.ConnectionLost,
		actions: func(post func(func())) tui.Actions {
			return tui.Actions{
				Dismiss: func() { post(g.DismissNotice) },
				Create: func() {
					post(func() {
						if err := g.Create(); err != nil {
							log.Errorf("Failed to create game: %v", err)
						}
					})
				},
				Play: func(row, col int) {
					post(func() {
						if err := g.Play(row, col); err != nil {
							log.Warnf("Play %d,%d: %v", row, col, err)
						}
					})
				},
			}
		},
	}
}

func realMain() error {
	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		return err
	}

	var (
		logs *logger.Logging
		err  error
	)
	if cfg.Headless {
		logs, err = logger.New(os.Stderr, cfg.LogLevel)
	} else {
		logs, err = logger.OpenFile(cfg.LogFile, cfg.LogLevel)
	}
	if err != nil {
		return err
	}
	defer logs.Close()
	useLoggers(logs)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if cfg.Duration > 0 {
		ctx, cancel = context.WithTimeout(ctx, cfg.Duration)
		defer cancel()
	}

	client, err := wsclient.Dial(ctx, cfg.ServerURL, cfg.ClientOptions())
	if err != nil {
		return err
	}
	defer client.Close()

	loop := engine.NewLoop(cfg.FPS, engine.DefaultQueueSize)

	var fe *frontend
	switch cfg.Game {
	case config.GameTicTacToe:
		fe = ticTacToeFrontend(&cfg, loop, client)
	default:
		fe = pongFrontend(&cfg, loop, client)
	}

	dispatcher := protocol.NewDispatcher(protocol.NewCodec(fe.catalog))
	fe.register(dispatcher)
	if missing := dispatcher.Missing(fe.inbound...); len(missing) > 0 {
		log.Warnf("No handlers for %v", missing)
	}

	g, ctx := errgroup.WithContext(ctx)

	// latest frame only, older ones are dropped
	frames := make(chan string, 1)
	publish := func(v string) {
		select {
		case <-frames:
		default:
		}
		frames <- v
	}

	var frameNo uint64
	statusEvery := uint64(cfg.FPS)
	loop.SetFrame(func(now time.Time) {
		view := fe.frame(now)
		frameNo++
		if cfg.Headless {
			if frameNo%statusEvery == 0 {
				log.Debugf("%s", fe.status())
			}
			return
		}
		publish(view)
	})

	g.Go(func() error {
		err := loop.Run(ctx)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		return err
	})
	loop.Post(fe.start)

	g.Go(func() error {
		err := client.Run(ctx, func(b []byte) {
			loop.Post(func() { dispatcher.HandleFrame(b) })
		})
		if err == nil && ctx.Err() != nil {
			return nil
		}
		if err == nil {
			err = wsclient.ErrClosed
		}
		// keep rendering with the room frozen
		loop.Post(func() { fe.connectionLost(err) })
		return nil
	})

	if cfg.Headless {
		g.Go(func() error {
			<-ctx.Done()
			loop.Stop()
			return nil
		})
		return g.Wait()
	}

	post := func(fn func()) { loop.Post(fn) }
	actions := fe.actions(post)
	actions.Quit = cancel
	model := tui.NewModel(actions, cfg.KeyRelease, fe.help)
	prog := tea.NewProgram(model, tea.WithContext(ctx))

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case v := <-frames:
				prog.Send(tui.FrameMsg{View: v})
			}
		}
	})
	g.Go(func() error {
		_, err := prog.Run()
		cancel()
		loop.Stop()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})

	return g.Wait()
}

func main() {
	err := realMain()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
