package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"time"

	"github.com/mo-shahab/go-pong-client/ball"
	"github.com/mo-shahab/go-pong-client/canvas"
	"github.com/mo-shahab/go-pong-client/engine"
	"github.com/mo-shahab/go-pong-client/entity"
	"github.com/mo-shahab/go-pong-client/game"
	"github.com/mo-shahab/go-pong-client/latency"
	"github.com/mo-shahab/go-pong-client/paddle"
	"github.com/mo-shahab/go-pong-client/tictactoe"
	"github.com/mo-shahab/go-pong-client/wsclient"
)

const (
	GamePong      = "pong"
	GameTicTacToe = "tictactoe"
)

type Config struct {
	ServerURL string
	Game      string
	Username  string
	Create    bool
	JoinCode  string

	LogLevel string
	LogFile  string
	Headless bool
	Duration time.Duration

	// arena, same logical size as the server
	Width  float64
	Height float64
	Margin float64

	PaddleLength float64
	PaddleWidth  float64
	PaddleInset  float64
	PaddleSpeed  float64
	BallRadius   float64

	Factor            float64
	FPS               int
	MaxFrameDelta     time.Duration
	SendInterval      time.Duration
	MaxSendIterations int

	PingInterval time.Duration
	PingTimeout  time.Duration
	MaxRTT       time.Duration

	QueueSize        int
	HandshakeTimeout time.Duration
	ResultDelay      time.Duration
	KeyRelease       time.Duration
}

func Default() Config {
	return Config{
		ServerURL: "ws://localhost:8080/pong/ws",
		Game:      GamePong,
		LogLevel:  "info",
		LogFile:   "pong-client.log",

		Width:  canvas.DefaultWidth,
		Height: canvas.DefaultHeight,
		Margin: canvas.DefaultMargin,

		PaddleLength: paddle.DefaultLength,
		PaddleWidth:  paddle.DefaultWidth,
		PaddleInset:  paddle.DefaultInset,
		PaddleSpeed:  paddle.DefaultSpeed,
		BallRadius:   ball.DefaultRadius,

		Factor:            entity.DefaultFactor,
		FPS:               engine.DefaultFPS,
		MaxFrameDelta:     100 * time.Millisecond,
		SendInterval:      game.DefaultSendInterval,
		MaxSendIterations: game.DefaultMaxSendIterations,

		PingInterval: latency.DefaultInterval,
		PingTimeout:  latency.DefaultTimeout,
		MaxRTT:       latency.DefaultMaxRTT,

		QueueSize:        wsclient.DefaultQueueSize,
		HandshakeTimeout: 10 * time.Second,
		ResultDelay:      tictactoe.DefaultResultDelay,
		KeyRelease:       150 * time.Millisecond,
	}
}

// RegisterFlags binds the configurable fields to fs, using the current
// values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.ServerURL, "url", c.ServerURL, "websocket endpoint of the game server")
	fs.StringVar(&c.Game, "game", c.Game, "game to play: pong or tictactoe")
	fs.StringVar(&c.Username, "user", c.Username, "player name as known to the server")
	fs.BoolVar(&c.Create, "create", c.Create, "create a room on connect")
	fs.StringVar(&c.JoinCode, "join", c.JoinCode, "join the room with this code on connect")

	fs.StringVar(&c.LogLevel, "loglevel", c.LogLevel, "log level: trace, debug, info, warn, error, critical, off")
	fs.StringVar(&c.LogFile, "logfile", c.LogFile, "log file used while the terminal UI runs")
	fs.BoolVar(&c.Headless, "headless", c.Headless, "run without the terminal UI and log to stderr")
	fs.DurationVar(&c.Duration, "duration", c.Duration, "stop after this long, 0 runs until interrupted")

	fs.Float64Var(&c.PaddleSpeed, "speed", c.PaddleSpeed, "local paddle speed in pixels per second")
	fs.Float64Var(&c.Factor, "factor", c.Factor, "interpolation factor per frame, in (0,1)")
	fs.IntVar(&c.FPS, "fps", c.FPS, "frames per second")
	fs.DurationVar(&c.SendInterval, "sendinterval", c.SendInterval, "paddle position send interval while a key is held")
	fs.DurationVar(&c.PingInterval, "pinginterval", c.PingInterval, "delay between latency probes")
	fs.DurationVar(&c.PingTimeout, "pingtimeout", c.PingTimeout, "time to wait for a ping echo")
	fs.IntVar(&c.QueueSize, "queuesize", c.QueueSize, "outbound message queue size")
	fs.DurationVar(&c.KeyRelease, "keyrelease", c.KeyRelease, "terminal key release delay")
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", c.ServerURL, err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("invalid url %q: scheme must be ws or wss", c.ServerURL)
	}
	if c.Game != GamePong && c.Game != GameTicTacToe {
		return fmt.Errorf("unknown game %q", c.Game)
	}
	if c.Create && c.JoinCode != "" {
		return errors.New("-create and -join are exclusive")
	}
	if err := entity.ValidateFactor(c.Factor); err != nil {
		return err
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.Width <= 0 || c.Height <= 2*c.Margin+c.PaddleLength {
		return fmt.Errorf("arena %vx%v too small for margin %v and paddle %v", c.Width, c.Height, c.Margin, c.PaddleLength)
	}
	if c.PaddleSpeed <= 0 {
		return fmt.Errorf("paddle speed must be positive, got %v", c.PaddleSpeed)
	}
	if c.SendInterval <= 0 || c.MaxSendIterations <= 0 {
		return errors.New("send interval and iterations must be positive")
	}
	if c.PingInterval <= 0 || c.PingTimeout <= 0 || c.MaxRTT <= 0 {
		return errors.New("ping interval, timeout and max rtt must be positive")
	}
	if c.QueueSize <= 0 {
		return fmt.Errorf("queue size must be positive, got %d", c.QueueSize)
	}
	return nil
}

func (c *Config) GameOptions() game.Options {
	return game.Options{
		Canvas: canvas.New(c.Width, c.Height, c.Margin),
		Paddle: paddle.Paddle{
			Length: c.PaddleLength,
			Width:  c.PaddleWidth,
			Speed:  c.PaddleSpeed,
		},
		PaddleInset:       c.PaddleInset,
		BallRadius:        c.BallRadius,
		Factor:            c.Factor,
		SendInterval:      c.SendInterval,
		MaxSendIterations: c.MaxSendIterations,
		MaxFrameDelta:     c.MaxFrameDelta,
		Latency: latency.Config{
			Interval: c.PingInterval,
			Timeout:  c.PingTimeout,
			MaxRTT:   c.MaxRTT,
		},
		LocalName: c.Username,
	}
}

func (c *Config) ClientOptions() wsclient.Options {
	return wsclient.Options{
		QueueSize:        c.QueueSize,
		HandshakeTimeout: c.HandshakeTimeout,
	}
}
