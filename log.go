package main

import (
	"github.com/decred/slog"

	"github.com/mo-shahab/go-pong-client/engine"
	"github.com/mo-shahab/go-pong-client/game"
	"github.com/mo-shahab/go-pong-client/latency"
	"github.com/mo-shahab/go-pong-client/logger"
	"github.com/mo-shahab/go-pong-client/protocol"
	"github.com/mo-shahab/go-pong-client/tictactoe"
	"github.com/mo-shahab/go-pong-client/wsclient"
)

var log = slog.Disabled

// useLoggers hands every subsystem its logger.
func useLoggers(l *logger.Logging) {
	log = l.Logger("MAIN")
	engine.UseLogger(l.Logger("ENGN"))
	game.UseLogger(l.Logger("GAME"))
	latency.UseLogger(l.Logger("LTCY"))
	protocol.UseLogger(l.Logger("PROT"))
	tictactoe.UseLogger(l.Logger("TTTC"))
	wsclient.UseLogger(l.Logger("WSCL"))
}
