// Package uci implements the UCI wire protocol: a line-oriented command
// reader, id/uciok/readyok/info/bestmove writers, and setoption dispatch.
package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vchizhov/corvid/internal/board"
	"github.com/vchizhov/corvid/internal/engine"
)

const initialPositionFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Engine is the subset of *engine.Engine the protocol drives, kept as an
// interface so the wire handling can be tested without a real search.
type Engine interface {
	Prepare()
	Clear()
	Search(ctx context.Context, pos engine.Position, limits engine.Limits, progress func(engine.Info)) engine.Info
}

// Protocol owns the engine, the option table, and the current position
// (base FEN plus moves played since), mirroring the teacher's pkg/uci.Protocol.
type Protocol struct {
	name    string
	author  string
	version string
	options []Option
	engine  Engine
	logger  zerolog.Logger

	position engine.Position
	thinking bool
	cancel   context.CancelFunc
	output   chan engine.Info
}

// New constructs a protocol handler starting from the initial position.
func New(name, author, version string, eng Engine, options []Option, logger zerolog.Logger) *Protocol {
	return &Protocol{
		name:     name,
		author:   author,
		version:  version,
		engine:   eng,
		options:  options,
		logger:   logger,
		position: engine.Position{FEN: initialPositionFen},
	}
}

// Run reads commands from r and writes UCI replies to w (stdout in
// production; logging always goes to the logger, never to w, so engine
// chatter never corrupts the wire protocol).
func (p *Protocol) Run(r *bufio.Scanner, w *bufio.Writer) {
	commands := make(chan string)
	go func() {
		defer close(commands)
		for r.Scan() {
			line := r.Text()
			if line == "quit" {
				return
			}
			if line != "" {
				commands <- line
			}
		}
	}()

	var lastInfo engine.Info
	for {
		select {
		case info, ok := <-p.output:
			if ok {
				lastInfo = info
				fmt.Fprintln(w, infoToUci(info))
				w.Flush()
				continue
			}
			fmt.Fprintln(w, bestMoveLine(lastInfo))
			w.Flush()
			p.thinking = false
			p.cancel = nil
			p.output = nil
			lastInfo = engine.Info{}
		case line, ok := <-commands:
			if !ok {
				return
			}
			if err := p.handle(line, w); err != nil {
				p.logger.Error().Err(err).Str("command", line).Msg("uci command failed")
			}
		}
	}
}

func (p *Protocol) handle(line string, w *bufio.Writer) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := fields[0], fields[1:]

	if p.thinking {
		if name == "stop" {
			p.cancel()
			return nil
		}
		if name == "quit" {
			p.cancel()
			return nil
		}
		return errors.New("uci: command received while search in progress")
	}

	switch name {
	case "uci":
		return p.uciCommand(w)
	case "setoption":
		return p.setOptionCommand(args)
	case "isready":
		return p.isReadyCommand(w)
	case "position":
		return p.positionCommand(args)
	case "go":
		return p.goCommand(args)
	case "ucinewgame":
		p.engine.Clear()
		return nil
	case "ponderhit":
		return errors.New("uci: ponder is not supported")
	case "stop":
		return nil // no search running; nothing to stop
	}
	return fmt.Errorf("uci: unrecognized command %q", name)
}

func (p *Protocol) uciCommand(w *bufio.Writer) error {
	fmt.Fprintf(w, "id name %s %s\n", p.name, p.version)
	fmt.Fprintf(w, "id author %s\n", p.author)
	for _, opt := range p.options {
		fmt.Fprintln(w, opt.UciString())
	}
	fmt.Fprintln(w, "uciok")
	return w.Flush()
}

func (p *Protocol) setOptionCommand(args []string) error {
	// setoption name <id> [value <x>]
	nameIdx := indexOf(args, "name")
	valueIdx := indexOf(args, "value")
	if nameIdx != 0 {
		return errors.New("uci: malformed setoption command")
	}
	var optName, optValue string
	if valueIdx >= 0 {
		optName = strings.Join(args[nameIdx+1:valueIdx], " ")
		optValue = strings.Join(args[valueIdx+1:], " ")
	} else {
		optName = strings.Join(args[nameIdx+1:], " ")
	}
	for _, opt := range p.options {
		if strings.EqualFold(opt.UciName(), optName) {
			return opt.Set(optValue)
		}
	}
	return fmt.Errorf("uci: unknown option %q", optName)
}

func (p *Protocol) isReadyCommand(w *bufio.Writer) error {
	p.engine.Prepare()
	fmt.Fprintln(w, "readyok")
	return w.Flush()
}

func (p *Protocol) positionCommand(args []string) error {
	if len(args) == 0 {
		return errors.New("uci: empty position command")
	}
	movesIdx := indexOf(args, "moves")
	var fen string
	switch args[0] {
	case "startpos":
		fen = initialPositionFen
	case "fen":
		if movesIdx == -1 {
			fen = strings.Join(args[1:], " ")
		} else {
			fen = strings.Join(args[1:movesIdx], " ")
		}
	default:
		return errors.New("uci: position command must start with startpos or fen")
	}

	var moves []string
	if movesIdx >= 0 && movesIdx+1 < len(args) {
		moves = args[movesIdx+1:]
	}

	// Validate the move chain eagerly so a bad position command is reported
	// immediately rather than failing deep inside the next `go`.
	b := board.New(fen)
	if err := b.ApplyUCIMoves(moves); err != nil {
		return err
	}

	p.position = engine.Position{FEN: fen, Moves: moves}
	return nil
}

func (p *Protocol) goCommand(args []string) error {
	limits := parseLimits(args)
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.thinking = true
	p.output = make(chan engine.Info, 4)

	position := p.position
	go func() {
		result := p.engine.Search(ctx, position, limits, func(info engine.Info) {
			select {
			case p.output <- info:
			default:
			}
		})
		p.output <- result
		close(p.output)
	}()
	return nil
}

func parseLimits(args []string) (limits engine.Limits) {
	atoi := func(s string) int {
		v, _ := strconv.Atoi(s)
		return v
	}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "wtime":
			i++
			limits.WhiteTime = atoi(args[i])
		case "btime":
			i++
			limits.BlackTime = atoi(args[i])
		case "winc":
			i++
			limits.WhiteIncrement = atoi(args[i])
		case "binc":
			i++
			limits.BlackIncrement = atoi(args[i])
		case "movestogo":
			i++
			limits.MovesToGo = atoi(args[i])
		case "depth":
			i++
			limits.Depth = atoi(args[i])
		case "nodes":
			i++
			limits.Nodes = atoi(args[i])
		case "movetime":
			i++
			limits.MoveTime = atoi(args[i])
		case "infinite":
			limits.Infinite = true
		}
	}
	return
}

func infoToUci(info engine.Info) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "info depth %d seldepth %d", info.Depth, info.SelDepth)
	if info.Score.Mate != 0 {
		fmt.Fprintf(&sb, " score mate %d", info.Score.Mate)
	} else {
		fmt.Fprintf(&sb, " score cp %d", info.Score.Centipawns)
	}
	nps := info.Nodes * 1000 / (info.Elapsed + 1)
	fmt.Fprintf(&sb, " nodes %d time %d nps %d", info.Nodes, info.Elapsed, nps)
	if len(info.PV) != 0 {
		sb.WriteString(" pv")
		for _, m := range info.PV {
			sb.WriteString(" ")
			sb.WriteString(m.String())
		}
	}
	return sb.String()
}

// bestMoveLine renders the terminal `bestmove` reply for the last Info the
// search produced.
func bestMoveLine(info engine.Info) string {
	if len(info.PV) == 0 {
		return "bestmove 0000"
	}
	return "bestmove " + info.PV[0].String()
}

func indexOf(args []string, token string) int {
	for i, a := range args {
		if a == token {
			return i
		}
	}
	return -1
}
