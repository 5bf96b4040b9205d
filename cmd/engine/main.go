package main

import (
	"bufio"
	"flag"
	"os"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/vchizhov/corvid/internal/book"
	"github.com/vchizhov/corvid/internal/engine"
	"github.com/vchizhov/corvid/internal/tablebase"
	"github.com/vchizhov/corvid/internal/uci"
)

const (
	name   = "Corvid"
	author = "Corvid contributors"
)

var (
	versionName = "dev"
	flgBook     string
)

func main() {
	flag.StringVar(&flgBook, "book", "", "path to a PolyGlot opening book (.bin)")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	logger.Info().
		Str("version", versionName).
		Str("runtime", runtime.Version()).
		Str("goarch", runtime.GOARCH).
		Str("goos", runtime.GOOS).
		Int("numCPU", runtime.NumCPU()).
		Msg("starting")

	eng := engine.NewEngine()
	if flgBook != "" {
		loadBook(&logger, eng, flgBook)
	}

	bookPath := flgBook
	syzygyPath := ""

	protocol := uci.New(name, author, versionName, eng,
		[]uci.Option{
			&uci.IntOption{Name: "Hash", Min: 1, Max: 1 << 16, Value: &eng.Hash},
			&uci.IntOption{Name: "Threads", Min: 1, Max: runtime.NumCPU(), Value: &eng.Threads},
			&uci.BoolOption{Name: "OwnBook", Value: &eng.Oracle.OwnBook},
			&uci.StringOption{Name: "BookFile", Value: &bookPath, Setter: func(path string) error {
				loadBook(&logger, eng, path)
				return nil
			}},
			&uci.StringOption{Name: "SyzygyPath", Value: &syzygyPath, Setter: func(path string) error {
				logger.Warn().Str("path", path).Msg("no Syzygy decoder available; tablebase probing stays disabled")
				eng.Oracle.Tablebase = tablebase.Unavailable{}
				return nil
			}},
		},
		logger,
	)

	protocol.Run(bufio.NewScanner(os.Stdin), bufio.NewWriter(os.Stdout))
}

func loadBook(logger *zerolog.Logger, eng *engine.Engine, path string) {
	b, err := book.Load(path)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("failed to load opening book")
		return
	}
	eng.Oracle.Book = b
	logger.Info().Str("path", path).Msg("loaded opening book")
}
