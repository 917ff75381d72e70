// Command tbprobe loads a Syzygy tablebase directory, probes a single FEN,
// and prints its WDL/DTZ verdict. It exercises Init, ProbeWDL and ProbeDTZ
// of tbcore.Tablebase end to end; RootProbe and RootProbeWDL are not called.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tablebase-go/syzygy/chess"
	"github.com/tablebase-go/syzygy/tbcore"
)

func main() {
	var (
		tbPath = flag.String("path", os.Getenv("SYZYGY_PATH"), "list of tablebase directories separated by ':' (';' on Windows) (default: $SYZYGY_PATH)")
		fen    = flag.String("fen", chess.InitialPositionFen, "FEN of the position to probe")
		debug  = flag.Bool("debug", false, "enable debug-level logging")
	)
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
	log.Logger = logger

	pos, err := chess.NewPositionFromFEN(*fen)
	if err != nil {
		logger.Fatal().Err(err).Str("fen", *fen).Msg("tbprobe: bad fen")
	}

	tb := tbcore.NewTablebase(logger, tbcore.ChessHost{})
	if err := tb.Init(*tbPath); err != nil {
		logger.Fatal().Err(err).Msg("tbprobe: init")
	}
	logger.Info().Int("maxCardinality", tb.MaxCardinality).Msg("tbprobe: ready")

	view := tbcore.WrapPosition(&pos)

	wdl, wSuccess := tb.ProbeWDL(view)
	dtz, dSuccess := tb.ProbeDTZ(view)

	fmt.Printf("fen:  %s\n", *fen)
	fmt.Printf("wdl:  %s (%s)\n", wdlString(wdl), successString(wSuccess))
	fmt.Printf("dtz:  %d (%s)\n", dtz, successString(dSuccess))
}

func wdlString(v tbcore.WDLScore) string {
	switch v {
	case tbcore.WDLLoss:
		return "loss"
	case tbcore.WDLCursedLoss:
		return "cursed loss"
	case tbcore.WDLDraw:
		return "draw"
	case tbcore.WDLCursedWin:
		return "cursed win"
	case tbcore.WDLWin:
		return "win"
	default:
		return "unknown"
	}
}

func successString(s tbcore.Success) string {
	switch s {
	case tbcore.SuccessMiss:
		return "miss"
	case tbcore.SuccessRetryMoveSearch:
		return "retry"
	default:
		return "ok"
	}
}
