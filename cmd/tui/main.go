// Command tui plays pairs in the terminal.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pairs/internal/clock"
	"github.com/robalobadob/pairs/internal/game"
	"github.com/robalobadob/pairs/internal/settings"
)

// signalBuffer absorbs a full deal's worth of render callbacks.
const signalBuffer = 256

func main() {
	cols := flag.Int("cols", 13, "board width in cards (2-13)")
	maxRank := flag.Int("max-rank", 13, "highest rank dealt (1-13)")
	color := flag.Bool("color", false, "pairs must also match suit colour")
	seed := flag.Uint64("seed", 0, "deal seed (0 for a random deal)")
	debug := flag.Bool("debug", false, "log to pairs-tui.log")
	flag.Parse()

	// the terminal belongs to the UI
	zerolog.SetGlobalLevel(zerolog.Disabled)
	if *debug {
		f, err := tea.LogToFile("pairs-tui.log", "")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
	}

	form := settings.Form{
		Columns:        strconv.Itoa(*cols),
		MaxRank:        *maxRank,
		ColorSensitive: *color,
	}
	if *seed != 0 {
		form.Seed = seed
	}

	signals := make(sink, signalBuffer)
	table := game.NewTable(clock.Real{}, game.WithRenderer(signals), game.WithPresenter(signals))

	m := NewModel(table, form, signals)
	if m.err != "" {
		fmt.Fprintln(os.Stderr, m.err)
		os.Exit(2)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
