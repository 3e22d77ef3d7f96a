// evtspy inspects tkbind event relays: it tails a relay topic in a
// terminal UI and prints the wire schema relay consumers validate
// against.
package main

import (
	"log/slog"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/phsym/zeroslog"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var log zerolog.Logger

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Stamp}
	log = zerolog.New(output).With().Timestamp().Logger()
	slog.SetDefault(slog.New(
		zeroslog.NewHandler(log, &zeroslog.HandlerOptions{Level: slog.LevelInfo}),
	))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "evtspy",
		Short:         "Inspect tkbind event relays",
		SilenceErrors: false,
		SilenceUsage:  true,
	}

	root.AddCommand(newWatchCmd())
	root.AddCommand(newSchemaCmd())

	return root
}
