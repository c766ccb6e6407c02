package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/keygen/internal/config"
	"github.com/tdex-network/keygen/pkg/stats"
	"github.com/urfave/cli/v2"
)

var configInitialized bool

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "keygen"
	app.Usage = "deterministic key, address and mnemonic tool"
	app.Before = initApp
	app.After = closeApp
	app.Commands = append(
		app.Commands,
		&strtob58,
		&hextob58,
		&b58tohex,
		&b58randenc,
		&randwif,
		&randpair,
		&wif2addr,
		&hexdumpCmd,
		&unhexdumpCmd,
		&mnRand128,
		&mnRand192,
		&mnRand256,
		&mnStats,
		&mnPrintlist,
		&hex2mn,
		&mn2hex,
		&genaddr,
		&genkeys,
		&listAddresses,
	)
	return app
}

func initApp(c *cli.Context) error {
	if err := config.InitConfig(); err != nil {
		return err
	}
	configInitialized = true
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	if config.GetBool(config.EnableProfilerKey) {
		interval := time.Duration(config.GetInt(config.StatsIntervalKey)) * time.Second
		stats.EnableMemoryStatistics(c.Context, interval, "")
	}
	return nil
}

func closeApp(c *cli.Context) error {
	if !configInitialized {
		return nil
	}
	statsFile := config.GetStatsFile()
	if statsFile == "" {
		return nil
	}
	if err := stats.DumpPrometheusDefaults(statsFile); err != nil {
		log.WithError(err).Warn("failed to dump statistics")
	}
	return nil
}

// readInput returns the first argument of the command or, if missing, the
// first line read from the app reader.
func readInput(c *cli.Context) (string, error) {
	if c.NArg() > 0 {
		return c.Args().First(), nil
	}
	if c.App.Reader == nil {
		return "", &invalidUsageError{c, c.Command.Name}
	}

	line, err := bufio.NewReader(c.App.Reader).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", &invalidUsageError{c, c.Command.Name}
	}
	return line, nil
}

func printLine(c *cli.Context, a ...interface{}) {
	fmt.Fprintln(c.App.Writer, a...)
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[keygen] %v\n", err)
	}
	os.Exit(1)
}
