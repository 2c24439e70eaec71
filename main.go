package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/danielhkuo/quickly-runoff/ballotio"
	"github.com/danielhkuo/quickly-runoff/cliparse"
	"github.com/danielhkuo/quickly-runoff/db"
	"github.com/danielhkuo/quickly-runoff/irv"
	"github.com/danielhkuo/quickly-runoff/middleware"
	"github.com/danielhkuo/quickly-runoff/report"
	"github.com/danielhkuo/quickly-runoff/router"
)

// Exit statuses of the count command
const (
	exitFailure    = 1
	exitBallotFull = 3
	exitTallyFull  = 4
)

func main() {
	// A missing .env is fine; real environment variables win
	if err := cliparse.LoadEnv(".env"); err != nil {
		slog.Error("failed to load .env", "error", err)
		os.Exit(exitFailure)
	}

	app := newApp()
	if err := app.Run(os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(exitFailure)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "quickly-runoff",
		Usage: "instant runoff elections",
		Commands: []*cli.Command{
			{
				Name:      "count",
				Usage:     "count a ballot file and print the winner",
				ArgsUsage: "[FILE]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "ballots",
						Usage: "print every ballot after the runoff",
					},
					&cli.BoolFlag{
						Name:  "report",
						Usage: "print the count of every round",
					},
				},
				Action: countAction,
			},
			{
				Name:   "serve",
				Usage:  "run the election HTTP service",
				Flags:  cliparse.Flags(),
				Action: serveAction,
			},
		},
	}
}

func countAction(c *cli.Context) error {
	in := io.Reader(os.Stdin)
	if path := c.Args().First(); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return cli.Exit(err, exitFailure)
		}
		defer f.Close()
		in = f
	}

	err := runCount(in, c.App.Writer, c.Bool("ballots"), c.Bool("report"))
	if err != nil {
		return cli.Exit(err, exitCode(err))
	}
	return nil
}

// runCount reads ballots from in, runs the runoff and writes the result to
// out. The last line written is the winner's name or "no winner".
func runCount(in io.Reader, out io.Writer, showBallots, showReport bool) error {
	box, err := ballotio.ReadBox(in)
	if err != nil {
		return fmt.Errorf("failed to read ballots: %w", err)
	}

	outcome, err := irv.Runoff(box)
	if err != nil {
		return fmt.Errorf("failed to count ballots: %w", err)
	}

	if showBallots {
		if err := ballotio.WriteBox(out, box); err != nil {
			return err
		}
	}
	if showReport {
		if err := report.Write(out, outcome); err != nil {
			return err
		}
	}

	winner := report.NoWinner
	if outcome.Decided() {
		winner = outcome.Winner
	}
	_, err = fmt.Fprintln(out, winner)
	return err
}

// exitCode maps an error from runCount to the process exit status
func exitCode(err error) int {
	switch {
	case errors.Is(err, irv.ErrBallotFull):
		return exitBallotFull
	case errors.Is(err, irv.ErrTallyFull):
		return exitTallyFull
	default:
		return exitFailure
	}
}

func serveAction(c *cli.Context) error {
	cfg, err := cliparse.FromContext(c)
	if err != nil {
		return fmt.Errorf("error parsing flags: %w", err)
	}

	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	if err := db.CreateSchema(dbConn); err != nil {
		return err
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	mux := router.NewRouter(dbConn, cfg)

	server := http.Server{
		Handler: middleware.Recover(middleware.CORS(mux)),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	slog.Info("Server closed")
	return nil
}
