package main

import (
	"context"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/rosbacke/statechart"
	"github.com/rosbacke/statechart/internal/logging"
	"github.com/rosbacke/statechart/internal/watch"
)

// Version is set during build using ldflags
var Version = "dev"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	helpStyle  = lipgloss.NewStyle().Faint(true)
)

func main() {
	app := &cli.Command{
		Name:    "watch",
		Version: Version,
		Usage:   "Terminal digital watch driven by a hierarchical state machine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Value: "warn",
				Usage: "Log level (trace, debug, info, warn, error)",
			},
			&cli.DurationFlag{
				Name:  "tick",
				Value: 50 * time.Millisecond,
				Usage: "Display refresh interval",
			},
			&cli.BoolFlag{
				Name:  "dot",
				Usage: "Print the state tree as Graphviz DOT and exit",
			},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	logger := logging.SetupLogger(cmd.String("log-level"), os.Stderr)

	w, err := watch.New(os.Stdout, statechart.WithLogger(logger))
	if err != nil {
		return err
	}

	if cmd.Bool("dot") {
		fmt.Print(w.DOT())
		return nil
	}

	printBanner()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	if err := syscall.SetNonblock(fd, true); err != nil {
		return fmt.Errorf("nonblocking stdin: %w", err)
	}
	defer syscall.SetNonblock(fd, false)

	keys := watch.NewKeyReader(stdinReader{fd: fd})

	if err := w.Start(); err != nil {
		return err
	}

	tick := cmd.Duration("tick")
	for !w.Done() {
		if ev, ok := keys.ReadEvent(); ok {
			if err := w.M.PostEvent(ev); err != nil {
				logger.Warn("key event dropped", "err", err)
			}
		}
		if err := w.M.PostEvent(watch.TickEvent()); err != nil {
			return err
		}
		time.Sleep(tick)
	}

	if err := w.M.Stop(); err != nil {
		return err
	}
	fmt.Print("\r\n")
	return nil
}

func printBanner() {
	fmt.Println(titleStyle.Render("   Digital Watch   "))
	fmt.Println(helpStyle.Render("Use arrow keys to control."))
	fmt.Println(helpStyle.Render(" ti: Display current time."))
	fmt.Println(helpStyle.Render(" st: Set time."))
	fmt.Println()
	fmt.Println(helpStyle.Render("Left arrow in ti to quit."))
	fmt.Println()
}

// stdinReader reads the raw terminal fd directly so a read with no pending
// key returns EAGAIN instead of parking the goroutine in the runtime poller.
type stdinReader struct {
	fd int
}

func (r stdinReader) Read(p []byte) (int, error) {
	n, err := syscall.Read(r.fd, p)
	if n < 0 {
		n = 0
	}
	return n, err
}
