// chess-console plays a two-player chess game in the terminal.
//
// Moves are entered as four integers "fromX fromY toX toY" where x is the
// file (0-7) and y the row, 0 being Black's back rank. Castling is a king
// move onto its own rook.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/output"
)

var (
	fromBlack  = flag.Bool("black", false, "Draw the board from Black's side")
	followTurn = flag.Bool("follow", false, "Draw the board from the side to move")
	noCoords   = flag.Bool("nocoords", false, "Omit coordinate labels")
	jsonOutput = flag.Bool("J", false, "Print game states as JSON lines instead of a board")
	help       = flag.Bool("h", false, "Show help")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	cfg := config.NewConfigBuilder().
		WithFromBlack(*fromBlack).
		WithFollowTurn(*followTurn).
		WithCoordinates(!*noCoords).
		Build()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	var w output.SnapshotWriter
	if *jsonOutput {
		w = output.NewJSONWriterSingle(cfg.OutputFile)
	}
	if err := run(os.Stdin, cfg, w); err != nil {
		fmt.Fprintf(cfg.LogFile, "Error: %v\n", err)
		os.Exit(1)
	}
}

// console is one interactive session over a single board.
type console struct {
	cfg    *config.ConsoleConfig
	in     *bufio.Scanner
	out    io.Writer
	board  *engine.Board
	text   *output.TextWriter
	writer output.SnapshotWriter
}

// run plays one game reading commands from in until the game ends or
// input runs out. A nil writer draws text boards on cfg.OutputFile.
// With any other writer cfg.OutputFile carries only its states, and
// prompts and diagnostics go to cfg.LogFile.
func run(in io.Reader, cfg *config.Config, w output.SnapshotWriter) error {
	c := &console{
		cfg:   cfg.Console,
		in:    bufio.NewScanner(in),
		out:   cfg.OutputFile,
		board: engine.NewGame(),
		text: output.NewTextWriter(cfg.OutputFile, output.TextOptions{
			FromBlack:   cfg.Console.FromBlack,
			Coordinates: cfg.Console.Coordinates,
		}),
	}
	c.writer = w
	if c.writer == nil {
		c.writer = c.text
	} else {
		c.out = cfg.LogFile
	}
	defer c.writer.Close()

	if err := c.show(); err != nil {
		return err
	}
	for !c.board.Status().IsOver() {
		line, ok := c.prompt(c.cfg.Prompt)
		if !ok {
			return c.in.Err()
		}
		done, err := c.handle(line)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
	return nil
}

// show writes the current state.
func (c *console) show() error {
	snap := c.board.Snapshot()
	if c.cfg.FollowTurn {
		c.text.SetFromBlack(snap.ToMove == chess.Black)
	}
	return c.writer.WriteSnapshot("", snap)
}

func (c *console) prompt(p string) (string, bool) {
	fmt.Fprint(c.out, p)
	if !c.in.Scan() {
		fmt.Fprintln(c.out)
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

// handle executes one input line. It reports true when the player quits.
func (c *console) handle(line string) (bool, error) {
	fields := strings.Fields(line)
	switch {
	case len(fields) == 0:
		return false, nil
	case fields[0] == "quit" || fields[0] == "exit":
		return true, nil
	case fields[0] == "help" || fields[0] == "?":
		c.printHelp()
		return false, nil
	case fields[0] == "moves" && len(fields) == 3:
		sq, err := parseSquare(fields[1], fields[2])
		if err != nil {
			fmt.Fprintln(c.out, err)
			return false, nil
		}
		c.printTargets(sq)
		return false, nil
	case len(fields) == 4:
		return c.move(fields)
	}
	fmt.Fprintf(c.out, "Unrecognised input %q; type help for commands\n", line)
	return false, nil
}

func (c *console) move(fields []string) (bool, error) {
	from, err := parseSquare(fields[0], fields[1])
	if err == nil {
		var to chess.Square
		to, err = parseSquare(fields[2], fields[3])
		if err == nil {
			return c.apply(from, to)
		}
	}
	fmt.Fprintln(c.out, err)
	return false, nil
}

func (c *console) apply(from, to chess.Square) (bool, error) {
	out, err := c.board.ApplyMove(from, to)
	if err != nil {
		fmt.Fprintf(c.out, "Rejected (%s): %v\n", out.Reason, err)
		return false, nil
	}
	if out.Status == engine.PromotionPending {
		if quit := c.promote(out.Colour); quit {
			return true, nil
		}
	}
	return false, c.show()
}

// promote asks until a valid piece is chosen. It reports true when input
// runs out first.
func (c *console) promote(colour chess.Colour) bool {
	for {
		line, ok := c.prompt(fmt.Sprintf("%s promotes to (q, r, b, n): ", colour))
		if !ok {
			return true
		}
		kind, ok := chess.ParsePieceType(line)
		if !ok {
			fmt.Fprintf(c.out, "Unknown piece %q\n", line)
			continue
		}
		if _, err := c.board.Promote(kind, colour); err != nil {
			fmt.Fprintln(c.out, err)
			continue
		}
		return false
	}
}

func (c *console) printTargets(from chess.Square) {
	targets := c.board.LegalTargets(from)
	if len(targets) == 0 {
		fmt.Fprintf(c.out, "No legal moves from %v\n", from)
		return
	}
	parts := make([]string, len(targets))
	for i, sq := range targets {
		parts[i] = sq.String()
	}
	fmt.Fprintf(c.out, "%v: %s\n", from, strings.Join(parts, " "))
}

func (c *console) printHelp() {
	fmt.Fprintln(c.out, "  fromX fromY toX toY   move, e.g. 4 6 4 4")
	fmt.Fprintln(c.out, "  moves x y             list legal targets of a piece")
	fmt.Fprintln(c.out, "  quit                  leave the game")
}

func parseSquare(xs, ys string) (chess.Square, error) {
	x, err := strconv.Atoi(xs)
	if err != nil {
		return chess.Square{}, fmt.Errorf("bad x %q", xs)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return chess.Square{}, fmt.Errorf("bad y %q", ys)
	}
	return chess.Sq(x, y), nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chess-console [options]\n\n")
	fmt.Fprintf(os.Stderr, "Plays a two-player chess game on this terminal.\n")
	fmt.Fprintf(os.Stderr, "Moves are \"fromX fromY toX toY\" with y=0 on Black's back rank.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}
