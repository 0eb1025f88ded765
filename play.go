package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wricardo/dragons-aside/game/service"
	"github.com/wricardo/dragons-aside/game/view"
)

const playHelp = `Commands:
  draw, d              draw the next tile
  rotate, r            rotate the tile in hand
  place X Y, p X Y     place the tile in hand at column X, row Y
  select X Y, s X Y    highlight a board cell
  spin                 rotate the highlighted cell
  deselect             clear the highlight
  events [N]           show the last N events (default 10)
  board, b             show the board again
  new                  deal a new game
  help, h              show this help
  quit, q              leave the game

Winning: empty and equipment cells are open ground. A placement (or spin of a
placed road) wins as soon as open ground or roads lead from S to F, so early
wins are normal while the board is open. Dragons close ground off.`

// play runs an interactive game in a new session until quit or end of input
func (a *app) play(ctx context.Context, in io.Reader, out io.Writer, opts view.Options) error {
	info, err := a.svc.CreateSession(ctx, a.cfg.Seed)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s v%s (seed %d)\n", AppName, Version, info.Seed)
	fmt.Fprintln(out, view.RenderLegend(opts))
	fmt.Fprintln(out, "Type 'help' for commands.")
	fmt.Fprintln(out)
	fmt.Fprint(out, view.Render(info.State, opts))

	return a.repl(ctx, info.ID, in, out, opts)
}

// repl reads one command per line and prints the outcome
func (a *app) repl(ctx context.Context, id string, in io.Reader, out io.Writer, opts view.Options) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		fields := strings.Fields(strings.ToLower(scanner.Text()))
		if len(fields) == 0 {
			continue
		}

		quit, err := a.dispatch(ctx, id, fields, out, opts)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// dispatch runs a single REPL command. Errors are only returned for failures
// that end the game loop.
func (a *app) dispatch(ctx context.Context, id string, fields []string, out io.Writer, opts view.Options) (bool, error) {
	var (
		result *service.ActionResult
		err    error
	)

	switch fields[0] {
	case "quit", "q", "exit":
		return true, nil
	case "help", "h", "?":
		fmt.Fprintln(out, playHelp)
		return false, nil
	case "board", "b":
		snap, err := a.svc.GetState(ctx, id)
		if err != nil {
			return false, err
		}
		fmt.Fprint(out, view.Render(snap, opts))
		return false, nil
	case "events":
		limit := 10
		if len(fields) > 1 {
			if n, convErr := strconv.Atoi(fields[1]); convErr == nil && n > 0 {
				limit = n
			}
		}
		resp, err := a.svc.GetEvents(ctx, id, service.EventOptions{Limit: limit, Order: "desc"})
		if err != nil {
			return false, err
		}
		fmt.Fprint(out, view.RenderEvents(resp.Events))
		return false, nil
	case "draw", "d":
		result, err = a.svc.Draw(ctx, id)
	case "rotate", "r":
		result, err = a.svc.RotateHand(ctx, id)
	case "spin":
		result, err = a.svc.RotateSelected(ctx, id)
	case "deselect":
		result, err = a.svc.Deselect(ctx, id)
	case "new":
		result, err = a.svc.NewGame(ctx, id)
	case "place", "p", "select", "s":
		x, y, ok := parseXY(fields[1:])
		if !ok {
			fmt.Fprintf(out, "usage: %s X Y\n", fields[0])
			return false, nil
		}
		if fields[0] == "place" || fields[0] == "p" {
			result, err = a.svc.Place(ctx, id, x, y)
		} else {
			result, err = a.svc.Select(ctx, id, x, y)
		}
	default:
		fmt.Fprintf(out, "unknown command %q, type 'help'\n", fields[0])
		return false, nil
	}
	if err != nil {
		return false, err
	}

	printResult(out, result, opts)
	return false, nil
}

func parseXY(args []string) (int, int, bool) {
	if len(args) != 2 {
		return 0, 0, false
	}
	x, errX := strconv.Atoi(args[0])
	y, errY := strconv.Atoi(args[1])
	if errX != nil || errY != nil {
		return 0, 0, false
	}
	return x, y, true
}

func printResult(out io.Writer, result *service.ActionResult, opts view.Options) {
	if !result.Success {
		fmt.Fprintf(out, "✗ %s\n", result.Message)
		return
	}
	for _, e := range result.Events {
		fmt.Fprintf(out, "• %s\n", e.Message)
	}
	fmt.Fprint(out, view.Render(result.Snapshot, opts))
	if result.Snapshot.Victory {
		fmt.Fprintln(out, "You reached the exit! Type 'new' to play again.")
	} else if result.Snapshot.GameOver {
		fmt.Fprintln(out, "The pile is empty. Type 'new' to play again.")
	}
}
