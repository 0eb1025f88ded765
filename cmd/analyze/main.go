// Command analyze prints quick, human-readable heuristics about the deals a
// range of seeds produce: where equipment lands, how many dragons open the
// pile and the longest dragon streak, flagging seeds that start badly.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/dragons-aside/game/engine"
)

// DealStats summarises the deal for a single seed
type DealStats struct {
	Seed             int64
	Equipment        []engine.Position
	NearestEquipment int // Manhattan distance from the start corner
	LeadingDragons   int // dragons drawn before the first road
	LongestStreak    int // longest run of consecutive dragons
	DragonsInTop10   int
}

// leadingDragonWarning is the opening streak that gets flagged
const leadingDragonWarning = 3

func main() {
	cmd := &cli.Command{
		Name:  "analyze",
		Usage: "summarise the deals produced by a range of seeds",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "from", Value: 1, Usage: "first seed"},
			&cli.Int64Flag{Name: "count", Value: 10, Usage: "number of seeds"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return analyzeRange(os.Stdout, cmd.Int64("from"), cmd.Int64("count"))
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func analyzeRange(out io.Writer, from, count int64) error {
	if count <= 0 {
		return fmt.Errorf("count must be positive, got %d", count)
	}

	var totalStreak, totalLeading int
	worst := DealStats{LeadingDragons: -1}

	for seed := from; seed < from+count; seed++ {
		stats := analyzeSeed(seed)
		printStats(out, stats)

		totalStreak += stats.LongestStreak
		totalLeading += stats.LeadingDragons
		if stats.LeadingDragons > worst.LeadingDragons {
			worst = stats
		}
	}

	fmt.Fprintf(out, "\n=== Summary (%d seeds) ===\n", count)
	fmt.Fprintf(out, "Average leading dragons: %.2f\n", float64(totalLeading)/float64(count))
	fmt.Fprintf(out, "Average longest dragon streak: %.2f\n", float64(totalStreak)/float64(count))
	fmt.Fprintf(out, "Worst opening: seed %d with %d dragons before the first road\n", worst.Seed, worst.LeadingDragons)
	return nil
}

// analyzeSeed deals a game for seed and inspects it without playing
func analyzeSeed(seed int64) DealStats {
	e := engine.NewEngineWithSeed(seed)
	stats := DealStats{Seed: seed, NearestEquipment: -1}

	for y := 0; y < engine.Height; y++ {
		for x := 0; x < engine.Width; x++ {
			if t, _ := e.Board().Tile(x, y); t.Type != engine.Equipment {
				continue
			}
			p := engine.Position{X: x, Y: y}
			stats.Equipment = append(stats.Equipment, p)
			d := abs(p.X-engine.Start.X) + abs(p.Y-engine.Start.Y)
			if stats.NearestEquipment < 0 || d < stats.NearestEquipment {
				stats.NearestEquipment = d
			}
		}
	}

	pile := e.Board().Pile()
	streak, seenRoad := 0, false
	for i := 0; !pile.IsEmpty(); i++ {
		tile, err := pile.Draw()
		if err != nil {
			break
		}
		if tile.Type != engine.Dragon {
			seenRoad = true
			streak = 0
			continue
		}

		streak++
		if streak > stats.LongestStreak {
			stats.LongestStreak = streak
		}
		if !seenRoad {
			stats.LeadingDragons++
		}
		if i < 10 {
			stats.DragonsInTop10++
		}
	}
	return stats
}

func printStats(out io.Writer, s DealStats) {
	fmt.Fprintf(out, "\n=== Seed %d ===\n", s.Seed)
	fmt.Fprintf(out, "Equipment: %v (nearest %d steps from start)\n", s.Equipment, s.NearestEquipment)
	fmt.Fprintf(out, "Dragons in top 10: %d\n", s.DragonsInTop10)
	fmt.Fprintf(out, "Longest dragon streak: %d\n", s.LongestStreak)
	if s.LeadingDragons >= leadingDragonWarning {
		fmt.Fprintf(out, "⚠️  WARNING: %d dragons land before the first road\n", s.LeadingDragons)
	} else {
		fmt.Fprintf(out, "✅ First road within %d draws\n", s.LeadingDragons+1)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
