package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wricardo/dragons-aside/game/engine"
)

func TestAnalyzeSeed(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		stats := analyzeSeed(seed)

		if len(stats.Equipment) != engine.EquipmentCount {
			t.Errorf("seed %d: expected %d equipment, got %d", seed, engine.EquipmentCount, len(stats.Equipment))
		}
		if stats.NearestEquipment < 1 {
			t.Errorf("seed %d: equipment cannot sit on the start corner row, got distance %d", seed, stats.NearestEquipment)
		}
		if stats.LeadingDragons > stats.LongestStreak {
			t.Errorf("seed %d: leading dragons %d exceed longest streak %d", seed, stats.LeadingDragons, stats.LongestStreak)
		}
		if stats.DragonsInTop10 > 10 || stats.LongestStreak > engine.DragonCount {
			t.Errorf("seed %d: impossible counts %+v", seed, stats)
		}
	}
}

func TestAnalyzeSeed_Deterministic(t *testing.T) {
	a, b := analyzeSeed(99), analyzeSeed(99)
	if a.LongestStreak != b.LongestStreak || a.LeadingDragons != b.LeadingDragons {
		t.Errorf("Expected identical stats, got %+v and %+v", a, b)
	}
	for i := range a.Equipment {
		if a.Equipment[i] != b.Equipment[i] {
			t.Errorf("Equipment differs at %d: %v vs %v", i, a.Equipment[i], b.Equipment[i])
		}
	}
}

func TestAnalyzeRange(t *testing.T) {
	var out bytes.Buffer
	if err := analyzeRange(&out, 5, 3); err != nil {
		t.Fatalf("analyzeRange failed: %v", err)
	}

	text := out.String()
	for _, want := range []string{"=== Seed 5 ===", "=== Seed 7 ===", "=== Summary (3 seeds) ===", "Worst opening: seed"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in output", want)
		}
	}
	if strings.Contains(text, "=== Seed 8 ===") {
		t.Error("Expected only three seeds")
	}

	if err := analyzeRange(&out, 1, 0); err == nil {
		t.Error("Expected error for zero count")
	}
}
