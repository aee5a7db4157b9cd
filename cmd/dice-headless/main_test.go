package main

import (
	"bytes"
	"context"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/dice-tray/config"
)

func TestRunReport(t *testing.T) {
	cfg := config.Default()
	cfg.Die = "d6"
	cfg.Seed = 11

	var out bytes.Buffer
	if err := run(context.Background(), cfg, 12, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	report := out.String()
	for _, want := range []string{"d6: 12 rolls", "chi-square", "5 degrees of freedom", "ceiling settles:"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
	if strings.Contains(report, "history:") {
		t.Errorf("history section printed without a store:\n%s", report)
	}
}

func TestRunRecordsHistory(t *testing.T) {
	cfg := config.Default()
	cfg.Die = "d4"
	cfg.Seed = 5
	cfg.HistoryPath = filepath.Join(t.TempDir(), "rolls.db")

	var out bytes.Buffer
	if err := run(context.Background(), cfg, 8, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	report := out.String()
	if !strings.Contains(report, "history: written=8 dropped=0 failed=0") {
		t.Errorf("unexpected history stats:\n%s", report)
	}
	if !strings.Contains(report, "stored totals:") {
		t.Errorf("missing stored totals:\n%s", report)
	}
}

func TestRunRejectsNoRolls(t *testing.T) {
	if err := run(context.Background(), config.Default(), 0, &bytes.Buffer{}); err == nil {
		t.Error("expected error for zero rolls")
	}
}

func TestMaxDeviation(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		n      int
		want   float64
	}{
		{"fair", []int{0, 5, 5, 5, 5}, 20, 0},
		{"skewed", []int{0, 10, 0}, 10, 50},
		{"mixed", []int{0, 3, 1}, 4, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maxDeviation(tt.counts, tt.n); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("maxDeviation = %v, want %v", got, tt.want)
			}
		})
	}
}
