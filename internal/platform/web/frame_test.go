package web

import (
	"testing"

	"github.com/vovakirdan/mini-arcade/internal/core"
)

func TestBuildFrame(t *testing.T) {
	scr := core.NewScreen(6, 2)
	scr.DrawText(0, 0, "ab")
	scr.DrawTextColored(2, 0, "##", core.ColorRed)

	f := buildFrame("blocks", core.GameState{Score: 300, Paused: true}, scr)

	if f.Game != "blocks" || f.Score != 300 || !f.Paused || f.GameOver {
		t.Errorf("header = %+v", f)
	}
	if len(f.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(f.Rows))
	}

	want := []Cell{{Text: "ab"}, {Text: "##", Color: core.ColorRed.Hex()}, {Text: "  "}}
	row := f.Rows[0]
	if len(row) != len(want) {
		t.Fatalf("row 0 = %+v", row)
	}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("cell %d = %+v, want %+v", i, row[i], want[i])
		}
	}
	if len(f.Rows[1]) != 1 || f.Rows[1][0].Text != "      " {
		t.Errorf("blank row = %+v", f.Rows[1])
	}
}
