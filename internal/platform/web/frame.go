package web

import (
	"github.com/vovakirdan/mini-arcade/internal/core"
)

// Cell is one colored run of text in a frame row.
type Cell struct {
	Text  string `json:"text"`
	Color string `json:"color,omitempty"`
}

// Frame is the JSON message pushed to the browser after each visible change.
type Frame struct {
	Game     string   `json:"game"`
	Score    int      `json:"score"`
	GameOver bool     `json:"game_over"`
	Paused   bool     `json:"paused"`
	Rows     [][]Cell `json:"rows"`
}

// Command is the JSON message the browser sends for a key press.
type Command struct {
	Action string `json:"action"`
}

// buildFrame converts a rendered screen into a frame. Colors are CSS hex
// strings; the default color is left empty so the page can theme it.
func buildFrame(gameID string, st core.GameState, scr *core.Screen) Frame {
	rows := make([][]Cell, scr.Height())
	for y := range rows {
		spans := scr.Spans(y)
		row := make([]Cell, len(spans))
		for i, sp := range spans {
			row[i] = Cell{Text: sp.Text, Color: sp.Color.Hex()}
		}
		rows[y] = row
	}

	return Frame{
		Game:     gameID,
		Score:    st.Score,
		GameOver: st.GameOver,
		Paused:   st.Paused,
		Rows:     rows,
	}
}
