package blocks

import "github.com/vovakirdan/mini-arcade/internal/core"

// Shape is a piece's occupancy matrix, indexed [row][col].
type Shape [][]bool

// Kind identifies one of the seven catalog pieces.
type Kind int

const (
	KindI Kind = iota
	KindO
	KindT
	KindL
	KindJ
	KindS
	KindZ
)

// Piece is a shape paired with its color.
type Piece struct {
	Kind  Kind
	Shape Shape
	Color core.Color
}

type catalogEntry struct {
	name  string
	rows  []string
	color core.Color
}

// catalog lists the seven pieces in their spawn orientation.
var catalog = [...]catalogEntry{
	KindI: {"I", []string{"####"}, core.ColorCyan},
	KindO: {"O", []string{"##", "##"}, core.ColorYellow},
	KindT: {"T", []string{".#.", "###"}, core.ColorMagenta},
	KindL: {"L", []string{"#..", "###"}, core.ColorOrange},
	KindJ: {"J", []string{"..#", "###"}, core.ColorBlue},
	KindS: {"S", []string{".##", "##."}, core.ColorGreen},
	KindZ: {"Z", []string{"##.", ".##"}, core.ColorRed},
}

// KindCount is the number of distinct pieces.
const KindCount = len(catalog)

func (k Kind) String() string {
	if k < 0 || int(k) >= KindCount {
		return "?"
	}
	return catalog[k].name
}

// NewPiece builds a fresh piece of the given kind in spawn orientation.
func NewPiece(k Kind) Piece {
	entry := catalog[k]
	return Piece{
		Kind:  k,
		Shape: ParseShape(entry.rows...),
		Color: entry.color,
	}
}

// ParseShape builds a shape from rows where '#' marks an occupied cell.
func ParseShape(rows ...string) Shape {
	shape := make(Shape, len(rows))
	for y, row := range rows {
		shape[y] = make([]bool, len(row))
		for x, ch := range row {
			shape[y][x] = ch == '#'
		}
	}
	return shape
}

// Width returns the number of columns in the shape's bounding box.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Height returns the number of rows in the shape's bounding box.
func (s Shape) Height() int {
	return len(s)
}

// Cells returns the occupied offsets relative to the bounding box origin.
func (s Shape) Cells() []core.Point {
	var cells []core.Point
	for y, row := range s {
		for x, filled := range row {
			if filled {
				cells = append(cells, core.Point{X: x, Y: y})
			}
		}
	}
	return cells
}

// Rotated returns the shape turned 90 degrees clockwise: row i of the result is
// column i of the source read bottom to top. The receiver is not modified.
func (s Shape) Rotated() Shape {
	h, w := s.Height(), s.Width()
	out := make(Shape, w)
	for i := range w {
		out[i] = make([]bool, h)
		for j := range h {
			out[i][j] = s[h-1-j][i]
		}
	}
	return out
}
