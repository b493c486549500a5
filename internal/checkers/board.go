package checkers

import "strings"

const (
	Size = 8

	// rows of men each side starts with
	startRows = 3
)

const (
	White Color = "w"
	Black Color = "b"
)

// Color identifies a side. White (blue) starts at the bottom and moves up the
// board, Black (red) starts at the top and moves down.
type Color string

func (that Color) Opponent() Color {
	if that == White {
		return Black
	}
	return White
}

func (that Color) forward() int {
	if that == White {
		return -1
	}
	return 1
}

func (that Color) promotionRow() int {
	if that == White {
		return 0
	}
	return Size - 1
}

func (that Color) Valid() bool {
	return that == White || that == Black
}

type Piece struct {
	Color Color `json:"color"`
	King  bool  `json:"king"`
}

type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Pos) InBounds() bool {
	return that.Row >= 0 && that.Row < Size && that.Col >= 0 && that.Col < Size
}

// Playable reports whether the square is a dark one.
func (that Pos) Playable() bool {
	return (that.Row+that.Col)%2 == 1
}

func (that Pos) step(d direction) Pos {
	return Pos{Row: that.Row + d.row, Col: that.Col + d.col}
}

// Board is indexed [row][col] with row 0 at the top. A nil cell is empty.
type Board [Size][Size]*Piece

// NewBoard returns the standard opening with twelve men a side.
func NewBoard() Board {
	var board Board

	for row := range Size {
		for col := range Size {
			if !(Pos{Row: row, Col: col}).Playable() {
				continue
			}

			switch {
			case row < startRows:
				board[row][col] = &Piece{Color: Black}
			case row >= Size-startRows:
				board[row][col] = &Piece{Color: White}
			}
		}
	}

	return board
}

func (that *Board) At(p Pos) *Piece {
	if !p.InBounds() {
		return nil
	}
	return that[p.Row][p.Col]
}

func (that *Board) Set(p Pos, piece *Piece) {
	that[p.Row][p.Col] = piece
}

// Clone deep-copies the board so the copy shares no pieces with the original.
func (that *Board) Clone() Board {
	var clone Board

	for row := range Size {
		for col := range Size {
			if piece := that[row][col]; piece != nil {
				cp := *piece
				clone[row][col] = &cp
			}
		}
	}

	return clone
}

func (that *Board) Count(side Color) int {
	count := 0

	for row := range Size {
		for col := range Size {
			if piece := that[row][col]; piece != nil && piece.Color == side {
				count++
			}
		}
	}

	return count
}

func (that *Board) HasPieces(side Color) bool {
	return that.Count(side) > 0
}

// String renders the board one row per line: '.' empty, w/b men, W/B kings.
func (that *Board) String() string {
	var sb strings.Builder

	for row := range Size {
		for col := range Size {
			piece := that[row][col]
			switch {
			case piece == nil:
				sb.WriteByte('.')
			case piece.King:
				sb.WriteString(strings.ToUpper(string(piece.Color)))
			default:
				sb.WriteString(string(piece.Color))
			}
		}
		if row < Size-1 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}
