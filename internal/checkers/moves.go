package checkers

type direction struct {
	row, col int
}

var (
	upLeft    = direction{row: -1, col: -1}
	upRight   = direction{row: -1, col: 1}
	downLeft  = direction{row: 1, col: -1}
	downRight = direction{row: 1, col: 1}

	allDirections = []direction{upLeft, upRight, downLeft, downRight}
)

// Move is produced by GenerateMoves and consumed by Apply.
type Move struct {
	From     Pos  `json:"from"`
	To       Pos  `json:"to"`
	Captured *Pos `json:"captured,omitempty"`
	Capture  bool `json:"capture,omitempty"`
}

func (that Move) Equal(other Move) bool {
	if that.From != other.From || that.To != other.To || that.Capture != other.Capture {
		return false
	}

	if that.Captured == nil || other.Captured == nil {
		return that.Captured == other.Captured
	}

	return *that.Captured == *other.Captured
}

// directions returns forward diagonals for men and all four for kings.
func directions(piece *Piece) []direction {
	if piece.King {
		return allDirections
	}

	f := piece.Color.forward()
	return []direction{{row: f, col: -1}, {row: f, col: 1}}
}

// GenerateMoves lists the legal moves for side. When any capture exists on the
// board only captures are returned. An empty result means side cannot move.
func GenerateMoves(board *Board, side Color) []Move {
	var simple, captures []Move

	for row := range Size {
		for col := range Size {
			piece := board[row][col]
			if piece == nil || piece.Color != side {
				continue
			}

			from := Pos{Row: row, Col: col}
			for _, d := range directions(piece) {
				to := from.step(d)
				if !to.InBounds() {
					continue
				}

				target := board.At(to)
				if target == nil {
					simple = append(simple, Move{From: from, To: to})
					continue
				}

				if target.Color == side {
					continue
				}

				landing := to.step(d)
				if landing.InBounds() && board.At(landing) == nil {
					captured := to
					captures = append(captures, Move{From: from, To: landing, Captured: &captured, Capture: true})
				}
			}
		}
	}

	if len(captures) > 0 {
		return captures
	}

	return simple
}

// Promotes reports whether the move lands a man on its far row.
func Promotes(board *Board, move Move) bool {
	piece := board.At(move.From)
	return piece != nil && !piece.King && move.To.Row == piece.Color.promotionRow()
}

// Apply performs the move in place and reports whether it crowned the piece.
func Apply(board *Board, move Move) bool {
	promoted := Promotes(board, move)

	piece := board.At(move.From)
	board.Set(move.To, piece)
	board.Set(move.From, nil)

	if move.Captured != nil {
		board.Set(*move.Captured, nil)
	}

	if promoted {
		piece.King = true
	}

	return promoted
}
