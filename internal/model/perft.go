package model

// PerftResult counts the leaf nodes of the legal move tree and the move kinds
// found on the last ply.
type PerftResult struct {
	Nodes      uint64
	Captures   uint64
	EnPassants uint64
	Castles    uint64
	Promotions uint64
	Checks     uint64
	Checkmates uint64
}

// Perft walks every legal line to the given depth by committing and undoing
// moves on g. divide, when not nil, receives the subtotal of each root move.
// g is back in its original state when Perft returns; OnEnd observers see the
// terminal positions met on the way.
func Perft(g *Game, depth int, divide func(move string, nodes uint64)) PerftResult {
	var res PerftResult
	if depth <= 0 {
		res.Nodes = 1
		return res
	}
	runPerft(g, depth, true, divide, &res)
	return res
}

func runPerft(g *Game, d int, root bool, divide func(string, uint64), res *PerftResult) uint64 {
	var sum uint64
	for _, m := range g.legalMoves() {
		label := m.from.Label() + m.to.Label()
		if m.promoteTo != NoKind {
			label += m.promoteTo.Letter()
		}
		if err := g.commit(m); err != nil {
			continue
		}
		var child uint64
		if d == 1 {
			child = 1
			countLeaf(g, m, res)
		} else {
			child = runPerft(g, d-1, false, divide, res)
		}
		_, _ = g.Undo()
		if root && divide != nil {
			divide(label, child)
		}
		sum += child
	}
	if root {
		res.Nodes = sum
	}
	return sum
}

func countLeaf(g *Game, m *Move, res *PerftResult) {
	if m.captured != nil {
		res.Captures++
	}
	switch m.kind {
	case MoveEnPassant:
		res.EnPassants++
	case MoveCastling:
		res.Castles++
	case MovePromotion:
		res.Promotions++
	}
	if g.check {
		res.Checks++
	}
	if g.result.Status == StatusCheckmate {
		res.Checkmates++
	}
}
