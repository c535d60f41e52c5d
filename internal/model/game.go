package model

import (
	"iter"
	"slices"
)

type gameConfig struct {
	fen string
}

type GameOption func(*gameConfig)

// WithFEN starts the game from the given position instead of the initial one.
func WithFEN(fen string) GameOption {
	return func(cfg *gameConfig) {
		cfg.fen = fen
	}
}

// Game owns the board, both rosters and the history of one game. It is not
// safe for concurrent use; callers serialize access.
type Game struct {
	board   *Board
	rosters [2][]*Piece
	kings   [2]*Piece
	history *History

	initialFEN    string
	initialKey    uint64
	startPly      int
	quietBaseline int
	castleLost    [2][CastleLong + 1]bool

	result   Result
	declared bool
	check    bool
	pending  *Move

	drawOffer      *Color
	offerBlocked   [2]bool
	offerBlockedAt [2]int

	observers []func(Result)
}

func NewGame(opts ...GameOption) (*Game, error) {
	cfg := &gameConfig{
		fen: DefaultFEN,
	}
	for _, f := range opts {
		f(cfg)
	}
	g := &Game{}
	if err := g.setup(cfg.fen); err != nil {
		return nil, err
	}
	return g, nil
}

// Reset restarts the game from its initial position with a fresh board and
// rosters. End-of-game observers stay registered.
func (g *Game) Reset() {
	// the initial FEN was validated when the game was created
	_ = g.setup(g.initialFEN)
}

// OnEnd registers fn to be called once the game reaches a terminal state.
func (g *Game) OnEnd(fn func(Result)) {
	g.observers = append(g.observers, fn)
}

func (g *Game) Board() *Board { return g.board }

func (g *Game) History() *History { return g.history }

func (g *Game) InitialFEN() string { return g.initialFEN }

// Roster returns a copy of the live pieces of c.
func (g *Game) Roster(c Color) []*Piece {
	return slices.Clone(g.rosters[c])
}

func (g *Game) King(c Color) *Piece { return g.kings[c] }

// Turn is derived from the ply count.
func (g *Game) Turn() Color {
	if (g.startPly+g.history.Len())%2 == 0 {
		return White
	}
	return Black
}

// MoveNumber is the full-move number of the next ply.
func (g *Game) MoveNumber() int {
	return (g.startPly+g.history.Len())/2 + 1
}

func (g *Game) State() State {
	return State{
		Result:     g.result,
		Check:      g.check,
		SideToMove: g.Turn(),
	}
}

func (g *Game) PendingPromotion() *Move { return g.pending }

func (g *Game) nextPly() int {
	return g.startPly + g.history.Len() + 1
}

func (g *Game) currentKey() uint64 {
	if last := g.history.LastMove(); last != nil {
		return last.after
	}
	return g.initialKey
}

// Resolve turns a (piece, destination) request into a legal move without
// committing it. The check is independent of whose turn it is. A promotion
// may be resolved without a kind; it then has to be supplied before commit.
func (g *Game) Resolve(p *Piece, to *Square, promoteTo PieceKind) (*Move, error) {
	if p == nil || p.square == nil {
		return nil, ErrPieceNotPresent
	}
	if to == nil {
		return nil, ErrOutOfRange
	}
	if promoteTo != NoKind && !promoteTo.isPromotionTarget() {
		return nil, ErrInvalidPromotionKind
	}
	if side, ok := g.castleAttempt(p, to); ok {
		if promoteTo != NoKind {
			return nil, ErrNotAPromotion
		}
		return g.resolveCastle(p.color, side)
	}
	if to.OccupiedBy(p.color) {
		return nil, ErrImpossibleMove
	}
	// kings are never captured, even when the side to move is in check
	if to.piece != nil && to.piece.kind == King {
		return nil, ErrImpossibleMove
	}
	if !geometricReach(p, to, g.board, g.history) {
		return nil, ErrImpossibleMove
	}
	m := g.newMove(p, to)
	if promoteTo != NoKind {
		if m.kind != MovePromotion {
			return nil, ErrNotAPromotion
		}
		m.promoteTo = promoteTo
	}
	if g.exposesKing(m) {
		return nil, ErrImpossibleMove
	}
	return m, nil
}

func (g *Game) newMove(p *Piece, to *Square) *Move {
	m := &Move{
		kind:   MoveNormal,
		piece:  p,
		from:   p.square,
		to:     to,
		ply:    g.nextPly(),
		before: g.currentKey(),
	}
	switch {
	case to.piece != nil:
		m.kind, m.captured, m.capturedAt = MoveCapture, to.piece, to
	case p.kind == Pawn && to.File != p.square.File:
		victim := g.history.enPassantVictim(p, to)
		m.kind, m.captured, m.capturedAt = MoveEnPassant, victim, victim.square
	}
	if p.kind == Pawn && to.Rank == p.color.lastRank() {
		m.kind = MovePromotion
	}
	return m
}

// exposesKing applies m, tests the mover's king and undoes m. A promotion
// without a chosen kind is simulated as a queen; the promoted piece stands
// on the same square whatever its kind.
func (g *Game) exposesKing(m *Move) bool {
	unchosen := m.kind == MovePromotion && m.promoteTo == NoKind
	if unchosen {
		m.promoteTo = Queen
	}
	m.apply(g)
	exposed := g.inCheck(m.piece.color)
	m.undo(g)
	if unchosen {
		m.promoteTo = NoKind
		m.promoted = nil
	}
	return exposed
}

func (g *Game) inCheck(c Color) bool {
	return g.isAttacked(g.kings[c].square, c.Opposite())
}

// isAttacked scans the whole roster of by. It never looks at self-check, so
// it cannot recurse into legality checking.
func (g *Game) isAttacked(sq *Square, by Color) bool {
	for _, p := range g.rosters[by] {
		if attacks(p, sq, g.board) {
			return true
		}
	}
	return false
}

// Commit applies a move produced by Resolve in the current position.
func (g *Game) Commit(m *Move) error {
	if err := g.ready(); err != nil {
		return err
	}
	return g.commit(m)
}

// MakeMove resolves and commits the move of the piece on from to to.
func (g *Game) MakeMove(from, to *Square, promoteTo PieceKind) (*Move, error) {
	if err := g.ready(); err != nil {
		return nil, err
	}
	p, err := g.moverAt(from)
	if err != nil {
		return nil, err
	}
	m, err := g.Resolve(p, to, promoteTo)
	if err != nil {
		return nil, err
	}
	if err := g.commit(m); err != nil {
		return nil, err
	}
	return m, nil
}

// BeginPromotion is the first step of the two-step promotion protocol. The
// returned move stays pending until FinishPromotion supplies the kind.
func (g *Game) BeginPromotion(from, to *Square) (*Move, error) {
	if err := g.ready(); err != nil {
		return nil, err
	}
	p, err := g.moverAt(from)
	if err != nil {
		return nil, err
	}
	m, err := g.Resolve(p, to, NoKind)
	if err != nil {
		return nil, err
	}
	if m.kind != MovePromotion {
		return nil, ErrNotAPromotion
	}
	g.pending = m
	return m, nil
}

// FinishPromotion substitutes the chosen piece, runs the self-check filter on
// the resulting position and commits.
func (g *Game) FinishPromotion(kind PieceKind) (*Move, error) {
	m := g.pending
	if m == nil {
		return nil, ErrNoPromotionPending
	}
	if !kind.isPromotionTarget() {
		return nil, ErrInvalidPromotionKind
	}
	g.pending = nil
	m.promoteTo = kind
	if g.exposesKing(m) {
		m.promoteTo, m.promoted = NoKind, nil
		return nil, ErrImpossibleMove
	}
	if err := g.commit(m); err != nil {
		m.promoteTo, m.promoted = NoKind, nil
		return nil, err
	}
	return m, nil
}

func (g *Game) CancelPromotion() {
	g.pending = nil
}

func (g *Game) moverAt(from *Square) (*Piece, error) {
	if from == nil || from.piece == nil {
		return nil, ErrPieceNotPresent
	}
	if from.piece.color != g.Turn() {
		return nil, ErrNotYourTurn
	}
	return from.piece, nil
}

func (g *Game) ready() error {
	if g.result.Status.IsTerminal() {
		return ErrGameOver
	}
	if g.pending != nil {
		return ErrPromotionPending
	}
	return nil
}

func (g *Game) commit(m *Move) error {
	if m.piece.color != g.Turn() {
		return ErrNotYourTurn
	}
	if m.before != g.currentKey() || m.ply != g.nextPly() {
		return ErrImpossibleMove
	}
	if m.kind == MovePromotion && m.promoteTo == NoKind {
		return ErrPromotionKindMissing
	}
	m.apply(g)
	g.history.push(m)
	m.after = g.positionKey()
	if g.drawOffer != nil && *g.drawOffer != m.piece.color {
		g.drawOffer = nil
	}
	g.evaluate(m)
	return nil
}

// evaluate runs the end-of-game predicates for the side to move.
func (g *Game) evaluate(last *Move) {
	side := g.Turn()
	g.check = g.inCheck(side)
	hasMoves := g.hasLegalMove(side)
	switch {
	case g.check && !hasMoves:
		if last != nil {
			last.annotation = AnnotationCheckmate
		}
		g.finish(Result{Status: StatusCheckmate, Winner: side.Opposite(), HasWinner: true}, false)
	case g.check:
		if last != nil {
			last.annotation = AnnotationCheck
		}
	case !hasMoves:
		g.finish(Result{Status: StatusStalemate}, false)
	case g.insufficientMaterial():
		g.finish(Result{Status: StatusDraw, Reason: DrawInsufficientMaterial}, false)
	}
}

func (g *Game) finish(r Result, declared bool) {
	g.result = r
	g.declared = declared
	g.pending = nil
	g.drawOffer = nil
	for _, fn := range g.observers {
		fn(r)
	}
}

// Undo takes back the last ply. Terminal states reached by a move are
// reverted; resignation and agreed or claimed draws are final.
func (g *Game) Undo() (*Move, error) {
	if g.declared {
		return nil, ErrUndoNotAllowed
	}
	if g.pending != nil {
		return nil, ErrPromotionPending
	}
	m := g.history.pop()
	if m == nil {
		return nil, ErrNothingToUndo
	}
	m.undo(g)
	m.annotation = AnnotationNone
	m.after = 0
	g.result = Result{}
	g.drawOffer = nil
	g.check = g.inCheck(g.Turn())
	return m, nil
}

func (g *Game) hasLegalMove(side Color) bool {
	for _, p := range slices.Clone(g.rosters[side]) {
		for sq := range g.board.AllSquares() {
			if _, err := g.Resolve(p, sq, NoKind); err == nil {
				return true
			}
		}
	}
	return false
}

// LegalMoves lists every legal move of the side to move, with one entry per
// promotion kind.
func (g *Game) LegalMoves() []*Move {
	if g.result.Status.IsTerminal() {
		return nil
	}
	return g.legalMoves()
}

func (g *Game) legalMoves() []*Move {
	var moves []*Move
	for _, p := range slices.Clone(g.rosters[g.Turn()]) {
		for sq := range g.board.AllSquares() {
			m, err := g.Resolve(p, sq, NoKind)
			if err != nil {
				continue
			}
			if m.kind != MovePromotion {
				moves = append(moves, m)
				continue
			}
			for _, k := range PromotionKinds {
				pm := *m
				pm.promoteTo = k
				moves = append(moves, &pm)
			}
		}
	}
	return moves
}

// ReachableSquares lazily yields the squares p can legally move to right now.
// Whose turn it is is left to the caller.
func (g *Game) ReachableSquares(p *Piece) iter.Seq[*Square] {
	return func(yield func(*Square) bool) {
		for sq := range g.board.AllSquares() {
			if _, err := g.Resolve(p, sq, NoKind); err != nil {
				continue
			}
			if !yield(sq) {
				return
			}
		}
	}
}

func (g *Game) removeFromRoster(p *Piece) int {
	i := slices.Index(g.rosters[p.color], p)
	g.rosters[p.color] = slices.Delete(g.rosters[p.color], i, i+1)
	return i
}

func (g *Game) insertIntoRoster(p *Piece, i int) {
	g.rosters[p.color] = slices.Insert(g.rosters[p.color], i, p)
}

func (g *Game) replaceInRoster(old, p *Piece) int {
	i := slices.Index(g.rosters[old.color], old)
	g.rosters[old.color][i] = p
	return i
}
