package model

import (
	"errors"
	"testing"
)

func TestParseDescriptor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    Descriptor
		wantErr bool
	}{
		{in: "e4", want: Descriptor{Kind: Pawn, To: "e4"}},
		{in: "e2-e4", want: Descriptor{Kind: Pawn, From: "e2", To: "e4"}},
		{in: "e2e4", want: Descriptor{Kind: Pawn, From: "e2", To: "e4"}},
		{in: "Nf3", want: Descriptor{Kind: Knight, To: "f3"}},
		{in: "Ng1-f3", want: Descriptor{Kind: Knight, From: "g1", To: "f3"}},
		{in: "Qd8xh4#", want: Descriptor{Kind: Queen, From: "d8", Capture: true, To: "h4"}},
		{in: "Pe5xd6", want: Descriptor{Kind: Pawn, From: "e5", Capture: true, To: "d6"}},
		{in: "e7-e8(Q)", want: Descriptor{Kind: Pawn, From: "e7", To: "e8", Promotion: Queen}},
		{in: "e8=N+", want: Descriptor{Kind: Pawn, To: "e8", Promotion: Knight}},
		{in: "b2xa1R", want: Descriptor{Kind: Pawn, From: "b2", Capture: true, To: "a1", Promotion: Rook}},
		{in: " Kxe2 ", want: Descriptor{Kind: King, Capture: true, To: "e2"}},
		{in: "O-O", want: Descriptor{Kind: King, Castle: CastleShort}},
		{in: "O-O-O+", want: Descriptor{Kind: King, Castle: CastleLong}},
		{in: "0-0", want: Descriptor{Kind: King, Castle: CastleShort}},
		{in: "", wantErr: true},
		{in: "e9", wantErr: true},
		{in: "i4", wantErr: true},
		{in: "Xe4", wantErr: true},
		{in: "exd5", wantErr: true},
		{in: "Ne8=Q", wantErr: true},
		{in: "e7-e8(K)", wantErr: true},
		{in: "O-O-O-O", wantErr: true},
		{in: "e2--e4", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseDescriptor(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("ParseDescriptor(%q) error = %v, want ErrInvalidFormat", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDescriptor(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDescriptor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestPlayErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		fen        string
		descriptor string
		wantErr    error
	}{
		{name: "malformed", descriptor: "hello", wantErr: ErrInvalidFormat},
		{name: "empty start square", descriptor: "e3-e4", wantErr: ErrPieceNotPresent},
		{name: "wrong piece letter", descriptor: "Ne2-e4", wantErr: ErrIncorrectPiece},
		{name: "missing piece letter", descriptor: "g1-f3", wantErr: ErrIncorrectPiece},
		{name: "opponent piece", descriptor: "e7-e5", wantErr: ErrNotYourTurn},
		{name: "unreachable", descriptor: "e2-e5", wantErr: ErrImpossibleMove},
		{name: "no candidate", descriptor: "Bc4", wantErr: ErrImpossibleMove},
		{name: "capture marker on quiet move", descriptor: "e2xe4", wantErr: ErrImpossibleMove},
		{name: "promotion on ordinary move", descriptor: "e2-e4(Q)", wantErr: ErrNotAPromotion},
		{name: "ambiguous", fen: "4k3/8/8/8/8/8/4K3/R6R w - - 0 1", descriptor: "Rd1", wantErr: ErrAmbiguousMove},
		{name: "promotion without kind", fen: "8/P6k/8/8/8/8/8/K7 w - - 0 1", descriptor: "a7-a8", wantErr: ErrPromotionKindMissing},
		{name: "castle blocked", descriptor: "O-O", wantErr: ErrCastleNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := newTestGame(t, tt.fen)
			before := g.FEN()
			_, err := g.Play(tt.descriptor)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Play(%q) error = %v, want %v", tt.descriptor, err, tt.wantErr)
			}
			var moveErr *MoveError
			if !errors.As(err, &moveErr) || moveErr.Descriptor != tt.descriptor {
				t.Errorf("error %v does not carry the descriptor", err)
			}
			if g.FEN() != before || g.History().Len() != 0 {
				t.Errorf("rejected descriptor mutated the game")
			}
		})
	}
}

func TestPlayDisambiguated(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, "4k3/8/8/8/8/8/4K3/R6R w - - 0 1")
	m, err := g.Play("Ra1-d1")
	if err != nil {
		t.Fatalf("Play(Ra1-d1) error = %v", err)
	}
	if m.From().Label() != "a1" {
		t.Errorf("moved from %s", m.From())
	}
}

func TestNotationRoundTrip(t *testing.T) {
	t.Parallel()
	tests := []struct {
		fen   string
		moves []string
	}{
		{
			fen: DefaultFEN,
			moves: []string{
				"e4", "d5", "e4xd5", "Qxd5", "Nc3", "Qa5", "Nf3", "Nf6",
				"Bc4", "Bg4", "O-O", "e6", "d4", "Nc6", "Be3", "O-O-O",
			},
		},
		{
			fen:   "4k3/1P6/8/8/3p4/8/4P3/4K3 w - - 0 1",
			moves: []string{"e2-e4", "d4xe3", "b7-b8(Q)+"},
		},
	}
	for _, tt := range tests {
		g := newTestGame(t, tt.fen)
		playAll(t, g, tt.moves...)

		replay := newTestGame(t, tt.fen)
		playAll(t, replay, g.Notation()...)
		if replay.FEN() != g.FEN() {
			t.Errorf("replayed FEN = %s, want %s", replay.FEN(), g.FEN())
		}
	}
}

func TestDescriptorString(t *testing.T) {
	t.Parallel()
	for _, in := range []string{"e4", "e2-e4", "Ng1-f3", "Qd8xh4", "e7-e8(Q)", "O-O", "O-O-O"} {
		d, err := ParseDescriptor(in)
		if err != nil {
			t.Fatalf("ParseDescriptor(%q) error = %v", in, err)
		}
		if d.String() != in {
			t.Errorf("String() = %q, want %q", d.String(), in)
		}
	}
}

func TestResolveDescriptor(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, "4k3/8/8/8/8/8/4K3/R6R w - - 0 1")
	before := g.FEN()

	d, err := ParseDescriptor("Ra1-d1")
	if err != nil {
		t.Fatal(err)
	}
	m, err := g.ResolveDescriptor(d)
	if err != nil {
		t.Fatalf("ResolveDescriptor(Ra1-d1) error = %v", err)
	}
	if m.From().Label() != "a1" || m.To().Label() != "d1" {
		t.Errorf("resolved %s", m)
	}
	if g.FEN() != before || g.History().Len() != 0 {
		t.Errorf("ResolveDescriptor mutated the game")
	}

	d, _ = ParseDescriptor("Rd1")
	if _, err := g.ResolveDescriptor(d); !errors.Is(err, ErrAmbiguousMove) {
		t.Errorf("ResolveDescriptor(Rd1) error = %v, want ErrAmbiguousMove", err)
	}
	if err := g.Resign(White); err != nil {
		t.Fatal(err)
	}
	d, _ = ParseDescriptor("Ra1-d1")
	if _, err := g.ResolveDescriptor(d); !errors.Is(err, ErrGameOver) {
		t.Errorf("ResolveDescriptor after resignation error = %v, want ErrGameOver", err)
	}
}
