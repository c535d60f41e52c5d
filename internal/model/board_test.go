package model

import (
	"errors"
	"testing"
)

func TestSquareAt(t *testing.T) {
	t.Parallel()
	b := NewBoard()
	tests := []struct {
		file, rank int
		want       string
		wantErr    bool
	}{
		{file: 1, rank: 1, want: "a1"},
		{file: 5, rank: 4, want: "e4"},
		{file: 8, rank: 8, want: "h8"},
		{file: 0, rank: 1, wantErr: true},
		{file: 1, rank: 9, wantErr: true},
		{file: -3, rank: 4, wantErr: true},
	}
	for _, tt := range tests {
		sq, err := b.SquareAt(tt.file, tt.rank)
		if tt.wantErr {
			if !errors.Is(err, ErrOutOfRange) {
				t.Errorf("SquareAt(%d, %d) error = %v, want ErrOutOfRange", tt.file, tt.rank, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("SquareAt(%d, %d) error = %v", tt.file, tt.rank, err)
			continue
		}
		if sq.Label() != tt.want {
			t.Errorf("SquareAt(%d, %d) = %s, want %s", tt.file, tt.rank, sq, tt.want)
		}
	}
}

func TestSquareByLabel(t *testing.T) {
	t.Parallel()
	b := NewBoard()
	for _, label := range []string{"a1", "e4", "h8", "d5"} {
		sq, err := b.SquareByLabel(label)
		if err != nil {
			t.Errorf("SquareByLabel(%q) error = %v", label, err)
			continue
		}
		if sq.Label() != label {
			t.Errorf("SquareByLabel(%q) = %s", label, sq)
		}
	}
	for _, label := range []string{"", "e", "e44", "i1", "a9", "a0", "E4", "4e"} {
		if _, err := b.SquareByLabel(label); !errors.Is(err, ErrInvalidLabel) {
			t.Errorf("SquareByLabel(%q) error = %v, want ErrInvalidLabel", label, err)
		}
	}
}

func TestAllSquares(t *testing.T) {
	t.Parallel()
	b := NewBoard()
	for round := 0; round < 2; round++ {
		var labels []string
		for sq := range b.AllSquares() {
			labels = append(labels, sq.Label())
		}
		if len(labels) != 64 {
			t.Fatalf("round %d: got %d squares, want 64", round, len(labels))
		}
		if labels[0] != "a1" || labels[7] != "h1" || labels[8] != "a2" || labels[63] != "h8" {
			t.Errorf("round %d: unexpected order %v", round, labels)
		}
	}
	n := 0
	for range b.AllSquares() {
		n++
		if n == 10 {
			break
		}
	}
	if n != 10 {
		t.Errorf("early break yielded %d squares", n)
	}
}

func TestRelocate(t *testing.T) {
	t.Parallel()
	b := NewBoard()
	e2, e4 := b.at(5, 2), b.at(5, 4)
	p := &Piece{kind: Pawn, color: White}

	b.relocate(p, nil, e2)
	if e2.Piece() != p || p.Square() != e2 {
		t.Fatalf("placing: square=%v piece=%v", p.Square(), e2.Piece())
	}
	b.relocate(p, e2, e4)
	if e2.Occupied() || e4.Piece() != p || p.Square() != e4 {
		t.Fatalf("moving: e2 occupied=%v e4=%v square=%v", e2.Occupied(), e4.Piece(), p.Square())
	}
	b.relocate(p, e4, nil)
	if e4.Occupied() || p.Square() != nil {
		t.Fatalf("removing: e4 occupied=%v square=%v", e4.Occupied(), p.Square())
	}
}

func TestSquareColor(t *testing.T) {
	t.Parallel()
	b := NewBoard()
	tests := map[string]bool{"a1": false, "h1": true, "a8": true, "h8": false, "d1": true, "e1": false}
	for label, light := range tests {
		sq, _ := b.SquareByLabel(label)
		if sq.isLight() != light {
			t.Errorf("%s isLight = %v, want %v", label, sq.isLight(), light)
		}
	}
}
