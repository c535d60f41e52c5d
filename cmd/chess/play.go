package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/benbeisheim/chessrules-backend/internal/store"
	"github.com/benbeisheim/chessrules-backend/internal/termui"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const playHelp = `moves:    e2-e4, Ng1-f3, Nf3, e4xd5, e7-e8(Q), O-O-O
commands: undo, offer, accept, decline, claim, resign, moves, fen, restart, help, quit`

func playCmd() *cobra.Command {
	var fen, archiveDir string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Two players at one keyboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []model.GameOption
			if fen != "" {
				opts = append(opts, model.WithFEN(fen))
			}
			g, err := model.NewGame(opts...)
			if err != nil {
				return err
			}
			s := &session{game: g, out: cmd.OutOrStdout()}
			s.loop(cmd.InOrStdin())

			if archiveDir == "" {
				return nil
			}
			return s.archive(archiveDir)
		},
	}
	cmd.Flags().StringVar(&fen, "fen", "", "start from this position")
	cmd.Flags().StringVar(&archiveDir, "archive", "", "save the finished game to this archive directory")
	return cmd
}

type session struct {
	game *model.Game
	out  io.Writer
}

func (s *session) show() {
	termui.DrawBoard(s.out, s.game, s.game.Turn())
	termui.DrawStatus(s.out, s.game)
}

func (s *session) loop(in io.Reader) {
	s.show()
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}
		if err := s.exec(line); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
			continue
		}
		s.show()
	}
}

// exec runs one command line. offer and resign act for the side to move,
// accept and decline for the side the offer was made to.
func (s *session) exec(line string) error {
	g := s.game
	side := g.Turn()
	switch line {
	case "help":
		fmt.Fprintln(s.out, playHelp)
		return nil
	case "undo":
		_, err := g.Undo()
		return err
	case "offer":
		return g.OfferDraw(side)
	case "accept", "decline":
		if offerer, ok := g.DrawOffer(); ok {
			side = offerer.Opposite()
		}
		return g.RespondDraw(side, line == "accept")
	case "claim":
		_, err := g.ClaimDraw()
		return err
	case "resign":
		return g.Resign(side)
	case "restart":
		g.Reset()
		return nil
	case "fen":
		fmt.Fprintln(s.out, g.FEN())
		return nil
	case "moves":
		var labels []string
		for _, m := range g.LegalMoves() {
			labels = append(labels, g.History().NotationFor(m))
		}
		fmt.Fprintln(s.out, strings.Join(labels, " "))
		return nil
	}
	_, err := g.Play(line)
	return err
}

func (s *session) archive(dir string) error {
	st, err := store.Open(dir, false)
	if err != nil {
		return err
	}
	defer st.Close()

	rec := service.NewRecord(uuid.New().String(), s.game)
	if err := st.Save(rec); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "saved game %s\n", rec.ID)
	return nil
}
