package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/store"
	"github.com/benbeisheim/chessrules-backend/internal/termui"
	"github.com/spf13/cobra"
)

func replayCmd() *cobra.Command {
	var archiveDir, file, fen string
	var quiet bool
	cmd := &cobra.Command{
		Use:   "replay [game-id]",
		Short: "Print a game move by move, from the archive or a descriptor file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var rec *store.Record
			switch {
			case file != "":
				moves, err := readDescriptors(file)
				if err != nil {
					return err
				}
				rec = &store.Record{InitialFEN: fen, Moves: moves}
				if rec.InitialFEN == "" {
					rec.InitialFEN = model.DefaultFEN
				}
			case archiveDir != "" && len(args) == 1:
				st, err := store.Open(archiveDir, false)
				if err != nil {
					return err
				}
				defer st.Close()
				if rec, err = st.Load(args[0]); err != nil {
					return err
				}
			case archiveDir != "":
				return listArchive(cmd.OutOrStdout(), archiveDir)
			default:
				return errors.New("replay needs --file, or --archive with an optional game id")
			}
			return replay(cmd.OutOrStdout(), rec, quiet)
		},
	}
	cmd.Flags().StringVar(&archiveDir, "archive", "", "archive directory")
	cmd.Flags().StringVar(&file, "file", "", "file of whitespace separated move descriptors")
	cmd.Flags().StringVar(&fen, "fen", "", "start position for --file")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "print only the final position")
	return cmd
}

func readDescriptors(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Fields(string(raw)), nil
}

func listArchive(w io.Writer, dir string) error {
	st, err := store.Open(dir, false)
	if err != nil {
		return err
	}
	defer st.Close()

	ids, err := st.List()
	if err != nil {
		return err
	}
	for _, id := range ids {
		rec, err := st.Load(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s  %-7s  %3d plies  %s\n", id, rec.Result, len(rec.Moves), rec.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func replay(w io.Writer, rec *store.Record, quiet bool) error {
	g, err := model.NewGame(model.WithFEN(rec.InitialFEN))
	if err != nil {
		return err
	}
	if !quiet {
		termui.DrawBoard(w, g, model.White)
	}
	for _, d := range rec.Moves {
		m, err := g.Play(d)
		if err != nil {
			return err
		}
		if quiet {
			continue
		}
		fmt.Fprintf(w, "\n%d. %s\n", (m.Ply()+1)/2, g.History().NotationFor(m))
		termui.DrawBoard(w, g, model.White)
	}
	if quiet {
		termui.DrawBoard(w, g, model.White)
	}
	termui.DrawStatus(w, g)
	if rec.Status != "" && rec.Status != g.State().Status.String() {
		fmt.Fprintf(w, "recorded result: %s %s\n", rec.Status, rec.Reason)
	}
	return nil
}
