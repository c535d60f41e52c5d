package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/spf13/cobra"
)

func perftCmd() *cobra.Command {
	var fen string
	var depth int
	var divide bool
	cmd := &cobra.Command{
		Use:   "perft",
		Short: "Count leaf nodes of the legal move tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := model.NewGame(model.WithFEN(fen))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			var split map[string]uint64
			var fn func(string, uint64)
			if divide {
				split = map[string]uint64{}
				fn = func(move string, nodes uint64) { split[move] = nodes }
			}

			start := time.Now()
			res := model.Perft(g, depth, fn)
			elapsed := time.Since(start)

			moves := make([]string, 0, len(split))
			for m := range split {
				moves = append(moves, m)
			}
			sort.Strings(moves)
			for _, m := range moves {
				fmt.Fprintf(out, "%s: %d\n", m, split[m])
			}
			fmt.Fprintf(out, "d=%d nodes=%d rate=%dn/s cap=%d enp=%d cas=%d pro=%d chk=%d mate=%d (%.3fs elapsed)\n",
				depth, res.Nodes, int(float64(res.Nodes)/elapsed.Seconds()),
				res.Captures, res.EnPassants, res.Castles, res.Promotions, res.Checks, res.Checkmates,
				elapsed.Seconds())
			return nil
		},
	}
	cmd.Flags().StringVar(&fen, "fen", model.DefaultFEN, "position to count from")
	cmd.Flags().IntVarP(&depth, "depth", "d", 3, "search depth in plies")
	cmd.Flags().BoolVar(&divide, "divide", false, "print node counts per root move")
	return cmd
}
