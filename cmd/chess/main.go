package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:          "chess",
		Short:        "Play, replay and inspect chess games in the terminal",
		SilenceUsage: true,
	}
	root.AddCommand(playCmd(), replayCmd(), perftCmd())

	if err := root.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
