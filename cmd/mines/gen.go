package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/mines"
)

var (
	genPreset string
	genParams string
	genSeed   uint64
	genCount  int
)

func init() {
	genCmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate boards and print their layout",
		Long: `Generate one or more boards and print where the mines are.

Examples:
  mines gen --preset easy --seed 42
  mines gen --params 16:30:99 -n 3`,
		RunE: runGen,
	}

	genCmd.Flags().StringVarP(&genPreset, "preset", "p", "easy", "Preset: easy, medium or difficult")
	genCmd.Flags().StringVar(&genParams, "params", "", "Custom parameters as height:width:mines, overrides --preset")
	genCmd.Flags().Uint64VarP(&genSeed, "seed", "s", 0, "Random seed, 0 picks one")
	genCmd.Flags().IntVarP(&genCount, "number", "n", 1, "Number of boards to generate")

	rootCmd.AddCommand(genCmd)
}

func genGameParams() (mines.GameParams, error) {
	if genParams != "" {
		params, err := mines.ParseSeed(genParams)
		if err != nil {
			return mines.GameParams{}, err
		}
		return *params, nil
	}
	return config.Preset(genPreset)
}

func runGen(cmd *cobra.Command, args []string) error {
	if err := setupEngineLogging(); err != nil {
		return err
	}

	params, err := genGameParams()
	if err != nil {
		return err
	}

	seed := genSeed
	if seed == 0 {
		seed = rand.Uint64()
	}
	r := rand.New(rand.NewPCG(seed, seed))

	out := cmd.OutOrStdout()
	for i := range genCount {
		board, err := mines.NewFromParams(params, r)
		if err != nil {
			return fmt.Errorf("generation failed: %w", err)
		}
		fmt.Fprintf(out, "Board #%d (%s, seed %d):\n", i+1, params.Seed(), seed)
		fmt.Fprintln(out, board.Layout())
	}
	return nil
}
