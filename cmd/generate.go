package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/Fbari2002/side-quest/internal/quest"
	"github.com/Fbari2002/side-quest/internal/share"
)

var (
	genMood       string
	genTime       string
	genEnergy     string
	genSocial     string
	genChaos      float64
	genNoSpend    bool
	genLowSensory bool
	genFormat     string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one quest and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		if genFormat != "json" && genFormat != "share" {
			return fmt.Errorf("unknown format %q (want json or share)", genFormat)
		}

		req, err := quest.Validate(map[string]any{
			"mood":           genMood,
			"time_available": genTime,
			"energy":         genEnergy,
			"social":         genSocial,
			"chaos":          genChaos,
			"noSpend":        genNoSpend,
			"lowSensory":     genLowSensory,
		})
		if err != nil {
			return err
		}

		a, err := buildApp(cfg, logger)
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		res, err := a.service.Generate(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "path: %s, mode: %s\n", res.Path, res.Mode())

		if genFormat == "share" {
			fmt.Println(share.Format(res.Quest))
			fmt.Println("App: " + share.SpotifyAppURL(res.Quest.SoundtrackQuery))
			return nil
		}

		out, err := json.MarshalIndent(res.Quest, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding quest: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&genMood, "mood", "", "How you feel right now (required)")
	generateCmd.Flags().StringVar(&genTime, "time", "", "How much time you have, e.g. \"30 minutes\" (required)")
	generateCmd.Flags().StringVar(&genEnergy, "energy", "medium", "Energy level: low, medium or high")
	generateCmd.Flags().StringVar(&genSocial, "social", "solo", "Social mode: solo or social")
	generateCmd.Flags().Float64Var(&genChaos, "chaos", 3, "Chaos level from 0 to 10")
	generateCmd.Flags().BoolVar(&genNoSpend, "no-spend", false, "Avoid anything that costs money")
	generateCmd.Flags().BoolVar(&genLowSensory, "low-sensory", false, "Avoid crowds, loud and bright places")
	generateCmd.Flags().StringVar(&genFormat, "format", "json", "Output format: json or share")
	rootCmd.AddCommand(generateCmd)
}
