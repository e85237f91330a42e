package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Fbari2002/side-quest/internal/fallback"
	"github.com/Fbari2002/side-quest/internal/quest"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List offline quests with their scores for the given input",
	RunE: func(cmd *cobra.Command, args []string) error {
		mood := genMood
		if mood == "" {
			mood = "curious"
		}
		req, err := quest.Validate(map[string]any{
			"mood":           mood,
			"time_available": "30 minutes",
			"energy":         genEnergy,
			"social":         genSocial,
			"chaos":          genChaos,
			"noSpend":        genNoSpend,
			"lowSensory":     genLowSensory,
		})
		if err != nil {
			return err
		}

		c, err := fallback.LoadCatalog(cfg.Fallback.CatalogPath)
		if err != nil {
			return err
		}

		type row struct {
			title string
			score int
			tags  string
		}
		rows := make([]row, 0, len(c.Quests))
		for _, q := range c.Quests {
			rows = append(rows, row{q.Title, fallback.Score(q, req), strings.Join(q.FallbackFor, ",")})
		}
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].score > rows[j].score })

		fmt.Printf("Offline Catalog (version %d, %d quests)\n", c.Version, len(c.Quests))
		fmt.Printf("=======================================\n")
		for _, r := range rows {
			fmt.Printf("  %3d  %-45s  %s\n", r.score, r.title, r.tags)
		}
		return nil
	},
}

func init() {
	catalogCmd.Flags().StringVar(&genMood, "mood", "", "Mood to score against")
	catalogCmd.Flags().StringVar(&genEnergy, "energy", "medium", "Energy level: low, medium or high")
	catalogCmd.Flags().StringVar(&genSocial, "social", "solo", "Social mode: solo or social")
	catalogCmd.Flags().Float64Var(&genChaos, "chaos", 3, "Chaos level from 0 to 10")
	catalogCmd.Flags().BoolVar(&genNoSpend, "no-spend", false, "Avoid anything that costs money")
	catalogCmd.Flags().BoolVar(&genLowSensory, "low-sensory", false, "Avoid crowds, loud and bright places")
	rootCmd.AddCommand(catalogCmd)
}
