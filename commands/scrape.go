package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"mercari-scraper/models"
	"mercari-scraper/storage"
)

var (
	scrapeCategory string
	scrapePriceMin int
	scrapePriceMax int
	scrapePages    int
)

func init() {
	scrapeCmd.Flags().StringVar(&scrapeCategory, "category", models.DefaultCategory, "Category tag stored on every listing.")
	scrapeCmd.Flags().IntVar(&scrapePriceMin, "price-min", models.DefaultPriceMin, "Minimum price filter.")
	scrapeCmd.Flags().IntVar(&scrapePriceMax, "price-max", models.DefaultPriceMax, "Maximum price filter.")
	scrapeCmd.Flags().IntVar(&scrapePages, "pages", 0, "Result pages to fetch (default MAX_PAGES).")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape <keyword> [--category c] [--price-min n] [--price-max n] [--pages n]",
	Short: "Runs one scrape for a keyword and stores new listings.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := openStore(ctx, cfg, logger)
		if err != nil {
			logger.Error("Failed to open store: %v", err)
			return err
		}
		defer store.Close()

		var sample storage.SampleWriter
		if cfg.CSVOutputPath != "" {
			w, err := storage.NewCSVWriter(cfg.CSVOutputPath)
			if err != nil {
				logger.Error("Failed to create CSV writer: %v", err)
				return err
			}
			defer w.Close()
			sample = w
		}

		driver, err := newDriver(cfg, logger)
		if err != nil {
			return err
		}

		pages := scrapePages
		if pages <= 0 {
			pages = cfg.MaxPages
		}
		q := models.SearchQuery{
			Keyword:  args[0],
			Category: scrapeCategory,
			PriceMin: scrapePriceMin,
			PriceMax: scrapePriceMax,
			MaxPages: pages,
		}

		res, err := newPipeline(driver, store, sample).Run(ctx, q)
		if err != nil {
			logger.Error("Run failed after %d listings: %v", len(res.Listings), err)
			return err
		}

		fmt.Printf("\n  Done. %d listings scraped, %d new.\n\n", len(res.Listings), res.Inserted)
		return nil
	},
}
