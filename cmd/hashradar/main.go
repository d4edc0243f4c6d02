package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hashradar",
		Short: "Rank trending hashtags per topic category from captured social posts",
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")

	root.AddCommand(analyzeCmd())
	root.AddCommand(trendsCmd())
	root.AddCommand(categoriesCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(runCmd())

	return root
}

func analyzeCmd() *cobra.Command {
	var (
		jsonOutput bool
		noExport   bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [category]",
		Short: "Run the analysis pipeline for one category (default: all)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := ""
			if len(args) == 1 {
				category = args[0]
			}
			return runAnalyze(category, jsonOutput, noExport)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print results as JSON instead of the report")
	cmd.Flags().BoolVar(&noExport, "no-export", false, "skip configured exports")
	return cmd
}

func trendsCmd() *cobra.Command {
	var (
		jsonOutput bool
		category   string
		runID      string
		minScore   float64
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Show ranked hashtags from the latest run",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrends(jsonOutput, category, runID, minScore, limit)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().StringVar(&runID, "run", "", "show a specific run (default: latest)")
	cmd.Flags().Float64Var(&minScore, "min-score", 0, "minimum trending score")
	cmd.Flags().IntVar(&limit, "limit", 50, "max hashtags to show")
	return cmd
}

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List configured categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategories()
		},
	}
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "server port (default: from config)")
	return cmd
}

func runCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start daemon with scheduled analysis and HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "server port (default: from config)")
	return cmd
}
