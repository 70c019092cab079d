// cmd/chatbot-cli/main.go
//
// Command line front end for the chatbot: classify a query, ask it
// end to end, or list the supported intents.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"airline-bot/internal/airports"
	"airline-bot/internal/chat"
	"airline-bot/internal/common/config"
	chttp "airline-bot/internal/common/http"
	"airline-bot/internal/common/logger"
	airportlookup "airline-bot/internal/handlers/airport-lookup"
	baggagepolicy "airline-bot/internal/handlers/baggage-policy"
	batteryrule "airline-bot/internal/handlers/battery-rule"
	liveflights "airline-bot/internal/handlers/live-flights"
	tsarule "airline-bot/internal/handlers/tsa-rule"
	"airline-bot/internal/intent"
	"airline-bot/pkg/registry"
)

var (
	flagDataset  string
	flagRegistry string
	flagVerbose  bool
)

func main() {
	root := &cobra.Command{
		Use:          "chatbot",
		Short:        "Airline travel chatbot",
		Long:         "Answers airport, live flight, TSA, battery and baggage questions from the terminal.",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagDataset, "dataset", "", "path to airports.dat (defaults to the configured path)")
	root.PersistentFlags().StringVar(&flagRegistry, "registry", "", "path to the intent registry (defaults to the configured path)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	root.AddCommand(classifyCmd(), askCmd(), intentsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <query>",
		Short: "Show how a query would be classified, without answering it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}

			dataset, err := loadDataset(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			parsed := intent.NewRouter(dataset).Classify(strings.Join(args, " "))
			out, _ := json.MarshalIndent(parsed, "", "  ")
			fmt.Println(string(out))
			return nil
		},
	}
}

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <query>",
		Short: "Ask the chatbot a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}

			dataset, err := loadDataset(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			engine := chat.NewEngine(
				intent.NewRouter(dataset),
				chat.Handlers{
					Airports: airportlookup.NewHandler(dataset, log),
					Flights:  liveflights.NewHandler(liveflights.FromAppConfig(cfg.OpenSky), dataset, nil, log),
					Tsa:      tsarule.NewHandler(log),
					Battery:  batteryrule.NewHandler(log),
					Baggage:  baggagepolicy.NewHandler(log),
				},
				nil,
				log,
			)

			resp, err := engine.Ask(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			fmt.Println(resp.Answer)
			if resp.Source != nil {
				fmt.Printf("Source: %s\n", *resp.Source)
			}
			return nil
		},
	}
}

func intentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "intents",
		Short: "List the intents the chatbot supports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}

			path := cfg.Registry.Path
			if flagRegistry != "" {
				path = flagRegistry
			}
			reg, err := registry.LoadRegistry(path)
			if err != nil {
				return err
			}

			for _, def := range reg.Intents {
				fmt.Printf("%-16s %s\n", def.Intent, def.Description)
				if len(def.Examples) > 0 {
					fmt.Printf("%-16s e.g. %s\n", "", strings.Join(def.Examples, " | "))
				}
			}
			return nil
		},
	}
}

func setup() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("config load failed: %w", err)
	}

	level := "error"
	if flagVerbose {
		level = "debug"
	}
	log := logger.NewZapAdapter(logger.New(level, "console"))
	return cfg, log, nil
}

func loadDataset(ctx context.Context, cfg *config.Config) (*airports.Dataset, error) {
	path := cfg.Dataset.Path
	if flagDataset != "" {
		path = flagDataset
	}

	if ctx == nil {
		ctx = context.Background()
	}

	dataset, err := airports.LoadFile(path)
	if err == nil {
		return dataset, nil
	}

	client := chttp.NewClient(time.Duration(cfg.Dataset.DownloadTimeout) * time.Millisecond)
	dataset, derr := airports.Download(ctx, client, cfg.Dataset.URL)
	if derr != nil {
		return nil, fmt.Errorf("dataset unavailable locally (%v) and download failed: %w", err, derr)
	}
	return dataset, nil
}
