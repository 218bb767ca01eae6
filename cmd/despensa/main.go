package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/despensa-hq/despensa/internal/app"
	"github.com/despensa-hq/despensa/internal/config"
	"github.com/despensa-hq/despensa/internal/logger"
	"github.com/despensa-hq/despensa/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "despensa",
		Short:        "Genera listas de compra a partir de recetas",
		SilenceUsage: true,
	}
	root.AddCommand(newGenerateCmd(), newTuiCmd())
	return root
}

func newGenerateCmd() *cobra.Command {
	var recipes, ingredients string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "One-shot: request a shopping list and print it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer logger.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			text, err := app.GenerateOnce(ctx, cfg, log, recipes, ingredients)
			if err != nil {
				return fmt.Errorf("generate shopping list: %w", err)
			}
			fmt.Println(text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&recipes, "recipes", "r", "", "comma-separated recipe names")
	cmd.Flags().StringVarP(&ingredients, "ingredients", "i", "", "comma-separated ingredients already at home")
	_ = cmd.MarkFlagRequired("recipes")
	return cmd
}

func newTuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer logger.Close()

			ctrl, err := app.NewController(cfg, log)
			if err != nil {
				return fmt.Errorf("init controller: %w", err)
			}
			defer ctrl.Close()

			program := tea.NewProgram(tui.New(ctrl), tea.WithContext(cmd.Context()))
			if _, err := program.Run(); err != nil && err != context.Canceled {
				return fmt.Errorf("run tui: %w", err)
			}
			return nil
		},
	}
}

func setup() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.Init(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}
