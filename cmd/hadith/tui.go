package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hadithview/internal/ui"
	"github.com/kailas-cloud/hadithview/internal/usecase/browse"
	"github.com/kailas-cloud/hadithview/internal/usecase/detail"
	"github.com/kailas-cloud/hadithview/internal/usecase/search"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "tui",
		Short:       "Interactive search and browse",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationLogFile: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps := ui.Deps{
				Search: search.New(a.client, a.logger).
					WithDefaults("", 0, a.cfg.Display.SearchLimit),
				Browse:   browse.New(a.client, a.logger).WithPageSize(a.cfg.Display.PageSize),
				Detail:   detail.New(a.client, a.logger),
				Books:    a.client,
				Renderer: a.renderer(cmd.OutOrStdout()),
				Logger:   a.logger,
			}

			a.logger.Info("tui started", zap.String("base_url", a.client.BaseURL()))
			p := tea.NewProgram(ui.New(cmd.Context(), deps),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run tui: %w", err)
			}
			return nil
		},
	}
}
