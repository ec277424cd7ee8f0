package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hadithview/internal/config"
	logpkg "github.com/kailas-cloud/hadithview/internal/logger"
	"github.com/kailas-cloud/hadithview/internal/render"
	"github.com/kailas-cloud/hadithview/internal/transport/httpapi"
)

// annotationLogFile marks commands that own the terminal and must log to a file.
const annotationLogFile = "log-file"

// app is the state shared by every command: one config, one logger, one client.
type app struct {
	env     string
	baseURL string
	lang    string
	logFile string

	cfg     config.Config
	logger  *zap.Logger
	client  *httpapi.Client
	metrics *prometheus.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "hadith",
		Short: "Search and browse hadith collections",
		Long: `hadith is a terminal client for the hadith search backend.

It searches across English, Arabic, Bengali and Urdu translations, browses
books page by page and shows single hadiths with every translation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			a.logMetrics()
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.env, "config-env", config.GetEnv(), "configuration environment (config/<env>.yaml)")
	pf.StringVar(&a.baseURL, "base-url", "", "backend API base URL, overrides api.base_url")
	pf.StringVar(&a.lang, "display-lang", "", "display language: en, ar, bn, ur (overrides display.language)")
	pf.StringVar(&a.logFile, "log-file", filepath.Join(os.TempDir(), "hadith-tui.log"),
		"log destination for the interactive UI")

	root.AddCommand(
		newSearchCmd(a),
		newHadithCmd(a),
		newBooksCmd(a),
		newBookCmd(a),
		newHealthCmd(a),
		newTUICmd(a),
		newStubCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads the configuration and builds the logger and the API client.
// Flags win over the config file.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.env)
	if err != nil {
		return err
	}
	if a.baseURL != "" {
		cfg.API.BaseURL = a.baseURL
	}
	if a.lang != "" {
		cfg.Display.Language = a.lang
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	a.cfg = cfg

	var outputs []string
	if cmd.Annotations[annotationLogFile] == "true" {
		outputs = []string{a.logFile}
	}
	a.logger, err = logpkg.NewLogger(a.env, cfg.Logging.Level, outputs...)
	if err != nil {
		return err
	}

	opts := []httpapi.Option{
		httpapi.WithLogger(a.logger),
		httpapi.WithAPIKey(cfg.API.APIKey),
	}
	if cfg.API.UserAgent != "" {
		opts = append(opts, httpapi.WithUserAgent(cfg.API.UserAgent))
	}
	if cfg.Metrics.Enabled {
		a.metrics = prometheus.NewRegistry()
		opts = append(opts, httpapi.WithPrometheus(a.metrics))
	}
	a.client, err = httpapi.New(cfg.API.BaseURL, opts...)
	if err != nil {
		return fmt.Errorf("create api client: %w", err)
	}

	a.logger.Debug("client configured",
		zap.String("env", a.env),
		zap.String("base_url", a.client.BaseURL()),
		zap.String("display_lang", cfg.Display.Language),
	)
	return nil
}

// renderer builds a Renderer for w using the display settings.
func (a *app) renderer(w io.Writer) *render.Renderer {
	return render.New(w, render.Options{
		Lang:     a.cfg.Language(),
		Truncate: a.cfg.Display.TruncateLength,
	})
}

// logMetrics writes the client operation counters to the log at exit.
func (a *app) logMetrics() {
	if a.metrics == nil || a.logger == nil {
		return
	}
	families, err := a.metrics.Gather()
	if err != nil {
		a.logger.Warn("gather client metrics", zap.Error(err))
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			fields := []zap.Field{zap.String("metric", mf.GetName())}
			for _, lp := range m.GetLabel() {
				fields = append(fields, zap.String(lp.GetName(), lp.GetValue()))
			}
			if c := m.GetCounter(); c != nil {
				fields = append(fields, zap.Float64("value", c.GetValue()))
			}
			if h := m.GetHistogram(); h != nil {
				fields = append(fields, zap.Uint64("count", h.GetSampleCount()), zap.Float64("sum", h.GetSampleSum()))
			}
			a.logger.Info("client metrics", fields...)
		}
	}
}
