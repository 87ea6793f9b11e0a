/*
 *
 * webdriverd - an embedded W3C WebDriver server for native app shells
 * Copyright (C) 2016 Load Impact
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU Affero General Public License as
 * published by the Free Software Foundation, either version 3 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU Affero General Public License for more details.
 *
 * You should have received a copy of the GNU Affero General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

// Command webdriverd starts the embedded WebDriver HTTP API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel"

	"github.com/nativewd/webdriverd/internal/artifact"
	"github.com/nativewd/webdriverd/internal/config"
	"github.com/nativewd/webdriverd/internal/httpapi"
	"github.com/nativewd/webdriverd/internal/tracing"
	"github.com/nativewd/webdriverd/internal/webdriver"
)

const banner = `webdriverd`

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// rootFlags mirrors the command line surface: the address, logging, color
// and artifact-directory settings, which override the matching environment
// variables in internal/config. The timeouts and session poll interval are
// set through the environment only.
type rootFlags struct {
	address     string
	logLevel    string
	logFormat   string
	noColor     bool
	artifactDir string
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}
	isTTY := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	cmd := &cobra.Command{
		Use:           "webdriverd",
		Short:         "an embedded W3C WebDriver server",
		Long:          "\n" + getBanner(flags.noColor || !isTTY),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags)
		},
	}
	cmd.PersistentFlags().AddFlagSet(rootPersistentFlagSet(flags))
	return cmd
}

func rootPersistentFlagSet(flags *rootFlags) *pflag.FlagSet {
	fs := pflag.NewFlagSet("", pflag.ContinueOnError)
	fs.StringVarP(&flags.address, "address", "a", "", "address for the WebDriver HTTP API (overrides WEBDRIVERD_ADDRESS)")
	fs.StringVar(&flags.logLevel, "log-level", "", "panic, fatal, error, warn, info, debug or trace")
	fs.StringVar(&flags.logFormat, "log-format", "", "text, json or raw")
	fs.BoolVar(&flags.noColor, "no-color", false, "disable colored log output")
	fs.StringVar(&flags.artifactDir, "artifact-dir", "", "directory screenshots and printed PDFs are saved to")
	return fs
}

func getColor(noColor bool, attrs ...color.Attribute) *color.Color {
	if noColor {
		c := color.New()
		c.DisableColor()
		return c
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

func getBanner(noColor bool) string {
	return getColor(noColor, color.FgCyan).Sprint(banner)
}

func run(flags *rootFlags) error {
	env := buildEnvMap(os.Environ())
	cfg, err := config.FromEnv(env)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	cfg = cfg.Apply(config.Config{
		Address:     flags.address,
		LogLevel:    flags.logLevel,
		LogFormat:   flags.logFormat,
		NoColor:     flags.noColor,
		ArtifactDir: flags.artifactDir,
	})

	log := newLogger(cfg)

	tp := tracing.NewProvider()
	otel.SetTracerProvider(tp)
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.WithError(err).Warn("failed to shut down tracer provider")
		}
	}()

	d := httpapi.NewDeps(log)
	d.SetArtifacts(artifact.NewStore(afero.NewOsFs(), cfg.ArtifactDir))
	d.Sessions.SetDefaultTimeouts(webdriver.Timeouts{
		ImplicitMs: cfg.ImplicitTimeout.Milliseconds(),
		PageLoadMs: cfg.PageLoadTimeout.Milliseconds(),
		ScriptMs:   cfg.ScriptTimeout.Milliseconds(),
	})
	d.Sessions.SetPollInterval(cfg.SessionReadyPollInterval)

	// A standalone binary has no application chrome opening a window for
	// it, so one is opened up front rather than lazily on first session.
	d.Windows.Open()

	srv := httpapi.NewAPIServer(cfg.Address, d)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithField("address", cfg.Address).Info("webdriverd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func newLogger(cfg config.Config) *logrus.Logger {
	stderrTTY := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	out := colorable.NewColorable(os.Stderr)

	log := &logrus.Logger{
		Out:   out,
		Hooks: make(logrus.LevelHooks),
		Level: logrus.InfoLevel,
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.Level = level
	}

	switch cfg.LogFormat {
	case "json":
		log.Formatter = &logrus.JSONFormatter{}
	case "raw":
		log.Formatter = &rawFormatter{}
	default:
		log.Formatter = &logrus.TextFormatter{
			ForceColors:   stderrTTY && !cfg.NoColor,
			DisableColors: cfg.NoColor,
		}
	}
	return log
}

// rawFormatter prints only the message, no decoration.
type rawFormatter struct{}

func (rawFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return append([]byte(entry.Message), '\n'), nil
}

func buildEnvMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if idx := strings.IndexRune(kv, '='); idx != -1 {
			env[kv[:idx]] = kv[idx+1:]
		} else {
			env[kv] = ""
		}
	}
	return env
}
