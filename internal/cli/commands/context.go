// Package commands implements the mtx subcommands.
package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/twistorlab/mtx/internal/cli/config"
	"github.com/twistorlab/mtx/internal/cli/output"
)

// configKey is used to store config in the command context.
type configKey struct{}

// rendererKey is used to store the renderer in the command context.
type rendererKey struct{}

// WithConfig stores the config in the context.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// WithRenderer stores the renderer in the context.
func WithRenderer(ctx context.Context, r *output.Renderer) context.Context {
	return context.WithValue(ctx, rendererKey{}, r)
}

// ConfigFrom retrieves the config from the command context, falling back to
// defaults when none was stored.
func ConfigFrom(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

// RendererFrom retrieves the renderer from the command context, falling back
// to a fresh renderer on the command's own streams.
func RendererFrom(cmd *cobra.Command) *output.Renderer {
	if r, ok := cmd.Context().Value(rendererKey{}).(*output.Renderer); ok {
		return r
	}
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ModeAuto)
}

// rendererWithFormat returns the context renderer, or a new one when the
// command's --format flag overrides the global output mode. An unknown format
// name is an error.
func rendererWithFormat(cmd *cobra.Command, format string) (*output.Renderer, error) {
	if format == "" {
		return RendererFrom(cmd), nil
	}
	mode, err := output.ParseMode(format)
	if err != nil {
		return nil, err
	}
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode), nil
}
