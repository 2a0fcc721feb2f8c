// Package logging builds the service's structured logger on log/slog.
//
// Key features:
//   - JSON and text output formats
//   - Level and format from configuration
//   - request_id and trace_id taken from the record context
//   - Credential masking on error attributes
//
// Example usage:
//
//	logger := logging.NewLogger(cfg.Log)
//	slog.SetDefault(logger)
//	slog.InfoContext(ctx, "processing request")
package logging
