// Package errors provides the classified error primitives used across perfreport.
//
// Every failure of a report build is fatal to that build. Classification exists
// so the CLI can pick an exit code and so logs carry a stable category.
//
// Key features:
//   - ErrorCategory: broad error classification (config, template, figure, filesystem, ...)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - ClassifiedError: structured error with category, severity, cause and context
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLIErrorAdapter: exit codes and user-facing formatting
//
// Example usage:
//
//	err := errors.TemplateError("render layout").
//		WithCause(renderErr).
//		WithContext("template", "layout.html").
//		Build()
package errors
