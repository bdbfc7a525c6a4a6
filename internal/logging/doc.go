// Package logging builds slog loggers with console and JSON handlers.
//
// The console handler emits compact human-readable lines for terminal use;
// the JSON handler produces machine-readable records with canonical field
// names. NewFromConfig mirrors output to a log file under the configured log
// directory so encode runs remain inspectable after the fact.
package logging
