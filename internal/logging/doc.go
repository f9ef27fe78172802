// Package logging configures structured logging for hevcpress.
//
// It builds log/slog loggers with either a human-oriented console handler or
// a JSON handler, fans output across stdout and per-run log files, and
// provides typed attribute helpers plus standardized field names so log
// consumers can rely on a stable vocabulary.
package logging
