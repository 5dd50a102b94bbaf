package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldRunID is the structured log field key correlating one batch run.
	FieldRunID = "run_id"
	// FieldResume is the structured log field key for the candidate document name.
	FieldResume = "resume"
	// FieldJob is the structured log field key for the target document name.
	FieldJob = "job"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// A nil logger is replaced with a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// DocumentFields describes one analysis pair. Empty values are skipped.
func DocumentFields(runID, resume, job string) []zap.Field {
	return StringFields(
		StringField{Key: FieldRunID, Value: runID},
		StringField{Key: FieldResume, Value: resume},
		StringField{Key: FieldJob, Value: job},
	)
}

// WithDocumentFields attaches the analysis pair fields to the logger.
func WithDocumentFields(logger *zap.Logger, runID, resume, job string) *zap.Logger {
	return WithFields(logger, DocumentFields(runID, resume, job)...)
}
