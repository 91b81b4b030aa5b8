package logger

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger with compliance-specific functionality
type Logger struct {
	*zap.Logger
	serviceName string
}

// ContextKey for request context values
type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
	OperatorKey  ContextKey = "operator_id"
	TraceIDKey   ContextKey = "trace_id"
)

// New creates a new logger instance
func New(serviceName, environment string, debug bool) (*Logger, error) {
	var config zap.Config

	if environment == "production" {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if debug {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	// Add service metadata
	config.InitialFields = map[string]interface{}{
		"service": serviceName,
		"env":     environment,
		"pid":     os.Getpid(),
	}

	zapLogger, err := config.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	)
	if err != nil {
		return nil, err
	}

	return &Logger{
		Logger:      zapLogger,
		serviceName: serviceName,
	}, nil
}

// Named returns a named sub-logger
func (l *Logger) Named(name string) *Logger {
	return &Logger{
		Logger:      l.Logger.Named(name),
		serviceName: l.serviceName,
	}
}

// WithContext returns a logger with context values
func (l *Logger) WithContext(ctx context.Context) *Logger {
	fields := []zap.Field{}

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	if operatorID, ok := ctx.Value(OperatorKey).(string); ok && operatorID != "" {
		fields = append(fields, zap.String("operator_id", operatorID))
	}
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok && traceID != "" {
		fields = append(fields, zap.String("trace_id", traceID))
	}

	return &Logger{
		Logger:      l.With(fields...),
		serviceName: l.serviceName,
	}
}

// WithDocument returns a logger with document context
func (l *Logger) WithDocument(documentID, ownerID string) *Logger {
	return &Logger{
		Logger: l.With(
			zap.String("document_id", documentID),
			zap.String("owner_id", ownerID),
		),
		serviceName: l.serviceName,
	}
}

// WithCase returns a logger with case context
func (l *Logger) WithCase(caseID, caseNumber string) *Logger {
	return &Logger{
		Logger: l.With(
			zap.String("case_id", caseID),
			zap.String("case_number", caseNumber),
		),
		serviceName: l.serviceName,
	}
}

// DocumentUploaded logs a successful document upload
func (l *Logger) DocumentUploaded(documentID, ownerID, fileName string) {
	l.Info("document uploaded",
		zap.String("document_id", documentID),
		zap.String("owner_id", ownerID),
		zap.String("file_name", fileName),
	)
}

// VerificationStarted logs the start of a verification run
func (l *Logger) VerificationStarted(documentID, ownerID string) {
	l.Info("verification started",
		zap.String("document_id", documentID),
		zap.String("owner_id", ownerID),
	)
}

// VerificationCompleted logs the completion of a verification run
func (l *Logger) VerificationCompleted(documentID string, riskScore int, fraudulent bool, durationMs int64) {
	l.Info("verification completed",
		zap.String("document_id", documentID),
		zap.Int("risk_score", riskScore),
		zap.Bool("is_fraudulent", fraudulent),
		zap.Int64("duration_ms", durationMs),
	)
}

// AlertCreated logs alert creation
func (l *Logger) AlertCreated(alertID, alertType string, severity string, riskScore int) {
	l.Warn("alert created",
		zap.String("alert_id", alertID),
		zap.String("alert_type", alertType),
		zap.String("severity", severity),
		zap.Int("risk_score", riskScore),
	)
}

// AuditEntryAppended logs an audit trail append
func (l *Logger) AuditEntryAppended(entryID, actionType, entityType string) {
	l.Info("audit entry appended",
		zap.String("entry_id", entryID),
		zap.String("action_type", actionType),
		zap.String("entity_type", entityType),
	)
}

// CaseCreated logs case creation
func (l *Logger) CaseCreated(caseID, caseNumber, customerID string) {
	l.Info("case created",
		zap.String("case_id", caseID),
		zap.String("case_number", caseNumber),
		zap.String("customer_id", customerID),
	)
}

// CaseUpdated logs a case mutation
func (l *Logger) CaseUpdated(caseID, caseNumber string, status string) {
	l.Info("case updated",
		zap.String("case_id", caseID),
		zap.String("case_number", caseNumber),
		zap.String("status", status),
	)
}

// EventPublishFailed logs a non-fatal event bus failure
func (l *Logger) EventPublishFailed(topic string, err error) {
	l.Warn("event publish failed",
		zap.String("topic", topic),
		zap.Error(err),
	)
}

// Helper field functions

// ErrorField creates an error field
func ErrorField(err error) zap.Field {
	return zap.Error(err)
}

// DurationField creates a duration field
func DurationField(name string, d time.Duration) zap.Field {
	return zap.Duration(name, d)
}

// StringField creates a string field
func StringField(key, value string) zap.Field {
	return zap.String(key, value)
}

// IntField creates an int field
func IntField(key string, value int) zap.Field {
	return zap.Int(key, value)
}
