package logx

import (
	"context"

	"pkt.systems/pslog"
)

type contextKey int

const (
	userKey contextKey = iota
	operationKey
)

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// WithUser annotates the logger with the username if present.
func WithUser(ctx context.Context, username string) pslog.Logger {
	log := pslog.Ctx(ctx)
	if username != "" {
		if current, ok := ctx.Value(userKey).(string); ok && current == username {
			return log
		}
		log = log.With("user", username)
	}
	return log
}

// WithOperation annotates the logger with the operation name and, when
// present, the user.
func WithOperation(ctx context.Context, operation, username string) pslog.Logger {
	log := WithUser(ctx, username)
	if operation != "" {
		if current, ok := ctx.Value(operationKey).(string); ok && current == operation {
			return log
		}
		log = log.With("op", operation)
	}
	return log
}

// WithIssue annotates the logger with an issue key when available.
func WithIssue(log pslog.Logger, issueKey string) pslog.Logger {
	if issueKey != "" {
		log = log.With("issue", issueKey)
	}
	return log
}

// WithProject annotates the logger with a project key when available.
func WithProject(log pslog.Logger, projectKey string) pslog.Logger {
	if projectKey != "" {
		log = log.With("project", projectKey)
	}
	return log
}

// ContextWithUser stores the user marker on the context for log de-duplication.
func ContextWithUser(ctx context.Context, username string) context.Context {
	if ctx == nil || username == "" {
		return ctx
	}
	return context.WithValue(ctx, userKey, username)
}

// ContextWithOperation stores the operation marker on the context.
func ContextWithOperation(ctx context.Context, operation string) context.Context {
	if ctx == nil || operation == "" {
		return ctx
	}
	return context.WithValue(ctx, operationKey, operation)
}

// ContextWithOperationLogger attaches the logger and the operation marker to the context.
func ContextWithOperationLogger(ctx context.Context, log pslog.Logger, operation string) context.Context {
	ctx = pslog.ContextWithLogger(ctx, log)
	return ContextWithOperation(ctx, operation)
}

// ContextWithUserLogger attaches the logger and user marker to the context.
func ContextWithUserLogger(ctx context.Context, log pslog.Logger, username string) context.Context {
	ctx = pslog.ContextWithLogger(ctx, log)
	return ContextWithUser(ctx, username)
}

// OperationFromContext returns the operation marker, if any.
func OperationFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	op, _ := ctx.Value(operationKey).(string)
	return op
}
