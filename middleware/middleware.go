// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alnvdl/wcf-truco/auth"
	"github.com/alnvdl/wcf-truco/models"
	"github.com/alnvdl/wcf-truco/report"
	"github.com/alnvdl/wcf-truco/truco"
)

// HandlerFunc executes one command
type HandlerFunc func(ctx context.Context, req *models.Request) models.Response

// WithLogging wraps a handler with command logging
func WithLogging(next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, req *models.Request) models.Response {
		start := time.Now()
		if req.ID == "" {
			req.ID = uuid.NewString()
		}
		user, _ := auth.UserFromContext(ctx)

		// Log command
		slog.Info("command started",
			"request_id", req.ID,
			"command", req.Command,
			"user", user,
		)

		resp := next(ctx, req)

		// Log completion
		duration := time.Since(start)
		attrs := []any{
			"request_id", req.ID,
			"command", req.Command,
			"duration_ms", duration.Milliseconds(),
		}
		if resp.Err != nil {
			attrs = append(attrs, "error", resp.Err)
		}
		slog.Info("command completed", attrs...)

		return resp
	}
}

// TextResponse is a successful reply
func TextResponse(text string) models.Response {
	return models.Response{Text: text}
}

// ErrorResponse turns err into a reply. Command errors are shown as is;
// anything else is logged and replaced by a generic message.
func ErrorResponse(err error) models.Response {
	var terr *truco.Error
	if errors.As(err, &terr) {
		return models.Response{Text: terr.Message, Err: err}
	}
	slog.Error("command failed", "error", err)
	return models.Response{Text: report.StorageError, Err: err}
}
