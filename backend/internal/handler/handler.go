package handler

import (
	"context"

	"github.com/itchan-dev/bbs/backend/internal/service"
	"github.com/itchan-dev/bbs/shared/config"
)

// HealthChecker reports whether storage is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// TextRenderer turns stored markdown into safe HTML for display.
type TextRenderer interface {
	Render(text string) string
}

type Handler struct {
	board   service.BoardService
	comment service.CommentService
	alert   service.AlertService
	text    TextRenderer
	health  HealthChecker
	cfg     *config.Config
}

func New(board service.BoardService, comment service.CommentService, alert service.AlertService, text TextRenderer, health HealthChecker, cfg *config.Config) *Handler {
	return &Handler{
		board:   board,
		comment: comment,
		alert:   alert,
		text:    text,
		health:  health,
		cfg:     cfg,
	}
}
