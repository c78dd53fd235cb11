package service

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/itchan-dev/bbs/backend/internal/notify"
	"github.com/itchan-dev/bbs/shared/domain"
	internal_errors "github.com/itchan-dev/bbs/shared/errors"
)

type AlertService interface {
	Register(ctx context.Context, author domain.Author, keyword domain.Keyword) (*domain.KeywordAlert, error)
	ListByAuthor(ctx context.Context, author domain.Author) ([]domain.KeywordAlert, error)
	Delete(ctx context.Context, id domain.AlertId, author domain.Author) error
}

type Alert struct {
	storage      AlertStorage
	matchTimeout time.Duration
}

type AlertStorage interface {
	CreateAlert(ctx context.Context, creationData domain.KeywordAlertCreationData) (*domain.KeywordAlert, error)
	ListAlertsByAuthor(ctx context.Context, author domain.Author) ([]domain.KeywordAlert, error)
	// DeleteAlert returns NotFound unless id exists and belongs to author.
	DeleteAlert(ctx context.Context, id domain.AlertId, author domain.Author) error
}

func NewAlert(storage AlertStorage, matchTimeout time.Duration) AlertService {
	return &Alert{storage: storage, matchTimeout: matchTimeout}
}

func (a *Alert) Register(ctx context.Context, author domain.Author, keyword domain.Keyword) (*domain.KeywordAlert, error) {
	if author == "" || keyword == "" {
		return nil, internal_errors.BadRequest("Required fields missing")
	}
	if utf8.RuneCountInString(keyword) > domain.MaxKeywordLength {
		return nil, internal_errors.BadRequest(fmt.Sprintf("Keyword is longer than %d characters", domain.MaxKeywordLength))
	}
	if _, err := notify.CompilePattern(keyword, a.matchTimeout); err != nil {
		return nil, internal_errors.BadRequest(fmt.Sprintf("Invalid keyword pattern: %s", err))
	}

	return a.storage.CreateAlert(ctx, domain.KeywordAlertCreationData{Author: author, Keyword: keyword})
}

func (a *Alert) ListByAuthor(ctx context.Context, author domain.Author) ([]domain.KeywordAlert, error) {
	if author == "" {
		return nil, internal_errors.BadRequest("Required fields missing")
	}
	alerts, err := a.storage.ListAlertsByAuthor(ctx, author)
	if err != nil {
		return nil, err
	}
	if alerts == nil {
		alerts = []domain.KeywordAlert{}
	}
	return alerts, nil
}

func (a *Alert) Delete(ctx context.Context, id domain.AlertId, author domain.Author) error {
	if author == "" {
		return internal_errors.BadRequest("Required fields missing")
	}
	return a.storage.DeleteAlert(ctx, id, author)
}
