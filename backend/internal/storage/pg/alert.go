package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/itchan-dev/bbs/shared/domain"
	internal_errors "github.com/itchan-dev/bbs/shared/errors"
)

func (s *Storage) CreateAlert(ctx context.Context, creationData domain.KeywordAlertCreationData) (*domain.KeywordAlert, error) {
	alert := domain.KeywordAlert{Author: creationData.Author, Keyword: creationData.Keyword}
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO keyword_alerts (author, keyword) VALUES ($1, $2) RETURNING id",
		creationData.Author, creationData.Keyword,
	).Scan(&alert.Id)
	if err != nil {
		return nil, fmt.Errorf("failed to insert keyword alert: %w", err)
	}
	return &alert, nil
}

// ListAlerts returns every registered alert. It is read on each keyword check.
func (s *Storage) ListAlerts(ctx context.Context) ([]domain.KeywordAlert, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, author, keyword FROM keyword_alerts ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query keyword alerts: %w", err)
	}
	return collectAlerts(rows)
}

func (s *Storage) ListAlertsByAuthor(ctx context.Context, author domain.Author) ([]domain.KeywordAlert, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, author, keyword FROM keyword_alerts WHERE author = $1 ORDER BY id", author)
	if err != nil {
		return nil, fmt.Errorf("failed to query keyword alerts: %w", err)
	}
	return collectAlerts(rows)
}

func (s *Storage) DeleteAlert(ctx context.Context, id domain.AlertId, author domain.Author) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM keyword_alerts WHERE id = $1 AND author = $2", id, author)
	if err != nil {
		return fmt.Errorf("failed to delete keyword alert: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return internal_errors.NotFound("Alert not found")
	}
	return nil
}

func collectAlerts(rows *sql.Rows) ([]domain.KeywordAlert, error) {
	defer rows.Close()
	alerts := []domain.KeywordAlert{}
	for rows.Next() {
		var a domain.KeywordAlert
		if err := rows.Scan(&a.Id, &a.Author, &a.Keyword); err != nil {
			return nil, fmt.Errorf("failed to scan keyword alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate keyword alerts: %w", err)
	}
	return alerts, nil
}
