package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/itchan-dev/bbs/shared/domain"
)

func (s *Storage) CreateAlert(ctx context.Context, creationData domain.KeywordAlertCreationData) (*domain.KeywordAlert, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO keyword_alerts (author, keyword) VALUES (?, ?)",
		creationData.Author, creationData.Keyword,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert keyword alert: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get keyword alert id: %w", err)
	}
	return &domain.KeywordAlert{Id: id, Author: creationData.Author, Keyword: creationData.Keyword}, nil
}

func (s *Storage) ListAlerts(ctx context.Context) ([]domain.KeywordAlert, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, author, keyword FROM keyword_alerts ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query keyword alerts: %w", err)
	}
	return collectAlerts(rows)
}

func (s *Storage) ListAlertsByAuthor(ctx context.Context, author domain.Author) ([]domain.KeywordAlert, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, author, keyword FROM keyword_alerts WHERE author = ? ORDER BY id", author)
	if err != nil {
		return nil, fmt.Errorf("failed to query keyword alerts: %w", err)
	}
	return collectAlerts(rows)
}

func (s *Storage) DeleteAlert(ctx context.Context, id domain.AlertId, author domain.Author) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM keyword_alerts WHERE id = ? AND author = ?", id, author)
	if err != nil {
		return fmt.Errorf("failed to delete keyword alert: %w", err)
	}
	return requireAffected(result, "Alert not found")
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
