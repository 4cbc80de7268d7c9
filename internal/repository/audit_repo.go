package repository

import (
	"context"
	"encoding/json"

	"earn_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditRepository handles audit log database operations
type AuditRepository struct {
	db *pgxpool.Pool
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{db: db}
}

const insertAuditSQL = `
	INSERT INTO audit_logs (actor, action, category, subject, details, ip)
	VALUES ($1, $2, $3, $4, $5, $6)`

// Create inserts a new audit log entry
func (r *AuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	_, err := r.db.Exec(ctx, insertAuditSQL, auditArgs(log)...)
	return err
}

// CreateWithTx inserts a new audit log entry within a transaction
func (r *AuditRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, log *domain.AuditLog) error {
	_, err := tx.Exec(ctx, insertAuditSQL, auditArgs(log)...)
	return err
}

// GetRecent returns the most recent audit logs, optionally for one category
func (r *AuditRepository) GetRecent(ctx context.Context, category string, limit int) ([]*domain.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, actor, action, category, subject, details, COALESCE(ip, ''), created_at
		FROM audit_logs
		WHERE $1 = '' OR category = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, category, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAuditLogs(rows)
}

func auditArgs(log *domain.AuditLog) []any {
	detailsJSON, err := json.Marshal(log.Details)
	if err != nil || log.Details == nil {
		detailsJSON = []byte("{}")
	}
	return []any{log.Actor, log.Action, log.Category, log.Subject, detailsJSON, log.IP}
}

func scanAuditLogs(rows pgx.Rows) ([]*domain.AuditLog, error) {
	var logs []*domain.AuditLog
	for rows.Next() {
		var log domain.AuditLog
		var detailsJSON []byte
		if err := rows.Scan(&log.ID, &log.Actor, &log.Action, &log.Category, &log.Subject, &detailsJSON, &log.IP, &log.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(detailsJSON, &log.Details); err != nil {
			log.Details = make(map[string]interface{})
		}
		logs = append(logs, &log)
	}
	return logs, rows.Err()
}
