// ABOUTME: Audit log store methods for the manager event journal
// ABOUTME: Records which agent, interface and command each manager event touched

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// tsLayout is fixed width so text comparison matches time order.
const tsLayout = "2006-01-02T15:04:05.000000000Z"

// AppendAuditLog appends a new entry to the audit log.
// Generates ID and Timestamp if not set, and sets Seq.
func (s *SQLiteStore) AppendAuditLog(ctx context.Context, e *AuditEntry) error {
	// Generate ID if not set
	if e.ID == "" {
		e.ID = uuid.New().String()
	}

	// Generate timestamp if not set
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	var detailJSON *string
	if e.Detail != nil {
		data, err := json.Marshal(e.Detail)
		if err != nil {
			return fmt.Errorf("marshaling audit detail: %w", err)
		}
		str := string(data)
		detailJSON = &str
	}

	query := `
		INSERT INTO audit_log (audit_id, kind, agent_id, interface_id, chain_id, command, status, previous, error, duration_ns, ts, detail_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := s.db.ExecContext(ctx, query,
		e.ID,
		e.Kind,
		e.AgentID,
		e.InterfaceID,
		e.ChainID,
		e.Command,
		e.Status,
		e.Previous,
		e.Error,
		int64(e.Duration),
		e.Timestamp.UTC().Format(tsLayout),
		detailJSON,
	)
	if err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}
	if e.Seq, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("reading audit sequence: %w", err)
	}

	s.logger.Debug("appended audit log",
		"id", e.ID,
		"seq", e.Seq,
		"kind", e.Kind,
		"agent_id", e.AgentID,
		"interface_id", e.InterfaceID,
	)
	return nil
}

// normalizeAuditLimit applies default (100) and cap (1000) to audit limit.
func normalizeAuditLimit(limit int) int {
	switch {
	case limit <= 0:
		return 100
	case limit > 1000:
		return 1000
	default:
		return limit
	}
}

// scanAuditEntry scans a row into an AuditEntry.
func scanAuditEntry(scanner interface{ Scan(dest ...any) error }) (AuditEntry, error) {
	var e AuditEntry
	var tsStr string
	var durationNS int64
	var detailJSON *string

	if err := scanner.Scan(
		&e.Seq,
		&e.ID,
		&e.Kind,
		&e.AgentID,
		&e.InterfaceID,
		&e.ChainID,
		&e.Command,
		&e.Status,
		&e.Previous,
		&e.Error,
		&durationNS,
		&tsStr,
		&detailJSON,
	); err != nil {
		return e, fmt.Errorf("scanning audit entry: %w", err)
	}

	e.Duration = time.Duration(durationNS)
	var err error
	e.Timestamp, err = time.Parse(tsLayout, tsStr)
	if err != nil {
		return e, fmt.Errorf("parsing timestamp: %w", err)
	}

	if detailJSON != nil {
		if err := json.Unmarshal([]byte(*detailJSON), &e.Detail); err != nil {
			return e, fmt.Errorf("unmarshaling detail: %w", err)
		}
	}
	return e, nil
}

const auditLogQuery = `
	SELECT seq, audit_id, kind, agent_id, interface_id, chain_id, command, status, previous, error, duration_ns, ts, detail_json
	FROM audit_log
	WHERE (? IS NULL OR ts >= ?)
	  AND (? IS NULL OR kind = ?)
	  AND (? IS NULL OR agent_id = ?)
	  AND (? IS NULL OR interface_id = ?)
	ORDER BY seq DESC
	LIMIT ?
`

// ListAuditLog returns audit entries matching the filter criteria.
// Results are returned newest first.
func (s *SQLiteStore) ListAuditLog(ctx context.Context, f AuditFilter) ([]AuditEntry, error) {
	limit := normalizeAuditLimit(f.Limit)

	var sinceStr *string
	if f.Since != nil {
		str := f.Since.UTC().Format(tsLayout)
		sinceStr = &str
	}

	rows, err := s.db.QueryContext(ctx, auditLogQuery,
		sinceStr, sinceStr,
		f.Kind, f.Kind,
		f.AgentID, f.AgentID,
		f.InterfaceID, f.InterfaceID,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []AuditEntry
	for rows.Next() {
		e, err := scanAuditEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit entries: %w", err)
	}

	if entries == nil {
		entries = []AuditEntry{}
	}
	return entries, nil
}
