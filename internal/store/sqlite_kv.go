package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

func unixMillis() int64 {
	return time.Now().UnixMilli()
}

func (s *Store) Get(key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	var value string
	err := s.db.QueryRow("SELECT value FROM kv_entries WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("key '%s': %w", key, ErrRecordNotFound)
		}
		return "", fmt.Errorf("failed to query key '%s': %w", key, err)
	}

	return value, nil
}

// Set overwrites any existing value for key.
func (s *Store) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	stmt, err := s.db.Prepare(`
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare SQL : %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	if _, err := stmt.Exec(key, value, s.now()); err != nil {
		return fmt.Errorf("failed to write key '%s': %w", key, err)
	}
	return nil
}

// Delete is a no-op for missing keys.
func (s *Store) Delete(key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	if _, err := s.db.Exec("DELETE FROM kv_entries WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete key '%s': %w", key, err)
	}
	return nil
}

func (s *Store) DeletePrefix(prefix string) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM kv_entries WHERE key LIKE ? ESCAPE '\'`, likePrefix(prefix))
	if err != nil {
		return 0, fmt.Errorf("failed to delete keys with prefix '%s': %w", prefix, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected, nil
}

func (s *Store) Keys(prefix string) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT key
		FROM kv_entries
		WHERE key LIKE ? ESCAPE '\'
		ORDER BY key
	`, likePrefix(prefix))
	if err != nil {
		return nil, fmt.Errorf("failed to query keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}

func likePrefix(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(prefix) + "%"
}
