package app

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-engine/internal/config"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const (
	dbPingTimeout        = 5 * time.Second
	dbMaxOpenConns       = 10
	dbMaxIdleConns       = 5
	dbConnMaxLifetime    = 30 * time.Minute
	maxTracedQueryLength = 512
	preparedBinaryParam  = "disable_prepared_binary_result"
	applicationNameParam = "application_name"
)

var queryWhitespaceRegex = regexp.MustCompile(`\s+`)

// dbSettings is the connection string handed to lib/pq plus the database
// name reported on spans.
type dbSettings struct {
	dsn  string
	name string
}

func resolveDBSettings(cfg config.Config) dbSettings {
	params := map[string]string{applicationNameParam: cfg.ServiceName}
	if cfg.DBDisablePreparedBinary {
		params[preparedBinaryParam] = "yes"
	}
	dsn := withDSNDefaults(strings.TrimSpace(cfg.DBURL), params)
	return dbSettings{dsn: dsn, name: dbNameFromDSN(dsn)}
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	settings := resolveDBSettings(cfg)
	db, err := otelsqlx.Open("postgres", settings.dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(settings.name),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(dbMaxOpenConns)
	db.SetMaxIdleConns(dbMaxIdleConns)
	db.SetConnMaxLifetime(dbConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database %s: %w", settings.name, err)
	}
	return db, nil
}

// withDSNDefaults adds params the operator did not set explicitly. Both URL
// and key=value connection strings are supported; empty values are skipped.
func withDSNDefaults(raw string, params map[string]string) string {
	if raw == "" {
		return raw
	}

	if parsed, err := url.Parse(raw); err == nil && parsed.Scheme != "" {
		query := parsed.Query()
		changed := false
		for key, value := range params {
			if value == "" || query.Get(key) != "" {
				continue
			}
			query.Set(key, value)
			changed = true
		}
		if !changed {
			return raw
		}
		parsed.RawQuery = query.Encode()
		return parsed.String()
	}

	present := map[string]bool{}
	for _, token := range strings.Fields(raw) {
		if key, _, ok := strings.Cut(token, "="); ok {
			present[key] = true
		}
	}
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var b strings.Builder
	b.WriteString(raw)
	for _, key := range keys {
		value := params[key]
		if value == "" || present[key] || strings.ContainsAny(value, " '\\") {
			continue
		}
		b.WriteString(" " + key + "=" + value)
	}
	return b.String()
}

func dbNameFromDSN(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Scheme != "" {
		if name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/")); name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		key, value, ok := strings.Cut(token, "=")
		if !ok || key != "dbname" {
			continue
		}
		if name := strings.Trim(strings.TrimSpace(value), `"'`); name != "" {
			return name
		}
	}
	return ""
}

// formatDBQueryForTrace collapses whitespace so multi-line repository queries
// read as one line on spans, truncated to maxTracedQueryLength.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespaceRegex.ReplaceAllString(query, " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}
