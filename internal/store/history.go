package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/palacelab/cardgen/internal/cards"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS generations (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	topic      TEXT NOT NULL,
	card_count INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS generation_cards (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	generation_id INTEGER NOT NULL REFERENCES generations(id) ON DELETE CASCADE,
	card_id       INTEGER NOT NULL,
	title         TEXT NOT NULL,
	content       TEXT NOT NULL,
	image         TEXT NOT NULL DEFAULT '',
	caption       TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_generation_cards_generation
	ON generation_cards(generation_id);
`

// Generation is one recorded generation request.
type Generation struct {
	ID        int64
	Topic     string
	CardCount int
	CreatedAt time.Time
}

// History records every generation request in SQLite. The snapshot holds
// only the latest result; history keeps all of them.
type History struct {
	db *sql.DB
}

// NewHistory opens (creating if necessary) the history database at path.
func NewHistory(ctx context.Context, path string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite doesn't handle concurrent writes well.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return &History{db: db}, nil
}

// Migrate creates the schema if it does not exist yet.
func (h *History) Migrate(ctx context.Context) error {
	slog.Debug("ensuring history schema")
	if _, err := h.db.ExecContext(ctx, historySchema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Record stores one generation and its cards, returning the generation
// row id.
func (h *History) Record(ctx context.Context, topic string, cs []cards.Card) (int64, error) {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO generations (topic, card_count) VALUES (?, ?)",
		topic, len(cs),
	)
	if err != nil {
		return 0, fmt.Errorf("insert generation: %w", err)
	}

	genID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("generation id: %w", err)
	}

	for _, c := range cs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO generation_cards (generation_id, card_id, title, content, image, caption)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			genID, c.ID, c.Title, c.Content, c.Image, c.Caption,
		)
		if err != nil {
			return 0, fmt.Errorf("insert card: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return genID, nil
}

// Recent returns the most recent generations, newest first.
func (h *History) Recent(ctx context.Context, limit int) ([]Generation, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := h.db.QueryContext(ctx,
		`SELECT id, topic, card_count, created_at
		 FROM generations ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query generations: %w", err)
	}
	defer rows.Close()

	var out []Generation
	for rows.Next() {
		var g Generation
		var created string
		if err := rows.Scan(&g.ID, &g.Topic, &g.CardCount, &created); err != nil {
			return nil, fmt.Errorf("scan generation: %w", err)
		}
		g.CreatedAt = parseSQLiteTime(created)
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate generations: %w", err)
	}
	return out, nil
}

// Cards returns the cards recorded for one generation, in card order.
func (h *History) Cards(ctx context.Context, generationID int64) ([]cards.Card, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT card_id, title, content, image, caption
		 FROM generation_cards WHERE generation_id = ? ORDER BY id`, generationID)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var out []cards.Card
	for rows.Next() {
		var c cards.Card
		if err := rows.Scan(&c.ID, &c.Title, &c.Content, &c.Image, &c.Caption); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}
	return out, nil
}

// Close closes the underlying database.
func (h *History) Close() error {
	return h.db.Close()
}

// parseSQLiteTime handles the formats SQLite emits for
// CURRENT_TIMESTAMP defaults.
func parseSQLiteTime(s string) time.Time {
	for _, layout := range []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
		time.RFC3339Nano,
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
