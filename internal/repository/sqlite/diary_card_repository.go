package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"anchorlog/internal/domain"
	"anchorlog/internal/repository"
)

const createDiaryCardsTable = `
CREATE TABLE IF NOT EXISTS diary_cards (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id),
	entry_date TEXT NOT NULL,
	mood INTEGER NOT NULL DEFAULT 0,
	emotions TEXT NOT NULL DEFAULT '',
	urges TEXT NOT NULL DEFAULT '',
	skills_used TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);
`

type DiaryCardRepository struct {
	db *sql.DB
}

func NewDiaryCardRepository(db *sql.DB) repository.DiaryCardRepository {
	return &DiaryCardRepository{db: db}
}

func (r *DiaryCardRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createDiaryCardsTable); err != nil {
		return fmt.Errorf("create diary_cards table: %w", err)
	}
	return nil
}

func (r *DiaryCardRepository) Create(ctx context.Context, card *domain.DiaryCard) (int64, error) {
	card.CreatedAt = time.Now().UTC()

	id, err := insert(ctx, r.db, "insert diary card", `
INSERT INTO diary_cards (user_id, entry_date, mood, emotions, urges, skills_used, notes, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		card.UserID,
		card.EntryDate,
		card.Mood,
		card.Emotions,
		card.Urges,
		card.SkillsUsed,
		card.Notes,
		card.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	card.ID = id
	return id, nil
}

func (r *DiaryCardRepository) ListByUser(ctx context.Context, userID int64) ([]domain.DiaryCard, error) {
	return r.queryCards(ctx, `
SELECT id, user_id, entry_date, mood, emotions, urges, skills_used, notes, created_at
FROM diary_cards
WHERE user_id = ?
ORDER BY entry_date DESC, id DESC`,
		userID,
	)
}

func (r *DiaryCardRepository) RecentByUser(ctx context.Context, userID int64, limit int) ([]domain.DiaryCard, error) {
	return r.queryCards(ctx, `
SELECT id, user_id, entry_date, mood, emotions, urges, skills_used, notes, created_at
FROM diary_cards
WHERE user_id = ?
ORDER BY entry_date DESC, id DESC
LIMIT ?`,
		userID, limit,
	)
}

func (r *DiaryCardRepository) Delete(ctx context.Context, id, userID int64) error {
	return execScoped(ctx, r.db, "delete diary card", `
DELETE FROM diary_cards
WHERE id = ? AND user_id = ?`,
		id, userID,
	)
}

func (r *DiaryCardRepository) queryCards(ctx context.Context, query string, args ...any) ([]domain.DiaryCard, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query diary cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.DiaryCard
	for rows.Next() {
		var card domain.DiaryCard
		if err := rows.Scan(
			&card.ID,
			&card.UserID,
			&card.EntryDate,
			&card.Mood,
			&card.Emotions,
			&card.Urges,
			&card.SkillsUsed,
			&card.Notes,
			&card.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan diary card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate diary cards: %w", err)
	}
	return cards, nil
}
