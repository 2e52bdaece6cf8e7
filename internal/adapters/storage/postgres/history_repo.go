package postgres

import (
	"context"
	"database/sql"
	"strings"

	"infovet/internal/domain/history"
)

type HistoryRepo struct {
	db *sql.DB
}

func NewHistoryRepo(db *sql.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

func (r *HistoryRepo) Create(ctx context.Context, e history.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO history_entries (
			id, pet_id, entry_date, entry_type, description, vet, clinic, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		e.ID,
		e.PetID,
		e.Date,
		e.Type,
		e.Description,
		e.Vet,
		e.Clinic,
		e.CreatedAt,
	)
	return err
}

func (r *HistoryRepo) ListByPet(ctx context.Context, petID string) ([]history.Entry, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}

	// mas reciente primero; el desempate por created_at mantiene estable
	// a las entradas del mismo dia
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pet_id, entry_date, entry_type, description, vet, clinic, created_at
		FROM history_entries
		WHERE pet_id = $1
		ORDER BY entry_date DESC, created_at DESC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]history.Entry, 0)
	for rows.Next() {
		var e history.Entry
		if err := rows.Scan(
			&e.ID,
			&e.PetID,
			&e.Date,
			&e.Type,
			&e.Description,
			&e.Vet,
			&e.Clinic,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
