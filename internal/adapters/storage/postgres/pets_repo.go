package postgres

import (
	"context"
	"database/sql"
	"strings"

	"infovet/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `id, internal_id, owner_id, name, species, breed, age, weight, sex, chip, notes, photo, created_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		p.ID,
		p.InternalID,
		p.OwnerID,
		p.Name,
		p.Species,
		p.Breed,
		p.Age,
		p.Weight,
		p.Sex,
		p.Chip,
		p.Notes,
		p.Photo,
		p.CreatedAt,
	)
	if isUniqueViolation(err) {
		// pets_chip_uq: el indice cierra la carrera del pre-chequeo
		return pets.ErrChipTaken
	}
	return err
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	return r.getByField(ctx, "id", strings.TrimSpace(id))
}

func (r *PetsRepo) GetByChip(ctx context.Context, chip string) (pets.Pet, error) {
	return r.getByField(ctx, "chip", chip)
}

func (r *PetsRepo) GetByInternalID(ctx context.Context, internalID string) (pets.Pet, error) {
	return r.getByField(ctx, "internal_id", internalID)
}

func (r *PetsRepo) getByField(ctx context.Context, field, value string) (pets.Pet, error) {
	if value == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE `+field+` = $1
	`, value)
	return scanPet(row)
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE owner_id = $1
		ORDER BY created_at ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	err := row.Scan(
		&p.ID,
		&p.InternalID,
		&p.OwnerID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&p.Age,
		&p.Weight,
		&p.Sex,
		&p.Chip,
		&p.Notes,
		&p.Photo,
		&p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return pets.Pet{}, pets.ErrNotFound
	}
	if err != nil {
		return pets.Pet{}, err
	}
	return p, nil
}
