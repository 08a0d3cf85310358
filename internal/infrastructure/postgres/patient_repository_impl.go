package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mediscribe/mediscribe-api/internal/domain/entity"
	"github.com/mediscribe/mediscribe-api/internal/domain/repository"
)

type PatientRepository struct {
	pool *pgxpool.Pool
}

func NewPatientRepository(pool *pgxpool.Pool) *PatientRepository {
	return &PatientRepository{pool: pool}
}

func (r *PatientRepository) Create(ctx context.Context, p *entity.Patient) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO patients (name, age, condition, last_visit, email, phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, p.Name, p.Age, p.Condition, p.LastVisit, p.Email, p.Phone)

	return row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PatientRepository) GetByID(ctx context.Context, id string) (*entity.Patient, error) {
	p := &entity.Patient{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, age, condition, last_visit, email, phone, created_at, updated_at
		FROM patients
		WHERE id = $1
	`, id)

	if err := row.Scan(&p.ID, &p.Name, &p.Age, &p.Condition, &p.LastVisit,
		&p.Email, &p.Phone, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PatientRepository) List(ctx context.Context) ([]*entity.Patient, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, age, condition, last_visit, email, phone, created_at, updated_at
		FROM patients
		ORDER BY last_visit DESC, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Patient
	for rows.Next() {
		p := &entity.Patient{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Age, &p.Condition, &p.LastVisit,
			&p.Email, &p.Phone, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PatientRepository) Update(ctx context.Context, p *entity.Patient) error {
	p.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE patients
		SET name = $1, age = $2, condition = $3, last_visit = $4, email = $5, phone = $6, updated_at = $7
		WHERE id = $8
	`, p.Name, p.Age, p.Condition, p.LastVisit, p.Email, p.Phone, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PatientRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PatientRepository) AddDocument(ctx context.Context, d *entity.PatientDocument) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO patient_documents (patient_id, filename, content_type, url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, d.PatientID, d.Filename, d.ContentType, d.URL)

	return row.Scan(&d.ID, &d.CreatedAt)
}

func (r *PatientRepository) ListDocuments(ctx context.Context, patientID string) ([]*entity.PatientDocument, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, patient_id, filename, content_type, url, created_at
		FROM patient_documents
		WHERE patient_id = $1
		ORDER BY created_at DESC
	`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.PatientDocument
	for rows.Next() {
		d := &entity.PatientDocument{}
		if err := rows.Scan(&d.ID, &d.PatientID, &d.Filename, &d.ContentType,
			&d.URL, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

var _ repository.PatientRepository = (*PatientRepository)(nil)
