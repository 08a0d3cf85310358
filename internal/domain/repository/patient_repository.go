package repository

import (
	"context"

	"github.com/mediscribe/mediscribe-api/internal/domain/entity"
)

// PatientRepository persists the patient roster and attached documents.
type PatientRepository interface {
	Create(ctx context.Context, p *entity.Patient) error
	GetByID(ctx context.Context, id string) (*entity.Patient, error)
	List(ctx context.Context) ([]*entity.Patient, error)
	Update(ctx context.Context, p *entity.Patient) error
	Delete(ctx context.Context, id string) error

	AddDocument(ctx context.Context, d *entity.PatientDocument) error
	ListDocuments(ctx context.Context, patientID string) ([]*entity.PatientDocument, error)
}
