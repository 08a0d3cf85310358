package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mediscribe/mediscribe-api/internal/domain/entity"
	repo "github.com/mediscribe/mediscribe-api/internal/domain/repository"
	"github.com/mediscribe/mediscribe-api/pkg/helpers"
)

var ErrPatientNotFound = errors.New("patient not found")

// PatientService manages the patient roster: CRUD over postgres, search via
// Elasticsearch, scanned document storage in GCS. ES and GCS are optional;
// when absent the service degrades to plain CRUD.
type PatientService struct {
	Repo      repo.PatientRepository
	Logger    *logrus.Logger
	ES        *elasticsearch.Client
	ESIndex   string
	GCS       *storage.Client
	GCSBucket string
}

func NewPatientService(r repo.PatientRepository, logger *logrus.Logger, es *elasticsearch.Client, esIndex string, gcs *storage.Client, gcsBucket string) *PatientService {
	return &PatientService{Repo: r, Logger: logger, ES: es, ESIndex: esIndex, GCS: gcs, GCSBucket: gcsBucket}
}

// PatientInput carries the roster fields a clinician edits.
type PatientInput struct {
	Name      string
	Age       int
	Condition string
	LastVisit time.Time
	Email     string
	Phone     string
}

func (s *PatientService) Create(ctx context.Context, in PatientInput) (*entity.Patient, error) {
	p := &entity.Patient{
		Name:      in.Name,
		Age:       in.Age,
		Condition: in.Condition,
		LastVisit: in.LastVisit,
		Email:     in.Email,
		Phone:     in.Phone,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	_ = s.indexPatient(ctx, p)
	return p, nil
}

func (s *PatientService) Get(ctx context.Context, id string) (*entity.Patient, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *PatientService) List(ctx context.Context) ([]*entity.Patient, error) {
	return s.Repo.List(ctx)
}

func (s *PatientService) Update(ctx context.Context, id string, in PatientInput) (*entity.Patient, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = in.Name
	p.Age = in.Age
	p.Condition = in.Condition
	p.LastVisit = in.LastVisit
	p.Email = in.Email
	p.Phone = in.Phone
	if err := s.Repo.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	_ = s.indexPatient(ctx, p)
	return p, nil
}

func (s *PatientService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrPatientNotFound
		}
		return err
	}
	s.deleteFromIndex(ctx, id)
	return nil
}

// UploadDocument stores a scanned document in GCS under the patient's prefix
// and records it in the directory.
func (s *PatientService) UploadDocument(ctx context.Context, patientID string, r io.Reader, filename, contentType string) (*entity.PatientDocument, error) {
	if _, err := s.Get(ctx, patientID); err != nil {
		return nil, err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, errors.New("document storage not configured")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("patients", patientID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}

	d := &entity.PatientDocument{
		PatientID:   patientID,
		Filename:    filename,
		ContentType: contentType,
		URL:         url,
	}
	if err := s.Repo.AddDocument(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *PatientService) ListDocuments(ctx context.Context, patientID string) ([]*entity.PatientDocument, error) {
	if _, err := s.Get(ctx, patientID); err != nil {
		return nil, err
	}
	return s.Repo.ListDocuments(ctx, patientID)
}

func (s *PatientService) indexPatient(ctx context.Context, p *entity.Patient) error {
	if s.ES == nil || s.ESIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":         p.ID,
		"name":       p.Name,
		"age":        p.Age,
		"condition":  p.Condition,
		"last_visit": p.LastVisit.Format("2006-01-02"),
		"email":      p.Email,
		"phone":      p.Phone,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("patient_id", p.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("patient_id", p.ID).Warn("es index response error")
	}
	return nil
}

func (s *PatientService) deleteFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("patient_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search runs a multi_match query over name, condition and email.
func (s *PatientService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "condition", "email"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
