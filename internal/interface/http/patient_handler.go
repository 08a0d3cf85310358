package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	patapp "github.com/mediscribe/mediscribe-api/internal/application"
	"github.com/mediscribe/mediscribe-api/internal/domain/entity"
	"github.com/mediscribe/mediscribe-api/pkg/response"
	"github.com/mediscribe/mediscribe-api/pkg/validation"
)

const lastVisitLayout = "2006-01-02"

// maxDocumentBytes caps uploaded document size (scans, referrals).
const maxDocumentBytes = 10 << 20

type PatientHandler struct {
	Svc    *patapp.PatientService
	Logger *logrus.Logger
}

func NewPatientHandler(svc *patapp.PatientService, logger *logrus.Logger) *PatientHandler {
	return &PatientHandler{Svc: svc, Logger: logger}
}

type patientRequest struct {
	Name      string `json:"name" binding:"required"`
	Age       int    `json:"age" binding:"required,gte=0,lte=150"`
	Condition string `json:"condition" binding:"required"`
	LastVisit string `json:"lastVisit" binding:"required,datetime=2006-01-02"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
}

func (r *patientRequest) toInput() patapp.PatientInput {
	visit, _ := time.Parse(lastVisitLayout, r.LastVisit)
	return patapp.PatientInput{
		Name:      r.Name,
		Age:       r.Age,
		Condition: r.Condition,
		LastVisit: visit,
		Email:     r.Email,
		Phone:     r.Phone,
	}
}

type patientView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Condition string `json:"condition"`
	LastVisit string `json:"lastVisit"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func newPatientView(p *entity.Patient) patientView {
	return patientView{
		ID:        p.ID,
		Name:      p.Name,
		Age:       p.Age,
		Condition: p.Condition,
		LastVisit: p.LastVisit.Format(lastVisitLayout),
		Email:     p.Email,
		Phone:     p.Phone,
	}
}

type documentView struct {
	ID          string    `json:"id"`
	PatientID   string    `json:"patientId"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"contentType"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newDocumentView(d *entity.PatientDocument) documentView {
	return documentView{
		ID:          d.ID,
		PatientID:   d.PatientID,
		Filename:    d.Filename,
		ContentType: d.ContentType,
		URL:         d.URL,
		CreatedAt:   d.CreatedAt,
	}
}

// Create POST /api/patients
func (h *PatientHandler) Create(c *gin.Context) {
	var req patientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.Logger.WithError(err).Error("create patient failed")
		response.Error(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"patient": newPatientView(p)}, "patient created")
}

// List GET /api/patients
func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list patients failed")
		response.Error(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	views := make([]patientView, 0, len(patients))
	for _, p := range patients {
		views = append(views, newPatientView(p))
	}
	response.Success(c, http.StatusOK, gin.H{"patients": views}, "patients")
}

// Get GET /api/patients/:id
func (h *PatientHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondPatientErr(c, err, "get patient failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"patient": newPatientView(p)}, "patient")
}

// Update PUT /api/patients/:id
func (h *PatientHandler) Update(c *gin.Context) {
	var req patientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		h.respondPatientErr(c, err, "update patient failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"patient": newPatientView(p)}, "patient updated")
}

// Delete DELETE /api/patients/:id
func (h *PatientHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondPatientErr(c, err, "delete patient failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, "patient deleted")
}

// Search GET /api/patients/search?q=&size=
func (h *PatientHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("patient search failed")
		response.Error(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": hits}, "search results")
}

// UploadDocument POST /api/patients/:id/documents (multipart field "file")
func (h *PatientHandler) UploadDocument(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"file": "is required"})
		return
	}
	if fh.Size > maxDocumentBytes {
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"file": "must be at most 10MB"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.Logger.WithError(err).Error("open uploaded document failed")
		response.Error(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	defer func() { _ = f.Close() }()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	d, err := h.Svc.UploadDocument(c.Request.Context(), c.Param("id"), f, fh.Filename, contentType)
	if err != nil {
		h.respondPatientErr(c, err, "upload document failed")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"document": newDocumentView(d)}, "document uploaded")
}

// ListDocuments GET /api/patients/:id/documents
func (h *PatientHandler) ListDocuments(c *gin.Context) {
	docs, err := h.Svc.ListDocuments(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondPatientErr(c, err, "list documents failed")
		return
	}
	views := make([]documentView, 0, len(docs))
	for _, d := range docs {
		views = append(views, newDocumentView(d))
	}
	response.Success(c, http.StatusOK, gin.H{"documents": views}, "documents")
}

func (h *PatientHandler) respondPatientErr(c *gin.Context, err error, logMsg string) {
	if errors.Is(err, patapp.ErrPatientNotFound) {
		response.Error(c, http.StatusNotFound, "patient not found", nil)
		return
	}
	h.Logger.WithError(err).Error(logMsg)
	response.Error(c, http.StatusInternalServerError, "internal server error", nil)
}
