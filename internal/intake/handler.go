package intake

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"patient-intake/internal/document"
	"patient-intake/internal/platform/ocr"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type CreateSessionRequest struct {
	PatientID string `json:"patient_id"`
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	pid, err := uuid.Parse(req.PatientID)
	if err != nil {
		// Walk-in patients have no prior identifier.
		pid = uuid.New()
	}

	sess, err := h.svc.CreateSession(r.Context(), pid)
	if err != nil {
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{
		"session_id": sess.ID.String(),
		"patient_id": sess.PatientID.String(),
	})
}

func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, ocr.MaxUploadSize)
	if err := r.ParseMultipartForm(ocr.MaxUploadSize); err != nil {
		http.Error(w, "Upload too large (max 5MB)", http.StatusRequestEntityTooLarge)
		return
	}

	kind := document.Kind(r.FormValue("kind"))
	switch kind {
	case document.KindPrescription, document.KindInsurance, document.KindIdentity:
	default:
		http.Error(w, "Unknown document kind", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Error retrieving document image", http.StatusBadRequest)
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read document image", http.StatusInternalServerError)
		return
	}

	result, err := h.svc.ProcessDocument(r.Context(), sessionID, kind, image, header.Filename)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, result)
}

func (h *Handler) CompleteIntake(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req IntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	result, err := h.svc.CompleteIntake(r.Context(), sessionID, req)
	if err != nil && result == nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, result)
}

func (h *Handler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	assessment, err := h.svc.GetAssessment(r.Context(), sessionID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, assessment)
}

func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	appt, err := h.svc.GetAppointment(r.Context(), sessionID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, appt)
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		http.Error(w, "Invalid session ID", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	http.Error(w, "Processing failed: "+err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/intake", h.CreateSession)
	r.Post("/intake/{sessionID}/documents", h.UploadDocument)
	r.Post("/intake/{sessionID}/complete", h.CompleteIntake)
	r.Get("/intake/{sessionID}/assessment", h.GetAssessment)
	r.Get("/intake/{sessionID}/appointment", h.GetAppointment)
}
