package intake

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"patient-intake/internal/document"
	"patient-intake/internal/insurance"
	"patient-intake/internal/scheduling"
	"patient-intake/internal/triage"
)

// Repository is an append-only store: every Save inserts a new row with a
// fresh identifier, nothing is updated in place.
type Repository interface {
	CreateSession(ctx context.Context, s *Session) error
	GetSession(ctx context.Context, id uuid.UUID) (*Session, error)

	SaveDocument(ctx context.Context, sessionID uuid.UUID, kind document.Kind, payload any, rawText string, confidence float64) (uuid.UUID, error)
	GetDocuments(ctx context.Context, sessionID uuid.UUID) (Documents, error)

	SaveAssessment(ctx context.Context, sessionID uuid.UUID, a triage.Assessment) (uuid.UUID, error)
	GetAssessment(ctx context.Context, sessionID uuid.UUID) (*triage.Assessment, error)

	SaveVerification(ctx context.Context, sessionID uuid.UUID, v insurance.Verification) (uuid.UUID, error)

	SaveAppointment(ctx context.Context, sessionID uuid.UUID, appt scheduling.Appointment) (uuid.UUID, error)
	GetAppointment(ctx context.Context, sessionID uuid.UUID) (*scheduling.Appointment, error)

	SaveLetter(ctx context.Context, sessionID uuid.UUID, appointmentCode string, letter []byte) (uuid.UUID, error)

	SaveAuditEntry(ctx context.Context, sessionID uuid.UUID, step string, input, output any, status string) error
}

var ErrNotFound = errors.New("record not found")

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) CreateSession(ctx context.Context, s *Session) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	query := `INSERT INTO intake_sessions (id, patient_id, created_at) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.PatientID, s.CreatedAt)
	return errors.Wrap(err, "insert session")
}

func (r *postgresRepo) GetSession(ctx context.Context, id uuid.UUID) (*Session, error) {
	query := `SELECT id, patient_id, created_at FROM intake_sessions WHERE id = $1`

	var s Session
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.PatientID, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select session")
	}
	return &s, nil
}

func (r *postgresRepo) SaveDocument(ctx context.Context, sessionID uuid.UUID, kind document.Kind, payload any, rawText string, confidence float64) (uuid.UUID, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO documents (id, session_id, kind, payload, raw_text, confidence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = r.db.ExecContext(ctx, query, id, sessionID, string(kind), payloadJSON, rawText, confidence, time.Now())
	return id, errors.Wrap(err, "insert document")
}

func (r *postgresRepo) GetDocuments(ctx context.Context, sessionID uuid.UUID) (Documents, error) {
	// Latest extraction per kind; older rows are kept for audit only.
	query := `
		SELECT DISTINCT ON (kind) kind, payload
		FROM documents
		WHERE session_id = $1
		ORDER BY kind, created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return Documents{}, errors.Wrap(err, "select documents")
	}
	defer rows.Close()

	var docs Documents
	for rows.Next() {
		var kind string
		var payload []byte
		if err := rows.Scan(&kind, &payload); err != nil {
			return Documents{}, err
		}

		switch document.Kind(kind) {
		case document.KindPrescription:
			var rec document.PrescriptionRecord
			if err := json.Unmarshal(payload, &rec); err != nil {
				return Documents{}, errors.Wrap(err, "unmarshal prescription")
			}
			docs.Prescription = &rec
		case document.KindInsurance:
			var rec document.InsuranceRecord
			if err := json.Unmarshal(payload, &rec); err != nil {
				return Documents{}, errors.Wrap(err, "unmarshal insurance")
			}
			docs.Insurance = &rec
		case document.KindIdentity:
			var rec document.IdentityRecord
			if err := json.Unmarshal(payload, &rec); err != nil {
				return Documents{}, errors.Wrap(err, "unmarshal identity")
			}
			docs.Identity = &rec
		}
	}
	return docs, rows.Err()
}

func (r *postgresRepo) SaveAssessment(ctx context.Context, sessionID uuid.UUID, a triage.Assessment) (uuid.UUID, error) {
	riskJSON, err := json.Marshal(a.RiskFactors)
	if err != nil {
		return uuid.Nil, err
	}
	concernsJSON, err := json.Marshal(a.ImmediateConcerns)
	if err != nil {
		return uuid.Nil, err
	}
	actionsJSON, err := json.Marshal(a.RecommendedActions)
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO triage_assessments
			(id, session_id, urgency_level, department, triage_score, risk_factors,
			 immediate_concerns, recommended_actions, estimated_wait_time, assessment_notes,
			 follow_up_needed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = r.db.ExecContext(ctx, query,
		id, sessionID, string(a.UrgencyLevel), a.Department, a.TriageScore,
		riskJSON, concernsJSON, actionsJSON, a.EstimatedWaitTime, a.AssessmentNotes,
		a.FollowUpNeeded, time.Now())
	return id, errors.Wrap(err, "insert assessment")
}

func (r *postgresRepo) GetAssessment(ctx context.Context, sessionID uuid.UUID) (*triage.Assessment, error) {
	query := `
		SELECT urgency_level, department, triage_score, risk_factors, immediate_concerns,
		       recommended_actions, estimated_wait_time, assessment_notes, follow_up_needed
		FROM triage_assessments
		WHERE session_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var a triage.Assessment
	var urgency string
	var riskJSON, concernsJSON, actionsJSON []byte
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(
		&urgency, &a.Department, &a.TriageScore, &riskJSON, &concernsJSON,
		&actionsJSON, &a.EstimatedWaitTime, &a.AssessmentNotes, &a.FollowUpNeeded)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select assessment")
	}

	a.UrgencyLevel = triage.Urgency(urgency)
	if err := json.Unmarshal(riskJSON, &a.RiskFactors); err != nil {
		return nil, errors.Wrap(err, "unmarshal risk factors")
	}
	if err := json.Unmarshal(concernsJSON, &a.ImmediateConcerns); err != nil {
		return nil, errors.Wrap(err, "unmarshal immediate concerns")
	}
	if err := json.Unmarshal(actionsJSON, &a.RecommendedActions); err != nil {
		return nil, errors.Wrap(err, "unmarshal recommended actions")
	}
	return &a, nil
}

func (r *postgresRepo) SaveVerification(ctx context.Context, sessionID uuid.UUID, v insurance.Verification) (uuid.UUID, error) {
	payloadJSON, err := json.Marshal(v)
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO insurance_verifications (id, session_id, policy_number, provider, status, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = r.db.ExecContext(ctx, query, id, sessionID, v.PolicyNumber, v.Provider, string(v.Status), payloadJSON, time.Now())
	return id, errors.Wrap(err, "insert verification")
}

func (r *postgresRepo) SaveAppointment(ctx context.Context, sessionID uuid.UUID, appt scheduling.Appointment) (uuid.UUID, error) {
	instructionsJSON, err := json.Marshal(appt.Instructions)
	if err != nil {
		return uuid.Nil, err
	}
	nextStepsJSON, err := json.Marshal(appt.NextSteps)
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO appointments
			(id, session_id, appointment_code, patient_name, department, doctor_name,
			 appointment_date, appointment_time, urgency_level, estimated_duration,
			 location, instructions, next_steps, scheduled_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err = r.db.ExecContext(ctx, query,
		id, sessionID, appt.ID, appt.PatientName, appt.Department, appt.DoctorName,
		appt.Date, appt.Time, appt.UrgencyLevel, appt.EstimatedDuration,
		appt.Location, instructionsJSON, nextStepsJSON, appt.ScheduledAt, time.Now())
	return id, errors.Wrap(err, "insert appointment")
}

func (r *postgresRepo) GetAppointment(ctx context.Context, sessionID uuid.UUID) (*scheduling.Appointment, error) {
	query := `
		SELECT appointment_code, patient_name, department, doctor_name, appointment_date,
		       appointment_time, urgency_level, estimated_duration, location,
		       instructions, next_steps, scheduled_at
		FROM appointments
		WHERE session_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var appt scheduling.Appointment
	var instructionsJSON, nextStepsJSON []byte
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(
		&appt.ID, &appt.PatientName, &appt.Department, &appt.DoctorName, &appt.Date,
		&appt.Time, &appt.UrgencyLevel, &appt.EstimatedDuration, &appt.Location,
		&instructionsJSON, &nextStepsJSON, &appt.ScheduledAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select appointment")
	}

	if err := json.Unmarshal(instructionsJSON, &appt.Instructions); err != nil {
		return nil, errors.Wrap(err, "unmarshal instructions")
	}
	if err := json.Unmarshal(nextStepsJSON, &appt.NextSteps); err != nil {
		return nil, errors.Wrap(err, "unmarshal next steps")
	}
	return &appt, nil
}

func (r *postgresRepo) SaveLetter(ctx context.Context, sessionID uuid.UUID, appointmentCode string, letter []byte) (uuid.UUID, error) {
	id := uuid.New()
	query := `
		INSERT INTO appointment_letters (id, session_id, appointment_code, letter, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, id, sessionID, appointmentCode, letter, time.Now())
	return id, errors.Wrap(err, "insert letter")
}

func (r *postgresRepo) SaveAuditEntry(ctx context.Context, sessionID uuid.UUID, step string, input, output any, status string) error {
	inputJSON, err := json.Marshal(input)
	if err != nil {
		return err
	}
	outputJSON, err := json.Marshal(output)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO audit_log (id, session_id, step, input, output, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = r.db.ExecContext(ctx, query, uuid.New(), sessionID, step, inputJSON, outputJSON, status, time.Now())
	return errors.Wrap(err, "insert audit entry")
}
