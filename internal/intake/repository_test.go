package intake

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patient-intake/internal/scheduling"
	"patient-intake/internal/triage"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock, db
}

func TestCreateSessionInsert(t *testing.T) {
	repo, mock, _ := setupMock(t)

	sess := &Session{ID: uuid.New(), PatientID: uuid.New(), CreatedAt: time.Now()}
	mock.ExpectExec("INSERT INTO intake_sessions").
		WithArgs(sess.ID, sess.PatientID, sess.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreateSession(context.Background(), sess)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSessionNotFound(t *testing.T) {
	repo, mock, _ := setupMock(t)

	id := uuid.New()
	mock.ExpectQuery("SELECT id, patient_id, created_at FROM intake_sessions").
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetSession(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssessmentRoundTrip(t *testing.T) {
	repo, mock, _ := setupMock(t)
	sessionID := uuid.New()

	saved := triage.Assessment{
		UrgencyLevel:       triage.UrgencyMedium,
		Department:         triage.DeptGeneralMedicine,
		TriageScore:        2,
		RiskFactors:        []string{"Elderly patient", "Diabetes", "Hypertension"},
		ImmediateConcerns:  []string{"Fever with possible infection"},
		RecommendedActions: []string{"Schedule appointment within 24-48 hours", "Monitor symptoms closely", "Return if symptoms worsen"},
		EstimatedWaitTime:  "1-2 hours",
		AssessmentNotes:    "Patient presents with symptoms suggesting medium priority care.",
		FollowUpNeeded:     true,
	}

	riskJSON, _ := json.Marshal(saved.RiskFactors)
	concernsJSON, _ := json.Marshal(saved.ImmediateConcerns)
	actionsJSON, _ := json.Marshal(saved.RecommendedActions)

	mock.ExpectExec("INSERT INTO triage_assessments").
		WithArgs(sqlmock.AnyArg(), sessionID, "medium", saved.Department, saved.TriageScore,
			riskJSON, concernsJSON, actionsJSON, saved.EstimatedWaitTime, saved.AssessmentNotes,
			saved.FollowUpNeeded, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	_, err := repo.SaveAssessment(context.Background(), sessionID, saved)
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{
		"urgency_level", "department", "triage_score", "risk_factors", "immediate_concerns",
		"recommended_actions", "estimated_wait_time", "assessment_notes", "follow_up_needed",
	}).AddRow("medium", saved.Department, saved.TriageScore, riskJSON, concernsJSON,
		actionsJSON, saved.EstimatedWaitTime, saved.AssessmentNotes, saved.FollowUpNeeded)

	mock.ExpectQuery("SELECT urgency_level, department, triage_score").
		WithArgs(sessionID).
		WillReturnRows(rows)

	loaded, err := repo.GetAssessment(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, saved, *loaded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAssessmentNotFound(t *testing.T) {
	repo, mock, _ := setupMock(t)

	sessionID := uuid.New()
	mock.ExpectQuery("SELECT urgency_level, department, triage_score").
		WithArgs(sessionID).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetAssessment(context.Background(), sessionID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetDocumentsLatestPerKind(t *testing.T) {
	repo, mock, _ := setupMock(t)
	sessionID := uuid.New()

	prescription := []byte(`{"medications":["Amoxicillin 500 mg tablets"],"doctor_name":"Dr. John Smith","date":"","instructions":[],"raw_text":"x","confidence":0.5}`)
	identity := []byte(`{"name":"Rahul Kumar","date_of_birth":"15/08/1985","id_number":"","address":"","raw_text":"y","confidence":0.5}`)

	rows := sqlmock.NewRows([]string{"kind", "payload"}).
		AddRow("identity", identity).
		AddRow("prescription", prescription)

	mock.ExpectQuery("SELECT DISTINCT ON \\(kind\\) kind, payload").
		WithArgs(sessionID).
		WillReturnRows(rows)

	docs, err := repo.GetDocuments(context.Background(), sessionID)
	require.NoError(t, err)

	require.NotNil(t, docs.Prescription)
	assert.Equal(t, []string{"Amoxicillin 500 mg tablets"}, docs.Prescription.Medications)
	require.NotNil(t, docs.Identity)
	assert.Equal(t, "Rahul Kumar", docs.Identity.Name)
	assert.Nil(t, docs.Insurance)
	assert.Equal(t, "Rahul Kumar", docs.PatientName())
}

func TestAppointmentRoundTrip(t *testing.T) {
	repo, mock, _ := setupMock(t)
	sessionID := uuid.New()

	scheduledAt := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	saved := scheduling.Appointment{
		ID:                "APT-20250602120000",
		PatientName:       "Rahul Kumar",
		Department:        "cardiology",
		DoctorName:        "Dr. Sarah Wilson",
		Date:              "2025-06-03",
		Time:              "09:00 AM",
		UrgencyLevel:      "high",
		EstimatedDuration: "30 minutes",
		Location:          "Cardiology Center, Building A, Floor 3",
		Instructions:      []string{"Avoid caffeine 24 hours before visit", "Bring list of current medications"},
		NextSteps:         []string{"Monitor symptoms, seek immediate care if worsening", "Arrive 20 minutes early for check-in"},
		ScheduledAt:       scheduledAt,
	}

	instructionsJSON, _ := json.Marshal(saved.Instructions)
	nextStepsJSON, _ := json.Marshal(saved.NextSteps)

	mock.ExpectExec("INSERT INTO appointments").
		WithArgs(sqlmock.AnyArg(), sessionID, saved.ID, saved.PatientName, saved.Department,
			saved.DoctorName, saved.Date, saved.Time, saved.UrgencyLevel, saved.EstimatedDuration,
			saved.Location, instructionsJSON, nextStepsJSON, saved.ScheduledAt, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	_, err := repo.SaveAppointment(context.Background(), sessionID, saved)
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{
		"appointment_code", "patient_name", "department", "doctor_name", "appointment_date",
		"appointment_time", "urgency_level", "estimated_duration", "location",
		"instructions", "next_steps", "scheduled_at",
	}).AddRow(saved.ID, saved.PatientName, saved.Department, saved.DoctorName, saved.Date,
		saved.Time, saved.UrgencyLevel, saved.EstimatedDuration, saved.Location,
		instructionsJSON, nextStepsJSON, scheduledAt)

	mock.ExpectQuery("SELECT appointment_code, patient_name, department").
		WithArgs(sessionID).
		WillReturnRows(rows)

	loaded, err := repo.GetAppointment(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, saved, *loaded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveAuditEntryMarshalsPayloads(t *testing.T) {
	repo, mock, _ := setupMock(t)
	sessionID := uuid.New()

	input := map[string]string{"kind": "prescription"}
	output := map[string]bool{"needs_manual_input": true}
	inputJSON, _ := json.Marshal(input)
	outputJSON, _ := json.Marshal(output)

	mock.ExpectExec("INSERT INTO audit_log").
		WithArgs(sqlmock.AnyArg(), sessionID, "document_extraction", inputJSON, outputJSON, "degraded", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.SaveAuditEntry(context.Background(), sessionID, "document_extraction", input, output, "degraded")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
