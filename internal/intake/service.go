package intake

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"patient-intake/internal/document"
	"patient-intake/internal/guide"
	"patient-intake/internal/insurance"
	"patient-intake/internal/scheduling"
	"patient-intake/internal/triage"
)

// OCRClient extracts text from an uploaded document image.
type OCRClient interface {
	ExtractText(ctx context.Context, image []byte, fileName string) (string, error)
}

// NarrativeClient generates the free-text visit guide upstream.
type NarrativeClient interface {
	GenerateGuide(ctx context.Context, appointmentSummary string) (string, error)
}

// NotifyClient delivers a short confirmation message out of band.
type NotifyClient interface {
	Call(ctx context.Context, destination, message string) error
}

type Service interface {
	CreateSession(ctx context.Context, patientID uuid.UUID) (*Session, error)
	ProcessDocument(ctx context.Context, sessionID uuid.UUID, kind document.Kind, image []byte, fileName string) (*DocumentResult, error)
	CompleteIntake(ctx context.Context, sessionID uuid.UUID, req IntakeRequest) (*IntakeResult, error)
	GetAssessment(ctx context.Context, sessionID uuid.UUID) (*triage.Assessment, error)
	GetAppointment(ctx context.Context, sessionID uuid.UUID) (*scheduling.Appointment, error)
}

type Deps struct {
	Repo      Repository
	OCR       OCRClient
	Narrative NarrativeClient
	Notify    NotifyClient
	Engine    *triage.Engine
	Allocator *scheduling.Allocator
	Verifier  *insurance.Verifier
	Resolver  *guide.Resolver
	Logger    zerolog.Logger

	NotifyDestination string
	NotifyTimeout     time.Duration
}

type service struct {
	Deps
}

func NewService(deps Deps) Service {
	if deps.NotifyTimeout == 0 {
		deps.NotifyTimeout = 30 * time.Second
	}
	return &service{Deps: deps}
}

func (s *service) CreateSession(ctx context.Context, patientID uuid.UUID) (*Session, error) {
	sess := &Session{
		ID:        uuid.New(),
		PatientID: patientID,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.CreateSession(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// ProcessDocument runs OCR and field extraction for one upload. OCR failure
// does not abort: the extractor runs on empty text, yields an empty record
// and the caller is told to fall back to manual entry.
func (s *service) ProcessDocument(ctx context.Context, sessionID uuid.UUID, kind document.Kind, image []byte, fileName string) (*DocumentResult, error) {
	if _, err := s.Repo.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}

	text, ocrErr := s.OCR.ExtractText(ctx, image, fileName)
	if ocrErr != nil {
		s.Logger.Warn().Err(ocrErr).Str("kind", string(kind)).Msg("ocr failed, proceeding with empty text")
		text = ""
	}

	result := &DocumentResult{Kind: kind}
	if ocrErr != nil {
		result.OCRError = ocrErr.Error()
	}

	var (
		payload any
		rawText string
		conf    float64
		hasData bool
	)
	switch kind {
	case document.KindPrescription:
		rec := document.ParsePrescription(text)
		result.Prescription = &rec
		payload, rawText, conf, hasData = rec, rec.RawText, rec.Confidence, rec.HasData()
	case document.KindInsurance:
		rec := document.ParseInsurance(text)
		result.Insurance = &rec
		payload, rawText, conf, hasData = rec, rec.RawText, rec.Confidence, rec.HasData()
	case document.KindIdentity:
		rec := document.ParseIdentity(text)
		result.Identity = &rec
		payload, rawText, conf, hasData = rec, rec.RawText, rec.Confidence, rec.HasData()
	default:
		return nil, fmt.Errorf("unknown document kind %q", kind)
	}
	result.NeedsManualInput = !hasData

	if _, err := s.Repo.SaveDocument(ctx, sessionID, kind, payload, rawText, conf); err != nil {
		return nil, err
	}
	s.audit(ctx, sessionID, "document_extraction", map[string]any{"kind": kind, "file": fileName}, result, statusOf(ocrErr))

	return result, nil
}

// CompleteIntake runs the sequential pipeline: triage, insurance
// verification, scheduling, narrative recovery and the confirmation
// notification. External failures are logged and replaced with safe
// defaults so the run always completes.
func (s *service) CompleteIntake(ctx context.Context, sessionID uuid.UUID, req IntakeRequest) (*IntakeResult, error) {
	if _, err := s.Repo.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}

	docs, err := s.Repo.GetDocuments(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var medications []string
	if docs.Prescription != nil {
		medications = docs.Prescription.Medications
	}

	var persistErrs *multierror.Error

	assessment := s.Engine.Assess(req.Symptoms, req.MedicalHistory, req.Age, medications)
	if _, err := s.Repo.SaveAssessment(ctx, sessionID, assessment); err != nil {
		persistErrs = multierror.Append(persistErrs, err)
	}
	s.audit(ctx, sessionID, "triage", req, assessment, "ok")

	result := &IntakeResult{
		SessionID:  sessionID,
		Assessment: assessment,
	}

	if docs.Insurance != nil {
		verification := s.Verifier.VerifyRecord(*docs.Insurance)
		result.Verification = &verification
		if _, err := s.Repo.SaveVerification(ctx, sessionID, verification); err != nil {
			persistErrs = multierror.Append(persistErrs, err)
		}
		s.audit(ctx, sessionID, "insurance_verification", docs.Insurance, verification, string(verification.Status))
	}

	patientName := docs.PatientName()
	appt, err := s.Allocator.Schedule(assessment.Department, string(assessment.UrgencyLevel), req.TimePreference, patientName)
	if err != nil {
		var noSlots *scheduling.NoSlotsError
		if !errors.As(err, &noSlots) {
			return nil, err
		}
		s.Logger.Warn().Str("department", noSlots.Department).Msg("no slots available")
		result.SchedulingNote = noSlots.Recommendation
		s.audit(ctx, sessionID, "scheduling", req.TimePreference, noSlots, "no_slots")

		result.VisitGuide = s.Resolver.RenderVisitGuide("", guide.Details{Department: assessment.Department})
		return result, persistErrs.ErrorOrNil()
	}

	result.Appointment = &appt
	if _, err := s.Repo.SaveAppointment(ctx, sessionID, appt); err != nil {
		persistErrs = multierror.Append(persistErrs, err)
	}
	s.audit(ctx, sessionID, "scheduling", req.TimePreference, appt, "ok")

	guidance := scheduling.Navigate(appt.Department, appt.Time)
	result.Guidance = &guidance

	narrative := s.generateNarrative(ctx, appt)
	details := guide.ParseNarrative(narrative)
	details = mergeAppointmentDetails(details, appt)
	result.VisitGuide = s.Resolver.RenderVisitGuide(narrative, details)

	if letter, err := guide.AppointmentLetter(appt); err != nil {
		s.Logger.Warn().Err(err).Msg("letter generation failed")
	} else if _, err := s.Repo.SaveLetter(ctx, sessionID, appt.ID, letter); err != nil {
		persistErrs = multierror.Append(persistErrs, err)
	}

	s.notifyAsync(sessionID, patientName, details)

	return result, persistErrs.ErrorOrNil()
}

func (s *service) GetAssessment(ctx context.Context, sessionID uuid.UUID) (*triage.Assessment, error) {
	return s.Repo.GetAssessment(ctx, sessionID)
}

func (s *service) GetAppointment(ctx context.Context, sessionID uuid.UUID) (*scheduling.Appointment, error) {
	return s.Repo.GetAppointment(ctx, sessionID)
}

// generateNarrative asks the upstream model for a visit guide. Any failure
// degrades to an empty narrative, which makes the renderer fall back to the
// field template.
func (s *service) generateNarrative(ctx context.Context, appt scheduling.Appointment) string {
	summary := fmt.Sprintf(
		"Department: %s\nDoctor: %s\nDate: %s\nTime: %s\nLocation: %s",
		appt.Department, appt.DoctorName, appt.Date, appt.Time, appt.Location)

	narrative, err := s.Narrative.GenerateGuide(ctx, summary)
	if err != nil {
		s.Logger.Warn().Err(err).Msg("narrative generation failed, using template")
		return ""
	}
	return narrative
}

// notifyAsync fires the confirmation call in the background. It never blocks
// the pipeline result; failures are logged and not retried.
func (s *service) notifyAsync(sessionID uuid.UUID, patientName string, details guide.Details) {
	message := guide.VoiceSummary(patientName, details)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.NotifyTimeout)
		defer cancel()

		if err := s.Notify.Call(ctx, s.NotifyDestination, message); err != nil {
			s.Logger.Warn().Err(err).Stringer("session_id", sessionID).Msg("confirmation call failed")
			return
		}
		s.Logger.Info().Stringer("session_id", sessionID).Msg("confirmation call placed")
	}()
}

// mergeAppointmentDetails prefers fields recovered from the narrative and
// fills gaps from the booked appointment.
func mergeAppointmentDetails(d guide.Details, appt scheduling.Appointment) guide.Details {
	if d.Doctor == "" {
		d.Doctor = appt.DoctorName
	}
	if d.Department == "" {
		d.Department = appt.Department
	}
	if d.Date == "" {
		d.Date = appt.Date
	}
	if d.Time == "" {
		d.Time = appt.Time
	}
	if d.Location == "" {
		d.Location = appt.Location
	}
	return d
}

func (s *service) audit(ctx context.Context, sessionID uuid.UUID, step string, input, output any, status string) {
	if err := s.Repo.SaveAuditEntry(ctx, sessionID, step, input, output, status); err != nil {
		s.Logger.Warn().Err(err).Str("step", step).Msg("audit write failed")
	}
}

func statusOf(err error) string {
	if err != nil {
		return "degraded"
	}
	return "ok"
}
