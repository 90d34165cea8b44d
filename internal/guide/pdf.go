package guide

import (
	"bytes"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/signintech/gopdf"

	"patient-intake/internal/scheduling"
)

// Common DejaVuSans locations across Alpine and Debian images.
var fontPaths = []string{
	"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

// AppointmentLetter renders the confirmation letter sent to the patient.
func AppointmentLetter(appt scheduling.Appointment) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	var fontErr error
	fontLoaded := false
	for _, path := range fontPaths {
		if err := pdf.AddTTFFont("DejaVu", path); err == nil {
			fontLoaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !fontLoaded {
		return nil, errors.Wrap(fontErr, "load letter font, is ttf-dejavu installed")
	}

	if err := pdf.SetFont("DejaVu", "", 20); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Appointment Confirmation")
	pdf.Br(30)

	if err := pdf.SetFont("DejaVu", "", 12); err != nil {
		return nil, err
	}
	lines := []string{
		fmt.Sprintf("Issued: %s", time.Now().Format("02.01.2006 15:04")),
		fmt.Sprintf("Confirmation ID: %s", appt.ID),
		fmt.Sprintf("Patient: %s", appt.PatientName),
		fmt.Sprintf("Department: %s", appt.Department),
		fmt.Sprintf("Doctor: %s", appt.DoctorName),
		fmt.Sprintf("Date: %s at %s", appt.Date, appt.Time),
		fmt.Sprintf("Location: %s", appt.Location),
		fmt.Sprintf("Estimated duration: %s", appt.EstimatedDuration),
	}
	for _, line := range lines {
		pdf.Cell(nil, line)
		pdf.Br(15)
	}
	pdf.Br(10)

	if err := writeSection(&pdf, "Before your visit:", appt.Instructions); err != nil {
		return nil, err
	}
	if err := writeSection(&pdf, "Next steps:", appt.NextSteps); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, "write letter PDF")
	}
	return buf.Bytes(), nil
}

func writeSection(pdf *gopdf.GoPdf, title string, items []string) error {
	if len(items) == 0 {
		return nil
	}

	if err := pdf.SetFont("DejaVu", "", 14); err != nil {
		return err
	}
	pdf.Cell(nil, title)
	pdf.Br(15)

	if err := pdf.SetFont("DejaVu", "", 11); err != nil {
		return err
	}
	for _, item := range items {
		wrapped, _ := pdf.SplitText("- "+item, 500)
		for _, l := range wrapped {
			pdf.Cell(nil, l)
			pdf.Br(12)
		}
	}
	pdf.Br(10)
	return nil
}
