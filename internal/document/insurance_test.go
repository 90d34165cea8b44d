package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleMedicareCard = `MEDICARE HEALTH INSURANCE
Name/Nombre: JOHN A SMITH
Medicare Number/Número de Medicare: 1EG4-TE5-MK72
Coverage starts/Cobertura empieza: 01-03-2021`

func TestParseInsuranceMedicareCard(t *testing.T) {
	rec := ParseInsurance(sampleMedicareCard)

	assert.Equal(t, "Medicare Health Insurance", rec.Provider)
	assert.Equal(t, "JOHN A SMITH", rec.MemberName)
	assert.Equal(t, "1EG4-TE5-MK72", rec.MemberID)
	assert.Equal(t, "01-03-2021", rec.CoverageDate)
	assert.Equal(t, sampleMedicareCard, rec.RawText)
}

func TestParseInsuranceKnownProviderLine(t *testing.T) {
	rec := ParseInsurance("Blue Cross Blue Shield of Texas\nMember ID: XYZ")

	assert.Equal(t, "Blue Cross Blue Shield of Texas", rec.Provider)
}

func TestParseInsuranceFirstProviderWins(t *testing.T) {
	rec := ParseInsurance("Aetna\nCigna")

	assert.Equal(t, "Aetna", rec.Provider)
}

func TestParseInsurancePolicyAndGroupNumbers(t *testing.T) {
	rec := ParseInsurance("Policy Number: POL-778899\nGroup No: GRP-001")

	assert.Equal(t, "POL-778899", rec.PolicyNumber)
	assert.Equal(t, "GRP-001", rec.GroupNumber)
}

func TestParseInsuranceSpanishLabels(t *testing.T) {
	rec := ParseInsurance("Número de Medicare: 9AB8-CD7-EF65\nCobertura empieza: 15-07-2023")

	assert.Equal(t, "9AB8-CD7-EF65", rec.MemberID)
	assert.Equal(t, "15-07-2023", rec.CoverageDate)
}

func TestParseInsuranceUnrecognizedText(t *testing.T) {
	raw := "just some words"
	rec := ParseInsurance(raw)

	assert.False(t, rec.HasData())
	assert.Equal(t, raw, rec.RawText)
	assert.Equal(t, 0.0, rec.Confidence)
}
