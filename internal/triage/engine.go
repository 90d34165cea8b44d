package triage

import (
	"fmt"
	"strings"
)

// urgencyTiers are evaluated most severe first; the first tier with a
// keyword hit decides the urgency.
var urgencyTiers = []struct {
	urgency  Urgency
	keywords []string
}{
	{UrgencyEmergency, []string{
		"chest pain", "shortness of breath", "severe bleeding", "bleeding heavily",
		"heavy bleeding", "profuse bleeding", "excessive bleeding", "uncontrolled bleeding",
		"unconscious", "stroke", "heart attack", "severe head injury", "broken bone",
		"severe allergic reaction", "anaphylaxis", "seizure", "fainting",
		"severe trauma", "major injury", "life threatening",
	}},
	{UrgencyHigh, []string{
		"fever above 103", "severe pain", "dizziness", "nausea", "vomiting",
		"severe headache", "vision problems", "numbness", "tingling",
		"swelling", "infection", "wound", "burn", "bleeding", "blood loss",
		"moderate bleeding", "continuous bleeding", "persistent bleeding",
	}},
	{UrgencyMedium, []string{
		"mild pain", "rash", "cough", "fatigue", "mild fever",
		"sore throat", "ear pain", "back pain", "joint pain",
	}},
}

// departmentRules are checked in priority order. Bleeding is first so a
// bleeding plus chest-pain combination still routes to emergency medicine.
var departmentRules = []struct {
	department string
	keywords   []string
}{
	{DeptEmergencyMedicine, []string{"bleeding", "blood loss", "hemorrhage"}},
	{DeptCardiology, []string{"chest", "heart", "cardiac"}},
	{DeptNeurology, []string{"head", "brain", "neurological", "seizure"}},
	{DeptOrthopedics, []string{"bone", "joint", "fracture", "orthopedic"}},
	{DeptDermatology, []string{"skin", "rash", "dermatological"}},
	{DeptObstetrics, []string{"pregnancy", "gynecological"}},
	{DeptPediatrics, []string{"child", "pediatric"}},
}

var historyRiskRules = []struct {
	factor   string
	keywords []string
}{
	{"Diabetes", []string{"diabetes"}},
	{"Hypertension", []string{"hypertension", "high blood pressure"}},
	{"Cardiac history", []string{"heart disease", "cardiac"}},
}

// concernRules is an additive pass over dangerous symptom combinations,
// independent of the urgency tier.
var concernRules = []struct {
	message string
	match   func(symptoms, history string) bool
}{
	{"Severe bleeding - requires immediate emergency care", func(s, _ string) bool {
		return containsAny(s, []string{"bleeding", "blood loss", "hemorrhage"}) &&
			containsAny(s, []string{"heavily", "profuse", "excessive", "uncontrolled", "severe"})
	}},
	{"Bleeding - requires prompt medical evaluation", func(s, _ string) bool {
		return containsAny(s, []string{"bleeding", "blood loss", "hemorrhage"}) &&
			!containsAny(s, []string{"heavily", "profuse", "excessive", "uncontrolled", "severe"})
	}},
	{"Possible cardiac event - requires immediate evaluation", func(s, h string) bool {
		return strings.Contains(s, "chest pain") &&
			(strings.Contains(s, "shortness of breath") || strings.Contains(h, "heart"))
	}},
	{"Possible stroke - requires immediate evaluation", func(s, h string) bool {
		return strings.Contains(s, "severe headache") &&
			(strings.Contains(h, "stroke") || strings.Contains(h, "high blood pressure"))
	}},
	{"Possible serious infection - requires prompt evaluation", func(s, _ string) bool {
		return strings.Contains(s, "fever") && strings.Contains(s, "infection")
	}},
	{"Trauma-related symptoms - requires immediate evaluation", func(s, _ string) bool {
		return containsAny(s, []string{"trauma", "injury", "accident", "fall"})
	}},
}

var recommendedActions = map[Urgency][]string{
	UrgencyEmergency: {
		"Immediate medical attention required",
		"Call emergency services if needed",
		"Do not delay seeking care",
	},
	UrgencyHigh: {
		"Seek medical attention within 24 hours",
		"Monitor symptoms closely",
		"Contact primary care physician",
	},
	UrgencyMedium: {
		"Schedule appointment within 1-2 weeks",
		"Continue monitoring symptoms",
		"Consider urgent care if symptoms worsen",
	},
	UrgencyLow: {
		"Schedule routine appointment",
		"Self-care recommended",
		"Follow up with primary care",
	},
}

var waitTimes = map[Urgency]string{
	UrgencyEmergency: "Immediate",
	UrgencyHigh:      "Within 24 hours",
	UrgencyMedium:    "1-2 weeks",
	UrgencyLow:       "2-4 weeks",
}

// Engine classifies symptom text into an urgency level and department.
type Engine struct {
	// escalationThreshold is the risk factor count above which a low
	// urgency is bumped to medium. Heuristic, not clinically derived.
	escalationThreshold int
}

func NewEngine(escalationThreshold int) *Engine {
	return &Engine{escalationThreshold: escalationThreshold}
}

func (e *Engine) Assess(symptoms, medicalHistory string, age int, medications []string) Assessment {
	symptomsLower := strings.ToLower(symptoms)
	historyLower := strings.ToLower(medicalHistory)

	urgency := UrgencyLow
	for _, tier := range urgencyTiers {
		if containsAny(symptomsLower, tier.keywords) {
			urgency = tier.urgency
			break
		}
	}

	department := DeptGeneralMedicine
	if urgency == UrgencyEmergency {
		department = DeptEmergencyMedicine
	} else {
		for _, rule := range departmentRules {
			if containsAny(symptomsLower, rule.keywords) {
				department = rule.department
				break
			}
		}
	}

	var riskFactors []string
	if age > 65 {
		riskFactors = append(riskFactors, "Elderly patient")
	}
	if age < 18 {
		riskFactors = append(riskFactors, "Pediatric patient")
	}
	for _, rule := range historyRiskRules {
		if containsAny(historyLower, rule.keywords) {
			riskFactors = append(riskFactors, rule.factor)
		}
	}
	if len(medications) > 0 {
		riskFactors = append(riskFactors, fmt.Sprintf("On %d medications", len(medications)))
	}

	// Comorbidity can override a benign symptom description.
	if urgency == UrgencyLow && len(riskFactors) > e.escalationThreshold {
		urgency = UrgencyMedium
	}

	return Assessment{
		UrgencyLevel:       urgency,
		Department:         department,
		TriageScore:        urgency.Score(),
		RiskFactors:        riskFactors,
		ImmediateConcerns:  immediateConcerns(symptomsLower, historyLower),
		RecommendedActions: recommendedActions[urgency],
		EstimatedWaitTime:  waitTimes[urgency],
		AssessmentNotes:    fmt.Sprintf("Patient presents with: %s. Age: %d. Medical history: %s", symptoms, age, medicalHistory),
		FollowUpNeeded:     urgency == UrgencyMedium || urgency == UrgencyLow,
	}
}

func immediateConcerns(symptomsLower, historyLower string) []string {
	var concerns []string
	for _, rule := range concernRules {
		if rule.match(symptomsLower, historyLower) {
			concerns = append(concerns, rule.message)
		}
	}
	return concerns
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
