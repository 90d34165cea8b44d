package scheduling

import (
	"fmt"
	"strings"
)

type departmentInfo struct {
	location       string
	checkInCounter string
	phone          string
}

var departmentDetails = map[string]departmentInfo{
	"cardiology":         {"Building A, Floor 2, Room 201-210", "Counter 3", "555-0201"},
	"neurology":          {"Building A, Floor 3, Room 301-310", "Counter 4", "555-0301"},
	"orthopedics":        {"Building B, Floor 1, Room 101-110", "Counter 1", "555-0101"},
	"dermatology":        {"Building A, Floor 1, Room 101-110", "Counter 2", "555-0102"},
	"general_medicine":   {"Building A, Floor 1, Room 111-120", "Counter 1", "555-0103"},
	"emergency_medicine": {"Emergency Department, Ground Floor", "Emergency Triage", "555-0000"},
}

type Parking struct {
	Location string `json:"location"`
	Entrance string `json:"entrance"`
	Fee      string `json:"fee"`
}

type ContactInfo struct {
	DepartmentPhone string `json:"department_phone"`
	MainHospital    string `json:"main_hospital"`
	Emergency       string `json:"emergency"`
}

// Guidance tells the patient how to get to their appointment.
type Guidance struct {
	Department       string      `json:"department"`
	AppointmentTime  string      `json:"appointment_time"`
	Location         string      `json:"location"`
	Directions       []string    `json:"directions"`
	Parking          Parking     `json:"parking"`
	CheckInProcedure []string    `json:"check_in_procedure"`
	WhatToBring      []string    `json:"what_to_bring"`
	Contact          ContactInfo `json:"contact_info"`
}

// Navigate builds visit guidance for a scheduled appointment.
func Navigate(department, appointmentTime string) Guidance {
	info, ok := departmentDetails[strings.ToLower(department)]
	if !ok {
		info = departmentDetails["general_medicine"]
	}

	return Guidance{
		Department:      department,
		AppointmentTime: appointmentTime,
		Location:        info.location,
		Directions: []string{
			"Enter through Main Entrance",
			"Take elevator to Floor 2",
			fmt.Sprintf("Turn right and follow signs to %s Department", displayName(department)),
			fmt.Sprintf("Check in at %s", info.checkInCounter),
		},
		Parking: Parking{
			Location: "Main Parking Garage",
			Entrance: "Gate A",
			Fee:      "$5 for 2 hours",
		},
		CheckInProcedure: []string{
			"Present ID and insurance card",
			"Complete any remaining forms",
			"Wait in designated waiting area",
			"You will be called when ready",
		},
		WhatToBring: []string{
			"Government ID",
			"Insurance card",
			"List of current medications",
			"Any relevant medical documents",
		},
		Contact: ContactInfo{
			DepartmentPhone: info.phone,
			MainHospital:    "555-0123",
			Emergency:       "911",
		},
	}
}

// displayName turns a department tag like "general_medicine" into
// "General Medicine".
func displayName(department string) string {
	words := strings.Split(strings.ToLower(department), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
