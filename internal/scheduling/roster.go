package scheduling

import "strings"

var departmentDoctors = map[string][]string{
	"cardiology":         {"Dr. Sarah Wilson", "Dr. Michael Chen", "Dr. Emily Rodriguez"},
	"neurology":          {"Dr. James Thompson", "Dr. Lisa Park", "Dr. David Kim"},
	"orthopedics":        {"Dr. Robert Johnson", "Dr. Maria Garcia", "Dr. Alex Brown"},
	"dermatology":        {"Dr. Jennifer Lee", "Dr. Christopher Davis", "Dr. Amanda White"},
	"general_medicine":   {"Dr. Lisa Park", "Dr. John Smith", "Dr. Rachel Green"},
	"emergency_medicine": {"Dr. Emergency Physician", "Dr. Urgent Care Specialist"},
}

var departmentLocations = map[string]string{
	"cardiology":         "Building A, Floor 2, Room 201-210",
	"neurology":          "Building A, Floor 3, Room 301-310",
	"orthopedics":        "Building B, Floor 1, Room 101-110",
	"dermatology":        "Building A, Floor 1, Room 101-110",
	"general_medicine":   "Building A, Floor 1, Room 111-120",
	"emergency_medicine": "Emergency Department, Ground Floor",
}

// AssignDoctor returns the first doctor of the department roster. Unknown
// departments fall back to general medicine.
func AssignDoctor(department string) string {
	doctors, ok := departmentDoctors[strings.ToLower(department)]
	if !ok {
		doctors = departmentDoctors["general_medicine"]
	}
	return doctors[0]
}

// DepartmentLocation returns the fixed building/floor/room descriptor.
func DepartmentLocation(department string) string {
	if loc, ok := departmentLocations[strings.ToLower(department)]; ok {
		return loc
	}
	return "Main Building, Floor 1"
}

func appointmentInstructions(department, urgency string) []string {
	if urgency == "emergency" {
		return []string{
			"Go directly to Emergency Department",
			"Bring any relevant medical information",
		}
	}

	instructions := []string{
		"Arrive 15 minutes before appointment",
		"Bring all relevant medical documents",
		"Bring list of current medications",
	}
	switch strings.ToLower(department) {
	case "cardiology":
		instructions = append(instructions, "Fasting may be required for certain tests")
	case "dermatology":
		instructions = append(instructions, "Avoid applying lotions or creams to affected areas")
	}
	return instructions
}

func appointmentNextSteps(urgency string) []string {
	switch urgency {
	case "emergency":
		return []string{"Go to Emergency Department immediately"}
	case "high":
		return []string{
			"Monitor symptoms closely until appointment",
			"Check email for appointment confirmation",
			"Review pre-appointment instructions",
			"Prepare questions for your doctor",
		}
	default:
		return []string{
			"Check email for appointment confirmation",
			"Review pre-appointment instructions",
			"Prepare questions for your doctor",
		}
	}
}
