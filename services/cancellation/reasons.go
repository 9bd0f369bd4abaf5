package cancellation

import "fixly/models"

// ReasonOther is the open-ended option closing every reason list. Selecting
// it requires an accompanying free-text note.
const ReasonOther = "Other"

var customerReasons = []string{
	"Schedule conflict",
	"Found another professional",
	"No longer need the service",
	"Price too high",
	ReasonOther,
}

var professionalReasons = []string{
	"Personal emergency",
	"Double booked",
	"Customer unreachable",
	"Job details inaccurate",
	ReasonOther,
}

// AllowedReasons returns the ordered reason list for the role.
func AllowedReasons(role models.Role) []string {
	var src []string
	if role == models.RoleProfessional {
		src = professionalReasons
	} else {
		src = customerReasons
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

func reasonAllowed(role models.Role, reason string) bool {
	for _, r := range AllowedReasons(role) {
		if r == reason {
			return true
		}
	}
	return false
}
