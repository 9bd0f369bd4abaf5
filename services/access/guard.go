package access

import "fixly/models"

// Outcome classifies a routing decision.
type Outcome string

const (
	// OutcomeAllow lets the navigation proceed.
	OutcomeAllow Outcome = "allow"
	// OutcomeRedirect denies the screen and names the screen to go to instead.
	OutcomeRedirect Outcome = "redirect"
	// OutcomePending is the neutral outcome while identity resolution is
	// outstanding. It never triggers navigation; callers re-evaluate once the
	// principal is resolved.
	OutcomePending Outcome = "pending"
)

// Decision is the result of one guard evaluation.
type Decision struct {
	Outcome  Outcome `json:"outcome"`
	Redirect string  `json:"redirect,omitempty"`
}

// Allowed reports whether the decision permits the navigation.
func (d Decision) Allowed() bool {
	return d.Outcome == OutcomeAllow
}

// Evaluate is the total decision table over (principal state, required role).
// A required role of "" means the screen is shared by all authenticated
// principals. The table is pure and idempotent: the same inputs always map to
// exactly one outcome.
func Evaluate(principal *models.Principal, resolved bool, required models.Role) Decision {
	if !resolved {
		return Decision{Outcome: OutcomePending}
	}
	if principal == nil {
		return Decision{Outcome: OutcomeRedirect, Redirect: models.ScreenLanding}
	}
	if required == "" || principal.Role == required {
		return Decision{Outcome: OutcomeAllow}
	}
	return Decision{Outcome: OutcomeRedirect, Redirect: principal.Role.HomeScreen()}
}

// screenRequirements maps logical screen identifiers to the role required to
// reach them. Screens absent from the map are shared by all authenticated
// principals; the landing screen is reachable anonymously.
var screenRequirements = map[string]models.Role{
	models.ScreenCustomerHome:     models.RoleCustomer,
	"customer-jobs":               models.RoleCustomer,
	"customer-job-detail":         models.RoleCustomer,
	models.ScreenProfessionalHome: models.RoleProfessional,
	"professional-jobs":           models.RoleProfessional,
	"professional-job-detail":     models.RoleProfessional,
	models.ScreenAdminHome:        models.RoleAdmin,
	"admin-accounts":              models.RoleAdmin,
	"admin-review-queue":          models.RoleAdmin,
}

// RequiredRole returns the role a screen demands, or "" for shared screens.
func RequiredRole(screen string) models.Role {
	return screenRequirements[screen]
}

// Route evaluates the guard for a logical screen identifier.
func Route(principal *models.Principal, resolved bool, screen string) Decision {
	if screen == models.ScreenLanding {
		// The landing screen is the anonymous fallback target and is always
		// reachable once identity is resolved.
		if !resolved {
			return Decision{Outcome: OutcomePending}
		}
		return Decision{Outcome: OutcomeAllow}
	}
	return Evaluate(principal, resolved, RequiredRole(screen))
}
