package tui

import (
	"github.com/olimjons/clinicdesk/pkg/domain"

	"github.com/olimjons/clinicdesk/pkg/session"
)

// Routes mirror the paths of the clinic web app; every navigation goes
// through resolve before a screen is built.
const (
	routeLogin = "/login"
	routeRoot  = "/"

	routeAdminHome         = "/admin"
	routeAdminPatients     = "/admin/patients"
	routeAdminAppointments = "/admin/appointments"
	routeAdminServices     = "/admin/services"
	routeAdminTreatments   = "/admin/treatments"
	routeAdminUsers        = "/admin/users"

	routeDoctorHome         = "/doctor"
	routeDoctorPatients     = "/doctor/patients"
	routeDoctorAppointments = "/doctor/appointments"
	routeDoctorTreatments   = "/doctor/treatments"

	routeReceptionHome         = "/reception"
	routeReceptionPatients     = "/reception/patients"
	routeReceptionAppointments = "/reception/appointments"
)

// routeRoles is the single allowed-role table for all protected routes.
// A route absent from the table has no screen and resolves like "/".
var routeRoles = map[string][]domain.Role{
	routeAdminHome:         {domain.RoleAdmin},
	routeAdminPatients:     {domain.RoleAdmin},
	routeAdminAppointments: {domain.RoleAdmin},
	routeAdminServices:     {domain.RoleAdmin},
	routeAdminTreatments:   {domain.RoleAdmin},
	routeAdminUsers:        {domain.RoleAdmin},

	routeDoctorHome:         {domain.RoleDoctor},
	routeDoctorPatients:     {domain.RoleDoctor},
	routeDoctorAppointments: {domain.RoleDoctor},
	routeDoctorTreatments:   {domain.RoleDoctor},

	routeReceptionHome:         {domain.RoleReception},
	routeReceptionPatients:     {domain.RoleReception},
	routeReceptionAppointments: {domain.RoleReception},
}

// resolve applies the two guard stages to a navigation target and returns
// the route that actually renders. Stage one: an unauthenticated session
// lands on the login screen, whatever the target. Stage two: a role
// outside the target's allowed set is sent to its own home route; a role
// without a home (unrecognized) is sent to login. The guard only reads
// the session, it never changes it.
func resolve(target string, s session.Session) string {
	if !s.Authenticated() {
		return routeLogin
	}

	home := s.Role().HomeRoute()

	allowed, protected := routeRoles[target]
	if !protected {
		// "/" and unknown paths redirect by role, like the web app's
		// index route. An authenticated user has no business on /login.
		if home == "" {
			return routeLogin
		}
		return home
	}

	for _, role := range allowed {
		if s.Role() == role {
			return target
		}
	}
	if home == "" {
		return routeLogin
	}
	return home
}
