// Package policy is the single authorization table for the report
// workflow and the admin surfaces. Each operation maps to the roles
// that may always perform it and the roles that may perform it only
// when the caller matches the record (report owner, or the counsellor
// a report is assigned to). Services consult this table once per
// operation instead of branching on role strings inline.
package policy

import (
	"suraksha/internal/models"
)

type Operation string

const (
	ReportGet               Operation = "report.get"
	ReportDelete            Operation = "report.delete"
	ReportListAll           Operation = "report.list_all"
	ReportListAssigned      Operation = "report.list_assigned"
	ReportAssign            Operation = "report.assign"
	ReportSetStatus         Operation = "report.set_status"
	ReportSetStatusAssigned Operation = "report.set_status_assigned"

	SOSListAll Operation = "sos.list_all"
	SOSDelete  Operation = "sos.delete"

	QueryListAll Operation = "query.list_all"
	QueryDelete  Operation = "query.delete"
	QueryReply   Operation = "query.reply"
)

type rule struct {
	// always lists roles permitted regardless of record ownership.
	always []models.Role
	// whenMatching lists roles permitted only when the caller matches
	// the record's principal for this operation.
	whenMatching []models.Role
}

var anyRole = []models.Role{models.RoleUser, models.RoleAdmin, models.RoleCounsellor}

var table = map[Operation]rule{
	ReportGet:    {always: []models.Role{models.RoleAdmin}, whenMatching: anyRole},
	ReportDelete: {always: []models.Role{models.RoleAdmin}, whenMatching: anyRole},

	ReportListAll:      {always: []models.Role{models.RoleAdmin}},
	ReportListAssigned: {always: []models.Role{models.RoleCounsellor}},
	ReportAssign:       {always: []models.Role{models.RoleAdmin}},
	ReportSetStatus:    {always: []models.Role{models.RoleAdmin}},

	ReportSetStatusAssigned: {whenMatching: []models.Role{models.RoleCounsellor}},

	SOSListAll: {always: []models.Role{models.RoleAdmin}},
	SOSDelete:  {always: []models.Role{models.RoleAdmin}},

	QueryListAll: {always: []models.Role{models.RoleAdmin}},
	QueryDelete:  {always: []models.Role{models.RoleAdmin}},
	QueryReply:   {always: []models.Role{models.RoleAdmin}},
}

// Allow reports whether role may perform op. matching states whether
// the caller is the record's principal (owner or assigned counsellor).
func Allow(op Operation, role models.Role, matching bool) bool {
	r, ok := table[op]
	if !ok {
		return false
	}
	if contains(r.always, role) {
		return true
	}
	return matching && contains(r.whenMatching, role)
}

// RoleEligible reports whether role could ever perform op, for any
// record. Distinguishes a role failure (forbidden) from an ownership
// failure (unauthorized) when both checks are in play.
func RoleEligible(op Operation, role models.Role) bool {
	r, ok := table[op]
	if !ok {
		return false
	}
	return contains(r.always, role) || contains(r.whenMatching, role)
}

// CounsellorStatusAllowed restricts counsellor-driven transitions to
// the two active-work states. Admins may set any canonical status.
func CounsellorStatusAllowed(s models.ReportStatus) bool {
	return s == models.StatusInCounselling || s == models.StatusResolved
}

func contains(roles []models.Role, role models.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
