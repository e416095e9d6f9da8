package auth

import "github.com/trezcool/ratiba/core/account"

// Op enumerates the operations gated by Allowed.
type Op int

const (
	OpListStudents Op = iota
	OpReadStudent
	OpCreateStudent
	OpUpdateStudent
	OpDeleteStudent
	OpReadRoutine
	OpWriteRoutine
	OpDeleteRoutine
	OpWriteFeedback
)

// Target identifies the record an operation acts on by the account that owns
// it: the student's owning parent, for both students and routine records.
// For routine upserts the owner comes from the student referenced in the
// write payload, never from an existing row. A zero ParentID means the
// target spans more than one family (e.g. all routines for a date); only
// the admin rule can grant access to it.
type Target struct {
	ParentID int
}

// Allowed reports whether identity may perform op on target. Denial is the
// default: only the rules enumerated here grant access.
func Allowed(idn Identity, op Op, tgt Target) bool {
	switch idn.Role {
	case account.RoleAdmin:
		return true
	case account.RoleParent:
		switch op {
		case OpListStudents, OpReadStudent, OpCreateStudent, OpUpdateStudent, OpDeleteStudent,
			OpReadRoutine, OpWriteRoutine:
			return tgt.ParentID != 0 && tgt.ParentID == idn.AccountID
		case OpDeleteRoutine, OpWriteFeedback:
			return false
		}
		return false
	}
	return false
}
