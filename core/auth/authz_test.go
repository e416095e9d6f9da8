package auth

import (
	"testing"

	"github.com/trezcool/ratiba/core/account"
)

var allOps = []Op{
	OpListStudents, OpReadStudent, OpCreateStudent, OpUpdateStudent, OpDeleteStudent,
	OpReadRoutine, OpWriteRoutine, OpDeleteRoutine, OpWriteFeedback,
}

func TestAllowed_Admin(t *testing.T) {
	admin := Identity{AccountID: 1, Username: "root", Role: account.RoleAdmin}

	// admins pass every op against every target, including cross-family ones
	for _, op := range allOps {
		for _, tgt := range []Target{{}, {ParentID: 1}, {ParentID: 42}} {
			if !Allowed(admin, op, tgt) {
				t.Errorf("Allowed(admin, %v, %+v) = false, want true", op, tgt)
			}
		}
	}
}

func TestAllowed_Parent(t *testing.T) {
	parent := Identity{AccountID: 7, Username: "bob", Role: account.RoleParent}

	ownedOps := []Op{
		OpListStudents, OpReadStudent, OpCreateStudent, OpUpdateStudent, OpDeleteStudent,
		OpReadRoutine, OpWriteRoutine,
	}
	for _, op := range ownedOps {
		if !Allowed(parent, op, Target{ParentID: 7}) {
			t.Errorf("Allowed(parent, %v, own) = false, want true", op)
		}
		if Allowed(parent, op, Target{ParentID: 8}) {
			t.Errorf("Allowed(parent, %v, other family) = true, want false", op)
		}
		if Allowed(parent, op, Target{}) {
			t.Errorf("Allowed(parent, %v, cross-family) = true, want false", op)
		}
	}

	// routine deletion and feedback are admin territory, even on own records
	for _, op := range []Op{OpDeleteRoutine, OpWriteFeedback} {
		for _, tgt := range []Target{{}, {ParentID: 7}, {ParentID: 8}} {
			if Allowed(parent, op, tgt) {
				t.Errorf("Allowed(parent, %v, %+v) = true, want false", op, tgt)
			}
		}
	}
}

func TestAllowed_FailsClosed(t *testing.T) {
	unknowns := []Identity{
		{},
		{AccountID: 7, Username: "eve", Role: account.Role("SUPERUSER")},
		{AccountID: 7, Username: "eve", Role: account.Role("admin")},
	}
	for _, idn := range unknowns {
		for _, op := range allOps {
			for _, tgt := range []Target{{}, {ParentID: 7}} {
				if Allowed(idn, op, tgt) {
					t.Errorf("Allowed(%+v, %v, %+v) = true, want false", idn, op, tgt)
				}
			}
		}
	}

	// an unlisted op is denied even for a parent hitting their own records
	parent := Identity{AccountID: 7, Role: account.RoleParent}
	if Allowed(parent, Op(99), Target{ParentID: 7}) {
		t.Error("Allowed(parent, unknown op, own) = true, want false")
	}
}
