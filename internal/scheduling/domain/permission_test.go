package domain

import "testing"

func boolPtr(v bool) *bool { return &v }

func TestAuthorizeAdminAllowsEverything(t *testing.T) {
	deny := &PermissionOverrides{CanCancel: boolPtr(false)}
	for _, action := range []Action{
		ActionCreate, ActionList, ActionView, ActionUpdate, ActionDelete,
		ActionConfirm, ActionStart, ActionComplete, ActionCancel,
		ActionMarkNoShow, ActionReschedule, ActionReassign,
	} {
		if !Authorize(RoleAdmin, action, false, deny) {
			t.Errorf("admin must be allowed to %s even with deny overrides", action)
		}
	}
}

func TestAuthorizeReceptionistDefaults(t *testing.T) {
	// Receptionists run the calendar salon-wide without owning anything.
	for _, action := range []Action{
		ActionCreate, ActionList, ActionView, ActionConfirm,
		ActionReschedule, ActionReassign, ActionCancel, ActionMarkNoShow, ActionUpdate,
	} {
		if !Authorize(RoleReceptionniste, action, false, nil) {
			t.Errorf("receptionist must be allowed to %s", action)
		}
	}

	// They never perform the service and never delete records.
	for _, action := range []Action{ActionStart, ActionComplete, ActionDelete} {
		if Authorize(RoleReceptionniste, action, true, nil) {
			t.Errorf("receptionist must not be allowed to %s", action)
		}
	}
}

func TestAuthorizeStylistOwnership(t *testing.T) {
	// Salon-wide actions regardless of assignment.
	for _, action := range []Action{ActionList, ActionView, ActionConfirm, ActionStart, ActionComplete} {
		if !Authorize(RoleCoiffeur, action, false, nil) {
			t.Errorf("stylist must be allowed to %s on any appointment", action)
		}
	}

	// Mutations only on their own chair.
	for _, action := range []Action{ActionCancel, ActionReschedule, ActionReassign, ActionUpdate, ActionDelete} {
		if !Authorize(RoleCoiffeur, action, true, nil) {
			t.Errorf("stylist must be allowed to %s own appointment", action)
		}
		if Authorize(RoleCoiffeur, action, false, nil) {
			t.Errorf("stylist must not %s another stylist's appointment", action)
		}
	}

	if Authorize(RoleCoiffeur, ActionCreate, true, nil) {
		t.Error("stylists do not book appointments by default")
	}
}

func TestAuthorizeOverridesWinBothWays(t *testing.T) {
	// Grant widens a stylist's cancel to salon-wide.
	grant := &PermissionOverrides{CanCancel: boolPtr(true)}
	if !Authorize(RoleCoiffeur, ActionCancel, false, grant) {
		t.Error("explicit grant must widen cancel beyond own appointments")
	}

	// Deny narrows a receptionist below the role default.
	deny := &PermissionOverrides{CanCancel: boolPtr(false)}
	if Authorize(RoleReceptionniste, ActionCancel, false, deny) {
		t.Error("explicit deny must override the role default")
	}

	// Unset fields defer to the role default.
	partial := &PermissionOverrides{CanStart: boolPtr(false)}
	if !Authorize(RoleReceptionniste, ActionConfirm, false, partial) {
		t.Error("unset override field must fall through to role default")
	}
}

func TestAuthorizeUnknownRoleFailsClosed(t *testing.T) {
	if !Authorize("", ActionCreate, false, nil) {
		t.Error("anonymous booking relies on create being allowed without a role")
	}
	for _, action := range []Action{ActionList, ActionView, ActionCancel, ActionDelete, ActionComplete} {
		if Authorize("INTERN", action, true, nil) {
			t.Errorf("unknown role must be denied %s", action)
		}
	}
}
