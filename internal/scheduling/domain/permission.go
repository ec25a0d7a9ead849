package domain

// Role is an actor's role within its salon.
type Role string

const (
	RoleAdmin          Role = "ADMIN"
	RoleCoiffeur       Role = "COIFFEUR"
	RoleReceptionniste Role = "RECEPTIONNISTE"
)

// scope describes how far a role's default permission for an action reaches.
type scope int

const (
	scopeNone scope = iota // denied
	scopeOwn               // only appointments assigned to the actor's employee record
	scopeAny               // any appointment within the actor's salon
)

// roleDefaults is the authorization matrix for non-admin roles. Admin is
// handled separately and allows everything.
//
// Receptionists manage the calendar but never perform the service, so
// start/complete are excluded. Stylists may run their own chair for any
// appointment but only modify bookings assigned to them.
var roleDefaults = map[Role]map[Action]scope{
	RoleReceptionniste: {
		ActionCreate:     scopeAny,
		ActionList:       scopeAny,
		ActionView:       scopeAny,
		ActionConfirm:    scopeAny,
		ActionReschedule: scopeAny,
		ActionReassign:   scopeAny,
		ActionCancel:     scopeAny,
		ActionMarkNoShow: scopeAny,
		ActionUpdate:     scopeAny,
	},
	RoleCoiffeur: {
		ActionList:       scopeAny,
		ActionView:       scopeAny,
		ActionConfirm:    scopeAny,
		ActionStart:      scopeAny,
		ActionComplete:   scopeAny,
		ActionCancel:     scopeOwn,
		ActionMarkNoShow: scopeOwn,
		ActionReschedule: scopeOwn,
		ActionReassign:   scopeOwn,
		ActionUpdate:     scopeOwn,
		ActionDelete:     scopeOwn,
	},
}

// PermissionOverrides is a per-employee tri-state override set. A nil
// field defers to the role default; true grants the action salon-wide;
// false denies it outright. Rows are created lazily and mutated only by
// a salon admin.
type PermissionOverrides struct {
	CanCreate     *bool
	CanViewAll    *bool
	CanConfirm    *bool
	CanStart      *bool
	CanComplete   *bool
	CanCancel     *bool
	CanMarkNoShow *bool
	CanReschedule *bool
	CanReassign   *bool
	CanUpdate     *bool
	CanDelete     *bool
}

func (o *PermissionOverrides) value(action Action) *bool {
	if o == nil {
		return nil
	}
	switch action {
	case ActionCreate:
		return o.CanCreate
	case ActionList, ActionView:
		return o.CanViewAll
	case ActionConfirm:
		return o.CanConfirm
	case ActionStart:
		return o.CanStart
	case ActionComplete:
		return o.CanComplete
	case ActionCancel:
		return o.CanCancel
	case ActionMarkNoShow:
		return o.CanMarkNoShow
	case ActionReschedule:
		return o.CanReschedule
	case ActionReassign:
		return o.CanReassign
	case ActionUpdate:
		return o.CanUpdate
	case ActionDelete:
		return o.CanDelete
	}
	return nil
}

// Authorize decides whether an actor may perform an action.
//
// Admin is unconditional. For other roles an explicit override wins in
// both directions; otherwise the role default applies, with scopeOwn
// requiring the target appointment to be assigned to the actor's own
// employee record. Unknown or missing roles fail closed for everything
// except create, which is how anonymous public booking enters the engine.
//
// The cross-tenant guard is evaluated by the orchestrator before this
// matrix is consulted.
func Authorize(role Role, action Action, ownsTarget bool, overrides *PermissionOverrides) bool {
	if role == RoleAdmin {
		return true
	}

	if value := overrides.value(action); value != nil {
		return *value
	}

	defaults, known := roleDefaults[role]
	if !known {
		return action == ActionCreate
	}

	switch defaults[action] {
	case scopeAny:
		return true
	case scopeOwn:
		return ownsTarget
	}
	return false
}
