package models

// MaxGroupSize is the membership cap for a group.
const MaxGroupSize = 3

// Group represents a student group formed within one scope.
//
// Invariants (enforced by the service layer):
//   - 0 <= len(Members) <= MaxGroupSize
//   - Leader, when set, is one of Members
//   - a student belongs to at most one group per scope
//   - Name is unique within the scope only, not globally
//
// A group emptied by its last member leaving is removed; a group the
// teacher created empty sticks around until it is deleted or emptied.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Scope the group was formed in.
	Scope Scope

	// Name is the display name, unique within Scope.
	Name string

	// Members is the ordered list of member usernames (join order).
	Members []string

	// Leader is the username of the member authorized to submit on the
	// group's behalf, or empty while no leader has been chosen.
	Leader string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether username is a member of the group.
func (g *Group) HasMember(username string) bool {
	for _, m := range g.Members {
		if m == username {
			return true
		}
	}
	return false
}

// Full reports whether the group is at capacity.
func (g *Group) Full() bool {
	return len(g.Members) >= MaxGroupSize
}
