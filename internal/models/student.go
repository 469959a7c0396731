package models

// Student represents a roster entry. Students are provisioned by the
// teacher and never deleted during a session; access can be revoked at
// any time and takes effect on the next login or action.
type Student struct {
	// Username is the unique identifier for the student.
	Username string

	// SecretHash is the bcrypt hash of the student's secret.
	// The raw secret is never stored.
	SecretHash string

	// Access indicates whether the student may log in and act.
	Access bool

	// Subjects is the list of subjects the student is enrolled in.
	Subjects []string

	// CreatedAt is the Unix timestamp when the student was added.
	CreatedAt int64
}

// EnrolledIn reports whether the student is enrolled in subject.
func (s *Student) EnrolledIn(subject string) bool {
	for _, sub := range s.Subjects {
		if sub == subject {
			return true
		}
	}
	return false
}
