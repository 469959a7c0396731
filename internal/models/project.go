package models

// DeliverableKind says how a payload (project handout or group
// submission) is supplied.
type DeliverableKind string

const (
	// KindFile is an opaque reference to an uploaded file.
	KindFile DeliverableKind = "file"

	// KindURL is an external link (GitHub, Drive, etc.).
	KindURL DeliverableKind = "url"
)

// Project represents an assignment the teacher uploaded for a subject.
// Title is unique within the subject. Projects are never deleted; the
// deadline is the only field mutated after creation.
type Project struct {
	// Subject the project belongs to.
	Subject string

	// Title of the project, unique within Subject.
	Title string

	// Description is optional free text.
	Description string

	// Kind says whether Value is a file reference or a URL.
	Kind DeliverableKind

	// Value is the opaque handout payload.
	Value string

	// Deadline is the raw deadline string as entered by the teacher
	// (datetime-local or RFC 3339), empty when unset. It is parsed
	// lazily at evaluation time; an unparsable value behaves as unset.
	Deadline string

	// CreatedAt is the Unix timestamp when the project was uploaded.
	CreatedAt int64
}
