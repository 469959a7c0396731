// Package models defines the core domain models for the classwork portal.
//
// # Models
//
//   - Student: roster entry with a hashed secret, an access flag, and
//     the set of subjects the student is enrolled in
//   - Project: an assignment uploaded by the teacher for a subject
//   - Scope: the (subject, project-or-none) key that partitions groups
//     and submissions
//   - Group: a small student group formed within one scope
//   - Submission: the single, immutable deliverable a group hands in
//     for a scope
//   - Grade: marks and feedback the teacher attaches to a submission
//
// # Design Principles
//
//  1. **Value semantics at the boundary**: stores hand out copies, so a
//     caller can never mutate shared state through a returned model
//  2. **Stable identity**: submissions carry an assigned ID from the
//     moment they are created; nothing is keyed by list position
//  3. **Opaque payloads**: file references and URLs are carried as
//     strings the core never inspects beyond existence
package models
