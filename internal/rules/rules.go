// Package rules holds the client-side validation rules the web forms enforce.
// Messages match the strings the UI renders.
package rules

// Violation is a failed rule with the message shown next to the field.
type Violation struct {
	Field   string
	Message string
}

func (v *Violation) Error() string {
	return v.Message
}

func violation(field, msg string) error {
	return &Violation{Field: field, Message: msg}
}
