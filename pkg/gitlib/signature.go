package gitlib

import "time"

// Signature is a git author or committer signature.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}
