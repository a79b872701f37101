package client

// Status is the status of a client. Only Active clients can verify proofs.
type Status string

const (
	// Active is a status type of a client. An active client is allowed to be used.
	Active Status = "Active"
	// Frozen is a status type of a client. A frozen client is not allowed to be used.
	Frozen Status = "Frozen"
	// Expired is a status type of a client. An expired client is not allowed to be used.
	Expired Status = "Expired"
)

func (s Status) String() string { return string(s) }

// IsActive reports whether s permits verification.
func (s Status) IsActive() bool { return s == Active }
