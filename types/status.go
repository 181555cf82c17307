package types

// Status is the ICS-02 status of a client.
type Status string

const (
	StatusActive  Status = "Active"
	StatusFrozen  Status = "Frozen"
	StatusExpired Status = "Expired"
	StatusUnknown Status = "Unknown"
)

func (s Status) String() string { return string(s) }
