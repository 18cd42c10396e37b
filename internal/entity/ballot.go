package entity

// Ballot is the single current vote record of one account in one poll.
// It is keyed externally by the (address, poll id) pair and overwritten on revote.
type Ballot struct {
	Option string `json:"option"`
}
