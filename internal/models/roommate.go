package models

// Roommate is a registered member party. Ad-hoc parties (names typed inline
// on an expense or payment) have no registry entry; a roommate and an ad-hoc
// party whose names match case-insensitively are the same economic actor.
type Roommate struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`

	// AuthID links the roommate to an identity-provider account, if any.
	AuthID string `json:"authId,omitempty"`
}
