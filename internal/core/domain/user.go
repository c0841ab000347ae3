package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// RoleReceiver tags users that form the audience for donation alerts.
const RoleReceiver = "receiver"

// User is a registered identity. Registration is owned by an external
// subsystem; this service only reads role-tagged email addresses.
type User struct {
	ID    primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email string             `json:"email,omitempty" bson:"email,omitempty"`
	Roles []string           `json:"roles" bson:"roles"`
}

// HasRole reports whether the user carries the given role.
func (u User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
