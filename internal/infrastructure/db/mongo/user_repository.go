package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sharebite/donation-system/internal/core/domain"
)

const collectionUsers = "users"

// UserRepository reads the user collection owned by the external
// registration subsystem. This service never writes to it.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

// FindReceiverEmails returns the email addresses of all users whose roles
// array contains "receiver". Records without an email field are skipped.
func (r *UserRepository) FindReceiverEmails(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"roles": domain.RoleReceiver})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var emails []string
	for cur.Next(ctx) {
		var u domain.User
		if err := cur.Decode(&u); err != nil {
			continue
		}
		if u.Email == "" {
			continue
		}
		emails = append(emails, u.Email)
	}
	return emails, cur.Err()
}
