package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sharebite/donation-system/internal/core/domain"
)

const collectionClaims = "claims"

// ClaimRepository persists claim audit records. Claims are append-only: this
// repository exposes no update or delete.
type ClaimRepository struct {
	col *mongo.Collection
}

func NewClaimRepository(db *mongo.Database) *ClaimRepository {
	return &ClaimRepository{col: db.Collection(collectionClaims)}
}

// Create inserts a new claim document and returns the assigned id.
func (r *ClaimRepository) Create(ctx context.Context, c *domain.Claim) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}
	c.ID = oid
	return oid.Hex(), nil
}

// FindByDonationID returns all claims referencing a donation id. The
// donation may no longer exist; claims outlive their donation.
func (r *ClaimRepository) FindByDonationID(ctx context.Context, donationID string) ([]*domain.Claim, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"donation_id": donationID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var claims []*domain.Claim
	if err := cur.All(ctx, &claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// EnsureIndexes creates the index backing claim lookups by donation.
func (r *ClaimRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "donation_id", Value: 1}},
	})
	return err
}
