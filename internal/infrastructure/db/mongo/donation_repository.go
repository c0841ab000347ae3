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

const collectionDonations = "donations"

type DonationRepository struct {
	col *mongo.Collection
}

func NewDonationRepository(db *mongo.Database) *DonationRepository {
	return &DonationRepository{col: db.Collection(collectionDonations)}
}

// Create inserts a new donation document and returns the assigned id.
func (r *DonationRepository) Create(ctx context.Context, d *domain.Donation) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, d)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}
	d.ID = oid
	return oid.Hex(), nil
}

// FindByID retrieves a donation by its hex id.
func (r *DonationRepository) FindByID(ctx context.Context, id string) (*domain.Donation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrDonationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d domain.Donation
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}
	return &d, nil
}

// FindUnclaimed returns all donations with claimed=false, in store order.
func (r *DonationRepository) FindUnclaimed(ctx context.Context) ([]*domain.Donation, error) {
	return r.findAll(ctx, bson.M{"claimed": false})
}

// FindOlderThan returns all donations created strictly before cutoff
// (milliseconds since epoch), claimed or not.
func (r *DonationRepository) FindOlderThan(ctx context.Context, cutoff int64) ([]*domain.Donation, error) {
	return r.findAll(ctx, bson.M{"timestamp": bson.M{"$lt": cutoff}})
}

func (r *DonationRepository) findAll(ctx context.Context, filter bson.M) ([]*domain.Donation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var donations []*domain.Donation
	if err := cur.All(ctx, &donations); err != nil {
		return nil, err
	}
	return donations, nil
}

// MarkClaimed flips the claimed flag with a conditional update so that only
// one concurrent claimant can win. A zero matched count means the donation is
// already claimed (or was purged in between).
func (r *DonationRepository) MarkClaimed(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrDonationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "claimed": false},
		bson.M{"$set": bson.M{"claimed": true}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrDonationAlreadyClaimed
	}
	return nil
}

// Delete removes a donation document by id.
func (r *DonationRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrDonationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = r.col.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

// EnsureIndexes creates the indexes backing the list and sweep queries.
func (r *DonationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "claimed", Value: 1}}},
		{Keys: bson.D{{Key: "timestamp", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
