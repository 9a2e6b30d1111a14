package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dvidovic/devconnect/internal/domain"
)

type ProfileRepo struct {
	coll *mongo.Collection
}

func NewProfileRepo(db *mongo.Database) *ProfileRepo {
	return &ProfileRepo{coll: db.Collection("profiles")}
}

// Upsert creates or replaces the profile keyed by its user reference and
// returns the stored document. Experience, education and the creation date
// are only written on insert, so re-saving an identical payload leaves the
// stored document unchanged.
func (r *ProfileRepo) Upsert(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	update := bson.M{
		"$set": bson.M{
			"status":   profile.Status,
			"skills":   profile.Skills,
			"company":  profile.Company,
			"website":  profile.Website,
			"location": profile.Location,
			"bio":      profile.Bio,
			"social":   profile.Social,
		},
		"$setOnInsert": bson.M{
			"user":       profile.User,
			"date":       profile.Date,
			"experience": []domain.Experience{},
			"education":  []domain.Education{},
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var stored domain.Profile
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"user": profile.User}, update, opts).Decode(&stored)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *ProfileRepo) GetByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	var p domain.Profile
	err := r.coll.FindOne(ctx, bson.M{"user": userID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepo) List(ctx context.Context) ([]domain.Profile, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	profiles := []domain.Profile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *ProfileRepo) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"user": userID})
	return err
}

func (r *ProfileRepo) PrependExperience(ctx context.Context, userID primitive.ObjectID, exp domain.Experience) error {
	return r.prepend(ctx, userID, "experience", exp)
}

func (r *ProfileRepo) RemoveExperience(ctx context.Context, userID, expID primitive.ObjectID) error {
	return r.removeEntry(ctx, userID, "experience", expID)
}

func (r *ProfileRepo) PrependEducation(ctx context.Context, userID primitive.ObjectID, edu domain.Education) error {
	return r.prepend(ctx, userID, "education", edu)
}

func (r *ProfileRepo) RemoveEducation(ctx context.Context, userID, eduID primitive.ObjectID) error {
	return r.removeEntry(ctx, userID, "education", eduID)
}

func (r *ProfileRepo) prepend(ctx context.Context, userID primitive.ObjectID, field string, entry any) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"user": userID},
		bson.M{"$push": bson.M{field: bson.M{
			"$each":     []any{entry},
			"$position": 0,
		}}},
	)
	return err
}

func (r *ProfileRepo) removeEntry(ctx context.Context, userID primitive.ObjectID, field string, entryID primitive.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"user": userID},
		bson.M{"$pull": bson.M{field: bson.M{"_id": entryID}}},
	)
	return err
}
