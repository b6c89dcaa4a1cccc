// Package mongostore implements the repository interfaces on MongoDB.
// Each entity lives in its own collection; uniqueness of user and admin
// emails and of the review owner is carried by unique indexes created in
// EnsureIndexes.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ecowash/ecowash-backend/internal/model"
	"github.com/ecowash/ecowash-backend/internal/repository"
)

// Collection names.
const (
	UsersCollection        = "users"
	AdminsCollection       = "admins"
	ReservationsCollection = "reservations"
	ContactsCollection     = "contacts"
	ReviewsCollection      = "reviews"
)

// New binds the stores to db.
func New(db *mongo.Database) repository.Stores {
	return repository.Stores{
		Users:        &UserRepo{coll: db.Collection(UsersCollection)},
		Admins:       &AdminRepo{coll: db.Collection(AdminsCollection)},
		Reservations: &ReservationRepo{coll: db.Collection(ReservationsCollection)},
		Contacts:     &ContactRepo{coll: db.Collection(ContactsCollection)},
		Reviews:      &ReviewRepo{coll: db.Collection(ReviewsCollection)},
	}
}

// EnsureIndexes creates the unique and sort indexes the stores rely on.
// Creating an index that already exists is a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		AdminsCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		ReservationsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		ContactsCollection: {
			{Keys: bson.D{{Key: "read", Value: 1}}},
		},
		ReviewsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}
	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

var newestFirst = options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) ([]T, error) {
	cur, err := coll.Find(ctx, filter, newestFirst)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type UserRepo struct{ coll *mongo.Collection }

func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Email = normalizeEmail(u.Email)
	repository.Stamp(&u.ID, &u.CreatedAt)
	_, err := r.coll.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrEmailExists
	}
	return err
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.coll.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&u)
	return u, notFound(err)
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	var u model.User
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	return u, notFound(err)
}

func (r *UserRepo) GetByIDs(ctx context.Context, ids []string) (map[string]model.User, error) {
	out := make(map[string]model.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var users []model.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

type AdminRepo struct{ coll *mongo.Collection }

func (r *AdminRepo) Create(ctx context.Context, a *model.Admin) error {
	a.Email = normalizeEmail(a.Email)
	repository.Stamp(&a.ID, &a.CreatedAt)
	_, err := r.coll.InsertOne(ctx, a)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrEmailExists
	}
	return err
}

func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (model.Admin, error) {
	var a model.Admin
	err := r.coll.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&a)
	return a, notFound(err)
}

func (r *AdminRepo) GetByID(ctx context.Context, id string) (model.Admin, error) {
	var a model.Admin
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	return a, notFound(err)
}

func (r *AdminRepo) DeleteAll(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{})
	return err
}
