package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ecowash/ecowash-backend/internal/model"
	"github.com/ecowash/ecowash-backend/internal/repository"
)

type ReservationRepo struct{ coll *mongo.Collection }

func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	repository.Stamp(&res.ID, &res.CreatedAt)
	if res.Status == "" {
		res.Status = model.StatusPending
	}
	_, err := r.coll.InsertOne(ctx, res)
	return err
}

func (r *ReservationRepo) GetByID(ctx context.Context, id string) (model.Reservation, error) {
	var res model.Reservation
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&res)
	return res, notFound(err)
}

func (r *ReservationRepo) ListByUser(ctx context.Context, userID string) ([]model.Reservation, error) {
	return findAll[model.Reservation](ctx, r.coll, bson.M{"user_id": userID})
}

func (r *ReservationRepo) List(ctx context.Context, status model.Status) ([]model.Reservation, error) {
	return findAll[model.Reservation](ctx, r.coll, statusFilter(status))
}

func (r *ReservationRepo) UpdateStatus(ctx context.Context, id string, status model.Status, rejectReason string) error {
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, statusUpdate(status, rejectReason))
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// statusUpdate sets status and either stores the reason or drops it.
func statusUpdate(status model.Status, rejectReason string) bson.M {
	if rejectReason == "" {
		return bson.M{"$set": bson.M{"status": status}, "$unset": bson.M{"reject_reason": ""}}
	}
	return bson.M{"$set": bson.M{"status": status, "reject_reason": rejectReason}}
}

func (r *ReservationRepo) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ReservationRepo) CountByStatus(ctx context.Context, status model.Status) (int64, error) {
	return r.coll.CountDocuments(ctx, statusFilter(status))
}

func statusFilter(status model.Status) bson.M {
	if status == "" {
		return bson.M{}
	}
	return bson.M{"status": status}
}

type ContactRepo struct{ coll *mongo.Collection }

func (r *ContactRepo) Create(ctx context.Context, m *model.ContactMessage) error {
	repository.Stamp(&m.ID, &m.CreatedAt)
	m.Email = normalizeEmail(m.Email)
	_, err := r.coll.InsertOne(ctx, m)
	return err
}

func (r *ContactRepo) List(ctx context.Context) ([]model.ContactMessage, error) {
	return findAll[model.ContactMessage](ctx, r.coll, bson.M{})
}

func (r *ContactRepo) MarkRead(ctx context.Context, id string) (model.ContactMessage, error) {
	var m model.ContactMessage
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"read": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&m)
	return m, notFound(err)
}

func (r *ContactRepo) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ContactRepo) CountUnread(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"read": false})
}

type ReviewRepo struct{ coll *mongo.Collection }

// Create relies on the unique user_id index; a losing concurrent insert
// surfaces as ErrDuplicate.
func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	repository.Stamp(&rv.ID, &rv.CreatedAt)
	_, err := r.coll.InsertOne(ctx, rv)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *ReviewRepo) GetByUser(ctx context.Context, userID string) (model.Review, error) {
	var rv model.Review
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&rv)
	return rv, notFound(err)
}

func (r *ReviewRepo) Update(ctx context.Context, rv *model.Review) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": rv.ID},
		bson.M{"$set": bson.M{"rating": rv.Rating, "comment": rv.Comment}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ReviewRepo) DeleteByUser(ctx context.Context, userID string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ReviewRepo) List(ctx context.Context) ([]model.Review, error) {
	return findAll[model.Review](ctx, r.coll, bson.M{})
}
