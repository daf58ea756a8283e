package repository

import (
	"context"
	"errors"
	"time"

	"pinboard/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PinPatch carries a partial update; nil fields are left untouched.
type PinPatch struct {
	Title       *string
	Description *string
	ImageURL    *string
	Tags        []string
}

type PinRepository struct {
	db     *mongo.Database
	pins   *mongo.Collection
	boards *mongo.Collection
}

type PinRepositoryInterface interface {
	CreateInBoard(ctx context.Context, pin *model.Pin) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Pin, error)
	ViewByID(ctx context.Context, id primitive.ObjectID) (*model.Pin, error)
	Repin(ctx context.Context, pin *model.Pin) error
	List(ctx context.Context, search string, offset, limit int64) ([]model.Pin, int64, error)
	FindByBoard(ctx context.Context, boardID primitive.ObjectID) ([]model.Pin, error)
	Update(ctx context.Context, id primitive.ObjectID, patch PinPatch) (*model.Pin, error)
	DeleteWithMembership(ctx context.Context, pin *model.Pin) error
	ToggleLike(ctx context.Context, id, userID primitive.ObjectID) (*model.Pin, error)
}

var _ PinRepositoryInterface = (*PinRepository)(nil)

func NewPinRepository(db *mongo.Database) *PinRepository {
	return &PinRepository{
		db:     db,
		pins:   db.Collection(pinsCollection),
		boards: db.Collection(boardsCollection),
	}
}

func (r *PinRepository) prepare(pin *model.Pin) {
	if pin.ID.IsZero() {
		pin.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	pin.CreatedAt = now
	pin.UpdatedAt = now
	if pin.Tags == nil {
		pin.Tags = []string{}
	}
	if pin.Likes == nil {
		pin.Likes = []primitive.ObjectID{}
	}
}

// CreateInBoard inserts the pin and appends its id to the owning board's
// membership list in one transaction. The append is a store-level $addToSet
// so concurrent creates against the same board cannot lose updates.
func (r *PinRepository) CreateInBoard(ctx context.Context, pin *model.Pin) error {
	r.prepare(pin)
	return withTransaction(ctx, r.db, func(sc mongo.SessionContext) error {
		if _, err := r.pins.InsertOne(sc, pin); err != nil {
			return err
		}
		return r.appendToBoard(sc, pin.Board, pin.ID)
	})
}

// Repin inserts the copy and bumps the original's saves counter as one
// logical operation.
func (r *PinRepository) Repin(ctx context.Context, pin *model.Pin) error {
	if pin.RepinFrom == nil {
		return ErrPinNotFound
	}
	r.prepare(pin)
	return withTransaction(ctx, r.db, func(sc mongo.SessionContext) error {
		if _, err := r.pins.InsertOne(sc, pin); err != nil {
			return err
		}
		if err := r.appendToBoard(sc, pin.Board, pin.ID); err != nil {
			return err
		}
		res, err := r.pins.UpdateOne(sc,
			bson.M{"_id": *pin.RepinFrom},
			bson.M{"$inc": bson.M{"analytics.saves": 1}},
		)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return ErrPinNotFound
		}
		return nil
	})
}

func (r *PinRepository) appendToBoard(sc mongo.SessionContext, boardID, pinID primitive.ObjectID) error {
	res, err := r.boards.UpdateOne(sc,
		bson.M{"_id": boardID},
		bson.M{"$addToSet": bson.M{"pins": pinID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrBoardNotFound
	}
	return nil
}

func (r *PinRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Pin, error) {
	var pin model.Pin
	err := r.pins.FindOne(ctx, bson.M{"_id": id}).Decode(&pin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pin, nil
}

// ViewByID atomically increments the views counter and returns the updated
// pin. Every successful read-by-id goes through here.
func (r *PinRepository) ViewByID(ctx context.Context, id primitive.ObjectID) (*model.Pin, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var pin model.Pin
	err := r.pins.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"analytics.views": 1}},
		opts,
	).Decode(&pin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pin, nil
}

// List returns pins newest first, or relevance-ranked when search is given.
// Search matches the text index over title, description and tags.
func (r *PinRepository) List(ctx context.Context, search string, offset, limit int64) ([]model.Pin, int64, error) {
	filter := bson.M{}
	opts := options.Find().SetSkip(offset).SetLimit(limit)
	if search != "" {
		filter = bson.M{"$text": bson.M{"$search": search}}
		opts.SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}}).
			SetSort(bson.M{"score": bson.M{"$meta": "textScore"}})
	} else {
		opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})
	}

	total, err := r.pins.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.pins.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	var pins []model.Pin
	if err := cursor.All(ctx, &pins); err != nil {
		return nil, 0, err
	}
	return pins, total, nil
}

func (r *PinRepository) FindByBoard(ctx context.Context, boardID primitive.ObjectID) ([]model.Pin, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.pins.Find(ctx, bson.M{"board": boardID}, opts)
	if err != nil {
		return nil, err
	}
	var pins []model.Pin
	if err := cursor.All(ctx, &pins); err != nil {
		return nil, err
	}
	return pins, nil
}

func (r *PinRepository) Update(ctx context.Context, id primitive.ObjectID, patch PinPatch) (*model.Pin, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.ImageURL != nil {
		set["imageUrl"] = *patch.ImageURL
	}
	if patch.Tags != nil {
		set["tags"] = patch.Tags
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var pin model.Pin
	err := r.pins.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&pin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pin, nil
}

// DeleteWithMembership removes the pin and pulls its id from the owning
// board's membership list in one transaction, so the list never keeps
// references to deleted pins.
func (r *PinRepository) DeleteWithMembership(ctx context.Context, pin *model.Pin) error {
	return withTransaction(ctx, r.db, func(sc mongo.SessionContext) error {
		res, err := r.pins.DeleteOne(sc, bson.M{"_id": pin.ID})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return ErrPinNotFound
		}
		_, err = r.boards.UpdateOne(sc,
			bson.M{"_id": pin.Board},
			bson.M{"$pull": bson.M{"pins": pin.ID}},
		)
		return err
	})
}

// ToggleLike flips the user's membership in the likes set and returns the
// updated pin. The add-or-remove decision happens inside a single pipeline
// update, so two racing toggles by the same user each take effect.
func (r *PinRepository) ToggleLike(ctx context.Context, id, userID primitive.ObjectID) (*model.Pin, error) {
	likes := bson.M{"$ifNull": bson.A{"$likes", bson.A{}}}
	update := mongo.Pipeline{{{Key: "$set", Value: bson.M{
		"likes": bson.M{"$cond": bson.A{
			bson.M{"$in": bson.A{userID, likes}},
			bson.M{"$setDifference": bson.A{likes, bson.A{userID}}},
			bson.M{"$concatArrays": bson.A{likes, bson.A{userID}}},
		}},
	}}}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated model.Pin
	err := r.pins.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
