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

// BoardPatch carries a partial update; nil fields are left untouched.
type BoardPatch struct {
	Name        *string
	Description *string
	IsPrivate   *bool
}

type BoardRepository struct {
	db     *mongo.Database
	boards *mongo.Collection
	pins   *mongo.Collection
}

type BoardRepositoryInterface interface {
	Create(ctx context.Context, board *model.Board) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Board, error)
	List(ctx context.Context, viewer primitive.ObjectID, offset, limit int64) ([]model.Board, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, patch BoardPatch) (*model.Board, error)
	DeleteWithPins(ctx context.Context, id primitive.ObjectID) error
}

var _ BoardRepositoryInterface = (*BoardRepository)(nil)

func NewBoardRepository(db *mongo.Database) *BoardRepository {
	return &BoardRepository{
		db:     db,
		boards: db.Collection(boardsCollection),
		pins:   db.Collection(pinsCollection),
	}
}

func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	if board.ID.IsZero() {
		board.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	board.CreatedAt = now
	board.UpdatedAt = now
	if board.Pins == nil {
		board.Pins = []primitive.ObjectID{}
	}
	_, err := r.boards.InsertOne(ctx, board)
	return err
}

func (r *BoardRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Board, error) {
	var board model.Board
	err := r.boards.FindOne(ctx, bson.M{"_id": id}).Decode(&board)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil // Return nil, nil to indicate that the board was not found
	}
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// List returns boards visible to the viewer, newest first: public boards plus
// the viewer's own private ones. A zero viewer id means anonymous.
func (r *BoardRepository) List(ctx context.Context, viewer primitive.ObjectID, offset, limit int64) ([]model.Board, int64, error) {
	filter := bson.M{"isPrivate": false}
	if !viewer.IsZero() {
		filter = bson.M{"$or": bson.A{
			bson.M{"isPrivate": false},
			bson.M{"createdBy": viewer},
		}}
	}

	total, err := r.boards.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSkip(offset).
		SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.boards.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	var boards []model.Board
	if err := cursor.All(ctx, &boards); err != nil {
		return nil, 0, err
	}
	return boards, total, nil
}

// Update applies the patch with a single $set and returns the updated board,
// or nil when the board does not exist.
func (r *BoardRepository) Update(ctx context.Context, id primitive.ObjectID, patch BoardPatch) (*model.Board, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.IsPrivate != nil {
		set["isPrivate"] = *patch.IsPrivate
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var board model.Board
	err := r.boards.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&board)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// DeleteWithPins removes the board and every pin that references it as one
// logical operation. If the pin cascade fails the board stays.
func (r *BoardRepository) DeleteWithPins(ctx context.Context, id primitive.ObjectID) error {
	return withTransaction(ctx, r.db, func(sc mongo.SessionContext) error {
		if _, err := r.pins.DeleteMany(sc, bson.M{"board": id}); err != nil {
			return err
		}
		res, err := r.boards.DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return ErrBoardNotFound
		}
		return nil
	})
}
