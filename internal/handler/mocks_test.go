package handler_test

import (
	"context"
	"sync"

	"pinboard/internal/model"
	"pinboard/internal/repository"
	"pinboard/internal/validation"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var registerValidationOnce sync.Once

func registerValidation() {
	registerValidationOnce.Do(func() {
		if err := validation.Register(); err != nil {
			panic(err)
		}
	})
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	args := m.Called(ctx, id)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.User, error) {
	args := m.Called(ctx, ids)
	users := args.Get(0)
	if users == nil {
		return nil, args.Error(1)
	}
	return users.([]model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users := args.Get(0)
	if users == nil {
		return nil, args.Error(1)
	}
	return users.([]model.User), args.Error(1)
}

type MockBoardRepository struct {
	mock.Mock
}

func (m *MockBoardRepository) Create(ctx context.Context, board *model.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

func (m *MockBoardRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Board, error) {
	args := m.Called(ctx, id)
	board := args.Get(0)
	if board == nil {
		return nil, args.Error(1)
	}
	return board.(*model.Board), args.Error(1)
}

func (m *MockBoardRepository) List(ctx context.Context, viewer primitive.ObjectID, offset, limit int64) ([]model.Board, int64, error) {
	args := m.Called(ctx, viewer, offset, limit)
	boards := args.Get(0)
	if boards == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return boards.([]model.Board), args.Get(1).(int64), args.Error(2)
}

func (m *MockBoardRepository) Update(ctx context.Context, id primitive.ObjectID, patch repository.BoardPatch) (*model.Board, error) {
	args := m.Called(ctx, id, patch)
	board := args.Get(0)
	if board == nil {
		return nil, args.Error(1)
	}
	return board.(*model.Board), args.Error(1)
}

func (m *MockBoardRepository) DeleteWithPins(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPinRepository struct {
	mock.Mock
}

func (m *MockPinRepository) CreateInBoard(ctx context.Context, pin *model.Pin) error {
	args := m.Called(ctx, pin)
	return args.Error(0)
}

func (m *MockPinRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Pin, error) {
	args := m.Called(ctx, id)
	pin := args.Get(0)
	if pin == nil {
		return nil, args.Error(1)
	}
	return pin.(*model.Pin), args.Error(1)
}

func (m *MockPinRepository) ViewByID(ctx context.Context, id primitive.ObjectID) (*model.Pin, error) {
	args := m.Called(ctx, id)
	pin := args.Get(0)
	if pin == nil {
		return nil, args.Error(1)
	}
	return pin.(*model.Pin), args.Error(1)
}

func (m *MockPinRepository) Repin(ctx context.Context, pin *model.Pin) error {
	args := m.Called(ctx, pin)
	return args.Error(0)
}

func (m *MockPinRepository) List(ctx context.Context, search string, offset, limit int64) ([]model.Pin, int64, error) {
	args := m.Called(ctx, search, offset, limit)
	pins := args.Get(0)
	if pins == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return pins.([]model.Pin), args.Get(1).(int64), args.Error(2)
}

func (m *MockPinRepository) FindByBoard(ctx context.Context, boardID primitive.ObjectID) ([]model.Pin, error) {
	args := m.Called(ctx, boardID)
	pins := args.Get(0)
	if pins == nil {
		return nil, args.Error(1)
	}
	return pins.([]model.Pin), args.Error(1)
}

func (m *MockPinRepository) Update(ctx context.Context, id primitive.ObjectID, patch repository.PinPatch) (*model.Pin, error) {
	args := m.Called(ctx, id, patch)
	pin := args.Get(0)
	if pin == nil {
		return nil, args.Error(1)
	}
	return pin.(*model.Pin), args.Error(1)
}

func (m *MockPinRepository) DeleteWithMembership(ctx context.Context, pin *model.Pin) error {
	args := m.Called(ctx, pin)
	return args.Error(0)
}

func (m *MockPinRepository) ToggleLike(ctx context.Context, id, userID primitive.ObjectID) (*model.Pin, error) {
	args := m.Called(ctx, id, userID)
	pin := args.Get(0)
	if pin == nil {
		return nil, args.Error(1)
	}
	return pin.(*model.Pin), args.Error(1)
}
