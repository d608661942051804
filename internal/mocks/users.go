// Package mocks provides testify mocks for the service store interfaces.
package mocks

import (
	"context"

	"github.com/Dias221467/Habit_Tracker/internal/models"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserStore struct {
	mock.Mock
}

func (m *UserStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if fn, ok := args.Get(0).(func(context.Context, *models.User) *models.User); ok {
		return fn(ctx, user), args.Error(1)
	}
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *UserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *UserStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *UserStore) UpdateUser(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.User, error) {
	args := m.Called(ctx, id, fields)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *UserStore) UpdateLastActive(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *UserStore) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Error(1)
}

func (m *UserStore) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	args := m.Called(ctx, ids)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *UserStore) AddPoints(ctx context.Context, id primitive.ObjectID, points int, badges []string) error {
	return m.Called(ctx, id, points, badges).Error(0)
}

func (m *UserStore) SpendPoints(ctx context.Context, id primitive.ObjectID, cost int, badge string) (bool, error) {
	args := m.Called(ctx, id, cost, badge)
	return args.Bool(0), args.Error(1)
}

func (m *UserStore) AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) error {
	return m.Called(ctx, userID, friendID).Error(0)
}

func (m *UserStore) RemoveFriend(ctx context.Context, userID1, userID2 primitive.ObjectID) error {
	return m.Called(ctx, userID1, userID2).Error(0)
}
