package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	apierrors "github.com/yukikurage/trip-planner-api/internal/errors"
	"github.com/yukikurage/trip-planner-api/internal/models"
	"github.com/yukikurage/trip-planner-api/internal/repository"
	"github.com/yukikurage/trip-planner-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrFriendIDRequired = apierrors.BadRequest("friend id is empty", "Friend ID is required")
	ErrInvalidFriendID  = apierrors.BadRequest("malformed friend id", "Invalid friend ID format")
	ErrCannotFriendSelf = apierrors.BadRequest("self friendship", "You cannot add yourself as a friend")
	ErrFriendExists     = apierrors.Conflict("friend edge exists", "Friend already exists")
	ErrFriendNotFound   = apierrors.NotFound("friend edge missing", "Friend not found")
)

// FriendService manages friend lists
type FriendService struct {
	users   repository.UserRepository
	friends repository.FriendRepository
}

// NewFriendService creates a new FriendService
func NewFriendService(users repository.UserRepository, friends repository.FriendRepository) *FriendService {
	return &FriendService{users: users, friends: friends}
}

// ListFriends returns one page of a user's friends. An unknown user yields an empty page.
func (s *FriendService) ListFriends(ctx context.Context, userID string, params utils.PaginationParams) (Page[models.User], error) {
	if err := requireID(userID, "User"); err != nil {
		return Page[models.User]{}, err
	}

	friends, total, err := s.friends.List(ctx, userID, params)
	if err != nil {
		return Page[models.User]{}, fmt.Errorf("failed to list friends: %w", err)
	}
	return newPage(friends, params, total), nil
}

// AddFriend adds friendID to the friend list of userID. Only the account owner may do this.
func (s *FriendService) AddFriend(ctx context.Context, actorID, userID, friendID string) (*models.User, error) {
	friend, err := s.checkEdge(ctx, actorID, userID, friendID)
	if err != nil {
		return nil, err
	}

	added, err := s.friends.Add(ctx, userID, friend.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to add friend: %w", err)
	}
	if !added {
		return nil, ErrFriendExists
	}
	return friend, nil
}

// RemoveFriend removes friendID from the friend list of userID.
func (s *FriendService) RemoveFriend(ctx context.Context, actorID, userID, friendID string) error {
	if _, err := s.checkEdge(ctx, actorID, userID, friendID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrFriendNotFound
		}
		return err
	}

	removed, err := s.friends.Remove(ctx, userID, friendID)
	if err != nil {
		return fmt.Errorf("failed to remove friend: %w", err)
	}
	if !removed {
		return ErrFriendNotFound
	}
	return nil
}

func (s *FriendService) checkEdge(ctx context.Context, actorID, userID, friendID string) (*models.User, error) {
	if err := requireID(userID, "User"); err != nil {
		return nil, err
	}
	if userID != actorID {
		return nil, ErrNotAccountOwner
	}
	if friendID == "" {
		return nil, ErrFriendIDRequired
	}
	if _, err := uuid.Parse(friendID); err != nil {
		return nil, ErrInvalidFriendID
	}
	if friendID == userID {
		return nil, ErrCannotFriendSelf
	}

	friend, err := s.users.FindByID(ctx, friendID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find friend: %w", err)
	}
	return friend, nil
}
