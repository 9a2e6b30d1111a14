package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dvidovic/devconnect/internal/domain"
)

// ErrDuplicateEmail is returned by UserRepository.Create when the unique
// email index rejects the insert.
var ErrDuplicateEmail = errors.New("email already registered")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetAvatar(ctx context.Context, id primitive.ObjectID, avatar string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Post, error)
	ListByDateDesc(ctx context.Context) ([]domain.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error

	// AddLike and RemoveLike are single-document atomic updates so concurrent
	// likes cannot race and repeat likes from one user stay deduplicated.
	AddLike(ctx context.Context, postID, userID primitive.ObjectID) error
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error

	PrependComment(ctx context.Context, postID primitive.ObjectID, comment domain.Comment) error
	RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) error
}

type ProfileRepository interface {
	Upsert(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)
	GetByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error

	PrependExperience(ctx context.Context, userID primitive.ObjectID, exp domain.Experience) error
	RemoveExperience(ctx context.Context, userID, expID primitive.ObjectID) error
	PrependEducation(ctx context.Context, userID primitive.ObjectID, edu domain.Education) error
	RemoveEducation(ctx context.Context, userID, eduID primitive.ObjectID) error
}
