package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dvidovic/devconnect/internal/domain"
	"github.com/dvidovic/devconnect/internal/repository"
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotPostAuthor    = errors.New("only the post author can perform this action")
	ErrNotCommentAuthor = errors.New("only the comment author can perform this action")
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

type PostInput struct {
	Text string `json:"text"`
}

func (s *PostService) Create(ctx context.Context, userID primitive.ObjectID, input PostInput) (*domain.Post, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	post := &domain.Post{
		User:     userID,
		Text:     input.Text,
		Name:     user.Name,
		Likes:    []domain.Like{},
		Comments: []domain.Comment{},
		Date:     time.Now(),
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	return post, nil
}

func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	return s.postRepo.ListByDateDesc(ctx)
}

func (s *PostService) Get(ctx context.Context, postID primitive.ObjectID) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, userID, postID primitive.ObjectID) error {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}
	if post.User != userID {
		return ErrNotPostAuthor
	}
	return s.postRepo.Delete(ctx, postID)
}

// Like adds the caller to the like list and returns the updated list.
// Repeat likes are no-ops; the store enforces one entry per user.
func (s *PostService) Like(ctx context.Context, userID, postID primitive.ObjectID) ([]domain.Like, error) {
	if _, err := s.Get(ctx, postID); err != nil {
		return nil, err
	}

	if err := s.postRepo.AddLike(ctx, postID, userID); err != nil {
		return nil, fmt.Errorf("adding like: %w", err)
	}

	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	return post.Likes, nil
}

// Unlike removes the caller's like if present and returns the updated list.
// Unliking a post the caller never liked leaves the list unchanged.
func (s *PostService) Unlike(ctx context.Context, userID, postID primitive.ObjectID) ([]domain.Like, error) {
	if _, err := s.Get(ctx, postID); err != nil {
		return nil, err
	}

	if err := s.postRepo.RemoveLike(ctx, postID, userID); err != nil {
		return nil, fmt.Errorf("removing like: %w", err)
	}

	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	return post.Likes, nil
}

func (s *PostService) AddComment(ctx context.Context, userID, postID primitive.ObjectID, input PostInput) ([]domain.Comment, error) {
	if _, err := s.Get(ctx, postID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	comment := domain.Comment{
		ID:   primitive.NewObjectID(),
		User: userID,
		Text: input.Text,
		Name: user.Name,
		Date: time.Now(),
	}

	if err := s.postRepo.PrependComment(ctx, postID, comment); err != nil {
		return nil, fmt.Errorf("adding comment: %w", err)
	}

	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	return post.Comments, nil
}

func (s *PostService) DeleteComment(ctx context.Context, userID, postID, commentID primitive.ObjectID) ([]domain.Comment, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := post.FindComment(commentID)
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if comment.User != userID {
		return nil, ErrNotCommentAuthor
	}

	if err := s.postRepo.RemoveComment(ctx, postID, commentID); err != nil {
		return nil, fmt.Errorf("removing comment: %w", err)
	}

	post, err = s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	return post.Comments, nil
}
