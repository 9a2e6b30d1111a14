package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dvidovic/devconnect/internal/domain"
)

func newPostService(t *testing.T) (*PostService, *fakeUserRepo, *fakePostRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	postRepo := newFakePostRepo()
	return NewPostService(postRepo, userRepo), userRepo, postRepo
}

func addUser(t *testing.T, repo *fakeUserRepo, name string) primitive.ObjectID {
	t.Helper()
	user := &domain.User{Name: name, Email: name + "@example.com", Date: time.Now()}
	require.NoError(t, repo.Create(context.Background(), user))
	return user.ID
}

func TestCreatePostDenormalizesAuthorName(t *testing.T) {
	svc, userRepo, _ := newPostService(t)
	ctx := context.Background()
	userID := addUser(t, userRepo, "Ana")

	post, err := svc.Create(ctx, userID, PostInput{Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", post.Name)
	assert.Equal(t, userID, post.User)
	assert.Empty(t, post.Likes)
	assert.Empty(t, post.Comments)
}

func TestListPostsNewestFirst(t *testing.T) {
	svc, userRepo, postRepo := newPostService(t)
	ctx := context.Background()
	userID := addUser(t, userRepo, "Ana")

	older := &domain.Post{User: userID, Text: "older", Name: "Ana", Date: time.Now().Add(-time.Hour)}
	newer := &domain.Post{User: userID, Text: "newer", Name: "Ana", Date: time.Now()}
	require.NoError(t, postRepo.Create(ctx, older))
	require.NoError(t, postRepo.Create(ctx, newer))

	posts, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "newer", posts[0].Text)
	assert.Equal(t, "older", posts[1].Text)
}

func TestLikeIsIdempotent(t *testing.T) {
	svc, userRepo, _ := newPostService(t)
	ctx := context.Background()
	author := addUser(t, userRepo, "Ana")
	liker := addUser(t, userRepo, "Bob")

	post, err := svc.Create(ctx, author, PostInput{Text: "hello"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		likes, err := svc.Like(ctx, liker, post.ID)
		require.NoError(t, err)
		assert.Len(t, likes, 1)
	}

	likes, err := svc.Like(ctx, author, post.ID)
	require.NoError(t, err)
	assert.Len(t, likes, 2)

	got, err := svc.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, got.LikedBy(liker))
	assert.True(t, got.LikedBy(author))
}

func TestUnlike(t *testing.T) {
	svc, userRepo, _ := newPostService(t)
	ctx := context.Background()
	author := addUser(t, userRepo, "Ana")
	liker := addUser(t, userRepo, "Bob")

	post, err := svc.Create(ctx, author, PostInput{Text: "hello"})
	require.NoError(t, err)

	_, err = svc.Like(ctx, liker, post.ID)
	require.NoError(t, err)

	likes, err := svc.Unlike(ctx, liker, post.ID)
	require.NoError(t, err)
	assert.Empty(t, likes)

	// Unliking a post the caller never liked is a no-op.
	_, err = svc.Like(ctx, author, post.ID)
	require.NoError(t, err)
	likes, err = svc.Unlike(ctx, liker, post.ID)
	require.NoError(t, err)
	assert.Len(t, likes, 1)
	assert.Equal(t, author, likes[0].User)
}

func TestDeletePostAuthorOnly(t *testing.T) {
	svc, userRepo, _ := newPostService(t)
	ctx := context.Background()
	author := addUser(t, userRepo, "Ana")
	other := addUser(t, userRepo, "Bob")

	post, err := svc.Create(ctx, author, PostInput{Text: "hello"})
	require.NoError(t, err)

	err = svc.Delete(ctx, other, post.ID)
	assert.ErrorIs(t, err, ErrNotPostAuthor)

	// The post is intact after the rejected delete.
	got, err := svc.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Text)

	require.NoError(t, svc.Delete(ctx, author, post.ID))
	_, err = svc.Get(ctx, post.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestCommentsPrepend(t *testing.T) {
	svc, userRepo, _ := newPostService(t)
	ctx := context.Background()
	author := addUser(t, userRepo, "Ana")
	commenter := addUser(t, userRepo, "Bob")

	post, err := svc.Create(ctx, author, PostInput{Text: "hello"})
	require.NoError(t, err)

	_, err = svc.AddComment(ctx, commenter, post.ID, PostInput{Text: "first"})
	require.NoError(t, err)
	comments, err := svc.AddComment(ctx, commenter, post.ID, PostInput{Text: "second"})
	require.NoError(t, err)

	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Text)
	assert.Equal(t, "first", comments[1].Text)
	assert.Equal(t, "Bob", comments[0].Name)
}

func TestDeleteCommentAuthorOnly(t *testing.T) {
	svc, userRepo, _ := newPostService(t)
	ctx := context.Background()
	author := addUser(t, userRepo, "Ana")
	commenter := addUser(t, userRepo, "Bob")

	post, err := svc.Create(ctx, author, PostInput{Text: "hello"})
	require.NoError(t, err)

	comments, err := svc.AddComment(ctx, commenter, post.ID, PostInput{Text: "nice"})
	require.NoError(t, err)
	commentID := comments[0].ID

	_, err = svc.DeleteComment(ctx, author, post.ID, commentID)
	assert.ErrorIs(t, err, ErrNotCommentAuthor)

	comments, err = svc.DeleteComment(ctx, commenter, post.ID, commentID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	_, err = svc.DeleteComment(ctx, commenter, post.ID, commentID)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestPostNotFound(t *testing.T) {
	svc, userRepo, _ := newPostService(t)
	ctx := context.Background()
	userID := addUser(t, userRepo, "Ana")

	missing := primitive.NewObjectID()

	_, err := svc.Get(ctx, missing)
	assert.ErrorIs(t, err, ErrPostNotFound)
	_, err = svc.Like(ctx, userID, missing)
	assert.ErrorIs(t, err, ErrPostNotFound)
	_, err = svc.AddComment(ctx, userID, missing, PostInput{Text: "hi"})
	assert.ErrorIs(t, err, ErrPostNotFound)
}
