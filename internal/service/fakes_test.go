package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dvidovic/devconnect/internal/domain"
	"github.com/dvidovic/devconnect/internal/repository"
)

// In-memory repository fakes used by the service tests. They mirror the
// update semantics of the Mongo implementations (atomic like dedupe,
// prepend-on-insert, upsert keyed by user).

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	// Mirrors the unique users.email index.
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) SetAvatar(_ context.Context, id primitive.ObjectID, avatar string) error {
	if u, ok := r.users[id]; ok {
		u.Avatar = avatar
	}
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.users, id)
	return nil
}

type fakePostRepo struct {
	posts map[primitive.ObjectID]*domain.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[primitive.ObjectID]*domain.Post{}}
}

func (r *fakePostRepo) Create(_ context.Context, post *domain.Post) error {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	clone := *post
	r.posts[post.ID] = &clone
	return nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (r *fakePostRepo) ListByDateDesc(_ context.Context) ([]domain.Post, error) {
	out := []domain.Post{}
	for _, p := range r.posts {
		out = append(out, *p)
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].Date.After(out[i].Date) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *fakePostRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	for id, p := range r.posts {
		if p.User == userID {
			delete(r.posts, id)
		}
	}
	return nil
}

func (r *fakePostRepo) AddLike(_ context.Context, postID, userID primitive.ObjectID) error {
	p, ok := r.posts[postID]
	if !ok {
		return nil
	}
	for _, like := range p.Likes {
		if like.User == userID {
			return nil
		}
	}
	p.Likes = append(p.Likes, domain.Like{User: userID})
	return nil
}

func (r *fakePostRepo) RemoveLike(_ context.Context, postID, userID primitive.ObjectID) error {
	p, ok := r.posts[postID]
	if !ok {
		return nil
	}
	kept := p.Likes[:0]
	for _, like := range p.Likes {
		if like.User != userID {
			kept = append(kept, like)
		}
	}
	p.Likes = kept
	return nil
}

func (r *fakePostRepo) PrependComment(_ context.Context, postID primitive.ObjectID, comment domain.Comment) error {
	p, ok := r.posts[postID]
	if !ok {
		return nil
	}
	p.Comments = append([]domain.Comment{comment}, p.Comments...)
	return nil
}

func (r *fakePostRepo) RemoveComment(_ context.Context, postID, commentID primitive.ObjectID) error {
	p, ok := r.posts[postID]
	if !ok {
		return nil
	}
	kept := p.Comments[:0]
	for _, c := range p.Comments {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	p.Comments = kept
	return nil
}

type fakeProfileRepo struct {
	profiles map[primitive.ObjectID]*domain.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[primitive.ObjectID]*domain.Profile{}}
}

func (r *fakeProfileRepo) Upsert(_ context.Context, profile *domain.Profile) (*domain.Profile, error) {
	existing, ok := r.profiles[profile.User]
	clone := *profile
	if ok {
		clone.ID = existing.ID
		clone.Date = existing.Date
		clone.Experience = existing.Experience
		clone.Education = existing.Education
	} else {
		clone.ID = primitive.NewObjectID()
		clone.Experience = []domain.Experience{}
		clone.Education = []domain.Education{}
	}
	r.profiles[profile.User] = &clone
	out := clone
	return &out, nil
}

func (r *fakeProfileRepo) GetByUser(_ context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (r *fakeProfileRepo) List(_ context.Context) ([]domain.Profile, error) {
	out := []domain.Profile{}
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProfileRepo) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	delete(r.profiles, userID)
	return nil
}

func (r *fakeProfileRepo) PrependExperience(_ context.Context, userID primitive.ObjectID, exp domain.Experience) error {
	if p, ok := r.profiles[userID]; ok {
		p.Experience = append([]domain.Experience{exp}, p.Experience...)
	}
	return nil
}

func (r *fakeProfileRepo) RemoveExperience(_ context.Context, userID, expID primitive.ObjectID) error {
	p, ok := r.profiles[userID]
	if !ok {
		return nil
	}
	kept := p.Experience[:0]
	for _, e := range p.Experience {
		if e.ID != expID {
			kept = append(kept, e)
		}
	}
	p.Experience = kept
	return nil
}

func (r *fakeProfileRepo) PrependEducation(_ context.Context, userID primitive.ObjectID, edu domain.Education) error {
	if p, ok := r.profiles[userID]; ok {
		p.Education = append([]domain.Education{edu}, p.Education...)
	}
	return nil
}

func (r *fakeProfileRepo) RemoveEducation(_ context.Context, userID, eduID primitive.ObjectID) error {
	p, ok := r.profiles[userID]
	if !ok {
		return nil
	}
	kept := p.Education[:0]
	for _, e := range p.Education {
		if e.ID != eduID {
			kept = append(kept, e)
		}
	}
	p.Education = kept
	return nil
}
