package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Post struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User primitive.ObjectID `bson:"user" json:"user"`
	Text string             `bson:"text" json:"text"`
	// Author name captured at creation time; goes stale if the user renames.
	Name     string    `bson:"name" json:"name"`
	Likes    []Like    `bson:"likes" json:"likes"`
	Comments []Comment `bson:"comments" json:"comments"`
	Date     time.Time `bson:"date" json:"date"`
}

type Like struct {
	User primitive.ObjectID `bson:"user" json:"user"`
}

type Comment struct {
	ID   primitive.ObjectID `bson:"_id" json:"id"`
	User primitive.ObjectID `bson:"user" json:"user"`
	Text string             `bson:"text" json:"text"`
	Name string             `bson:"name" json:"name"`
	Date time.Time          `bson:"date" json:"date"`
}

// LikedBy reports whether userID already appears in the like list.
func (p *Post) LikedBy(userID primitive.ObjectID) bool {
	for _, like := range p.Likes {
		if like.User == userID {
			return true
		}
	}
	return false
}

// FindComment returns the comment with the given id, or nil.
func (p *Post) FindComment(commentID primitive.ObjectID) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			return &p.Comments[i]
		}
	}
	return nil
}
