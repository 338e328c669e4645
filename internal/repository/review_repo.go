package repository

import (
	"PeerChain/internal/model"
	"PeerChain/internal/pkg/consts"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReviewRepo interface {
	CreateReview(ctx context.Context, review *model.Review) error
	GetReviewByID(ctx context.Context, id primitive.ObjectID) (*model.Review, error)
	FindByPaper(ctx context.Context, paperID primitive.ObjectID) ([]*model.Review, error)
	FindByReviewerInRange(ctx context.Context, reviewer primitive.ObjectID, start, end time.Time) ([]*model.Review, error)
	FindAcceptedInRange(ctx context.Context, reviewer primitive.ObjectID, start, end time.Time) ([]*model.Review, error)
	MarkAccepted(ctx context.Context, id primitive.ObjectID, pointsAwarded int) (*model.Review, error)
}

type reviewRepoImpl struct {
	col *mongo.Collection
}

func NewReviewRepo(db *mongo.Database) ReviewRepo {
	return &reviewRepoImpl{
		col: db.Collection("reviews"),
	}
}

func (s *reviewRepoImpl) CreateReview(ctx context.Context, review *model.Review) error {
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	result, err := s.col.InsertOne(ctx, review)
	if err != nil {
		// (paper, reviewer) 唯一索引拦截重复评审
		return translateDuplicate(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid
	}
	return nil
}

func (s *reviewRepoImpl) GetReviewByID(ctx context.Context, id primitive.ObjectID) (*model.Review, error) {
	var review model.Review
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (s *reviewRepoImpl) FindByPaper(ctx context.Context, paperID primitive.ObjectID) ([]*model.Review, error) {
	cursor, err := s.col.Find(ctx, bson.M{"paper": paperID})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var reviews []*model.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *reviewRepoImpl) FindByReviewerInRange(ctx context.Context, reviewer primitive.ObjectID, start, end time.Time) ([]*model.Review, error) {
	return s.findAll(ctx, bson.M{
		"reviewer":   reviewer,
		"created_at": bson.M{"$gte": start, "$lte": end},
	})
}

func (s *reviewRepoImpl) FindAcceptedInRange(ctx context.Context, reviewer primitive.ObjectID, start, end time.Time) ([]*model.Review, error) {
	return s.findAll(ctx, bson.M{
		"reviewer":    reviewer,
		"is_accepted": true,
		"accepted_at": bson.M{"$gte": start, "$lte": end},
	})
}

// MarkAccepted 以 is_accepted=false 作为过滤条件原子置位，
// 评审已被采纳时不命中任何文档，返回 (nil, nil) 且无副作用。
func (s *reviewRepoImpl) MarkAccepted(ctx context.Context, id primitive.ObjectID, pointsAwarded int) (*model.Review, error) {
	filter := bson.M{"_id": id, "is_accepted": false}
	update := bson.M{
		"$set": bson.M{
			"is_accepted":    true,
			"accepted_at":    time.Now(),
			"points_awarded": pointsAwarded,
			"status":         consts.ReviewStatusAccepted,
			"updated_at":     time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var review model.Review
	err := s.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (s *reviewRepoImpl) findAll(ctx context.Context, filter bson.M) ([]*model.Review, error) {
	cursor, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var reviews []*model.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
