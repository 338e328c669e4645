package repository

import (
	"PeerChain/internal/model"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PaperRepo interface {
	CreatePaper(ctx context.Context, paper *model.Paper) error
	GetPaperByID(ctx context.Context, id primitive.ObjectID) (*model.Paper, error)
	ListPapers(ctx context.Context, category, status string, page, limit int) ([]*model.Paper, int64, error)
	CountByUserInRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) (int64, error)
	AttachReview(ctx context.Context, paperID, reviewID primitive.ObjectID, averageRating float64) error
}

type paperRepoImpl struct {
	col *mongo.Collection
}

func NewPaperRepo(db *mongo.Database) PaperRepo {
	return &paperRepoImpl{
		col: db.Collection("papers"),
	}
}

func (s *paperRepoImpl) CreatePaper(ctx context.Context, paper *model.Paper) error {
	now := time.Now()
	paper.CreatedAt = now
	paper.UpdatedAt = now
	if paper.SubmissionDate.IsZero() {
		paper.SubmissionDate = now
	}
	if paper.Reviews == nil {
		paper.Reviews = make([]primitive.ObjectID, 0)
	}

	result, err := s.col.InsertOne(ctx, paper)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		paper.ID = oid
	}
	return nil
}

func (s *paperRepoImpl) GetPaperByID(ctx context.Context, id primitive.ObjectID) (*model.Paper, error) {
	var paper model.Paper
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&paper)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &paper, nil
}

func (s *paperRepoImpl) ListPapers(ctx context.Context, category, status string, page, limit int) ([]*model.Paper, int64, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	if status != "" {
		filter["status"] = status
	}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "submission_date", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var papers []*model.Paper
	if err := cursor.All(ctx, &papers); err != nil {
		return nil, 0, err
	}
	return papers, total, nil
}

func (s *paperRepoImpl) CountByUserInRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{
		"submitted_by":    userID,
		"submission_date": bson.M{"$gte": start, "$lte": end},
	})
}

// AttachReview 挂载新评审并刷新派生字段
func (s *paperRepoImpl) AttachReview(ctx context.Context, paperID, reviewID primitive.ObjectID, averageRating float64) error {
	update := bson.M{
		"$push": bson.M{"reviews": reviewID},
		"$inc":  bson.M{"total_reviews": 1},
		"$set": bson.M{
			"average_rating": averageRating,
			"updated_at":     time.Now(),
		},
	}
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": paperID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
