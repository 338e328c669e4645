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

type UserRepo interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*model.User, error)
	ListAllUsers(ctx context.Context) ([]*model.User, error)
	UpdateUserInfo(ctx context.Context, id primitive.ObjectID, user *model.User) error
	IncCounters(ctx context.Context, id primitive.ObjectID, points, reviews, papers int) (*model.User, error)
	SetLevel(ctx context.Context, id primitive.ObjectID, level string) error
	SetLastLogin(ctx context.Context, id primitive.ObjectID) error
}

type userRepoImpl struct {
	col *mongo.Collection
}

func NewUserRepo(db *mongo.Database) UserRepo {
	return &userRepoImpl{
		col: db.Collection("users"),
	}
}

func (s *userRepoImpl) CreateUser(ctx context.Context, user *model.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.JoinedDate.IsZero() {
		user.JoinedDate = now
	}

	result, err := s.col.InsertOne(ctx, user)
	if err != nil {
		return translateDuplicate(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (s *userRepoImpl) GetUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	var user model.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *userRepoImpl) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *userRepoImpl) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*model.User, error) {
	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var users []*model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListAllUsers 全量用户扫描，按 _id 升序返回。
// 排序即排行榜同分时的次级名次依据，不能省略。
func (s *userRepoImpl) ListAllUsers(ctx context.Context) ([]*model.User, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := s.col.Find(ctx, bson.M{"is_active": true}, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var users []*model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *userRepoImpl) UpdateUserInfo(ctx context.Context, id primitive.ObjectID, user *model.User) error {
	set := bson.M{"updated_at": time.Now()}
	if user.Name != "" {
		set["name"] = user.Name
	}
	if user.Department != "" {
		set["department"] = user.Department
	}
	if user.ResearchArea != "" {
		set["research_area"] = user.ResearchArea
	}
	if user.Bio != "" {
		set["bio"] = user.Bio
	}

	result, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// IncCounters 以原子 $inc 累加终身积分与计数器，返回更新后的文档。
// 用户不存在时返回 (nil, nil)。
func (s *userRepoImpl) IncCounters(ctx context.Context, id primitive.ObjectID, points, reviews, papers int) (*model.User, error) {
	inc := bson.M{}
	if points != 0 {
		inc["points"] = points
	}
	if reviews != 0 {
		inc["reviews_completed"] = reviews
	}
	if papers != 0 {
		inc["papers_submitted"] = papers
	}

	update := bson.M{
		"$inc": inc,
		"$set": bson.M{"updated_at": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user model.User
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *userRepoImpl) SetLevel(ctx context.Context, id primitive.ObjectID, level string) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"level": level, "updated_at": time.Now()},
	})
	return err
}

func (s *userRepoImpl) SetLastLogin(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"last_login": time.Now()},
	})
	return err
}
