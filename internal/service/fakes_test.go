package service

import (
	"PeerChain/internal/model"
	"PeerChain/internal/pkg/consts"
	"PeerChain/internal/repository"
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 内存版仓储实现，行为对齐 Mongo 实现的语义：
// 唯一索引冲突返回 repository.ErrDuplicateKey，未命中返回 (nil, nil)。

func testOID(n byte) primitive.ObjectID {
	var id primitive.ObjectID
	id[11] = n
	return id
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*model.User{}}
}

func (s *fakeUserRepo) addUser(id primitive.ObjectID, name string) *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := &model.User{
		ID:       id,
		Name:     name,
		Email:    name + "@test.local",
		IsActive: true,
	}
	s.users[id] = user
	return user
}

func (s *fakeUserRepo) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateKey
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserRepo) GetUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *user
	return &cp, nil
}

func (s *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeUserRepo) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeUserRepo) ListAllUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		if u.IsActive {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID.Hex() < out[j].ID.Hex()
	})
	return out, nil
}

func (s *fakeUserRepo) UpdateUserInfo(ctx context.Context, id primitive.ObjectID, user *model.User) error {
	return nil
}

func (s *fakeUserRepo) IncCounters(ctx context.Context, id primitive.ObjectID, points, reviews, papers int) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	user.Points += points
	user.ReviewsCompleted += reviews
	user.PapersSubmitted += papers
	cp := *user
	return &cp, nil
}

func (s *fakeUserRepo) SetLevel(ctx context.Context, id primitive.ObjectID, level string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[id]; ok {
		user.Level = level
	}
	return nil
}

func (s *fakeUserRepo) SetLastLogin(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

type fakePaperRepo struct {
	mu     sync.Mutex
	papers map[primitive.ObjectID]*model.Paper
}

func newFakePaperRepo() *fakePaperRepo {
	return &fakePaperRepo{papers: map[primitive.ObjectID]*model.Paper{}}
}

func (s *fakePaperRepo) CreatePaper(ctx context.Context, paper *model.Paper) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if paper.ID.IsZero() {
		paper.ID = primitive.NewObjectID()
	}
	if paper.SubmissionDate.IsZero() {
		paper.SubmissionDate = time.Now()
	}
	s.papers[paper.ID] = paper
	return nil
}

func (s *fakePaperRepo) GetPaperByID(ctx context.Context, id primitive.ObjectID) (*model.Paper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	paper, ok := s.papers[id]
	if !ok {
		return nil, nil
	}
	cp := *paper
	return &cp, nil
}

func (s *fakePaperRepo) ListPapers(ctx context.Context, category, status string, page, limit int) ([]*model.Paper, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Paper, 0, len(s.papers))
	for _, p := range s.papers {
		if category != "" && p.Category != category {
			continue
		}
		if status != "" && p.Status != status {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (s *fakePaperRepo) CountByUserInRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, p := range s.papers {
		if p.SubmittedBy == userID && !p.SubmissionDate.Before(start) && !p.SubmissionDate.After(end) {
			count++
		}
	}
	return count, nil
}

func (s *fakePaperRepo) AttachReview(ctx context.Context, paperID, reviewID primitive.ObjectID, averageRating float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	paper, ok := s.papers[paperID]
	if !ok {
		return nil
	}
	paper.Reviews = append(paper.Reviews, reviewID)
	paper.TotalReviews = len(paper.Reviews)
	paper.AverageRating = averageRating
	return nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews []*model.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{}
}

func (s *fakeReviewRepo) CreateReview(ctx context.Context, review *model.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reviews {
		if r.Paper == review.Paper && r.Reviewer == review.Reviewer {
			return repository.ErrDuplicateKey
		}
	}
	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	s.reviews = append(s.reviews, review)
	return nil
}

func (s *fakeReviewRepo) GetReviewByID(ctx context.Context, id primitive.ObjectID) (*model.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reviews {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeReviewRepo) FindByPaper(ctx context.Context, paperID primitive.ObjectID) ([]*model.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Review
	for _, r := range s.reviews {
		if r.Paper == paperID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeReviewRepo) FindByReviewerInRange(ctx context.Context, reviewer primitive.ObjectID, start, end time.Time) ([]*model.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Review
	for _, r := range s.reviews {
		if r.Reviewer == reviewer && !r.CreatedAt.Before(start) && !r.CreatedAt.After(end) {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeReviewRepo) FindAcceptedInRange(ctx context.Context, reviewer primitive.ObjectID, start, end time.Time) ([]*model.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Review
	for _, r := range s.reviews {
		if r.Reviewer == reviewer && r.IsAccepted &&
			!r.AcceptedAt.Before(start) && !r.AcceptedAt.After(end) {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeReviewRepo) MarkAccepted(ctx context.Context, id primitive.ObjectID, pointsAwarded int) (*model.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reviews {
		if r.ID == id && !r.IsAccepted {
			r.IsAccepted = true
			r.AcceptedAt = time.Now()
			r.PointsAwarded = pointsAwarded
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeLeaderboardRepo struct {
	mu     sync.Mutex
	boards map[[2]int]*model.Leaderboard
}

func newFakeLeaderboardRepo() *fakeLeaderboardRepo {
	return &fakeLeaderboardRepo{boards: map[[2]int]*model.Leaderboard{}}
}

func (s *fakeLeaderboardRepo) GetByPeriod(ctx context.Context, year, month int) (*model.Leaderboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lb, ok := s.boards[[2]int{year, month}]
	if !ok {
		return nil, nil
	}
	cp := *lb
	return &cp, nil
}

func (s *fakeLeaderboardRepo) InsertPending(ctx context.Context, lb *model.Leaderboard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]int{lb.Year, lb.Month}
	if _, ok := s.boards[key]; ok {
		return repository.ErrDuplicateKey
	}
	if lb.ID.IsZero() {
		lb.ID = primitive.NewObjectID()
	}
	lb.Status = consts.LeaderboardStatusPending
	lb.CreatedAt = time.Now()
	cp := *lb
	s.boards[key] = &cp
	return nil
}

func (s *fakeLeaderboardRepo) SetTopPerformer(ctx context.Context, id primitive.ObjectID, tp *model.TopPerformer, rankings []model.LeaderboardEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, lb := range s.boards {
		if lb.ID == id {
			lb.TopPerformer = tp
			lb.Rankings = rankings
			return nil
		}
	}
	return nil
}

func (s *fakeLeaderboardRepo) MarkFinal(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, lb := range s.boards {
		if lb.ID == id {
			lb.Status = consts.LeaderboardStatusFinal
			return nil
		}
	}
	return nil
}

func (s *fakeLeaderboardRepo) FindPending(ctx context.Context) ([]*model.Leaderboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Leaderboard
	for _, lb := range s.boards {
		if lb.Status == consts.LeaderboardStatusPending {
			cp := *lb
			out = append(out, &cp)
		}
	}
	return out, nil
}

type ledgerKey struct {
	user primitive.ObjectID
	typ  string
	ref  string
}

type fakePointLedgerRepo struct {
	mu     sync.Mutex
	events map[ledgerKey]*model.PointEvent
}

func newFakePointLedgerRepo() *fakePointLedgerRepo {
	return &fakePointLedgerRepo{events: map[ledgerKey]*model.PointEvent{}}
}

func (s *fakePointLedgerRepo) Append(ctx context.Context, event *model.PointEvent) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := ledgerKey{user: event.UserID, typ: event.Type, ref: event.Ref}
	if _, ok := s.events[key]; ok {
		return false, nil
	}
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	event.CreatedAt = time.Now()
	cp := *event
	s.events[key] = &cp
	return true, nil
}

func (s *fakePointLedgerRepo) FindByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]*model.PointEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.PointEvent
	for _, e := range s.events {
		if e.UserID == userID {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeTxRunner 模拟事务语义：fn 报错时回滚用户与流水两个仓储的状态
type fakeTxRunner struct {
	users  *fakeUserRepo
	ledger *fakePointLedgerRepo
}

func newFakeTxRunner(users *fakeUserRepo, ledger *fakePointLedgerRepo) *fakeTxRunner {
	return &fakeTxRunner{users: users, ledger: ledger}
}

func (s *fakeTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	userSnap := s.users.snapshot()
	ledgerSnap := s.ledger.snapshot()
	if err := fn(ctx); err != nil {
		s.users.restore(userSnap)
		s.ledger.restore(ledgerSnap)
		return err
	}
	return nil
}

func (s *fakeUserRepo) snapshot() map[primitive.ObjectID]*model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := make(map[primitive.ObjectID]*model.User, len(s.users))
	for id, u := range s.users {
		cp := *u
		snap[id] = &cp
	}
	return snap
}

func (s *fakeUserRepo) restore(snap map[primitive.ObjectID]*model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap
}

func (s *fakePointLedgerRepo) snapshot() map[ledgerKey]*model.PointEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := make(map[ledgerKey]*model.PointEvent, len(s.events))
	for k, e := range s.events {
		cp := *e
		snap[k] = &cp
	}
	return snap
}

func (s *fakePointLedgerRepo) restore(snap map[ledgerKey]*model.PointEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = snap
}
