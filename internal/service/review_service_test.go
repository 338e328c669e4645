package service

import (
	"PeerChain/internal/api/dto"
	"PeerChain/internal/model"
	"context"
	"errors"
	"testing"
	"time"
)

type reviewFixture struct {
	users   *fakeUserRepo
	papers  *fakePaperRepo
	reviews *fakeReviewRepo
	ledger  *fakePointLedgerRepo
	svc     ReviewService
	author  *model.User
	critic  *model.User
	paper   *model.Paper
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	users := newFakeUserRepo()
	papers := newFakePaperRepo()
	reviews := newFakeReviewRepo()
	ledger := newFakePointLedgerRepo()

	author := users.addUser(testOID(1), "author")
	critic := users.addUser(testOID(2), "critic")

	paper := &model.Paper{
		Title:          "Consensus in Partially Synchronous Networks",
		SubmittedBy:    author.ID,
		SubmissionDate: time.Now(),
	}
	if err := papers.CreatePaper(context.Background(), paper); err != nil {
		t.Fatalf("create paper: %v", err)
	}

	return &reviewFixture{
		users:   users,
		papers:  papers,
		reviews: reviews,
		ledger:  ledger,
		svc:     NewReviewService(reviews, papers, users, ledger, newFakeTxRunner(users, ledger)),
		author:  author,
		critic:  critic,
		paper:   paper,
	}
}

func (f *reviewFixture) submitReview(t *testing.T, rating int) *dto.ReviewDTO {
	t.Helper()
	reviewDTO, err := f.svc.SubmitReview(context.Background(), f.critic.ID.Hex(), f.paper.ID.Hex(), &dto.CreateReviewDTO{
		Rating:  rating,
		Comment: "solid methodology",
	})
	if err != nil {
		t.Fatalf("submit review: %v", err)
	}
	return reviewDTO
}

func (f *reviewFixture) userPoints(t *testing.T, id string) int {
	t.Helper()
	for _, u := range f.users.users {
		if u.ID.Hex() == id {
			return u.Points
		}
	}
	t.Fatalf("user %s not found", id)
	return 0
}

func TestSubmitReviewCreditsPoints(t *testing.T) {
	f := newReviewFixture(t)

	reviewDTO := f.submitReview(t, 4)

	if got := f.userPoints(t, f.critic.ID.Hex()); got != 40 {
		t.Errorf("reviewer points = %d, want 40", got)
	}
	if reviewDTO.Rating != 4 {
		t.Errorf("review rating = %d, want 4", reviewDTO.Rating)
	}

	paper, _ := f.papers.GetPaperByID(context.Background(), f.paper.ID)
	if paper.TotalReviews != 1 {
		t.Errorf("paper total reviews = %d, want 1", paper.TotalReviews)
	}
	if paper.AverageRating != 4 {
		t.Errorf("paper average rating = %v, want 4", paper.AverageRating)
	}

	critic, _ := f.users.GetUserByID(context.Background(), f.critic.ID)
	if critic.ReviewsCompleted != 1 {
		t.Errorf("reviews completed = %d, want 1", critic.ReviewsCompleted)
	}
}

func TestSubmitReviewOwnPaper(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.svc.SubmitReview(context.Background(), f.author.ID.Hex(), f.paper.ID.Hex(), &dto.CreateReviewDTO{Rating: 5})
	if !errors.Is(err, ErrReviewOwnPaper) {
		t.Fatalf("err = %v, want ErrReviewOwnPaper", err)
	}
	if got := f.userPoints(t, f.author.ID.Hex()); got != 0 {
		t.Errorf("author points = %d, want 0", got)
	}
}

func TestSubmitReviewDuplicate(t *testing.T) {
	f := newReviewFixture(t)
	f.submitReview(t, 3)

	_, err := f.svc.SubmitReview(context.Background(), f.critic.ID.Hex(), f.paper.ID.Hex(), &dto.CreateReviewDTO{Rating: 5})
	if !errors.Is(err, ErrReviewExist) {
		t.Fatalf("err = %v, want ErrReviewExist", err)
	}
	if got := f.userPoints(t, f.critic.ID.Hex()); got != 30 {
		t.Errorf("reviewer points = %d, want 30", got)
	}
}

func TestSubmitReviewPaperNotFound(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.svc.SubmitReview(context.Background(), f.critic.ID.Hex(), testOID(99).Hex(), &dto.CreateReviewDTO{Rating: 3})
	if !errors.Is(err, ErrPaperNotFound) {
		t.Fatalf("err = %v, want ErrPaperNotFound", err)
	}
}

func TestAcceptReviewCreditsPoints(t *testing.T) {
	f := newReviewFixture(t)
	reviewDTO := f.submitReview(t, 4)

	accepted, err := f.svc.AcceptReview(context.Background(), f.author.ID.Hex(), f.paper.ID.Hex(), reviewDTO.ReviewID)
	if err != nil {
		t.Fatalf("accept review: %v", err)
	}
	if !accepted.IsAccepted {
		t.Error("review not marked accepted")
	}
	if accepted.PointsAwarded != 60 {
		t.Errorf("points awarded = %d, want 60", accepted.PointsAwarded)
	}

	// 提交 40 + 采纳 60
	if got := f.userPoints(t, f.critic.ID.Hex()); got != 100 {
		t.Errorf("reviewer points = %d, want 100", got)
	}
}

func TestAcceptReviewNotOwner(t *testing.T) {
	f := newReviewFixture(t)
	reviewDTO := f.submitReview(t, 4)

	_, err := f.svc.AcceptReview(context.Background(), f.critic.ID.Hex(), f.paper.ID.Hex(), reviewDTO.ReviewID)
	if !errors.Is(err, ErrNotPaperOwner) {
		t.Fatalf("err = %v, want ErrNotPaperOwner", err)
	}
}

func TestAcceptReviewTwice(t *testing.T) {
	f := newReviewFixture(t)
	reviewDTO := f.submitReview(t, 5)

	if _, err := f.svc.AcceptReview(context.Background(), f.author.ID.Hex(), f.paper.ID.Hex(), reviewDTO.ReviewID); err != nil {
		t.Fatalf("first accept: %v", err)
	}
	pointsAfterFirst := f.userPoints(t, f.critic.ID.Hex())

	_, err := f.svc.AcceptReview(context.Background(), f.author.ID.Hex(), f.paper.ID.Hex(), reviewDTO.ReviewID)
	if !errors.Is(err, ErrReviewAlreadyAccepted) {
		t.Fatalf("err = %v, want ErrReviewAlreadyAccepted", err)
	}
	if got := f.userPoints(t, f.critic.ID.Hex()); got != pointsAfterFirst {
		t.Errorf("reviewer points changed on repeat accept: %d -> %d", pointsAfterFirst, got)
	}
}
