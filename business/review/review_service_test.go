package review

import (
	"context"
	"errors"
	"testing"

	"botmart/domain"

	"github.com/go-playground/validator/v10"
)

type fakeReviewRepo struct {
	reviews   []domain.Review
	nextID    uint
	lookupErr error
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	f.nextID++
	review.ID = f.nextID
	f.reviews = append(f.reviews, *review)
	return nil
}

func (f *fakeReviewRepo) FindByBot(ctx context.Context, botID uint64) ([]domain.Review, error) {
	out := make([]domain.Review, 0)
	for _, r := range f.reviews {
		if r.BotID == botID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) FindByUser(ctx context.Context, userID uint) ([]domain.Review, error) {
	out := make([]domain.Review, 0)
	for _, r := range f.reviews {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) FindByUserAndBot(ctx context.Context, userID uint, botID uint64) (domain.Review, error) {
	if f.lookupErr != nil {
		return domain.Review{}, f.lookupErr
	}
	for _, r := range f.reviews {
		if r.UserID == userID && r.BotID == botID {
			return r, nil
		}
	}
	return domain.Review{}, errors.New("review not found")
}

type fakeBotRepo struct {
	bots map[uint64]*domain.Bot
}

func (f *fakeBotRepo) FindByID(ctx context.Context, id uint64) (domain.Bot, error) {
	if b, ok := f.bots[id]; ok {
		return *b, nil
	}
	return domain.Bot{}, errors.New("bot not found")
}

func (f *fakeBotRepo) UpdateRating(ctx context.Context, id uint64, averageRating float64, ratingCount int) error {
	b, ok := f.bots[id]
	if !ok {
		return errors.New("bot not found")
	}
	b.AverageRating = averageRating
	b.RatingCount = ratingCount
	return nil
}

type fakeTxRepo struct {
	owned map[uint]map[uint64]bool
}

func (f *fakeTxRepo) HasPurchased(ctx context.Context, userID uint, botID uint64) (bool, error) {
	return f.owned[userID][botID], nil
}

func newFixture() (*fakeReviewRepo, *fakeBotRepo, *fakeTxRepo, *reviewService) {
	reviews := &fakeReviewRepo{}
	bots := &fakeBotRepo{bots: map[uint64]*domain.Bot{
		1: {ID: 1, AverageRating: 4.0, RatingCount: 2},
	}}
	txs := &fakeTxRepo{owned: map[uint]map[uint64]bool{
		1: {1: true},
	}}
	svc := NewReviewService(reviews, bots, txs, validator.New())
	return reviews, bots, txs, svc
}

func TestCreateReviewRecomputesAverage(t *testing.T) {
	_, bots, _, svc := newFixture()

	// Existing average 4.0 over 2 ratings; a 5 makes (8+5)/3.
	created, err := svc.CreateReview(context.Background(), &domain.Review{
		UserID: 1, BotID: 1, Rating: 5, Comment: "great",
	})
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if created.ID == 0 {
		t.Error("created review has no id")
	}

	bot := bots.bots[1]
	if bot.RatingCount != 3 {
		t.Errorf("RatingCount = %d, want 3", bot.RatingCount)
	}
	want := (4.0*2 + 5) / 3
	if bot.AverageRating != want {
		t.Errorf("AverageRating = %v, want %v", bot.AverageRating, want)
	}
}

func TestCreateReviewRequiresPurchase(t *testing.T) {
	_, _, _, svc := newFixture()

	_, err := svc.CreateReview(context.Background(), &domain.Review{
		UserID: 2, BotID: 1, Rating: 4,
	})
	if err == nil || err.Error() != "only buyers can review a bot" {
		t.Fatalf("err = %v, want purchase guard", err)
	}
}

func TestCreateReviewRejectsDuplicates(t *testing.T) {
	_, _, _, svc := newFixture()

	if _, err := svc.CreateReview(context.Background(), &domain.Review{UserID: 1, BotID: 1, Rating: 4}); err != nil {
		t.Fatalf("first review: %v", err)
	}
	_, err := svc.CreateReview(context.Background(), &domain.Review{UserID: 1, BotID: 1, Rating: 5})
	if err == nil || err.Error() != "bot already reviewed by this user" {
		t.Fatalf("err = %v, want duplicate guard", err)
	}
}

func TestCreateReviewSurfacesLookupError(t *testing.T) {
	reviews, _, _, svc := newFixture()
	reviews.lookupErr = errors.New("connection refused")

	_, err := svc.CreateReview(context.Background(), &domain.Review{UserID: 1, BotID: 1, Rating: 4})
	if err == nil || err.Error() != "connection refused" {
		t.Fatalf("err = %v, want storage error surfaced", err)
	}
	if len(reviews.reviews) != 0 {
		t.Errorf("review created despite failed duplicate check")
	}
}

func TestCreateReviewValidatesRating(t *testing.T) {
	_, _, _, svc := newFixture()

	for _, rating := range []int{0, 6, -1} {
		if _, err := svc.CreateReview(context.Background(), &domain.Review{UserID: 1, BotID: 1, Rating: rating}); err == nil {
			t.Errorf("rating %d accepted", rating)
		}
	}
}

func TestCreateReviewUnknownBot(t *testing.T) {
	_, _, _, svc := newFixture()

	_, err := svc.CreateReview(context.Background(), &domain.Review{UserID: 1, BotID: 99, Rating: 4})
	if err == nil || err.Error() != "bot not found" {
		t.Fatalf("err = %v, want bot not found", err)
	}
}
