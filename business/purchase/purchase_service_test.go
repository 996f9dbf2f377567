package purchase

import (
	"context"
	"errors"
	"testing"

	"botmart/domain"
)

type fakeTxRepo struct {
	txs    []domain.Transaction
	nextID uint
}

func (f *fakeTxRepo) Create(ctx context.Context, tx *domain.Transaction) error {
	f.nextID++
	tx.ID = f.nextID
	f.txs = append(f.txs, *tx)
	return nil
}

func (f *fakeTxRepo) FindByID(ctx context.Context, id uint) (domain.Transaction, error) {
	for _, tx := range f.txs {
		if tx.ID == id {
			return tx, nil
		}
	}
	return domain.Transaction{}, errors.New("transaction not found")
}

func (f *fakeTxRepo) FindCompletedByUser(ctx context.Context, userID uint) ([]domain.Transaction, error) {
	out := make([]domain.Transaction, 0)
	for _, tx := range f.txs {
		if tx.UserID == userID && tx.Status == domain.TransactionCompleted {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (f *fakeTxRepo) HasPurchased(ctx context.Context, userID uint, botID uint64) (bool, error) {
	for _, tx := range f.txs {
		if tx.UserID == userID && tx.BotID == botID && tx.Status == domain.TransactionCompleted {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTxRepo) UpdateStatus(ctx context.Context, id uint, status string) error {
	for i := range f.txs {
		if f.txs[i].ID == id {
			f.txs[i].Status = status
			return nil
		}
	}
	return errors.New("transaction not found")
}

type fakeBotRepo struct {
	bots      map[uint64]*domain.Bot
	downloads map[uint64]int
}

func (f *fakeBotRepo) FindByID(ctx context.Context, id uint64) (domain.Bot, error) {
	if b, ok := f.bots[id]; ok {
		return *b, nil
	}
	return domain.Bot{}, errors.New("bot not found")
}

func (f *fakeBotRepo) IncrementDownloadCount(ctx context.Context, id uint64) error {
	f.downloads[id]++
	return nil
}

type fakeUserRepo struct {
	users map[uint]*domain.User
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint) (domain.User, error) {
	if u, ok := f.users[id]; ok {
		return *u, nil
	}
	return domain.User{}, errors.New("user not found")
}

func (f *fakeUserRepo) UpdateWallet(ctx context.Context, id uint, delta float64) error {
	u, ok := f.users[id]
	if !ok {
		return errors.New("user not found")
	}
	u.Wallet += delta
	return nil
}

func newFixture() (*fakeTxRepo, *fakeBotRepo, *fakeUserRepo, *purchaseService) {
	txs := &fakeTxRepo{}
	bots := &fakeBotRepo{
		bots: map[uint64]*domain.Bot{
			1: {ID: 1, DeveloperID: 9, Price: 30, Status: domain.BotStatusApproved},
			2: {ID: 2, DeveloperID: 9, Price: 30, Status: domain.BotStatusPending},
		},
		downloads: make(map[uint64]int),
	}
	users := &fakeUserRepo{users: map[uint]*domain.User{
		1: {ID: 1, Wallet: 100},
		2: {ID: 2, Wallet: 5},
		9: {ID: 9, Wallet: 0},
	}}
	svc := NewPurchaseService(txs, bots, users)
	return txs, bots, users, svc
}

func TestPurchaseBotDebitsWallet(t *testing.T) {
	_, bots, users, svc := newFixture()

	tx, err := svc.PurchaseBot(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("PurchaseBot: %v", err)
	}

	if tx.Status != domain.TransactionCompleted {
		t.Errorf("status = %s, want %s", tx.Status, domain.TransactionCompleted)
	}
	if tx.Reference == "" {
		t.Error("transaction has no reference")
	}
	if tx.Amount != 30 {
		t.Errorf("amount = %v, want 30", tx.Amount)
	}
	if got := users.users[1].Wallet; got != 70 {
		t.Errorf("wallet = %v, want 70", got)
	}
	if bots.downloads[1] != 1 {
		t.Errorf("download count = %d, want 1", bots.downloads[1])
	}
}

func TestPurchaseBotInsufficientBalance(t *testing.T) {
	_, _, users, svc := newFixture()

	_, err := svc.PurchaseBot(context.Background(), 2, 1)
	if err == nil || err.Error() != "insufficient wallet balance" {
		t.Fatalf("err = %v, want balance guard", err)
	}
	if got := users.users[2].Wallet; got != 5 {
		t.Errorf("wallet changed on failed purchase: %v", got)
	}
}

func TestPurchaseBotRejectsDuplicate(t *testing.T) {
	_, _, _, svc := newFixture()

	if _, err := svc.PurchaseBot(context.Background(), 1, 1); err != nil {
		t.Fatalf("first purchase: %v", err)
	}
	_, err := svc.PurchaseBot(context.Background(), 1, 1)
	if err == nil || err.Error() != "bot already purchased" {
		t.Fatalf("err = %v, want duplicate guard", err)
	}
}

func TestPurchaseBotUnapprovedListing(t *testing.T) {
	_, _, _, svc := newFixture()

	_, err := svc.PurchaseBot(context.Background(), 1, 2)
	if err == nil || err.Error() != "bot is not available for purchase" {
		t.Fatalf("err = %v, want availability guard", err)
	}
}

func TestPurchaseBotOwnListing(t *testing.T) {
	_, _, _, svc := newFixture()

	_, err := svc.PurchaseBot(context.Background(), 9, 1)
	if err == nil || err.Error() != "developers cannot buy their own bot" {
		t.Fatalf("err = %v, want self-purchase guard", err)
	}
}

func TestGetPurchaseByIDOwnership(t *testing.T) {
	_, _, _, svc := newFixture()

	tx, err := svc.PurchaseBot(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("PurchaseBot: %v", err)
	}

	if _, err := svc.GetPurchaseByID(context.Background(), 1, tx.ID, false); err != nil {
		t.Errorf("owner lookup failed: %v", err)
	}
	if _, err := svc.GetPurchaseByID(context.Background(), 2, tx.ID, false); err == nil {
		t.Error("foreign user read another user's transaction")
	}
	if _, err := svc.GetPurchaseByID(context.Background(), 2, tx.ID, true); err != nil {
		t.Errorf("admin lookup failed: %v", err)
	}
}
