package purchase

import (
	"context"
	"errors"
	"fmt"

	"botmart/domain"
	"botmart/pkg/logger"

	"github.com/google/uuid"
)

// TransactionRepository contract interface
type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	FindByID(ctx context.Context, id uint) (domain.Transaction, error)
	FindCompletedByUser(ctx context.Context, userID uint) ([]domain.Transaction, error)
	HasPurchased(ctx context.Context, userID uint, botID uint64) (bool, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

// BotRepository contract interface
type BotRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Bot, error)
	IncrementDownloadCount(ctx context.Context, id uint64) error
}

// UserRepository contract interface
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	UpdateWallet(ctx context.Context, id uint, delta float64) error
}

type purchaseService struct {
	transactionRepo TransactionRepository
	botRepo         BotRepository
	userRepo        UserRepository
}

func NewPurchaseService(
	transactionRepo TransactionRepository,
	botRepo BotRepository,
	userRepo UserRepository,
) *purchaseService {
	return &purchaseService{
		transactionRepo: transactionRepo,
		botRepo:         botRepo,
		userRepo:        userRepo,
	}
}

// PurchaseBot debits the buyer's wallet and records a completed transaction.
func (s *purchaseService) PurchaseBot(ctx context.Context, userID uint, botID uint64) (domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return domain.Transaction{}, fmt.Errorf("context error: %w", err)
	}

	bot, err := s.botRepo.FindByID(ctx, botID)
	if err != nil {
		logger.Error("Bot not found for purchase", err)
		return domain.Transaction{}, errors.New("bot not found")
	}

	if bot.Status != domain.BotStatusApproved {
		return domain.Transaction{}, errors.New("bot is not available for purchase")
	}

	if bot.DeveloperID == userID {
		return domain.Transaction{}, errors.New("developers cannot buy their own bot")
	}

	alreadyOwned, err := s.transactionRepo.HasPurchased(ctx, userID, botID)
	if err != nil {
		logger.Error("Failed to check purchase history", err)
		return domain.Transaction{}, err
	}
	if alreadyOwned {
		return domain.Transaction{}, errors.New("bot already purchased")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		logger.Error("User not found for purchase", err)
		return domain.Transaction{}, err
	}

	if user.Wallet < bot.Price {
		return domain.Transaction{}, errors.New("insufficient wallet balance")
	}

	tx := domain.Transaction{
		Reference: uuid.NewString(),
		UserID:    userID,
		BotID:     botID,
		Amount:    bot.Price,
		Status:    domain.TransactionPending,
	}
	if err := s.transactionRepo.Create(ctx, &tx); err != nil {
		logger.Error("Failed to create transaction", err)
		return domain.Transaction{}, err
	}

	if err := s.userRepo.UpdateWallet(ctx, userID, -bot.Price); err != nil {
		logger.Error("Failed to debit wallet", err)
		if updErr := s.transactionRepo.UpdateStatus(ctx, tx.ID, domain.TransactionFailed); updErr != nil {
			logger.Error("Failed to mark transaction failed", updErr)
		}
		return domain.Transaction{}, errors.New("failed to debit wallet")
	}

	if err := s.transactionRepo.UpdateStatus(ctx, tx.ID, domain.TransactionCompleted); err != nil {
		logger.Error("Failed to complete transaction", err)
		return domain.Transaction{}, err
	}
	tx.Status = domain.TransactionCompleted

	if err := s.botRepo.IncrementDownloadCount(ctx, botID); err != nil {
		logger.Warn("Failed to increment download count", err)
	}

	return tx, nil
}

func (s *purchaseService) GetPurchaseByID(ctx context.Context, userID, id uint, isAdmin bool) (domain.Transaction, error) {
	tx, err := s.transactionRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Transaction not found", err)
		return domain.Transaction{}, err
	}

	if !isAdmin && tx.UserID != userID {
		return domain.Transaction{}, errors.New("transaction does not belong to this user")
	}

	return tx, nil
}

func (s *purchaseService) GetPurchasesByUser(ctx context.Context, userID uint) ([]domain.Transaction, error) {
	txs, err := s.transactionRepo.FindCompletedByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to get purchases by user", err)
		return nil, err
	}

	return txs, nil
}
