package treasury

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aruizdev/tablero/internal/domain/models"
	"github.com/aruizdev/tablero/pkg/clients/bank"
)

// syncWindowDays is how far back each sync pulls booked transactions.
const syncWindowDays = 30

// Notifier receives treasury notifications for the notification center.
type Notifier interface {
	Publish(notification models.Notification)
}

// Service syncs the banking aggregator and keeps the latest treasury summary.
type Service struct {
	client   bank.Client
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time

	mu     sync.Mutex
	latest *models.TreasurySummary
}

// NewService wires a treasury service instance.
func NewService(client bank.Client, notifier Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:   client,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Summary returns the summary of the most recent successful sync.
func (s *Service) Summary() (models.TreasurySummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest == nil {
		return models.TreasurySummary{}, false
	}
	return *s.latest, true
}

// Sync pulls accounts and their recent transactions from the aggregator and
// reduces them into a fresh treasury summary.
func (s *Service) Sync(ctx context.Context) (models.TreasurySummary, error) {
	accounts, err := s.client.ListAccounts(ctx)
	if err != nil {
		return models.TreasurySummary{}, fmt.Errorf("sync accounts: %w", err)
	}

	to := s.now().UTC()
	from := to.AddDate(0, 0, -syncWindowDays)

	transactions := make(map[string][]models.BankTransaction, len(accounts))
	for _, account := range accounts {
		movements, err := s.client.ListTransactions(ctx, account.ID, from, to)
		if err != nil {
			return models.TreasurySummary{}, fmt.Errorf("sync transactions for %s: %w", account.ID, err)
		}
		transactions[account.ID] = movements
	}

	summary := Summarize(accounts, transactions)
	summary.SyncedAt = to

	s.mu.Lock()
	s.latest = &summary
	s.mu.Unlock()

	s.logger.Info("treasury synced",
		zap.Int("accounts", len(accounts)),
		zap.Int("transactions", summary.Transactions),
		zap.Float64("net", summary.Net))

	if s.notifier != nil && summary.Net < 0 {
		s.notifier.Publish(models.Notification{
			Kind:      "treasury_negative_net",
			Severity:  models.SeverityWarning,
			Title:     "Flujo de caja negativo",
			Message:   fmt.Sprintf("Salidas superan entradas en %.2f en los últimos %d días.", math.Abs(summary.Net), syncWindowDays),
			CreatedAt: to,
		})
	}

	return summary, nil
}

// Summarize reduces accounts and their movements into the treasury summary.
// Pure function, kept separate from the sync plumbing for testability.
func Summarize(accounts []models.BankAccount, transactions map[string][]models.BankTransaction) models.TreasurySummary {
	summary := models.TreasurySummary{
		Accounts: make([]models.AccountBalance, 0, len(accounts)),
	}

	for _, account := range accounts {
		balance := models.AccountBalance{Account: account}

		for _, tx := range transactions[account.ID] {
			if tx.Amount >= 0 {
				balance.Inflow += tx.Amount
			} else {
				balance.Outflow += -tx.Amount
			}
			summary.Transactions++
		}

		summary.TotalBalance += account.Balance
		summary.Inflow += balance.Inflow
		summary.Outflow += balance.Outflow
		summary.Accounts = append(summary.Accounts, balance)
	}

	summary.Net = summary.Inflow - summary.Outflow
	return summary
}
