package bank

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/aruizdev/tablero/internal/config"
	"github.com/aruizdev/tablero/internal/domain/models"
)

// Client exposes the banking-data aggregator operations used by the
// treasury module.
type Client interface {
	ListAccounts(ctx context.Context) ([]models.BankAccount, error)
	ListTransactions(ctx context.Context, accountID string, from, to time.Time) ([]models.BankTransaction, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a banking aggregator client from configuration.
func NewClient(cfg config.BankConfig) *APIClient {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	restyClient := resty.New().
		SetBaseURL(base).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.AccessToken)).
		SetHeader("Accept", "application/json").
		SetTimeout(20 * time.Second)

	return &APIClient{httpClient: restyClient}
}

type accountsResponse struct {
	Accounts []accountPayload `json:"accounts"`
}

type accountPayload struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	IBAN     string  `json:"iban"`
	Currency string  `json:"currency"`
	Balance  float64 `json:"balance"`
}

type transactionsResponse struct {
	Transactions []transactionPayload `json:"transactions"`
}

type transactionPayload struct {
	ID          string  `json:"id"`
	BookingDate string  `json:"booking_date"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// apiError represents an aggregator error payload.
type apiError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ListAccounts returns the linked accounts with their reported balances.
func (c *APIClient) ListAccounts(ctx context.Context) ([]models.BankAccount, error) {
	result := new(accountsResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		SetError(apiErr).
		Get("/accounts")
	if err != nil {
		return nil, fmt.Errorf("list bank accounts: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("bank api error: code=%d, message=%s", resp.StatusCode(), apiErr.Message)
	}

	accounts := make([]models.BankAccount, 0, len(result.Accounts))
	for _, payload := range result.Accounts {
		accounts = append(accounts, models.BankAccount{
			ID:       payload.ID,
			Name:     payload.Name,
			IBAN:     payload.IBAN,
			Currency: payload.Currency,
			Balance:  payload.Balance,
		})
	}
	return accounts, nil
}

// ListTransactions returns the booked movements of one account for a window.
func (c *APIClient) ListTransactions(ctx context.Context, accountID string, from, to time.Time) ([]models.BankTransaction, error) {
	result := new(transactionsResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("date_from", from.Format(models.DateLayout)).
		SetQueryParam("date_to", to.Format(models.DateLayout)).
		SetResult(result).
		SetError(apiErr).
		Get(fmt.Sprintf("/accounts/%s/transactions", accountID))
	if err != nil {
		return nil, fmt.Errorf("list transactions for %s: %w", accountID, err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("bank api error: code=%d, message=%s", resp.StatusCode(), apiErr.Message)
	}

	transactions := make([]models.BankTransaction, 0, len(result.Transactions))
	for _, payload := range result.Transactions {
		booked, err := time.ParseInLocation(models.DateLayout, payload.BookingDate, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("malformed booking date %q: %w", payload.BookingDate, err)
		}
		transactions = append(transactions, models.BankTransaction{
			ID:          payload.ID,
			AccountID:   accountID,
			BookingDate: booked,
			Amount:      payload.Amount,
			Description: payload.Description,
		})
	}
	return transactions, nil
}
