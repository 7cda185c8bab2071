package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/simaogato/fundflow-backend/internal/domain"
	"github.com/simaogato/fundflow-backend/internal/usecase/balance"
	"github.com/simaogato/fundflow-backend/internal/usecase/statement"
	"github.com/simaogato/fundflow-backend/internal/usecase/transfer"
)

// Handler exposes the ledger operations over HTTP.
type Handler struct {
	Transfers  *transfer.Service
	Balances   *balance.Service
	Statements *statement.Service
}

// NewHandler creates a new Handler instance
func NewHandler(transfers *transfer.Service, balances *balance.Service, statements *statement.Service) *Handler {
	return &Handler{
		Transfers:  transfers,
		Balances:   balances,
		Statements: statements,
	}
}

// TransferRequest is the body of POST /transfer.
type TransferRequest struct {
	Username string `json:"username"`
	Amount   int64  `json:"amount"`
}

// Transfer handles POST /transfer
func (h *Handler) Transfer(c *fiber.Ctx) error {
	var req TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	caller := callerAccount(c)

	out, err := h.Transfers.Transfer(c.UserContext(), transfer.Input{
		SenderID:          caller.ID,
		RecipientUsername: req.Username,
		Amount:            req.Amount,
	})
	if err != nil {
		// Attempt-stage failures carry the id of the failed record.
		if out != nil && out.Record != nil {
			status := mapError(err)
			message := err.Error()
			if status == fiber.StatusInternalServerError {
				message = "transfer failed"
			}
			return c.Status(status).JSON(fiber.Map{
				"error":          message,
				"transaction_id": out.Record.ID,
			})
		}
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":        fmt.Sprintf("Transfer success! New balance: %d", out.SenderBalance),
		"balance":        out.SenderBalance,
		"transaction_id": out.Record.ID,
	})
}

// GetBalance handles GET /balance
func (h *Handler) GetBalance(c *fiber.Ctx) error {
	caller := callerAccount(c)
	return c.JSON(fiber.Map{"balance": caller.Balance})
}

// AdjustRequest is the body of PATCH /balance.
// Amount may be negative as long as the balance stays non-negative.
type AdjustRequest struct {
	Amount int64 `json:"amount"`
}

// AdjustBalance handles PATCH /balance
func (h *Handler) AdjustBalance(c *fiber.Ctx) error {
	var req AdjustRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	caller := callerAccount(c)

	newBalance, err := h.Balances.Adjust(c.UserContext(), caller.ID, req.Amount)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Balance was changed successfully",
		"balance": newBalance,
	})
}

// listTransactionsQuery holds the query parameters of GET /transactions.
type listTransactionsQuery struct {
	DateFrom string `query:"date_from"`
	DateTo   string `query:"date_to"`
	Status   string `query:"status"`
	Limit    int    `query:"limit"`
	Offset   int    `query:"offset"`
}

// ListTransactions handles GET /transactions
func (h *Handler) ListTransactions(c *fiber.Ctx) error {
	var q listTransactionsQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid query parameters"})
	}

	filter := domain.ListFilter{Limit: q.Limit, Offset: q.Offset}

	if q.DateFrom != "" {
		from, err := time.Parse(time.RFC3339, q.DateFrom)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid date_from: expected RFC 3339"})
		}
		filter.DateFrom = &from
	}

	if q.DateTo != "" {
		to, err := time.Parse(time.RFC3339, q.DateTo)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid date_to: expected RFC 3339"})
		}
		filter.DateTo = &to
	}

	if q.Status != "" {
		status := domain.TransactionStatus(q.Status)
		if status != domain.TransactionSucceeded && status != domain.TransactionFailed {
			return writeError(c, domain.ErrInvalidStatus)
		}
		filter.Status = &status
	}

	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		return writeError(c, domain.ErrInvalidDateRange)
	}

	caller := callerAccount(c)

	records, err := h.Statements.ListTransactions(c.UserContext(), caller.ID, filter)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{"transactions": toTransactionViews(records)})
}

// TransactionView is the wire representation of a transaction record.
type TransactionView struct {
	ID          string    `json:"id"`
	Amount      int64     `json:"amount"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
}

func toTransactionViews(records []*domain.TransactionRecord) []TransactionView {
	views := make([]TransactionView, 0, len(records))
	for _, record := range records {
		views = append(views, TransactionView{
			ID:          record.ID.String(),
			Amount:      record.Amount,
			Date:        record.Date,
			Status:      string(record.Status),
			SenderID:    record.SenderID.String(),
			RecipientID: record.RecipientID.String(),
		})
	}
	return views
}
