package finance

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=storage_mock.go -package=finance

// Storage persists the root aggregate as a whole. Load returns
// (nil, nil) when no state has been persisted yet.
type Storage interface {
	Load(ctx context.Context) (*Data, error)
	Save(ctx context.Context, data *Data) error
}

// Service owns the in-memory aggregate and keeps it in sync with the
// storage backend. Every mutation rewrites the full aggregate; write
// failures are logged, never surfaced, so the in-memory state is
// always the source of truth for the running process.
type Service struct {
	storage Storage
	data    *Data
}

// NewService loads the aggregate from storage. Missing or unreadable
// state falls back to an empty transaction list with the default
// categories.
func NewService(ctx context.Context, storage Storage) *Service {
	data, err := storage.Load(ctx)
	if err != nil {
		slog.Warn("could not load finance data, starting with defaults", "error", err)

		data = nil
	}

	if data == nil {
		data = DefaultData()
	}

	if data.Transactions == nil {
		data.Transactions = []Transaction{}
	}

	if data.Categories == nil {
		data.Categories = []Category{}
	}

	return &Service{storage: storage, data: data}
}

type CreateTransactionParams struct {
	Amount             float64
	Type               Type
	CategoryID         string
	Note               string
	Date               time.Time
	IsRecurring        bool
	RecurringFrequency Frequency
	NextDueDate        *time.Time
}

// TransactionUpdate holds the fields to merge into an existing
// transaction. Nil fields are left untouched.
type TransactionUpdate struct {
	Amount             *float64
	Type               *Type
	CategoryID         *string
	Note               *string
	Date               *time.Time
	IsRecurring        *bool
	RecurringFrequency *Frequency
	NextDueDate        *time.Time
}

type CreateCategoryParams struct {
	Name   string
	Color  string
	Icon   string
	Type   Type
	Budget *float64
}

// CategoryUpdate holds the fields to merge into an existing category.
type CategoryUpdate struct {
	Name   *string
	Color  *string
	Icon   *string
	Type   *Type
	Budget *float64
}

// AddTransaction assigns a fresh id, prepends the transaction and
// persists the aggregate.
func (s *Service) AddTransaction(ctx context.Context, params CreateTransactionParams) Transaction {
	tx := newTransaction(params)

	s.data.Transactions = append([]Transaction{tx}, s.data.Transactions...)
	s.persist(ctx)

	return tx
}

// AddTransactions prepends a batch of transactions (newest first, in
// input order) with a single persist. Used by bulk imports.
func (s *Service) AddTransactions(ctx context.Context, params []CreateTransactionParams) []Transaction {
	if len(params) == 0 {
		return nil
	}

	txs := make([]Transaction, len(params))
	for i, p := range params {
		txs[i] = newTransaction(p)
	}

	s.data.Transactions = append(append([]Transaction{}, txs...), s.data.Transactions...)
	s.persist(ctx)

	return txs
}

// UpdateTransaction merges the given fields into the transaction with
// the given id. Unknown ids are a silent no-op.
func (s *Service) UpdateTransaction(ctx context.Context, id string, update TransactionUpdate) {
	for i := range s.data.Transactions {
		if s.data.Transactions[i].ID != id {
			continue
		}

		applyTransactionUpdate(&s.data.Transactions[i], update)
		s.persist(ctx)

		return
	}
}

// DeleteTransaction removes the transaction with the given id. Unknown
// ids are a silent no-op.
func (s *Service) DeleteTransaction(ctx context.Context, id string) {
	for i := range s.data.Transactions {
		if s.data.Transactions[i].ID == id {
			s.data.Transactions = append(s.data.Transactions[:i], s.data.Transactions[i+1:]...)
			s.persist(ctx)

			return
		}
	}
}

// AddCategory assigns a fresh id, appends the category and persists
// the aggregate.
func (s *Service) AddCategory(ctx context.Context, params CreateCategoryParams) Category {
	cat := Category{
		ID:     uuid.NewString(),
		Name:   params.Name,
		Color:  params.Color,
		Icon:   params.Icon,
		Type:   params.Type,
		Budget: params.Budget,
	}

	s.data.Categories = append(s.data.Categories, cat)
	s.persist(ctx)

	return cat
}

// UpdateCategory merges the given fields into the category with the
// given id. Unknown ids are a silent no-op.
func (s *Service) UpdateCategory(ctx context.Context, id string, update CategoryUpdate) {
	for i := range s.data.Categories {
		if s.data.Categories[i].ID != id {
			continue
		}

		applyCategoryUpdate(&s.data.Categories[i], update)
		s.persist(ctx)

		return
	}
}

// DeleteCategory removes the category with the given id. Transactions
// referencing it are left untouched; they render as "Unknown" from
// then on.
func (s *Service) DeleteCategory(ctx context.Context, id string) {
	for i := range s.data.Categories {
		if s.data.Categories[i].ID == id {
			s.data.Categories = append(s.data.Categories[:i], s.data.Categories[i+1:]...)
			s.persist(ctx)

			return
		}
	}
}

// Replace swaps the whole aggregate and persists it. Used by restore.
func (s *Service) Replace(ctx context.Context, data *Data) {
	if data.Transactions == nil {
		data.Transactions = []Transaction{}
	}

	if data.Categories == nil {
		data.Categories = []Category{}
	}

	s.data = data
	s.persist(ctx)
}

// Transactions returns a snapshot of the transaction collection.
func (s *Service) Transactions() []Transaction {
	return append([]Transaction{}, s.data.Transactions...)
}

// Categories returns a snapshot of the category collection.
func (s *Service) Categories() []Category {
	return append([]Category{}, s.data.Categories...)
}

// Transaction returns the transaction with the given id, or nil.
func (s *Service) Transaction(id string) *Transaction {
	for i := range s.data.Transactions {
		if s.data.Transactions[i].ID == id {
			tx := s.data.Transactions[i]
			return &tx
		}
	}

	return nil
}

// Snapshot returns a copy of the full aggregate for read-only use.
func (s *Service) Snapshot() Data {
	return Data{
		Transactions: s.Transactions(),
		Categories:   s.Categories(),
	}
}

func (s *Service) persist(ctx context.Context) {
	if err := s.storage.Save(ctx, s.data); err != nil {
		slog.Error("could not persist finance data", "error", err)
	}
}

func newTransaction(params CreateTransactionParams) Transaction {
	return Transaction{
		ID:                 uuid.NewString(),
		Amount:             params.Amount,
		Type:               params.Type,
		CategoryID:         params.CategoryID,
		Note:               params.Note,
		Date:               params.Date,
		IsRecurring:        params.IsRecurring,
		RecurringFrequency: params.RecurringFrequency,
		NextDueDate:        params.NextDueDate,
	}
}

func applyTransactionUpdate(tx *Transaction, update TransactionUpdate) {
	if update.Amount != nil {
		tx.Amount = *update.Amount
	}

	if update.Type != nil {
		tx.Type = *update.Type
	}

	if update.CategoryID != nil {
		tx.CategoryID = *update.CategoryID
	}

	if update.Note != nil {
		tx.Note = *update.Note
	}

	if update.Date != nil {
		tx.Date = *update.Date
	}

	if update.IsRecurring != nil {
		tx.IsRecurring = *update.IsRecurring
	}

	if update.RecurringFrequency != nil {
		tx.RecurringFrequency = *update.RecurringFrequency
	}

	if update.NextDueDate != nil {
		tx.NextDueDate = update.NextDueDate
	}
}

func applyCategoryUpdate(cat *Category, update CategoryUpdate) {
	if update.Name != nil {
		cat.Name = *update.Name
	}

	if update.Color != nil {
		cat.Color = *update.Color
	}

	if update.Icon != nil {
		cat.Icon = *update.Icon
	}

	if update.Type != nil {
		cat.Type = *update.Type
	}

	if update.Budget != nil {
		cat.Budget = update.Budget
	}
}
