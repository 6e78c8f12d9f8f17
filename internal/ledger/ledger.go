// Package ledger holds the authoritative in-memory customer and account
// state and every operation that mutates it. Each successful mutation is
// written through the injected Store before the call returns, so the durable
// record always reflects the last successful operation.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"bankledger/internal/domain"
	"bankledger/internal/storage"
	"bankledger/pkg/metrics"
)

type Ledger struct {
	mu        sync.Mutex
	customers map[string]*domain.Customer
	accounts  map[string]domain.Account
	store     storage.Store
	logger    *slog.Logger
	metrics   *metrics.Collector
}

// New builds a ledger and loads the durable record before any operation is
// accepted. An absent or unreadable record starts the ledger empty.
func New(ctx context.Context, store storage.Store, logger *slog.Logger, collector *metrics.Collector) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}

	l := &Ledger{
		customers: make(map[string]*domain.Customer),
		accounts:  make(map[string]domain.Account),
		store:     store,
		logger:    logger,
		metrics:   collector,
	}

	snap, err := store.Load(ctx)
	if err != nil {
		logger.Warn("Failed to load durable record, starting empty",
			slog.String("error", err.Error()))
		snap = storage.EmptySnapshot()
	}
	l.restore(snap)

	logger.Info("Ledger loaded",
		slog.Int("customers", len(l.customers)),
		slog.Int("accounts", len(l.accounts)))
	l.publishGauges()
	return l
}

// restore materializes domain state from a snapshot. Records with an
// unrecognized kind are skipped, missing optional fields fall back to the
// variant defaults, and customer references to accounts that do not exist are
// dropped.
func (l *Ledger) restore(snap storage.Snapshot) {
	for _, rec := range snap.Accounts {
		switch domain.Kind(rec.Type) {
		case domain.KindSavings:
			rate := domain.DefaultInterestRate
			if rec.InterestRate != nil {
				rate = *rec.InterestRate
			}
			l.accounts[rec.AccountNumber] = domain.NewSavingsAccount(
				rec.AccountNumber, rec.AccountHolderID, rec.Balance, rate)
		case domain.KindChecking:
			limit := domain.DefaultOverdraftLimit
			if rec.OverdraftLimit != nil {
				limit = *rec.OverdraftLimit
			}
			l.accounts[rec.AccountNumber] = domain.NewCheckingAccount(
				rec.AccountNumber, rec.AccountHolderID, rec.Balance, limit)
		default:
			l.logger.Warn("Skipping account with unknown kind",
				slog.String("account", rec.AccountNumber),
				slog.String("kind", rec.Type))
		}
	}

	for _, rec := range snap.Customers {
		customer := domain.NewCustomer(rec.CustomerID, rec.Name, rec.Address)
		for _, num := range rec.AccountNumbers {
			if _, ok := l.accounts[num]; !ok {
				l.logger.Warn("Dropping dangling account reference",
					slog.String("customer", rec.CustomerID),
					slog.String("account", num))
				continue
			}
			customer.AddAccountNumber(num)
		}
		l.customers[rec.CustomerID] = customer
	}
}

func (l *Ledger) snapshot() storage.Snapshot {
	snap := storage.EmptySnapshot()
	for id, c := range l.customers {
		snap.Customers[id] = storage.CustomerRecord{
			CustomerID:     c.ID(),
			Name:           c.Name(),
			Address:        c.Address(),
			AccountNumbers: c.AccountNumbers(),
		}
	}
	for num, a := range l.accounts {
		rec := storage.AccountRecord{
			AccountNumber:   a.Number(),
			AccountHolderID: a.HolderID(),
			Balance:         a.Balance(),
			Type:            string(a.Kind()),
		}
		switch acct := a.(type) {
		case *domain.SavingsAccount:
			rate := acct.InterestRate()
			rec.InterestRate = &rate
		case *domain.CheckingAccount:
			limit := acct.OverdraftLimit()
			rec.OverdraftLimit = &limit
		}
		snap.Accounts[num] = rec
	}
	return snap
}

func (l *Ledger) persist(ctx context.Context) error {
	if err := l.store.Save(ctx, l.snapshot()); err != nil {
		return fmt.Errorf("persist ledger: %w", err)
	}
	return nil
}

// AddCustomer inserts a new customer with no accounts.
func (l *Ledger) AddCustomer(ctx context.Context, id, name, address string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	err := l.addCustomer(ctx, id, name, address)
	l.recordOperation("add_customer", err)
	return err
}

func (l *Ledger) addCustomer(ctx context.Context, id, name, address string) error {
	if _, exists := l.customers[id]; exists {
		return fmt.Errorf("%w: customer %s", domain.ErrDuplicate, id)
	}

	l.customers[id] = domain.NewCustomer(id, name, address)
	if err := l.persist(ctx); err != nil {
		return err
	}

	l.logger.Info("Customer added", slog.String("customer", id))
	l.publishGauges()
	return nil
}

// RemoveCustomer deletes a customer. It fails while the customer owns any
// account; since no account-removal operation exists, a customer that has
// ever opened an account cannot be removed. That limitation is inherited
// deliberately.
func (l *Ledger) RemoveCustomer(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	err := l.removeCustomer(ctx, id)
	l.recordOperation("remove_customer", err)
	return err
}

func (l *Ledger) removeCustomer(ctx context.Context, id string) error {
	customer, exists := l.customers[id]
	if !exists {
		return fmt.Errorf("%w: customer %s", domain.ErrNotFound, id)
	}
	if len(customer.AccountNumbers()) > 0 {
		return fmt.Errorf("%w: customer %s", domain.ErrAccountsOpen, id)
	}

	delete(l.customers, id)
	if err := l.persist(ctx); err != nil {
		return err
	}

	l.logger.Info("Customer removed", slog.String("customer", id))
	l.publishGauges()
	return nil
}

// CreateAccount opens an account of the given kind for an existing customer
// and returns its snapshot. params must be a domain.SavingsParams or
// domain.CheckingParams matching the kind, or nil for the variant defaults.
func (l *Ledger) CreateAccount(ctx context.Context, customerID string, kind domain.Kind, initialBalance float64, params any) (AccountInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	info, err := l.createAccount(ctx, customerID, kind, initialBalance, params)
	l.recordOperation("create_account", err)
	return info, err
}

func (l *Ledger) createAccount(ctx context.Context, customerID string, kind domain.Kind, initialBalance float64, params any) (AccountInfo, error) {
	customer, exists := l.customers[customerID]
	if !exists {
		return AccountInfo{}, fmt.Errorf("%w: customer %s", domain.ErrNotFound, customerID)
	}

	number := l.newAccountNumber()

	var account domain.Account
	switch kind {
	case domain.KindSavings:
		rate := domain.DefaultInterestRate
		switch p := params.(type) {
		case nil:
		case domain.SavingsParams:
			rate = p.InterestRate
		default:
			return AccountInfo{}, fmt.Errorf("%w: %T for %s", domain.ErrKindMismatch, params, kind)
		}
		account = domain.NewSavingsAccount(number, customerID, initialBalance, rate)
	case domain.KindChecking:
		limit := domain.DefaultOverdraftLimit
		switch p := params.(type) {
		case nil:
		case domain.CheckingParams:
			limit = p.OverdraftLimit
		default:
			return AccountInfo{}, fmt.Errorf("%w: %T for %s", domain.ErrKindMismatch, params, kind)
		}
		account = domain.NewCheckingAccount(number, customerID, initialBalance, limit)
	default:
		return AccountInfo{}, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}

	l.accounts[number] = account
	customer.AddAccountNumber(number)
	if err := l.persist(ctx); err != nil {
		return AccountInfo{}, err
	}

	l.logger.Info("Account created",
		slog.String("customer", customerID),
		slog.String("account", number),
		slog.String("kind", string(kind)),
		slog.Float64("balance", initialBalance))
	l.publishBalance(account)
	l.publishGauges()
	return accountInfo(account), nil
}

// newAccountNumber draws from a space large enough that collisions are
// negligible; the loop regenerates on the off chance anyway.
func (l *Ledger) newAccountNumber() string {
	number := uuid.NewString()
	for {
		if _, taken := l.accounts[number]; !taken {
			return number
		}
		number = uuid.NewString()
	}
}

// Deposit credits an account under its variant's deposit policy.
func (l *Ledger) Deposit(ctx context.Context, number string, amount float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	err := l.deposit(ctx, number, amount)
	l.recordOperation("deposit", err)
	return err
}

func (l *Ledger) deposit(ctx context.Context, number string, amount float64) error {
	account, exists := l.accounts[number]
	if !exists {
		return fmt.Errorf("%w: account %s", domain.ErrNotFound, number)
	}
	if err := account.Deposit(amount); err != nil {
		return err
	}
	if err := l.persist(ctx); err != nil {
		return err
	}

	l.logger.Info("Deposit completed",
		slog.String("account", number),
		slog.Float64("amount", amount),
		slog.Float64("balance", account.Balance()))
	l.publishBalance(account)
	return nil
}

// Withdraw debits an account under its variant's withdrawal policy.
func (l *Ledger) Withdraw(ctx context.Context, number string, amount float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	err := l.withdraw(ctx, number, amount)
	l.recordOperation("withdraw", err)
	return err
}

func (l *Ledger) withdraw(ctx context.Context, number string, amount float64) error {
	account, exists := l.accounts[number]
	if !exists {
		return fmt.Errorf("%w: account %s", domain.ErrNotFound, number)
	}
	if err := account.Withdraw(amount); err != nil {
		return err
	}
	if err := l.persist(ctx); err != nil {
		return err
	}

	l.logger.Info("Withdrawal completed",
		slog.String("account", number),
		slog.Float64("amount", amount),
		slog.Float64("balance", account.Balance()))
	l.publishBalance(account)
	return nil
}

// TransferFunds moves amount between two accounts. Either both legs apply or
// neither does: a failed destination credit is compensated by depositing the
// amount back into the source before the failure is returned.
func (l *Ledger) TransferFunds(ctx context.Context, fromNumber, toNumber string, amount float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	err := l.transferFunds(ctx, fromNumber, toNumber, amount)
	l.recordOperation("transfer", err)
	return err
}

func (l *Ledger) transferFunds(ctx context.Context, fromNumber, toNumber string, amount float64) error {
	from, okFrom := l.accounts[fromNumber]
	to, okTo := l.accounts[toNumber]
	if !okFrom {
		return fmt.Errorf("%w: account %s", domain.ErrNotFound, fromNumber)
	}
	if !okTo {
		return fmt.Errorf("%w: account %s", domain.ErrNotFound, toNumber)
	}
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}

	if err := from.Withdraw(amount); err != nil {
		return fmt.Errorf("withdraw leg: %w", err)
	}
	if err := to.Deposit(amount); err != nil {
		// Compensate the already-applied debit. The deposit leg cannot
		// reject a positive amount, so this is unreachable in practice,
		// but the source must never stay debited without the credit.
		if compErr := from.Deposit(amount); compErr != nil {
			l.logger.Error("Transfer compensation failed",
				slog.String("from", fromNumber),
				slog.Float64("amount", amount),
				slog.String("error", compErr.Error()))
		}
		return fmt.Errorf("deposit leg: %w", err)
	}
	if err := l.persist(ctx); err != nil {
		return err
	}

	l.logger.Info("Transfer completed",
		slog.String("from", fromNumber),
		slog.String("to", toNumber),
		slog.Float64("amount", amount))
	l.publishBalance(from)
	l.publishBalance(to)
	return nil
}

// ApplyAllInterest accrues interest on every savings account. The record is
// written once, and only when the ledger holds at least one savings account.
func (l *Ledger) ApplyAllInterest(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	err := l.applyAllInterest(ctx)
	l.recordOperation("apply_interest", err)
	return err
}

func (l *Ledger) applyAllInterest(ctx context.Context) error {
	applied := 0
	for _, account := range l.accounts {
		if savings, ok := account.(*domain.SavingsAccount); ok {
			savings.ApplyInterest()
			l.publishBalance(savings)
			applied++
		}
	}
	if applied == 0 {
		return nil
	}
	if err := l.persist(ctx); err != nil {
		return err
	}

	l.logger.Info("Interest applied", slog.Int("accounts", applied))
	return nil
}

// ClearAllData empties the ledger and deletes the durable record. The
// in-memory state is cleared even when deleting the record fails; the
// deletion error is returned.
func (l *Ledger) ClearAllData(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.customers = make(map[string]*domain.Customer)
	l.accounts = make(map[string]domain.Account)
	if l.metrics != nil {
		l.metrics.ResetAccountBalances()
	}
	l.publishGauges()

	err := l.store.Clear(ctx)
	if err != nil {
		err = fmt.Errorf("clear durable record: %w", err)
	} else {
		l.logger.Info("All data cleared")
	}
	l.recordOperation("clear_all_data", err)
	return err
}

func (l *Ledger) recordOperation(operation string, err error) {
	if l.metrics != nil {
		l.metrics.RecordOperation(operation, err)
	}
}

func (l *Ledger) publishBalance(account domain.Account) {
	if l.metrics != nil {
		l.metrics.SetAccountBalance(account.Number(), string(account.Kind()), account.Balance())
	}
}

func (l *Ledger) publishGauges() {
	if l.metrics != nil {
		l.metrics.SetEntityCounts(len(l.customers), len(l.accounts))
	}
}

// CustomerInfo is a read-only snapshot of a customer.
type CustomerInfo struct {
	ID             string
	Name           string
	Address        string
	AccountNumbers []string
	Details        string
}

// AccountInfo is a read-only snapshot of an account. InterestRate is
// meaningful for savings accounts, OverdraftLimit for checking accounts.
type AccountInfo struct {
	Number         string
	HolderID       string
	Balance        float64
	Kind           domain.Kind
	InterestRate   float64
	OverdraftLimit float64
	Details        string
}

func customerInfo(c *domain.Customer) CustomerInfo {
	return CustomerInfo{
		ID:             c.ID(),
		Name:           c.Name(),
		Address:        c.Address(),
		AccountNumbers: c.AccountNumbers(),
		Details:        c.Details(),
	}
}

func accountInfo(a domain.Account) AccountInfo {
	info := AccountInfo{
		Number:   a.Number(),
		HolderID: a.HolderID(),
		Balance:  a.Balance(),
		Kind:     a.Kind(),
		Details:  a.Details(),
	}
	switch acct := a.(type) {
	case *domain.SavingsAccount:
		info.InterestRate = acct.InterestRate()
	case *domain.CheckingAccount:
		info.OverdraftLimit = acct.OverdraftLimit()
	}
	return info
}

// Customers lists all customers, ordered by id.
func (l *Ledger) Customers(ctx context.Context) []CustomerInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]CustomerInfo, 0, len(l.customers))
	for _, c := range l.customers {
		out = append(out, customerInfo(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Accounts lists all accounts, ordered by account number.
func (l *Ledger) Accounts(ctx context.Context) []AccountInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]AccountInfo, 0, len(l.accounts))
	for _, a := range l.accounts {
		out = append(out, accountInfo(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// CustomerAccounts lists one customer's accounts in the order they were
// opened. References with no matching account are filtered out defensively;
// an unknown customer yields an empty list.
func (l *Ledger) CustomerAccounts(ctx context.Context, customerID string) []AccountInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	customer, exists := l.customers[customerID]
	if !exists {
		return nil
	}

	var out []AccountInfo
	for _, num := range customer.AccountNumbers() {
		if account, ok := l.accounts[num]; ok {
			out = append(out, accountInfo(account))
		}
	}
	return out
}
