package internal_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"bankledger/internal/domain"
	"bankledger/internal/ledger"
	"bankledger/internal/storage/jsonfile"
	"bankledger/pkg/metrics"
)

type testEnv struct {
	dir       string
	store     *jsonfile.Store
	bank      *ledger.Ledger
	collector *metrics.Collector
	logger    *slog.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()
	store := jsonfile.New(
		filepath.Join(dir, "customers.json"),
		filepath.Join(dir, "accounts.json"),
		logger,
	)
	collector := metrics.NewCollector(logger)

	return &testEnv{
		dir:       dir,
		store:     store,
		bank:      ledger.New(context.Background(), store, logger, collector),
		collector: collector,
		logger:    logger,
	}
}

// reopen builds a fresh ledger over the same durable record, simulating a
// process restart.
func (e *testEnv) reopen(t *testing.T) *ledger.Ledger {
	t.Helper()
	return ledger.New(context.Background(), e.store, e.logger, nil)
}

func TestIntegration_InterestAccrual(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if err := env.bank.AddCustomer(ctx, "C1", "Alice", "1 Main St"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	acct, err := env.bank.CreateAccount(ctx, "C1", domain.KindSavings, 100.0,
		domain.SavingsParams{InterestRate: 0.05})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := env.bank.ApplyAllInterest(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	accounts := env.bank.CustomerAccounts(ctx, "C1")
	if len(accounts) != 1 || accounts[0].Balance != 105.0 {
		t.Errorf("expected balance 105 for %s, got %+v", acct.Number, accounts)
	}
}

func TestIntegration_CheckingOverdraft(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if err := env.bank.AddCustomer(ctx, "C1", "Alice", "1 Main St"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	acct, err := env.bank.CreateAccount(ctx, "C1", domain.KindChecking, 50.0,
		domain.CheckingParams{OverdraftLimit: 20.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := env.bank.Withdraw(ctx, acct.Number, 60.0); err != nil {
		t.Fatalf("withdrawal into overdraft should succeed, got %v", err)
	}
	if err := env.bank.Withdraw(ctx, acct.Number, 15.0); !errors.Is(err, domain.ErrOverdraftExceeded) {
		t.Fatalf("expected ErrOverdraftExceeded, got %v", err)
	}

	accounts := env.bank.Accounts(ctx)
	if len(accounts) != 1 || accounts[0].Balance != -10.0 {
		t.Errorf("expected balance -10, got %+v", accounts)
	}
}

func TestIntegration_FailedTransferLeavesBalances(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if err := env.bank.AddCustomer(ctx, "C1", "Alice", "1 Main St"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, err := env.bank.CreateAccount(ctx, "C1", domain.KindSavings, 10.0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := env.bank.CreateAccount(ctx, "C1", domain.KindSavings, 40.0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := env.bank.TransferFunds(ctx, a.Number, b.Number, 30.0); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	for _, acct := range env.bank.Accounts(ctx) {
		switch acct.Number {
		case a.Number:
			if acct.Balance != 10.0 {
				t.Errorf("source balance changed: %v", acct.Balance)
			}
		case b.Number:
			if acct.Balance != 40.0 {
				t.Errorf("destination balance changed: %v", acct.Balance)
			}
		}
	}
}

func TestIntegration_RestartRestoresState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if err := env.bank.AddCustomer(ctx, "C1", "Alice", "1 Main St"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	savings, err := env.bank.CreateAccount(ctx, "C1", domain.KindSavings, 100.0,
		domain.SavingsParams{InterestRate: 0.05})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checking, err := env.bank.CreateAccount(ctx, "C1", domain.KindChecking, 50.0,
		domain.CheckingParams{OverdraftLimit: 20.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := env.bank.Deposit(ctx, savings.Number, 25.0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reopened := env.reopen(t)

	customers := reopened.Customers(ctx)
	if len(customers) != 1 || customers[0].Name != "Alice" {
		t.Fatalf("customer did not survive restart: %+v", customers)
	}

	owned := reopened.CustomerAccounts(ctx, "C1")
	if len(owned) != 2 {
		t.Fatalf("expected 2 accounts after restart, got %+v", owned)
	}
	if owned[0].Number != savings.Number || owned[0].Balance != 125.0 || owned[0].InterestRate != 0.05 {
		t.Errorf("savings account did not round-trip: %+v", owned[0])
	}
	if owned[1].Number != checking.Number || owned[1].OverdraftLimit != 20.0 {
		t.Errorf("checking account did not round-trip: %+v", owned[1])
	}
}

func TestIntegration_CustomerRemovalBlockedByAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if err := env.bank.AddCustomer(ctx, "C1", "Alice", "1 Main St"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := env.bank.CreateAccount(ctx, "C1", domain.KindSavings, 0, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := env.bank.RemoveCustomer(ctx, "C1"); !errors.Is(err, domain.ErrAccountsOpen) {
		t.Fatalf("expected ErrAccountsOpen, got %v", err)
	}
}

func TestIntegration_WipeDeletesRecord(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if err := env.bank.AddCustomer(ctx, "C1", "Alice", "1 Main St"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := env.bank.ClearAllData(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(env.dir, "customers.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("customer document still present: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.dir, "accounts.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("account document still present: %v", err)
	}

	if got := env.reopen(t).Customers(ctx); len(got) != 0 {
		t.Errorf("expected empty ledger after wipe, got %+v", got)
	}
}
