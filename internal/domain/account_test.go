package domain

import (
	"errors"
	"testing"
)

func TestSavingsAccount_DepositRejectsNonPositive(t *testing.T) {
	for _, amount := range []float64{0, -5} {
		acct := NewSavingsAccount("S1", "C1", 100, DefaultInterestRate)
		if err := acct.Deposit(amount); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Deposit(%v): expected ErrInvalidAmount, got %v", amount, err)
		}
		if acct.Balance() != 100 {
			t.Errorf("Deposit(%v): balance changed to %v", amount, acct.Balance())
		}
	}
}

func TestSavingsAccount_WithdrawNeverGoesNegative(t *testing.T) {
	acct := NewSavingsAccount("S1", "C1", 50, DefaultInterestRate)

	if err := acct.Withdraw(60); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if acct.Balance() != 50 {
		t.Fatalf("failed withdrawal mutated balance: %v", acct.Balance())
	}

	if err := acct.Withdraw(50); err != nil {
		t.Fatalf("unexpected error on full withdrawal: %v", err)
	}
	if acct.Balance() != 0 {
		t.Fatalf("expected balance 0, got %v", acct.Balance())
	}
}

func TestSavingsAccount_ApplyInterest(t *testing.T) {
	acct := NewSavingsAccount("S1", "C1", 100, 0.05)
	acct.ApplyInterest()

	if acct.Balance() != 105 {
		t.Errorf("expected balance 105, got %v", acct.Balance())
	}
}

func TestSavingsAccount_NegativeRateClampedOnConstruction(t *testing.T) {
	acct := NewSavingsAccount("S1", "C1", 0, -0.5)
	if acct.InterestRate() != DefaultInterestRate {
		t.Errorf("expected rate clamped to %v, got %v", DefaultInterestRate, acct.InterestRate())
	}
}

func TestSavingsAccount_SetInterestRateRejectsNegative(t *testing.T) {
	acct := NewSavingsAccount("S1", "C1", 0, 0.02)

	if err := acct.SetInterestRate(-0.1); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate, got %v", err)
	}
	if acct.InterestRate() != 0.02 {
		t.Errorf("rejected setter mutated rate: %v", acct.InterestRate())
	}

	if err := acct.SetInterestRate(0.03); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acct.InterestRate() != 0.03 {
		t.Errorf("expected rate 0.03, got %v", acct.InterestRate())
	}
}

func TestCheckingAccount_WithdrawWithinOverdraft(t *testing.T) {
	acct := NewCheckingAccount("K1", "C1", 50, 20)

	if err := acct.Withdraw(60); err != nil {
		t.Fatalf("withdrawal into overdraft should succeed, got %v", err)
	}
	if acct.Balance() != -10 {
		t.Fatalf("expected balance -10, got %v", acct.Balance())
	}

	if err := acct.Withdraw(15); !errors.Is(err, ErrOverdraftExceeded) {
		t.Fatalf("expected ErrOverdraftExceeded, got %v", err)
	}
	if acct.Balance() != -10 {
		t.Errorf("failed withdrawal mutated balance: %v", acct.Balance())
	}
}

func TestCheckingAccount_DepositRejectsNonPositive(t *testing.T) {
	acct := NewCheckingAccount("K1", "C1", 10, 0)
	if err := acct.Deposit(-1); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
	if acct.Balance() != 10 {
		t.Errorf("failed deposit mutated balance: %v", acct.Balance())
	}
}

func TestCheckingAccount_NegativeLimitClampedOnConstruction(t *testing.T) {
	acct := NewCheckingAccount("K1", "C1", 0, -30)
	if acct.OverdraftLimit() != 0 {
		t.Errorf("expected limit clamped to 0, got %v", acct.OverdraftLimit())
	}
}

func TestCheckingAccount_SetOverdraftLimitRejectsNegative(t *testing.T) {
	acct := NewCheckingAccount("K1", "C1", 0, 20)

	if err := acct.SetOverdraftLimit(-5); !errors.Is(err, ErrInvalidLimit) {
		t.Fatalf("expected ErrInvalidLimit, got %v", err)
	}
	if acct.OverdraftLimit() != 20 {
		t.Errorf("rejected setter mutated limit: %v", acct.OverdraftLimit())
	}
}
