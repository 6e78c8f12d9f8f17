package domain

import "fmt"

// Kind discriminates the account variants. The string values are part of the
// durable record layout and must not change.
type Kind string

const (
	KindSavings  Kind = "savings"
	KindChecking Kind = "checking"
)

const (
	DefaultInterestRate   = 0.01
	DefaultOverdraftLimit = 0.0
)

// Account is the capability set shared by both account variants. The set of
// implementations is closed: *SavingsAccount and *CheckingAccount only.
type Account interface {
	Number() string
	HolderID() string
	Balance() float64
	Kind() Kind
	Deposit(amount float64) error
	Withdraw(amount float64) error
	Details() string
}

// SavingsParams carries the variant-specific parameter for account creation.
type SavingsParams struct {
	InterestRate float64
}

// CheckingParams carries the variant-specific parameter for account creation.
type CheckingParams struct {
	OverdraftLimit float64
}

type SavingsAccount struct {
	number       string
	holderID     string
	balance      float64
	interestRate float64
}

// NewSavingsAccount builds a savings account. A negative interest rate is
// clamped to the default rather than rejected; SetInterestRate is the strict
// path.
func NewSavingsAccount(number, holderID string, initialBalance, interestRate float64) *SavingsAccount {
	if interestRate < 0 {
		interestRate = DefaultInterestRate
	}
	return &SavingsAccount{
		number:       number,
		holderID:     holderID,
		balance:      initialBalance,
		interestRate: interestRate,
	}
}

func (a *SavingsAccount) Number() string   { return a.number }
func (a *SavingsAccount) HolderID() string { return a.holderID }
func (a *SavingsAccount) Balance() float64 { return a.balance }
func (a *SavingsAccount) Kind() Kind       { return KindSavings }

func (a *SavingsAccount) InterestRate() float64 { return a.interestRate }

func (a *SavingsAccount) SetInterestRate(rate float64) error {
	if rate < 0 {
		return ErrInvalidRate
	}
	a.interestRate = rate
	return nil
}

func (a *SavingsAccount) Deposit(amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	a.balance += amount
	return nil
}

// Withdraw never lets a savings balance go negative.
func (a *SavingsAccount) Withdraw(amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > a.balance {
		return ErrInsufficientFunds
	}
	a.balance -= amount
	return nil
}

// ApplyInterest compounds the current rate into the balance. It has no
// failure mode.
func (a *SavingsAccount) ApplyInterest() {
	a.balance += a.balance * a.interestRate
}

func (a *SavingsAccount) Details() string {
	return fmt.Sprintf("Acc No: %s, Balance: $%.2f, Interest Rate: %.2f%%",
		a.number, a.balance, a.interestRate*100)
}

type CheckingAccount struct {
	number         string
	holderID       string
	balance        float64
	overdraftLimit float64
}

// NewCheckingAccount builds a checking account. A negative overdraft limit is
// clamped to zero rather than rejected; SetOverdraftLimit is the strict path.
func NewCheckingAccount(number, holderID string, initialBalance, overdraftLimit float64) *CheckingAccount {
	if overdraftLimit < 0 {
		overdraftLimit = DefaultOverdraftLimit
	}
	return &CheckingAccount{
		number:         number,
		holderID:       holderID,
		balance:        initialBalance,
		overdraftLimit: overdraftLimit,
	}
}

func (a *CheckingAccount) Number() string   { return a.number }
func (a *CheckingAccount) HolderID() string { return a.holderID }
func (a *CheckingAccount) Balance() float64 { return a.balance }
func (a *CheckingAccount) Kind() Kind       { return KindChecking }

func (a *CheckingAccount) OverdraftLimit() float64 { return a.overdraftLimit }

func (a *CheckingAccount) SetOverdraftLimit(limit float64) error {
	if limit < 0 {
		return ErrInvalidLimit
	}
	a.overdraftLimit = limit
	return nil
}

func (a *CheckingAccount) Deposit(amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	a.balance += amount
	return nil
}

// Withdraw allows the balance to go negative down to -overdraftLimit.
func (a *CheckingAccount) Withdraw(amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if a.balance-amount < -a.overdraftLimit {
		return ErrOverdraftExceeded
	}
	a.balance -= amount
	return nil
}

func (a *CheckingAccount) Details() string {
	return fmt.Sprintf("Acc No: %s, Balance: $%.2f, Overdraft Limit: $%.2f",
		a.number, a.balance, a.overdraftLimit)
}
