package domain

import (
	"fmt"
	"slices"
)

// Customer holds identity plus the ordered set of account numbers it owns.
// The id and name are fixed at construction; only the address has a setter.
type Customer struct {
	id             string
	name           string
	address        string
	accountNumbers []string
}

func NewCustomer(id, name, address string) *Customer {
	return &Customer{id: id, name: name, address: address}
}

func (c *Customer) ID() string      { return c.id }
func (c *Customer) Name() string    { return c.name }
func (c *Customer) Address() string { return c.address }

func (c *Customer) SetAddress(address string) { c.address = address }

// AccountNumbers returns a copy of the owned account numbers in insertion
// order.
func (c *Customer) AccountNumbers() []string {
	return slices.Clone(c.accountNumbers)
}

// AddAccountNumber registers an account number. Adding a number that is
// already present is a no-op; insertion order is preserved.
func (c *Customer) AddAccountNumber(number string) {
	if slices.Contains(c.accountNumbers, number) {
		return
	}
	c.accountNumbers = append(c.accountNumbers, number)
}

// RemoveAccountNumber unregisters an account number; absent numbers are a
// no-op.
func (c *Customer) RemoveAccountNumber(number string) {
	c.accountNumbers = slices.DeleteFunc(c.accountNumbers, func(n string) bool {
		return n == number
	})
}

func (c *Customer) Details() string {
	return fmt.Sprintf("Customer ID: %s, Name: %s, Address: %s, Accounts: %d",
		c.id, c.name, c.address, len(c.accountNumbers))
}
