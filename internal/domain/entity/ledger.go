// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale represents one canonical sales-ledger record (an issued invoice
// waiting to be collected through a bank movement). Sales are created by
// the ledger normalizer and never mutated afterwards.
type Sale struct {
	ID                 string
	IssueDate          time.Time
	ExpectedCollection *time.Time // Optional expected-collection date
	DocType            string     // e.g. "FC A", "ND B"
	DocNumber          string
	CustomerName       string
	CustomerTaxID      string // CUIT, normalized when 11 digits could be extracted
	CustomerAccount    string // Optional counterparty bank account (CBU)
	CollectionMethod   string
	Currency           string
	NetAmount          decimal.Decimal
	VATAmount          decimal.Decimal
	TotalAmount        decimal.Decimal
	Reference          string // Optional external reference / payment order
}

// Purchase represents one canonical purchases-ledger record (a received
// voucher waiting to be paid through a bank movement). Symmetric to Sale,
// with a supplier as counterparty and a payment method instead of a
// collection method.
type Purchase struct {
	ID              string
	IssueDate       time.Time
	ExpectedPayment *time.Time
	DocType         string
	DocNumber       string
	SupplierName    string
	SupplierTaxID   string
	SupplierAccount string
	PaymentMethod   string
	Currency        string
	NetAmount       decimal.Decimal
	VATAmount       decimal.Decimal
	TotalAmount     decimal.Decimal
	Reference       string
}
