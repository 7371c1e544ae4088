package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
	"github.com/stockflowhq/stockflow-api/internal/domain/enum"
)

func assertCode(t *testing.T, err error, want Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", want)
	}
	le := AsError(err)
	if le == nil {
		t.Fatalf("expected ledger error, got %T: %v", err, err)
	}
	if le.Code != want {
		t.Fatalf("error code = %s, want %s", le.Code, want)
	}
}

func TestValidateNewCustomer(t *testing.T) {
	existing := []entity.Customer{
		{ID: uuid.New(), Name: "Asha", Phone: "+91 98765-43210"},
	}

	err := ValidateNewCustomer(entity.Customer{ID: uuid.New(), Name: "  ", Phone: "12345"}, existing)
	assertCode(t, err, CodeInvalidCustomerName)

	err = ValidateNewCustomer(entity.Customer{ID: uuid.New(), Name: "Ravi", Phone: "  "}, existing)
	assertCode(t, err, CodeInvalidCustomerPhone)

	err = ValidateNewCustomer(entity.Customer{ID: uuid.New(), Name: "Ravi", Phone: "---"}, existing)
	assertCode(t, err, CodeInvalidCustomerPhone)

	// Same digits, different formatting.
	err = ValidateNewCustomer(entity.Customer{ID: uuid.New(), Name: "Ravi", Phone: "919876543210"}, existing)
	assertCode(t, err, CodeDuplicateCustomerPhone)

	if err := ValidateNewCustomer(entity.Customer{ID: uuid.New(), Name: "Ravi", Phone: "99999 11111"}, existing); err != nil {
		t.Fatalf("valid customer rejected: %v", err)
	}

	// Updating an existing customer keeps its own phone.
	if err := ValidateNewCustomer(existing[0], existing); err != nil {
		t.Fatalf("self update rejected: %v", err)
	}
}

func TestValidatePaymentMethod(t *testing.T) {
	err := ValidatePaymentMethod(entity.Transaction{
		Type:          enum.TransactionTypeSale,
		PaymentMethod: enum.PaymentMethod("barter"),
	})
	assertCode(t, err, CodeInvalidPaymentMethod)

	err = ValidatePaymentMethod(entity.Transaction{
		Type:          enum.TransactionTypePayment,
		PaymentMethod: enum.PaymentMethodCredit,
	})
	assertCode(t, err, CodePaymentMethodNotAllowed)

	if err := ValidatePaymentMethod(entity.Transaction{
		Type:          enum.TransactionTypePayment,
		PaymentMethod: enum.PaymentMethodCash,
	}); err != nil {
		t.Fatalf("cash payment rejected: %v", err)
	}
}

func TestValidateStoreCreditUseRequiresCustomer(t *testing.T) {
	err := ValidateStoreCreditUse(entity.Transaction{Type: enum.TransactionTypeSale, UseStoreCredit: true})
	assertCode(t, err, CodeStoreCreditWithoutCustomer)

	id := uuid.New()
	if err := ValidateStoreCreditUse(entity.Transaction{UseStoreCredit: true, CustomerID: &id}); err != nil {
		t.Fatalf("store credit with customer rejected: %v", err)
	}
}

func TestValidateFinancials(t *testing.T) {
	productID := uuid.New()
	base := func() entity.Transaction {
		return entity.Transaction{
			Type:  enum.TransactionTypeSale,
			Total: 2058,
			Items: []entity.TransactionItem{
				{ProductID: productID, Quantity: 2, SellPrice: 1029},
			},
		}
	}

	if err := ValidateFinancials(base()); err != nil {
		t.Fatalf("consistent sale rejected: %v", err)
	}

	tx := base()
	tx.Items = nil
	assertCode(t, ValidateFinancials(tx), CodeEmptyItems)

	tx = base()
	tx.Items[0].Quantity = 0
	assertCode(t, ValidateFinancials(tx), CodeInvalidItemQuantity)

	tx = base()
	tx.Items[0].SellPrice = -100
	assertCode(t, ValidateFinancials(tx), CodeInvalidItemPrice)

	tx = base()
	tx.Items[0].Discount = 5000
	assertCode(t, ValidateFinancials(tx), CodeDiscountExceedsGross)

	tx = base()
	tx.TaxRate = -5
	assertCode(t, ValidateFinancials(tx), CodeInvalidTaxRate)

	tx = base()
	tx.Total = 2100
	assertCode(t, ValidateFinancials(tx), CodeTotalMismatch)

	// One minor unit of client-side float drift passes.
	tx = base()
	tx.Total = 2059
	if err := ValidateFinancials(tx); err != nil {
		t.Fatalf("drift within tolerance rejected: %v", err)
	}

	// Tax participates in the recomputed total.
	tx = base()
	tx.TaxRate = 5
	tx.Total = 2161 // 2058 + round(2058 * 0.05)
	if err := ValidateFinancials(tx); err != nil {
		t.Fatalf("taxed sale rejected: %v", err)
	}

	// A return's total carries a negative sign.
	tx = base()
	tx.Type = enum.TransactionTypeReturn
	tx.Total = -2058
	if err := ValidateFinancials(tx); err != nil {
		t.Fatalf("consistent return rejected: %v", err)
	}

	// Payments skip item checks but must be positive.
	assertCode(t, ValidateFinancials(entity.Transaction{Type: enum.TransactionTypePayment, Total: 0}), CodeTotalMismatch)
	if err := ValidateFinancials(entity.Transaction{Type: enum.TransactionTypePayment, Total: 1900}); err != nil {
		t.Fatalf("payment rejected: %v", err)
	}
}

func TestValidateInventory(t *testing.T) {
	productID := uuid.New()
	customerID := uuid.New()
	snap := Snapshot{
		Products: []entity.Product{
			{ID: productID, Name: "Soap", Stock: 5, TotalSold: 3},
		},
		Transactions: []entity.Transaction{
			{
				Type:       enum.TransactionTypeSale,
				CustomerID: &customerID,
				Items:      []entity.TransactionItem{{ProductID: productID, Quantity: 2}},
			},
		},
	}

	sale := entity.Transaction{
		Type:  enum.TransactionTypeSale,
		Items: []entity.TransactionItem{{ProductID: uuid.New(), Quantity: 1}},
	}
	assertCode(t, ValidateInventory(sale, snap), CodeUnknownProduct)

	sale.Items[0].ProductID = productID
	sale.Items[0].Quantity = 6
	assertCode(t, ValidateInventory(sale, snap), CodeOversaleStock)

	sale.Items[0].Quantity = 5
	if err := ValidateInventory(sale, snap); err != nil {
		t.Fatalf("sale within stock rejected: %v", err)
	}

	ret := entity.Transaction{
		Type:  enum.TransactionTypeReturn,
		Items: []entity.TransactionItem{{ProductID: productID, Quantity: 4}},
	}
	assertCode(t, ValidateInventory(ret, snap), CodeReturnExceedsSold)

	// Anonymous return bounded by units sold only.
	ret.Items[0].Quantity = 3
	if err := ValidateInventory(ret, snap); err != nil {
		t.Fatalf("anonymous return rejected: %v", err)
	}

	// A named customer can only return what they bought.
	ret.CustomerID = &customerID
	assertCode(t, ValidateInventory(ret, snap), CodeReturnExceedsPurchases)

	ret.Items[0].Quantity = 2
	if err := ValidateInventory(ret, snap); err != nil {
		t.Fatalf("customer return within purchases rejected: %v", err)
	}
}

func TestValidateInventorySumsDuplicateLines(t *testing.T) {
	productID := uuid.New()
	snap := Snapshot{
		Products: []entity.Product{
			{ID: productID, Name: "Soap", Stock: 3, TotalSold: 3},
		},
	}

	// 2+2 of the same product against 3 in stock must be read as 4.
	sale := entity.Transaction{
		Type: enum.TransactionTypeSale,
		Items: []entity.TransactionItem{
			{ProductID: productID, Quantity: 2},
			{ProductID: productID, Quantity: 2},
		},
	}
	err := ValidateInventory(sale, snap)
	assertCode(t, err, CodeOversaleStock)
	le := AsError(err)
	if got := le.Detail["requested_quantity"]; got != 4 {
		t.Fatalf("requested_quantity = %v, want 4", got)
	}

	ret := entity.Transaction{
		Type: enum.TransactionTypeReturn,
		Items: []entity.TransactionItem{
			{ProductID: productID, Quantity: 2},
			{ProductID: productID, Quantity: 2},
		},
	}
	assertCode(t, ValidateInventory(ret, snap), CodeReturnExceedsSold)

	sale.Items[1].Quantity = 1
	if err := ValidateInventory(sale, snap); err != nil {
		t.Fatalf("split lines within stock rejected: %v", err)
	}
}

func TestValidateUpfrontOrder(t *testing.T) {
	customerID := uuid.New()
	customers := []entity.Customer{{ID: customerID, Name: "Asha", Phone: "9876543210"}}

	base := func() entity.UpfrontOrder {
		return entity.UpfrontOrder{
			ID:          uuid.New(),
			CustomerID:  customerID,
			Description: "10kg basmati rice",
			Quantity:    10,
			TotalCost:   150000,
			AdvancePaid: 50000,
			Remaining:   100000,
			Status:      enum.UpfrontStatusUnpaid,
		}
	}

	if err := ValidateUpfrontOrder(base(), customers); err != nil {
		t.Fatalf("valid order rejected: %v", err)
	}

	order := base()
	order.CustomerID = uuid.New()
	assertCode(t, ValidateUpfrontOrder(order, customers), CodeUnknownCustomer)

	order = base()
	order.Description = "   "
	assertCode(t, ValidateUpfrontOrder(order, customers), CodeInvalidUpfrontOrder)

	order = base()
	order.AdvancePaid = 200000
	assertCode(t, ValidateUpfrontOrder(order, customers), CodeInvalidUpfrontOrder)

	order = base()
	order.Remaining = 90000
	assertCode(t, ValidateUpfrontOrder(order, customers), CodeInvalidUpfrontOrder)

	order = base()
	order.AdvancePaid = 150000
	order.Remaining = 0
	order.Status = enum.UpfrontStatusUnpaid
	assertCode(t, ValidateUpfrontOrder(order, customers), CodeInvalidUpfrontOrder)

	order.Status = enum.UpfrontStatusCleared
	if err := ValidateUpfrontOrder(order, customers); err != nil {
		t.Fatalf("cleared order rejected: %v", err)
	}
}

func TestNormalizePhone(t *testing.T) {
	if got := NormalizePhone("+91 (98765) 43-210"); got != "919876543210" {
		t.Fatalf("normalized phone = %q", got)
	}
}
