package ledger

import (
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
	"github.com/stockflowhq/stockflow-api/internal/domain/enum"
)

// NormalizePhone strips everything but digits from a phone number. Phone
// uniqueness is checked on the normalized form.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateNewCustomer checks a customer payload before it is admitted to
// the customer list: name and phone non-empty after trimming, phone carrying
// at least one digit, and no existing customer with the same normalized
// phone.
func ValidateNewCustomer(candidate entity.Customer, existing []entity.Customer) error {
	if strings.TrimSpace(candidate.Name) == "" {
		return newError(CodeInvalidCustomerName, "customer name is required")
	}
	phone := strings.TrimSpace(candidate.Phone)
	if phone == "" {
		return newError(CodeInvalidCustomerPhone, "customer phone is required")
	}
	normalized := NormalizePhone(phone)
	if normalized == "" {
		return newErrorDetail(CodeInvalidCustomerPhone, "customer phone must contain at least one digit", map[string]any{
			"phone": phone,
		})
	}
	for i := range existing {
		if existing[i].ID == candidate.ID {
			continue
		}
		if NormalizePhone(existing[i].Phone) == normalized {
			return newErrorDetail(CodeDuplicateCustomerPhone, "a customer with this phone already exists", map[string]any{
				"phone":                phone,
				"existing_customer_id": existing[i].ID.String(),
			})
		}
	}
	return nil
}

// ValidatePaymentMethod checks the payment method against the transaction
// type. A payment-type transaction collects on an existing due, so settling
// it on Credit would be circular and is rejected.
func ValidatePaymentMethod(tx entity.Transaction) error {
	if tx.PaymentMethod != "" && !tx.PaymentMethod.Valid() {
		return newErrorDetail(CodeInvalidPaymentMethod, "unknown payment method", map[string]any{
			"payment_method": string(tx.PaymentMethod),
		})
	}
	if tx.Type == enum.TransactionTypePayment && tx.PaymentMethod == enum.PaymentMethodCredit {
		return newError(CodePaymentMethodNotAllowed, "a due payment cannot be collected on credit")
	}
	return nil
}

// ValidateStoreCreditUse ensures the apply-store-credit flag is only set
// when the transaction carries a customer reference.
func ValidateStoreCreditUse(tx entity.Transaction) error {
	if tx.UseStoreCredit && tx.CustomerID == nil {
		return newError(CodeStoreCreditWithoutCustomer, "store credit requires a customer")
	}
	return nil
}

// expectedTotal recomputes the signed transaction total in minor units from
// its items, discounts, and tax rate. This recomputation, not the supplied
// total, is the source of truth.
func expectedTotal(tx entity.Transaction) (subtotal, discount, tax, total int64) {
	for _, item := range tx.Items {
		subtotal += item.SellPrice * int64(item.Quantity)
		discount += item.Discount
	}
	taxable := subtotal - discount
	tax = int64(math.Round(float64(taxable) * tx.TaxRate / 100))
	total = taxable + tax
	if tx.Type == enum.TransactionTypeReturn {
		total = -total
	}
	return subtotal, discount, tax, total
}

// ValidateFinancials checks the financial consistency of a sale or return:
// non-empty items, positive quantities, non-negative prices and tax rate,
// discounts bounded by gross, and a supplied total that matches the
// recomputed one within tolerance. For payment-type transactions only the
// amount's sign is checked.
func ValidateFinancials(tx entity.Transaction) error {
	if tx.Type == enum.TransactionTypePayment {
		if tx.Total <= 0 {
			return newError(CodeTotalMismatch, "payment amount must be positive")
		}
		return nil
	}

	if len(tx.Items) == 0 {
		return newError(CodeEmptyItems, "transaction has no items")
	}
	for _, item := range tx.Items {
		if item.Quantity <= 0 {
			return newErrorDetail(CodeInvalidItemQuantity, "item quantity must be positive", map[string]any{
				"item_id":  item.ProductID.String(),
				"quantity": item.Quantity,
			})
		}
		if item.SellPrice < 0 {
			return newErrorDetail(CodeInvalidItemPrice, "item price cannot be negative", map[string]any{
				"item_id":    item.ProductID.String(),
				"sell_price": FromMinor(item.SellPrice),
			})
		}
		if item.Discount < 0 {
			return newErrorDetail(CodeInvalidItemPrice, "item discount cannot be negative", map[string]any{
				"item_id":  item.ProductID.String(),
				"discount": FromMinor(item.Discount),
			})
		}
	}
	if tx.TaxRate < 0 {
		return newErrorDetail(CodeInvalidTaxRate, "tax rate cannot be negative", map[string]any{
			"tax_rate": tx.TaxRate,
		})
	}

	subtotal, discount, _, total := expectedTotal(tx)
	if discount > subtotal {
		return newErrorDetail(CodeDiscountExceedsGross, "discount exceeds item gross", map[string]any{
			"discount": FromMinor(discount),
			"gross":    FromMinor(subtotal),
		})
	}
	if !WithinTolerance(tx.Total, total) {
		return newErrorDetail(CodeTotalMismatch, "supplied total does not match computed total", map[string]any{
			"supplied": FromMinor(tx.Total),
			"expected": FromMinor(total),
		})
	}
	return nil
}

// netPurchased returns how many units of a product a specific customer has
// bought and not yet returned, computed from transaction history.
func netPurchased(customerID, productID uuid.UUID, history []entity.Transaction) int {
	net := 0
	for _, t := range history {
		if t.CustomerID == nil || *t.CustomerID != customerID {
			continue
		}
		for _, item := range t.Items {
			if item.ProductID != productID {
				continue
			}
			switch t.Type {
			case enum.TransactionTypeSale:
				net += item.Quantity
			case enum.TransactionTypeReturn:
				net -= item.Quantity
			}
		}
	}
	return net
}

// ValidateInventory checks the transaction's items against the catalog:
// products must exist, a sale must not exceed current stock, and a return
// must not exceed the product's cumulative units sold - nor, when a
// customer is attached, that customer's net purchases of the product.
// Quantities are summed per product first, so a product listed on several
// lines is bounded by its combined quantity.
func ValidateInventory(tx entity.Transaction, snap Snapshot) error {
	if tx.Type == enum.TransactionTypePayment {
		return nil
	}
	requested := make(map[uuid.UUID]int)
	var order []uuid.UUID
	for _, item := range tx.Items {
		if _, seen := requested[item.ProductID]; !seen {
			order = append(order, item.ProductID)
		}
		requested[item.ProductID] += item.Quantity
	}
	for _, productID := range order {
		quantity := requested[productID]
		product := snap.ProductByID(productID)
		if product == nil {
			return newErrorDetail(CodeUnknownProduct, "item references an unknown product", map[string]any{
				"item_id": productID.String(),
			})
		}
		switch tx.Type {
		case enum.TransactionTypeSale:
			if quantity > product.Stock {
				return newErrorDetail(CodeOversaleStock, "requested quantity exceeds stock", map[string]any{
					"item_id":            productID.String(),
					"requested_quantity": quantity,
					"available_stock":    product.Stock,
				})
			}
		case enum.TransactionTypeReturn:
			if quantity > product.TotalSold {
				return newErrorDetail(CodeReturnExceedsSold, "requested return exceeds units sold", map[string]any{
					"item_id":            productID.String(),
					"requested_quantity": quantity,
					"total_sold":         product.TotalSold,
				})
			}
			if tx.CustomerID != nil {
				net := netPurchased(*tx.CustomerID, productID, snap.Transactions)
				if quantity > net {
					return newErrorDetail(CodeReturnExceedsPurchases, "requested return exceeds customer's purchases", map[string]any{
						"item_id":            productID.String(),
						"requested_quantity": quantity,
						"net_purchased":      net,
					})
				}
			}
		}
	}
	return nil
}

// ValidateUpfrontOrder checks an upfront order payload: existing customer,
// non-empty description, positive quantity and cost, advance within bounds,
// and derived remaining/status fields that agree with the balance.
func ValidateUpfrontOrder(order entity.UpfrontOrder, customers []entity.Customer) error {
	found := false
	for i := range customers {
		if customers[i].ID == order.CustomerID {
			found = true
			break
		}
	}
	if !found {
		return newErrorDetail(CodeUnknownCustomer, "upfront order references an unknown customer", map[string]any{
			"customer_id": order.CustomerID.String(),
		})
	}
	if strings.TrimSpace(order.Description) == "" {
		return newError(CodeInvalidUpfrontOrder, "order description is required")
	}
	if order.Quantity <= 0 {
		return newErrorDetail(CodeInvalidUpfrontOrder, "order quantity must be positive", map[string]any{
			"quantity": order.Quantity,
		})
	}
	if order.TotalCost <= 0 {
		return newErrorDetail(CodeInvalidUpfrontOrder, "order total cost must be positive", map[string]any{
			"total_cost": FromMinor(order.TotalCost),
		})
	}
	if order.AdvancePaid < 0 || order.AdvancePaid > order.TotalCost+ToleranceMinor {
		return newErrorDetail(CodeInvalidUpfrontOrder, "advance paid must be between zero and the total cost", map[string]any{
			"advance_paid": FromMinor(order.AdvancePaid),
			"total_cost":   FromMinor(order.TotalCost),
		})
	}
	expectedRemaining := order.TotalCost - order.AdvancePaid
	if expectedRemaining < 0 {
		expectedRemaining = 0
	}
	if !WithinTolerance(order.Remaining, expectedRemaining) {
		return newErrorDetail(CodeInvalidUpfrontOrder, "remaining amount does not match the balance", map[string]any{
			"supplied": FromMinor(order.Remaining),
			"expected": FromMinor(expectedRemaining),
		})
	}
	expectedStatus := enum.UpfrontStatusUnpaid
	if expectedRemaining <= ToleranceMinor {
		expectedStatus = enum.UpfrontStatusCleared
	}
	if order.Status != expectedStatus {
		return newErrorDetail(CodeInvalidUpfrontOrder, "status does not match the balance", map[string]any{
			"supplied": string(order.Status),
			"expected": string(expectedStatus),
		})
	}
	return nil
}
