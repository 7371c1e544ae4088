package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/internal/domain/entity"
	"github.com/stockflowhq/stockflow-api/internal/domain/enum"
)

var (
	testUserID = uuid.New()
	testNow    = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
)

type testFixture struct {
	snap     Snapshot
	customer uuid.UUID
	soap     uuid.UUID
	oil      uuid.UUID
	ghee     uuid.UUID
}

func newFixture() *testFixture {
	f := &testFixture{
		customer: uuid.New(),
		soap:     uuid.New(),
		oil:      uuid.New(),
		ghee:     uuid.New(),
	}
	f.snap = Snapshot{
		Products: []entity.Product{
			{ID: f.soap, UserID: testUserID, Name: "Soap", Category: "Toiletries", SellPrice: 1743, Stock: 5},
			{ID: f.oil, UserID: testUserID, Name: "Oil", Category: "Grocery", SellPrice: 315, Stock: 5},
			{ID: f.ghee, UserID: testUserID, Name: "Ghee", Category: "Grocery", SellPrice: 1890, Stock: 3},
		},
		Customers: []entity.Customer{
			{ID: f.customer, UserID: testUserID, Name: "Asha", Phone: "9876543210"},
		},
	}
	return f
}

func (f *testFixture) sale(items []entity.TransactionItem, total int64, method enum.PaymentMethod, withCustomer bool) entity.Transaction {
	tx := entity.Transaction{
		ID:            uuid.New(),
		UserID:        testUserID,
		Date:          testNow,
		Type:          enum.TransactionTypeSale,
		Items:         items,
		Total:         total,
		PaymentMethod: method,
	}
	if withCustomer {
		id := f.customer
		tx.CustomerID = &id
	}
	return tx
}

func mustApply(t *testing.T, tx entity.Transaction, snap Snapshot) *Result {
	t.Helper()
	res, err := Apply(tx, snap, testNow)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	return res
}

// Walks one customer through the full credit lifecycle: a credit sale that
// opens a due, a partial payment, a return that clears the rest and spills
// into store credit, and a sale that consumes that credit.
func TestCreditLifecycle(t *testing.T) {
	f := newFixture()

	// Credit sale of 20.58 opens the due.
	res := mustApply(t, f.sale([]entity.TransactionItem{
		{ProductID: f.soap, Quantity: 1, SellPrice: 1743},
		{ProductID: f.oil, Quantity: 1, SellPrice: 315},
	}, 2058, enum.PaymentMethodCredit, true), f.snap)

	cust := res.Snapshot.CustomerByID(f.customer)
	if cust.TotalDue != 2058 {
		t.Fatalf("due after credit sale = %d, want 2058", cust.TotalDue)
	}
	if cust.TotalSpend != 2058 || cust.VisitCount != 1 {
		t.Fatalf("spend/visits = %d/%d, want 2058/1", cust.TotalSpend, cust.VisitCount)
	}
	if soap := res.Snapshot.ProductByID(f.soap); soap.Stock != 4 || soap.TotalSold != 1 {
		t.Fatalf("soap stock/sold = %d/%d, want 4/1", soap.Stock, soap.TotalSold)
	}

	// Partial payment of 19.00 brings the due to 1.58.
	payment := entity.Transaction{
		ID:            uuid.New(),
		UserID:        testUserID,
		Date:          testNow,
		Type:          enum.TransactionTypePayment,
		Total:         1900,
		PaymentMethod: enum.PaymentMethodCash,
	}
	id := f.customer
	payment.CustomerID = &id
	res = mustApply(t, payment, res.Snapshot)

	cust = res.Snapshot.CustomerByID(f.customer)
	if cust.TotalDue != 158 {
		t.Fatalf("due after payment = %d, want 158", cust.TotalDue)
	}

	// Return of 3.15 clears the due and credits the excess.
	mode := enum.ExcessModeStoreCredit
	ret := entity.Transaction{
		ID:               uuid.New(),
		UserID:           testUserID,
		Date:             testNow,
		Type:             enum.TransactionTypeReturn,
		CustomerID:       &id,
		Total:            -315,
		ReturnExcessMode: &mode,
		Items: []entity.TransactionItem{
			{ProductID: f.oil, Quantity: 1, SellPrice: 315},
		},
	}
	res = mustApply(t, ret, res.Snapshot)

	settlement := res.Transaction.Settlement
	if settlement == nil {
		t.Fatalf("return was not settlement-annotated")
	}
	if settlement.AppliedToDue != 158 || settlement.CreditedAmount != 157 || settlement.RefundedCash != 0 {
		t.Fatalf("settlement = %d/%d/%d, want 158/157/0",
			settlement.AppliedToDue, settlement.CreditedAmount, settlement.RefundedCash)
	}
	cust = res.Snapshot.CustomerByID(f.customer)
	if cust.TotalDue != 0 || cust.StoreCredit != 157 {
		t.Fatalf("due/credit after return = %d/%d, want 0/157", cust.TotalDue, cust.StoreCredit)
	}
	if oil := res.Snapshot.ProductByID(f.oil); oil.Stock != 5 || oil.TotalSold != 0 {
		t.Fatalf("oil stock/sold after return = %d/%d, want 5/0", oil.Stock, oil.TotalSold)
	}
	if len(res.LedgerEntries) != 1 {
		t.Fatalf("expected one ledger entry, got %d", len(res.LedgerEntries))
	}
	entry := res.LedgerEntries[0]
	if entry.Type != enum.LedgerEntryTypeCreditIssued || entry.Amount != 157 || entry.BalanceAfter != 157 {
		t.Fatalf("ledger entry = %s %d/%d, want credit_issued 157/157", entry.Type, entry.Amount, entry.BalanceAfter)
	}

	// Cash sale of 18.90 consumes the credit first.
	saleTx := f.sale([]entity.TransactionItem{
		{ProductID: f.ghee, Quantity: 1, SellPrice: 1890},
	}, 1890, enum.PaymentMethodCash, true)
	saleTx.UseStoreCredit = true
	res = mustApply(t, saleTx, res.Snapshot)

	if res.Transaction.StoreCreditApplied != 157 {
		t.Fatalf("store credit applied = %d, want 157", res.Transaction.StoreCreditApplied)
	}
	cust = res.Snapshot.CustomerByID(f.customer)
	if cust.StoreCredit != 0 || cust.TotalDue != 0 {
		t.Fatalf("credit/due after credited sale = %d/%d, want 0/0", cust.StoreCredit, cust.TotalDue)
	}
	if len(res.LedgerEntries) != 1 || res.LedgerEntries[0].Type != enum.LedgerEntryTypeCreditUsed {
		t.Fatalf("expected one credit_used entry")
	}
	if res.LedgerEntries[0].Amount != 157 || res.LedgerEntries[0].BalanceAfter != 0 {
		t.Fatalf("credit_used entry = %d/%d, want 157/0",
			res.LedgerEntries[0].Amount, res.LedgerEntries[0].BalanceAfter)
	}

	// History and ledger are newest-first.
	if len(res.Snapshot.Transactions) != 4 {
		t.Fatalf("expected 4 transactions in history, got %d", len(res.Snapshot.Transactions))
	}
	if res.Snapshot.Transactions[0].ID != saleTx.ID {
		t.Fatalf("newest transaction is not at the head of history")
	}
	if res.Snapshot.CreditLedger[0].Type != enum.LedgerEntryTypeCreditUsed {
		t.Fatalf("newest ledger entry is not at the head of the ledger")
	}
}

func TestOversaleRejected(t *testing.T) {
	f := newFixture()
	tx := f.sale([]entity.TransactionItem{
		{ProductID: f.soap, Quantity: 99, SellPrice: 1743},
	}, 99*1743, enum.PaymentMethodCash, false)

	_, err := Apply(tx, f.snap, testNow)
	assertCode(t, err, CodeOversaleStock)

	le := AsError(err)
	if le.Detail["available_stock"] != 5 || le.Detail["requested_quantity"] != 99 {
		t.Fatalf("detail = %v", le.Detail)
	}

	// Rejection leaves the input snapshot untouched.
	if soap := f.snap.ProductByID(f.soap); soap.Stock != 5 || soap.TotalSold != 0 {
		t.Fatalf("rejected sale mutated the snapshot: stock/sold = %d/%d", soap.Stock, soap.TotalSold)
	}
}

func TestReturnBeyondSoldRejected(t *testing.T) {
	f := newFixture()
	res := mustApply(t, f.sale([]entity.TransactionItem{
		{ProductID: f.soap, Quantity: 2, SellPrice: 1743},
	}, 2*1743, enum.PaymentMethodCash, false), f.snap)

	ret := entity.Transaction{
		ID:     uuid.New(),
		UserID: testUserID,
		Date:   testNow,
		Type:   enum.TransactionTypeReturn,
		Total:  -3 * 1743,
		Items: []entity.TransactionItem{
			{ProductID: f.soap, Quantity: 3, SellPrice: 1743},
		},
	}
	_, err := Apply(ret, res.Snapshot, testNow)
	assertCode(t, err, CodeReturnExceedsSold)
}

func TestPaymentOnCreditRejected(t *testing.T) {
	f := newFixture()
	id := f.customer
	tx := entity.Transaction{
		ID:            uuid.New(),
		UserID:        testUserID,
		Date:          testNow,
		Type:          enum.TransactionTypePayment,
		CustomerID:    &id,
		Total:         500,
		PaymentMethod: enum.PaymentMethodCredit,
	}
	_, err := Apply(tx, f.snap, testNow)
	assertCode(t, err, CodePaymentMethodNotAllowed)
}

func TestPaymentExceedingDueRejected(t *testing.T) {
	f := newFixture()
	res := mustApply(t, f.sale([]entity.TransactionItem{
		{ProductID: f.oil, Quantity: 1, SellPrice: 315},
	}, 315, enum.PaymentMethodCredit, true), f.snap)

	id := f.customer
	payment := entity.Transaction{
		ID:            uuid.New(),
		UserID:        testUserID,
		Date:          testNow,
		Type:          enum.TransactionTypePayment,
		CustomerID:    &id,
		Total:         400,
		PaymentMethod: enum.PaymentMethodCash,
	}
	_, err := Apply(payment, res.Snapshot, testNow)
	assertCode(t, err, CodePaymentExceedsDue)

	// One minor unit over the due is treated as drift and clamps to zero.
	payment.ID = uuid.New()
	payment.Total = 316
	res2 := mustApply(t, payment, res.Snapshot)
	if cust := res2.Snapshot.CustomerByID(f.customer); cust.TotalDue != 0 {
		t.Fatalf("due after near-exact payment = %d, want 0", cust.TotalDue)
	}
}

func TestPaymentRequiresCustomer(t *testing.T) {
	f := newFixture()
	tx := entity.Transaction{
		ID:            uuid.New(),
		UserID:        testUserID,
		Date:          testNow,
		Type:          enum.TransactionTypePayment,
		Total:         100,
		PaymentMethod: enum.PaymentMethodCash,
	}
	_, err := Apply(tx, f.snap, testNow)
	assertCode(t, err, CodeUnknownCustomer)
}

func TestStructuralRejections(t *testing.T) {
	f := newFixture()

	tx := f.sale([]entity.TransactionItem{{ProductID: f.oil, Quantity: 1, SellPrice: 315}}, 315, enum.PaymentMethodCash, false)
	tx.ID = uuid.Nil
	_, err := Apply(tx, f.snap, testNow)
	assertCode(t, err, CodeMissingTransactionID)

	tx = f.sale([]entity.TransactionItem{{ProductID: f.oil, Quantity: 1, SellPrice: 315}}, 315, enum.PaymentMethodCash, false)
	tx.Date = time.Time{}
	_, err = Apply(tx, f.snap, testNow)
	assertCode(t, err, CodeMissingTransactionDate)

	tx = f.sale([]entity.TransactionItem{{ProductID: f.oil, Quantity: 1, SellPrice: 315}}, 315, enum.PaymentMethodCash, false)
	tx.Type = enum.TransactionType("exchange")
	_, err = Apply(tx, f.snap, testNow)
	assertCode(t, err, CodeInvalidTransactionType)
}

func TestUnknownCustomerRejected(t *testing.T) {
	f := newFixture()
	tx := f.sale([]entity.TransactionItem{{ProductID: f.oil, Quantity: 1, SellPrice: 315}}, 315, enum.PaymentMethodCash, false)
	stranger := uuid.New()
	tx.CustomerID = &stranger
	_, err := Apply(tx, f.snap, testNow)
	assertCode(t, err, CodeUnknownCustomer)
}

func TestSuppliedSettlementCrossChecked(t *testing.T) {
	f := newFixture()
	res := mustApply(t, f.sale([]entity.TransactionItem{
		{ProductID: f.oil, Quantity: 1, SellPrice: 315},
	}, 315, enum.PaymentMethodCredit, true), f.snap)

	id := f.customer
	mode := enum.ExcessModeStoreCredit
	ret := entity.Transaction{
		ID:               uuid.New(),
		UserID:           testUserID,
		Date:             testNow,
		Type:             enum.TransactionTypeReturn,
		CustomerID:       &id,
		Total:            -315,
		ReturnExcessMode: &mode,
		Items: []entity.TransactionItem{
			{ProductID: f.oil, Quantity: 1, SellPrice: 315},
		},
		// Client computed against stale balances.
		Settlement: &entity.ReturnSettlement{AppliedToDue: 0, CreditedAmount: 315},
	}
	_, err := Apply(ret, res.Snapshot, testNow)
	assertCode(t, err, CodeSettlementMismatch)

	// A matching precomputed settlement passes.
	ret.ID = uuid.New()
	ret.Settlement = &entity.ReturnSettlement{AppliedToDue: 315}
	if _, err := Apply(ret, res.Snapshot, testNow); err != nil {
		t.Fatalf("matching settlement rejected: %v", err)
	}
}

func TestAnonymousReturnRefundsCash(t *testing.T) {
	f := newFixture()
	res := mustApply(t, f.sale([]entity.TransactionItem{
		{ProductID: f.oil, Quantity: 2, SellPrice: 315},
	}, 630, enum.PaymentMethodCash, false), f.snap)

	mode := enum.ExcessModeStoreCredit
	ret := entity.Transaction{
		ID:               uuid.New(),
		UserID:           testUserID,
		Date:             testNow,
		Type:             enum.TransactionTypeReturn,
		Total:            -315,
		ReturnExcessMode: &mode,
		Items: []entity.TransactionItem{
			{ProductID: f.oil, Quantity: 1, SellPrice: 315},
		},
	}
	res = mustApply(t, ret, res.Snapshot)
	settlement := res.Transaction.Settlement
	if settlement.RefundedCash != 315 || settlement.CreditedAmount != 0 {
		t.Fatalf("anonymous return settlement = cash %d credit %d, want 315/0",
			settlement.RefundedCash, settlement.CreditedAmount)
	}
	if len(res.LedgerEntries) != 0 {
		t.Fatalf("anonymous return should not write ledger entries")
	}
}

func TestDuplicateLinesSumAgainstStock(t *testing.T) {
	f := newFixture()

	// Ghee has 3 in stock; 2+2 across two lines must be rejected as 4.
	tx := f.sale([]entity.TransactionItem{
		{ProductID: f.ghee, Quantity: 2, SellPrice: 1890},
		{ProductID: f.ghee, Quantity: 2, SellPrice: 1890},
	}, 4*1890, enum.PaymentMethodCash, false)
	_, err := Apply(tx, f.snap, testNow)
	assertCode(t, err, CodeOversaleStock)
	if ghee := f.snap.ProductByID(f.ghee); ghee.Stock != 3 || ghee.TotalSold != 0 {
		t.Fatalf("rejected sale mutated the snapshot: stock/sold = %d/%d", ghee.Stock, ghee.TotalSold)
	}

	// Split lines that fit the stock apply their combined quantity.
	tx = f.sale([]entity.TransactionItem{
		{ProductID: f.soap, Quantity: 2, SellPrice: 1743},
		{ProductID: f.soap, Quantity: 2, SellPrice: 1743},
	}, 4*1743, enum.PaymentMethodCash, false)
	res := mustApply(t, tx, f.snap)
	if soap := res.Snapshot.ProductByID(f.soap); soap.Stock != 1 || soap.TotalSold != 4 {
		t.Fatalf("soap stock/sold = %d/%d, want 1/4", soap.Stock, soap.TotalSold)
	}

	// A return split across duplicate lines is bounded by units sold.
	ret := entity.Transaction{
		ID:     uuid.New(),
		UserID: testUserID,
		Date:   testNow,
		Type:   enum.TransactionTypeReturn,
		Total:  -5 * 1743,
		Items: []entity.TransactionItem{
			{ProductID: f.soap, Quantity: 3, SellPrice: 1743},
			{ProductID: f.soap, Quantity: 2, SellPrice: 1743},
		},
	}
	_, err = Apply(ret, res.Snapshot, testNow)
	assertCode(t, err, CodeReturnExceedsSold)
}

func TestMoveStockFloorsTotalSold(t *testing.T) {
	f := newFixture()
	snap := cloneSnapshot(f.snap)
	ret := entity.Transaction{
		Type: enum.TransactionTypeReturn,
		Items: []entity.TransactionItem{
			{ProductID: f.oil, Quantity: 2, SellPrice: 315},
		},
	}
	moveStock(ret, &snap)
	if oil := snap.ProductByID(f.oil); oil.Stock != 7 || oil.TotalSold != 0 {
		t.Fatalf("oil stock/sold = %d/%d, want 7/0", oil.Stock, oil.TotalSold)
	}
}

func TestCustomerLastVisitStamped(t *testing.T) {
	f := newFixture()

	// A sale stamps the visit with the processing time, not the posted date.
	tx := f.sale([]entity.TransactionItem{
		{ProductID: f.oil, Quantity: 1, SellPrice: 315},
	}, 315, enum.PaymentMethodCredit, true)
	tx.Date = testNow.Add(-48 * time.Hour)
	res := mustApply(t, tx, f.snap)
	cust := res.Snapshot.CustomerByID(f.customer)
	if cust.LastVisit == nil || !cust.LastVisit.Equal(testNow) {
		t.Fatalf("last visit after sale = %v, want %v", cust.LastVisit, testNow)
	}

	// A due payment counts as a visit stamp too, without touching the counter.
	id := f.customer
	payment := entity.Transaction{
		ID:            uuid.New(),
		UserID:        testUserID,
		Date:          testNow,
		Type:          enum.TransactionTypePayment,
		CustomerID:    &id,
		Total:         315,
		PaymentMethod: enum.PaymentMethodCash,
	}
	later := testNow.Add(time.Hour)
	res2, err := Apply(payment, res.Snapshot, later)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	cust = res2.Snapshot.CustomerByID(f.customer)
	if cust.LastVisit == nil || !cust.LastVisit.Equal(later) {
		t.Fatalf("last visit after payment = %v, want %v", cust.LastVisit, later)
	}
	if cust.VisitCount != 1 {
		t.Fatalf("visit count after payment = %d, want 1", cust.VisitCount)
	}
}

func TestApplyRecomputesBreakdown(t *testing.T) {
	f := newFixture()
	tx := f.sale([]entity.TransactionItem{
		{ProductID: f.oil, Quantity: 2, SellPrice: 315, Discount: 30},
	}, 630, enum.PaymentMethodCash, false)
	tx.TaxRate = 5
	tx.Total = 630 // 630 - 30 = 600, +5% tax = 630

	res := mustApply(t, tx, f.snap)
	got := res.Transaction
	if got.Subtotal != 630 || got.Discount != 30 || got.Tax != 30 || got.Total != 630 {
		t.Fatalf("breakdown = %d/%d/%d/%d, want 630/30/30/630",
			got.Subtotal, got.Discount, got.Tax, got.Total)
	}
	if got.InvoiceNo == "" {
		t.Fatalf("expected an invoice number to be assigned")
	}
}
