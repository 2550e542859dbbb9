package schedule

// Outcome reports whether a transition was applied. A rejected transition is
// a normal value, not an error: the collection is returned unchanged and the
// caller decides how to surface the message.
type Outcome struct {
	Applied bool   `json:"applied"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

const (
	CodeAmountUpdated      = "AMOUNT_UPDATED"
	CodeInstallmentAdded   = "INSTALLMENT_ADDED"
	CodeInstallmentRemoved = "INSTALLMENT_REMOVED"
	CodeOrderUpdated       = "ORDER_UPDATED"

	CodePaymentNotFound   = "PAYMENT_NOT_FOUND"
	CodeNotAnInstallment  = "NOT_AN_INSTALLMENT"
	CodeCannotRemoveLast  = "CANNOT_REMOVE_LAST"
	CodeIndexOutOfRange   = "INDEX_OUT_OF_RANGE"
	CodeReorderNotAllowed = "REORDER_NOT_ALLOWED"
)

func applied(code, msg string) Outcome {
	return Outcome{Applied: true, Code: code, Message: msg}
}

func rejected(code, msg string) Outcome {
	return Outcome{Applied: false, Code: code, Message: msg}
}

// EditAmount sets one installment's amount and rebalances the others so the
// installment total equals fullPrice - deposit - prepayment exactly.
//
// Unlike generation, which tolerates bounded rounding drift, a manual edit
// conserves the total to the unit: the difference is spread over the other
// installments by floor division and the division leftover lands on the
// edited row. Rows that would go negative are clamped to zero with their
// excess folded back into the leftover.
func EditAmount(payments []Payment, fullPrice int64, id string, newAmount int64) ([]Payment, Outcome) {
	idx := findByID(payments, id)
	if idx < 0 {
		return payments, rejected(CodePaymentNotFound, "payment not found")
	}
	if payments[idx].Kind != KindInstallment {
		return payments, rejected(CodeNotAnInstallment, "only installment amounts can be edited")
	}
	if newAmount < 0 {
		newAmount = 0
	}

	out := clone(payments)
	remaining := Remaining(out, fullPrice)

	others := make([]int, 0, len(out))
	otherSum := int64(0)
	for i := range out {
		if out[i].Kind == KindInstallment && i != idx {
			others = append(others, i)
			otherSum += out[i].Amount
		}
	}

	if newAmount >= remaining {
		out[idx].Amount = remaining
		for _, i := range others {
			out[i].Amount = 0
		}
		return out, applied(CodeAmountUpdated, "amount updated")
	}

	out[idx].Amount = newAmount
	diff := remaining - (newAmount + otherSum)

	if len(others) == 0 {
		// Sole installment carries the whole remainder.
		out[idx].Amount = remaining
		return out, applied(CodeAmountUpdated, "amount updated")
	}

	share, leftover := floorDiv(diff, int64(len(others)))
	for _, i := range others {
		next := out[i].Amount + share
		if next < 0 {
			leftover += next
			next = 0
		}
		out[i].Amount = next
	}

	out[idx].Amount += leftover
	if out[idx].Amount < 0 {
		out[idx].Amount = 0
	}

	return out, applied(CodeAmountUpdated, "amount updated")
}

// AddInstallment appends an installment one month after the last one (or one
// month after the prepayment if none exist) and then levels all installments
// to floor(remaining / count). No leftover correction, same as generation.
func AddInstallment(payments []Payment, fullPrice int64, newID func() string) ([]Payment, Outcome) {
	if newID == nil {
		newID = NewPaymentID
	}

	out := clone(payments)

	var last *Payment
	for i := range out {
		if out[i].Kind == KindInstallment {
			last = &out[i]
		}
	}

	date, ok := prepaymentDate(out)
	if !ok && last == nil {
		return payments, rejected(CodePaymentNotFound, "no prepayment to anchor the new installment")
	}
	if last != nil {
		date = monthsAfter(last.Date, 1)
	} else {
		date = firstInstallmentDate(date)
	}

	out = append(out, Payment{
		ID:   newID(),
		Kind: KindInstallment,
		Day:  date.Day(),
		Date: date,
	})

	levelInstallments(out, fullPrice)
	return out, applied(CodeInstallmentAdded, "installment added")
}

// RemoveInstallment drops one installment and levels the survivors. The last
// remaining installment cannot be removed.
func RemoveInstallment(payments []Payment, fullPrice int64, id string) ([]Payment, Outcome) {
	idx := findByID(payments, id)
	if idx < 0 {
		return payments, rejected(CodePaymentNotFound, "payment not found")
	}
	if payments[idx].Kind != KindInstallment {
		return payments, rejected(CodeNotAnInstallment, "only installments can be removed")
	}
	if InstallmentCount(payments) <= 1 {
		return payments, rejected(CodeCannotRemoveLast, "cannot remove the last installment")
	}

	out := make([]Payment, 0, len(payments)-1)
	out = append(out, payments[:idx]...)
	out = append(out, payments[idx+1:]...)

	levelInstallments(out, fullPrice)
	return out, applied(CodeInstallmentRemoved, "installment removed")
}

// ReorderGate decides whether a particular move is allowed. Which kinds may
// be dragged or displaced varies per host UI, so the rule is injected rather
// than fixed here. A nil gate allows every in-range move.
type ReorderGate func(payments []Payment, oldIndex, newIndex int) bool

// Reorder moves one element of the full sequence and re-dates every
// installment from its new ordinal position. Amounts are not touched: order
// determines dates, never money.
func Reorder(payments []Payment, oldIndex, newIndex int, gate ReorderGate) ([]Payment, Outcome) {
	n := len(payments)
	if oldIndex < 0 || oldIndex >= n || newIndex < 0 || newIndex >= n {
		return payments, rejected(CodeIndexOutOfRange, "index out of range")
	}
	if gate != nil && !gate(payments, oldIndex, newIndex) {
		return payments, rejected(CodeReorderNotAllowed, "this payment cannot be moved")
	}

	out := clone(payments)
	moved := out[oldIndex]
	out = append(out[:oldIndex], out[oldIndex+1:]...)
	out = append(out[:newIndex], append([]Payment{moved}, out[newIndex:]...)...)

	renumberInstallmentDates(out)
	return out, applied(CodeOrderUpdated, "order updated")
}

func levelInstallments(payments []Payment, fullPrice int64) {
	count := InstallmentCount(payments)
	if count == 0 {
		return
	}
	per := Remaining(payments, fullPrice) / int64(count)
	for i := range payments {
		if payments[i].Kind == KindInstallment {
			payments[i].Amount = per
		}
	}
}

// floorDiv divides rounding toward negative infinity and returns the
// non-negative remainder, so share*b + rem == a always holds.
func floorDiv(a, b int64) (share, rem int64) {
	share = a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		share--
	}
	rem = a - share*b
	return share, rem
}

func clone(payments []Payment) []Payment {
	out := make([]Payment, len(payments))
	copy(out, payments)
	return out
}
