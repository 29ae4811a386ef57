package crowdestate

// Checked u64 arithmetic. Balances, supplies and vote counters must never
// wrap; callers translate a failed check into the operation's arithmetic
// error.

func checkedAdd(a, b uint64) (uint64, bool) {
	sum := a + b
	return sum, sum >= a
}

func checkedSub(a, b uint64) (uint64, bool) {
	return a - b, a >= b
}

func checkedMul(a, b uint64) (uint64, bool) {
	if a == 0 {
		return 0, true
	}
	prod := a * b
	return prod, prod/a == b
}
