package listing

import (
	"slices"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mewicrm/mewi/internal/debtor"
	"github.com/mewicrm/mewi/internal/status"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortBy returns a new slice ordered by cmp. The sort is stable, so
// records comparing equal keep their relative input order; descending
// order negates the comparator rather than reversing the result, which
// preserves that guarantee.
func SortBy[T any](records []T, cmp func(a, b T) int, dir Direction) []T {
	out := make([]T, len(records))
	copy(out, records)

	if dir == Desc {
		inner := cmp
		cmp = func(a, b T) int { return -inner(a, b) }
	}

	slices.SortStableFunc(out, cmp)

	return out
}

// Collators are not safe for concurrent use; pool them so sorting
// stays callable from independent request goroutines.
var collators = sync.Pool{
	New: func() any { return collate.New(language.French) },
}

// CompareStrings collates two strings with French rules, so accented
// names order next to their unaccented forms instead of after "z".
func CompareStrings(a, b string) int {
	c := collators.Get().(*collate.Collator)
	defer collators.Put(c)

	return c.CompareString(a, b)
}

// CompareTimes compares two timestamps as instants.
func CompareTimes(a, b time.Time) int {
	return a.Compare(b)
}

func CompareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}

	return 0
}

func CompareInts(a, b int) int {
	return a - b
}

// CompareRecoveryStatus orders by severity rank (blue < yellow <
// orange < critical), not alphabetically.
func CompareRecoveryStatus(a, b debtor.RecoveryStatus) int {
	return status.RecoveryRank(a) - status.RecoveryRank(b)
}

// ComparePriority orders by rank (low < medium < high < urgent).
func ComparePriority(a, b debtor.Priority) int {
	return status.PriorityRank(a) - status.PriorityRank(b)
}

// DebtorSortField names a sortable column of the debtor list screens.
type DebtorSortField string

const (
	ByName           DebtorSortField = "name"
	ByAmount         DebtorSortField = "amount"
	ByDaysOverdue    DebtorSortField = "daysOverdue"
	ByUpdatedAt      DebtorSortField = "updatedAt"
	ByPriority       DebtorSortField = "priority"
	ByRecoveryStatus DebtorSortField = "recoveryStatus"
)

// SortDebtors orders debtors by the given field. Unknown fields leave
// the input order untouched (every record compares equal).
func SortDebtors(debtors []*debtor.Debtor, field DebtorSortField, dir Direction) []*debtor.Debtor {
	var cmp func(a, b *debtor.Debtor) int

	switch field {
	case ByName:
		cmp = func(a, b *debtor.Debtor) int { return CompareStrings(a.Name, b.Name) }
	case ByAmount:
		cmp = func(a, b *debtor.Debtor) int { return CompareFloats(a.TotalAmount, b.TotalAmount) }
	case ByDaysOverdue:
		cmp = func(a, b *debtor.Debtor) int { return CompareInts(a.DaysOverdue, b.DaysOverdue) }
	case ByUpdatedAt:
		cmp = func(a, b *debtor.Debtor) int { return CompareTimes(a.UpdatedAt, b.UpdatedAt) }
	case ByPriority:
		cmp = func(a, b *debtor.Debtor) int { return ComparePriority(a.Priority, b.Priority) }
	case ByRecoveryStatus:
		cmp = func(a, b *debtor.Debtor) int { return CompareRecoveryStatus(a.RecoveryStatus, b.RecoveryStatus) }
	default:
		cmp = func(a, b *debtor.Debtor) int { return 0 }
	}

	return SortBy(debtors, cmp, dir)
}
