package cashflow

import (
	"time"

	"github.com/abelzach/KaroBuddy/internal/domain"
)

const dateLayout = "2006-01-02"

// amountSelector maps a signed transaction amount onto a series contribution
type amountSelector func(amount float64) float64

func netAmount(amount float64) float64 {
	return amount
}

func incomeAmount(amount float64) float64 {
	if amount > 0 {
		return amount
	}
	return 0
}

func expenseAmount(amount float64) float64 {
	if amount < 0 {
		return -amount
	}
	return 0
}

// dailySeries resamples transactions into one bucket per calendar day over
// the inclusive span between the earliest and latest dates, zero-filling
// days without transactions. Transactions with unparseable dates are
// skipped. Returns nil when nothing parses.
func dailySeries(txs []domain.Transaction, pick amountSelector) []float64 {
	type event struct {
		day    time.Time
		amount float64
	}

	events := make([]event, 0, len(txs))
	var first, last time.Time

	for _, tx := range txs {
		day, err := time.Parse(dateLayout, tx.Date)
		if err != nil {
			continue
		}
		if len(events) == 0 || day.Before(first) {
			first = day
		}
		if len(events) == 0 || day.After(last) {
			last = day
		}
		events = append(events, event{day: day, amount: pick(tx.Amount)})
	}

	if len(events) == 0 {
		return nil
	}

	span := int(last.Sub(first).Hours()/24) + 1
	buckets := make([]float64, span)
	for _, ev := range events {
		idx := int(ev.day.Sub(first).Hours() / 24)
		buckets[idx] += ev.amount
	}

	return buckets
}

// observedDays counts the buckets carrying actual observations. Zero-filled
// gap days are span, not data; two transactions ten days apart are still
// only two points of history.
func observedDays(series []float64) int {
	n := 0
	for _, v := range series {
		if v != 0 {
			n++
		}
	}
	return n
}
