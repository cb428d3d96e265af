package bias

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/abelzach/KaroBuddy/internal/domain"
	"github.com/abelzach/KaroBuddy/pkg/formulas"
)

// Detection thresholds. Fixed by design, not user-configurable.
const (
	// DownturnThresholdPct defines a market downturn for panic-sell checks
	DownturnThresholdPct = -3.0
	// FOMOPercentile: buys above this percentile of the buy subset are flagged
	FOMOPercentile = 0.90
	// ConcentrationRatio: share of one description that signals concentration
	ConcentrationRatio = 0.5
	// ConcentrationMinCount: minimum asset-related transactions before the
	// concentration rule applies at all
	ConcentrationMinCount = 5
)

var (
	sellKeywords  = []string{"sell", "sold"}
	buyKeywords   = []string{"buy", "invest", "purchase"}
	assetKeywords = []string{"stock", "asset"}
)

// Detector scans a transaction feed for heuristic behavioral bias
// patterns. Each rule is independent and order-insensitive; a single
// transaction may trigger more than one rule.
type Detector struct {
	log zerolog.Logger
}

// NewDetector creates a new bias detector
func NewDetector(log zerolog.Logger) *Detector {
	return &Detector{
		log: log.With().Str("component", "bias_detector").Logger(),
	}
}

// Detect runs all detection rules. Empty input yields an empty (non-nil)
// list; marketData may be nil, which disables the panic-selling rule.
func (d *Detector) Detect(txs []domain.Transaction, marketData *domain.MarketData) []DetectedBias {
	detected := []DetectedBias{}
	if len(txs) == 0 {
		return detected
	}

	detected = append(detected, d.detectPanicSelling(txs, marketData)...)
	detected = append(detected, d.detectFOMOBuying(txs)...)
	detected = append(detected, d.detectConcentrationRisk(txs)...)

	if len(detected) > 0 {
		d.log.Debug().Int("count", len(detected)).Msg("Behavioral biases detected")
	}

	return detected
}

// detectPanicSelling flags sales made during a significant market downturn.
// A sale is a positive inflow whose description mentions selling. (The
// original codebase also carried an amount<0 variant of this filter, which
// under the inflow convention could never match a recorded sale.)
func (d *Detector) detectPanicSelling(txs []domain.Transaction, marketData *domain.MarketData) []DetectedBias {
	if marketData == nil || marketData.MarketChangePct >= DownturnThresholdPct {
		return nil
	}

	var found []DetectedBias
	for _, tx := range txs {
		if tx.Amount > 0 && containsAny(tx.Description, sellKeywords) {
			found = append(found, DetectedBias{
				BiasType:       PanicSelling,
				EventTimestamp: tx.Date,
				Description: fmt.Sprintf(
					"Potential panic sell detected: Sold assets during a market downturn of %.1f%%.",
					marketData.MarketChangePct),
				RelatedTransactionID: transactionID(tx),
			})
		}
	}
	return found
}

// detectFOMOBuying flags unusually large investment purchases: spending
// transactions with buy/invest/purchase wording whose absolute amount
// exceeds the 90th percentile of that same subset (relative to other
// investment buys, not to all expenses).
func (d *Detector) detectFOMOBuying(txs []domain.Transaction) []DetectedBias {
	var buys []domain.Transaction
	var amounts []float64
	for _, tx := range txs {
		if tx.Amount < 0 && containsAny(tx.Description, buyKeywords) {
			buys = append(buys, tx)
			amounts = append(amounts, math.Abs(tx.Amount))
		}
	}
	if len(buys) == 0 {
		return nil
	}

	cutoff := formulas.Percentile(amounts, FOMOPercentile)

	var found []DetectedBias
	for _, tx := range buys {
		if math.Abs(tx.Amount) > cutoff {
			found = append(found, DetectedBias{
				BiasType:       FOMOBuying,
				EventTimestamp: tx.Date,
				Description: fmt.Sprintf(
					"Potential FOMO buy detected: Unusually large investment of %.2f. Monitor if this was chasing high returns.",
					tx.Amount),
				RelatedTransactionID: transactionID(tx),
			})
		}
	}
	return found
}

// detectConcentrationRisk emits at most one finding: when more than half of
// the asset-related transactions share one exact description and there are
// more than ConcentrationMinCount of them in total.
func (d *Detector) detectConcentrationRisk(txs []domain.Transaction) []DetectedBias {
	counts := make(map[string]int)
	total := 0
	for _, tx := range txs {
		if containsAny(tx.Description, assetKeywords) {
			counts[tx.Description]++
			total++
		}
	}
	if total <= ConcentrationMinCount {
		return nil
	}

	mostCommon := 0
	for _, count := range counts {
		if count > mostCommon {
			mostCommon = count
		}
	}

	if float64(mostCommon)/float64(total) <= ConcentrationRatio {
		return nil
	}

	return []DetectedBias{{
		BiasType:             ConcentrationRisk,
		EventTimestamp:       time.Now().UTC().Format(time.RFC3339),
		Description:          "Potential Concentration Risk: Over 50% of recent transactions are related to a single asset type.",
		RelatedTransactionID: nil,
	}}
}

func containsAny(description string, keywords []string) bool {
	lower := strings.ToLower(description)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func transactionID(tx domain.Transaction) *string {
	if tx.ID == "" {
		return nil
	}
	id := tx.ID
	return &id
}
