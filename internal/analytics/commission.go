package analytics

import (
	"sort"
	"strings"

	"fieldsales-backend/internal/domain"
)

// Commission tier thresholds in cumulative units sold, highest first.
var tierThresholds = []struct {
	Units int
	Tier  domain.CommissionTier
}{
	{2000, domain.TierElite},
	{1500, domain.TierSenior},
	{1000, domain.TierConfirmed},
	{700, domain.TierIntermediate},
}

// TopTierUnits is the objective: at or above it no next tier remains.
const TopTierUnits = 2000

// SalespersonStats is one commission leaderboard row.
type SalespersonStats struct {
	Email            string
	Name             string
	Revenue          float64
	Units            int
	Tier             domain.CommissionTier
	UnitsToNext      int
	ObjectiveReached bool
}

// CommissionRanking aggregates purchases per salesperson over the
// pre-filtered visit set, sorted by revenue descending. Units fall back
// to 1 per purchase when the quantity is missing; revenue is the straight
// sum of prices.
func CommissionRanking(visits []domain.Visit) []SalespersonStats {
	byEmail := make(map[string]*SalespersonStats)
	for _, v := range visits {
		if !IsPurchase(v) {
			continue
		}
		email := strings.ToLower(strings.TrimSpace(v.SalespersonEmail))
		if email == "" {
			continue
		}
		s, ok := byEmail[email]
		if !ok {
			s = &SalespersonStats{Email: email, Name: displayName(email)}
			byEmail[email] = s
		}
		s.Revenue += EffectivePrice(v)
		s.Units += PurchaseUnits(v)
	}

	out := make([]SalespersonStats, 0, len(byEmail))
	for _, s := range byEmail {
		s.Tier = TierFor(s.Units)
		s.UnitsToNext, s.ObjectiveReached = UnitsToNextTier(s.Units)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Email < out[j].Email
	})
	return out
}

// TierFor maps cumulative units to the discrete commission tier.
func TierFor(units int) domain.CommissionTier {
	for _, t := range tierThresholds {
		if units >= t.Units {
			return t.Tier
		}
	}
	return domain.TierNone
}

// UnitsToNextTier returns the units remaining to reach the next tier, or
// true when the top objective is already reached.
func UnitsToNextTier(units int) (remaining int, reached bool) {
	if units >= TopTierUnits {
		return 0, true
	}
	for i := len(tierThresholds) - 1; i >= 0; i-- {
		if units < tierThresholds[i].Units {
			return tierThresholds[i].Units - units, false
		}
	}
	return 0, true
}

// displayName derives a human label from the email local-part.
func displayName(email string) string {
	local := email
	if i := strings.IndexByte(email, '@'); i >= 0 {
		local = email[:i]
	}
	local = strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(local)
	words := strings.Fields(local)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
