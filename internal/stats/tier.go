package stats

// IntelligentTieringTier — уровень доступа intelligent-tiering хранилища.
// Numeric values follow the provider's tier codes.
type IntelligentTieringTier int

const (
	TierFrequentAccess   IntelligentTieringTier = 0
	TierInfrequentAccess IntelligentTieringTier = 1
	TierArchiveDirect    IntelligentTieringTier = 4
)

// Tiers lists every access tier; totals are always derived by summing over
// this set, never fetched as a single metric.
var Tiers = []IntelligentTieringTier{TierFrequentAccess, TierInfrequentAccess, TierArchiveDirect}

func (t IntelligentTieringTier) Label() string {
	switch t {
	case TierFrequentAccess:
		return "frequent"
	case TierInfrequentAccess:
		return "infrequent"
	case TierArchiveDirect:
		return "archive-direct"
	}
	return "unknown"
}
