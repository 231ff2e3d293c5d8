package auth

// TrustTier is the coarse bucket a director's numeric trust score maps to.
// Tiers are ordered: New < Rising < Trusted < Elite.
type TrustTier string

const (
	TierNew     TrustTier = "new"
	TierRising  TrustTier = "rising"
	TierTrusted TrustTier = "trusted"
	TierElite   TrustTier = "elite"
)

// Tier score cutoffs. Scores are clamped, so the mapping is total over all
// of int.
const (
	risingMinScore  = 40
	trustedMinScore = 70
	eliteMinScore   = 90
)

// DirectorCapabilities is the fixed capability record a trust tier grants.
type DirectorCapabilities struct {
	VisibilityWeight int  `json:"visibility_weight"`
	MaxActiveJobs    int  `json:"max_active_jobs"`
	CanMessageFirst  bool `json:"can_message_first"`
	AutoApproveJobs  bool `json:"auto_approve_jobs"`
}

// TierOf maps a trust score to its tier. Scores below zero behave as zero
// and scores above the top cutoff behave as the top cutoff, so the
// function is total and monotonic non-decreasing.
func TierOf(score int) TrustTier {
	switch {
	case score >= eliteMinScore:
		return TierElite
	case score >= trustedMinScore:
		return TierTrusted
	case score >= risingMinScore:
		return TierRising
	default:
		return TierNew
	}
}

// CapabilitiesOf returns the capability set for a tier. Unknown tier
// values fall back to the lowest tier.
func CapabilitiesOf(tier TrustTier) DirectorCapabilities {
	switch tier {
	case TierElite:
		return DirectorCapabilities{
			VisibilityWeight: 100,
			MaxActiveJobs:    50,
			CanMessageFirst:  true,
			AutoApproveJobs:  true,
		}
	case TierTrusted:
		return DirectorCapabilities{
			VisibilityWeight: 60,
			MaxActiveJobs:    20,
			CanMessageFirst:  true,
			AutoApproveJobs:  true,
		}
	case TierRising:
		return DirectorCapabilities{
			VisibilityWeight: 30,
			MaxActiveJobs:    5,
			CanMessageFirst:  true,
			AutoApproveJobs:  false,
		}
	default:
		return DirectorCapabilities{
			VisibilityWeight: 10,
			MaxActiveJobs:    2,
			CanMessageFirst:  false,
			AutoApproveJobs:  false,
		}
	}
}

// CapabilitiesForScore is the composition handlers actually use.
func CapabilitiesForScore(score int) DirectorCapabilities {
	return CapabilitiesOf(TierOf(score))
}
