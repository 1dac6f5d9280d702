package scoringdomain

// FullHand is the number of card points in a deal, belote excluded.
const FullHand = 160

// ComputeGap returns how far a taking team landed from its contract.
//
// Announced bonus contracts that succeed carry no gap. A team that takes every
// trick on a point contract without announcing it is charged the distance to
// the bonus tier it should have called. Ordinary gaps are absolute.
func ComputeGap(contract Contract, achieved int, failed bool, label AchievedLabel) int {
	if contract <= NoContract || failed {
		return 0
	}
	if label.matches(contract) {
		return 0
	}
	if achieved == FullHand {
		if label == LabelCapot && contract < Capot {
			return int(Capot - contract)
		}
		if label == LabelGenerale && contract < Generale {
			return int(Generale - contract)
		}
	}
	return abs(achieved - int(contract))
}

// TheoreticalPoints is the value added to a team's theoretical ledger for the round.
func TheoreticalPoints(contract Contract, achieved, belote int, label AchievedLabel) int {
	if contract == NoContract {
		return 0
	}
	if achieved == FullHand && label.matches(contract) {
		return int(contract) + belote
	}
	if achieved == FullHand {
		if label == LabelCapot && contract < Capot {
			return int(Capot) + belote
		}
		if label == LabelGenerale && contract < Generale {
			return int(Generale) + belote
		}
	}
	return achieved + belote
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
