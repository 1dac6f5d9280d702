package scoringdomain

// RoundInput is what one team declares for a round.
type RoundInput struct {
	Contract Contract      `json:"contract"`
	Suit     Suit          `json:"suit,omitempty"`
	Achieved int           `json:"achieved"`
	Label    AchievedLabel `json:"label,omitempty"`
	Belote   int           `json:"belote"`
	Remark   Remark        `json:"remark,omitempty"`
}

// Takes reports whether the team holds the contract.
func (in RoundInput) Takes() bool { return in.Contract > NoContract }

// minimumMade is the floor under which any contract falls.
const minimumMade = 80

// IsFailed reports whether a taking team fell short of its contract.
// Teams without a contract never fail.
func IsFailed(in RoundInput) bool {
	if !in.Takes() {
		return false
	}
	if in.Achieved < minimumMade {
		return true
	}
	if in.Contract.IsBonus() {
		return in.Achieved < FullHand
	}
	return in.Achieved+in.Belote < int(in.Contract)
}

// Multiplier returns 4 when either side redoubled, 2 when either side doubled, 1 otherwise.
func Multiplier(a, b RoundInput) int {
	switch {
	case a.Remark == RemarkRedouble || b.Remark == RemarkRedouble:
		return 4
	case a.Remark == RemarkDouble || b.Remark == RemarkDouble:
		return 2
	default:
		return 1
	}
}

// AllocateRoundPoints returns the points own scores against opp, and whether
// own failed its contract. The other team's share is AllocateRoundPoints(opp, own).
func AllocateRoundPoints(own, opp RoundInput) (int, bool) {
	failed := IsFailed(own)
	mult := Multiplier(own, opp)

	switch {
	case !own.Takes() && !opp.Takes():
		return own.Belote, failed
	case !own.Takes():
		return defendingPoints(own, opp, mult), failed
	default:
		return takingPoints(own, opp, mult), failed
	}
}

// AllocateRound scores both teams of a round.
func AllocateRound(a, b RoundInput) (pointsA int, failedA bool, pointsB int, failedB bool) {
	pointsA, failedA = AllocateRoundPoints(a, b)
	pointsB, failedB = AllocateRoundPoints(b, a)
	return pointsA, failedA, pointsB, failedB
}

func defendingPoints(own, opp RoundInput, mult int) int {
	if opp.Contract.IsBonus() && madeFullHand(opp) {
		if own.Remark.IsDoubling() {
			return 0
		}
		return own.Belote
	}

	// The taker explicitly recorded 0 without conceding a capot.
	if opp.Label == LabelNotCapot && opp.Achieved == 0 {
		return own.Belote
	}

	if IsFailed(opp) {
		credit := failureCredit(opp.Contract)
		if own.Remark.IsDoubling() || opp.Remark.IsDoubling() {
			return mult*credit + FullHand
		}
		return FullHand + credit + own.Belote
	}

	if own.Remark.IsDoubling() {
		return own.Belote
	}

	return FullHand - opp.Achieved + own.Belote
}

func takingPoints(own, opp RoundInput, mult int) int {
	contract := int(own.Contract)

	if own.Contract.IsBonus() {
		if madeFullHand(own) {
			return mult*contract + own.Belote
		}
		return own.Belote
	}

	if opp.Label == LabelNotCapot && own.Achieved == FullHand {
		if opp.Remark.IsDoubling() {
			return mult*contract + FullHand + own.Belote
		}
		return contract + FullHand + own.Belote
	}

	if IsFailed(own) {
		return own.Belote
	}
	if opp.Remark.IsDoubling() {
		return mult*contract + own.Achieved + own.Belote
	}
	return contract + own.Achieved + own.Belote
}

// failureCredit is the contract value credited to defenders when the taker
// fails. Bonus contracts only credit half their value.
func failureCredit(c Contract) int {
	switch c {
	case Capot:
		return 250
	case Generale:
		return 500
	default:
		return int(c)
	}
}

// madeFullHand reports a genuine capot or generale: every trick, flagged as such.
func madeFullHand(in RoundInput) bool {
	return in.Achieved == FullHand && (in.Label == LabelCapot || in.Label == LabelGenerale)
}
