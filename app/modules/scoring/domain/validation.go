package scoringdomain

import "fmt"

// MaxCombinedBelote caps the belote declared by both teams in one round.
const MaxCombinedBelote = 80

// ValidateRound rejects input combinations the engine refuses to score.
func ValidateRound(a, b RoundInput) error {
	for _, in := range []RoundInput{a, b} {
		if err := validateInput(in); err != nil {
			return err
		}
	}

	if a.Takes() && b.Takes() {
		return ErrBothContracts
	}
	if a.Remark != RemarkNone && a.Remark == b.Remark {
		return fmt.Errorf("%w: %s", ErrSameRemark, a.Remark)
	}
	if a.Belote+b.Belote > MaxCombinedBelote {
		return fmt.Errorf("%w: %d", ErrBeloteCap, a.Belote+b.Belote)
	}
	return nil
}

func validateInput(in RoundInput) error {
	if !in.Contract.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidContract, in.Contract)
	}
	if in.Achieved < 0 || in.Achieved > FullHand || !in.Label.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidAchieved, in.Achieved)
	}
	if in.Belote < 0 || in.Belote%20 != 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBelote, in.Belote)
	}
	if !in.Remark.IsInput() {
		return fmt.Errorf("%w: %s", ErrInvalidRemark, in.Remark)
	}
	if !in.Suit.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidSuit, in.Suit)
	}
	return nil
}
