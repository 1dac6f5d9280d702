package scoringdomain

import (
	"fmt"
	"strconv"
)

// Contract is the announced value of a round: 0 when the team did not take,
// 80 to 170 in steps of ten for point contracts, or one of the bonus tiers.
type Contract int

const (
	NoContract Contract = 0
	Capot      Contract = 500
	Generale   Contract = 1000

	minPointContract Contract = 80
	maxPointContract Contract = 170
)

// IsBonus reports whether c is Capot or Generale.
func (c Contract) IsBonus() bool { return c == Capot || c == Generale }

// IsPoint reports whether c is an ordinary point contract.
func (c Contract) IsPoint() bool {
	return c >= minPointContract && c <= maxPointContract && c%10 == 0
}

// IsValid reports whether c is one of the announceable values.
func (c Contract) IsValid() bool { return c == NoContract || c.IsBonus() || c.IsPoint() }

// Label is the short form shown in score tables.
func (c Contract) Label() string {
	switch c {
	case NoContract:
		return ""
	case Capot:
		return "Capot"
	case Generale:
		return "Générale"
	default:
		return strconv.Itoa(int(c))
	}
}

// Contracts lists every announceable value in ascending order.
func Contracts() []Contract {
	out := []Contract{NoContract}
	for c := minPointContract; c <= maxPointContract; c += 10 {
		out = append(out, c)
	}
	return append(out, Capot, Generale)
}

// Suit is the trump of a round. It never affects scoring.
type Suit string

const (
	SuitNone     Suit = ""
	SuitHearts   Suit = "hearts"
	SuitDiamonds Suit = "diamonds"
	SuitClubs    Suit = "clubs"
	SuitSpades   Suit = "spades"
	SuitNoTrump  Suit = "no-trump"
	SuitAllTrump Suit = "all-trump"
)

func (s Suit) IsValid() bool {
	switch s {
	case SuitNone, SuitHearts, SuitDiamonds, SuitClubs, SuitSpades, SuitNoTrump, SuitAllTrump:
		return true
	}
	return false
}

// AchievedLabel disambiguates a raw achieved value of 0 or 160.
type AchievedLabel string

const (
	LabelNone     AchievedLabel = ""
	LabelNotCapot AchievedLabel = "not-capot"
	LabelCapot    AchievedLabel = "capot"
	LabelGenerale AchievedLabel = "generale"
)

func (l AchievedLabel) IsValid() bool {
	switch l {
	case LabelNone, LabelNotCapot, LabelCapot, LabelGenerale:
		return true
	}
	return false
}

// matches reports whether l is the label a fulfilled bonus contract c requires.
func (l AchievedLabel) matches(c Contract) bool {
	return (c == Capot && l == LabelCapot) || (c == Generale && l == LabelGenerale)
}

// Remark is an announcement or a derived annotation attached to a team's row.
type Remark string

const (
	RemarkNone     Remark = ""
	RemarkDouble   Remark = "double"
	RemarkRedouble Remark = "redouble"

	RemarkMisdealBenefit Remark = "misdeal-benefit"
	RemarkMisdeal        Remark = "misdeal"

	RemarkWorthless        Remark = "worthless"
	RemarkUnannouncedCapot Remark = "unannounced-capot"
)

func (r Remark) IsValid() bool {
	switch r {
	case RemarkNone, RemarkDouble, RemarkRedouble, RemarkMisdealBenefit, RemarkMisdeal,
		RemarkWorthless, RemarkUnannouncedCapot:
		return true
	}
	return false
}

// IsInput reports whether a player may declare r when entering a round.
// The other remarks are assigned by the engine.
func (r Remark) IsInput() bool {
	switch r {
	case RemarkNone, RemarkDouble, RemarkRedouble, RemarkMisdealBenefit:
		return true
	}
	return false
}

// IsDoubling reports whether r is a double or a redouble.
func (r Remark) IsDoubling() bool { return r == RemarkDouble || r == RemarkRedouble }

// Display is the French wording used on score sheets.
func (r Remark) Display() string {
	switch r {
	case RemarkDouble:
		return "Coinche"
	case RemarkRedouble:
		return "Sur Coinche"
	case RemarkMisdealBenefit:
		return "Fausse donne (bénéficiaire)"
	case RemarkMisdeal:
		return "Fausse donne"
	case RemarkWorthless:
		return "Vous êtes nuls"
	case RemarkUnannouncedCapot:
		return "Capot non annoncé"
	default:
		return ""
	}
}

// Alert is the event category derived from a scored row.
type Alert string

const (
	AlertNone        Alert = ""
	AlertGrocery     Alert = "grocery"
	AlertFineGrocery Alert = "fine-grocery"
	AlertWholesale   Alert = "wholesale"
	AlertWorthless   Alert = "worthless"
	AlertLaChatte    Alert = "la-chatte"
)

func (a Alert) IsValid() bool {
	switch a {
	case AlertNone, AlertGrocery, AlertFineGrocery, AlertWholesale, AlertWorthless, AlertLaChatte:
		return true
	}
	return false
}

// IsGrocery reports whether a belongs to the gap-threshold family.
func (a Alert) IsGrocery() bool {
	return a == AlertGrocery || a == AlertFineGrocery || a == AlertWholesale
}

// Display is the French wording shown in the full-screen notification.
func (a Alert) Display() string {
	switch a {
	case AlertGrocery:
		return "Épicerie"
	case AlertFineGrocery:
		return "Épicerie Fine"
	case AlertWholesale:
		return "Commerce de Gros"
	case AlertWorthless:
		return "Vous êtes nuls"
	case AlertLaChatte:
		return "La Chatte"
	default:
		return ""
	}
}

// Side identifies one of the two teams.
type Side string

const (
	SideNone Side = ""
	SideA    Side = "A"
	SideB    Side = "B"
)

// Other returns the opposing side.
func (s Side) Other() Side {
	switch s {
	case SideA:
		return SideB
	case SideB:
		return SideA
	}
	return SideNone
}

// ParseSide accepts "A"/"B" in either case.
func ParseSide(v string) (Side, error) {
	switch v {
	case "A", "a":
		return SideA, nil
	case "B", "b":
		return SideB, nil
	}
	return SideNone, fmt.Errorf("unknown side %q", v)
}
