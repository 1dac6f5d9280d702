package scoringdomain

import (
	"strings"
	"time"

	"github.com/gosimple/unidecode"
)

// Gap thresholds of the grocery family.
const (
	GroceryGap     = 30
	FineGroceryGap = 40
	WholesaleGap   = 50
)

// FlashDuration is how long a full-screen notification stays up.
const FlashDuration = 3 * time.Second

// LaChatteDenylist holds accent-folded, lower-case fragments of team names for
// which the La Chatte notification never fires.
var LaChatteDenylist = []string{"pepite", "petit ageorges"}

// ClassifyRowAlert derives the alert of one team's half of a record.
// Only the team holding the contract can raise an alert.
func ClassifyRowAlert(record RoundRecord, side Side) Alert {
	row := record.Team(side)

	switch {
	case row.Contract <= NoContract:
		return AlertNone
	case row.Failed:
		return AlertNone
	case row.Contract.IsBonus() && madeFullHand(row.Input()):
		return AlertNone
	case row.Remark == RemarkWorthless || row.Remark == RemarkUnannouncedCapot:
		return AlertWorthless
	case row.Gap >= WholesaleGap:
		return AlertWholesale
	case row.Gap >= FineGroceryGap:
		return AlertFineGrocery
	case row.Gap >= GroceryGap:
		return AlertGrocery
	default:
		return AlertNone
	}
}

// DetectFlashAlert picks the single full-screen notification of a round, if any.
// Grocery-family alerts win over the others, but only flash when the taker's
// own tricks reached the contract.
func DetectFlashAlert(record RoundRecord, teamAName, teamBName string) (Alert, Side, bool) {
	taker := record.Taker()
	if taker == SideNone {
		return AlertNone, SideNone, false
	}

	row := record.Team(taker)
	if alert := ClassifyRowAlert(record, taker); alert.IsGrocery() && row.Achieved >= int(row.Contract) {
		return alert, taker, true
	}

	if sweptUnannounced(record, taker) {
		return AlertWorthless, taker, true
	}

	if row.Contract == Generale && madeFullHand(row.Input()) &&
		!deniedLaChatte(teamAName) && !deniedLaChatte(teamBName) {
		return AlertLaChatte, taker, true
	}

	return AlertNone, SideNone, false
}

// sweptUnannounced reports a taker that won every trick on a point contract
// while neither team marked the hand as not being a capot.
func sweptUnannounced(record RoundRecord, taker Side) bool {
	row := record.Team(taker)
	return row.Contract.IsPoint() && row.Achieved == FullHand &&
		row.Label != LabelNotCapot && record.Team(taker.Other()).Label != LabelNotCapot
}

func deniedLaChatte(teamName string) bool {
	folded := foldName(teamName)
	for _, token := range LaChatteDenylist {
		if strings.Contains(folded, token) {
			return true
		}
	}
	return false
}

// foldName lowers a name and strips its accents.
func foldName(name string) string {
	return strings.ToLower(unidecode.Unidecode(name))
}
