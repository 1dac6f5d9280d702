package scoringdomain

// Seats are numbered in table layout order; dealing goes around clockwise.
var dealerOrder = [4]int{0, 1, 3, 2}

func seatIndex(seat int) int {
	for i, s := range dealerOrder {
		if s == seat {
			return i
		}
	}
	return -1
}

// NextDealer returns the seat dealing after seat.
func NextDealer(seat int) int {
	i := seatIndex(seat)
	if i < 0 {
		return dealerOrder[0]
	}
	return dealerOrder[(i+1)%len(dealerOrder)]
}

// PreviousDealer returns the seat that dealt before seat.
func PreviousDealer(seat int) int {
	i := seatIndex(seat)
	if i < 0 {
		return dealerOrder[0]
	}
	return dealerOrder[(i+len(dealerOrder)-1)%len(dealerOrder)]
}

// Cutter is the seat that cuts the deck for dealer.
func Cutter(dealer int) int { return PreviousDealer(dealer) }

// Opener is the seat that speaks and plays first after dealer.
func Opener(dealer int) int { return NextDealer(dealer) }

func validSeat(seat int) bool { return seatIndex(seat) >= 0 }
