package conventions

// Precision Club tables. Each table collects every bid the hand qualifies
// for and keeps the highest-precedence one; index 0 is the fallback when no
// rule fires.

const passBid = "Pass"

func pick(table map[int]string, bids []int) string {
	if len(bids) == 0 {
		return table[0]
	}
	best := bids[0]
	for _, b := range bids[1:] {
		if b > best {
			best = b
		}
	}
	return table[best]
}

func precOpening(sh shape) string {
	table := map[int]string{
		0: passBid,
		1: "1C", 2: "1D", 3: "1H", 4: "1S", 5: "1NT",
		6: "2C", 7: "2D", 8: "2H", 9: "2S", 10: "2NT",
		11: "3C", 12: "3D", 13: "3H", 14: "3S",
	}
	var bids []int

	if sh.hcp >= 15 && sh.hcp <= 17 && sh.balanced() && !sh.fiveCardMajor() {
		bids = append(bids, 5)
	}
	if sh.hcp >= 16 {
		// 2D shows the big balanced hand, 1C everything else 16+.
		if sh.hcp >= 22 && sh.hcp <= 23 && sh.balanced() {
			bids = append(bids, 7)
		} else {
			bids = append(bids, 1)
		}
	}
	if sh.hcp >= 11 && sh.hcp <= 15 {
		switch {
		case sh.s >= 5:
			bids = append(bids, 4)
		case sh.h >= 5:
			bids = append(bids, 3)
		case sh.c >= 6 || (sh.c == 5 && (sh.s == 4 || sh.h == 4)):
			bids = append(bids, 6)
		default:
			bids = append(bids, 2)
		}
	}
	if sh.hcp >= 6 && sh.hcp <= 10 {
		switch {
		case sh.s == 6 || sh.h == 6:
			bids = append(bids, 7)
		case sh.h >= 5 && (sh.d >= 5 || sh.c >= 5):
			bids = append(bids, 8)
		case sh.s >= 5 && (sh.h >= 5 || sh.d >= 5 || sh.c >= 5):
			bids = append(bids, 9)
		case sh.d >= 5 && sh.c >= 5:
			bids = append(bids, 10)
		case sh.c >= 7:
			bids = append(bids, 11)
		case sh.d >= 7:
			bids = append(bids, 12)
		case sh.h >= 7:
			bids = append(bids, 13)
		case sh.s >= 7:
			bids = append(bids, 14)
		}
	}
	return pick(table, bids)
}

func precRespond1C(sh shape) string {
	table := map[int]string{
		0: "4C",
		1: "1D", 2: "1H", 3: "1S", 4: "1NT", 5: "2C",
		6: "2D", 7: "2H", 8: "2S", 9: "2NT", 10: "3NT",
	}
	var bids []int

	// 1D is the negative response.
	if sh.hcp <= 7 {
		bids = append(bids, 1)
	}
	if sh.hcp >= 8 {
		if sh.h >= 5 {
			bids = append(bids, 2)
		}
		if sh.s >= 5 {
			bids = append(bids, 3)
		}
		if sh.c >= 5 {
			bids = append(bids, 5)
		}
		if sh.d >= 5 {
			bids = append(bids, 6)
		}
		switch sh.shdc() {
		case [4]int{4, 4, 4, 1}, [4]int{1, 4, 4, 4}:
			bids = append(bids, 7)
		case [4]int{4, 4, 1, 4}, [4]int{4, 1, 4, 4}:
			bids = append(bids, 8)
		}
	}
	if sh.balanced() && !sh.fiveCardMajor() {
		switch {
		case sh.hcp >= 8 && sh.hcp <= 10:
			bids = append(bids, 4)
		case sh.hcp >= 11 && sh.hcp <= 13:
			bids = append(bids, 9)
		case sh.hcp >= 14 && sh.hcp <= 15:
			bids = append(bids, 10)
		}
	}
	return pick(table, bids)
}

func precRespond1D(sh shape) string {
	table := map[int]string{
		0: passBid,
		1: "1H", 2: "1S", 3: "1NT", 4: "2C",
		5: "2D", 6: "2NT", 7: "3NT",
	}
	var bids []int

	if sh.h >= 4 {
		bids = append(bids, 1)
	}
	if sh.s >= 4 {
		bids = append(bids, 2)
	}
	if sh.hcp >= 12 && (sh.h < 4 || sh.s < 4) {
		if sh.c >= 5 {
			bids = append(bids, 4)
		}
		if sh.d >= 5 {
			bids = append(bids, 5)
		}
	}
	if sh.hcp <= 5 && (sh.h < 4 || sh.s < 4) {
		bids = append(bids, 0)
	}
	if len(bids) == 0 {
		switch {
		case sh.hcp >= 6 && sh.hcp <= 11:
			bids = append(bids, 3)
		case sh.hcp >= 12 && sh.hcp <= 13:
			bids = append(bids, 6)
		case sh.hcp >= 14 && sh.hcp <= 15:
			bids = append(bids, 7)
		}
	}
	return pick(table, bids)
}

func precRespond1H(sh shape) string {
	table := map[int]string{
		0: passBid,
		1: "1S", 2: "1NT", 3: "2C", 4: "2D", 5: "2H",
		6: "2NT", 7: "3H", 8: "3NT", 9: "4H", 10: "4NT",
	}
	var bids []int

	if sh.hcp >= 6 && sh.s >= 4 {
		bids = append(bids, 1)
	}
	if sh.balanced() && sh.h <= 2 {
		switch {
		case sh.hcp >= 6 && sh.hcp <= 10:
			bids = append(bids, 2)
		case sh.hcp >= 11 && sh.hcp <= 13:
			bids = append(bids, 6)
		case sh.hcp >= 14 && sh.hcp <= 15:
			bids = append(bids, 8)
		case sh.hcp >= 16:
			bids = append(bids, 10)
		}
	}
	if sh.hcp >= 12 {
		if sh.c >= 5 && sh.h <= 2 {
			bids = append(bids, 3)
		}
		if sh.d >= 5 && sh.h <= 2 {
			bids = append(bids, 4)
		}
	}
	// Raises with trump support.
	if sh.h >= 3 {
		switch {
		case sh.hcp >= 6 && sh.hcp <= 9:
			bids = append(bids, 5)
		case sh.hcp >= 10 && sh.hcp <= 11:
			bids = append(bids, 7)
		case sh.hcp >= 12 && sh.hcp <= 15:
			bids = append(bids, 9)
		}
	}
	return pick(table, bids)
}

func precRespond1S(sh shape) string {
	table := map[int]string{
		0: passBid,
		1: "1NT", 2: "2C", 3: "2D", 4: "2H", 5: "2S",
		6: "2NT", 7: "3S", 8: "3NT", 9: "4S", 10: "4NT",
	}
	var bids []int

	if sh.balanced() && sh.s <= 2 {
		switch {
		case sh.hcp >= 6 && sh.hcp <= 10:
			bids = append(bids, 1)
		case sh.hcp >= 11 && sh.hcp <= 13:
			bids = append(bids, 6)
		case sh.hcp >= 14 && sh.hcp <= 15:
			bids = append(bids, 8)
		case sh.hcp >= 16:
			bids = append(bids, 10)
		}
	}
	if sh.hcp >= 12 {
		if sh.c >= 5 && sh.s <= 2 {
			bids = append(bids, 2)
		}
		if sh.d >= 5 && sh.s <= 2 {
			bids = append(bids, 3)
		}
		if sh.h >= 5 && sh.s <= 2 {
			bids = append(bids, 4)
		}
	}
	if sh.s >= 3 {
		switch {
		case sh.hcp >= 6 && sh.hcp <= 9:
			bids = append(bids, 5)
		case sh.hcp >= 10 && sh.hcp <= 11:
			bids = append(bids, 7)
		case sh.hcp >= 12 && sh.hcp <= 15:
			bids = append(bids, 9)
		}
	}
	return pick(table, bids)
}

func precRespond1NT(sh shape) string {
	table := map[int]string{
		0: passBid,
		1: "2C", 2: "2D", 3: "2H", 4: "2S",
		5: "2NT", 6: "3C", 7: "3NT", 8: "4C",
	}
	var bids []int

	// Transfers: 2D shows hearts, 2H shows spades.
	if sh.h >= 5 {
		bids = append(bids, 2)
	}
	if sh.s >= 5 {
		bids = append(bids, 3)
	}
	if sh.hcp >= 8 {
		switch {
		case sh.h == 4 || sh.s == 4:
			bids = append(bids, 1)
		case sh.c >= 5:
			bids = append(bids, 4)
		case sh.d >= 5:
			bids = append(bids, 6)
		}
	}
	if len(bids) == 0 {
		switch {
		case sh.hcp >= 8 && sh.hcp <= 9:
			bids = append(bids, 4)
		case sh.hcp >= 10 && sh.hcp <= 15:
			bids = append(bids, 7)
		case sh.hcp >= 16:
			bids = append(bids, 8)
		}
	}
	return pick(table, bids)
}

func precRespond2C(sh shape) string {
	table := map[int]string{
		0: passBid,
		1: "2D", 2: "2H", 3: "2S", 4: "2NT",
		5: "3D", 6: "3NT", 7: "4NT",
	}
	var bids []int

	if sh.hcp >= 8 {
		switch {
		case sh.h == 4 || sh.s == 4:
			bids = append(bids, 1)
		case sh.h >= 5:
			bids = append(bids, 2)
		case sh.s >= 5:
			bids = append(bids, 3)
		}
	}
	if sh.h <= 3 || sh.s <= 3 {
		switch {
		case sh.hcp >= 11 && sh.d >= 6:
			bids = append(bids, 5)
		case sh.hcp >= 11 && sh.hcp <= 13:
			bids = append(bids, 4)
		case sh.hcp >= 14 && sh.hcp <= 15:
			bids = append(bids, 6)
		case sh.hcp >= 16:
			bids = append(bids, 7)
		}
	}
	return pick(table, bids)
}

// precRespond2D applies the rule of seventeen over the longer major.
func precRespond2D(sh shape) string {
	longMajor := sh.s
	if sh.h > sh.s {
		longMajor = sh.h
	}
	if sh.hcp+longMajor >= 17 {
		return "2NT"
	}
	return passBid
}

func precRespond2H(sh shape) string {
	if sh.hcp >= 8 {
		return "2S"
	}
	return passBid
}

func precRespond2S(sh shape) string {
	if sh.hcp >= 8 {
		return "2NT"
	}
	return passBid
}
