package conventions

import (
	"fmt"

	"BidSnapper/internal/domain/models"
)

// shape is the single-hand summary the strategy tables key on.
type shape struct {
	hcp        int
	s, h, d, c int
}

func analyze(hand models.Hand) shape {
	var sh shape
	for _, card := range hand {
		sh.hcp += card.Rank.HCP()
	}
	l := hand.SuitLengths()
	sh.s, sh.h, sh.d, sh.c = l[0], l[1], l[2], l[3]
	return sh
}

func (sh shape) distribution() string {
	return fmt.Sprintf("%d%d%d%d", sh.s, sh.h, sh.d, sh.c)
}

func (sh shape) shdc() [4]int {
	return [4]int{sh.s, sh.h, sh.d, sh.c}
}

// balanced reports the classic no-trump patterns 4333, 4432 and 5332.
func (sh shape) balanced() bool {
	d := sh.shdc()
	for i := 0; i < len(d); i++ {
		for j := i + 1; j < len(d); j++ {
			if d[j] > d[i] {
				d[i], d[j] = d[j], d[i]
			}
		}
	}
	switch d {
	case [4]int{4, 3, 3, 3}, [4]int{4, 4, 3, 2}, [4]int{5, 3, 3, 2}:
		return true
	}
	return false
}

func (sh shape) fiveCardMajor() bool {
	return sh.s >= 5 || sh.h >= 5
}
