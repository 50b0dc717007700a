// Package hand ranks poker hands. Evaluate5 scores an exact five-card hand;
// BestOf7 searches every five-card subset of a larger set, which is how
// showdown combines two hole cards with the five community cards.
package hand

import (
	"sort"

	"github.com/pokerhub/holdem-room/internal/model"
)

// Hand categories, low to high. A Score's first element is one of these.
const (
	HighCard = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// Score ranks a hand: element 0 is the category, the remainder are kicker
// ranks in tie-break order. Scores compare lexicographically.
type Score []int

var categoryNames = [...]string{
	"high card",
	"pair",
	"two pair",
	"three of a kind",
	"straight",
	"flush",
	"full house",
	"four of a kind",
	"straight flush",
}

// Name returns the human-readable category, e.g. "full house".
func (s Score) Name() string {
	if len(s) == 0 || s[0] < 0 || s[0] >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[s[0]]
}

// Compare orders two scores lexicographically: positive if a beats b,
// negative if b beats a, zero on an exact tie. A missing kicker slot loses
// to any present one.
func Compare(a, b Score) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		av, bv := -1, -1
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if av != bv {
			return av - bv
		}
	}
	return 0
}

// Evaluate5 scores exactly five cards.
func Evaluate5(cards []model.Card) Score {
	ranks := make([]int, len(cards))
	for i, c := range cards {
		ranks[i] = int(c.Rank)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	flush := true
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			flush = false
			break
		}
	}

	counts := make(map[int]int, 5)
	for _, r := range ranks {
		counts[r]++
	}

	straight, straightHigh := isStraight(ranks, counts)

	// groups orders the distinct ranks by count descending, then rank
	// descending: exactly the kicker order for every paired category.
	groups := make([]int, 0, len(counts))
	for r := range counts {
		groups = append(groups, r)
	}
	sort.Slice(groups, func(i, j int) bool {
		if counts[groups[i]] != counts[groups[j]] {
			return counts[groups[i]] > counts[groups[j]]
		}
		return groups[i] > groups[j]
	})

	switch {
	case flush && straight:
		return Score{StraightFlush, straightHigh}
	case counts[groups[0]] == 4:
		return Score{FourOfAKind, groups[0], groups[1]}
	case counts[groups[0]] == 3 && counts[groups[1]] == 2:
		return Score{FullHouse, groups[0], groups[1]}
	case flush:
		return append(Score{Flush}, ranks...)
	case straight:
		return Score{Straight, straightHigh}
	case counts[groups[0]] == 3:
		return Score{ThreeOfAKind, groups[0], groups[1], groups[2]}
	case counts[groups[0]] == 2 && counts[groups[1]] == 2:
		return Score{TwoPair, groups[0], groups[1], groups[2]}
	case counts[groups[0]] == 2:
		return Score{Pair, groups[0], groups[1], groups[2], groups[3]}
	default:
		return append(Score{HighCard}, ranks...)
	}
}

// isStraight expects ranks sorted descending. The wheel (A-5-4-3-2) counts
// as a straight with high card five.
func isStraight(ranks []int, counts map[int]int) (bool, int) {
	if len(counts) != 5 {
		return false, 0
	}
	if ranks[0]-ranks[4] == 4 {
		return true, ranks[0]
	}
	if ranks[0] == int(model.Ace) && ranks[1] == int(model.Five) && ranks[1]-ranks[4] == 3 {
		return true, int(model.Five)
	}
	return false, 0
}

// Best returns the highest score among every five-card subset of cards.
// cards must hold at least five cards.
func Best(cards []model.Card) Score {
	if len(cards) == 5 {
		return Evaluate5(cards)
	}

	var best Score
	pick := make([]model.Card, 0, 5)
	var walk func(start int)
	walk = func(start int) {
		if len(pick) == 5 {
			score := Evaluate5(pick)
			if best == nil || Compare(score, best) > 0 {
				best = score
			}
			return
		}
		for i := start; i <= len(cards)-(5-len(pick)); i++ {
			pick = append(pick, cards[i])
			walk(i + 1)
			pick = pick[:len(pick)-1]
		}
	}
	walk(0)
	return best
}
