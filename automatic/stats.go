package automatic

import (
	"fmt"
	"strings"
	"sync"

	"github.com/aybabtme/uniplot/histogram"
)

// Stats aggregates self-play results across goroutines.
type Stats struct {
	mu       sync.Mutex
	redWins  int
	blueWins int
	draws    int
	lengths  []float64
}

func NewStats() *Stats {
	return &Stats{}
}

func (s *Stats) Add(result GameResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch result.Winner {
	case "red":
		s.redWins++
	case "blue":
		s.blueWins++
	default:
		s.draws++
	}
	s.lengths = append(s.lengths, float64(result.Turns))
}

func (s *Stats) Games() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.redWins + s.blueWins + s.draws
}

func (s *Stats) Results() (redWins, blueWins, draws int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.redWins, s.blueWins, s.draws
}

// String renders the win table and a histogram of game lengths.
func (s *Stats) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ss strings.Builder
	total := s.redWins + s.blueWins + s.draws
	fmt.Fprintf(&ss, "Games: %d  red wins: %d  blue wins: %d  draws: %d\n",
		total, s.redWins, s.blueWins, s.draws)
	if len(s.lengths) > 1 {
		ss.WriteString("Game length (turns):\n")
		hist := histogram.Hist(10, s.lengths)
		histogram.Fprint(&ss, hist, histogram.Linear(40))
	}
	return ss.String()
}
