package faker

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"
)

// ErrExhausted is returned when the unique allocator cannot find a free
// value within the attempt bound. In practice this means the requested
// volume is far too large for the value space and the run is misconfigured.
var ErrExhausted = errors.New("unique value space exhausted")

const maxUniqueAttempts = 1000

// Source is a deterministic random value provider. All sampling for one
// generation run goes through a single Source constructed from the run seed,
// so a fixed seed and starting state reproduce the exact value sequence.
type Source struct {
	rand *rand.Rand
	used map[string]struct{}
}

func New(seed int64) *Source {
	return &Source{
		rand: rand.New(rand.NewSource(seed)),
		used: make(map[string]struct{}),
	}
}

// Reserve marks values as taken so the unique samplers never mint a
// colliding natural key. Callers load existing store keys here before
// generating.
func (s *Source) Reserve(values ...string) {
	for _, v := range values {
		s.used[v] = struct{}{}
	}
}

// IntBetween returns a uniform integer in [lo, hi].
func (s *Source) IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rand.Intn(hi-lo+1)
}

// Float64Between returns a uniform float in [lo, hi).
func (s *Source) Float64Between(lo, hi float64) float64 {
	return lo + s.rand.Float64()*(hi-lo)
}

// Chance reports true with the given probability.
func (s *Source) Chance(p float64) bool {
	return s.rand.Float64() < p
}

// Pick returns a uniform element of values.
func (s *Source) Pick(values []string) string {
	return values[s.rand.Intn(len(values))]
}

// Weighted returns an element of values under a categorical distribution.
// Weights do not have to sum to exactly one; they are normalized by total.
func (s *Source) Weighted(values []string, weights []float64) string {
	var total float64
	for _, w := range weights {
		total += w
	}
	r := s.rand.Float64() * total
	for i, w := range weights {
		r -= w
		if r < 0 {
			return values[i]
		}
	}
	return values[len(values)-1]
}

// SampleIndexes returns k distinct indexes from [0, n) in random order.
func (s *Source) SampleIndexes(n, k int) []int {
	if k > n {
		k = n
	}
	perm := s.rand.Perm(n)
	return perm[:k]
}

// TimeBetween returns a uniform instant in [start, end) at second precision.
func (s *Source) TimeBetween(start, end time.Time) time.Time {
	span := int(end.Sub(start) / time.Second)
	if span <= 0 {
		return start
	}
	return start.Add(time.Duration(s.rand.Intn(span)) * time.Second)
}

// Money rounds to two decimal places.
func Money(v float64) float64 {
	return math.Round(v*100) / 100
}

var (
	firstNames = []string{
		"John", "Jane", "Alice", "Bob", "Charlie", "Diana", "Eve", "Frank",
		"Grace", "Henry", "Ivy", "Jack", "Kara", "Liam", "Mona", "Noah",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
		"Davis", "Rodriguez", "Martinez", "Lopez", "Wilson", "Anderson", "Taylor",
	}
	countries = []string{
		"United States", "Germany", "France", "Brazil", "Japan", "India",
		"Canada", "Australia", "Spain", "Netherlands", "Sweden", "Poland",
	}
	cities = []string{
		"Springfield", "Riverton", "Fairview", "Oakdale", "Brookside",
		"Lakewood", "Hillcrest", "Maplewood", "Ashford", "Elmhurst",
	}
	words = []string{
		"alpha", "beta", "gamma", "delta", "vertex", "nimbus", "quartz",
		"ember", "cobalt", "onyx", "aurora", "zenith", "drift", "forge",
	}
	emailDomains = []string{"example.com", "test.com", "demo.com", "mail.com"}
)

func (s *Source) Name() string {
	return s.Pick(firstNames) + " " + s.Pick(lastNames)
}

func (s *Source) Country() string {
	return s.Pick(countries)
}

func (s *Source) City() string {
	return s.Pick(cities)
}

// Word returns a capitalized filler word, suitable for product names.
func (s *Source) Word() string {
	w := s.Pick(words)
	return strings.ToUpper(w[:1]) + w[1:]
}

// Email returns an address no previous call (or Reserve) has produced.
func (s *Source) Email() (string, error) {
	return s.unique(func() string {
		return fmt.Sprintf("%s.%s%d@%s",
			strings.ToLower(s.Pick(firstNames)),
			strings.ToLower(s.Pick(lastNames)),
			s.rand.Intn(100000),
			s.Pick(emailDomains),
		)
	})
}

// SKU returns a unique key of the form PREFIX-####-AA.
func (s *Source) SKU(prefix string) (string, error) {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	return s.unique(func() string {
		return fmt.Sprintf("%s-%04d-%c%c",
			prefix,
			s.rand.Intn(10000),
			letters[s.rand.Intn(len(letters))],
			letters[s.rand.Intn(len(letters))],
		)
	})
}

// unique retries gen until it yields an unseen value, failing explicitly
// instead of looping forever on a saturated value space.
func (s *Source) unique(gen func() string) (string, error) {
	for i := 0; i < maxUniqueAttempts; i++ {
		v := gen()
		if _, taken := s.used[v]; !taken {
			s.used[v] = struct{}{}
			return v, nil
		}
	}
	return "", fmt.Errorf("no free value after %d attempts: %w", maxUniqueAttempts, ErrExhausted)
}
