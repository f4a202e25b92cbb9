package match

import (
	"sort"
	"time"

	"github.com/xrash/smetrics"
)

// DefaultThreshold is the Jaro-Winkler similarity below which a fuzzy
// candidate is discarded and the row stays unmatched.
const DefaultThreshold = 0.88

// Kind classifies the outcome of matching one raw row against the roster.
type Kind int

const (
	// Matched means the row resolved to exactly one roster athlete.
	Matched Kind = iota
	// NameMismatch means a high-confidence candidate exists but the raw
	// name string differs from the stored format.
	NameMismatch
	// ClubMiss means the athlete matched but the club string does not
	// resolve to a known club.
	ClubMiss
	// Unmatched means no candidate reached the similarity threshold.
	Unmatched
)

func (k Kind) String() string {
	switch k {
	case Matched:
		return "MATCHED"
	case NameMismatch:
		return "NAME_MISMATCH"
	case ClubMiss:
		return "CLUB_MISS"
	default:
		return "UNMATCHED"
	}
}

// Classification is the matcher verdict for one row.
type Classification struct {
	Kind Kind
	// AthleteID is the matched athlete, or the best candidate for
	// NameMismatch. Zero when Unmatched.
	AthleteID uint
	// Similarity is the Jaro-Winkler score that produced a fuzzy verdict;
	// 1 for exact matches.
	Similarity float64
}

// Entry is one roster athlete in matcher form.
type Entry struct {
	ID        uint
	Name      string
	Birthdate *time.Time
	Gender    string
	ClubID    *uint
}

// Snapshot is an immutable roster index. Matching against the same snapshot
// is deterministic: the same input always yields the same classification,
// which keeps preview and commit runs consistent.
type Snapshot struct {
	entries []indexedEntry
	exact   map[string][]int
	clubs   map[string]uint
}

type indexedEntry struct {
	Entry
	norm string
}

// NewSnapshot indexes roster entries and the known club names.
// The matcher never creates athletes or clubs; it only reads the snapshot.
func NewSnapshot(entries []Entry, clubs map[string]uint) *Snapshot {
	s := &Snapshot{
		entries: make([]indexedEntry, 0, len(entries)),
		exact:   make(map[string][]int),
		clubs:   make(map[string]uint, len(clubs)),
	}

	for name, id := range clubs {
		s.clubs[normalizeClub(name)] = id
	}

	for _, e := range entries {
		s.entries = append(s.entries, indexedEntry{Entry: e, norm: NormalizeName(e.Name)})
	}
	// Stable order makes tie-breaks reproducible across snapshot builds.
	sort.Slice(s.entries, func(i, j int) bool { return s.entries[i].ID < s.entries[j].ID })

	for i, e := range s.entries {
		key := exactKey(e.norm, e.Birthdate, e.Gender)
		s.exact[key] = append(s.exact[key], i)
	}

	return s
}

// Birthdate returns the stored birthdate for a roster athlete, when known.
// Entries are kept sorted by ID, so this is a binary search.
func (s *Snapshot) Birthdate(athleteID uint) *time.Time {
	i := sort.Search(len(s.entries), func(i int) bool { return s.entries[i].ID >= athleteID })
	if i < len(s.entries) && s.entries[i].ID == athleteID {
		return s.entries[i].Birthdate
	}
	return nil
}

// ResolveClub maps a raw club string to a club id.
func (s *Snapshot) ResolveClub(club string) (uint, bool) {
	id, ok := s.clubs[normalizeClub(club)]
	return id, ok
}

// Classify matches one raw row against the snapshot.
//
// Exact (normalized name, birthdate, gender) lookup runs first. On a miss
// the fuzzy fallback compares names within the same gender and, when both
// the raw row and the candidate carry a birthdate, the same birthdate. A
// candidate with no stored birthdate stays eligible, so an incomplete
// roster record can still match and be reported as missing its birthdate
// downstream. The best candidate surfaces only at or above the threshold;
// ties break on higher score, then lower athlete ID. Matching never
// force-assigns below the threshold.
func (s *Snapshot) Classify(name string, birthdate *time.Time, gender, club string, threshold float64) Classification {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	norm := NormalizeName(name)

	if hits := s.exact[exactKey(norm, birthdate, gender)]; len(hits) > 0 {
		return s.withClubCheck(s.entries[hits[0]].ID, club, 1)
	}

	best := -1
	bestScore := 0.0
	for i, e := range s.entries {
		if e.Gender != gender {
			continue
		}
		if birthdate != nil && e.Birthdate != nil && !sameDate(e.Birthdate, birthdate) {
			continue
		}
		score := smetrics.JaroWinkler(norm, e.norm, 0.7, 4)
		if score > bestScore {
			best, bestScore = i, score
		}
	}

	if best < 0 || bestScore < threshold {
		return Classification{Kind: Unmatched}
	}

	candidate := s.entries[best]
	if candidate.norm == norm {
		// Same name under normalization; only the raw formatting differs
		// in ways normalization folds away. Treat as a match.
		return s.withClubCheck(candidate.ID, club, bestScore)
	}
	return Classification{Kind: NameMismatch, AthleteID: candidate.ID, Similarity: bestScore}
}

func (s *Snapshot) withClubCheck(athleteID uint, club string, score float64) Classification {
	if club != "" {
		if _, ok := s.ResolveClub(club); !ok {
			return Classification{Kind: ClubMiss, AthleteID: athleteID, Similarity: score}
		}
	}
	return Classification{Kind: Matched, AthleteID: athleteID, Similarity: score}
}

func exactKey(norm string, birthdate *time.Time, gender string) string {
	return norm + "|" + dateKey(birthdate) + "|" + gender
}

func dateKey(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format("2006-01-02")
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return false
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
