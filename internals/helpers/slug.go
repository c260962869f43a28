package helper

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

const defaultSlugLen = 100

// Slugify lowercases s, drops diacritics (ç → c, ã → a) and joins the remaining
// [a-z0-9] runs with single hyphens, keeping at most maxLen characters. It
// returns "" when nothing usable is left; callers pick their own fallback.
func Slugify(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = defaultSlugLen
	}
	var b strings.Builder
	gap := false
	for _, r := range norm.NFD.String(strings.ToLower(s)) {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if gap && b.Len() > 0 {
				if b.Len()+1 >= maxLen {
					return b.String()
				}
				b.WriteByte('-')
			}
			gap = false
			b.WriteRune(r)
			if b.Len() == maxLen {
				return b.String()
			}
		default:
			gap = true
		}
	}
	return b.String()
}

// SlugSpace is a column whose values must be unique (case-insensitive), within
// Scope when it is set.
type SlugSpace struct {
	Table  string
	Column string
	Scope  func(*gorm.DB) *gorm.DB
	MaxLen int
}

// Claim returns base, or base-N with the smallest free N >= 2. The unique index
// still decides under concurrent writers.
func (s SlugSpace) Claim(ctx context.Context, db *gorm.DB, base string) (string, error) {
	maxLen := s.MaxLen
	if maxLen <= 0 {
		maxLen = defaultSlugLen
	}
	base = TrimForSuffix(base, "", maxLen)

	// every candidate starts with the base cut for the longest suffix we try
	prefix := strings.ToLower(TrimForSuffix(base, "-99999", maxLen))
	q := db.WithContext(ctx).Table(s.Table)
	if s.Scope != nil {
		q = s.Scope(q)
	}
	var taken []string
	if err := q.Where(fmt.Sprintf("LOWER(%s) LIKE ?", s.Column), likeEscaper.Replace(prefix)+"%").
		Pluck(s.Column, &taken).Error; err != nil {
		return "", err
	}
	return nextFreeSlug(base, taken, maxLen), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func nextFreeSlug(base string, taken []string, maxLen int) string {
	used := make(map[string]bool, len(taken))
	for _, t := range taken {
		used[strings.ToLower(t)] = true
	}
	if !used[strings.ToLower(base)] {
		return base
	}
	for n := 2; ; n++ {
		suffix := "-" + strconv.Itoa(n)
		cand := TrimForSuffix(base, suffix, maxLen) + suffix
		if !used[strings.ToLower(cand)] {
			return cand
		}
	}
}

// TrimForSuffix cuts base so that base+suffix fits maxLen characters.
func TrimForSuffix(base, suffix string, maxLen int) string {
	if maxLen <= 0 {
		return base
	}
	keep := maxLen - len(suffix)
	if keep < 1 {
		return "x"
	}
	rs := []rune(base)
	if len(rs) > keep {
		rs = rs[:keep]
	}
	out := strings.TrimRight(string(rs), "-")
	if out == "" {
		out = "x"
	}
	return out
}
