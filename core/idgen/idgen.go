// Package idgen derives row identifiers from the identifiers already in a table.
package idgen

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NextID returns prefix + the next number after the highest numbered id that starts with prefix,
// zero padded to 3 digits: ["SES001", "SES005"] -> "SES006".
// Non-digit characters are dropped before parsing; an id without digits counts as 0.
func NextID(ids []string, prefix string) string {
	return format(prefix, maxNumber(ids, prefix)+1)
}

// Sequence hands out consecutive identifiers for a batch of rows that are written together.
// It is seeded once from the table, so rows of the same batch never collide.
type Sequence struct {
	prefix string
	last   int64
}

func NewSequence(ids []string, prefix string) *Sequence {
	return &Sequence{prefix: prefix, last: maxNumber(ids, prefix)}
}

func (s *Sequence) Next() string {
	s.last++
	return format(s.prefix, s.last)
}

// NewClassID builds "<course>-K<yy><MM>-<nn>" where nn follows the highest sequence
// already used by the course for that month: "IE-6.5-K2508-01" -> "IE-6.5-K2508-02".
func NewClassID(ids []string, courseID string, startDate time.Time) string {
	prefix := fmt.Sprintf("%s-K%s", courseID, startDate.Format("0601"))

	var maxSeq int64
	for _, id := range ids {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		parts := strings.Split(id, "-")
		if seq, err := strconv.ParseInt(parts[len(parts)-1], 10, 64); err == nil && seq > maxSeq {
			maxSeq = seq
		}
	}
	return fmt.Sprintf("%s-%02d", prefix, maxSeq+1)
}

func maxNumber(ids []string, prefix string) int64 {
	var max int64
	for _, id := range ids {
		if id == "" || !strings.HasPrefix(id, prefix) {
			continue
		}
		if n := digits(id); n > max {
			max = n
		}
	}
	return max
}

func digits(id string) int64 {
	var b strings.Builder
	for _, r := range id {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func format(prefix string, n int64) string {
	return fmt.Sprintf("%s%03d", prefix, n)
}
