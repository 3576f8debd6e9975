// Package report collects reconciliation outcomes into a set keyed by message
// text. Emitting the same text twice keeps the first entry only. Entries are
// kept in first-emission order, which carries no meaning beyond readability.
package report

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/agentstation/pedigreecheck/pkg/constants"
	"github.com/agentstation/pedigreecheck/pkg/errors"
	"github.com/agentstation/pedigreecheck/pkg/matcher"
)

// Report is a deduplicated set of outcomes. It is not safe for concurrent use.
type Report struct {
	entries []matcher.Outcome
	seen    map[string]struct{}
}

// New returns an empty report.
func New() *Report {
	return &Report{seen: make(map[string]struct{})}
}

// Add inserts o unless an entry with the same message exists. It reports
// whether o was inserted.
func (r *Report) Add(o matcher.Outcome) bool {
	if _, dup := r.seen[o.Message]; dup {
		return false
	}
	r.seen[o.Message] = struct{}{}
	r.entries = append(r.entries, o)
	return true
}

// Merge adds every outcome and returns how many were new.
func (r *Report) Merge(outcomes ...matcher.Outcome) int {
	added := 0
	for _, o := range outcomes {
		if r.Add(o) {
			added++
		}
	}
	return added
}

// Union adds the entries of other.
func (r *Report) Union(other *Report) int {
	if other == nil {
		return 0
	}
	return r.Merge(other.entries...)
}

// Len returns the number of distinct messages.
func (r *Report) Len() int { return len(r.entries) }

// Has reports whether message is in the report.
func (r *Report) Has(message string) bool {
	_, ok := r.seen[message]
	return ok
}

// Entries returns a copy of the outcomes.
func (r *Report) Entries() []matcher.Outcome {
	out := make([]matcher.Outcome, len(r.entries))
	copy(out, r.entries)
	return out
}

// Messages returns the message texts.
func (r *Report) Messages() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Message
	}
	return out
}

// Filter returns the outcomes accepted by keep.
func (r *Report) Filter(keep func(matcher.Outcome) bool) []matcher.Outcome {
	var out []matcher.Outcome
	for _, e := range r.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// CountBySeverity returns the number of entries per severity.
func (r *Report) CountBySeverity() map[matcher.Severity]int {
	counts := make(map[matcher.Severity]int)
	for _, e := range r.entries {
		counts[e.Severity]++
	}
	return counts
}

// CountByKind returns the number of entries per category and kind.
func (r *Report) CountByKind() map[matcher.Category]map[matcher.Kind]int {
	counts := make(map[matcher.Category]map[matcher.Kind]int)
	for _, e := range r.entries {
		if counts[e.Category] == nil {
			counts[e.Category] = make(map[matcher.Kind]int)
		}
		counts[e.Category][e.Kind]++
	}
	return counts
}

// WriteTo writes one message per line.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64
	for _, e := range r.entries {
		n, err := bw.WriteString(singleLine(e.Message) + "\n")
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, bw.Flush()
}

// WriteFile writes the report to path, replacing any existing file.
func (r *Report) WriteFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	if _, err := r.WriteTo(f); err != nil {
		_ = f.Close()
		return errors.WrapIO("write", path, err)
	}
	return errors.WrapIO("close", path, f.Close())
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "\n", " ")), " ")
}
