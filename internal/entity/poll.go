package entity

import (
	"encoding/json"
	"fmt"
)

// Poll is a named question with an ordered set of options and per-option tallies.
type Poll struct {
	ID       string     `json:"id"`
	Creator  string     `json:"creator"`
	Question string     `json:"question"`
	Options  OptionList `json:"options"`
}

func (p Poll) Clone() Poll {
	cloned := p
	cloned.Options = p.Options.Clone()
	return cloned
}

// OptionList is an ordered mapping from option label to vote count.
// Order is insertion order and survives JSON round-trips; label lookup is O(1).
type OptionList struct {
	labels []string
	counts map[string]uint64
}

type optionPair struct {
	Label string `json:"label"`
	Count uint64 `json:"count"`
}

// NewOptionList builds a list with every count set to zero.
// Labels are unique within a poll; a repeated label keeps its first position.
func NewOptionList(labels []string) OptionList {
	list := OptionList{
		labels: make([]string, 0, len(labels)),
		counts: make(map[string]uint64, len(labels)),
	}
	for _, label := range labels {
		if _, exists := list.counts[label]; exists {
			continue
		}
		list.labels = append(list.labels, label)
		list.counts[label] = 0
	}
	return list
}

func (l OptionList) Len() int {
	return len(l.labels)
}

// Labels returns the option labels in insertion order.
func (l OptionList) Labels() []string {
	labels := make([]string, len(l.labels))
	copy(labels, l.labels)
	return labels
}

func (l OptionList) Has(label string) bool {
	_, ok := l.counts[label]
	return ok
}

func (l OptionList) Count(label string) (uint64, bool) {
	count, ok := l.counts[label]
	return count, ok
}

// Total is the sum of all option counts, i.e. the number of ballots cast in the poll.
func (l OptionList) Total() uint64 {
	var total uint64
	for _, count := range l.counts {
		total += count
	}
	return total
}

// Increment adds one vote to the given label. It reports false when the label
// is not part of the list, in which case nothing changes.
func (l *OptionList) Increment(label string) bool {
	if _, ok := l.counts[label]; !ok {
		return false
	}
	l.counts[label]++
	return true
}

// Decrement removes one vote from the given label. It reports false when the
// label is absent or its count is already zero, in which case nothing changes.
func (l *OptionList) Decrement(label string) bool {
	count, ok := l.counts[label]
	if !ok || count == 0 {
		return false
	}
	l.counts[label] = count - 1
	return true
}

func (l OptionList) Clone() OptionList {
	cloned := OptionList{
		labels: make([]string, len(l.labels)),
		counts: make(map[string]uint64, len(l.counts)),
	}
	copy(cloned.labels, l.labels)
	for label, count := range l.counts {
		cloned.counts[label] = count
	}
	return cloned
}

// MarshalJSON encodes the list as an ordered array of {label, count} pairs.
func (l OptionList) MarshalJSON() ([]byte, error) {
	pairs := make([]optionPair, 0, len(l.labels))
	for _, label := range l.labels {
		pairs = append(pairs, optionPair{Label: label, Count: l.counts[label]})
	}
	return json.Marshal(pairs)
}

func (l *OptionList) UnmarshalJSON(data []byte) error {
	var pairs []optionPair
	if err := json.Unmarshal(data, &pairs); err != nil {
		return fmt.Errorf("option list: %w", err)
	}

	list := OptionList{
		labels: make([]string, 0, len(pairs)),
		counts: make(map[string]uint64, len(pairs)),
	}
	for _, pair := range pairs {
		if _, exists := list.counts[pair.Label]; exists {
			return fmt.Errorf("option list: duplicate label %q", pair.Label)
		}
		list.labels = append(list.labels, pair.Label)
		list.counts[pair.Label] = pair.Count
	}

	*l = list
	return nil
}
