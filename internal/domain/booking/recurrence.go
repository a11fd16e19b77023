package booking

import (
	"errors"
	"time"
)

var (
	ErrInvalidFrequency    = errors.New("invalid recurrence frequency")
	ErrInvalidRuleBounds   = errors.New("recurrence rule cannot set both until and count")
	ErrInvalidRuleInterval = errors.New("recurrence interval must be at least 1")
	ErrWeekdaysNotAllowed  = errors.New("weekday set is only valid for weekly recurrence")
	ErrUnboundedExpansion  = errors.New("recurrence expansion requires a horizon")
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	default:
		return false
	}
}

// Rule describes how a booking repeats. Until and Count are mutually
// exclusive end bounds; a rule with neither is open-ended and can only be
// expanded against a caller-supplied horizon.
type Rule struct {
	Frequency Frequency
	Interval  int
	Weekdays  []time.Weekday
	Until     *time.Time
	Count     *int
}

func (r *Rule) Validate() error {
	if !r.Frequency.IsValid() {
		return ErrInvalidFrequency
	}
	if r.Interval < 1 {
		return ErrInvalidRuleInterval
	}
	if len(r.Weekdays) > 0 && r.Frequency != FrequencyWeekly {
		return ErrWeekdaysNotAllowed
	}
	if r.Until != nil && r.Count != nil {
		return ErrInvalidRuleBounds
	}
	if r.Count != nil && *r.Count < 1 {
		return ErrInvalidRuleBounds
	}
	return nil
}

func (r *Rule) IsOpenEnded() bool {
	return r.Until == nil && r.Count == nil
}

// Horizon caps an expansion. A zero End means no date bound; a
// non-positive MaxOccurrences means no occurrence cap. At least one bound
// must be effective or expansion fails.
type Horizon struct {
	End            time.Time
	MaxOccurrences int
}

// Expand materializes the rule into concrete occurrence intervals offset
// from the anchor. The anchor itself is the first candidate occurrence
// (filtered by the weekday set for weekly rules). Occurrences are ordered by
// start time and bounded by the tighter of the rule's own end bound and the
// horizon; an occurrence is included while its start does not pass the date
// bound.
func (r *Rule) Expand(anchor Interval, h Horizon) ([]Interval, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	maxCount := h.MaxOccurrences
	if r.Count != nil && (maxCount <= 0 || *r.Count < maxCount) {
		maxCount = *r.Count
	}

	endBound := h.End
	if r.Until != nil && (endBound.IsZero() || r.Until.Before(endBound)) {
		endBound = *r.Until
	}

	if maxCount <= 0 && endBound.IsZero() {
		return nil, ErrUnboundedExpansion
	}

	if r.Frequency == FrequencyWeekly && len(r.Weekdays) > 0 {
		return r.expandWeekdays(anchor, endBound, maxCount), nil
	}
	return r.expandUniform(anchor, endBound, maxCount), nil
}

// expandUniform handles fixed-stride frequencies: every occurrence is the
// anchor moved by i × interval units of calendar time.
func (r *Rule) expandUniform(anchor Interval, endBound time.Time, maxCount int) []Interval {
	var out []Interval
	for i := 0; ; i++ {
		var occ Interval
		switch r.Frequency {
		case FrequencyDaily:
			occ = anchor.ShiftDate(0, 0, i*r.Interval)
		case FrequencyWeekly:
			occ = anchor.ShiftDate(0, 0, i*r.Interval*7)
		case FrequencyMonthly:
			occ = anchor.ShiftDate(0, i*r.Interval, 0)
		case FrequencyYearly:
			occ = anchor.ShiftDate(i*r.Interval, 0, 0)
		}
		if !endBound.IsZero() && occ.Start().After(endBound) {
			break
		}
		out = append(out, occ)
		if maxCount > 0 && len(out) >= maxCount {
			break
		}
	}
	return out
}

// expandWeekdays handles weekly rules with an explicit weekday set: each
// included week contributes one occurrence per selected weekday, at the
// anchor's clock time.
func (r *Rule) expandWeekdays(anchor Interval, endBound time.Time, maxCount int) []Interval {
	selected := make(map[time.Weekday]struct{}, len(r.Weekdays))
	for _, wd := range r.Weekdays {
		selected[wd] = struct{}{}
	}

	var out []Interval
	for week := 0; ; week += r.Interval {
		weekExhausted := false
		for day := 0; day < 7; day++ {
			occ := anchor.ShiftDate(0, 0, week*7+day)
			if !endBound.IsZero() && occ.Start().After(endBound) {
				weekExhausted = true
				break
			}
			if _, ok := selected[occ.Start().Weekday()]; !ok {
				continue
			}
			out = append(out, occ)
			if maxCount > 0 && len(out) >= maxCount {
				return out
			}
		}
		if weekExhausted {
			return out
		}
	}
}
