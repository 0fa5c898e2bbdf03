package infer

import "iter"

// IncrementalThreshold is the collection size above which ProfileValues may
// use checkpointed early exits. At or below the threshold the full scan
// always runs and is authoritative.
const IncrementalThreshold = 10_000

// ProfileOptions controls aggregate profiling.
type ProfileOptions struct {
	// UseIncrementalTypecheck enables the early-exit fast path for
	// collections larger than IncrementalThreshold. The fast path is a
	// performance approximation: on adversarial orderings it can disagree
	// with a full scan when a divergent value appears only after the last
	// checkpoint.
	UseIncrementalTypecheck bool
}

// DefaultProfileOptions enables the incremental fast path.
func DefaultProfileOptions() ProfileOptions {
	return ProfileOptions{UseIncrementalTypecheck: true}
}

// typeCounts tallies per-value classifications during a profiling scan.
type typeCounts struct {
	boolean  int
	integer  int
	float    int
	date     int
	dtime    int
	datetime int
	str      int
	empty    int
}

func (c *typeCounts) add(t DataType) {
	switch t {
	case TypeBoolean:
		c.boolean++
	case TypeInteger:
		c.integer++
	case TypeFloat:
		c.float++
	case TypeDate:
		c.date++
	case TypeTime:
		c.dtime++
	case TypeDatetime:
		c.datetime++
	case TypeString:
		c.str++
	case TypeEmpty:
		c.empty++
	}
}

func (c *typeCounts) numericTemporal() int {
	return c.integer + c.float + c.date + c.dtime + c.datetime
}

// ProfileValues infers the single datatype that best describes a whole
// collection of values.
//
// Conceptually it computes the set of distinct per-value datatypes ignoring
// EMPTY: an empty collection (or all-EMPTY) is EMPTY, exactly one distinct
// type is that type, and more than one is MIXED, with two refinements:
// integers mixed with floats collapse to FLOAT, and digits-only collections
// that incidentally match date or time layouts are forced to INTEGER.
//
// For collections larger than IncrementalThreshold with the incremental
// typecheck enabled, the scan may exit early at the 25%, 50%, and 75%
// checkpoints when the verdict can no longer plausibly change; a
// numeric/temporal value and a string value observed together short-circuit
// immediately to MIXED.
func ProfileValues(values []string, opts ProfileOptions) DataType {
	if len(values) == 0 {
		return TypeEmpty
	}

	incremental := opts.UseIncrementalTypecheck && len(values) > IncrementalThreshold

	var checkpoints map[int]struct{}
	if incremental {
		total := len(values)
		checkpoints = map[int]struct{}{
			total * 25 / 100: {},
			total * 50 / 100: {},
			total * 75 / 100: {},
		}
	}

	var counts typeCounts
	count := 0

	for _, value := range values {
		counts.add(Infer(value))
		count++

		if _, ok := checkpoints[count]; ok && incremental {
			if counts.numericTemporal() > 0 && counts.str > 0 {
				return TypeMixed
			}
			if early, ok := determineFromCounts(&counts, count, false); ok {
				return early
			}
		}
	}

	if result, ok := determineFromCounts(&counts, count, true); ok {
		return result
	}

	// All-digit special case: DATE/TIME/DATETIME/INTEGER candidates whose
	// raw text is digits-only (optional sign) resolve to INTEGER rather
	// than an incidental temporal interpretation.
	if counts.date+counts.dtime+counts.datetime+counts.integer+counts.empty == count &&
		(counts.date > 0 || counts.dtime > 0 || counts.datetime > 0 || counts.empty > 0) {
		allDigits := true
		for _, value := range values {
			if !IsEmptyLike(value) && !IsIntLike(value) {
				allDigits = false
				break
			}
		}
		if allDigits {
			return TypeInteger
		}
	}

	return TypeMixed
}

// ProfileSeq profiles a single-use sequence of values. The special-case
// detection needs a second pass, so the sequence is buffered into an owned
// slice before profiling.
func ProfileSeq(seq iter.Seq[string], opts ProfileOptions) DataType {
	var values []string
	for v := range seq {
		values = append(values, v)
	}
	return ProfileValues(values, opts)
}

// determineFromCounts resolves the aggregate type when the counts already
// identify it. allowSpecial gates the rules that require the full scan to
// have completed; checkpoint calls pass false.
func determineFromCounts(c *typeCounts, count int, allowSpecial bool) (DataType, bool) {
	switch {
	case c.empty == count:
		return TypeEmpty, true
	case c.boolean+c.empty == count:
		return TypeBoolean, true
	case c.str+c.empty == count:
		return TypeString, true
	}

	if !allowSpecial {
		return "", false
	}

	switch {
	case c.date+c.empty == count:
		return TypeDate, true
	case c.datetime+c.empty == count:
		return TypeDatetime, true
	case c.dtime+c.empty == count:
		return TypeTime, true
	case c.integer+c.empty == count:
		return TypeInteger, true
	case c.float+c.integer+c.empty == count:
		return TypeFloat, true
	}

	return "", false
}
