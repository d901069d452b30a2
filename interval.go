// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package langrt

import "fmt"

// IntervalStreamEOF is the synthetic stop value used by an interval that
// extends to end-of-stream.
const IntervalStreamEOF = -1

// Interval is a closed integer range [Start, Stop], Start <= Stop.
type Interval struct {
	Start int
	Stop  int
}

// NewInterval returns the closed interval [a, b].
func NewInterval(a, b int) Interval {
	return Interval{Start: a, Stop: b}
}

// Length returns the number of integers contained in the interval.
func (i Interval) Length() int {
	if i.Stop < i.Start {
		return 0
	}
	return i.Stop - i.Start + 1
}

// Contains reports whether item falls within the closed interval.
func (i Interval) Contains(item int) bool {
	return item >= i.Start && item <= i.Stop
}

// Adjacent reports whether other starts immediately after this interval
// ends (or vice versa), i.e. whether the two could merge into one
// contiguous interval without an and/or operation.
func (i Interval) Adjacent(other Interval) bool {
	return i.Stop+1 == other.Start || other.Stop+1 == i.Start
}

func (i Interval) String() string {
	if i.Start == i.Stop {
		return fmt.Sprintf("%d", i.Start)
	}
	return fmt.Sprintf("%d..%d", i.Start, i.Stop)
}
