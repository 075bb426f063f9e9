// Package batch implements the batch drivers of the scanning engine.
//
// A batch call processes an ordered text.Source and returns one result per element, in input
// order. Missing elements yield the call's missing marker and empty elements its empty result,
// without invoking any scanner. Any scanner failure aborts the whole call: the driver returns
// a nil result and an error wrapping text.ErrAllocation or text.ErrScanInvariant.
//
// Scan state (filters, vocabulary, materialized terms, buffers) is created per call and
// passed explicitly, so concurrent calls never share it.
package batch

import (
	"strconv"
	"time"

	"github.com/gomlx/go-textscan/text"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Count is the result of a counting driver for one element.
type Count struct {
	N       int
	Missing bool
}

// String returns "NA" for a missing count, or the decimal count.
func (c Count) String() string {
	if c.Missing {
		return "NA"
	}
	return strconv.Itoa(c.N)
}

// Chunks is the result of a splitting driver for one element: consecutive sub-spans borrowed
// from the element, in order.
type Chunks struct {
	Spans   []text.Span
	Missing bool
}

// Strings returns a copy of the text of each chunk.
func (c Chunks) Strings() []string {
	out := make([]string, len(c.Spans))
	for i, s := range c.Spans {
		out[i] = s.String()
	}
	return out
}

// Options configures the materializing drivers.
type Options struct {
	// MaxSpanTokens caps the number of token positions of a single element, 0 means no limit.
	// Exceeding it aborts the call with an error wrapping text.ErrAllocation.
	MaxSpanTokens int
}

// process applies the driver contract to every element of src: missing elements yield
// missing, empty ones yield empty, others are passed to scan. The first error aborts.
func process[R any](src text.Source, missing, empty R, scan func(s text.Span) (R, error)) ([]R, error) {
	n := src.Len()
	results := make([]R, n)
	for i := range n {
		s := src.Get(i)
		switch {
		case s.IsMissing():
			results[i] = missing
		case s.Size() == 0:
			results[i] = empty
		default:
			r, err := scan(s)
			if err != nil {
				return nil, errors.WithMessagef(err, "while scanning element %d of %d", i, n)
			}
			results[i] = r
		}
	}
	return results, nil
}

// call tracks one batch call for logging.
type call struct {
	id    string
	op    string
	n     int
	start time.Time
}

func begin(op string, n int) call {
	c := call{op: op, n: n}
	if klog.V(1).Enabled() {
		c.id = uuid.NewString()
		c.start = time.Now()
		klog.Infof("textscan %s[%s]: scanning %d elements", c.op, c.id, c.n)
	}
	return c
}

// done logs the outcome of the call. extra is appended to the success message.
func (c call) done(err error, format string, args ...any) {
	if !klog.V(1).Enabled() || c.id == "" {
		return
	}
	elapsed := time.Since(c.start)
	if err != nil {
		klog.Infof("textscan %s[%s]: aborted after %s (%s failure)", c.op, c.id, elapsed, text.KindOf(err))
		klog.V(2).Infof("textscan %s[%s]: %+v", c.op, c.id, err)
		return
	}
	args = append([]any{c.op, c.id, c.n, elapsed}, args...)
	klog.Infof("textscan %s[%s]: scanned %d elements in %s"+format, args...)
}
