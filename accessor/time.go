package accessor

import (
	"math"
	"reflect"
	"time"

	"github.com/cockroachdb/errors"

	"fieldmodel/entity"
	"fieldmodel/primitive"
)

// timeLayouts are tried in order when parsing a textual timestamp.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.DateTime,
	time.DateOnly,
}

// Time wraps a point in time. It accepts time.Time, textual timestamps
// (RFC 3339, "2006-01-02 15:04:05" or "2006-01-02", read as UTC) and Unix
// timestamps in seconds, and packs to an RFC 3339 string in UTC. nil and the
// empty string hold no time and pack to nil.
type Time struct {
	entity.Bound

	t, snapshot        time.Time
	valid, snapshotSet bool
}

var _ entity.Accessor = (*Time)(nil)

// NewTime constructs a Time from its raw value.
func NewTime(raw any, ctx entity.Context) (*Time, error) {
	t, valid, err := parseTime(raw)
	if err != nil {
		return nil, err
	}

	a := &Time{t: t, valid: valid, snapshot: t, snapshotSet: valid}
	a.Bind(ctx)

	return a, nil
}

// Value implements entity.Value.
func (a *Time) Value() any {
	if !a.valid {
		return nil
	}

	return a.t.UTC().Format(time.RFC3339Nano)
}

// SetValue implements entity.Accessor.
func (a *Time) SetValue(raw any) error {
	t, valid, err := parseTime(raw)
	if err != nil {
		return err
	}

	a.t, a.valid = t, valid

	return nil
}

// Clone implements entity.Accessor.
func (a *Time) Clone() entity.Accessor {
	c := *a
	return &c
}

// Dirty implements entity.Dirtier.
func (a *Time) Dirty() bool {
	return a.valid != a.snapshotSet || !a.t.Equal(a.snapshot)
}

// Time returns the wrapped time and whether one is set.
func (a *Time) Time() (time.Time, bool) { return a.t, a.valid }

// Set replaces the wrapped time.
func (a *Time) Set(t time.Time) {
	a.t, a.valid = t, true
}

var int64Type = reflect.TypeOf(int64(0))

func parseTime(raw any) (time.Time, bool, error) {
	switch v := raw.(type) {
	case nil:
		return time.Time{}, false, nil
	case time.Time:
		return v, true, nil
	case *time.Time:
		if v == nil {
			return time.Time{}, false, nil
		}
		return *v, true, nil
	case string:
		if v == "" {
			return time.Time{}, false, nil
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true, nil
			}
		}
		return time.Time{}, false, errors.Newf("unrecognized time %q", v)
	case float32, float64:
		f := reflect.ValueOf(v).Float()
		// -MinInt64 is exactly representable; MaxInt64 rounds up to it.
		if math.IsNaN(f) || f < math.MinInt64 || f >= -math.MinInt64 {
			return time.Time{}, false, errors.Newf("unix time %v out of range", f)
		}
		sec, frac := math.Modf(f)
		return time.Unix(int64(sec), int64(frac*float64(time.Second))).UTC(), true, nil
	}

	if primitive.FromValue(raw).IsInteger() {
		sec, err := primitive.Coerce(raw, int64Type)
		if err != nil {
			return time.Time{}, false, err
		}
		return time.Unix(sec.Int(), 0).UTC(), true, nil
	}

	return time.Time{}, false, errors.Newf("expected a time, got %T", raw)
}
