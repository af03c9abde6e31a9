package codec

import (
	"time"

	generable "github.com/reoring/generable"
	"github.com/reoring/generable/dsl"
)

const rfc3339Prefix = `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`

// TimeRFC3339 decodes RFC 3339 timestamps (fractional seconds optional) into
// time.Time and encodes them in UTC with RFC3339Nano, trailing zeros trimmed.
func TimeRFC3339() Codec[string, time.Time] {
	return Func(parseRFC3339, formatRFC3339Canonical)
}

// Time is the ready-made Generable for RFC 3339 timestamps.
func Time() generable.Generable[time.Time] {
	wire := dsl.String(generable.Pattern(rfc3339Prefix)).Describe("RFC 3339 timestamp")
	return Of[string, time.Time](wire, TimeRFC3339())
}

// Duration decodes Go duration strings such as "1h30m".
func Duration() generable.Generable[time.Duration] {
	wire := dsl.String().Describe(`duration such as "90s" or "1h30m"`)
	return Of[string, time.Duration](wire, Func(
		func(s string) (time.Duration, error) {
			d, err := time.ParseDuration(s)
			if err != nil {
				return 0, formatIssue("duration", err)
			}
			return d, nil
		},
		time.Duration.String,
	))
}

func parseRFC3339(s string) (time.Time, error) {
	// RFC3339Nano accepts a missing fraction as well.
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, formatIssue("RFC 3339", err)
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

