package result

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// jsonMetricResult is the wire shape of one metric outcome.
type jsonMetricResult struct {
	Id              string                    `json:"id"`
	Status          Status                    `json:"status"`
	Measures        []ctyjson.SimpleJSONValue `json:"measures"`
	Error           string                    `json:"error,omitempty"`
	DurationSeconds float64                   `json:"duration_s"`
}

// MarshalJSON serializes the result with measures rendered as plain JSON
// numbers and strings.
func (r MetricResult) MarshalJSON() ([]byte, error) {
	measures := make([]ctyjson.SimpleJSONValue, 0, len(r.Measures))
	for _, m := range r.Measures {
		measures = append(measures, ctyjson.SimpleJSONValue{Value: m})
	}
	return json.Marshal(&jsonMetricResult{
		Id:              r.Id,
		Status:          r.Status,
		Measures:        measures,
		Error:           r.Error,
		DurationSeconds: round4(r.Duration.Seconds()),
	})
}

// MarshalJSON serializes the whole result set.
func (rr *RunResult) MarshalJSON() ([]byte, error) {
	type alias struct {
		Results   []MetricResult `json:"results"`
		Succeeded int            `json:"succeeded"`
		Failed    int            `json:"failed"`
		Skipped   int            `json:"skipped"`
	}
	return json.Marshal(&alias{
		Results:   rr.Results,
		Succeeded: rr.Succeeded,
		Failed:    rr.Failed,
		Skipped:   rr.Skipped,
	})
}

// FormatMeasure renders a single measure for tabular output. Whole numbers
// print without a fraction; other numbers are rounded to four decimals.
func FormatMeasure(v cty.Value) string {
	switch {
	case v.IsNull():
		return ""
	case v.Type().Equals(cty.Number):
		bf := v.AsBigFloat()
		if bf.IsInt() {
			i, _ := bf.Int64()
			return strconv.FormatInt(i, 10)
		}
		f, _ := bf.Float64()
		return strconv.FormatFloat(round4(f), 'f', -1, 64)
	case v.Type().Equals(cty.String):
		return v.AsString()
	default:
		raw, err := ctyjson.Marshal(v, v.Type())
		if err != nil {
			return v.GoString()
		}
		return string(raw)
	}
}

func round4(f float64) float64 {
	return math.Round(f*10000) / 10000
}
