package converter

import (
	"math"
	"time"

	"github.com/theoremus-urban-solutions/entd-longdistance/utils"
)

// vacationOrigin is midnight of a vacation's declared start day.
type vacationOrigin struct {
	start time.Time
	ok    bool
}

func newVacationOrigin(startDay string) vacationOrigin {
	start, err := utils.ParseSurveyDay(startDay)
	if err != nil {
		return vacationOrigin{}
	}
	return vacationOrigin{start: start, ok: true}
}

// elapsed returns the seconds from the vacation start to the given event.
// Missing fields take the unknown sentinels; an unknown start day or an
// unparsable field yields NaN.
func (o vacationOrigin) elapsed(day, clock string) (float64, error) {
	if !o.ok {
		return math.NaN(), nil
	}
	ts, err := utils.SurveyTimestamp(day, clock)
	if err != nil {
		return math.NaN(), err
	}
	return utils.ElapsedSeconds(o.start, ts), nil
}
