package trains

import (
	"fmt"
	"iter"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rs/zerolog/log"
)

// WhereEnv is what a where expression can see of a trip, for example
// `type == "g" && seats.ze != "无"` or `from startsWith "北京"`.
type WhereEnv struct {
	Number     string            `expr:"number"`
	Type       string            `expr:"type"`
	From       string            `expr:"from"`
	To         string            `expr:"to"`
	Departure  string            `expr:"departure"`
	Arrival    string            `expr:"arrival"`
	Duration   string            `expr:"duration"`
	Restricted bool              `expr:"restricted"`
	Remark     string            `expr:"remark"`
	Seats      map[string]string `expr:"seats"`
}

func newWhereEnv(trip Trip) WhereEnv {
	seats := make(map[string]string, len(trip.Seats))
	for seatClass, value := range trip.Seats {
		seats[string(seatClass)] = value
	}

	return WhereEnv{
		Number:     trip.TrainNumber,
		Type:       trip.TypeCode().String(),
		From:       trip.OriginName,
		To:         trip.DestinationName,
		Departure:  trip.DepartureTime,
		Arrival:    trip.ArrivalTime,
		Duration:   trip.Duration,
		Restricted: trip.Restricted,
		Remark:     FormatMessage(trip),
		Seats:      seats,
	}
}

type Where struct {
	Source  string
	program *vm.Program
}

func CompileWhere(source string) (*Where, error) {
	program, err := expr.Compile(source, expr.Env(WhereEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid where expression: %w", err)
	}

	return &Where{Source: source, program: program}, nil
}

func (w *Where) Match(trip Trip) (bool, error) {
	output, err := expr.Run(w.program, newWhereEnv(trip))
	if err != nil {
		return false, err
	}

	return output.(bool), nil
}

// Filter drops trips the expression rejects. A trip the expression fails to
// evaluate against is dropped as well.
func (w *Where) Filter(trips iter.Seq[Trip]) iter.Seq[Trip] {
	return func(yield func(Trip) bool) {
		for trip := range trips {
			matched, err := w.Match(trip)
			if err != nil {
				log.Warn().Err(err).Str("train", trip.TrainNumber).Str("where", w.Source).Msg("Failed to evaluate where expression")
				continue
			}

			if matched && !yield(trip) {
				return
			}
		}
	}
}
