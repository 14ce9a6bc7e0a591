package lookup

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/travigo/tickets/pkg/railapi"
	"github.com/travigo/tickets/pkg/trains"
)

var validate = validator.New()

type StationResolver interface {
	Lookup(name string) (string, bool)
}

type ScheduleQuerier interface {
	Query(ctx context.Context, request railapi.Request) (*railapi.Response, error)
}

type StationNotFoundError struct {
	Name string
}

func (e *StationNotFoundError) Error() string {
	return fmt.Sprintf("Can't find city: %s!", e.Name)
}

type InvalidDateError struct {
	Date string
	Err  error
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", e.Date)
}

func (e *InvalidDateError) Unwrap() error {
	return e.Err
}

type Request struct {
	From    string
	To      string
	Date    string `validate:"required,datetime=2006-01-02"`
	Options trains.OptionSet
	Where   *trains.Where
}

type Service struct {
	Stations  StationResolver
	Schedules ScheduleQuerier
}

// Resolve runs the remote query for a request and returns the matching trips
// in the order the service listed them. Stations are resolved before the date
// is checked, origin first.
func (s *Service) Resolve(ctx context.Context, request Request) (iter.Seq[trains.Trip], error) {
	fromCode, found := s.Stations.Lookup(request.From)
	if !found {
		return nil, &StationNotFoundError{Name: request.From}
	}

	toCode, found := s.Stations.Lookup(request.To)
	if !found {
		return nil, &StationNotFoundError{Name: request.To}
	}

	if err := validate.Struct(request); err != nil {
		return nil, &InvalidDateError{Date: request.Date, Err: err}
	}

	log.Debug().
		Str("from", request.From).
		Str("from_code", fromCode).
		Str("to", request.To).
		Str("to_code", toCode).
		Str("date", request.Date).
		Str("types", request.Options.String()).
		Msg("Resolved stations")

	response, err := s.Schedules.Query(ctx, railapi.Request{
		Date:     request.Date,
		FromCode: fromCode,
		ToCode:   toCode,
	})
	if err != nil {
		return nil, err
	}

	matching := trains.Filter(slices.Values(response.Trips), request.Options)
	if request.Where != nil {
		matching = request.Where.Filter(matching)
	}

	return matching, nil
}
