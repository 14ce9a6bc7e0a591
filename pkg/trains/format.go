package trains

import (
	"iter"
	"strings"

	"github.com/travigo/tickets/pkg/table"
)

const (
	durationPlaceholder = "------"
	timePlaceholder     = "-----"
	remarkLineBreak     = "<br/>"
)

// Format derives the display row for a trip, one cell per Header column.
func Format(trip Trip) table.Row {
	row := table.Row{
		table.Plain(trip.TrainNumber),
		FormatRoute(trip),
		FormatTimes(trip),
		table.Plain(FormatDuration(trip)),
	}

	for _, seatClass := range SeatClasses {
		row = append(row, table.Plain(trip.Seats[seatClass]))
	}

	return append(row, table.Plain(FormatMessage(trip)))
}

func FormatAll(trips iter.Seq[Trip]) iter.Seq[table.Row] {
	return func(yield func(table.Row) bool) {
		for trip := range trips {
			if !yield(Format(trip)) {
				return
			}
		}
	}
}

func FormatRoute(trip Trip) table.Cell {
	return table.Stack(
		table.Styled(trip.OriginName, table.StyleOrigin),
		table.Styled(trip.DestinationName, table.StyleDestination),
	)
}

func FormatTimes(trip Trip) table.Cell {
	if trip.Restricted {
		return table.Stack(table.Plain(timePlaceholder), table.Plain(timePlaceholder))
	}

	return table.Stack(
		table.Styled(trip.DepartureTime, table.StyleOrigin),
		table.Styled(trip.ArrivalTime, table.StyleDestination),
	)
}

// FormatDuration turns "HH:MM" into "H小时MM分". A "00" hour is dropped
// completely and a single leading zero is stripped, working on the text
// rather than on parsed numbers.
func FormatDuration(trip Trip) string {
	if trip.Restricted {
		return durationPlaceholder
	}

	duration := strings.ReplaceAll(trip.Duration, ":", "小时") + "分"

	if strings.HasPrefix(duration, "00") {
		characters := []rune(duration)
		if len(characters) < 4 {
			return ""
		}
		return string(characters[4:])
	}

	if strings.HasPrefix(duration, "0") {
		return duration[1:]
	}

	return duration
}

func FormatMessage(trip Trip) string {
	if trip.Restricted {
		return trip.RestrictedMessage
	}

	return strings.ReplaceAll(trip.Remark, remarkLineBreak, "")
}
