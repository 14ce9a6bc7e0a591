package railapi

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/travigo/tickets/pkg/trains"
)

const normalTrainFlag = "0"

type queryResponse struct {
	Data queryData `json:"data"`
}

type queryData struct {
	Flag    bool       `json:"flag"`
	Message string     `json:"message"`
	Trains  []rawTrain `json:"datas"`
}

// rawTrain is one element of data.datas. Times and duration are only
// required for trains that are not controlled.
type rawTrain struct {
	StationTrainCode string `json:"station_train_code" validate:"required"`
	FromStationName  string `json:"from_station_name" validate:"required"`
	ToStationName    string `json:"to_station_name" validate:"required"`

	StartTime  string `json:"start_time" validate:"required_if=ControlledTrainFlag 0,hhmm"`
	ArriveTime string `json:"arrive_time" validate:"required_if=ControlledTrainFlag 0,hhmm"`
	Lishi      string `json:"lishi" validate:"required_if=ControlledTrainFlag 0,hhmm"`

	ControlledTrainFlag    string `json:"controlled_train_flag" validate:"required"`
	ControlledTrainMessage string `json:"controlled_train_message"`
	Note                   string `json:"note"`

	ZyNum string `json:"zy_num" validate:"required"`
	ZeNum string `json:"ze_num" validate:"required"`
	RwNum string `json:"rw_num" validate:"required"`
	YwNum string `json:"yw_num" validate:"required"`
	YzNum string `json:"yz_num" validate:"required"`
	WzNum string `json:"wz_num" validate:"required"`
}

var hhmmPattern = regexp.MustCompile(`^\d{2,}:\d{2}$`)

func newValidator() *validator.Validate {
	validate := validator.New()
	// controlled trains carry "--:--" placeholders, empty values are left to required_if
	validate.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		if fl.Parent().FieldByName("ControlledTrainFlag").String() != normalTrainFlag {
			return true
		}

		value := fl.Field().String()
		return value == "" || hhmmPattern.MatchString(value)
	})

	return validate
}

func (r rawTrain) toTrip() trains.Trip {
	trip := trains.Trip{
		TrainNumber:     r.StationTrainCode,
		OriginName:      r.FromStationName,
		DestinationName: r.ToStationName,
		Restricted:      r.ControlledTrainFlag != normalTrainFlag,
		Seats: map[trains.SeatClass]string{
			trains.SeatClassFirst:       r.ZyNum,
			trains.SeatClassSecond:      r.ZeNum,
			trains.SeatClassSoftSleeper: r.RwNum,
			trains.SeatClassHardSleeper: r.YwNum,
			trains.SeatClassHardSeat:    r.YzNum,
			trains.SeatClassStanding:    r.WzNum,
		},
	}

	if trip.Restricted {
		trip.RestrictedMessage = r.ControlledTrainMessage
	} else {
		trip.DepartureTime = r.StartTime
		trip.ArrivalTime = r.ArriveTime
		trip.Duration = r.Lishi
		trip.Remark = r.Note
	}

	return trip
}
