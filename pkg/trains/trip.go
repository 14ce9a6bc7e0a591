package trains

import (
	"unicode"
	"unicode/utf8"
)

type SeatClass string

const (
	SeatClassFirst       SeatClass = "zy"
	SeatClassSecond      SeatClass = "ze"
	SeatClassSoftSleeper SeatClass = "rw"
	SeatClassHardSleeper SeatClass = "yw"
	SeatClassHardSeat    SeatClass = "yz"
	SeatClassStanding    SeatClass = "wz"
)

// SeatClasses is the display order of the seat columns.
var SeatClasses = []SeatClass{
	SeatClassFirst,
	SeatClassSecond,
	SeatClassSoftSleeper,
	SeatClassHardSleeper,
	SeatClassHardSeat,
	SeatClassStanding,
}

var Header = []string{"车次", "车站", "时间", "历时", "一等", "二等", "软卧", "硬卧", "硬座", "无座", "备注"}

// Trip is a single train as returned by the ticketing service. Trips are
// never modified after they are built.
type Trip struct {
	TrainNumber     string `json:"train_number" groups:"basic,detailed"`
	OriginName      string `json:"origin_name" groups:"basic,detailed"`
	DestinationName string `json:"destination_name" groups:"basic,detailed"`

	DepartureTime string `json:"departure_time" groups:"basic,detailed"`
	ArrivalTime   string `json:"arrival_time" groups:"basic,detailed"`
	Duration      string `json:"duration" groups:"detailed"`

	Restricted        bool   `json:"restricted" groups:"basic,detailed"`
	RestrictedMessage string `json:"restricted_message,omitempty" groups:"detailed"`
	Remark            string `json:"remark,omitempty" groups:"detailed"`

	Seats map[SeatClass]string `json:"seats" groups:"basic,detailed"`
}

func (t Trip) TypeCode() TypeCode {
	return TypeCodeOf(t.TrainNumber)
}

// TypeCode is the lowercased first character of a train number, such as 'g'
// for high speed services.
type TypeCode rune

const NoTypeCode TypeCode = 0

const (
	TypeCodeHighSpeed TypeCode = 'g'
	TypeCodeBullet    TypeCode = 'd'
	TypeCodeExpress   TypeCode = 't'
	TypeCodeFast      TypeCode = 'k'
	TypeCodeDirect    TypeCode = 'z'
)

// TypeCodeOf returns NoTypeCode for an empty or invalid train number.
func TypeCodeOf(trainNumber string) TypeCode {
	first, size := utf8.DecodeRuneInString(trainNumber)
	if size == 0 || first == utf8.RuneError {
		return NoTypeCode
	}

	return TypeCode(unicode.ToLower(first))
}

func (c TypeCode) String() string {
	if c == NoTypeCode {
		return ""
	}

	return string(rune(c))
}
