package agenda

import "golang.org/x/text/language"

// Messages are the fixed UI strings of the agenda view.
type Messages struct {
	Date      string `yaml:"date" json:"date"`
	Time      string `yaml:"time" json:"time"`
	Event     string `yaml:"event" json:"event"`
	AllDay    string `yaml:"all_day" json:"all_day"`
	Customer  string `yaml:"customer" json:"customer"`
	Phone     string `yaml:"phone" json:"phone"`
	Location  string `yaml:"location" json:"location"`
	Status    string `yaml:"status" json:"status"`
	BlockTime string `yaml:"block_time" json:"block_time"`
	OffTime   string `yaml:"off_time" json:"off_time"`
	NoEvents  string `yaml:"no_events" json:"no_events"`
}

var messageTags = []language.Tag{
	language.English,
	language.Korean,
	language.Japanese,
}

var messageTables = []Messages{
	{
		Date: "Date", Time: "Time", Event: "Event", AllDay: "All Day",
		Customer: "Customer", Phone: "Phone Number", Location: "Location", Status: "Status",
		BlockTime: "Block Time", OffTime: "Off Time",
		NoEvents: "There are no events in this range.",
	},
	{
		Date: "날짜", Time: "시간", Event: "일정", AllDay: "종일",
		Customer: "고객", Phone: "전화번호", Location: "장소", Status: "상태",
		BlockTime: "예약 불가", OffTime: "휴무",
		NoEvents: "이 기간에는 일정이 없습니다.",
	},
	{
		Date: "日付", Time: "時間", Event: "予定", AllDay: "終日",
		Customer: "顧客", Phone: "電話番号", Location: "場所", Status: "状態",
		BlockTime: "ブロック", OffTime: "休み",
		NoEvents: "この期間に予定はありません。",
	},
}

var messageMatcher = language.NewMatcher(messageTags)

// MessagesFor picks the table closest to culture (English when nothing
// matches) and applies the non-empty fields of overrides on top.
func MessagesFor(culture string, overrides Messages) Messages {
	_, idx := language.MatchStrings(messageMatcher, culture)
	m := messageTables[idx]

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&m.Date, overrides.Date)
	set(&m.Time, overrides.Time)
	set(&m.Event, overrides.Event)
	set(&m.AllDay, overrides.AllDay)
	set(&m.Customer, overrides.Customer)
	set(&m.Phone, overrides.Phone)
	set(&m.Location, overrides.Location)
	set(&m.Status, overrides.Status)
	set(&m.BlockTime, overrides.BlockTime)
	set(&m.OffTime, overrides.OffTime)
	set(&m.NoEvents, overrides.NoEvents)
	return m
}
