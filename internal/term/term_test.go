package term

import (
	"strings"
	"testing"
	"time"

	"agendacal/internal/agenda"
	"agendacal/internal/model"
)

func TestTimeCell(t *testing.T) {
	tests := []struct {
		l    agenda.Label
		want string
	}{
		{agenda.Label{TimeLabel: "09:00–10:00"}, "09:00–10:00"},
		{agenda.Label{TimeLabel: "22:00", ContinuesAfter: true}, "22:00 »"},
		{agenda.Label{TimeLabel: "08:00", ContinuesBefore: true}, "« 08:00"},
		{agenda.Label{ContinuesBefore: true, ContinuesAfter: true}, "«  »"},
	}
	for _, tt := range tests {
		if got := TimeCell(tt.l); got != tt.want {
			t.Errorf("TimeCell(%+v) = %q, want %q", tt.l, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	view, err := agenda.NewView(agenda.Options{Accessors: agenda.DefaultAccessors()})
	if err != nil {
		t.Fatal(err)
	}
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	a, err := view.BuildLength(day, 2, []any{
		model.Event{
			Title: "Haircut", Status: "Confirmed", Address: "12 Main St",
			Start: day.Add(9 * time.Hour), End: day.Add(10 * time.Hour),
			Customer: &model.Customer{FirstName: "Ada", LastName: "Lovelace"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	out := Render(a)
	for _, want := range []string{"Wed Jan 10", "09:00–10:00", "Haircut", "Ada Lovelace", "12 Main St", "[Confirmed]"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}

	empty, err := view.BuildLength(day, 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out := Render(empty); !strings.Contains(out, "There are no events in this range.") {
		t.Errorf("Render(empty) = %q", out)
	}
}
