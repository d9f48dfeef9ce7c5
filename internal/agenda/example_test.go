package agenda_test

import (
	"fmt"
	"time"

	"agendacal/internal/agenda"
	"agendacal/internal/model"
)

func ExamplePartition() {
	anchor := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	w := agenda.ComputeWindow(anchor, 3)

	events := []any{
		model.Event{Title: "Overnight", Start: anchor.Add(-2 * time.Hour), End: anchor.Add(32 * time.Hour)},
		model.Event{Title: "Standup", Start: anchor.Add(9 * time.Hour), End: anchor.Add(10 * time.Hour)},
	}

	buckets, err := agenda.Partition(events, w, agenda.DefaultAccessors())
	if err != nil {
		panic(err)
	}
	for _, b := range buckets {
		fmt.Print(b.Day.Format("01-02"), ":")
		for _, e := range b.Events {
			fmt.Print(" ", e.(model.Event).Title)
		}
		fmt.Println()
	}
	// Output:
	// 01-10: Overnight Standup
	// 01-11: Overnight
	// 01-12:
}

func ExampleNavigate() {
	d := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	fmt.Println(agenda.Navigate(d, agenda.Next, 7).Format("2006-01-02"))
	fmt.Println(agenda.Navigate(d, agenda.Previous, 7).Format("2006-01-02"))
	fmt.Println(agenda.Navigate(d, agenda.Today, 7).Format("2006-01-02"))
	// Output:
	// 2024-01-17
	// 2024-01-03
	// 2024-01-10
}
