package screens

import (
	"context"
	"strconv"

	"github.com/bobmcallan/brokercheck/internal/format"
	"github.com/bobmcallan/brokercheck/internal/models"
	"github.com/bobmcallan/brokercheck/internal/web"
)

const (
	eventRows         = 5
	dividendEventType = 1
)

type weekEvents struct {
	From   string               `json:"from"` // YYYY-MM-DD
	To     string               `json:"to"`
	Events []models.MarketEvent `json:"events"`
}

func (w weekEvents) event(i int) models.MarketEvent {
	return w.Events[i]
}

func (w weekEvents) dividends() int {
	n := 0
	for _, e := range w.Events {
		if e.EventTypeID == dividendEventType {
			n++
		}
	}
	return n
}

// Events reconciles this week's corporate events against the vietstock feed.
func Events(env *Env) Screen {
	dates := env.dates()
	return &ScreenValidator[weekEvents]{
		Name:   "events",
		Title:  "Market events",
		Path:   "/events",
		Marker: "events-input-fromdate",
		Policy: models.PolicyContains,
		env:    env,
		Fetch: func(ctx context.Context) (weekEvents, error) {
			mon, sun := dates.ThisWeek(env.now())
			w := weekEvents{From: format.ToISODate(mon), To: format.ToISODate(sun)}
			events, err := env.Events.FetchEvents(ctx, models.EventQuery{FromDate: w.From, ToDate: w.To})
			w.Events = events
			return w, err
		},
		Prepare: func(ctx context.Context, w *web.Client, d weekEvents) error {
			from, _ := dates.ParseISO(d.From)
			to, _ := dates.ParseISO(d.To)
			if err := w.Fill(ctx, "events-input-fromdate", format.ToDMY(from)); err != nil {
				return err
			}
			if err := w.Fill(ctx, "events-input-todate", format.ToDMY(to)); err != nil {
				return err
			}
			if err := w.Click(ctx, "events-action-query"); err != nil {
				return err
			}
			return w.WaitIdle(ctx)
		},
		Fields: []Field[weekEvents]{
			{Name: "dividend events", ID: "events-label-dividend", Expected: func(d weekEvents) string { return strconv.Itoa(d.dividends()) }},
			{Name: "this week", ID: "events-label-thisweek", Expected: func(d weekEvents) string { return strconv.Itoa(len(d.Events)) }},
		},
		Table: &Table[weekEvents]{
			Layout:  web.CellLayout{Prefix: "events-label", Repeated: true},
			CountBy: "title",
			Rows:    func(d weekEvents) int { return len(d.Events) },
			MaxRows: eventRows,
			Columns: []Column[weekEvents]{
				{Name: "title", Column: "title", Expected: func(d weekEvents, i int) string { return d.event(i).Title }},
				{Name: "ex-right date", Column: "exdate", Expected: func(d weekEvents, i int) string { return dates.Event(d.event(i).GDKHQDate) }},
				{Name: "record date", Column: "recorddate", Expected: func(d weekEvents, i int) string { return dates.Event(d.event(i).NDKCCDate) }},
				{Name: "exercise date", Column: "exercisedate", Expected: func(d weekEvents, i int) string { return dates.Event(d.event(i).Time) }},
				{Name: "dividend rate", Column: "dividendrate", Expected: func(d weekEvents, i int) string { return format.DividendRate(d.event(i).Note) }},
			},
		},
		Shape: func(d weekEvents) []models.Check {
			return []models.Check{presentCount("events", len(d.Events))}
		},
	}
}
