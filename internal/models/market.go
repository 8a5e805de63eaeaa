package models

// MarketEvent is one corporate event from the vietstock events feed.
// Dates arrive as "/Date(ms)/" markers or null.
type MarketEvent struct {
	EventID     int64   `json:"EventID"`
	EventTypeID int     `json:"EventTypeID"`
	ChannelID   int     `json:"ChannelID"`
	Code        string  `json:"Code"`
	CompanyName string  `json:"CompanyName"`
	CatID       int     `json:"CatID"`
	GDKHQDate   *string `json:"GDKHQDate"` // ex-right date
	NDKCCDate   *string `json:"NDKCCDate"` // record date
	Time        *string `json:"Time"`      // exercise date
	Note        string  `json:"Note"`
	Name        string  `json:"Name"`
	Exchange    string  `json:"Exchange"`
	Title       string  `json:"Title"`
	Content     string  `json:"Content"`
	FileURL     string  `json:"FileUrl"`
	DateOrder   *string `json:"DateOrder"`
	Row         int     `json:"Row"`
}

// EventQuery filters the events feed. Dates are YYYY-MM-DD.
type EventQuery struct {
	EventTypeID int
	ChannelID   int
	Code        string
	CatID       int
	FromDate    string
	ToDate      string
	Page        int
	PageSize    int
}
