package model

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

type EventIDCtxKeyType string

const EventIDCtxKey EventIDCtxKeyType = "event-id"

type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID          string `bun:"id,pk" json:"id"`                 // required
	AppID       string `bun:"app_id,notnull" json:"appId"`     // required
	Title       string `bun:"title,notnull" json:"title"`      // required
	Description string `bun:"description" json:"description"`
	URL         string `bun:"url" json:"url"`

	VenueID     string `bun:"venue_id" json:"venueID"`
	OrganizerID string `bun:"organizer_id" json:"organizerID"`
	CategoryID  string `bun:"category_id" json:"categoryID"`

	StartDateUnixUTC int64  `bun:"start_date,notnull" json:"startDateUnixUTC"` // required
	EndDateUnixUTC   int64  `bun:"end_date" json:"endDateUnixUTC"`
	RecurrenceRule   string `bun:"recurrence_rule" json:"recurrenceRule"`

	IsActive   bool `bun:"is_active" json:"isActive"`
	IsCanceled bool `bun:"is_canceled" json:"isCanceled"`

	CreatedAt int64 `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt int64 `bun:"updated_at" json:"updatedAt"`

	Venue *Venue `bun:"rel:belongs-to,join:venue_id=id" json:"-"`

	// set by the recurrence expander, never persisted
	Generated            bool  `bun:"-" json:"isGeneratedOccurrence,omitempty"`
	AnchorStartDateUnix  int64 `bun:"-" json:"originalStartDate,omitempty"`
}

// Whether the event carries a recurrence rule; an empty or blank rule string
// means non-recurring.
func (e *Event) IsRecurring() bool {
	return strings.TrimSpace(e.RecurrenceRule) != ""
}

func (e *Event) Upsert(ctx context.Context, db bun.IDB) error {
	switch {
	case e.ID == "":
		return fmt.Errorf("(*Event).Upsert: event id is blank")
	case e.Title == "":
		return fmt.Errorf("(*Event).Upsert: title is blank")
	case e.StartDateUnixUTC == 0:
		return fmt.Errorf("(*Event).Upsert: start date is blank")
	case e.EndDateUnixUTC != 0 && e.StartDateUnixUTC > e.EndDateUnixUTC:
		return fmt.Errorf("(*Event).Upsert: start date must be before end date")
	case e.URL != "":
		if _, err := url.ParseRequestURI(e.URL); err != nil {
			return fmt.Errorf("(*Event).Upsert: url is invalid: %w", err)
		}
	}
	if e.AppID == "" {
		e.AppID = "1"
	}
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().UTC().Unix()
	}

	exists, err := db.NewSelect().
		Model((*Event)(nil)).
		Where("id = ?", e.ID).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("(*Event).Upsert: %w", err)
	}

	switch exists {
	case true:
		e.UpdatedAt = time.Now().UTC().Unix()
		if _, err := db.NewUpdate().
			Model(e).
			WherePK().
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Event).Upsert: %w", err)
		}
	case false:
		if _, err := db.NewInsert().
			Model(e).
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Event).Upsert: %w", err)
		}
	}

	return nil
}
