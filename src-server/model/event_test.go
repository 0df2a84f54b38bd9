package model_test

import (
	"context"
	"database/sql"
	"testing"

	"tangocal/src-server/model"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	db, err := sql.Open(sqliteshim.ShimName, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	bundb := bun.NewDB(db, sqlitedialect.New())
	if err := model.CreateSchema(bundb); err != nil {
		t.Fatal(err)
	}
	return bundb
}

func TestEventUpsert(t *testing.T) {
	bundb := newTestDB(t)

	venueModel := model.Venue{
		ID:   uuid.NewString(),
		Name: "La Nacional",
		City: "New York",
	}
	if err := venueModel.Upsert(context.Background(), bundb); err != nil {
		t.Error(err)
	}

	eventModel := model.Event{
		ID:               uuid.NewString(),
		Title:            "Tuesday Milonga",
		VenueID:          venueModel.ID,
		StartDateUnixUTC: 1767742200, // 2026-01-06T23:30:00Z
		RecurrenceRule:   "FREQ=WEEKLY;BYDAY=TU",
		IsActive:         true,
	}
	if err := eventModel.Upsert(context.Background(), bundb); err != nil {
		t.Error(err)
	}
	if eventModel.AppID != "1" {
		t.Error("app id should default to 1")
	}
	if eventModel.CreatedAt == 0 {
		t.Error("created at should be set")
	}
	if !eventModel.IsRecurring() {
		t.Error("event with a rule should be recurring")
	}

	// case: venue relation resolves
	func() {
		eventModelTest := new(model.Event)
		if err := bundb.NewSelect().
			Model(eventModelTest).
			Relation("Venue").
			Where("event.id = ?", eventModel.ID).
			Scan(context.Background()); err != nil {
			t.Error(err)
		}
		if eventModelTest.Venue == nil || eventModelTest.Venue.Name != "La Nacional" {
			t.Error("venue relation not found")
		}
	}()

	// case: second upsert updates instead of duplicating
	func() {
		eventModel.Title = "Tuesday Milonga at La Nacional"
		if err := eventModel.Upsert(context.Background(), bundb); err != nil {
			t.Error(err)
		}
		count, err := bundb.NewSelect().
			Model((*model.Event)(nil)).
			Where("id = ?", eventModel.ID).
			Count(context.Background())
		if err != nil {
			t.Error(err)
		}
		if count != 1 {
			t.Error("upsert should not duplicate", count)
		}
		if eventModel.UpdatedAt == 0 {
			t.Error("updated at should be set")
		}
	}()
}

func TestEventUpsertValidation(t *testing.T) {
	bundb := newTestDB(t)

	for _, eventModel := range []model.Event{
		{Title: "no id", StartDateUnixUTC: 1},
		{ID: uuid.NewString(), StartDateUnixUTC: 1},
		{ID: uuid.NewString(), Title: "no start date"},
		{ID: uuid.NewString(), Title: "end before start", StartDateUnixUTC: 2, EndDateUnixUTC: 1},
		{ID: uuid.NewString(), Title: "bad url", StartDateUnixUTC: 1, URL: "not a url"},
	} {
		if err := eventModel.Upsert(context.Background(), bundb); err == nil {
			t.Errorf("upsert should fail: %+v", eventModel)
		}
	}
}

func TestVenueDetectTimezone(t *testing.T) {
	bundb := newTestDB(t)

	// case: timezone filled from the city on upsert
	func() {
		venueModel := model.Venue{
			ID:   uuid.NewString(),
			Name: "Milonga Parakultural",
			City: "Buenos Aires",
		}
		if err := venueModel.Upsert(context.Background(), bundb); err != nil {
			t.Error(err)
		}
		if venueModel.Timezone != "America/Argentina/Buenos_Aires" {
			t.Error("unexpected timezone", venueModel.Timezone)
		}
	}()

	// case: explicit timezone wins over location
	func() {
		venueModel := model.Venue{
			ID:       uuid.NewString(),
			Name:     "Somewhere",
			City:     "Buenos Aires",
			Timezone: "Europe/Paris",
		}
		if err := venueModel.Upsert(context.Background(), bundb); err != nil {
			t.Error(err)
		}
		if venueModel.Timezone != "Europe/Paris" {
			t.Error("unexpected timezone", venueModel.Timezone)
		}
	}()

	// case: nothing to go on falls back to the legacy default
	func() {
		venueModel := model.Venue{
			ID:   uuid.NewString(),
			Name: "Mystery Venue",
		}
		if err := venueModel.Upsert(context.Background(), bundb); err != nil {
			t.Error(err)
		}
		if venueModel.Timezone != "America/New_York" {
			t.Error("unexpected timezone", venueModel.Timezone)
		}
	}()
}

func TestLogActivity(t *testing.T) {
	bundb := newTestDB(t)

	if err := model.LogActivity(context.Background(), bundb, "", "event", "evt-1", "created"); err != nil {
		t.Error(err)
	}
	if err := model.LogActivity(context.Background(), bundb, "1", "", "evt-1", "created"); err == nil {
		t.Error("blank entity type should fail")
	}

	entry := new(model.ActivityLog)
	if err := bundb.NewSelect().
		Model(entry).
		Where("entity_id = ?", "evt-1").
		Scan(context.Background()); err != nil {
		t.Error(err)
	}
	if entry.AppID != "1" {
		t.Error("app id should default to 1")
	}
	if entry.Action != "created" {
		t.Error("unexpected action", entry.Action)
	}
}
