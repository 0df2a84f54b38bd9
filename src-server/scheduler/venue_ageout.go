package scheduler

import (
	"context"
	"log/slog"
	"time"

	"tangocal/src-server/model"
	"tangocal/src-server/utils"
)

const (
	venueInactiveAfterDays = 366
	venueArchiveAfterDays  = 730
)

// VenueAgeOut deactivates venues with no events for over a year, archives
// venues idle for over two years, and reactivates deactivated venues that
// picked up a recent event. Runs weekly.
func VenueAgeOut(as *utils.AppState) {
	for {
		if err := ageOutVenues(as); err != nil {
			slog.Error("VenueAgeOut: sweep failed", "error", err)
		}
		time.Sleep(7 * 24 * time.Hour)
	}
}

func ageOutVenues(as *utils.AppState) error {
	ctx := context.Background()
	now := time.Now().UTC()

	venues := make([]model.Venue, 0)
	if err := as.BunDB.NewSelect().
		Model(&venues).
		Where("is_archived = ?", false).
		Scan(ctx); err != nil {
		return err
	}

	for i := range venues {
		venue := &venues[i]

		var lastEventUnix int64
		if err := as.BunDB.NewSelect().
			Model((*model.Event)(nil)).
			ColumnExpr("COALESCE(MAX(start_date), 0)").
			Where("venue_id = ?", venue.ID).
			Scan(ctx, &lastEventUnix); err != nil {
			slog.Warn("VenueAgeOut: can't get last event", "venue", venue.ID, "error", err)
			continue
		}

		// a venue with no events yet ages from its creation date
		lastActivity := venue.CreatedAt
		if lastEventUnix > lastActivity {
			lastActivity = lastEventUnix
		}
		idleDays := int(now.Sub(time.Unix(lastActivity, 0)).Hours() / 24)

		switch {
		case !venue.IsActive && idleDays <= venueInactiveAfterDays:
			venue.IsActive = true
			venue.ReactivatedAtUnixUTC = now.Unix()
			venue.ReactivationReason = "recent-event"
			if err := venue.Upsert(ctx, as.BunDB); err != nil {
				slog.Warn("VenueAgeOut: can't reactivate venue", "venue", venue.ID, "error", err)
				continue
			}
			slog.Info("VenueAgeOut: venue reactivated", "venue", venue.ID)
			if err := model.LogActivity(ctx, as.BunDB, venue.AppID, "venue", venue.ID, "reactivated"); err != nil {
				slog.Warn("can't log activity", "error", err)
			}
		case venue.IsActive && idleDays > venueArchiveAfterDays:
			venue.IsActive = false
			venue.IsArchived = true
			if err := venue.Upsert(ctx, as.BunDB); err != nil {
				slog.Warn("VenueAgeOut: can't archive venue", "venue", venue.ID, "error", err)
				continue
			}
			slog.Info("VenueAgeOut: venue archived", "venue", venue.ID, "idleDays", idleDays)
			if err := model.LogActivity(ctx, as.BunDB, venue.AppID, "venue", venue.ID, "archived"); err != nil {
				slog.Warn("can't log activity", "error", err)
			}
		case venue.IsActive && idleDays > venueInactiveAfterDays:
			venue.IsActive = false
			if err := venue.Upsert(ctx, as.BunDB); err != nil {
				slog.Warn("VenueAgeOut: can't deactivate venue", "venue", venue.ID, "error", err)
				continue
			}
			slog.Info("VenueAgeOut: venue deactivated", "venue", venue.ID, "idleDays", idleDays)
			if err := model.LogActivity(ctx, as.BunDB, venue.AppID, "venue", venue.ID, "deactivated"); err != nil {
				slog.Warn("can't log activity", "error", err)
			}
		case !venue.IsActive && idleDays > venueArchiveAfterDays:
			venue.IsArchived = true
			if err := venue.Upsert(ctx, as.BunDB); err != nil {
				slog.Warn("VenueAgeOut: can't archive venue", "venue", venue.ID, "error", err)
				continue
			}
			slog.Info("VenueAgeOut: venue archived", "venue", venue.ID, "idleDays", idleDays)
			if err := model.LogActivity(ctx, as.BunDB, venue.AppID, "venue", venue.ID, "archived"); err != nil {
				slog.Warn("can't log activity", "error", err)
			}
		}
	}
	return nil
}
