package scheduler

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tangocal/src-server/model"
	"tangocal/src-server/utils"
)

// BackupRetention writes a daily JSON snapshot of the calendar data into the
// backup directory and prunes snapshots older than the retention window.
func BackupRetention(as *utils.AppState) {
	for {
		if err := writeBackup(as); err != nil {
			slog.Error("BackupRetention: backup failed", "error", err)
		}
		if err := pruneBackups(as); err != nil {
			slog.Error("BackupRetention: prune failed", "error", err)
		}
		time.Sleep(24 * time.Hour)
	}
}

func writeBackup(as *utils.AppState) error {
	ctx := context.Background()

	var snapshot struct {
		TakenAt    string            `json:"takenAt"`
		Events     []model.Event     `json:"events"`
		Venues     []model.Venue     `json:"venues"`
		Organizers []model.Organizer `json:"organizers"`
		Categories []model.Category  `json:"categories"`
	}
	snapshot.TakenAt = time.Now().UTC().Format(time.RFC3339)

	if err := as.BunDB.NewSelect().Model(&snapshot.Events).Scan(ctx); err != nil {
		return err
	}
	if err := as.BunDB.NewSelect().Model(&snapshot.Venues).Scan(ctx); err != nil {
		return err
	}
	if err := as.BunDB.NewSelect().Model(&snapshot.Organizers).Scan(ctx); err != nil {
		return err
	}
	if err := as.BunDB.NewSelect().Model(&snapshot.Categories).Scan(ctx); err != nil {
		return err
	}

	snapshotJson, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	backupDir := as.Config.GetBackupDir()
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return err
	}
	filename := filepath.Join(backupDir,
		"backup-"+time.Now().UTC().Format("20060102")+".json")
	if err := os.WriteFile(filename, snapshotJson, 0o644); err != nil {
		return err
	}
	slog.Info("BackupRetention: snapshot written",
		"file", filename, "events", len(snapshot.Events), "venues", len(snapshot.Venues))
	return nil
}

func pruneBackups(as *utils.AppState) error {
	backupDir := as.Config.GetBackupDir()
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -as.Config.GetBackupRetentionDays())
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "backup-") || !strings.HasSuffix(name, ".json") {
			continue
		}
		stamp, err := time.Parse("20060102", strings.TrimSuffix(strings.TrimPrefix(name, "backup-"), ".json"))
		if err != nil {
			continue
		}
		if stamp.Before(cutoff) {
			if err := os.Remove(filepath.Join(backupDir, name)); err != nil {
				slog.Warn("BackupRetention: can't remove old backup", "file", name, "error", err)
				continue
			}
			slog.Info("BackupRetention: old backup removed", "file", name)
		}
	}
	return nil
}
