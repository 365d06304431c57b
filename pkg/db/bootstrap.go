package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/MichIoan/DP-API-2024-sub000/pkg/db/models"
)

// Rank and minimum-age expressions shared by the age_appropriate_content view.
const (
	mediaRankExpr = `CASE m.classification WHEN 'G' THEN 0 WHEN 'PG' THEN 1 WHEN 'PG13' THEN 2 WHEN 'R' THEN 3 ELSE 4 END`
	prefRankExpr  = `CASE p.content_classification WHEN 'G' THEN 0 WHEN 'PG' THEN 1 WHEN 'PG13' THEN 2 WHEN 'R' THEN 3 ELSE 4 END`
	minAgeExpr    = `CASE m.classification WHEN 'G' THEN 0 WHEN 'PG' THEN 7 WHEN 'PG13' THEN 13 WHEN 'R' THEN 17 ELSE 18 END`
)

var sqliteViews = []string{
	`CREATE VIEW IF NOT EXISTS watch_history_details AS
SELECT wh.id, wh.profile_id, wh.media_id, wh.progress, wh.resume_to, wh.times_watched,
       wh.watched_at, wh.viewing_status, m.title, m.type AS media_type, m.duration,
       m.classification, m.season_id, m.episode_number
FROM watch_history wh
JOIN media m ON m.id = wh.media_id`,
	`CREATE VIEW IF NOT EXISTS watch_list_details AS
SELECT wl.id, wl.profile_id, wl.media_id, wl.created_at AS added_at, m.title,
       m.type AS media_type, m.duration, m.classification, m.release_date
FROM watch_list wl
JOIN media m ON m.id = wl.media_id`,
	fmt.Sprintf(`CREATE VIEW IF NOT EXISTS age_appropriate_content AS
SELECT p.id AS profile_id, m.id AS media_id, m.title, m.type AS media_type,
       m.classification, m.duration, m.release_date
FROM profiles p
JOIN media m ON (%s) <= (%s) AND (%s) <= p.age`, mediaRankExpr, prefRankExpr, minAgeExpr),
}

// BootstrapSQLite creates the schema and read views on a sqlite connection.
// Postgres schemas come from the goose migrations instead, which also define
// the stored routines.
func BootstrapSQLite(conn *gorm.DB) error {
	if name := conn.Dialector.Name(); name != "sqlite" {
		return fmt.Errorf("bootstrap requires sqlite, got %s", name)
	}
	if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return fmt.Errorf("enabling foreign keys: %w", err)
	}
	if err := conn.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrating models: %w", err)
	}
	for _, stmt := range sqliteViews {
		if err := conn.Exec(stmt).Error; err != nil {
			return fmt.Errorf("creating view: %w", err)
		}
	}
	return nil
}
