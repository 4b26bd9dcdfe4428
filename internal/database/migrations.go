package database

import (
	"fmt"

	"gorm.io/gorm"
)

type secondaryIndex struct {
	table   string
	name    string
	columns string
}

// secondaryIndexes back the list filters and the reverse lookups of the join tables.
var secondaryIndexes = []secondaryIndex{
	{"tasks", "idx_tasks_title", "title"},
	{"tasks", "idx_tasks_is_completed", "is_completed"},
	{"project_participants", "idx_project_participants_user_id", "user_id"},
	{"task_assigned_users", "idx_task_assigned_users_user_id", "user_id"},
	{"task_tags", "idx_task_tags_tag_id", "tag_id"},
}

// EnsureIndexes creates the secondary indexes that are missing.
func EnsureIndexes(db *gorm.DB) error {
	_, err := ensureIndexes(db)
	return err
}

// ensureIndexes returns the names of the indexes it created.
func ensureIndexes(db *gorm.DB) ([]string, error) {
	migrator := db.Migrator()
	var created []string

	for _, idx := range secondaryIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return created, fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
		created = append(created, idx.name)
	}

	return created, nil
}
