package storage

import (
	"time"

	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

// NewSQLiteRepository wraps an opened gorm handle in the Repository interface.
func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateBattle(rec *BattleRecord) error {
	return r.db.Create(rec).Error
}

func (r *sqliteRepository) GetBattleByID(id string) (*BattleRecord, error) {
	var rec BattleRecord
	if err := r.db.First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *sqliteRepository) UpdateBattle(rec *BattleRecord) error {
	return r.db.Save(rec).Error
}

func (r *sqliteRepository) DeleteBattle(id string) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := tx.Where("battle_id = ?", id).Delete(&EventRecord{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&BattleRecord{}, "id = ?", id).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

func (r *sqliteRepository) ListOpenBattles() ([]BattleRecord, error) {
	var recs []BattleRecord
	err := r.db.
		Where("phase NOT IN ?", []string{"victory", "defeat", "retreat"}).
		Order("created_at desc").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *sqliteRepository) AppendEvents(events []EventRecord) error {
	if len(events) == 0 {
		return nil
	}
	return r.db.Create(&events).Error
}

func (r *sqliteRepository) GetEvents(battleID string, fromRound int) ([]EventRecord, error) {
	var events []EventRecord
	err := r.db.
		Where("battle_id = ? AND round >= ?", battleID, fromRound).
		Order("id asc").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *sqliteRepository) FindStaleBattles(cutoff time.Time) ([]BattleRecord, error) {
	var recs []BattleRecord
	err := r.db.
		Where("phase NOT IN ? AND updated_at <= ?", []string{"victory", "defeat", "retreat"}, cutoff).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}
