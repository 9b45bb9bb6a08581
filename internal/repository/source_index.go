package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"source-manager-backend/internal/database/models"
)

// SourceIndexRepository handles database operations for the source index
type SourceIndexRepository struct {
	db *gorm.DB
}

// NewSourceIndexRepository creates a new source index repository
func NewSourceIndexRepository(db *gorm.DB) *SourceIndexRepository {
	return &SourceIndexRepository{db: db}
}

// Upsert inserts an entry or replaces the existing row with the same id
func (r *SourceIndexRepository) Upsert(entry *models.SourceIndexEntry) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(entry).Error
}

// GetByID retrieves an index entry by source id
func (r *SourceIndexRepository) GetByID(id string) (*models.SourceIndexEntry, error) {
	var entry models.SourceIndexEntry
	if err := r.db.First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Search retrieves entries matching the query against title or authors,
// optionally narrowed by region and source type, with pagination
func (r *SourceIndexRepository) Search(query, region, sourceType string, limit, offset int) ([]models.SourceIndexEntry, int64, error) {
	var entries []models.SourceIndexEntry
	var total int64

	tx := r.db.Model(&models.SourceIndexEntry{})
	if query != "" {
		like := "%" + query + "%"
		tx = tx.Where("title LIKE ? OR authors LIKE ?", like, like)
	}
	if region != "" {
		tx = tx.Where("region = ?", region)
	}
	if sourceType != "" {
		tx = tx.Where("source_type = ?", sourceType)
	}

	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := tx.Limit(limit).Offset(offset).Order("title ASC").Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// DeleteByRegion removes every entry belonging to a region
func (r *SourceIndexRepository) DeleteByRegion(region string) error {
	return r.db.Where("region = ?", region).Delete(&models.SourceIndexEntry{}).Error
}

// CountByRegion returns the number of indexed sources per region
func (r *SourceIndexRepository) CountByRegion() (map[string]int64, error) {
	type row struct {
		Region string
		Count  int64
	}
	var rows []row
	err := r.db.Model(&models.SourceIndexEntry{}).
		Select("region, count(*) as count").
		Group("region").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Region] = rw.Count
	}
	return counts, nil
}
