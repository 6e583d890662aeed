// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/finance-assistant/backend/internal/application/adapter"
	"github.com/finance-assistant/backend/internal/domain/entity"
	domainerror "github.com/finance-assistant/backend/internal/domain/error"
	"github.com/finance-assistant/backend/internal/integration/persistence/model"
)

// entryRepository implements the adapter.EntryRepository interface.
type entryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates a new ledger entry repository instance.
func NewEntryRepository(db *gorm.DB) adapter.EntryRepository {
	return &entryRepository{
		db: db,
	}
}

// Create inserts a new entry and copies the assigned ID back.
func (r *entryRepository) Create(ctx context.Context, entry *entity.LedgerEntry) error {
	entryModel := model.LedgerEntryFromEntity(entry)
	result := r.db.WithContext(ctx).Create(entryModel)
	if result.Error != nil {
		return domainerror.NewEntryError(
			domainerror.ErrCodePersistenceFailed,
			"failed to create ledger entry",
			result.Error,
		)
	}
	entry.ID = entryModel.ID
	return nil
}

// FindAll retrieves every entry in insertion order.
func (r *entryRepository) FindAll(ctx context.Context) ([]*entity.LedgerEntry, error) {
	var entryModels []model.LedgerEntryModel
	result := r.db.WithContext(ctx).Order("id ASC").Find(&entryModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toEntities(entryModels), nil
}

// FindByID retrieves an entry by its ID.
func (r *entryRepository) FindByID(ctx context.Context, id uint) (*entity.LedgerEntry, error) {
	var entryModel model.LedgerEntryModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&entryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrEntryNotFound
		}
		return nil, result.Error
	}
	return entryModel.ToEntity(), nil
}

// FindByDateRange retrieves entries with start <= data <= end.
func (r *entryRepository) FindByDateRange(ctx context.Context, start, end string) ([]*entity.LedgerEntry, error) {
	var entryModels []model.LedgerEntryModel
	result := r.db.WithContext(ctx).
		Where("data >= ? AND data <= ?", start, end).
		Order("id ASC").
		Find(&entryModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toEntities(entryModels), nil
}

// FindByCategory retrieves entries with an exact category match.
func (r *entryRepository) FindByCategory(ctx context.Context, category string) ([]*entity.LedgerEntry, error) {
	var entryModels []model.LedgerEntryModel
	result := r.db.WithContext(ctx).
		Where("categoria = ?", category).
		Order("id ASC").
		Find(&entryModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toEntities(entryModels), nil
}

// Update replaces all mutable fields of an existing entry.
func (r *entryRepository) Update(ctx context.Context, entry *entity.LedgerEntry) error {
	entryModel := model.LedgerEntryFromEntity(entry)
	result := r.db.WithContext(ctx).
		Model(&model.LedgerEntryModel{}).
		Where("id = ?", entry.ID).
		Select("tipo", "valor", "item", "quantidade", "estabelecimento", "data", "categoria", "forma_pagamento", "tags").
		Updates(entryModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrEntryNotFound
	}
	return nil
}

// Delete removes an entry by ID.
func (r *entryRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.LedgerEntryModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrEntryNotFound
	}
	return nil
}

func toEntities(entryModels []model.LedgerEntryModel) []*entity.LedgerEntry {
	entries := make([]*entity.LedgerEntry, len(entryModels))
	for i, em := range entryModels {
		entries[i] = em.ToEntity()
	}
	return entries
}
