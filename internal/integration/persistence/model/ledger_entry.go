// Package model defines database models for persistence layer.
package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-assistant/backend/internal/domain/entity"
)

// LedgerEntryModel represents the lancamentos table in the database.
// Tags are stored as a JSON array in a text column; OccurredOn is a
// zero-padded YYYY-MM-DD string so BETWEEN queries compare correctly.
type LedgerEntryModel struct {
	ID            uint            `gorm:"primaryKey;autoIncrement"`
	Kind          string          `gorm:"column:tipo;type:varchar(10);not null;index"`
	Amount        decimal.Decimal `gorm:"column:valor;type:decimal(15,2);not null"`
	Label         string          `gorm:"column:item;type:varchar(255);not null"`
	Quantity      int             `gorm:"column:quantidade;not null;default:1"`
	Source        string          `gorm:"column:estabelecimento;type:varchar(255)"`
	OccurredOn    string          `gorm:"column:data;type:varchar(10);not null;index"`
	Category      string          `gorm:"column:categoria;type:varchar(50);not null;index"`
	PaymentMethod string          `gorm:"column:forma_pagamento;type:varchar(50)"`
	Tags          string          `gorm:"column:tags;type:text"`
	CreatedAt     time.Time       `gorm:"column:created_at;not null"`
}

// TableName returns the table name for the LedgerEntryModel.
func (LedgerEntryModel) TableName() string {
	return "lancamentos"
}

// ToEntity converts a LedgerEntryModel to a domain LedgerEntry entity.
func (m *LedgerEntryModel) ToEntity() *entity.LedgerEntry {
	tags := []string{}
	if m.Tags != "" {
		// Rows written by older clients may hold malformed tag JSON;
		// treat those as untagged.
		_ = json.Unmarshal([]byte(m.Tags), &tags)
	}

	return &entity.LedgerEntry{
		ID:            m.ID,
		Kind:          entity.EntryKind(m.Kind),
		Amount:        m.Amount,
		Label:         m.Label,
		Quantity:      m.Quantity,
		Source:        m.Source,
		OccurredOn:    m.OccurredOn,
		Category:      m.Category,
		PaymentMethod: m.PaymentMethod,
		Tags:          tags,
		CreatedAt:     m.CreatedAt,
	}
}

// LedgerEntryFromEntity converts a domain LedgerEntry entity to a LedgerEntryModel.
func LedgerEntryFromEntity(e *entity.LedgerEntry) *LedgerEntryModel {
	tags := "[]"
	if len(e.Tags) > 0 {
		if encoded, err := json.Marshal(e.Tags); err == nil {
			tags = string(encoded)
		}
	}

	return &LedgerEntryModel{
		ID:            e.ID,
		Kind:          string(e.Kind),
		Amount:        e.Amount,
		Label:         e.Label,
		Quantity:      e.Quantity,
		Source:        e.Source,
		OccurredOn:    e.OccurredOn,
		Category:      e.Category,
		PaymentMethod: e.PaymentMethod,
		Tags:          tags,
		CreatedAt:     e.CreatedAt,
	}
}
