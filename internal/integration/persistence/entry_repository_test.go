// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-assistant/backend/internal/application/adapter"
	"github.com/finance-assistant/backend/internal/domain/entity"
	domainerror "github.com/finance-assistant/backend/internal/domain/error"
	"github.com/finance-assistant/backend/internal/integration/persistence/model"
)

func newTestRepository(t *testing.T) adapter.EntryRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&model.LedgerEntryModel{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return NewEntryRepository(db)
}

func newEntry(amount float64, date, category string) *entity.LedgerEntry {
	return &entity.LedgerEntry{
		Kind:          entity.EntryKindExpense,
		Amount:        decimal.NewFromFloat(amount),
		Label:         "Teste",
		Quantity:      1,
		Source:        "Não informado",
		OccurredOn:    date,
		Category:      category,
		PaymentMethod: "PIX",
		Tags:          []string{"teste"},
		CreatedAt:     time.Now().UTC(),
	}
}

func TestEntryRepository_CreateAndFindByID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created := newEntry(25.5, "2024-03-15", "Alimentação")
	if err := repo.Create(ctx, created); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected the assigned ID to be copied back")
	}

	found, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found.Amount.Equal(decimal.NewFromFloat(25.5)) {
		t.Errorf("expected amount 25.5, got %s", found.Amount)
	}
	if found.Category != "Alimentação" {
		t.Errorf("expected category Alimentação, got %s", found.Category)
	}
	if len(found.Tags) != 1 || found.Tags[0] != "teste" {
		t.Errorf("expected tags to round-trip, got %v", found.Tags)
	}
}

func TestEntryRepository_FindByIDMiss(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.FindByID(context.Background(), 42)
	if !errors.Is(err, domainerror.ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestEntryRepository_FindAllKeepsInsertionOrder(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for _, date := range []string{"2024-03-10", "2024-03-01", "2024-03-20"} {
		if err := repo.Create(ctx, newEntry(10, date, "Outros")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	entries, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	// Insertion order, not date order.
	if entries[0].OccurredOn != "2024-03-10" || entries[2].OccurredOn != "2024-03-20" {
		t.Errorf("unexpected order: %s, %s, %s",
			entries[0].OccurredOn, entries[1].OccurredOn, entries[2].OccurredOn)
	}
}

func TestEntryRepository_FindByDateRangeIsInclusive(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	dates := []string{"2024-01-01", "2024-01-15", "2024-01-31", "2024-02-01"}
	for _, date := range dates {
		if err := repo.Create(ctx, newEntry(10, date, "Outros")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	entries, err := repo.FindByDateRange(ctx, "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries inside the range, got %d", len(entries))
	}
	for _, e := range entries {
		if e.OccurredOn == "2024-02-01" {
			t.Error("2024-02-01 should be outside the range")
		}
	}
}

func TestEntryRepository_FindByCategory(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.Create(ctx, newEntry(30, "2024-03-02", "Transporte")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Create(ctx, newEntry(20, "2024-03-03", "Alimentação")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := repo.FindByCategory(ctx, "Transporte")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Category != "Transporte" {
		t.Errorf("unexpected category %s", entries[0].Category)
	}
}

func TestEntryRepository_Update(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created := newEntry(15, "2024-03-04", "Alimentação")
	if err := repo.Create(ctx, created); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	created.Amount = decimal.NewFromInt(18)
	created.Category = "Lazer"
	if err := repo.Update(ctx, created); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found.Amount.Equal(decimal.NewFromInt(18)) {
		t.Errorf("expected amount 18, got %s", found.Amount)
	}
	if found.Category != "Lazer" {
		t.Errorf("expected category Lazer, got %s", found.Category)
	}
}

func TestEntryRepository_UpdateMiss(t *testing.T) {
	repo := newTestRepository(t)

	missing := newEntry(10, "2024-03-04", "Outros")
	missing.ID = 99
	err := repo.Update(context.Background(), missing)
	if !errors.Is(err, domainerror.ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestEntryRepository_Delete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created := newEntry(10, "2024-03-06", "Alimentação")
	if err := repo.Create(ctx, created); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.FindByID(ctx, created.ID); !errors.Is(err, domainerror.ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound after delete, got %v", err)
	}

	if err := repo.Delete(ctx, created.ID); !errors.Is(err, domainerror.ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound on a second delete, got %v", err)
	}
}
