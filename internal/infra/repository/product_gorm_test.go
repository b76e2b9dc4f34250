package repository

import (
	"context"
	"encoding/json"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/inventory-api/internal/audit"
	domain "github.com/BruksfildServices01/inventory-api/internal/domain/product"
	"github.com/BruksfildServices01/inventory-api/internal/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.Product{}, &models.AuditLog{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestRepo(t *testing.T) (*ProductGormRepository, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewProductGormRepository(db, audit.New(db)), db
}

func validInput() domain.Input {
	return domain.Input{
		Name:        "Wireless Mouse",
		Description: "A sleek electronics accessory",
		Tags:        []string{"electronics", "accessory"},
		Price:       29.99,
		Category:    "peripherals",
		Brand:       "Acme",
	}
}

func auditEntries(t *testing.T, db *gorm.DB) []models.AuditLog {
	t.Helper()
	var entries []models.AuditLog
	if err := db.Order("id ASC").Find(&entries).Error; err != nil {
		t.Fatalf("failed to load audit entries: %v", err)
	}
	return entries
}

func TestCreateAndGetByID(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if created.ID == "" {
		t.Error("expected assigned id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected assigned timestamps")
	}

	found, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.Name != "Wireless Mouse" || found.Price != 29.99 {
		t.Errorf("round trip mismatch: %+v", found)
	}
	if len(found.Tags) != 2 || found.Tags[0] != "electronics" {
		t.Errorf("tags not preserved in order: %v", found.Tags)
	}

	entries := auditEntries(t, db)
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	if entries[0].Action != audit.ActionCreate || entries[0].ProductID != created.ID {
		t.Errorf("unexpected audit entry: %+v", entries[0])
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	if _, err := repo.GetByID(context.Background(), "no-such-id"); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	in := validInput()
	in.Name = "Ergonomic Mouse"
	in.Tags = []string{"ergonomic"}
	in.Brand = ""

	updated, err := repo.Update(ctx, created.ID, in)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Name != "Ergonomic Mouse" {
		t.Errorf("expected replaced name, got %q", updated.Name)
	}
	// Full replacement: unset fields are cleared, not kept.
	if updated.Brand != "" {
		t.Errorf("expected brand cleared, got %q", updated.Brand)
	}
	if len(updated.Tags) != 1 || updated.Tags[0] != "ergonomic" {
		t.Errorf("expected replaced tags, got %v", updated.Tags)
	}

	entries := auditEntries(t, db)
	if len(entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(entries))
	}
	last := entries[1]
	if last.Action != audit.ActionUpdate || last.ProductID != created.ID {
		t.Errorf("unexpected audit entry: %+v", last)
	}

	// UPDATE details carry the submitted payload, not the stored row.
	var details map[string]any
	if err := json.Unmarshal([]byte(last.Details), &details); err != nil {
		t.Fatalf("audit details not JSON: %v", err)
	}
	if details["name"] != "Ergonomic Mouse" {
		t.Errorf("unexpected audit details: %v", details)
	}
	if _, hasID := details["id"]; hasID {
		t.Error("audit details for UPDATE should not contain the stored record")
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	if _, err := repo.Update(context.Background(), "no-such-id", validInput()); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate_SoftDeletedRowIsStillWritable(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := repo.SoftDelete(ctx, created.ID); err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}

	if _, err := repo.Update(ctx, created.ID, validInput()); err != nil {
		t.Errorf("Update() on soft-deleted row should succeed, got %v", err)
	}
}

func TestSoftDelete(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	deleted, err := repo.SoftDelete(ctx, created.ID)
	if err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}
	if deleted.DeletedAt == nil {
		t.Fatal("expected deleted_at to be set")
	}

	// Invisible to single fetch...
	if _, err := repo.GetByID(ctx, created.ID); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound after soft delete, got %v", err)
	}

	// ...but the row itself persists for the audit trail.
	var raw models.Product
	if err := db.Where("id = ?", created.ID).First(&raw).Error; err != nil {
		t.Fatalf("underlying row should still exist: %v", err)
	}

	entries := auditEntries(t, db)
	if len(entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(entries))
	}
	if entries[1].Action != audit.ActionSoftDelete {
		t.Errorf("expected SOFT_DELETE entry, got %+v", entries[1])
	}
}

func TestSoftDelete_NotFound(t *testing.T) {
	repo, db := newTestRepo(t)

	if _, err := repo.SoftDelete(context.Background(), "no-such-id"); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if entries := auditEntries(t, db); len(entries) != 0 {
		t.Errorf("failed mutation must not produce audit entries, got %d", len(entries))
	}
}

func TestList_ExcludesSoftDeleted(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	kept, err := repo.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	gone, err := repo.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := repo.SoftDelete(ctx, gone.ID); err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}

	products, err := repo.List(ctx, domain.ListParams{Limit: 10})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(products) != 1 || products[0].ID != kept.ID {
		t.Errorf("expected only the non-deleted product, got %+v", products)
	}
}

func TestList_Search(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	mouse := validInput()
	keyboard := domain.Input{
		Name:        "Mechanical Keyboard",
		Description: "Clicky keys",
		Tags:        []string{"mechanical-keyboards"},
		Price:       89.99,
	}
	if _, err := repo.Create(ctx, mouse); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := repo.Create(ctx, keyboard); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("name match is case-insensitive", func(t *testing.T) {
		products, err := repo.List(ctx, domain.ListParams{Search: "wIrElEsS"})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(products) != 1 || products[0].Name != "Wireless Mouse" {
			t.Errorf("unexpected search result: %+v", products)
		}
	})

	t.Run("tag match is exact", func(t *testing.T) {
		products, err := repo.List(ctx, domain.ListParams{Search: "electronics"})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(products) != 1 || products[0].Name != "Wireless Mouse" {
			t.Errorf("unexpected search result: %+v", products)
		}

		// "mechanical" is only a prefix of the keyboard's tag, so it must
		// not match via tags (and matches the keyboard's name instead).
		products, err = repo.List(ctx, domain.ListParams{Search: "keyboards"})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(products) != 0 {
			t.Errorf("partial tag match should not hit, got %+v", products)
		}
	})

	t.Run("wildcards are literal", func(t *testing.T) {
		if _, err := repo.Create(ctx, domain.Input{
			Name:        "100% Cotton Shirt",
			Description: "Plain tee",
			Price:       19.99,
		}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		products, err := repo.List(ctx, domain.ListParams{Search: "100%"})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(products) != 1 || products[0].Name != "100% Cotton Shirt" {
			t.Errorf("%% must match only itself, got %+v", products)
		}

		products, err = repo.List(ctx, domain.ListParams{Search: "W_reless"})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(products) != 0 {
			t.Errorf("_ must not act as a single-character wildcard, got %+v", products)
		}
	})

	t.Run("quotes cannot widen the tag match", func(t *testing.T) {
		if _, err := repo.Create(ctx, domain.Input{
			Name:        "Desk Lamp",
			Description: "Adjustable arm",
			Tags:        []string{"lighting", "office"},
			Price:       39.99,
		}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		// A term carrying its own quotes would substring-match two adjacent
		// tags in the stored JSON array if it passed through unencoded.
		products, err := repo.List(ctx, domain.ListParams{Search: `lighting","office`})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(products) != 0 {
			t.Errorf("quoted search must not span tag boundaries, got %+v", products)
		}
	})
}

func TestList_CursorPagination(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	var createdIDs []string
	for i := 0; i < 5; i++ {
		in := validInput()
		p, err := repo.Create(ctx, in)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		createdIDs = append(createdIDs, p.ID)
	}

	// Walking with limit=1 visits every product exactly once, even when
	// timestamps collide (the id tie-break keeps pages stable).
	var walked []string
	cursor := ""
	for {
		page, err := repo.List(ctx, domain.ListParams{Cursor: cursor, Limit: 1})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(page) == 0 {
			break
		}
		walked = append(walked, page[0].ID)
		cursor = page[0].ID
	}

	if len(walked) != len(createdIDs) {
		t.Fatalf("expected %d products, walked %d", len(createdIDs), len(walked))
	}
	seen := map[string]bool{}
	for _, id := range walked {
		if seen[id] {
			t.Fatalf("duplicate id in pagination: %s", id)
		}
		seen[id] = true
	}
	for _, id := range createdIDs {
		if !seen[id] {
			t.Errorf("pagination omitted product %s", id)
		}
	}
}

func TestList_InvalidCursor(t *testing.T) {
	repo, _ := newTestRepo(t)

	if _, err := repo.List(context.Background(), domain.ListParams{Cursor: "no-such-id"}); err != domain.ErrInvalidCursor {
		t.Errorf("expected ErrInvalidCursor, got %v", err)
	}
}

func TestList_LimitBounds(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < domain.DefaultListLimit+2; i++ {
		if _, err := repo.Create(ctx, validInput()); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	products, err := repo.List(ctx, domain.ListParams{Limit: 0})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(products) != domain.DefaultListLimit {
		t.Errorf("expected default limit %d, got %d", domain.DefaultListLimit, len(products))
	}
}

func TestSetImageURL(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := repo.SetImageURL(ctx, created.ID, "https://cdn.example.com/p.webp")
	if err != nil {
		t.Fatalf("SetImageURL() error = %v", err)
	}
	if updated.ImageURL != "https://cdn.example.com/p.webp" {
		t.Errorf("image url not stored: %q", updated.ImageURL)
	}

	// Image updates are not catalog mutations and produce no audit entry.
	if entries := auditEntries(t, db); len(entries) != 1 {
		t.Errorf("expected only the CREATE audit entry, got %d", len(entries))
	}
}
