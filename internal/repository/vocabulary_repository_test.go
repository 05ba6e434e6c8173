package repository

import (
	"strings"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunDB opens a gorm handle that builds SQL without executing it, and
// captures the first statement each repository call generates.
func dryRunDB(t *testing.T) (*gorm.DB, *string) {
	t.Helper()
	db, err := gorm.Open(postgres.Open("host=localhost user=test dbname=test"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	captured := new(string)
	err = db.Callback().Query().After("gorm:query").Register("test:capture_sql", func(tx *gorm.DB) {
		if *captured == "" {
			*captured = tx.Statement.SQL.String()
		}
	})
	if err != nil {
		t.Fatalf("register capture callback: %v", err)
	}
	return db, captured
}

func TestFindUnseenByUserSelectsNeverReviewed(t *testing.T) {
	db, captured := dryRunDB(t)
	repo := NewVocabularyRepository(db)

	if _, err := repo.FindUnseenByUser(1, 10); err != nil {
		t.Fatalf("FindUnseenByUser: %v", err)
	}
	// A lapse (Again) resets repetitions to zero, so the counter cannot
	// distinguish a new word from a relearned one; only the absence of any
	// review does.
	if !strings.Contains(*captured, "last_review_date IS NULL") {
		t.Errorf("query %q does not restrict to never-reviewed items", *captured)
	}
	if strings.Contains(*captured, "repetitions") {
		t.Errorf("query %q still keys on repetitions", *captured)
	}
}

func TestFindDueByUserSelectsByReviewDate(t *testing.T) {
	db, captured := dryRunDB(t)
	repo := NewVocabularyRepository(db)

	if _, err := repo.FindDueByUser(1, time.Now(), 10); err != nil {
		t.Fatalf("FindDueByUser: %v", err)
	}
	if !strings.Contains(*captured, "next_review_date <=") {
		t.Errorf("query %q does not filter on the due date", *captured)
	}
}
