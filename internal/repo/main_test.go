package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/pkordes/train-reservation/testutil"
)

// TestMain migrates the test database once for the package. Without
// TEST_DATABASE_URL every test skips itself.
func TestMain(m *testing.M) {
	if err := testutil.Migrate(context.Background()); err != nil {
		log.Fatalf("TestMain: %v", err)
	}
	os.Exit(m.Run())
}
