package persist

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"

	"github.com/decker502/lastfighter/pkg/game"
)

// openTestDB 连接 LASTFIGHTER_TEST_DSN 指向的数据库，未设置时跳过
func openTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("LASTFIGHTER_TEST_DSN")
	if dsn == "" {
		t.Skip("LASTFIGHTER_TEST_DSN not set")
	}
	ctx := context.Background()
	db, err := Open(ctx, dsn, nil)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(db.Close)
	if _, err := db.Pool.Exec(ctx, `TRUNCATE high_scores, match_results`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return db
}

func TestScoreRepoRoundTrip(t *testing.T) {
	repo := NewScoreRepo(openTestDB(t))

	if _, err := repo.LoadHighScores(); !errors.Is(err, game.ErrNoHighScores) {
		t.Fatalf("empty table error = %v, want ErrNoHighScores", err)
	}

	want := []int{1000, 2000, 3000, 4000, 9000}
	if err := repo.SaveHighScores(want); err != nil {
		t.Fatalf("SaveHighScores() error: %v", err)
	}
	// 再次保存覆盖原值
	want[4] = 12000
	if err := repo.SaveHighScores(want); err != nil {
		t.Fatalf("SaveHighScores() error: %v", err)
	}
	got, err := repo.LoadHighScores()
	if err != nil {
		t.Fatalf("LoadHighScores() error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadHighScores() = %v, want %v", got, want)
	}

	if err := repo.SaveHighScores([]int{1}); err == nil {
		t.Error("SaveHighScores() with 1 entry should fail")
	}
}

func TestScoreRepoThroughManager(t *testing.T) {
	repo := NewScoreRepo(openTestDB(t))
	m := game.NewHighScoreManager(repo, nil)
	m.Record(8000)
	m.Record(500)

	reloaded := game.NewHighScoreManager(repo, nil)
	if got, want := reloaded.Scores(), []int{2000, 3000, 4000, 5000, 8000}; !reflect.DeepEqual(got, want) {
		t.Errorf("Scores() = %v, want %v", got, want)
	}

	best, err := repo.BestMatches(context.Background(), 5)
	if err != nil {
		t.Fatalf("BestMatches() error: %v", err)
	}
	if len(best) != 2 || best[0].Score != 8000 || !best[0].NewRecord || best[1].NewRecord {
		t.Errorf("BestMatches() = %+v, want 8000 (new) then 500", best)
	}
}
