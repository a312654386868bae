package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func save(t *testing.T, store *Store, gameID string, score int) string {
	t.Helper()
	_, runID, err := store.SaveResult(Result{GameID: gameID, Score: score})
	require.NoError(t, err)
	return runID
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file should exist")
}

func TestStoreOpenFailsOnUnwritableDir(t *testing.T) {
	// A regular file where a parent directory should be.
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	_, err := Open(filepath.Join(blocker, "scores.db"))
	assert.ErrorContains(t, err, "storage:")
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	_, runID, err := store.SaveResult(Result{
		GameID:   "tetris",
		Player:   "alice",
		Score:    1200,
		Lines:    14,
		Level:    2,
		Pieces:   48,
		Duration: 95 * time.Second,
	})
	require.NoError(t, err)
	_, err = uuid.Parse(runID)
	require.NoError(t, err, "run id should be a UUID")

	save(t, store, "tetris", 300)
	save(t, store, "tetris", 5000)
	save(t, store, "tetris_classic", 700)

	scores, err := store.TopScores("tetris", 10)
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, 5000, scores[0].Score)
	assert.Equal(t, 1200, scores[1].Score)
	assert.Equal(t, 300, scores[2].Score)

	top := scores[1]
	assert.Equal(t, runID, top.RunID)
	assert.Equal(t, "alice", top.Player)
	assert.Equal(t, 14, top.Lines)
	assert.Equal(t, 2, top.Level)
	assert.Equal(t, 48, top.Pieces)
	assert.Equal(t, 95*time.Second, top.Duration)
	assert.False(t, top.CreatedAt.IsZero())

	classic, err := store.TopScores("tetris_classic", 10)
	require.NoError(t, err)
	assert.Len(t, classic, 1)
}

func TestStoreSaveResultValidation(t *testing.T) {
	store := openTestStore(t)

	_, _, err := store.SaveResult(Result{Score: 10})
	assert.Error(t, err)

	_, _, err = store.SaveResult(Result{GameID: "tetris", RunID: "not-a-uuid"})
	assert.Error(t, err)

	id := uuid.NewString()
	_, got, err := store.SaveResult(Result{GameID: "tetris", RunID: id, Score: 1})
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, _, err = store.SaveResult(Result{GameID: "tetris", RunID: id, Score: 2})
	assert.Error(t, err, "a run is saved once")
}

func TestStoreScoreByRun(t *testing.T) {
	store := openTestStore(t)
	runID := save(t, store, "tetris", 800)

	e, err := store.ScoreByRun(runID)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, 800, e.Score)

	missing, err := store.ScoreByRun(uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 5; i++ {
		save(t, store, "tetris", (i+1)*100)
	}

	scores, err := store.TopScores("tetris", 3)
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, []int{500, 400, 300}, []int{scores[0].Score, scores[1].Score, scores[2].Score})

	all, err := store.TopScores("tetris", 0)
	require.NoError(t, err)
	assert.Len(t, all, 5, "non-positive limit falls back to 10")
}

func TestStoreTopScoresTiesKeepInsertOrder(t *testing.T) {
	store := openTestStore(t)
	first := save(t, store, "tetris", 100)
	second := save(t, store, "tetris", 100)

	scores, err := store.TopScores("tetris", 10)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, first, scores[0].RunID)
	assert.Equal(t, second, scores[1].RunID)
}

func TestStoreHighScoreAndRank(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("tetris")
	require.NoError(t, err)
	assert.Equal(t, 0, high)

	rank, err := store.Rank("tetris", 50)
	require.NoError(t, err)
	assert.Equal(t, 1, rank)

	save(t, store, "tetris", 100)
	save(t, store, "tetris", 300)
	save(t, store, "tetris", 200)

	high, err = store.HighScore("tetris")
	require.NoError(t, err)
	assert.Equal(t, 300, high)

	rank, err = store.Rank("tetris", 250)
	require.NoError(t, err)
	assert.Equal(t, 2, rank)

	rank, err = store.Rank("tetris", 300)
	require.NoError(t, err)
	assert.Equal(t, 1, rank, "ties share the better rank")
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)
	save(t, store, "tetris", 100)
	save(t, store, "tetris", 200)
	save(t, store, "tetris_classic", 300)

	require.NoError(t, store.ClearScores("tetris"))

	scores, err := store.TopScores("tetris", 10)
	require.NoError(t, err)
	assert.Empty(t, scores)

	classic, err := store.TopScores("tetris_classic", 10)
	require.NoError(t, err)
	assert.Len(t, classic, 1, "other games are not affected")
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("tetris")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.GamesCount)
	assert.True(t, empty.LastPlayed.IsZero())

	for _, r := range []Result{
		{GameID: "tetris", Score: 100, Lines: 1, Level: 1},
		{GameID: "tetris", Score: 300, Lines: 12, Level: 2},
		{GameID: "tetris_classic", Score: 50, Lines: 0, Level: 1},
	} {
		_, _, err := store.SaveResult(r)
		require.NoError(t, err)
	}

	stats, err := store.GetGameStats("tetris")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.GamesCount)
	assert.Equal(t, 300, stats.HighScore)
	assert.InDelta(t, 200.0, stats.AvgScore, 0.001)
	assert.Equal(t, int64(13), stats.TotalLines)
	assert.Equal(t, 2, stats.BestLevel)
	assert.False(t, stats.LastPlayed.IsZero())

	all, err := store.GetAllGamesStats()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 1, all["tetris_classic"].GamesCount)
	assert.Equal(t, 300, all["tetris"].HighScore)
}

func TestStoreConcurrentSaves(t *testing.T) {
	store := openTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			_, _, err := store.SaveResult(Result{GameID: "tetris", Score: score})
			assert.NoError(t, err)
		}(i * 10)
	}
	wg.Wait()

	stats, err := store.GetGameStats("tetris")
	require.NoError(t, err)
	assert.Equal(t, 8, stats.GamesCount)
}
