package serviceImp

import (
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"webplanner/entities"
	"webplanner/pkg/kb/repositoryImp"
)

func newKBSvc(t *testing.T) *Svc {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&entities.ResearchDoc{}, &entities.ResearchChunk{}))
	// nil embedder: keyword fallback only
	return New(repositoryImp.New(db), nil)
}

func TestChunkText(t *testing.T) {
	assert.Empty(t, chunkText("", 100))

	one := chunkText("short text", 100)
	require.Len(t, one, 1)
	assert.Equal(t, "short text", one[0])

	// splits at the first newline after the budget, never mid-line
	long := strings.Repeat("lorem ipsum dolor\n", 20)
	parts := chunkText(long, 50)
	require.Greater(t, len(parts), 1)
	for _, p := range parts[:len(parts)-1] {
		assert.True(t, strings.HasSuffix(p, "\n"))
	}
	assert.Equal(t, long, strings.Join(parts, ""))
}

func TestUpsertDocument_ChunksWithoutEmbedder(t *testing.T) {
	svc := newKBSvc(t)

	text := strings.Repeat("sourdough starter care\n", 120)
	doc, n, err := svc.UpsertDocument("Baking notes", "bakery", text, "")
	require.NoError(t, err)
	assert.NotZero(t, doc.DocID)
	assert.Greater(t, n, 1)
}

func TestSearch_KeywordFallback(t *testing.T) {
	svc := newKBSvc(t)

	_, _, err := svc.UpsertDocument("Baking", "", "sourdough bread needs a healthy starter", "")
	require.NoError(t, err)
	_, _, err = svc.UpsertDocument("Maps", "", "tile servers and geocoding APIs for store locators", "")
	require.NoError(t, err)

	got, err := svc.Search("sourdough starter", 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Text, "sourdough")

	// both docs match "and"-free multi-term queries by per-term presence
	got, err = svc.Search("geocoding sourdough", 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = svc.Search("nothing relevant here", 5)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = svc.Search("   ", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, cosine([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosine([]float32{1, 0}, []float32{0, 3}), 1e-9)
	assert.Zero(t, cosine([]float32{0, 0}, []float32{1, 1}))
}
