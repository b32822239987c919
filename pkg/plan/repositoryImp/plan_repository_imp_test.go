package repositoryImp

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"webplanner/entities"
	"webplanner/pkg/plan/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection so every goroutine shares the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&entities.User{}, &entities.Project{}, &entities.Plan{}, &entities.Activity{}))
	return db
}

func seedInitial(t *testing.T, repo repository.PlanRepository, projectID uint) *entities.Plan {
	t.Helper()
	p := &entities.Plan{ProjectID: projectID, ContentJSON: `{"planText":"# v1"}`}
	require.NoError(t, repo.CreateInitial(p))
	return p
}

func TestCreateInitial_SecondV1Conflicts(t *testing.T) {
	repo := New(newTestDB(t))
	seedInitial(t, repo, 1)

	err := repo.CreateInitial(&entities.Plan{ProjectID: 1, ContentJSON: `{}`})
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestCreateInitial_IndependentProjects(t *testing.T) {
	repo := New(newTestDB(t))
	seedInitial(t, repo, 1)
	seedInitial(t, repo, 2)

	p, err := repo.LatestByProject(2)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Version)
}

func TestCreateRefined_VersionsAreDenseAndUnique(t *testing.T) {
	repo := New(newTestDB(t))
	seedInitial(t, repo, 7)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			fb := fmt.Sprintf("feedback %d", i)
			errs[i] = repo.CreateRefined(&entities.Plan{
				ProjectID:    7,
				ContentJSON:  `{"planText":"# refined"}`,
				FeedbackText: &fb,
			})
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		require.NoError(t, err, "worker %d", i)
	}

	plans, err := repo.ListByProject(7)
	require.NoError(t, err)
	require.Len(t, plans, workers+1)

	versions := make([]int, 0, len(plans))
	for _, p := range plans {
		versions = append(versions, p.Version)
	}
	sort.Ints(versions)
	for i, v := range versions {
		assert.Equal(t, i+1, v, "versions must be dense starting at 1")
	}
}

func TestCreateRefined_IgnoresCallerVersionAndID(t *testing.T) {
	repo := New(newTestDB(t))
	seeded := seedInitial(t, repo, 3)

	p := &entities.Plan{PlanID: seeded.PlanID, ProjectID: 3, Version: 99, ContentJSON: `{}`}
	require.NoError(t, repo.CreateRefined(p))
	assert.Equal(t, 2, p.Version)
	assert.NotEqual(t, seeded.PlanID, p.PlanID)
	assert.Equal(t, entities.PlanTypeRefined, p.PlanType)
}

func TestLatestByProject(t *testing.T) {
	repo := New(newTestDB(t))
	seedInitial(t, repo, 5)
	require.NoError(t, repo.CreateRefined(&entities.Plan{ProjectID: 5, ContentJSON: `{"planText":"# v2"}`}))

	p, err := repo.LatestByProject(5)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Version)
	assert.Equal(t, entities.PlanTypeRefined, p.PlanType)

	_, err = repo.LatestByProject(999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListMetaByProject_NewestFirstWithoutContent(t *testing.T) {
	repo := New(newTestDB(t))
	seedInitial(t, repo, 4)
	require.NoError(t, repo.CreateRefined(&entities.Plan{ProjectID: 4, ContentJSON: `{}`}))
	require.NoError(t, repo.CreateRefined(&entities.Plan{ProjectID: 4, ContentJSON: `{}`}))

	metas, err := repo.ListMetaByProject(4)
	require.NoError(t, err)
	require.Len(t, metas, 3)
	assert.Equal(t, []int{3, 2, 1}, []int{metas[0].Version, metas[1].Version, metas[2].Version})
	assert.WithinDuration(t, time.Now(), metas[0].CreatedAt, time.Minute)
}

func TestSetCachedPrompts_WriteOnce(t *testing.T) {
	repo := New(newTestDB(t))
	p := seedInitial(t, repo, 1)

	require.NoError(t, repo.SetCachedPrompts(p.PlanID, `{"frontend":[]}`))
	// second write loses silently; first value survives
	require.NoError(t, repo.SetCachedPrompts(p.PlanID, `{"backend":[]}`))

	got, err := repo.FindByID(p.PlanID)
	require.NoError(t, err)
	require.NotNil(t, got.PromptsJSON)
	assert.Equal(t, `{"frontend":[]}`, *got.PromptsJSON)
}

func TestSetCachedPrompts_MissingPlan(t *testing.T) {
	repo := New(newTestDB(t))
	err := repo.SetCachedPrompts(42, `{}`)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestOneShotCache_WriteOnceThenOverwrite(t *testing.T) {
	repo := New(newTestDB(t))
	p := seedInitial(t, repo, 1)

	require.NoError(t, repo.SetCachedOneShot(p.PlanID, "build it"))
	require.NoError(t, repo.SetCachedOneShot(p.PlanID, "ignored"))

	got, err := repo.FindByID(p.PlanID)
	require.NoError(t, err)
	require.NotNil(t, got.OneShotPrompt)
	assert.Equal(t, "build it", *got.OneShotPrompt)

	// the explicit refine path is the only sanctioned overwrite
	require.NoError(t, repo.OverwriteOneShot(p.PlanID, "build it better"))
	got, err = repo.FindByID(p.PlanID)
	require.NoError(t, err)
	assert.Equal(t, "build it better", *got.OneShotPrompt)

	assert.ErrorIs(t, repo.OverwriteOneShot(999, "x"), repository.ErrNotFound)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueViolation(errors.New("UNIQUE constraint failed: plans.project_id, plans.version")))
	assert.False(t, isUniqueViolation(errors.New("database is locked")))
	assert.False(t, isUniqueViolation(nil))
}

func TestFindByID_Missing(t *testing.T) {
	repo := New(newTestDB(t))
	_, err := repo.FindByID(1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
