package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webplanner/entities"
)

func TestVersionHistoryWorkbook(t *testing.T) {
	fb := "Add loyalty program"
	project := &entities.Project{ProjectID: 1, Name: "CrumbTrail"}
	plans := []entities.Plan{
		{
			Version:      2,
			PlanType:     entities.PlanTypeRefined,
			ContentJSON:  `{"planText":"# v2","suggestions":[{"id":"a","title":"x","selected":true},{"id":"b","title":"y","selected":false}]}`,
			FeedbackText: &fb,
			CreatedAt:    time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		},
		{
			Version:     1,
			PlanType:    entities.PlanTypeInitial,
			ContentJSON: `{"planText":"# v1","suggestions":[]}`,
			CreatedAt:   time.Date(2026, 8, 29, 9, 30, 0, 0, time.UTC),
		},
	}

	f, err := VersionHistoryWorkbook(project, plans)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("CrumbTrail versions")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Version", "Type", "Created", "Suggestions", "Selected", "Triggering feedback"}, rows[0])
	assert.Equal(t, []string{"2", "REFINED", "2026-08-30 12:00", "2", "1", "Add loyalty program"}, rows[1])
	assert.Equal(t, "1", rows[2][0])
	assert.Equal(t, "INITIAL", rows[2][1])
}

func TestVersionHistoryWorkbook_EmptyHistory(t *testing.T) {
	f, err := VersionHistoryWorkbook(&entities.Project{Name: "Empty"}, nil)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Empty versions")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", excerpt("short", 10))
	long := excerpt("aaaaaaaaaa", 5)
	assert.Equal(t, "aaaaa…", long)
}
