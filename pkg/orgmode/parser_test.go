package orgmode

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrisonrobin/tasklist/pkg/model"
)

const sampleOrg = `#+TITLE: Inbox
* TODO [#A] Renew passport :admin:travel:
  SCHEDULED: <2026-10-20 Tue> DEADLINE: <2026-11-01 Sun 10:00>
  :PROPERTIES:
  :ID: 1b2c
  :END:
  Bring two photos.
  Check fees.
* Meeting notes
  not a task
** DONE Call plumber
* TODO
`

func TestParse(t *testing.T) {
	tasks, err := Parse(strings.NewReader(sampleOrg))
	require.NoError(t, err)

	assert.Equal(t, []model.Task{
		{
			Title:       "Renew passport",
			Description: "Bring two photos.\nCheck fees.",
			StartDate:   "2026-10-20",
			EndDate:     "2026-11-01",
		},
		{
			Title:     "Call plumber",
			Completed: true,
		},
	}, tasks)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.org")
	require.NoError(t, os.WriteFile(path, []byte("* TODO Buy milk\n"), 0600))

	tasks, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Title)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.org"))
	assert.Error(t, err)
}
