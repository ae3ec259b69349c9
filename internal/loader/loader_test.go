package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewired-gh/linkedlens/internal/models"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestReadCSV_TrimsHeaderAndBOM(t *testing.T) {
	input := "\ufeff Date ,Type\n2024-03-05 10:00:00,LIKE\n,\n2024-03-06 11:00:00,PRAISE\n"

	records, err := ReadCSV(strings.NewReader(input), []string{"Date"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2024-03-05 10:00:00", records[0].Get("Date"))
	assert.Equal(t, "PRAISE", records[1].Get("Type"))
}

func TestReadCSV_SkipsPreamble(t *testing.T) {
	input := strings.Join([]string{
		"Notes:",
		`"When exporting your connection data, you may notice that some of the email addresses are missing."`,
		"",
		"First Name,Last Name,Company,Position,Connected On",
		"Ada,Lovelace,Analytical Engines,Engineer,05 Mar 2024",
	}, "\n")

	records, err := ReadCSV(strings.NewReader(input), []string{"Connected On"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "05 Mar 2024", records[0].Get("Connected On"))
	assert.Equal(t, "Analytical Engines", records[0].Get("Company"))
}

func TestReadCSV_MissingColumn(t *testing.T) {
	input := "Started On,Title\nJan 2020,Engineer\n"

	_, err := ReadCSV(strings.NewReader(input), []string{"Started On", "Finished On", "Title", "Company Name"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))

	var mce *MissingColumnError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, "Finished On", mce.Column)
}

func TestReadCSV_ShortRows(t *testing.T) {
	input := "Date,Link\n2024-03-05 10:00:00\n"

	records, err := ReadCSV(strings.NewReader(input), []string{"Date"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "", records[0].Get("Link"))
}

func TestLoad_PerSourceErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Reactions.csv", "Date,Type\n2024-03-05 10:00:00,LIKE\n")
	writeFile(t, dir, "Positions.csv", "Title\nEngineer\n")
	writeFile(t, dir, filepath.Join("jobs", "saved jobs.csv"), "Saved Date,Company Name,Job Title\n03/05/24 10:00,Acme,Go Developer\n")

	res, err := Load(dir)
	require.NoError(t, err)

	assert.Len(t, res.Tables[models.SourceReactions], 1)
	assert.Len(t, res.Tables[models.SourceSavedJobs], 1, "file name lookup is case-insensitive")

	_, hasComments := res.Tables[models.SourceComments]
	assert.False(t, hasComments)
	assert.NoError(t, res.Errors[models.SourceComments], "absent file is not an error")

	posErr := res.Errors[models.SourcePositions]
	require.Error(t, posErr)
	assert.ErrorIs(t, posErr, ErrMissingColumn)
	_, hasPositions := res.Tables[models.SourcePositions]
	assert.False(t, hasPositions)
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestDetectFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Comments.csv", "Date\n")
	writeFile(t, dir, "Profile.csv", "First Name\n")

	status := DetectFiles(dir)
	present := map[string]bool{}
	paths := map[string]string{}
	for _, s := range status {
		present[s.Name] = s.Present
		paths[s.Name] = s.Path
	}

	assert.Len(t, status, 10)
	assert.True(t, present["Comments"])
	assert.True(t, present["Profile"])
	assert.False(t, present["Reactions"])
	assert.False(t, present["Saved Jobs"])
	assert.Equal(t, "Comments.csv", paths["Comments"])
	assert.Equal(t, filepath.Join("jobs", "Saved Jobs.csv"), paths["Saved Jobs"])
}

func TestSpecFor(t *testing.T) {
	spec, ok := SpecFor(models.SourceSavedJobs)
	require.True(t, ok)
	assert.Equal(t, []string{"Saved Date", "Company Name", "Job Title"}, spec.Required)

	_, ok = SpecFor("logins")
	assert.False(t, ok)
}
