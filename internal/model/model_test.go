package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/nikbrunner/folio/internal/model"
	"gotest.tools/v3/assert"
)

func TestProject_JSONFieldNames(t *testing.T) {
	p := model.Project{
		ID:        "p1",
		Title:     "Ray Tracer",
		URL:       "https://example.com/rt",
		Tags:      []string{"go", "graphics"},
		CreatedAt: time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
	}

	data, err := json.Marshal(p)
	assert.NilError(t, err)

	var raw map[string]any
	assert.NilError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, raw["createdAt"], "2025-01-15T10:30:00Z")
	assert.Equal(t, raw["url"], "https://example.com/rt")
}

func TestNewProject(t *testing.T) {
	p := model.NewProject(model.NewProjectParams{
		Title: "CLI",
		Tags:  []string{" Go", "go", "TUI", ""},
	})

	assert.Assert(t, p.ID != "")
	assert.DeepEqual(t, p.Tags, []string{"go", "tui"})
	assert.Assert(t, !p.CreatedAt.IsZero())
}

func TestProject_HasTagAndLink(t *testing.T) {
	p := model.Project{Tags: []string{"go"}, Repo: "https://github.com/x/y"}

	assert.Assert(t, p.HasTag("Go"))
	assert.Assert(t, !p.HasTag("rust"))
	assert.Equal(t, p.Link(), "https://github.com/x/y")

	p.URL = "https://y.dev"
	assert.Equal(t, p.Link(), "https://y.dev")
}

func TestNormalizeTags_NeverNil(t *testing.T) {
	assert.Assert(t, model.NormalizeTags(nil) != nil)
}

func TestCatalog_Tags(t *testing.T) {
	c := model.Catalog{Projects: []model.Project{
		{Tags: []string{"Web", "go"}},
		{Tags: []string{"go", "cli"}},
	}}

	assert.DeepEqual(t, c.Tags(), []string{"cli", "go", "web"})
}

func TestCatalog_ProjectByID(t *testing.T) {
	c := model.Catalog{Projects: []model.Project{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}}

	got := c.ProjectByID("b")
	assert.Assert(t, got != nil)
	assert.Equal(t, got.Title, "B")
	assert.Assert(t, c.ProjectByID("zzz") == nil)
}

func TestCatalog_Ordered(t *testing.T) {
	c := model.Catalog{Projects: []model.Project{
		{Title: "old", Year: 2019},
		{Title: "new", Year: 2024},
		{Title: "star", Year: 2018, Featured: true},
		{Title: "new2", Year: 2024},
	}}

	var titles []string
	for _, p := range c.Ordered() {
		titles = append(titles, p.Title)
	}
	assert.DeepEqual(t, titles, []string{"star", "new", "new2", "old"})
	assert.Equal(t, c.Projects[0].Title, "old", "catalog order is untouched")
}

func TestCatalog_ImportMerge(t *testing.T) {
	c := model.Catalog{Projects: []model.Project{
		{ID: "existing", Title: "Existing", URL: "https://example.com"},
		{ID: "local", Title: "Local Only"},
	}}

	added, skipped := c.ImportMerge([]model.Project{
		{Title: "Duplicate URL", URL: "https://example.com"},
		{Title: "local only"},
		{Title: "New", URL: "https://new.dev", Tags: []string{"Go"}},
	})

	assert.Equal(t, added, 1)
	assert.Equal(t, skipped, 2)
	assert.Equal(t, len(c.Projects), 3)
	assert.Assert(t, c.Projects[2].ID != "")
	assert.DeepEqual(t, c.Projects[2].Tags, []string{"go"})
}

func TestCatalog_MergeProfile(t *testing.T) {
	c := model.Catalog{Profile: model.Profile{Name: "Kept"}}

	c.MergeProfile(model.Profile{Name: "Ignored", Email: "me@example.com"})

	assert.Equal(t, c.Profile.Name, "Kept")
	assert.Equal(t, c.Profile.Email, "me@example.com")
}

func TestCatalog_Validate(t *testing.T) {
	valid := model.Catalog{
		Profile: model.Profile{Email: "me@example.com"},
		Projects: []model.Project{
			{ID: model.GenerateUUID(), Title: "Valid", URL: "https://example.com"},
		},
	}
	assert.NilError(t, valid.Validate())

	badEmail := valid
	badEmail.Profile = model.Profile{Email: "nope"}
	assert.ErrorContains(t, badEmail.Validate(), "profile")

	noTitle := model.Catalog{Projects: []model.Project{{ID: model.GenerateUUID()}}}
	assert.ErrorContains(t, noTitle.Validate(), "Title")

	id := model.GenerateUUID()
	dup := model.Catalog{Projects: []model.Project{
		{ID: id, Title: "One"},
		{ID: id, Title: "Two"},
	}}
	assert.ErrorContains(t, dup.Validate(), "duplicate id")
}
