package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_Deterministic(t *testing.T) {
	title := "Senior Frontend Developer"
	desc := "We build dashboards"
	req := "React, TypeScript"
	resp := "build UI"

	first := Extract(title, desc, req, resp)
	second := Extract(title, desc, req, resp)

	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestExtract_FrontendVacancy(t *testing.T) {
	tags := Extract(
		"Senior Frontend Developer",
		"",
		"React, TypeScript",
		"build UI",
	)

	assert.Contains(t, tags, "React")
	assert.Contains(t, tags, "TypeScript")
	assert.Contains(t, tags, "Frontend")
	assert.NotContains(t, tags, "Backend")
}

func TestExtract_VocabularyOrderAndInference(t *testing.T) {
	// "Java" matches as a substring of "JavaScript"; order follows the
	// vocabulary scan, with forced composites appended last.
	tags := Extract("TypeScript and JavaScript", "", "", "")

	assert.Equal(t, []string{"JavaScript", "Java", "TypeScript", "Frontend", "Backend"}, tags)
}

func TestExtract_FrontendForcedBySignalTag(t *testing.T) {
	tags := Extract("Vue developer needed", "", "", "")

	assert.Equal(t, []string{"Vue", "Frontend"}, tags)
}

func TestExtract_BackendForcedBySignalTag(t *testing.T) {
	tags := Extract("Python services", "", "", "")

	assert.Equal(t, []string{"Python", "Backend"}, tags)
}

func TestExtract_CompositeRoleSynonyms(t *testing.T) {
	tags := Extract("Looking for a fullstack engineer", "", "", "")
	assert.Contains(t, tags, "Full Stack")

	tags = Extract("server-side engineer", "", "", "")
	assert.Contains(t, tags, "Backend")
}

func TestExtract_DesignSynonyms(t *testing.T) {
	tags := Extract("UX designer wanted", "", "", "")

	assert.Contains(t, tags, "Design")
}

func TestExtract_NoDuplicates(t *testing.T) {
	tags := Extract("Frontend frontend FRONTEND", "frontend", "frontend", "frontend")

	count := 0
	for _, tag := range tags {
		if tag == "Frontend" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestExtract_DegenerateText(t *testing.T) {
	assert.Empty(t, Extract("", "", "", ""))
	assert.Empty(t, Extract("zzz", "qqq", "www", "xxx"))
}

func TestExtract_CaseInsensitive(t *testing.T) {
	upper := Extract("REACT DEVELOPER", "", "", "")
	lower := Extract("react developer", "", "", "")

	assert.Equal(t, upper, lower)
	assert.Contains(t, upper, "React")
}
