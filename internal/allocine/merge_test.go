package allocine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeJoinsOnNormalizedTitle(t *testing.T) {
	m := Merger{Host: host}
	merged := m.Merge(
		[]FilmRecord{{Title: "Amélie", Rating: "4.5", URL: "/a"}},
		[]ReviewRecord{{FilmTitle: "amelie", Text: "Great"}},
	)

	assert.Equal(t, []MergedRecord{
		{Title: "Amélie", Rating: "4.5", Review: "Great", URL: "https://www.allocine.fr/a"},
	}, merged)
}

func TestMergeIsLeftOuterJoin(t *testing.T) {
	m := Merger{Host: host}
	merged := m.Merge(
		[]FilmRecord{
			{Title: "Heat", Rating: "4.0", URL: "/h"},
			{Title: "Alien", Rating: "", URL: "https://www.allocine.fr/al"},
			{Title: "Dune", Rating: "3.5", URL: "/d"},
		},
		[]ReviewRecord{
			{FilmTitle: "DUNE", Text: "Vaste"},
			{FilmTitle: "Jamais notée", Text: "Orpheline"},
		},
	)

	assert.Equal(t, []MergedRecord{
		{Title: "Heat", Rating: "4.0", Review: "", URL: "https://www.allocine.fr/h"},
		{Title: "Alien", Rating: "", Review: "", URL: "https://www.allocine.fr/al"},
		{Title: "Dune", Rating: "3.5", Review: "Vaste", URL: "https://www.allocine.fr/d"},
	}, merged)
}

func TestMergeLaterReviewWins(t *testing.T) {
	merged := Merger{Host: host}.Merge(
		[]FilmRecord{{Title: "Heat", URL: "/h"}},
		[]ReviewRecord{
			{FilmTitle: "Heat", Text: "first"},
			{FilmTitle: "heat", Text: "second"},
		},
	)
	assert.Equal(t, "second", merged[0].Review)
}

func TestMergeKeepsDuplicateFilms(t *testing.T) {
	merged := Merger{Host: host}.Merge(
		[]FilmRecord{{Title: "Heat", URL: "/h"}, {Title: "Heat", URL: "/h"}},
		[]ReviewRecord{{FilmTitle: "Heat", Text: "Tendu"}},
	)
	assert.Len(t, merged, 2)
	assert.Equal(t, "Tendu", merged[1].Review)
}

func TestMergeFuzzyFallback(t *testing.T) {
	films := []FilmRecord{{Title: "Heat", URL: "/h"}}
	reviews := []ReviewRecord{
		{FilmTitle: "Heat.", Text: "Tendu"},
		{FilmTitle: "Alien", Text: "Culte"},
	}

	exact := Merger{Host: host}.Merge(films, reviews)
	assert.Empty(t, exact[0].Review)

	fuzzy := Merger{Host: host, FuzzyThreshold: 0.9}.Merge(films, reviews)
	assert.Equal(t, "Tendu", fuzzy[0].Review)

	strict := Merger{Host: host, FuzzyThreshold: 0.99}.Merge(films, reviews)
	assert.Empty(t, strict[0].Review)
}

func TestMergeEmptyInputs(t *testing.T) {
	assert.Empty(t, Merger{Host: host}.Merge(nil, []ReviewRecord{{FilmTitle: "Heat", Text: "x"}}))
}
