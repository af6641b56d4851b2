package service

import (
	"sort"
	"strings"
)

// PostFilterCriteria is the set of predicates a visitor can combine on the
// blog list. Empty fields match everything; non-empty fields are ANDed.
type PostFilterCriteria struct {
	SearchQuery      string
	SelectedTags     []string
	SelectedCategory string
	SelectedLanguage string
}

// PostFilterOptions holds the facet values present in a post collection,
// for populating the filter controls.
type PostFilterOptions struct {
	Tags       []string `json:"tags"`
	Categories []string `json:"categories"`
	Languages  []string `json:"languages"`
}

// FilterSummaries returns the subsequence of posts matching the criteria.
// It is a pure function: input order is preserved, nothing is mutated, and
// it is cheap enough to run on every keystroke.
func FilterSummaries(posts []PostSummary, criteria PostFilterCriteria) []PostSummary {
	search := strings.ToLower(strings.TrimSpace(criteria.SearchQuery))
	category := strings.TrimSpace(criteria.SelectedCategory)
	language := strings.TrimSpace(criteria.SelectedLanguage)

	matched := make([]PostSummary, 0, len(posts))
	for _, post := range posts {
		if !matchesSearch(post, search) {
			continue
		}
		if !matchesTags(post, criteria.SelectedTags) {
			continue
		}
		if category != "" && post.Category != category {
			continue
		}
		if language != "" && !hasLanguage(post, language) {
			continue
		}
		matched = append(matched, post)
	}
	return matched
}

// SummaryFilterOptions computes the facet unions over the given posts only,
// so stale values never linger after a post disappears.
func SummaryFilterOptions(posts []PostSummary) PostFilterOptions {
	tagSet := map[string]struct{}{}
	categorySet := map[string]struct{}{}
	languageSet := map[string]struct{}{}

	for _, post := range posts {
		for _, tag := range post.Tags {
			if trimmed := strings.TrimSpace(tag); trimmed != "" {
				tagSet[trimmed] = struct{}{}
			}
		}
		if category := strings.TrimSpace(post.Category); category != "" {
			categorySet[category] = struct{}{}
		}
		for _, lang := range post.Languages {
			if trimmed := strings.TrimSpace(lang); trimmed != "" {
				languageSet[trimmed] = struct{}{}
			}
		}
	}

	return PostFilterOptions{
		Tags:       sortedKeys(tagSet),
		Categories: sortedKeys(categorySet),
		Languages:  sortedKeys(languageSet),
	}
}

func matchesSearch(post PostSummary, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(post.Title), search) ||
		strings.Contains(strings.ToLower(post.Excerpt), search)
}

// matchesTags uses OR semantics: any overlap between the post's tags and the
// selected tags is a match.
func matchesTags(post PostSummary, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, want := range selected {
		for _, have := range post.Tags {
			if strings.EqualFold(strings.TrimSpace(want), strings.TrimSpace(have)) {
				return true
			}
		}
	}
	return false
}

func hasLanguage(post PostSummary, language string) bool {
	for _, have := range post.Languages {
		if strings.EqualFold(have, language) {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
