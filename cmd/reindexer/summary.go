package main

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"reindexer/internal/catalog"
)

type gameSummary struct {
	GameID         string `json:"game_id"`
	Datasets       int    `json:"datasets"`
	FirstStart     string `json:"first_start,omitempty"`
	LastEnd        string `json:"last_end,omitempty"`
	Sessions       int    `json:"sessions"`
	Uncounted      int    `json:"uncounted"`
	LatestModified string `json:"latest_modified,omitempty"`
}

type catalogSummary struct {
	Path          string         `json:"path"`
	Games         []gameSummary  `json:"games"`
	Datasets      int            `json:"datasets"`
	Sessions      int            `json:"sessions"`
	Artifacts     map[string]int `json:"artifacts"`
	FilesBase     *string        `json:"files_base"`
	TemplatesBase *string        `json:"templates_base"`
	HasConfig     bool           `json:"has_config"`
}

func summarizeCatalog(path string, c *catalog.Catalog) catalogSummary {
	summary := catalogSummary{
		Path:      path,
		Games:     make([]gameSummary, 0, len(c.Games())),
		Artifacts: make(map[string]int, len(catalog.Kinds)),
	}
	for _, kind := range catalog.Kinds {
		summary.Artifacts[kind.String()] = 0
	}
	if section, ok := c.Config(); ok {
		summary.HasConfig = true
		summary.FilesBase = section.FilesBase
		summary.TemplatesBase = section.TemplatesBase
	}

	for _, game := range c.Games() {
		row := gameSummary{GameID: game}
		var latest *catalog.Timestamp
		for _, id := range c.Datasets(game) {
			entry, _ := c.Entry(game, id)
			row.Datasets++
			if entry.StartDate != nil && (row.FirstStart == "" || *entry.StartDate < row.FirstStart) {
				row.FirstStart = *entry.StartDate
			}
			if entry.EndDate != nil && *entry.EndDate > row.LastEnd {
				row.LastEnd = *entry.EndDate
			}
			if entry.Sessions != nil {
				row.Sessions += *entry.Sessions
			} else {
				row.Uncounted++
			}
			if entry.DateModified != nil && (latest == nil || entry.DateModified.After(*latest)) {
				latest = entry.DateModified
			}
			for _, kind := range catalog.Kinds {
				if _, ok := entry.File(kind); ok {
					summary.Artifacts[kind.String()]++
				}
			}
		}
		if latest != nil {
			row.LatestModified = latest.Raw
		}
		summary.Datasets += row.Datasets
		summary.Sessions += row.Sessions
		summary.Games = append(summary.Games, row)
	}
	return summary
}

func newNumberPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

func kindLabel(kind catalog.Kind) string {
	return cases.Title(language.English).String(kind.String())
}
