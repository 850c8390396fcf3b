// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

// Package theme contains the wiki theme taxonomy. Themes group articles and
// are managed exclusively by administrators.
package theme

// Theme is a category articles are filed under.
type Theme struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
