package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ContentPath string // content tree with frontmatter files
	ConfigPath  string // optional site.hcl

	Course    string   // when set, print the navigation table for this course
	Completed []string // completed slugs used for the navigation table
	Strict    bool     // any corpus issue fails the run

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ContentPath == "" && cfg.ConfigPath == "" {
		return nil, errors.New("either a content path or a site config path is required")
	}

	return &cfg, nil
}
