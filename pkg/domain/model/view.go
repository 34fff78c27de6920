package model

import (
	"github.com/m-mizutani/goerr/v2"
)

// View is a named preset selection offered by the UI as a shortcut
type View struct {
	ID          string    `yaml:"id" json:"id"`
	Name        string    `yaml:"name" json:"name"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty"`
	Selection   Selection `yaml:"selection" json:"selection"`
}

// Validate validates the view
func (v *View) Validate() error {
	if v.ID == "" {
		return goerr.New("view ID is required")
	}
	if v.Name == "" {
		return goerr.New("view name is required")
	}
	if err := v.Selection.Validate(); err != nil {
		return goerr.Wrap(err, "invalid view selection", goerr.V("id", v.ID))
	}
	return nil
}

// ViewsConfig represents the preset views configuration file
type ViewsConfig struct {
	Views []View `yaml:"views" json:"views"`
}

// Validate validates the views configuration
func (c *ViewsConfig) Validate() error {
	idMap := make(map[string]bool)
	for i, view := range c.Views {
		if err := view.Validate(); err != nil {
			return goerr.Wrap(err, "invalid view at index",
				goerr.V("index", i),
				goerr.V("id", view.ID))
		}
		if idMap[view.ID] {
			return goerr.New("duplicate view ID", goerr.V("id", view.ID))
		}
		idMap[view.ID] = true
	}
	return nil
}

// FindViewByID finds a view by its ID
func (c *ViewsConfig) FindViewByID(id string) *View {
	for _, view := range c.Views {
		if view.ID == id {
			result := view
			return &result
		}
	}
	return nil
}
