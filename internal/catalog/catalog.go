// Package catalog describes the tools offered on the home dashboard.
package catalog

import (
	"net/http"

	"github.com/Areg888/toolbox-app/internal/handlers"
)

type Status string

const (
	StatusAvailable  Status = "available"
	StatusComingSoon Status = "coming_soon"
)

type Tool struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Path        string `json:"path"`
	Status      Status `json:"status"`
}

type Summary struct {
	Available  int `json:"available"`
	ComingSoon int `json:"coming_soon"`
}

// Response is the JSON body of GET /tools.
type Response struct {
	Tools   []Tool  `json:"tools"`
	Summary Summary `json:"summary"`
}

var tools = []Tool{
	{
		Name:        "todo",
		Title:       "To-Do List",
		Description: "Organize your tasks with priority levels and progress tracking.",
		Path:        "/todos",
		Status:      StatusAvailable,
	},
	{
		Name:        "calculator",
		Title:       "Calculator",
		Description: "Scientific calculator with operator chaining and history tracking.",
		Path:        "/calculator",
		Status:      StatusAvailable,
	},
	{
		Name:        "calendar",
		Title:       "Calendar",
		Description: "Schedule management and event planning.",
		Path:        "/calendar",
		Status:      StatusComingSoon,
	},
	{
		Name:        "timer",
		Title:       "Timer & Stopwatch",
		Description: "Countdown timer, stopwatch and timer presets.",
		Path:        "/timer",
		Status:      StatusComingSoon,
	},
	{
		Name:        "converter",
		Title:       "Unit Converter",
		Description: "Convert between units of length, weight, temperature and more.",
		Path:        "/converter",
		Status:      StatusComingSoon,
	},
}

// Tools returns a copy of the catalog.
func Tools() []Tool {
	out := make([]Tool, len(tools))
	copy(out, tools)
	return out
}

// Summarize counts tools per status.
func Summarize(ts []Tool) Summary {
	var s Summary
	for _, t := range ts {
		switch t.Status {
		case StatusAvailable:
			s.Available++
		case StatusComingSoon:
			s.ComingSoon++
		}
	}
	return s
}

// List handles GET /tools.
func List(w http.ResponseWriter, r *http.Request) {
	ts := Tools()
	handlers.WriteJSON(w, http.StatusOK, Response{Tools: ts, Summary: Summarize(ts)})
}
