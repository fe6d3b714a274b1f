package handler

import "github.com/iliyamo/fyyur-booking/internal/service"

// FormView is the data behind the venue, artist and show form pages.
type FormView struct {
	Action  string
	Submit  string
	Form    any
	Errors  map[string]string
	Genres  []string
	States  []string
	Artists []service.Summary
	Venues  []service.Summary
}

// SearchView is the data behind both search result pages.
type SearchView struct {
	Term   string
	Result service.SearchResult
}

// ErrorView is the data behind the error page.
type ErrorView struct {
	Code    int
	Message string
}
