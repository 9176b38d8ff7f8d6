package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type RouteKind int

const (
	RouteList RouteKind = iota
	RouteNew
	RouteEdit
)

// Route identifies the screen the application opens on. The edit route
// carries the id of the invoice to load.
type Route struct {
	Kind      RouteKind
	InvoiceID uuid.UUID
}

// ParseRoute maps a path argument to a Route. Trailing slashes are
// ignored; anything unrecognized is an error.
func ParseRoute(path string) (Route, error) {
	trimmed := strings.Trim(path, "/")

	switch {
	case trimmed == "":
		return Route{Kind: RouteList}, nil
	case trimmed == "invoice/new":
		return Route{Kind: RouteNew}, nil
	case strings.HasPrefix(trimmed, "invoice/edit/"):
		raw := strings.TrimPrefix(trimmed, "invoice/edit/")

		id, err := uuid.Parse(raw)
		if err != nil {
			return Route{}, fmt.Errorf("parsing invoice id %q: %w", raw, err)
		}

		return Route{Kind: RouteEdit, InvoiceID: id}, nil
	}

	return Route{}, fmt.Errorf("unknown route %q", path)
}
