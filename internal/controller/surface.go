package controller

import (
	"fmt"

	"ticketlist/internal/controller/logic"
	"ticketlist/internal/controller/services/sorting"
	"ticketlist/internal/domain"
	"ticketlist/internal/listing"
)

// SurfaceSpec parameterises a controller for one listing screen
type SurfaceSpec struct {
	Name        domain.Surface
	PageSize    int
	DefaultSort domain.SortDescriptor

	// Searchable surfaces accept search, category and date input
	Searchable bool
	// Sortable surfaces accept sort input
	Sortable bool

	Endpoint listing.Endpoint
}

// EndpointFor picks the resource a query is sent to
func (s SurfaceSpec) EndpointFor(q domain.QueryDescriptor) listing.Endpoint {
	if s.Name == domain.SurfaceCatalog && q.Filter.Category == domain.CategoryForYou {
		return listing.RecommendationsEndpoint
	}
	return s.Endpoint
}

// Project turns a raw response into the displayed page
func (s SurfaceSpec) Project(q domain.QueryDescriptor, raw []domain.Record) domain.DisplayResult {
	ep := s.EndpointFor(q)
	if ep.FixedLimit > 0 {
		return logic.ProjectCapped(raw, ep.FixedLimit)
	}
	return logic.Project(raw, q.Page.Size)
}

// Catalog is the public event browser
func Catalog(pageSize int) SurfaceSpec {
	return SurfaceSpec{
		Name:       domain.SurfaceCatalog,
		PageSize:   pageSize,
		Searchable: true,
		Endpoint:   listing.CatalogEndpoint,
	}
}

// Bookings is the attendee's booking history
func Bookings(pageSize int) SurfaceSpec {
	return SurfaceSpec{
		Name:     domain.SurfaceBookings,
		PageSize: pageSize,
		Endpoint: listing.BookingsEndpoint,
	}
}

// Organizer is the organizer's event management table
func Organizer(pageSize int) SurfaceSpec {
	return SurfaceSpec{
		Name:        domain.SurfaceOrganizer,
		PageSize:    pageSize,
		DefaultSort: sorting.DefaultSort,
		Sortable:    true,
		Endpoint:    listing.OrganizerEndpoint,
	}
}

// SpecFor returns the spec of a named surface
func SpecFor(name domain.Surface, pageSize int) (SurfaceSpec, error) {
	switch name {
	case domain.SurfaceCatalog:
		return Catalog(pageSize), nil
	case domain.SurfaceBookings:
		return Bookings(pageSize), nil
	case domain.SurfaceOrganizer:
		return Organizer(pageSize), nil
	}
	return SurfaceSpec{}, fmt.Errorf("unknown surface %q", name)
}
