package domain

// SortField is a column the travel list can be ordered by.
type SortField string

// SortOrder is the direction of a list ordering.
type SortOrder string

const (
	SortByYear    SortField = "year"
	SortByCountry SortField = "country"
	SortByCity    SortField = "city"

	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ListParams carries the list ordering from the HTTP layer to the repo layer.
// Always build it with NewListParams so Sort and Order are known values.
type ListParams struct {
	Sort  SortField
	Order SortOrder
}

// NewListParams builds ListParams from untrusted query values.
// Unknown or missing values fall back to year/desc instead of failing.
func NewListParams(sort, order string) ListParams {
	p := ListParams{Sort: SortByYear, Order: OrderDesc}
	switch SortField(sort) {
	case SortByYear, SortByCountry, SortByCity:
		p.Sort = SortField(sort)
	}
	switch SortOrder(order) {
	case OrderAsc, OrderDesc:
		p.Order = SortOrder(order)
	}
	return p
}

// NextOrder returns the order a column header link should request.
// Clicking the active column flips its direction; any other column starts
// ascending, except year which starts descending.
func (p ListParams) NextOrder(field SortField) SortOrder {
	if p.Sort == field {
		if p.Order == OrderAsc {
			return OrderDesc
		}
		return OrderAsc
	}
	if field == SortByYear {
		return OrderDesc
	}
	return OrderAsc
}
