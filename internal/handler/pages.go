package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkordes/travel-log/internal/domain"
)

// --- view models ------------------------------------------------------------

type listPage struct {
	Title     string
	Banner    string
	LoadError string
	Columns   []sortColumn
	Rows      []listRow
}

// sortColumn is one sortable table header.
type sortColumn struct {
	Label string
	Href  string
	Arrow string
}

// listRow is a travel flattened for display; nil optionals become "".
type listRow struct {
	ID          int64
	City        string
	Country     string
	Year        int
	Description string
}

type formPage struct {
	Title       string
	Action      string
	SubmitLabel string
	TravelID    int64
	Input       domain.TravelInput
	Errors      []string
}

type deletePage struct {
	Title  string
	Travel domain.Travel
	Errors []string
}

type messagePage struct {
	Title   string
	Message string
}

// banners maps the status flag on a post-redirect list URL to its message.
var banners = []struct {
	flag    string
	message string
}{
	{"added", "Travel added successfully!"},
	{"updated", "Travel updated successfully!"},
	{"deleted", "Travel deleted successfully!"},
}

var columns = []struct {
	label string
	field domain.SortField
}{
	{"City", domain.SortByCity},
	{"Country", domain.SortByCountry},
	{"Year", domain.SortByYear},
}

// --- list -------------------------------------------------------------------

// ListTravels handles GET /.
// Supports ?sort= (year, country, city) and ?order= (asc, desc); anything
// else falls back to year/desc. A storage failure renders an empty list.
func (s *Server) ListTravels(w http.ResponseWriter, r *http.Request) {
	params := listParams(r)
	page := listPage{Title: "My Travels", Columns: sortColumns(params)}

	q := r.URL.Query()
	for _, b := range banners {
		if q.Get(b.flag) == "1" {
			page.Banner = b.message
			break
		}
	}

	travels, err := s.travels.List(r.Context(), params)
	if err != nil {
		s.log.ErrorContext(r.Context(), "list travels", "sort", params.Sort, "order", params.Order, "error", err)
		page.LoadError = msgListFailed
		travels = nil
	}
	page.Rows = make([]listRow, len(travels))
	for i, t := range travels {
		page.Rows[i] = travelToRow(t)
	}

	s.render(w, r, http.StatusOK, "list.html", page)
}

func sortColumns(p domain.ListParams) []sortColumn {
	out := make([]sortColumn, len(columns))
	for i, c := range columns {
		v := url.Values{}
		v.Set("sort", string(c.field))
		v.Set("order", string(p.NextOrder(c.field)))
		out[i] = sortColumn{Label: c.label, Href: "/?" + v.Encode()}
		if p.Sort == c.field {
			out[i].Arrow = "↓"
			if p.Order == domain.OrderAsc {
				out[i].Arrow = "↑"
			}
		}
	}
	return out
}

// --- create -----------------------------------------------------------------

// NewTravelForm handles GET /travels/new.
func (s *Server) NewTravelForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "form.html", addForm(domain.TravelInput{}))
}

// CreateTravel handles POST /travels.
// Redirects to /?added=1 on success; re-renders the form with every
// validation message otherwise.
func (s *Server) CreateTravel(w http.ResponseWriter, r *http.Request) {
	in, err := formInput(r)
	if err != nil {
		status, msg := formErrorMessage(err)
		page := addForm(in)
		page.Errors = []string{msg}
		s.render(w, r, status, "form.html", page)
		return
	}

	if _, err := s.travels.Create(r.Context(), in); err != nil {
		s.renderFormError(w, r, addForm(in), err, msgSaveFailed)
		return
	}
	http.Redirect(w, r, "/?added=1", http.StatusSeeOther)
}

// --- update -----------------------------------------------------------------

// EditTravelForm handles GET /travels/{id}/edit.
func (s *Server) EditTravelForm(w http.ResponseWriter, r *http.Request) {
	id, ok := travelID(r)
	if !ok {
		s.renderNotFound(w, r)
		return
	}

	travel, err := s.travels.GetByID(r.Context(), id)
	if err != nil {
		s.renderLoadError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "form.html", editForm(id, travelToInput(travel)))
}

// UpdateTravel handles POST /travels/{id}/edit.
// Redirects to /?updated=1 on success.
func (s *Server) UpdateTravel(w http.ResponseWriter, r *http.Request) {
	id, ok := travelID(r)
	if !ok {
		s.renderNotFound(w, r)
		return
	}

	in, err := formInput(r)
	if err != nil {
		status, msg := formErrorMessage(err)
		page := editForm(id, in)
		page.Errors = []string{msg}
		s.render(w, r, status, "form.html", page)
		return
	}

	if _, err := s.travels.Update(r.Context(), id, in); err != nil {
		s.renderFormError(w, r, editForm(id, in), err, msgSaveFailed)
		return
	}
	http.Redirect(w, r, "/?updated=1", http.StatusSeeOther)
}

// --- delete -----------------------------------------------------------------

// ConfirmDeleteTravel handles GET /travels/{id}/delete.
func (s *Server) ConfirmDeleteTravel(w http.ResponseWriter, r *http.Request) {
	id, ok := travelID(r)
	if !ok {
		s.renderNotFound(w, r)
		return
	}

	travel, err := s.travels.GetByID(r.Context(), id)
	if err != nil {
		s.renderLoadError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "delete.html", deletePage{Title: "Delete Travel", Travel: travel})
}

// DeleteTravel handles POST /travels/{id}/delete.
// Deletes only when the form carries confirm=yes; anything else is a cancel
// and redirects back to the list untouched.
func (s *Server) DeleteTravel(w http.ResponseWriter, r *http.Request) {
	id, ok := travelID(r)
	if !ok {
		s.renderNotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		status, msg := formErrorMessage(err)
		s.render(w, r, status, "message.html", messagePage{Title: "Delete Travel", Message: msg})
		return
	}
	if r.PostForm.Get("confirm") != "yes" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := s.travels.Delete(r.Context(), id); err != nil {
		if isNotFound(err) {
			s.renderNotFound(w, r)
			return
		}
		s.log.ErrorContext(r.Context(), "delete travel", "id", id, "error", err)
		s.render(w, r, http.StatusInternalServerError, "message.html",
			messagePage{Title: "Delete Travel", Message: msgDeleteFailed})
		return
	}
	http.Redirect(w, r, "/?deleted=1", http.StatusSeeOther)
}

// --- rendering helpers ------------------------------------------------------

// render executes the named page into a buffer first so a template failure
// becomes a clean 500 instead of a half-written page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, name, data); err != nil {
		s.log.ErrorContext(r.Context(), "render page", "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) renderNotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, "message.html", messagePage{Title: "Not Found", Message: msgNotFound})
}

// renderLoadError renders the page for a failed GetByID.
func (s *Server) renderLoadError(w http.ResponseWriter, r *http.Request, err error) {
	if isNotFound(err) {
		s.renderNotFound(w, r)
		return
	}
	s.log.ErrorContext(r.Context(), "load travel", "error", err)
	s.render(w, r, http.StatusInternalServerError, "message.html", messagePage{Title: "Error", Message: msgLoadFailed})
}

// renderFormError re-renders a submitted form after Create or Update failed.
// Validation failures list every message (422); a missing travel renders the
// not-found page; anything else is logged and shown as genericMsg (500).
func (s *Server) renderFormError(w http.ResponseWriter, r *http.Request, page formPage, err error, genericMsg string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		page.Errors = verr.Messages()
		s.render(w, r, http.StatusUnprocessableEntity, "form.html", page)
	case isNotFound(err):
		s.renderNotFound(w, r)
	default:
		s.log.ErrorContext(r.Context(), "save travel", "error", err)
		page.Errors = []string{genericMsg}
		s.render(w, r, http.StatusInternalServerError, "form.html", page)
	}
}

// --- mapping helpers --------------------------------------------------------

func addForm(in domain.TravelInput) formPage {
	return formPage{Title: "Add New Travel", Action: "/travels", SubmitLabel: "Add Travel", Input: in}
}

func editForm(id int64, in domain.TravelInput) formPage {
	return formPage{
		Title:       "Edit Travel",
		Action:      "/travels/" + strconv.FormatInt(id, 10) + "/edit",
		SubmitLabel: "Update Travel",
		TravelID:    id,
		Input:       in,
	}
}

// travelToInput fills the edit form from a stored travel.
func travelToInput(t domain.Travel) domain.TravelInput {
	in := domain.TravelInput{
		City:    t.City,
		Country: t.Country,
		Year:    strconv.Itoa(t.Year),
	}
	if t.Description != nil {
		in.Description = *t.Description
	}
	if t.HasCoordinates() {
		in.Latitude = strconv.FormatFloat(*t.Latitude, 'f', -1, 64)
		in.Longitude = strconv.FormatFloat(*t.Longitude, 'f', -1, 64)
	}
	return in
}

func travelToRow(t domain.Travel) listRow {
	row := listRow{ID: t.ID, City: t.City, Country: t.Country, Year: t.Year}
	if t.Description != nil {
		row.Description = *t.Description
	}
	return row
}
