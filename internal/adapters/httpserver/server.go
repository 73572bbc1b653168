package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/pkazanov/catalog-api/internal/domain"
	"github.com/pkazanov/catalog-api/internal/usecase"
)

type Server struct {
	mux        *http.ServeMux
	properties *usecase.PropertyUC
	products   *usecase.ProductUC
	catalog    *usecase.CatalogUC
}

func New(properties *usecase.PropertyUC, products *usecase.ProductUC, catalog *usecase.CatalogUC) http.Handler {
	s := &Server{
		mux:        http.NewServeMux(),
		properties: properties,
		products:   products,
		catalog:    catalog,
	}
	s.routes()
	return Chain(s.mux,
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleHome)
	s.mux.HandleFunc("/product/", s.handleProduct)
	s.mux.HandleFunc("/properties/", s.handleProperties)
	s.mux.HandleFunc("/catalog/", s.handleCatalog)
	s.mux.HandleFunc("/catalog/filter/", s.handleCatalogFilter)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome!"})
}

// --- products ---

type productPropertyIn struct {
	UID      uuid.UUID  `json:"uid"`
	ValueUID *uuid.UUID `json:"value_uid"`
	Value    *int       `json:"value"`
}

type productPropertyOut struct {
	UID      uuid.UUID  `json:"uid"`
	ValueUID *uuid.UUID `json:"value_uid,omitempty"`
	Value    any        `json:"value"`
}

type productOut struct {
	UID        uuid.UUID            `json:"uid"`
	Name       string               `json:"name"`
	Properties []productPropertyOut `json:"properties"`
}

func toProductOut(p *domain.Product) productOut {
	props := make([]productPropertyOut, 0, len(p.PropertyValues)+len(p.PropertyInts))
	for _, pv := range p.PropertyValues {
		valueUID := pv.ValueUID
		out := productPropertyOut{UID: pv.PropertyUID, ValueUID: &valueUID}
		if pv.Value != nil {
			out.Value = pv.Value.Value
		}
		props = append(props, out)
	}
	for _, pi := range p.PropertyInts {
		props = append(props, productPropertyOut{UID: pi.PropertyUID, Value: pi.Value})
	}
	return productOut{UID: p.UID, Name: p.Name, Properties: props}
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/product/")

	switch r.Method {
	case http.MethodPost:
		if rest != "" {
			http.NotFound(w, r)
			return
		}
		s.createProduct(w, r)
	case http.MethodGet:
		uid, err := uuid.Parse(rest)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid product uid")
			return
		}
		p, err := s.products.Get(r.Context(), uid)
		if err != nil {
			s.writeDomainError(w, err, http.StatusBadRequest, "Product not found")
			return
		}
		writeJSON(w, http.StatusOK, toProductOut(p))
	case http.MethodDelete:
		uid, err := uuid.Parse(rest)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid product uid")
			return
		}
		if err := s.products.Delete(r.Context(), uid); err != nil {
			s.writeDomainError(w, err, http.StatusBadRequest, "Product not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"response": "product deleted"})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string              `json:"name"`
		Properties []productPropertyIn `json:"properties"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	assignments := make([]domain.ProductAssignment, 0, len(req.Properties))
	for _, prop := range req.Properties {
		assignments = append(assignments, domain.ProductAssignment{
			PropertyUID: prop.UID,
			ValueUID:    prop.ValueUID,
			Value:       prop.Value,
		})
	}
	p, err := s.products.Create(r.Context(), req.Name, assignments)
	if err != nil {
		s.writeDomainError(w, err, http.StatusBadRequest, "Product not found")
		return
	}
	writeJSON(w, http.StatusCreated, toProductOut(p))
}

// --- properties ---

func (s *Server) handleProperties(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/properties/")

	switch r.Method {
	case http.MethodPost:
		if rest != "" {
			http.NotFound(w, r)
			return
		}
		s.createProperty(w, r)
	case http.MethodGet:
		if rest != "" {
			uid, err := uuid.Parse(rest)
			if err != nil {
				writeError(w, http.StatusUnprocessableEntity, "invalid property uid")
				return
			}
			p, err := s.properties.Get(r.Context(), uid)
			if err != nil {
				s.writeDomainError(w, err, http.StatusUnprocessableEntity, "Property not found")
				return
			}
			writeJSON(w, http.StatusOK, p)
			return
		}
		list, err := s.properties.List(r.Context())
		if err != nil {
			s.writeDomainError(w, err, http.StatusUnprocessableEntity, "Property not found")
			return
		}
		writeJSON(w, http.StatusOK, list)
	case http.MethodDelete:
		uid, err := uuid.Parse(rest)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid property uid")
			return
		}
		if err := s.properties.Delete(r.Context(), uid); err != nil {
			s.writeDomainError(w, err, http.StatusUnprocessableEntity, "Property not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"response": "property deleted"})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) createProperty(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UID    *uuid.UUID          `json:"uid"`
		Name   string              `json:"name"`
		Type   domain.PropertyKind `json:"type"`
		Values []struct {
			ValueUID *uuid.UUID `json:"value_uid"`
			Value    string     `json:"value"`
		} `json:"values"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid json body")
		return
	}
	values := make([]domain.PropertyValue, 0, len(req.Values))
	for _, v := range req.Values {
		pv := domain.PropertyValue{Value: v.Value}
		if v.ValueUID != nil {
			pv.UID = *v.ValueUID
		}
		values = append(values, pv)
	}
	var uid uuid.UUID
	if req.UID != nil {
		uid = *req.UID
	}
	p, err := s.properties.Create(r.Context(), uid, req.Name, req.Type, values)
	if err != nil {
		s.writeDomainError(w, err, http.StatusUnprocessableEntity, "Property not found")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// --- catalog ---

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/catalog/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	q := ParseCatalogQuery(r.URL.Query())

	var err error
	if q.Page, err = intParam(r, "page", 1); err != nil {
		writeError(w, http.StatusBadRequest, "page must be an integer")
		return
	}
	if q.PageSize, err = intParam(r, "page_size", 10); err != nil {
		writeError(w, http.StatusBadRequest, "page_size must be an integer")
		return
	}

	list, total, err := s.catalog.Filter(r.Context(), q)
	if err != nil {
		s.writeDomainError(w, err, http.StatusBadRequest, "not found")
		return
	}
	products := make([]productOut, 0, len(list))
	for i := range list {
		products = append(products, toProductOut(&list[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total":     total,
		"page":      q.Page,
		"page_size": q.PageSize,
		"products":  products,
	})
}

func (s *Server) handleCatalogFilter(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/catalog/filter/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	q := ParseCatalogQuery(r.URL.Query())
	stats, total, err := s.catalog.Statistics(r.Context(), q)
	if err != nil {
		s.writeDomainError(w, err, http.StatusBadRequest, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":      total,
		"properties": stats,
	})
}

func intParam(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// writeDomainError maps the error taxonomy to status codes: NotFound -> 404,
// ValidationError -> validationCode (400 for products/catalog, 422 for
// properties), integrity violations -> 400, anything else -> 500.
func (s *Server) writeDomainError(w http.ResponseWriter, err error, validationCode int, notFoundMsg string) {
	var ve *domain.ValidationError
	var se *domain.StorageError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundMsg)
	case errors.As(err, &ve):
		writeError(w, validationCode, ve.Msg)
	case errors.As(err, &se):
		if errors.Is(se.Err, gorm.ErrDuplicatedKey) || errors.Is(se.Err, gorm.ErrForeignKeyViolated) {
			writeError(w, http.StatusBadRequest, "integrity error: "+se.Err.Error())
			return
		}
		log.Error().Err(se.Err).Msg("storage failure")
		writeError(w, http.StatusInternalServerError, "internal server error")
	default:
		log.Error().Err(err).Msg("unexpected failure")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"detail": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
