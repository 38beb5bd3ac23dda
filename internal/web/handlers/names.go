package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/arname-match/internal/phonetics"
	"github.com/arname-match/internal/rewrite"
	"github.com/arname-match/internal/store"
	"github.com/arname-match/internal/symspell"
)

// NamesHandler serves the encoding and matching endpoints
type NamesHandler struct {
	store     *store.Store
	arcoder   *phonetics.ARCoder
	holmes    *phonetics.Holmes
	corrector *symspell.Corrector
}

// NewNamesHandler creates a new names handler. The corrector may be nil
// when spelling correction is disabled.
func NewNamesHandler(st *store.Store, corrector *symspell.Corrector) *NamesHandler {
	return &NamesHandler{
		store:     st,
		arcoder:   phonetics.NewARCoder(nil),
		holmes:    phonetics.NewHolmes(nil),
		corrector: corrector,
	}
}

// EncodeResponse carries the phonetic keys of a single name
type EncodeResponse struct {
	Name      string   `json:"name"`
	Algorithm string   `json:"algorithm"`
	Keys      []string `json:"keys"`
}

// EncodeName handles GET /api/encode?name=...&algorithm=arcoder|holmes
func (h *NamesHandler) EncodeName(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "name parameter is required")
		return
	}

	algorithm := r.URL.Query().Get("algorithm")
	if algorithm == "" {
		algorithm = "arcoder"
	}

	var encoder phonetics.Encoder
	switch algorithm {
	case "arcoder":
		encoder = h.arcoder
	case "holmes":
		encoder = h.holmes
	default:
		writeError(w, http.StatusBadRequest, "algorithm must be arcoder or holmes")
		return
	}

	keys, err := encoder.Encode(name)
	if err != nil {
		var invalid *rewrite.InvalidInputError
		if errors.As(err, &invalid) {
			writeError(w, http.StatusBadRequest, invalid.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "encoding failed")
		return
	}

	writeJSON(w, http.StatusOK, EncodeResponse{
		Name:      name,
		Algorithm: algorithm,
		Keys:      keys,
	})
}

// AddNameRequest is the payload for indexing a name
type AddNameRequest struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

// AddNameResponse confirms an indexed name
type AddNameResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// AddName handles POST /api/names
func (h *NamesHandler) AddName(w http.ResponseWriter, r *http.Request) {
	var req AddNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	id, err := h.store.AddName(req.Name, req.Source)
	if err != nil {
		var invalid *rewrite.InvalidInputError
		if errors.As(err, &invalid) {
			writeError(w, http.StatusBadRequest, invalid.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to store name")
		return
	}

	writeJSON(w, http.StatusCreated, AddNameResponse{ID: id, Name: req.Name})
}

// CandidateResult is one matched record
type CandidateResult struct {
	ID         int    `json:"id"`
	RawName    string `json:"raw_name"`
	Source     string `json:"source,omitempty"`
	MatchedKey string `json:"matched_key"`
}

// CandidatesResponse lists the stored names sharing a key with the query
type CandidatesResponse struct {
	Query      string            `json:"query"`
	Corrected  string            `json:"corrected,omitempty"`
	Candidates []CandidateResult `json:"candidates"`
}

// GetCandidates handles GET /api/names/candidates?name=...&correct=true
func (h *NamesHandler) GetCandidates(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "name parameter is required")
		return
	}

	resp := CandidatesResponse{Query: name, Candidates: []CandidateResult{}}

	lookup := name
	if r.URL.Query().Get("correct") == "true" && h.corrector != nil {
		corrected, changes := h.corrector.CorrectName(name)
		if len(changes) > 0 {
			resp.Corrected = corrected
			lookup = corrected
		}
	}

	candidates, err := h.store.FindCandidates(lookup)
	if err != nil {
		var invalid *rewrite.InvalidInputError
		if errors.As(err, &invalid) {
			writeError(w, http.StatusBadRequest, invalid.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "candidate lookup failed")
		return
	}

	for _, c := range candidates {
		resp.Candidates = append(resp.Candidates, CandidateResult{
			ID:         c.ID,
			RawName:    c.RawName,
			Source:     c.Source,
			MatchedKey: c.MatchedKey,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
