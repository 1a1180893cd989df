package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"flupp/internal/flupp"
	"flupp/internal/logbook"
	"flupp/internal/logging"
	"flupp/internal/source"
	"flupp/internal/stats"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Cached: s.cache.Len()}
	if s.store != nil {
		resp.Database = s.store.Path()
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDecodeBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		s.writeError(w, http.StatusBadRequest, "read request body")
		return
	}

	if compression := source.Sniff(body); compression != source.CompressionNone {
		rc, err := source.Decode(bytes.NewReader(body), compression)
		if err == nil {
			body, err = io.ReadAll(io.LimitReader(rc, maxDecodeBody))
			rc.Close()
		}
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "decompress request body: "+err.Error())
			return
		}
	}

	checksum := source.Checksum(body)
	doc, cached := s.cache.Get(checksum)
	if !cached {
		doc, err = flupp.DecodeBytes(body)
		if err != nil {
			logging.WithContext(r.Context(), s.logger).Debug("decode rejected", logging.Error(err))
			s.writeJSON(w, http.StatusUnprocessableEntity, decodeErrorResponse(err))
			return
		}
		s.cache.Add(checksum, doc)
	}

	s.writeJSON(w, http.StatusOK, DecodeResponse{
		Checksum: checksum,
		Cached:   cached,
		Totals:   stats.Compute(doc),
		Document: doc,
	})
}

func (s *Server) handleListImports(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	imports, err := s.store.ListImports(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if imports == nil {
		imports = []*logbook.Import{}
	}
	s.writeJSON(w, http.StatusOK, ImportList{Imports: imports})
}

func (s *Server) handleGetImport(w http.ResponseWriter, r *http.Request) {
	imp, ok := s.loadImport(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, imp)
}

func (s *Server) handleRemoveImport(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	id := chi.URLParam(r, "id")
	removed, err := s.store.Remove(r.Context(), id)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if !removed {
		s.writeError(w, http.StatusNotFound, "import not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFlightLogs(w http.ResponseWriter, r *http.Request) {
	imp, ok := s.loadImport(w, r)
	if !ok {
		return
	}
	logs, err := s.store.FlightLogs(r.Context(), imp.ID)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if logs == nil {
		logs = []*logbook.FlightLog{}
	}
	s.writeJSON(w, http.StatusOK, FlightLogList{ImportID: imp.ID, FlightLogs: logs})
}

func (s *Server) handleTotals(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	doc, err := s.store.Document(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, logbook.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "import not found")
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats.Compute(doc))
}

func (s *Server) handleSource(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	raw, err := s.store.Source(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, logbook.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "import not found")
		return
	case errors.Is(err, logbook.ErrNoSource):
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		s.internalError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=windows-1252")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func (s *Server) handleFlights(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		s.writeError(w, http.StatusBadRequest, "invalid flight log id")
		return
	}
	log, err := s.store.GetFlightLog(r.Context(), id)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if log == nil {
		s.writeError(w, http.StatusNotFound, "flight log not found")
		return
	}
	flights, err := s.store.Flights(r.Context(), id)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if flights == nil {
		flights = []*logbook.Flight{}
	}
	s.writeJSON(w, http.StatusOK, FlightList{FlightLogID: id, Flights: flights})
}

func (s *Server) loadImport(w http.ResponseWriter, r *http.Request) (*logbook.Import, bool) {
	if !s.requireStore(w) {
		return nil, false
	}
	imp, err := s.store.GetImport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.internalError(w, r, err)
		return nil, false
	}
	if imp == nil {
		s.writeError(w, http.StatusNotFound, "import not found")
		return nil, false
	}
	return imp, true
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "logbook store unavailable")
		return false
	}
	return true
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	logging.WithContext(r.Context(), s.logger).Error("api request failed",
		logging.String("path", r.URL.Path),
		logging.Error(err),
	)
	s.writeError(w, http.StatusInternalServerError, "internal error")
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: message})
}
