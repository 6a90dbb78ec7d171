package http

import (
	"encoding/json"
	"io"
	"net/http"

	"mototrack/internal/backup"
	"mototrack/internal/core"
)

// Backup uploads are whole JSON documents over at most a few thousand rows.
const maxBackupBytes = 16 << 20 // 16MB

// entryRequest is the write payload. Amount and km may come as the display
// strings the app's entry form produces ("12,34", "12,5") instead of the
// integer fields; the strings win when both are present.
type entryRequest struct {
	core.EntryInput
	Amount string `json:"amount"`
	Km     string `json:"km"`
}

func decodeEntry(r *http.Request) (core.EntryInput, error) {
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return core.EntryInput{}, errBadBody
	}

	in := req.EntryInput
	if req.Amount != "" {
		cents, err := core.ParseDecimalToCents(req.Amount)
		if err != nil {
			return core.EntryInput{}, err
		}
		in.AmountCents = cents
	}
	if req.Km != "" {
		meters, err := core.ParseKmToMeters(req.Km)
		if err != nil {
			return core.EntryInput{}, err
		}
		if meters > 0 {
			in.DistanceMeters = &meters
		}
	}
	return in, nil
}

// handleListTransactions lists all transactions, or one month when year and
// month query parameters are given.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		items []core.Transaction
		err   error
	)
	if q.Get("year") != "" || q.Get("month") != "" {
		year, month := parseYearMonth(r)
		items, err = s.transactions.ListByMonth(r.Context(), year, month)
	} else {
		items, err = s.transactions.List(r.Context())
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid transaction id"})
		return
	}

	t, err := s.transactions.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	in, err := decodeEntry(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := s.transactions.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid transaction id"})
		return
	}

	in, err := decodeEntry(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.transactions.Update(r.Context(), id, in); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"id": id})
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid transaction id"})
		return
	}

	if err := s.transactions.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleStats returns the monthly report: current and previous month stats,
// projection, and month-over-month differences.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	year, month := parseYearMonth(r)

	report, err := s.stats.MonthlyReport(r.Context(), year, month)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// handleExportBackup streams the full backup document as a download.
func (s *Server) handleExportBackup(w http.ResponseWriter, r *http.Request) {
	doc, err := backup.Build(r.Context(), s.store)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data, err := backup.Encode(doc)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+backup.DefaultFileName(timeNow())+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleImportBackup validates the uploaded document and restores it. A
// malformed or unsupported document is rejected before any row is touched.
func (s *Server) handleImportBackup(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBackupBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "could not read request body"})
		return
	}

	doc, err := backup.Decode(data)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := backup.Apply(r.Context(), s.store, doc); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"restored": len(doc.Transactions)})
}
