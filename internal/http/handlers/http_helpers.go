package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"

	mw "github.com/rogerio-castellano/erp-analytics/internal/http/middleware"
	"github.com/rogerio-castellano/erp-analytics/internal/models"
)

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

func respond(w http.ResponseWriter, status int, data any) {
	if err := writeJSON(w, status, data); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

func parseIntPtr(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

// pagination reads offset and limit, rejecting out of range values.
func pagination(q url.Values) (offset, limit *int, err error) {
	offset = parseIntPtr(q.Get("offset"))
	limit = parseIntPtr(q.Get("limit"))

	if limit != nil && *limit <= 0 {
		return nil, nil, errors.New("limit must be greater than zero")
	}
	if offset != nil && *offset < 0 {
		return nil, nil, errors.New("offset must be zero or positive")
	}
	return offset, limit, nil
}

func currentUser(r *http.Request) int {
	return mw.GetUserID(r)
}

// productsChanged drops cached reports and raises a low-stock alert when needed.
func productsChanged(userID int, touched ...models.Product) {
	reportCache.Invalidate(userID)

	if lowStock == nil {
		return
	}
	for _, p := range touched {
		if err := lowStock.RecordLowStock(p); err != nil {
			log.Printf("❌ Failed to record low stock alert for product %s: %v", p.ID, err)
		}
	}
}
