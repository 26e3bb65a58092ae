package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/fulldump/box"

	"github.com/anytable/anytable/database"
	"github.com/anytable/anytable/service"
	"github.com/anytable/anytable/tabular"
)

type PrettyError struct {
	Message     string `json:"message"`
	Description string `json:"description"`
}

func (p PrettyError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"error": struct {
			Message     string `json:"message"`
			Description string `json:"description"`
		}{
			p.Message,
			p.Description,
		},
	})
}

func InterceptorUnavailable(db *database.Database) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {

			status := db.GetStatus()
			if status == database.StatusOpening {
				box.SetError(ctx, fmt.Errorf("temporary unavailable: opening"))
				return
			}
			if status == database.StatusClosing {
				box.SetError(ctx, fmt.Errorf("temporary unavailable: closing"))
				return
			}
			next(ctx)
		}
	}
}

func PrettyErrorInterceptor(next box.H) box.H {
	return func(ctx context.Context) {

		next(ctx)

		err := box.GetError(ctx)
		if err == nil {
			return
		}
		w := box.GetResponse(ctx)

		writeError := func(status int, description string) {
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(PrettyError{
				Message:     err.Error(),
				Description: description,
			})
		}

		if err == box.ErrResourceNotFound {
			writeError(http.StatusNotFound, fmt.Sprintf("resource '%s' not found", box.GetRequest(ctx).URL.String()))
			return
		}

		if err == box.ErrMethodNotAllowed {
			writeError(http.StatusMethodNotAllowed, fmt.Sprintf("method '%s' not allowed", box.GetRequest(ctx).Method))
			return
		}

		if err == service.ErrorTableNotFound {
			writeError(http.StatusNotFound, "table does not exist, check the table name")
			return
		}

		if err == service.ErrorTableAlreadyExists {
			writeError(http.StatusConflict, "a table with that name already exists")
			return
		}

		if errors.Is(err, tabular.ErrTypeMismatch) ||
			errors.Is(err, tabular.ErrDuplicateColumn) ||
			errors.Is(err, tabular.ErrInvalidColumn) ||
			errors.Is(err, tabular.ErrInvalidRow) {
			writeError(http.StatusBadRequest, "payload does not conform to the table schema")
			return
		}

		if _, ok := err.(*json.SyntaxError); ok {
			writeError(http.StatusBadRequest, "malformed JSON")
			return
		}

		writeError(http.StatusInternalServerError, "unexpected error")
	}
}
