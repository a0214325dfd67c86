package httpadapter

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"blogmarket/internal/core/port"
)

// parseListInput reads the shared status/page/limit query parameters
// for listing endpoints. Range checks on the values happen in the
// usecase.
func parseListInput(r *http.Request, userID uuid.UUID) (port.ListOrdersInput, error) {
	in := port.ListOrdersInput{UserID: userID, Status: r.URL.Query().Get("status")}
	var err error
	if in.Page, err = parsePositiveInt(r, "page", 1); err != nil {
		return in, err
	}
	if in.Limit, err = parsePositiveInt(r, "limit", 0); err != nil {
		return in, err
	}
	return in, nil
}

func parsePositiveInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return v, nil
}
