package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/angelmondragon/orderdesk/pkg/errors"
	"github.com/go-chi/chi/v5"
)

// ParseID reads a positive int64 path parameter.
func ParseID(r *http.Request, key string) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, key))
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "Invalid path parameter: "+key).
			WithDetails(map[string]string{key: "must be a positive integer"})
	}
	return value, nil
}
