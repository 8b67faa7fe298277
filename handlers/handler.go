package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/andrewpaige1/fliply-api/classcodes"
	"github.com/andrewpaige1/fliply-api/repository"
)

const maxBodyBytes = 1 << 20

// SetHandler serves the /api/sets routes.
type SetHandler struct {
	Sets       repository.SetStore
	ClassCodes *classcodes.Catalog
}

func NewSetHandler(sets repository.SetStore, codes *classcodes.Catalog) *SetHandler {
	if codes == nil {
		codes = classcodes.New(nil)
	}
	return &SetHandler{Sets: sets, ClassCodes: codes}
}

// decodeBody reads a JSON body into v. An empty body leaves v untouched
// when allowEmpty is set.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}, allowEmpty bool) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if allowEmpty && errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// Health reports that the server is up.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("OK"))
}
