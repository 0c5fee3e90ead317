package shared

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/go-playground/form"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

var Decoder = form.NewDecoder()

// ParseUUID extracts and parses the "id" route variable.
func ParseUUID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)["id"])
}

// Redirect issues a plain 302 redirect.
func Redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusFound)
}

// SetFlash stores a one-shot value read and cleared by composables.UseFlash.
func SetFlash(w http.ResponseWriter, name string, value []byte) {
	http.SetCookie(w, &http.Cookie{
		Name:  name,
		Value: base64.URLEncoding.EncodeToString(value),
		Path:  "/",
	})
}

func SetFlashMap[K comparable, V any](w http.ResponseWriter, name string, value map[K]V) {
	encoded, err := json.Marshal(value)
	if err != nil {
		panic(err)
	}
	SetFlash(w, name, encoded)
}
