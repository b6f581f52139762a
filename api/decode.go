package api

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rpupo63/portfolio-backend/errs"
)

const maxBodyBytes int64 = 1 << 20

// decodeBody reads a JSON or URL-encoded form body into dst. Form values are
// mapped onto the same json tags, so a single request type serves both.
// An empty body leaves dst untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		return decodeForm(r, dst)
	default:
		return decodeJSON(r.Body, dst)
	}
}

func decodeJSON(body io.Reader, dst any) error {
	err := json.NewDecoder(body).Decode(dst)
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return nil
	case isMaxBytesError(err):
		return errs.NewMaxBodySizeExceededError(maxBodyBytes)
	default:
		return errs.NewMalformedPayloadError("JSON", err)
	}
}

func decodeForm(r *http.Request, dst any) error {
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		err = r.ParseMultipartForm(maxBodyBytes)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		if isMaxBytesError(err) {
			return errs.NewMaxBodySizeExceededError(maxBodyBytes)
		}
		return errs.NewMalformedPayloadError("form", err)
	}

	// "tech_stack[]" and repeated keys become lists, everything else a string
	values := make(map[string]any, len(r.PostForm))
	for key, vals := range r.PostForm {
		name := strings.TrimSuffix(key, "[]")
		if name != key || len(vals) > 1 {
			list, _ := values[name].([]string)
			values[name] = append(list, vals...)
			continue
		}
		if len(vals) == 1 {
			if _, isList := values[name].([]string); !isList {
				values[name] = vals[0]
			}
		}
	}

	raw, err := json.Marshal(values)
	if err != nil {
		return errs.NewMalformedPayloadError("form", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errs.NewMalformedPayloadError("form", err)
	}
	return nil
}

func isMaxBytesError(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr)
}

// stringList decodes from a JSON array of strings or from a single string
// holding comma separated items.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = nil
		return nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = items
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return errs.NewInvalidFieldError("tech_stack", "must be a list of strings")
	}
	*l = strings.Split(single, ",")
	return nil
}
