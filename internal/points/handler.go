package points

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/JaimeStill/ecopoint/pkg/handlers"
	"github.com/JaimeStill/ecopoint/pkg/pagination"
	"github.com/JaimeStill/ecopoint/pkg/routes"
	"github.com/JaimeStill/ecopoint/pkg/validation"
	"github.com/google/uuid"
)

const multipartMemory = 1 << 20

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Handler provides HTTP endpoints for collection points.
type Handler struct {
	sys           System
	logger        *slog.Logger
	pagination    pagination.Config
	maxUploadSize int64
	validator     *validation.Validator
}

// NewHandler creates a point handler. maxUploadSize bounds the whole
// multipart body of a submission.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "points"),
		pagination:    pagination,
		maxUploadSize: maxUploadSize,
		validator:     NewValidator(),
	}
}

// Routes returns the point endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/points",
		Tags:        []string{"Points"},
		Description: "Waste collection points",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: Spec.Create},
		},
		Schemas: Spec.Schemas(),
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	filters, err := FiltersFromQuery(r.URL.Query())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	detail, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, detail)
}

// Create accepts multipart, urlencoded or JSON bodies. Only multipart can
// carry an image. Every text field is validated before any file is read,
// so a rejected submission never reaches storage.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxUploadSize {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	values, form, err := readForm(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if form != nil {
		defer form.RemoveAll()
	}

	req := CreateRequestFromForm(values)
	if err := h.validator.Struct(req); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			handlers.RespondValidation(w, h.logger, verrs)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	image, err := readImage(form)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	cmd, err := req.Command(image)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	detail, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, detail)
}

// readForm collects the submitted text fields. Multipart bodies also return
// their form so the image can be read once the fields pass validation.
// Urlencoded and JSON bodies carry fields only.
func readForm(r *http.Request) (url.Values, *multipart.Form, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return nil, nil, formError(err)
		}
		return r.MultipartForm.Value, r.MultipartForm, nil
	case "application/json":
		values, err := decodeJSONForm(r.Body)
		return values, nil, err
	}

	if err := r.ParseForm(); err != nil {
		return nil, nil, formError(err)
	}
	return r.PostForm, nil, nil
}

func formError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidForm, err)
}

func decodeJSONForm(body io.Reader) (url.Values, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, formError(err)
	}

	values := make(url.Values, len(raw))
	for key, v := range raw {
		s, err := jsonFieldValue(v)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %v", ErrInvalidForm, key, err)
		}
		if s != "" {
			values.Set(key, s)
		}
	}
	return values, nil
}

// jsonFieldValue renders a JSON value the way it would arrive as a form
// field. Arrays become comma-separated lists so items may be sent as [1, 2].
func jsonFieldValue(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	case []any:
		parts := make([]string, 0, len(v))
		for _, elem := range v {
			if _, nested := elem.([]any); nested {
				return "", errors.New("nested arrays are not supported")
			}
			s, err := jsonFieldValue(elem)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ","), nil
	}
	return "", errors.New("objects are not supported")
}

// readImage returns the "image" part, or nil when the submission has none.
// A file under any other field, or more than one image, is rejected.
func readImage(form *multipart.Form) (*Image, error) {
	if form == nil {
		return nil, nil
	}
	for key, files := range form.File {
		if key != "image" {
			return nil, fmt.Errorf("%w: field %q", ErrUnexpectedFile, key)
		}
		if len(files) > 1 {
			return nil, fmt.Errorf("%w: %d files under %q", ErrUnexpectedFile, len(files), key)
		}
	}

	files := form.File["image"]
	if len(files) == 0 {
		return nil, nil
	}
	header := files[0]

	file, err := header.Open()
	if err != nil {
		return nil, ErrInvalidFile
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, ErrInvalidFile
	}
	if len(data) == 0 {
		return nil, nil
	}

	contentType := http.DetectContentType(data)
	if !imageTypes[contentType] {
		return nil, ErrUnsupportedImage
	}

	return &Image{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}
