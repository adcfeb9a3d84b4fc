package points_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"testing"

	"github.com/JaimeStill/ecopoint/internal/items"
	"github.com/JaimeStill/ecopoint/internal/points"
	"github.com/JaimeStill/ecopoint/pkg/handlers"
	"github.com/JaimeStill/ecopoint/pkg/openapi"
	"github.com/JaimeStill/ecopoint/pkg/pagination"
	"github.com/JaimeStill/ecopoint/pkg/routes"
	"github.com/google/uuid"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

var pngData = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)

type fakeSystem struct {
	points  map[uuid.UUID]*points.Detail
	created *points.CreateCommand
	filters points.Filters
	page    pagination.PageRequest
	err     error
}

func (f *fakeSystem) List(ctx context.Context, page pagination.PageRequest, filters points.Filters) (*pagination.PageResult[points.Point], error) {
	f.page, f.filters = page, filters
	if f.err != nil {
		return nil, f.err
	}
	var data []points.Point
	for _, d := range f.points {
		data = append(data, d.Point)
	}
	result := pagination.NewPageResult(data, len(data), page.Page, page.PageSize)
	return &result, nil
}

func (f *fakeSystem) Find(ctx context.Context, id uuid.UUID) (*points.Detail, error) {
	d, ok := f.points[id]
	if !ok {
		return nil, points.ErrNotFound
	}
	return d, nil
}

func (f *fakeSystem) Create(ctx context.Context, cmd points.CreateCommand) (*points.Detail, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = &cmd
	d := &points.Detail{
		Point: points.Point{ID: uuid.New(), Name: cmd.Name, City: cmd.City, UF: cmd.UF},
	}
	for _, id := range cmd.Items {
		d.Items = append(d.Items, items.Item{ID: id})
	}
	return d, nil
}

func newServer(t *testing.T, sys points.System, maxUpload int64) *httptest.Server {
	t.Helper()
	cfg := pagination.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("pagination Finalize() error = %v", err)
	}

	h := points.NewHandler(sys, discard, cfg, maxUpload)
	mux := http.NewServeMux()
	routes.Register(mux, "/api", openapi.NewSpec("test", "1"), h.Routes())

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func validFields() map[string]string {
	return map[string]string{
		"name":      "Mercado Central",
		"email":     "contato@mercado.com",
		"whatsapp":  "11999998888",
		"latitude":  "-22.9",
		"longitude": "-47.06",
		"city":      "Campinas",
		"uf":        "sp",
		"items":     "1, 2",
	}
}

type filePart struct {
	field    string
	filename string
	data     []byte
}

func multipartBody(t *testing.T, fields map[string]string, filename string, file []byte) (*bytes.Buffer, string) {
	t.Helper()
	if file == nil {
		return multipartFiles(t, fields)
	}
	return multipartFiles(t, fields, filePart{"image", filename, file})
}

func multipartFiles(t *testing.T, fields map[string]string, files ...filePart) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	for _, f := range files {
		fw, err := mw.CreateFormFile(f.field, f.filename)
		if err != nil {
			t.Fatal(err)
		}
		fw.Write(f.data)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func decodeKinds(t *testing.T, resp *http.Response) map[string]string {
	t.Helper()
	var vr handlers.ValidationResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	kinds := make(map[string]string)
	for _, fe := range vr.Fields {
		kinds[fe.Field] = string(fe.Kind)
	}
	return kinds
}

func post(t *testing.T, srv *httptest.Server, body io.Reader, contentType string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+"/points", contentType, body)
	if err != nil {
		t.Fatalf("POST /points: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestCreate_WithImage(t *testing.T) {
	sys := &fakeSystem{}
	srv := newServer(t, sys, 1<<20)

	body, ct := multipartBody(t, validFields(), "fachada.png", pngData)
	resp := post(t, srv, body, ct)

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	if sys.created == nil {
		t.Fatal("Create not called")
	}

	cmd := sys.created
	if cmd.UF != "SP" || cmd.Latitude != -22.9 || !slices.Equal(cmd.Items, []int{1, 2}) {
		t.Errorf("cmd = %+v", cmd)
	}
	if cmd.Image == nil || cmd.Image.ContentType != "image/png" || cmd.Image.Filename != "fachada.png" {
		t.Errorf("image = %+v", cmd.Image)
	}

	var detail points.Detail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(detail.Items) != 2 {
		t.Errorf("items = %v", detail.Items)
	}
}

func TestCreate_WithoutImage(t *testing.T) {
	sys := &fakeSystem{}
	srv := newServer(t, sys, 1<<20)

	body, ct := multipartBody(t, validFields(), "", nil)
	resp := post(t, srv, body, ct)

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	if sys.created.Image != nil {
		t.Errorf("image = %+v, want nil", sys.created.Image)
	}
}

func TestCreate_ValidationReportsEveryField(t *testing.T) {
	sys := &fakeSystem{}
	srv := newServer(t, sys, 1<<20)

	fields := validFields()
	delete(fields, "name")
	fields["email"] = "not-an-email"
	fields["latitude"] = "north"
	fields["items"] = "1,x"

	body, ct := multipartBody(t, fields, "fachada.png", pngData)
	resp := post(t, srv, body, ct)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
	if sys.created != nil {
		t.Error("Create called for invalid submission")
	}

	got := decodeKinds(t, resp)
	want := map[string]string{
		"name":     "missing",
		"email":    "malformed",
		"latitude": "type",
		"items":    "malformed",
	}
	for field, kind := range want {
		if got[field] != kind {
			t.Errorf("%s kind = %q, want %q (all: %v)", field, got[field], kind, got)
		}
	}
}

func TestCreate_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		body       func(t *testing.T) (io.Reader, string)
		maxUpload  int64
		wantStatus int
	}{
		{
			name: "unsupported image",
			body: func(t *testing.T) (io.Reader, string) {
				return multipartBody(t, validFields(), "notes.txt", []byte("plain text, not an image"))
			},
			maxUpload:  1 << 20,
			wantStatus: http.StatusUnsupportedMediaType,
		},
		{
			name: "too large",
			body: func(t *testing.T) (io.Reader, string) {
				return multipartBody(t, validFields(), "big.png", append(pngData, bytes.Repeat([]byte{1}, 4096)...))
			},
			maxUpload:  1024,
			wantStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name: "file under another field",
			body: func(t *testing.T) (io.Reader, string) {
				return multipartFiles(t, validFields(), filePart{"photo", "fachada.png", pngData})
			},
			maxUpload:  1 << 20,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "extra file beside image",
			body: func(t *testing.T) (io.Reader, string) {
				return multipartFiles(t, validFields(),
					filePart{"image", "fachada.png", pngData},
					filePart{"attachment", "notes.txt", []byte("notes")},
				)
			},
			maxUpload:  1 << 20,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "two images",
			body: func(t *testing.T) (io.Reader, string) {
				return multipartFiles(t, validFields(),
					filePart{"image", "a.png", pngData},
					filePart{"image", "b.png", pngData},
				)
			},
			maxUpload:  1 << 20,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "malformed json",
			body: func(t *testing.T) (io.Reader, string) {
				return strings.NewReader(`{"name":`), "application/json"
			},
			maxUpload:  1 << 20,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "json object field",
			body: func(t *testing.T) (io.Reader, string) {
				return strings.NewReader(`{"name":{"first":"x"}}`), "application/json"
			},
			maxUpload:  1 << 20,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &fakeSystem{}
			srv := newServer(t, sys, tt.maxUpload)

			body, ct := tt.body(t)
			resp := post(t, srv, body, ct)

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if sys.created != nil {
				t.Error("Create called for rejected submission")
			}
		})
	}
}

func TestCreate_UFTooLong(t *testing.T) {
	sys := &fakeSystem{}
	srv := newServer(t, sys, 1<<20)

	fields := validFields()
	fields["uf"] = "SPX"

	body, ct := multipartBody(t, fields, "", nil)
	resp := post(t, srv, body, ct)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
	if sys.created != nil {
		t.Error("Create called for invalid uf")
	}

	got := decodeKinds(t, resp)
	if got["uf"] != "too_long" || len(got) != 1 {
		t.Errorf("kinds = %v, want only uf too_long", got)
	}
}

func TestCreate_FieldOnlyBodies(t *testing.T) {
	jsonBody := `{"name":"Mercado Central","email":"contato@mercado.com","whatsapp":"11999998888",` +
		`"latitude":-22.9,"longitude":-47.06,"city":"Campinas","uf":"sp","items":[1,2]}`

	form := url.Values{}
	for k, v := range validFields() {
		form.Set(k, v)
	}

	tests := []struct {
		name        string
		body        string
		contentType string
	}{
		{"json", jsonBody, "application/json"},
		{"json with charset", jsonBody, "application/json; charset=utf-8"},
		{"urlencoded", form.Encode(), "application/x-www-form-urlencoded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &fakeSystem{}
			srv := newServer(t, sys, 1<<20)

			resp := post(t, srv, strings.NewReader(tt.body), tt.contentType)

			if resp.StatusCode != http.StatusCreated {
				t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
			}
			cmd := sys.created
			if cmd.UF != "SP" || cmd.Latitude != -22.9 || !slices.Equal(cmd.Items, []int{1, 2}) {
				t.Errorf("cmd = %+v", cmd)
			}
			if cmd.Image != nil {
				t.Errorf("image = %+v, want nil", cmd.Image)
			}
		})
	}
}

func TestCreate_FieldOnlyBodiesAreValidated(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
	}{
		{"json", `{"name":"x"}`, "application/json"},
		{"urlencoded", "name=x", "application/x-www-form-urlencoded"},
		{"plain text", "name=x", "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &fakeSystem{}
			srv := newServer(t, sys, 1<<20)

			resp := post(t, srv, strings.NewReader(tt.body), tt.contentType)

			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
			}
			if sys.created != nil {
				t.Error("Create called for incomplete submission")
			}

			got := decodeKinds(t, resp)
			for _, field := range []string{"email", "whatsapp", "latitude", "longitude", "city", "uf", "items"} {
				if got[field] != "missing" {
					t.Errorf("%s kind = %q, want missing (all: %v)", field, got[field], got)
				}
			}
		})
	}
}

func TestCreate_UnknownItem(t *testing.T) {
	sys := &fakeSystem{err: points.ErrInvalidItems}
	srv := newServer(t, sys, 1<<20)

	body, ct := multipartBody(t, validFields(), "", nil)
	resp := post(t, srv, body, ct)

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestFind(t *testing.T) {
	id := uuid.New()
	sys := &fakeSystem{points: map[uuid.UUID]*points.Detail{
		id: {Point: points.Point{ID: id, Name: "Ecoponto"}, Items: []items.Item{{ID: 1, Title: "Lâmpadas"}}},
	}}
	srv := newServer(t, sys, 1<<20)

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/points/" + id.String(), http.StatusOK},
		{"/points/" + uuid.NewString(), http.StatusNotFound},
		{"/points/not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		resp, err := http.Get(srv.URL + tt.path)
		if err != nil {
			t.Fatalf("GET %s: %v", tt.path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != tt.wantStatus {
			t.Errorf("GET %s status = %d, want %d", tt.path, resp.StatusCode, tt.wantStatus)
		}
	}
}

func TestList(t *testing.T) {
	sys := &fakeSystem{points: map[uuid.UUID]*points.Detail{}}
	srv := newServer(t, sys, 1<<20)

	resp, err := http.Get(srv.URL + "/points?city=Campinas&uf=sp&items=3,1&page=2&page_size=5")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if sys.filters.UF == nil || *sys.filters.UF != "SP" {
		t.Errorf("UF filter = %v", sys.filters.UF)
	}
	if !slices.Equal(sys.filters.Items, []int{3, 1}) {
		t.Errorf("Items filter = %v", sys.filters.Items)
	}
	if sys.page.Page != 2 || sys.page.PageSize != 5 {
		t.Errorf("page = %+v", sys.page)
	}

	var result pagination.PageResult[points.Point]
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Data == nil {
		t.Error("data = null, want []")
	}
}

func TestList_BadItems(t *testing.T) {
	srv := newServer(t, &fakeSystem{}, 1<<20)

	resp, err := http.Get(srv.URL + "/points?items=abc")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{points.ErrNotFound, http.StatusNotFound},
		{points.ErrDuplicate, http.StatusConflict},
		{points.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{points.ErrUnsupportedImage, http.StatusUnsupportedMediaType},
		{points.ErrInvalidItems, http.StatusBadRequest},
		{points.ErrInvalidFile, http.StatusBadRequest},
		{points.ErrInvalidForm, http.StatusBadRequest},
		{points.ErrUnexpectedFile, http.StatusBadRequest},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := points.MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
