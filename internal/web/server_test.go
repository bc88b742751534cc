package web

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/cda/internal/catalog"
	"github.com/JonMunkholm/cda/internal/config"
	"github.com/JonMunkholm/cda/internal/keywords"
	"github.com/JonMunkholm/cda/internal/pipeline"
	"github.com/JonMunkholm/cda/internal/sqltype"
	"github.com/JonMunkholm/cda/internal/workbook/xlsxtest"
	"github.com/stretchr/testify/require"
)

func testConfig() config.ServerConfig {
	return config.ServerConfig{
		Port:           8080,
		RequestTimeout: 10 * time.Second,
		MaxUploadSize:  1 << 20,
	}
}

func newTestServer(t *testing.T, cfg config.ServerConfig) *httptest.Server {
	t.Helper()

	kw, err := keywords.Default()
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cat := catalog.Default()
	conv := pipeline.NewConverter(cat, sqltype.Postgres(), kw, logger)

	ts := httptest.NewServer(NewServer(conv, cat, cfg).Router())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, contentType string, body []byte) *http.Response {
	t.Helper()
	resp, err := http.Post(url, contentType, bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

const xlsxType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func TestHealth(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
}

func TestConvert_SQL(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp := post(t, ts.URL+"/api/convert/sql", xlsxType, xlsxtest.Build(t, xlsxtest.Model()...))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "application/sql"))
	require.NotEmpty(t, resp.Header.Get(HeaderRunID))
	require.Empty(t, resp.Header.Get(HeaderWarnings))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "CREATE TABLE hcp (\n    name VARCHAR(40),\n    language CHAR(2)\n)")
	require.Contains(t, string(body), "CREATE TABLE picklist_language")
}

func TestConvert_YAMLMultipart(t *testing.T) {
	ts := newTestServer(t, testConfig())

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(uploadField, "model.xlsx")
	require.NoError(t, err)
	_, err = part.Write(xlsxtest.Build(t, xlsxtest.Model()...))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp := post(t, ts.URL+"/api/convert/yaml", mw.FormDataContentType(), buf.Bytes())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(body), "Picklist Entities:\n"))
	require.Contains(t, string(body), "License:\n")
}

func TestConvert_Warnings(t *testing.T) {
	ts := newTestServer(t, testConfig())

	sheets := xlsxtest.Model()
	sheets[0].Rows = append(sheets[0].Rows, []any{"eng", "English", "ltr"})

	resp := post(t, ts.URL+"/api/convert/sql", xlsxType, xlsxtest.Build(t, sheets...))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "1", resp.Header.Get(HeaderWarnings))
}

func TestConvert_Errors(t *testing.T) {
	model := xlsxtest.Model()

	missingAttributes := xlsxtest.Build(t, model[0], model[1])
	unknownPicklist := xlsxtest.Build(t, append(model, xlsxtest.Sheet{Name: "Colors", Rows: [][]any{{"Name"}, {"red"}}})...)

	floatSheets := xlsxtest.Model()
	floatSheets[1].Rows = append(floatSheets[1].Rows, []any{"address", 1.5})
	floatCell := xlsxtest.Build(t, floatSheets...)

	typeSheets := xlsxtest.Model()
	typeSheets[2].Rows = append(typeSheets[2].Rows, []any{"hcp", "score", "Score", "Decimal"})
	unresolved := xlsxtest.Build(t, typeSheets...)

	tests := []struct {
		name   string
		path   string
		body   []byte
		status int
		code   string
	}{
		{"unknown format", "/api/convert/csv", xlsxtest.Build(t, model...), http.StatusNotFound, "REQ001"},
		{"empty body", "/api/convert/sql", nil, http.StatusBadRequest, "FILE002"},
		{"not a workbook", "/api/convert/sql", []byte("Name,Label\nhcp,HCP\n"), http.StatusBadRequest, "FILE002"},
		{"missing sheet", "/api/convert/sql", missingAttributes, http.StatusUnprocessableEntity, "WB001"},
		{"unknown picklist", "/api/convert/yaml", unknownPicklist, http.StatusUnprocessableEntity, "WB001"},
		{"float cell", "/api/convert/sql", floatCell, http.StatusUnprocessableEntity, "WB002"},
		{"unresolved type", "/api/convert/sql", unresolved, http.StatusUnprocessableEntity, "SQL001"},
	}

	ts := newTestServer(t, testConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+tt.path, xlsxType, tt.body)
			require.Equal(t, tt.status, resp.StatusCode)

			body := decodeError(t, resp)
			require.Equal(t, tt.code, body.Code)
			require.NotEmpty(t, body.Message)
			require.NotEmpty(t, body.Action)
		})
	}
}

func TestConvert_TooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.MaxUploadSize = 64
	ts := newTestServer(t, cfg)

	resp := post(t, ts.URL+"/api/convert/sql", xlsxType, xlsxtest.Build(t, xlsxtest.Model()...))
	require.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	require.Equal(t, "FILE001", decodeError(t, resp).Code)
}

func TestAPIKey(t *testing.T) {
	cfg := testConfig()
	cfg.APIKeys = []string{"secret-1", "secret-2"}
	ts := newTestServer(t, cfg)

	get := func(key string) *http.Response {
		req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/picklists", nil)
		require.NoError(t, err)
		if key != "" {
			req.Header.Set("X-API-Key", key)
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		t.Cleanup(func() { resp.Body.Close() })
		return resp
	}

	resp := get("")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "AUTH001", decodeError(t, resp).Code)

	resp = get("wrong")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, "AUTH002", decodeError(t, resp).Code)

	require.Equal(t, http.StatusOK, get("secret-2").StatusCode)

	health, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer health.Body.Close()
	require.Equal(t, http.StatusOK, health.StatusCode, "health check must not need a key")
}

func TestListPicklists(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp, err := http.Get(ts.URL + "/api/picklists")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body picklistsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, catalog.Version, body.Version)
	require.Len(t, body.Picklists, catalog.Default().Len())

	var language *picklistInfo
	for i := range body.Picklists {
		if body.Picklists[i].Name == "Language" {
			language = &body.Picklists[i]
		}
	}
	require.NotNil(t, language)
	require.Equal(t, "Language Items", language.Sheet)
	require.Equal(t, picklistColumn{Name: "name", DataType: "CHAR(2)"}, language.Columns[0])
}
