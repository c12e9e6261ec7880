package delivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/mimirpublish/internal/destinations"
	"github.com/Vovarama1992/mimirpublish/internal/domain"
	"github.com/Vovarama1992/mimirpublish/internal/models"
	"github.com/Vovarama1992/mimirpublish/internal/ports"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recorder struct {
	actions []string
}

func (r *recorder) SendLoaded() { r.actions = append(r.actions, models.ActionPluginLoaded) }
func (r *recorder) SendSave() { r.actions = append(r.actions, models.ActionSaveMetadata) }
func (r *recorder) SendMetadataUpdate(formID string, _ map[string]any) {
	r.actions = append(r.actions, models.ActionUpdateMetadata+":"+formID)
}

type fixture struct {
	router http.Handler
	editor *domain.Editor
	out    *recorder
	token  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.NewZapLogger(zap.NewNop().Sugar())
	table := destinations.Default()
	out := &recorder{}
	editor := domain.NewEditor(domain.NewNormalizer(table, log), table, out, log)
	auth := domain.NewAuthService("pw", "secret")

	r := chi.NewRouter()
	RegisterRoutes(r, NewAuthHandler(auth, log), auth, NewAssetHandler(editor, table, log))

	f := &fixture{router: r, editor: editor, out: out}
	rec := f.do(t, http.MethodPost, "/api/login", `{"password":"pw"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	f.token = body["token"]
	require.NotEmpty(t, f.token)
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if f.token != "" {
		req.Header.Set("X-Auth", f.token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	f := newFixture(t)
	f.token = ""
	rec := f.do(t, http.MethodPost, "/api/login", `{"password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPIRequiresToken(t *testing.T) {
	f := newFixture(t)

	f.token = ""
	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "/api/asset", "").Code)

	f.token = "forged"
	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "/api/asset", "").Code)
}

func TestGetAssetAfterLoad(t *testing.T) {
	f := newFixture(t)
	f.editor.HandleMessage(models.Message{
		Type:    models.TypeItemLoaded,
		Payload: json.RawMessage(`{"id":"a1","title":"Clip","metadata":{"formData":{"publishedLoc":["play"]}}}`),
	})

	rec := f.do(t, http.MethodGet, "/api/asset", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var st ports.EditorState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	require.NotNil(t, st.Asset)
	assert.Equal(t, "a1", st.Asset.ID)
	assert.Equal(t, "Clip", st.Form.PublishTitle)
	assert.Equal(t, []string{"Play"}, st.Form.Destinations)
}

func TestSetPointEndpoints(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPut, "/api/asset/in-point", `{"timecode":"00:00:05"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"timecode":"00:00:05:00"}`, rec.Body.String())

	rec = f.do(t, http.MethodPut, "/api/asset/out-point", `{"timecode":"00:61:00:00"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = f.do(t, http.MethodPut, "/api/asset/out-point", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToggleDestinationEndpoint(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/asset/destinations/TV2.no/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"destinations":["TV2.no"]}`, rec.Body.String())
	assert.Equal(t, []string{"update_metadata:Common"}, f.out.actions)

	rec = f.do(t, http.MethodPost, "/api/asset/destinations/Radio/toggle", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitEndpoint(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, http.StatusConflict, f.do(t, http.MethodPost, "/api/submit", "").Code)

	f.editor.HandleMessage(models.Message{Type: models.TypeItem, Payload: json.RawMessage(`{}`)})
	rec := f.do(t, http.MethodPatch, "/api/form", `{"category":"sport","tags":["a"," b "]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var form models.PublishingForm
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &form))
	assert.Equal(t, "sport", form.Category)
	assert.Equal(t, []string{"a", "b"}, form.Tags)

	assert.Equal(t, http.StatusAccepted, f.do(t, http.MethodPost, "/api/submit", "").Code)
	assert.Equal(t, []string{"update_metadata:Common", "update_metadata:publishing", "save_metadata"}, f.out.actions)
}

func TestConvertTimecode(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/timecode/convert", `{"frame":90000,"framerate":25}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"timecode":"01:00:00:00","frame":90000,"framerate":25,"valid":true}`, rec.Body.String())

	rec = f.do(t, http.MethodPost, "/api/timecode/convert", `{"timecode":"bad-format"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"timecode":"bad-format","frame":0,"framerate":25,"valid":false}`, rec.Body.String())
}

func TestListEndpoints(t *testing.T) {
	f := newFixture(t)
	f.editor.HandleMessage(models.Message{Type: "debug_ping"})

	rec := f.do(t, http.MethodGet, "/api/destinations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var entries []destinations.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	assert.Len(t, entries, 4)

	rec = f.do(t, http.MethodGet, "/api/messages", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var msgs []models.ReceivedMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msgs))
	require.Len(t, msgs, 1)
	assert.Equal(t, "debug_ping", msgs[0].Type)
}
