package gdrive

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/pkg/config"
)

func testSession() *Session {
	return NewSession(config.DriveConfig{
		ClientID:     "client-123",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:8080/api/drive/callback",
	})
}

func TestFolderQuery(t *testing.T) {
	assert.Equal(t,
		"name='Performa Invoices & Quotations' and mimeType='application/vnd.google-apps.folder' and trashed=false",
		FolderQuery("Performa Invoices & Quotations"))
	assert.Equal(t,
		`name='Ravi\'s \\docs' and mimeType='application/vnd.google-apps.folder' and trashed=false`,
		FolderQuery(`Ravi's \docs`))
}

func TestSession_Ready(t *testing.T) {
	assert.True(t, testSession().Ready())
	assert.False(t, NewSession(config.DriveConfig{ClientID: "x"}).Ready())
}

func TestSession_AuthURL(t *testing.T) {
	s := testSession()
	raw := s.AuthURL()

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "client-123", q.Get("client_id"))
	assert.Equal(t, "https://www.googleapis.com/auth/drive.file", q.Get("scope"))
	assert.Equal(t, "offline", q.Get("access_type"))
	assert.NotEmpty(t, q.Get("state"))
	assert.Len(t, s.states, 1)
}

func TestSession_ExchangeStateInvalido(t *testing.T) {
	s := testSession()
	err := s.Exchange(context.Background(), "desconocido", "code")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.False(t, s.SignedIn())
}

func TestSession_ExchangeStateExpirado(t *testing.T) {
	s := testSession()
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	state := extractState(t, s.AuthURL())
	now = now.Add(stateTTL + time.Second)

	err := s.Exchange(context.Background(), state, "code")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSession_ExchangeCanjeaCodigo(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "auth-code", r.Form.Get("code"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token":"tok","token_type":"Bearer","expires_in":3600}`)
	}))
	defer tokenSrv.Close()

	s := testSession()
	s.cfg.Endpoint = oauth2.Endpoint{AuthURL: tokenSrv.URL + "/auth", TokenURL: tokenSrv.URL + "/token"}

	state := extractState(t, s.AuthURL())
	require.NoError(t, s.Exchange(context.Background(), state, "auth-code"))
	assert.True(t, s.SignedIn())

	// El state es de un solo uso.
	assert.ErrorIs(t, s.Exchange(context.Background(), state, "auth-code"), domain.ErrUnauthorized)

	s.SignOut()
	assert.False(t, s.SignedIn())
}

func TestFileStore_SinSesion(t *testing.T) {
	store := NewFileStore(testSession())
	_, _, err := store.FindFolder(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestFileStore_ContraServidorFalso(t *testing.T) {
	var uploadBody string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/files"):
			if strings.Contains(r.URL.Query().Get("q"), "Existente") {
				_ = json.NewEncoder(w).Encode(map[string]any{"files": []map[string]string{{"id": "folder-1"}, {"id": "folder-2"}}})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"files": []any{}})
		case r.Method == http.MethodPost && r.URL.Query().Get("uploadType") == "multipart":
			b, _ := io.ReadAll(r.Body)
			uploadBody = string(b)
			assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/related"))
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "file-9"})
		case r.Method == http.MethodPost:
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "folder-new"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer api.Close()

	s := testSession()
	s.setToken(&oauth2.Token{AccessToken: "tok", Expiry: time.Now().Add(time.Hour)})
	store := NewFileStore(s, option.WithEndpoint(api.URL+"/drive/v3/"), option.WithHTTPClient(api.Client()))
	ctx := context.Background()

	id, found, err := store.FindFolder(ctx, "Existente")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "folder-1", id, "gana la primera coincidencia")

	_, found, err = store.FindFolder(ctx, "Nueva")
	require.NoError(t, err)
	assert.False(t, found)

	id, err = store.CreateFolder(ctx, "Nueva")
	require.NoError(t, err)
	assert.Equal(t, "folder-new", id)

	id, err = store.UploadFile(ctx, "QT-2024-1234.pdf", "application/pdf", []byte("%PDF-1.4 test"), "folder-new")
	require.NoError(t, err)
	assert.Equal(t, "file-9", id)
	assert.Contains(t, uploadBody, `"name":"QT-2024-1234.pdf"`)
	assert.Contains(t, uploadBody, `"parents":["folder-new"]`)
	assert.Contains(t, uploadBody, "%PDF-1.4 test")
}

func extractState(t *testing.T, raw string) string {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u.Query().Get("state")
}
