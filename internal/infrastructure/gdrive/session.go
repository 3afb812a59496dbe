// Package gdrive conecta la subida de documentos con Google Drive:
// sesión OAuth2 del usuario y almacén de archivos sobre la API Drive v3.
package gdrive

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/pkg/config"
)

// stateTTL vigencia de un parámetro state emitido para el consentimiento.
const stateTTL = 10 * time.Minute

// Session sesión OAuth2 única del servicio. Se construye una vez en main y se
// comparte explícitamente; el token vive en memoria y se pierde al reiniciar.
type Session struct {
	cfg   *oauth2.Config
	ready bool
	now   func() time.Time

	mu     sync.Mutex
	token  *oauth2.Token
	states map[string]time.Time
}

// NewSession prepara la configuración OAuth2. Sin client id/secret la sesión
// queda no disponible (Ready false) y las subidas fallan con ErrDriveUnavailable.
func NewSession(cfg config.DriveConfig) *Session {
	return &Session{
		cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{drive.DriveFileScope},
			Endpoint:     google.Endpoint,
		},
		ready:  cfg.ClientID != "" && cfg.ClientSecret != "",
		now:    time.Now,
		states: make(map[string]time.Time),
	}
}

// Ready indica si la integración está configurada.
func (s *Session) Ready() bool { return s.ready }

// SignedIn indica si hay un token de usuario.
func (s *Session) SignedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != nil
}

// AuthURL URL de consentimiento con un state de un solo uso.
func (s *Session) AuthURL() string {
	state := uuid.NewString()
	s.mu.Lock()
	s.pruneStates()
	s.states[state] = s.now().Add(stateTTL)
	s.mu.Unlock()
	return s.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
}

// Exchange valida el state y canjea el código de autorización por un token.
func (s *Session) Exchange(ctx context.Context, state, code string) error {
	s.mu.Lock()
	exp, ok := s.states[state]
	delete(s.states, state)
	s.mu.Unlock()
	if !ok || s.now().After(exp) {
		return fmt.Errorf("%w: state inválido o expirado", domain.ErrUnauthorized)
	}
	if code == "" {
		return fmt.Errorf("%w: code requerido", domain.ErrInvalidInput)
	}
	tok, err := s.cfg.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("canjear código: %w", err)
	}
	s.setToken(tok)
	return nil
}

// SignOut descarta el token.
func (s *Session) SignOut() {
	s.mu.Lock()
	s.token = nil
	s.mu.Unlock()
}

func (s *Session) setToken(tok *oauth2.Token) {
	s.mu.Lock()
	s.token = tok
	s.mu.Unlock()
}

// TokenSource fuente de tokens que refresca y conserva el token renovado.
func (s *Session) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	s.mu.Lock()
	tok := s.token
	s.mu.Unlock()
	if tok == nil {
		return nil, fmt.Errorf("%w: sesión de Drive no iniciada", domain.ErrUnauthorized)
	}
	return &savingTokenSource{base: s.cfg.TokenSource(ctx, tok), session: s}, nil
}

func (s *Session) pruneStates() {
	now := s.now()
	for k, exp := range s.states {
		if now.After(exp) {
			delete(s.states, k)
		}
	}
}

type savingTokenSource struct {
	base    oauth2.TokenSource
	session *Session
}

func (t *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := t.base.Token()
	if err != nil {
		return nil, err
	}
	t.session.setToken(tok)
	return tok, nil
}
