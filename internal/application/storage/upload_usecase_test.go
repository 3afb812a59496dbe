package storage_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/application/storage"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

type fakeSession struct {
	ready, signedIn bool
	exchangeErr     error
}

func (f *fakeSession) Ready() bool     { return f.ready }
func (f *fakeSession) SignedIn() bool  { return f.signedIn }
func (f *fakeSession) AuthURL() string { return "https://accounts.example/consent" }
func (f *fakeSession) SignOut()        { f.signedIn = false }
func (f *fakeSession) Exchange(_ context.Context, _, _ string) error {
	if f.exchangeErr != nil {
		return f.exchangeErr
	}
	f.signedIn = true
	return nil
}

type fakeStore struct {
	mu        sync.Mutex
	folders   map[string][]string
	created   []string
	uploads   []string
	parent    string
	uploadErr error
	block     chan struct{}
	started   chan struct{}
}

func newFakeStore() *fakeStore { return &fakeStore{folders: map[string][]string{}} }

func (f *fakeStore) FindFolder(_ context.Context, name string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := f.folders[name]
	if len(ids) == 0 {
		return "", false, nil
	}
	return ids[0], true, nil
}

func (f *fakeStore) CreateFolder(_ context.Context, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := "folder-" + name
	f.folders[name] = append(f.folders[name], id)
	f.created = append(f.created, name)
	return id, nil
}

func (f *fakeStore) UploadFile(_ context.Context, name, _ string, _ []byte, parentID string) (string, error) {
	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploads = append(f.uploads, name)
	f.parent = parentID
	return "file-1", nil
}

type fakeSource struct {
	err  error
	sent []string
}

func (f *fakeSource) PDF(_ context.Context, draftID string) ([]byte, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return []byte("%PDF"), "QT-2024-1234.pdf", nil
}

func (f *fakeSource) MarkSent(_ context.Context, draftID string) { f.sent = append(f.sent, draftID) }

const folder = "Performa Invoices & Quotations"

func TestUpload_CreaCarpetaYSube(t *testing.T) {
	store, source := newFakeStore(), &fakeSource{}
	uc := storage.NewUploadUseCase(&fakeSession{ready: true, signedIn: true}, store, source, folder, logger.Nop())

	assert.Equal(t, entity.UploadIdle, uc.Status("d1").State)

	st, err := uc.Upload(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, entity.UploadSuccess, st.State)
	assert.Equal(t, "file-1", st.FileID)
	assert.Equal(t, "https://drive.google.com/file/d/file-1/view", st.URL)
	assert.Equal(t, []string{folder}, store.created)
	assert.Equal(t, "folder-"+folder, store.parent)
	assert.Equal(t, []string{"QT-2024-1234.pdf"}, store.uploads)
	assert.Equal(t, []string{"d1"}, source.sent)
	assert.Equal(t, st, uc.Status("d1"))

	// Segunda subida reutiliza la carpeta.
	_, err = uc.Upload(context.Background(), "d1")
	require.NoError(t, err)
	assert.Len(t, store.created, 1)
}

func TestUpload_UsaPrimeraCarpetaExistente(t *testing.T) {
	store := newFakeStore()
	store.folders[folder] = []string{"old-1", "old-2"}
	uc := storage.NewUploadUseCase(&fakeSession{ready: true, signedIn: true}, store, &fakeSource{}, folder, logger.Nop())

	_, err := uc.Upload(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, "old-1", store.parent)
	assert.Empty(t, store.created)
}

func TestUpload_SesionNoDisponibleONoIniciada(t *testing.T) {
	store := newFakeStore()
	uc := storage.NewUploadUseCase(&fakeSession{}, store, &fakeSource{}, folder, logger.Nop())
	_, err := uc.Upload(context.Background(), "d1")
	assert.ErrorIs(t, err, domain.ErrDriveUnavailable)

	uc = storage.NewUploadUseCase(&fakeSession{ready: true}, store, &fakeSource{}, folder, logger.Nop())
	st, err := uc.Upload(context.Background(), "d1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	var authErr *storage.AuthRequiredError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "https://accounts.example/consent", authErr.AuthURL)
	assert.Equal(t, entity.UploadIdle, st.State)
	assert.Empty(t, store.uploads)
}

func TestUpload_ErrorDejaEstadoError(t *testing.T) {
	store := newFakeStore()
	store.uploadErr = errors.New("quota exceeded")
	source := &fakeSource{}
	uc := storage.NewUploadUseCase(&fakeSession{ready: true, signedIn: true}, store, source, folder, logger.Nop())

	st, err := uc.Upload(context.Background(), "d1")
	require.Error(t, err)
	assert.Equal(t, entity.UploadError, st.State)
	assert.Empty(t, st.URL)
	assert.Equal(t, entity.UploadError, uc.Status("d1").State)
	assert.Empty(t, source.sent)
}

func TestUpload_BorradorInexistente(t *testing.T) {
	uc := storage.NewUploadUseCase(&fakeSession{ready: true, signedIn: true}, newFakeStore(),
		&fakeSource{err: domain.ErrNotFound}, folder, logger.Nop())
	st, err := uc.Upload(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, entity.UploadIdle, st.State)
	assert.Equal(t, entity.UploadIdle, uc.Status("nope").State)
}

func TestUpload_ForgetVuelveAIdle(t *testing.T) {
	uc := storage.NewUploadUseCase(&fakeSession{ready: true, signedIn: true}, newFakeStore(), &fakeSource{}, folder, logger.Nop())
	_, err := uc.Upload(context.Background(), "d1")
	require.NoError(t, err)
	require.Equal(t, entity.UploadSuccess, uc.Status("d1").State)

	uc.Forget("d1")
	assert.Equal(t, entity.UploadIdle, uc.Status("d1").State)
	uc.Forget("d1")
}

func TestUpload_EstadoNoDependeDelBufferDelID(t *testing.T) {
	uc := storage.NewUploadUseCase(&fakeSession{ready: true, signedIn: true}, newFakeStore(), &fakeSource{}, folder, logger.Nop())
	buf := []byte("d1")
	id := unsafe.String(&buf[0], len(buf))
	_, err := uc.Upload(context.Background(), id)
	require.NoError(t, err)

	copy(buf, "zz")
	assert.Equal(t, entity.UploadSuccess, uc.Status("d1").State)
	assert.Equal(t, entity.UploadIdle, uc.Status("zz").State)
}

func TestUpload_SubidaEnCursoSeRechaza(t *testing.T) {
	store := newFakeStore()
	store.block = make(chan struct{})
	store.started = make(chan struct{})
	uc := storage.NewUploadUseCase(&fakeSession{ready: true, signedIn: true}, store, &fakeSource{}, folder, logger.Nop())

	done := make(chan error, 1)
	go func() {
		_, err := uc.Upload(context.Background(), "d1")
		done <- err
	}()

	select {
	case <-store.started:
	case <-time.After(2 * time.Second):
		t.Fatal("la subida no comenzó")
	}
	assert.Equal(t, entity.UploadUploading, uc.Status("d1").State)

	_, err := uc.Upload(context.Background(), "d1")
	assert.ErrorIs(t, err, domain.ErrUploadInProgress)

	close(store.block)
	require.NoError(t, <-done)
	assert.Equal(t, entity.UploadSuccess, uc.Status("d1").State)
}

func TestSignInYSignOut(t *testing.T) {
	session := &fakeSession{ready: true}
	uc := storage.NewUploadUseCase(session, newFakeStore(), &fakeSource{}, folder, logger.Nop())

	u, err := uc.SignIn()
	require.NoError(t, err)
	assert.Equal(t, "https://accounts.example/consent", u)

	require.NoError(t, uc.CompleteSignIn(context.Background(), "s", "c"))
	available, signedIn := uc.Session()
	assert.True(t, available)
	assert.True(t, signedIn)

	uc.SignOut()
	_, signedIn = uc.Session()
	assert.False(t, signedIn)

	session.exchangeErr = domain.ErrUnauthorized
	assert.ErrorIs(t, uc.CompleteSignIn(context.Background(), "s", "c"), domain.ErrUnauthorized)

	off := storage.NewUploadUseCase(&fakeSession{}, newFakeStore(), &fakeSource{}, folder, logger.Nop())
	_, err = off.SignIn()
	assert.ErrorIs(t, err, domain.ErrDriveUnavailable)
}
