package session

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/limpopo-connect-web/internal/backend"
	"github.com/iliyamo/limpopo-connect-web/internal/model"
	"github.com/iliyamo/limpopo-connect-web/internal/queue"
	"github.com/iliyamo/limpopo-connect-web/internal/repository"
)

type fakeAccounts struct {
	registrations []repository.Registration
	logins        int
	loginUser     model.User
	loginErr      error
	registerErr   error
}

func (f *fakeAccounts) Register(_ context.Context, reg repository.Registration) (repository.RegisterResult, error) {
	f.registrations = append(f.registrations, reg)
	if f.registerErr != nil {
		return repository.RegisterResult{}, f.registerErr
	}
	return repository.RegisterResult{Message: "User registered successfully", UserID: "u-new"}, nil
}

func (f *fakeAccounts) Login(context.Context, string, string) (model.User, error) {
	f.logins++
	return f.loginUser, f.loginErr
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.ActivityEvent
}

func (p *recordingPublisher) Publish(_ context.Context, ev queue.ActivityEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Kind)
	}
	return out
}

func newTestManager(t *testing.T, acc *fakeAccounts) (*Manager, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	store := NewStore(testKeys(t).Signing, time.Hour, false)
	return NewManager(acc, store, pub), pub
}

func TestRegister_InvalidAgeMakesNoCall(t *testing.T) {
	acc := &fakeAccounts{}
	m, _ := newTestManager(t, acc)

	_, err := m.Register(context.Background(), model.RegisterForm{Name: "A", Email: "a@x.io", Password: "pw", Age: "twenty", Location: "Polokwane"})
	assert.ErrorIs(t, err, ErrInvalidAge)
	assert.Empty(t, acc.registrations)
}

func TestRegister_BlankRequiredFieldsMakeNoCall(t *testing.T) {
	acc := &fakeAccounts{}
	m, _ := newTestManager(t, acc)

	for _, f := range []model.RegisterForm{
		{Name: "   ", Email: "a@x.io", Password: "pw", Location: "Polokwane"},
		{Name: "A", Email: " \t", Password: "pw", Location: "Polokwane"},
		{Name: "A", Email: "a@x.io", Password: "pw", Location: ""},
	} {
		_, err := m.Register(context.Background(), f)
		assert.ErrorIs(t, err, ErrMissingFields)
	}
	assert.Empty(t, acc.registrations)
}

func TestRegister_TrimsSubmittedValues(t *testing.T) {
	acc := &fakeAccounts{}
	m, _ := newTestManager(t, acc)

	_, err := m.Register(context.Background(), model.RegisterForm{Name: " Thabo ", Email: " t@x.io ", Password: " pw ", Location: " Polokwane"})
	require.NoError(t, err)
	require.Len(t, acc.registrations, 1)
	reg := acc.registrations[0]
	assert.Equal(t, "Thabo", reg.Name)
	assert.Equal(t, "t@x.io", reg.Email)
	assert.Equal(t, " pw ", reg.Password, "passwords are sent as typed")
	assert.Equal(t, "Polokwane", reg.Location)
}

func TestRegister_AgeIsOptional(t *testing.T) {
	acc := &fakeAccounts{}
	m, _ := newTestManager(t, acc)

	_, err := m.Register(context.Background(), model.RegisterForm{Name: "A", Email: "a@x.io", Password: "pw", Location: "Polokwane"})
	require.NoError(t, err)
	_, err = m.Register(context.Background(), model.RegisterForm{Name: "B", Email: "b@x.io", Password: "pw", Age: " 27 ", Location: "Tzaneen"})
	require.NoError(t, err)

	require.Len(t, acc.registrations, 2)
	assert.Nil(t, acc.registrations[0].Age)
	require.NotNil(t, acc.registrations[1].Age)
	assert.Equal(t, 27, *acc.registrations[1].Age)
}

func TestRegister_BackendDetailIsReturned(t *testing.T) {
	acc := &fakeAccounts{registerErr: &backend.APIError{Status: 400, Detail: "Email already registered"}}
	m, _ := newTestManager(t, acc)

	_, err := m.Register(context.Background(), model.RegisterForm{Name: "A", Email: "a@x.io", Password: "pw", Location: "Polokwane"})
	apiErr, ok := backend.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "Email already registered", apiErr.Detail)
}

func TestLogin_PersistsAndAdopts(t *testing.T) {
	u := model.User{ID: "u-1", Name: "Thabo", Email: "thabo@example.com"}
	acc := &fakeAccounts{loginUser: u}
	m, pub := newTestManager(t, acc)

	sc := Anonymous()
	rec := httptest.NewRecorder()
	got, err := m.Login(context.Background(), rec, sc, model.LoginForm{Email: u.Email, Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, u, got)
	assert.True(t, sc.Active())

	persisted, err := m.Store.Load(requestWith(rec.Result().Cookies()))
	require.NoError(t, err)
	assert.Equal(t, u, persisted)

	assert.Eventually(t, func() bool {
		return len(pub.kinds()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{queue.UserLoggedIn}, pub.kinds())
}

func TestLogin_FailureLeavesSessionUntouched(t *testing.T) {
	acc := &fakeAccounts{loginErr: &backend.APIError{Status: 401, Detail: "Invalid credentials"}}
	m, _ := newTestManager(t, acc)

	sc := Anonymous()
	rec := httptest.NewRecorder()
	_, err := m.Login(context.Background(), rec, sc, model.LoginForm{Email: "a@x.io", Password: "bad"})
	require.Error(t, err)
	assert.False(t, sc.Active())
	assert.Empty(t, rec.Result().Cookies())
}

func TestLogin_IncompleteUserIsRejected(t *testing.T) {
	acc := &fakeAccounts{loginUser: model.User{ID: "u-1"}}
	m, _ := newTestManager(t, acc)

	sc := Anonymous()
	rec := httptest.NewRecorder()
	_, err := m.Login(context.Background(), rec, sc, model.LoginForm{})
	assert.ErrorIs(t, err, ErrIncompleteAccount)
	assert.False(t, sc.Active())
	assert.Empty(t, rec.Result().Cookies())
}

func TestLogout_ClearsAndIsIdempotent(t *testing.T) {
	u := model.User{ID: "u-1", Name: "Thabo", Email: "thabo@example.com"}
	m, _ := newTestManager(t, &fakeAccounts{loginUser: u})

	sc := Anonymous()
	_, err := m.Login(context.Background(), httptest.NewRecorder(), sc, model.LoginForm{})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		m.Logout(context.Background(), rec, sc)
		assert.False(t, sc.Active())

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		_, err := m.Store.Load(requestWith(cookies))
		assert.ErrorIs(t, err, ErrNoSession)
	}
}
