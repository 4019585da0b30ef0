package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/limpopo-connect-web/internal/model"
)

func testKeys(t *testing.T) Keys {
	t.Helper()
	k, err := DeriveKeys("test-secret-with-enough-length-1234")
	require.NoError(t, err)
	return k
}

func requestWith(cookies []*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func TestDeriveKeys(t *testing.T) {
	a := testKeys(t)
	b := testKeys(t)
	assert.Equal(t, a, b, "derivation is deterministic")
	assert.NotEqual(t, a.Signing, a.FlashHash)
	assert.NotEqual(t, a.FlashHash, a.FlashBlock)
	assert.Len(t, a.FlashBlock, 32)

	other, err := DeriveKeys("another-secret")
	require.NoError(t, err)
	assert.NotEqual(t, a.Signing, other.Signing)

	_, err = DeriveKeys("")
	assert.Error(t, err)
}

func TestStore_SaveThenLoad(t *testing.T) {
	store := NewStore(testKeys(t).Signing, time.Hour, false)
	u := model.User{ID: "u-1", Name: "Thabo", Email: "thabo@example.com"}

	rec := httptest.NewRecorder()
	require.NoError(t, store.Save(rec, u))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	got, err := store.Load(requestWith(cookies))
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func TestStore_RejectsTamperedAndExpired(t *testing.T) {
	keys := testKeys(t)
	store := NewStore(keys.Signing, time.Hour, false)
	u := model.User{ID: "u-1", Name: "Thabo", Email: "thabo@example.com"}
	token, err := store.Encode(u)
	require.NoError(t, err)

	_, err = store.Decode(token + "x")
	assert.ErrorIs(t, err, ErrInvalidSession)

	otherKey, err := DeriveKeys("some-other-secret")
	require.NoError(t, err)
	_, err = NewStore(otherKey.Signing, time.Hour, false).Decode(token)
	assert.ErrorIs(t, err, ErrInvalidSession)

	later := NewStore(keys.Signing, time.Hour, false)
	later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = later.Decode(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestStore_LoadWithoutCookie(t *testing.T) {
	store := NewStore(testKeys(t).Signing, time.Hour, false)
	_, err := store.Load(requestWith(nil))
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_SaveRejectsPartialUser(t *testing.T) {
	store := NewStore(testKeys(t).Signing, time.Hour, false)
	rec := httptest.NewRecorder()
	err := store.Save(rec, model.User{ID: "u-1"})
	assert.ErrorIs(t, err, ErrInvalidSession)
	assert.Empty(t, rec.Result().Cookies())
}

func TestStore_Clear(t *testing.T) {
	store := NewStore(testKeys(t).Signing, time.Hour, false)
	rec := httptest.NewRecorder()
	store.Clear(rec)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, "", cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestRestore(t *testing.T) {
	store := NewStore(testKeys(t).Signing, time.Hour, false)
	u := model.User{ID: "u-9", Name: "Naledi", Email: "naledi@example.com"}
	rec := httptest.NewRecorder()
	require.NoError(t, store.Save(rec, u))

	sc := Restore(store, requestWith(rec.Result().Cookies()))
	require.True(t, sc.Active())
	got, ok := sc.User()
	require.True(t, ok)
	assert.Equal(t, u, got)
	assert.Equal(t, "u-9", sc.UserID())

	garbage := &http.Cookie{Name: CookieName, Value: "not-a-token"}
	sc = Restore(store, requestWith([]*http.Cookie{garbage}))
	assert.False(t, sc.Active())
	assert.Equal(t, "", sc.UserID())
}
