package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func popWithCookies(f *Flasher, cookies []*http.Cookie) (*Flash, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		c.Request.AddCookie(ck)
	}
	return f.Pop(c), rec
}

func setFlash(f *Flasher, msgType, message string) []*http.Cookie {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	f.Set(c, msgType, message)
	return rec.Result().Cookies()
}

func TestFlasher_RoundTrip(t *testing.T) {
	f := NewFlasher("secret", false)
	cookies := setFlash(f, "success", "Saved")
	require.Len(t, cookies, 1)

	flash, rec := popWithCookies(f, cookies)
	require.NotNil(t, flash)
	assert.Equal(t, Flash{Type: "success", Message: "Saved"}, *flash)

	// 讀取後 cookie 會被刪除
	deleted := rec.Result().Cookies()
	require.Len(t, deleted, 1)
	assert.Equal(t, flashCookieName, deleted[0].Name)
	assert.Less(t, deleted[0].MaxAge, 0)
}

func TestFlasher_RejectsForeignOrExpired(t *testing.T) {
	f := NewFlasher("secret", false)
	other := NewFlasher("other-secret", false)

	flash, _ := popWithCookies(f, setFlash(other, "error", "forged"))
	assert.Nil(t, flash)

	cookies := setFlash(f, "info", "old news")
	f.now = func() time.Time { return time.Now().Add(time.Minute) }
	flash, _ = popWithCookies(f, cookies)
	assert.Nil(t, flash)

	flash, _ = popWithCookies(f, nil)
	assert.Nil(t, flash)
}
