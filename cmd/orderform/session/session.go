package session

import (
	"crypto/sha256"
	"errors"
	"io"
	"net/http"
	"strings"

	"orderform/cmd/orderform/models"

	"github.com/gorilla/securecookie"
	"golang.org/x/crypto/hkdf"
)

const (
	FlashCookieName = "orderform_flash"

	hashKeyLen  = 64
	blockKeyLen = 32

	// MaxOldValueLen is the first cap tried on each echoed input. It is halved
	// until the encoded cookie fits, then old input is dropped.
	MaxOldValueLen = 512
)

type Session struct {
	cookieName string
	cookie     *securecookie.SecureCookie
	secure     bool
}

type SessionService interface {
	SetFlash(res http.ResponseWriter, flash models.Flash) error
	PopFlash(res http.ResponseWriter, req *http.Request) (models.Flash, error)
}

// keys derives the cookie hash and block keys from secret. An empty secret
// yields random keys, so flashes do not survive a restart.
func keys(secret string) (hashKey, blockKey []byte, err error) {
	if secret == "" {
		return securecookie.GenerateRandomKey(hashKeyLen), securecookie.GenerateRandomKey(blockKeyLen), nil
	}

	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("orderform session cookie"))
	hashKey = make([]byte, hashKeyLen)
	blockKey = make([]byte, blockKeyLen)
	if _, err := io.ReadFull(r, hashKey); err != nil {
		return nil, nil, err
	}
	if _, err := io.ReadFull(r, blockKey); err != nil {
		return nil, nil, err
	}
	return hashKey, blockKey, nil
}

func NewSessionService(secret string, secure bool) (*Session, error) {
	hashKey, blockKey, err := keys(secret)
	if err != nil {
		return nil, err
	}
	if hashKey == nil || blockKey == nil {
		return nil, errors.New("session: could not generate cookie keys")
	}

	sc := securecookie.New(hashKey, blockKey)
	sc.SetSerializer(securecookie.JSONEncoder{})

	return &Session{
		cookieName: FlashCookieName,
		cookie:     sc,
		secure:     secure,
	}, nil
}

// SetFlash replaces whatever flash the client currently holds.
func (s *Session) SetFlash(res http.ResponseWriter, flash models.Flash) error {
	encoded, err := s.encode(flash)
	if err != nil {
		return err
	}

	http.SetCookie(res, &http.Cookie{
		Name:     s.cookieName,
		Value:    encoded,
		Path:     "/",
		Secure:   s.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// PopFlash returns the flash carried by req and expires the cookie, so each
// flash is rendered at most once. A missing cookie is an empty flash.
func (s *Session) PopFlash(res http.ResponseWriter, req *http.Request) (models.Flash, error) {
	cookie, err := req.Cookie(s.cookieName)
	if err != nil {
		return models.Flash{}, nil
	}

	s.clear(res)

	var flash models.Flash
	if err := s.cookie.Decode(s.cookieName, cookie.Value, &flash); err != nil {
		return models.Flash{}, err
	}
	return flash, nil
}

// encode shrinks the echoed input until the cookie fits. Escaped markup can
// grow several times in the JSON, so the limit is checked on the encoded value.
func (s *Session) encode(flash models.Flash) (string, error) {
	if len(flash.Old) > 0 {
		for limit := MaxOldValueLen; limit > 0; limit /= 2 {
			attempt := flash
			attempt.Old = capOld(flash.Old, limit)
			if encoded, err := s.cookie.Encode(s.cookieName, attempt); err == nil {
				return encoded, nil
			}
		}
		flash.Old = nil
	}

	return s.cookie.Encode(s.cookieName, flash)
}

func capOld(old map[string]string, limit int) map[string]string {
	capped := make(map[string]string, len(old))
	for k, v := range old {
		if len(v) > limit {
			v = strings.ToValidUTF8(v[:limit], "")
		}
		capped[k] = v
	}
	return capped
}

func (s *Session) clear(res http.ResponseWriter) {
	http.SetCookie(res, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   s.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
