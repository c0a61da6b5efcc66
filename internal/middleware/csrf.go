package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/charlesng35/companydesk/pkg/crypto"
	"github.com/charlesng35/companydesk/pkg/errors"
	"github.com/charlesng35/companydesk/pkg/logger"
	"github.com/charlesng35/companydesk/pkg/response"
)

const (
	// CSRFCookieName is the cookie used to transport the CSRF token to clients.
	CSRFCookieName = "companydesk_csrf"
	// CSRFHeaderName is the header fetch clients present for unsafe HTTP methods.
	CSRFHeaderName = "X-CSRF-Token"
	// CSRFFormField is the form field plain HTML forms present instead of the header.
	CSRFFormField = "_csrf"

	csrfContextKey   = "csrf_token"
	csrfTokenLength  = 32
	csrfCookieMaxAge = 12 * 60 * 60 // 12 hours
	csrfLoggerModule = "csrf"
)

var unsafeMethods = map[string]struct{}{
	http.MethodPost:   {},
	http.MethodPut:    {},
	http.MethodPatch:  {},
	http.MethodDelete: {},
}

// CSRF implements the double-submit-cookie pattern. Safe methods receive a token via
// cookie and header; mutating requests must echo it in the X-CSRF-Token header or
// the _csrf form field. The token is stored in the context for templates.
func CSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		if method == http.MethodOptions {
			c.Next()
			return
		}

		token, issued, err := ensureCSRFCookie(c)
		if err != nil {
			response.Error(c, errors.ErrInternalServer)
			c.Abort()
			return
		}
		c.Set(csrfContextKey, token)

		if isUnsafeMethod(method) {
			submitted := submittedCSRFToken(c)
			if !crypto.ConstantTimeEqual(token, submitted) {
				logger.WithModule(csrfLoggerModule).Warn("csrf validation failed",
					// Avoid logging token contents
					zap.String("method", method),
					zap.String("path", c.FullPath()),
					zap.Bool("cookie_issued", issued),
				)
				response.Error(c, errors.ErrCSRFInvalid)
				c.Abort()
				return
			}
		} else {
			c.Header(CSRFHeaderName, token)
		}

		c.Next()
	}
}

// CSRFToken returns the token issued for the current request, or "" when CSRF protection is off.
func CSRFToken(c *gin.Context) string {
	return c.GetString(csrfContextKey)
}

func submittedCSRFToken(c *gin.Context) string {
	if header := strings.TrimSpace(c.GetHeader(CSRFHeaderName)); header != "" {
		return header
	}
	return strings.TrimSpace(c.PostForm(CSRFFormField))
}

func ensureCSRFCookie(c *gin.Context) (token string, issued bool, err error) {
	if existing, err := c.Cookie(CSRFCookieName); err == nil && len(existing) > 0 {
		setCSRFCookie(c, existing)
		return existing, false, nil
	}

	token, err = crypto.GenerateToken(csrfTokenLength)
	if err != nil {
		return "", false, err
	}
	setCSRFCookie(c, token)
	return token, true, nil
}

func setCSRFCookie(c *gin.Context, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		Secure:   isSecureRequest(c.Request),
		HttpOnly: false,
		MaxAge:   csrfCookieMaxAge,
		SameSite: http.SameSiteStrictMode,
	})
}

func isSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	scheme := r.Header.Get("X-Forwarded-Proto")
	return strings.EqualFold(scheme, "https")
}

func isUnsafeMethod(method string) bool {
	_, ok := unsafeMethods[method]
	return ok
}
