package auth

import (
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"gather/config"
	"gather/pkg/jwt"
)

type RouteType int

const (
	RoutePublic RouteType = iota
	RouteGuestOnly
	RouteProtected
)

const (
	signinPath     = "/signin"
	signupPath     = "/signup"
	onboardingPath = "/onboarding"
	homePath       = "/"
)

var guestOnlyPaths = []string{signinPath, signupPath}

var publicPrefixes = []string{"/api/", "/assets/", "/health", "/favicon.ico"}

// ClassifyRoute maps a request path onto the static route table. Everything
// that is not public or guest-only is protected, including the home page
// and the onboarding page.
func ClassifyRoute(path string) RouteType {
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return RoutePublic
		}
	}
	for _, p := range guestOnlyPaths {
		if path == p || strings.HasPrefix(path, p+"/") {
			return RouteGuestOnly
		}
	}
	return RouteProtected
}

// Guard is the per-navigation decision middleware. It decodes the session
// cookie and allows, redirects or clears state according to the route table
// and the onboarding status carried in the claims.
type Guard struct {
	tokens *jwt.JWT
	cfg    *config.Config
	logger *zap.Logger
}

func NewGuard(tokens *jwt.JWT, cfg *config.Config, logger *zap.Logger) *Guard {
	return &Guard{tokens: tokens, cfg: cfg, logger: logger}
}

func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		routeType := ClassifyRoute(path)
		if routeType == RoutePublic {
			next.ServeHTTP(w, r)
			return
		}

		token := ""
		if c, err := r.Cookie(tokenCookie); err == nil {
			token = c.Value
		}

		if token == "" {
			if routeType == RouteProtected {
				g.redirectToSignin(w, r, path)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		claims, err := g.tokens.Validate(token)
		if err != nil {
			// Treat an undecodable token as logged out.
			g.logger.Warn("session cookie rejected", zap.Error(err))
			http.SetCookie(w, authCookie(g.cfg, "", -1))
			g.redirectToSignin(w, r, path)
			return
		}

		switch {
		case routeType == RouteGuestOnly:
			http.Redirect(w, r, homePath, http.StatusTemporaryRedirect)
		case !claims.IsOnboarded && path != onboardingPath:
			http.Redirect(w, r, onboardingPath, http.StatusTemporaryRedirect)
		case claims.IsOnboarded && path == onboardingPath:
			http.Redirect(w, r, homePath, http.StatusTemporaryRedirect)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func (g *Guard) redirectToSignin(w http.ResponseWriter, r *http.Request, returnTo string) {
	target := signinPath + "?redirect=" + url.QueryEscape(returnTo)
	http.Redirect(w, r, target, http.StatusTemporaryRedirect)
}
